// Package registry holds the embedded (chain_id, address) -> token/contract
// metadata dataset used to resolve symbols, decimals, and display names
// during visualization, plus the well-known addresses of the protocols this
// module ships presets for (Uniswap Permit2, Morpho Bundler, Aave Pool).
package registry

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ContractInfo is one entry of the embedded dataset.
type ContractInfo struct {
	Symbol      string
	Decimals    uint8
	HasDecimals bool
	DisplayName string
	Verified    bool
}

type evmKey struct {
	ChainID uint64
	Address common.Address
}

// ContractRegistry resolves (chain_id, address) to known token/contract
// metadata. The Register* methods mutate it without locking; it is safe
// for concurrent reads while no Register* call is running.
type ContractRegistry struct {
	evm  map[evmKey]ContractInfo
	svm  map[string]ContractInfo // keyed by base58 mint address
	tron map[string]ContractInfo // keyed by base58check contract address
}

// NewContractRegistry builds a registry pre-populated with the embedded
// dataset; RegisterEVM, RegisterSVM and RegisterTron add or override
// entries afterwards.
func NewContractRegistry() *ContractRegistry {
	r := &ContractRegistry{
		evm:  make(map[evmKey]ContractInfo, len(embeddedEVMDataset)),
		svm:  make(map[string]ContractInfo, len(embeddedSVMDataset)),
		tron: make(map[string]ContractInfo, len(embeddedTronDataset)),
	}
	for k, v := range embeddedEVMDataset {
		r.evm[k] = v
	}
	for k, v := range embeddedSVMDataset {
		r.svm[k] = v
	}
	for k, v := range embeddedTronDataset {
		r.tron[k] = v
	}
	return r
}

// RegisterTron adds or overrides a contract entry, identified by its
// base58check address.
func (r *ContractRegistry) RegisterTron(address string, info ContractInfo) {
	r.tron[address] = info
}

// LookupTron resolves token metadata for a base58check Tron contract
// address.
func (r *ContractRegistry) LookupTron(address string) (ContractInfo, bool) {
	info, ok := r.tron[address]
	return info, ok
}

// RegisterSVM adds or overrides a mint entry, identified by its base58
// address.
func (r *ContractRegistry) RegisterSVM(mint string, info ContractInfo) {
	r.svm[mint] = info
}

// LookupSVM resolves token metadata for a base58 mint address.
func (r *ContractRegistry) LookupSVM(mint string) (ContractInfo, bool) {
	info, ok := r.svm[mint]
	return info, ok
}

// RegisterEVM adds or overrides an entry. Intended for test fixtures and for
// CLI-supplied address/name hints, not for production seeding (that goes
// through the embedded dataset).
func (r *ContractRegistry) RegisterEVM(chainID uint64, addr common.Address, info ContractInfo) {
	r.evm[evmKey{chainID, addr}] = info
}

// LookupEVM resolves token/contract metadata for an EVM (chain_id, address)
// pair. ok is false when the address is not in the dataset; callers should
// fall back to raw-unit display and an unresolved display name.
func (r *ContractRegistry) LookupEVM(chainID uint64, addr common.Address) (ContractInfo, bool) {
	info, ok := r.evm[evmKey{chainID, addr}]
	return info, ok
}

func mainnetKey(addr string) evmKey {
	return evmKey{ChainID: 1, Address: common.HexToAddress(addr)}
}

// embeddedEVMDataset seeds the handful of mainnet tokens and protocol
// contracts this module's presets and test fixtures reference directly.
// A production build would generate this table from a token-list build
// step; for this module's scope a literal map is sufficient.
var embeddedEVMDataset = map[evmKey]ContractInfo{
	mainnetKey("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"): {Symbol: "USDC", Decimals: 6, HasDecimals: true, DisplayName: "USD Coin", Verified: true},
	mainnetKey("0xdAC17F958D2ee523a2206206994597C13D831ec7"): {Symbol: "USDT", Decimals: 6, HasDecimals: true, DisplayName: "Tether USD", Verified: true},
	mainnetKey("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"): {Symbol: "WETH", Decimals: 18, HasDecimals: true, DisplayName: "Wrapped Ether", Verified: true},
	mainnetKey("0x6B175474E89094C44Da98b954EedeAC495271d0F"): {Symbol: "DAI", Decimals: 18, HasDecimals: true, DisplayName: "Dai Stablecoin", Verified: true},
	mainnetKey("0x000000000022D473030F116dDEE9F6B43aC78BA3"): {DisplayName: "Permit2", Verified: true},
	mainnetKey("0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD"): {DisplayName: "Uniswap Universal Router", Verified: true},
	mainnetKey("0x4DEcA517D6817B6510798b7328F2314d3003AbAC"): {DisplayName: "Morpho Bundler", Verified: true},
	mainnetKey("0x87870Bca3F3fD6335C3F4ce8392D69350B4fA4E2"): {DisplayName: "Aave v3 Pool", Verified: true},
}

// embeddedSVMDataset seeds the handful of mainnet SPL mints this module's
// presets and test fixtures reference directly, keyed by base58 mint
// address.
var embeddedSVMDataset = map[string]ContractInfo{
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": {Symbol: "USDC", Decimals: 6, HasDecimals: true, DisplayName: "USD Coin", Verified: true},
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": {Symbol: "USDT", Decimals: 6, HasDecimals: true, DisplayName: "Tether USD", Verified: true},
	"So11111111111111111111111111111111111111112": {Symbol: "SOL", Decimals: 9, HasDecimals: true, DisplayName: "Wrapped SOL", Verified: true},
	"JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN":  {Symbol: "JUP", Decimals: 6, HasDecimals: true, DisplayName: "Jupiter", Verified: true},
}

// embeddedTronDataset seeds the handful of mainnet TRC-20 tokens this
// module's presets and test fixtures reference directly, keyed by
// base58check contract address.
var embeddedTronDataset = map[string]ContractInfo{
	"TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t": {Symbol: "USDT", Decimals: 6, HasDecimals: true, DisplayName: "Tether USD", Verified: true},
	"TEkxiTehnzSmSe2XqrBj4w32RUN966rdz8": {Symbol: "USDC", Decimals: 6, HasDecimals: true, DisplayName: "USD Coin", Verified: true},
}

// LooksLikeZero reports whether addr is the zero address, used by
// visualizers that treat 0x0 as "native asset" rather than a real token.
func LooksLikeZero(addr common.Address) bool {
	return addr == (common.Address{})
}

// NormalizeSymbol upper-cases a token symbol for case-insensitive display
// comparisons without mutating the canonical-cased stored value.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(s)
}
