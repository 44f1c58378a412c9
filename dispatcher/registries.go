package dispatcher

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/anchorageoss/visualsign-parser/chain/evm"
	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/chain/evm/protocols/aave"
	"github.com/anchorageoss/visualsign-parser/chain/evm/protocols/erc20"
	"github.com/anchorageoss/visualsign-parser/chain/evm/protocols/morpho"
	"github.com/anchorageoss/visualsign-parser/chain/evm/protocols/uniswap"
	"github.com/anchorageoss/visualsign-parser/chain/sui"
	"github.com/anchorageoss/visualsign-parser/chain/sui/protocols/staking"
	"github.com/anchorageoss/visualsign-parser/chain/svm"
	"github.com/anchorageoss/visualsign-parser/chain/svm/protocols/computebudget"
	"github.com/anchorageoss/visualsign-parser/chain/svm/protocols/jupiter"
	"github.com/anchorageoss/visualsign-parser/chain/svm/protocols/spltoken"
	"github.com/anchorageoss/visualsign-parser/chain/svm/protocols/systemprogram"
	"github.com/anchorageoss/visualsign-parser/chain/tron"
	"github.com/anchorageoss/visualsign-parser/chain/tron/protocols/trc20"
	"github.com/anchorageoss/visualsign-parser/registry"
)

// mainnet addresses of the protocol contracts this module ships presets
// for, matching the registry.ContractRegistry dataset entries used for
// display-name resolution.
const (
	uniswapUniversalRouterAddr = "0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD"
	morphoBundlerAddr          = "0x4DEcA517D6817B6510798b7328F2314d3003AbAC"
	aavePoolAddr               = "0x87870Bca3F3fD6335C3F4ce8392D69350B4fA4E2"
	permit2Addr                = "0x000000000022D473030F116dDEE9F6B43aC78BA3"
)

// EthereumMainnetChainID is the only chain ID the bundled protocol-contract
// address table covers; callers targeting another EVM network get
// dynamic-ABI or unknown-field fallback until they supply their own
// --abi-json-mappings. The CLI defaults --abi-json-mappings entries to this
// chain id too, since it has no separate --chain-id flag of its own.
const EthereumMainnetChainID = 1

const ethereumMainnet = EthereumMainnetChainID

// Registries bundles every chain's wired visualizer registry plus the
// shared contract-metadata registry, built once and reused across calls.
type Registries struct {
	Contracts *registry.ContractRegistry
	EVM       *evm.Registry
	SVM       *svm.Registry
	Sui       *sui.Registry
	Tron      *tron.Registry
}

// NewRegistries builds every chain's registry, pre-loaded with this
// module's bundled protocol visualizers and the embedded contract dataset.
// abiRegistry carries any caller-supplied --abi-json-mappings entries; pass
// abi.NewRegistry() for a bare one.
func NewRegistries(abiRegistry *abi.Registry) *Registries {
	contracts := registry.NewContractRegistry()

	evmRegistry := evm.NewRegistry(abiRegistry, contracts)
	for selector, v := range erc20.Selectors() {
		evmRegistry.RegisterSignature(selector, v)
	}
	evmRegistry.RegisterAddress(ethereumMainnet, common.HexToAddress(uniswapUniversalRouterAddr), uniswap.NewVisualizer())
	evmRegistry.RegisterAddress(ethereumMainnet, common.HexToAddress(permit2Addr), uniswap.NewPermit2Visualizer())
	evmRegistry.RegisterAddress(ethereumMainnet, common.HexToAddress(morphoBundlerAddr), morpho.NewVisualizer())
	evmRegistry.RegisterAddress(ethereumMainnet, common.HexToAddress(aavePoolAddr), aave.NewVisualizer())

	svmRegistry := svm.NewRegistry()
	svmRegistry.Register(computebudget.ProgramID, computebudget.NewVisualizer())
	svmRegistry.Register(spltoken.ProgramID, spltoken.NewVisualizer(contracts))
	svmRegistry.Register(spltoken.Token2022ProgramID, spltoken.NewVisualizer(contracts))
	svmRegistry.Register(spltoken.AssociatedTokenAccountProgramID, spltoken.NewATAVisualizer(contracts))
	svmRegistry.Register(jupiter.ProgramID, jupiter.NewVisualizer(contracts))
	svmRegistry.Register(systemprogram.ProgramID, systemprogram.NewVisualizer())

	suiRegistry := sui.NewRegistry()
	suiRegistry.RegisterPackage(staking.PackageID, staking.NewVisualizer())
	// Cetus, Suilend, and Momentum package ids are deployment-specific
	// configuration (unlike the Sui system package's fixed 0x3 address), so
	// they aren't bundled with a guessed address here; callers that know
	// their deployment's real package ids wire them with RegisterSuiPackage
	// below, passing cetus.NewVisualizer()/suilend.NewVisualizer()/
	// momentum.NewVisualizer().

	tronRegistry := tron.NewRegistry()
	for _, addr := range []string{"TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", "TEkxiTehnzSmSe2XqrBj4w32RUN966rdz8"} {
		tronRegistry.Register(addr, trc20.NewVisualizer(contracts))
	}

	return &Registries{
		Contracts: contracts,
		EVM:       evmRegistry,
		SVM:       svmRegistry,
		Sui:       suiRegistry,
		Tron:      tronRegistry,
	}
}

// RegisterSuiPackage binds a deployment-specific Sui DeFi package id (Cetus,
// Suilend, Momentum, or any other Move package) to its visualizer. Callers
// that know their deployment's real package ids call this after
// NewRegistries; the CLI's --abi-json-mappings equivalent for Sui is a
// future extension point, not yet wired to a flag.
func (r *Registries) RegisterSuiPackage(packageID sui.ObjectID, v sui.Visualizer) {
	r.Sui.RegisterPackage(packageID, v)
}
