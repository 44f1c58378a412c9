package evm

import (
	"fmt"
	"strconv"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// networkNames is a data-driven chain-id -> display-name table. It is
// deliberately a flat map rather than per-family constant groups: nothing
// downstream of this package needs a canonical "FAMILY_NETWORK" string
// identifier, only the display name.
var networkNames = map[uint64]string{
	1:        "Ethereum Mainnet",
	11155111: "Ethereum Sepolia",
	5:        "Ethereum Goerli (deprecated)",
	17000:    "Ethereum Holesky",
	56:       "BNB Smart Chain Mainnet",
	97:       "BNB Smart Chain Testnet",
	137:      "Polygon Mainnet",
	80002:    "Polygon Amoy",
	43114:    "Avalanche C-Chain",
	43113:    "Avalanche Fuji Testnet",
	250:      "Fantom Opera",
	100:      "Gnosis Chain",
	42220:    "Celo Mainnet",
	44787:    "Celo Alfajores Testnet",
	10:       "OP Mainnet",
	11155420: "OP Sepolia",
	42161:    "Arbitrum One",
	421614:   "Arbitrum Sepolia",
	8453:     "Base",
	84532:    "Base Sepolia",
	81457:    "Blast",
	5000:     "Mantle",
	480:      "World Chain",
	324:      "zkSync Era",
	59144:    "Linea",
	534352:   "Scroll",
	7777777:  "Zora",
	130:      "Unichain",
}

// NetworkName renders a human-readable network name from a chain ID.
//
// A legacy transaction whose EIP-155 chain id comes out to 0 (an
// unprotected, pre-155 signature) has no chain id to display at all, so it
// renders as the bare "Unknown Network". A legacy transaction whose v field
// encodes some other, unrecognized chain id renders that number verbatim,
// never silently defaulted to 1: "Unknown Network (Chain ID: N)".
//
// networkNames covers the chains this package's test fixtures and
// documented scenarios name explicitly. Anything else falls through to
// chain-selectors' own EVM chain registry before giving up, the same
// registry the node-operator tooling queries by chain ID and family in
// jd_helper.go's writeChainConfigTable.
func NetworkName(chainID uint64, hasChainID bool) string {
	if !hasChainID {
		return "Unknown Network"
	}
	if name, ok := networkNames[chainID]; ok {
		return name
	}
	if details, err := chainsel.GetChainDetailsByChainIDAndFamily(strconv.FormatUint(chainID, 10), chainsel.FamilyEVM); err == nil && details.ChainName != "" {
		return details.ChainName
	}
	return fmt.Sprintf("Unknown Network (Chain ID: %d)", chainID)
}
