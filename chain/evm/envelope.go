// Package evm decodes unsigned EVM transaction envelopes (legacy RLP,
// EIP-2930, EIP-1559, EIP-4844, EIP-7702) and dispatches their calldata to
// the protocol visualizer registry.
//
// Envelope decoding is delegated to go-ethereum's core/types.Transaction,
// the reference implementation of every envelope this system needs to
// understand: its RLP decoder already rejects non-minimal integer/length
// encodings and trailing bytes, and its UnmarshalBinary already implements
// the EIP-2718 type-byte dispatch this package needs. Re-deriving that by
// hand here would just be a worse copy of the same rules.
package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
)

// Transaction is the chain-specific decoded transaction, EVM variant.
type Transaction struct {
	Type             uint8
	ChainID          *big.Int // nil if legacy tx carries no EIP-155 protection
	Nonce            uint64
	GasLimit         uint64
	GasPrice         *big.Int // display price: gasPrice (legacy/2930) or maxFeePerGas (1559+)
	PriorityFee      *big.Int // nil for legacy/2930
	To               *common.Address
	Value            *big.Int
	Input            []byte
	AccessList       types.AccessList
	BlobHashes       []common.Hash
	Authorizations   []types.SetCodeAuthorization
	raw              *types.Transaction
}

// Selector returns the 4-byte function selector and the remaining calldata
// tail, or (nil, nil) when Input is too short to carry a selector.
func (t *Transaction) Selector() (sel []byte, tail []byte) {
	if len(t.Input) < 4 {
		return nil, nil
	}
	return t.Input[:4], t.Input[4:]
}

// IsContractCreation reports whether To is nil (to = 0, contract creation).
func (t *Transaction) IsContractCreation() bool {
	return t.To == nil
}

// DecodeEnvelope decodes a raw EVM transaction envelope.
func DecodeEnvelope(raw []byte) (*Transaction, error) {
	if len(raw) == 0 {
		return nil, chainerr.NewParseError(chainerr.TruncatedInput, "empty transaction payload")
	}

	tag := raw[0]
	if tag < 0x80 {
		// Single-byte legacy RLP items collide with type bytes 0x01-0x04; a
		// valid legacy transaction is always an RLP list (tag >= 0xc0), so a
		// low tag here means the bytes are neither a recognized typed
		// envelope nor a legacy list.
		if tag > 0x04 {
			return nil, chainerr.NewParseError(chainerr.UnsupportedTxType, "unsupported transaction type byte 0x%02x", tag)
		}
	} else if tag < 0xc0 {
		return nil, chainerr.NewParseError(chainerr.UnsupportedTxType, "unsupported transaction type byte 0x%02x", tag)
	}

	var tx types.Transaction
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, classifyUnmarshalError(tag, err)
	}

	decoded := &Transaction{
		Type:     tx.Type(),
		Nonce:    tx.Nonce(),
		GasLimit: tx.Gas(),
		To:       tx.To(),
		Value:    tx.Value(),
		Input:    tx.Data(),
		raw:      &tx,
	}

	if chainID := tx.ChainId(); chainID != nil && chainID.Sign() != 0 {
		decoded.ChainID = chainID
	}

	switch tx.Type() {
	case types.LegacyTxType, types.AccessListTxType:
		decoded.GasPrice = tx.GasPrice()
	case types.DynamicFeeTxType, types.BlobTxType, types.SetCodeTxType:
		decoded.GasPrice = tx.GasFeeCap()
		decoded.PriorityFee = tx.GasTipCap()
	}

	if tx.Type() != types.LegacyTxType {
		decoded.AccessList = tx.AccessList()
	}
	if tx.Type() == types.BlobTxType {
		decoded.BlobHashes = tx.BlobHashes()
	}
	if tx.Type() == types.SetCodeTxType {
		decoded.Authorizations = tx.SetCodeAuthorizations()
	}

	for label, v := range map[string]*big.Int{
		"value":        decoded.Value,
		"chain id":     decoded.ChainID,
		"gas price":    decoded.GasPrice,
		"priority fee": decoded.PriorityFee,
	} {
		if err := checkEVMWord(label, v); err != nil {
			return nil, err
		}
	}

	return decoded, nil
}

// checkEVMWord rejects an integer field that does not fit in the 256-bit
// machine word every EVM amount is ultimately represented as. go-ethereum's
// own EVM implementation (core/vm, core/state) carries 256-bit values as
// uint256.Int rather than big.Int for exactly this reason; RLP itself places
// no upper bound on an integer's byte length, so a field that overflows here
// is non-canonical input, not a real EVM value.
func checkEVMWord(label string, v *big.Int) error {
	if v == nil {
		return nil
	}
	if _, overflow := uint256.FromBig(v); overflow {
		return chainerr.NewParseError(chainerr.NonMinimalRLP, "%s does not fit in a 256-bit EVM word", label)
	}
	return nil
}

// classifyUnmarshalError maps go-ethereum's decode errors onto this
// module's taxonomy. go-ethereum doesn't export granular error values for
// every RLP failure mode, so the mapping is best-effort by message/tag.
func classifyUnmarshalError(tag byte, err error) error {
	switch err {
	case types.ErrTxTypeNotSupported:
		return chainerr.NewParseError(chainerr.UnsupportedTxType, "unsupported transaction type byte 0x%02x", tag)
	}
	return chainerr.NewParseError(chainerr.TruncatedInput, "failed to decode transaction envelope: %s", err.Error())
}
