// Package tron decodes an unsigned Tron transaction's raw_data into its
// typed Contract payload (TransferContract, TransferAssetContract,
// TriggerSmartContract, and so on) and dispatches TriggerSmartContract
// calldata by contract-address match, like chain/evm's first dispatch
// stage. A call into an unregistered address renders as an unknown field
// carrying the raw calldata; there is no dynamic-ABI fallback.
//
// Tron's wire format is itself a protobuf message (core.Transaction), unlike
// EVM's RLP or SVM/Sui's custom binary encodings, so this package leans on
// gotron-sdk's generated core package directly rather than hand-rolling a
// decoder, mirroring the teacher's own direct "pkg/proto/core"/"pkg/proto/api"
// imports in chain/tron/tron_chain.go.
package tron

import (
	"github.com/fbsobreira/gotron-sdk/pkg/proto/core"
	"google.golang.org/protobuf/proto"

	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
)

// DecodeTransaction parses an unsigned Tron transaction from its wire bytes.
func DecodeTransaction(data []byte) (*core.Transaction, error) {
	if len(data) == 0 {
		return nil, chainerr.NewParseError(chainerr.TruncatedInput, "empty transaction")
	}
	tx := &core.Transaction{}
	if err := proto.Unmarshal(data, tx); err != nil {
		return nil, chainerr.NewParseError(chainerr.BadProtobuf, "%s", err.Error())
	}
	if tx.GetRawData() == nil {
		return nil, chainerr.NewParseError(chainerr.BadProtobuf, "transaction has no raw_data")
	}
	return tx, nil
}

// Contracts returns the decoded transaction's contract list. Tron batches
// multiple contracts per transaction in principle, but in practice every
// transaction submitted for signing carries exactly one.
func Contracts(tx *core.Transaction) []*core.Transaction_Contract {
	return tx.GetRawData().GetContract()
}
