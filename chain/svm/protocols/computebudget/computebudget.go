// Package computebudget renders Solana's ComputeBudget111111111111111111111111111111
// program instructions: the compute-unit limit/price knobs every priority
// transaction sets alongside its real instructions.
package computebudget

import (
	"encoding/binary"

	sollib "github.com/gagliardetto/solana-go"

	"github.com/anchorageoss/visualsign-parser/chain/svm"
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
)

// ProgramID is the native compute budget program address.
var ProgramID = sollib.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")

const (
	tagRequestUnits                   = 0
	tagRequestHeapFrame                = 1
	tagSetComputeUnitLimit             = 2
	tagSetComputeUnitPrice             = 3
	tagSetLoadedAccountsDataSizeLimit = 4
)

// Visualizer renders ComputeBudget program instructions.
type Visualizer struct{}

// NewVisualizer returns the ComputeBudget Visualizer for registration
// against svm.Registry.Register(ProgramID, ...).
func NewVisualizer() svm.Visualizer { return Visualizer{} }

func (Visualizer) Visualize(ctx svm.InstructionContext) (fields.Field, error) {
	if len(ctx.Data) == 0 {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "compute budget instruction has no data")
	}
	switch ctx.Data[0] {
	case tagSetComputeUnitLimit:
		units, err := readU32(ctx.Data[1:])
		if err != nil {
			return fields.Field{}, err
		}
		return fields.NewNumber("Compute Unit Limit", itoa(uint64(units)), itoa(uint64(units))+" units"), nil

	case tagSetComputeUnitPrice:
		micros, err := readU64(ctx.Data[1:])
		if err != nil {
			return fields.Field{}, err
		}
		return fields.NewNumber("Compute Unit Price", itoa(micros), itoa(micros)+" micro-lamports"), nil

	case tagSetLoadedAccountsDataSizeLimit:
		bytes, err := readU32(ctx.Data[1:])
		if err != nil {
			return fields.Field{}, err
		}
		return fields.NewNumber("Loaded Accounts Data Size Limit", itoa(uint64(bytes)), itoa(uint64(bytes))+" bytes"), nil

	case tagRequestHeapFrame:
		bytes, err := readU32(ctx.Data[1:])
		if err != nil {
			return fields.Field{}, err
		}
		return fields.NewNumber("Requested Heap Frame", itoa(uint64(bytes)), itoa(uint64(bytes))+" bytes"), nil

	case tagRequestUnits:
		return fields.NewUnknown("Compute Budget", ctx.Data, "deprecated RequestUnits instruction"), nil

	default:
		return fields.Field{}, chainerr.NewResolutionError(chainerr.SelectorNotFound,
			"compute budget: unrecognized instruction tag %d", ctx.Data[0])
	}
}

func readU32(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "need 4 bytes, have %d", len(b))
	}
	return binary.LittleEndian.Uint32(b), nil
}

func readU64(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "need 8 bytes, have %d", len(b))
	}
	return binary.LittleEndian.Uint64(b), nil
}

func itoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
