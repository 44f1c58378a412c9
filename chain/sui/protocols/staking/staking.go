// Package staking renders calls into the Sui system package's validator
// staking entry points: request_add_stake and request_withdraw_stake. The
// system package lives at the well-known, network-wide fixed address 0x3
// (sui_system), unlike deployed DeFi packages such as Cetus or Suilend
// whose package ids are deployment-specific configuration.
package staking

import (
	"github.com/anchorageoss/visualsign-parser/chain/sui"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
)

// PackageID is the fixed address of the Sui system package.
var PackageID = sui.ObjectID{31: 0x03}

// Visualizer renders Sui system staking calls.
type Visualizer struct{}

// NewVisualizer returns the Visualizer for registration against
// sui.Registry.RegisterPackage(staking.PackageID, ...).
func NewVisualizer() sui.Visualizer { return Visualizer{} }

func (Visualizer) Visualize(ctx sui.CommandContext) (fields.Field, error) {
	call := ctx.Call
	switch call.Function {
	case "request_add_stake", "request_add_stake_non_entry":
		return renderStake("Stake SUI", call), nil
	case "request_withdraw_stake":
		return renderStake("Unstake SUI", call), nil
	default:
		return renderStake("Sui System: "+call.Function, call), nil
	}
}

func renderStake(title string, call sui.ProgrammableMoveCall) fields.Field {
	argCount := len(call.Arguments)
	count := fields.NewNumber("Arguments", itoa(argCount), itoa(argCount)+" arguments")
	condensed := fields.NewListLayout(fields.Plain(count))
	expanded := fields.NewListLayout(fields.Plain(fields.NewTextV2("Function", call.Function)), fields.Plain(count))
	return fields.NewPreviewLayout(title, title, "", condensed, expanded)
}

func itoa(n int) string {
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
