package sui

import (
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
)

// CommandContext carries one MoveCall command's resolved inputs to a
// protocol visualizer.
type CommandContext struct {
	Call ProgrammableMoveCall
	Tx   *ProgrammableTransaction
}

// Visualizer renders one Move package's calls into a field.
type Visualizer interface {
	Visualize(ctx CommandContext) (fields.Field, error)
}

// VisualizerFunc adapts a plain function to the Visualizer interface.
type VisualizerFunc func(ctx CommandContext) (fields.Field, error)

func (f VisualizerFunc) Visualize(ctx CommandContext) (fields.Field, error) { return f(ctx) }

// Registry dispatches a MoveCall command by its package id; one Visualizer
// handles every module and function of its package. An unregistered
// package degrades to a generic unknown-call
// field rather than failing the whole transaction.
type Registry struct {
	byTarget map[string]Visualizer
}

// NewRegistry returns an empty MoveCall registry.
func NewRegistry() *Registry {
	return &Registry{byTarget: make(map[string]Visualizer)}
}

// RegisterPackage binds a Visualizer to every call into the given package
// id, regardless of module or function; protocol visualizers that handle
// several entry points within one package use this.
func (r *Registry) RegisterPackage(packageID ObjectID, v Visualizer) {
	r.byTarget[packageID.String()] = v
}

func (r *Registry) lookup(packageID ObjectID) (Visualizer, bool) {
	v, ok := r.byTarget[packageID.String()]
	return v, ok
}

// VisualizeCommand renders a single command: MoveCall dispatches through
// the registry, the other six command kinds get direct structural
// renderings (transfer/split/merge/publish/vector-build/upgrade).
func (r *Registry) VisualizeCommand(tx *ProgrammableTransaction, cmd Command) fields.Field {
	switch cmd.Kind {
	case CommandMoveCall:
		return r.visualizeMoveCall(tx, cmd.MoveCall)
	case CommandTransferObjects:
		return visualizeTransferObjects(cmd)
	case CommandSplitCoins:
		return visualizeSplitCoins(cmd)
	case CommandMergeCoins:
		return visualizeMergeCoins(cmd)
	case CommandPublish:
		return visualizePublish(cmd)
	case CommandMakeMoveVec:
		return visualizeMakeMoveVec(cmd)
	case CommandUpgrade:
		return visualizeUpgrade(cmd)
	default:
		return fields.NewUnknown("Command", nil, "unrecognized command kind")
	}
}

func (r *Registry) visualizeMoveCall(tx *ProgrammableTransaction, call ProgrammableMoveCall) fields.Field {
	v, ok := r.lookup(call.Package)
	if !ok {
		return unknownMoveCallField(call)
	}
	f, err := v.Visualize(CommandContext{Call: call, Tx: tx})
	if err != nil {
		if chainerr.IsDegradable(err) {
			return fields.NewUnknown(moveCallLabel(call), nil, err.Error())
		}
		return fields.NewUnknown(moveCallLabel(call), nil, err.Error())
	}
	return f
}

func moveCallLabel(call ProgrammableMoveCall) string {
	return call.Package.String() + "::" + call.Module + "::" + call.Function
}

func unknownMoveCallField(call ProgrammableMoveCall) fields.Field {
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewAddressV2("Package", call.Package.String(), "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewTextV2("Module", call.Module)),
		fields.Plain(fields.NewTextV2("Function", call.Function)),
		fields.Plain(fields.NewNumber("Arguments", itoa(len(call.Arguments)), itoa(len(call.Arguments))+" arguments")),
	}
	title := "Unrecognized Move Call"
	explanation := "Unrecognized package " + moveCallLabel(call)
	unknown := fields.NewUnknown("Call", nil, explanation)
	expanded := fields.NewListLayout(append(rows, fields.Plain(unknown))...)
	return fields.NewPreviewLayout(title, title, moveCallLabel(call), fields.NewListLayout(fields.Plain(unknown)), expanded)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
