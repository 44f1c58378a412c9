package tron

import (
	"github.com/fbsobreira/gotron-sdk/pkg/address"
	"github.com/fbsobreira/gotron-sdk/pkg/proto/core"

	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
	"github.com/anchorageoss/visualsign-parser/internal/numfmt"
)

// CallContext carries one TriggerSmartContract call's resolved contract
// address and calldata to a protocol visualizer, mirroring chain/evm's
// VisualizerContext shape.
type CallContext struct {
	OwnerAddress    string
	ContractAddress string
	CallValue       int64
	Data            []byte
}

// Visualizer renders a TriggerSmartContract call.
type Visualizer interface {
	Visualize(ctx CallContext) (fields.Field, error)
}

// VisualizerFunc adapts a plain function to the Visualizer interface.
type VisualizerFunc func(ctx CallContext) (fields.Field, error)

func (f VisualizerFunc) Visualize(ctx CallContext) (fields.Field, error) { return f(ctx) }

// Registry dispatches TriggerSmartContract calls by contract address, the
// same address-match strategy chain/evm.Registry uses for its first
// dispatch stage, since TRC-20 tokens (like ERC-20 tokens) share a single
// ABI and are only distinguished by which contract address they live at.
type Registry struct {
	byAddress map[string]Visualizer
}

// NewRegistry returns an empty contract-address registry.
func NewRegistry() *Registry {
	return &Registry{byAddress: make(map[string]Visualizer)}
}

// Register binds a Visualizer to every call into the given contract
// address.
func (r *Registry) Register(contractAddress string, v Visualizer) {
	r.byAddress[contractAddress] = v
}

// VisualizeContract renders a single decoded contract. TransferContract and
// TransferAssetContract get a direct structural rendering; TriggerSmartContract
// dispatches through the address registry, degrading to unknown on both a
// lookup miss and a visualizer error (unless the error is non-degradable).
func (r *Registry) VisualizeContract(c *core.Transaction_Contract) (fields.Field, error) {
	switch c.GetType() {
	case core.Transaction_Contract_TransferContract:
		return r.visualizeTransfer(c)
	case core.Transaction_Contract_TransferAssetContract:
		return r.visualizeTransferAsset(c)
	case core.Transaction_Contract_TriggerSmartContract:
		return r.visualizeTrigger(c)
	case core.Transaction_Contract_FreezeBalanceV2Contract:
		return r.visualizeFreezeV2(c)
	case core.Transaction_Contract_UnfreezeBalanceV2Contract:
		return r.visualizeUnfreezeV2(c)
	default:
		return unknownContractField(c), nil
	}
}

func (r *Registry) visualizeTransfer(c *core.Transaction_Contract) (fields.Field, error) {
	var payload core.TransferContract
	if err := c.GetParameter().UnmarshalTo(&payload); err != nil {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "%s", err.Error())
	}
	from := encodeAddress(payload.GetOwnerAddress())
	to := encodeAddress(payload.GetToAddress())
	title := "Send TRX"
	amount := numfmt.TokenAmount(bigFromInt64(payload.GetAmount()), 6)
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewAddressV2("From", from, "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("To", to, "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAmountV2("Amount", amount, "TRX", amount+" TRX")),
	}
	condensed := fields.NewListLayout(rows[2])
	expanded := fields.NewListLayout(rows...)
	return fields.NewPreviewLayout(title, title, to, condensed, expanded), nil
}

func (r *Registry) visualizeTransferAsset(c *core.Transaction_Contract) (fields.Field, error) {
	var payload core.TransferAssetContract
	if err := c.GetParameter().UnmarshalTo(&payload); err != nil {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "%s", err.Error())
	}
	from := encodeAddress(payload.GetOwnerAddress())
	to := encodeAddress(payload.GetToAddress())
	title := "Transfer TRC-10 Asset"
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewTextV2("Asset", string(payload.GetAssetName()))),
		fields.Plain(fields.NewAddressV2("From", from, "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewAddressV2("To", to, "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewNumber("Amount", itoa64(payload.GetAmount()), itoa64(payload.GetAmount()))),
	}
	condensed := fields.NewListLayout(rows[3])
	expanded := fields.NewListLayout(rows...)
	return fields.NewPreviewLayout(title, title, to, condensed, expanded), nil
}

func (r *Registry) visualizeTrigger(c *core.Transaction_Contract) (fields.Field, error) {
	var payload core.TriggerSmartContract
	if err := c.GetParameter().UnmarshalTo(&payload); err != nil {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "%s", err.Error())
	}
	contractAddr := encodeAddress(payload.GetContractAddress())
	ctx := CallContext{
		OwnerAddress:    encodeAddress(payload.GetOwnerAddress()),
		ContractAddress: contractAddr,
		CallValue:       payload.GetCallValue(),
		Data:            payload.GetData(),
	}
	v, ok := r.byAddress[contractAddr]
	if !ok {
		return unknownTriggerField(ctx), nil
	}
	f, err := v.Visualize(ctx)
	if err != nil {
		if chainerr.IsDegradable(err) {
			return fields.NewUnknown("Contract Call", ctx.Data, err.Error()), nil
		}
		return fields.Field{}, err
	}
	return f, nil
}

func (r *Registry) visualizeFreezeV2(c *core.Transaction_Contract) (fields.Field, error) {
	var payload core.FreezeBalanceV2Contract
	if err := c.GetParameter().UnmarshalTo(&payload); err != nil {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "%s", err.Error())
	}
	title := "Freeze TRX for Resources"
	amount := numfmt.TokenAmount(bigFromInt64(payload.GetFrozenBalance()), 6)
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewAmountV2("Amount", amount, "TRX", amount+" TRX")),
		fields.Plain(fields.NewTextV2("Resource", payload.GetResource().String())),
	}
	condensed := fields.NewListLayout(rows[0])
	expanded := fields.NewListLayout(rows...)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func (r *Registry) visualizeUnfreezeV2(c *core.Transaction_Contract) (fields.Field, error) {
	var payload core.UnfreezeBalanceV2Contract
	if err := c.GetParameter().UnmarshalTo(&payload); err != nil {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "%s", err.Error())
	}
	title := "Unfreeze TRX"
	amount := numfmt.TokenAmount(bigFromInt64(payload.GetUnfreezeBalance()), 6)
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewAmountV2("Amount", amount, "TRX", amount+" TRX")),
		fields.Plain(fields.NewTextV2("Resource", payload.GetResource().String())),
	}
	condensed := fields.NewListLayout(rows[0])
	expanded := fields.NewListLayout(rows...)
	return fields.NewPreviewLayout(title, title, "", condensed, expanded), nil
}

func unknownContractField(c *core.Transaction_Contract) fields.Field {
	return fields.NewUnknown("Contract", nil, "unsupported contract type "+c.GetType().String())
}

func unknownTriggerField(ctx CallContext) fields.Field {
	title := "Contract Call"
	rows := []fields.AnnotatedField{
		fields.Plain(fields.NewAddressV2("Contract", ctx.ContractAddress, "", fields.AddressFieldOpts{})),
		fields.Plain(fields.NewUnknown("Calldata", ctx.Data, "unrecognized contract address "+ctx.ContractAddress)),
	}
	condensed := fields.NewListLayout(rows[0])
	expanded := fields.NewListLayout(rows...)
	return fields.NewPreviewLayout(title, title, ctx.ContractAddress, condensed, expanded)
}

func encodeAddress(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	return address.Address(raw).String()
}
