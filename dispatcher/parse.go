package dispatcher

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	sollib "github.com/gagliardetto/solana-go"

	"github.com/anchorageoss/visualsign-parser/chain/evm"
	"github.com/anchorageoss/visualsign-parser/chain/sui"
	"github.com/anchorageoss/visualsign-parser/chain/sui/protocols/cointransfer"
	"github.com/anchorageoss/visualsign-parser/chain/svm"
	"github.com/anchorageoss/visualsign-parser/chain/tron"
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
	"github.com/anchorageoss/visualsign-parser/internal/numfmt"
)

// Request is one Parse call's input.
type Request struct {
	Chain   Chain
	Payload []byte

	// LookupTables supplies the previously-fetched content of any address
	// lookup table an SVM v0 message references. Ignored on other chains.
	LookupTables map[string]svm.LookupTableContent
}

// DecodeTransactionBytes accepts hex (with or without a leading 0x) or
// base64, the two encodings the CLI/RPC surfaces both accept.
func DecodeTransactionBytes(s string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if b, err := hex.DecodeString(trimmed); err == nil {
		return b, nil
	}
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, chainerr.NewParseError(chainerr.BadHex, "transaction is neither valid hex nor valid base64")
	}
	return b, nil
}

// Parse decodes req.Payload against req.Chain's codec, dispatches its
// calls/instructions/commands/contracts through the matching registry, and
// validates the assembled SignablePayload before returning it. A failing
// Validate or an envelope-level decode error aborts the whole response;
// sub-call ResolutionError/MalformedCalldata already degrade to an unknown
// field inside each chain's own Dispatch/VisualizeCommand/VisualizeContract.
func (r *Registries) Parse(req Request) (*fields.SignablePayload, error) {
	if len(req.Payload) > fields.MaxPayloadSize {
		return nil, chainerr.NewParseError(chainerr.PayloadTooLarge,
			"payload of %d bytes exceeds max-payload-size %d", len(req.Payload), fields.MaxPayloadSize)
	}

	var payload *fields.SignablePayload
	var err error
	switch req.Chain {
	case ChainEVM:
		payload, err = r.parseEVM(req.Payload)
	case ChainSVM:
		payload, err = r.parseSVM(req.Payload, req.LookupTables)
	case ChainSui:
		payload, err = r.parseSui(req.Payload)
	case ChainTron:
		payload, err = r.parseTron(req.Payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedChain, req.Chain)
	}
	if err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}

func (r *Registries) parseEVM(raw []byte) (*fields.SignablePayload, error) {
	tx, err := evm.DecodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var chainID uint64
	hasChainID := tx.ChainID != nil
	if hasChainID {
		chainID = tx.ChainID.Uint64()
	}

	out := []fields.Field{
		fields.NewTextV2("Network", evm.NetworkName(chainID, hasChainID)),
	}
	if tx.IsContractCreation() {
		out = append(out, fields.NewTextV2("To", "Contract Creation"))
	} else {
		out = append(out, fields.NewAddressV2("To", tx.To.Hex(), "", fields.AddressFieldOpts{}))
	}

	valueAmount, valueUnit := numfmt.FormatEtherValue(tx.Value)
	out = append(out, fields.NewAmountV2("Value", valueAmount, valueUnit, valueAmount+" "+valueUnit))
	out = append(out, fields.NewNumber("Gas Limit", itoa64(int64(tx.GasLimit)), itoa64(int64(tx.GasLimit))))
	if tx.GasPrice != nil {
		gasAmount, gasUnit := numfmt.FormatEtherValue(tx.GasPrice)
		out = append(out, fields.NewAmountV2("Gas Price", gasAmount, gasUnit, gasAmount+" "+gasUnit))
	}
	out = append(out, fields.NewNumber("Nonce", itoa64(int64(tx.Nonce)), itoa64(int64(tx.Nonce))))

	title, subtitle := "Ethereum Transaction", ""
	if selector, tail := tx.Selector(); selector != nil {
		var sel [4]byte
		copy(sel[:], selector)
		var to common.Address
		if tx.To != nil {
			to = *tx.To
		}
		var value *big.Int = tx.Value
		f := r.EVM.Dispatch(chainID, to, sel, tail, value)
		if f.Type == fields.TypePreviewLayout {
			title, subtitle = f.PreviewLayout.Title, f.PreviewLayout.Subtitle
		}
		out = append(out, fields.NewDivider("solid"), f)
	}

	return fields.New("EthereumTx", title, subtitle, out), nil
}

func (r *Registries) parseSVM(raw []byte, tables map[string]svm.LookupTableContent) (*fields.SignablePayload, error) {
	msg, err := svm.DecodeMessage(raw)
	if err != nil {
		return nil, err
	}
	resolved, err := msg.ResolveAccounts(tables)
	if err != nil {
		return nil, err
	}

	out := []fields.Field{fields.NewTextV2("Network", "Solana")}
	if len(resolved) > 0 {
		out = append(out, fields.NewAddressV2("Fee Payer", resolved[0].Key.String(), "", fields.AddressFieldOpts{}))
	}
	out = append(out, fields.NewTextV2("Recent Blockhash", sollib.PublicKeyFromBytes(msg.RecentBlockhash[:]).String()))
	out = append(out, fields.NewDivider("solid"))

	title, subtitle := "Solana Transaction", ""
	single := len(msg.Instructions) == 1
	for _, ix := range msg.Instructions {
		f := r.SVM.Dispatch(resolved, ix)
		if single && f.Type == fields.TypePreviewLayout {
			title, subtitle = f.PreviewLayout.Title, f.PreviewLayout.Subtitle
		}
		out = append(out, f)
	}

	return fields.New("SolanaTx", title, subtitle, out), nil
}

func (r *Registries) parseSui(raw []byte) (*fields.SignablePayload, error) {
	tx, err := sui.DecodeProgrammableTransaction(raw)
	if err != nil {
		return nil, err
	}

	out := []fields.Field{fields.NewTextV2("Network", "Sui"), fields.NewDivider("solid")}

	title, subtitle := "Sui Transaction", ""
	if f, ok := cointransfer.Describe(tx); ok {
		title = f.PreviewLayout.Title
		out = append(out, f)
	} else {
		single := len(tx.Commands) == 1
		for _, cmd := range tx.Commands {
			f := r.Sui.VisualizeCommand(tx, cmd)
			if single && f.Type == fields.TypePreviewLayout {
				title, subtitle = f.PreviewLayout.Title, f.PreviewLayout.Subtitle
			}
			out = append(out, f)
		}
	}

	return fields.New("SuiTx", title, subtitle, out), nil
}

func (r *Registries) parseTron(raw []byte) (*fields.SignablePayload, error) {
	tx, err := tron.DecodeTransaction(raw)
	if err != nil {
		return nil, err
	}
	contracts := tron.Contracts(tx)

	out := []fields.Field{fields.NewTextV2("Network", "Tron Mainnet"), fields.NewDivider("solid")}

	title, subtitle := "Tron Transaction", ""
	single := len(contracts) == 1
	for _, c := range contracts {
		f, err := r.Tron.VisualizeContract(c)
		if err != nil {
			if !chainerr.IsDegradable(err) {
				return nil, err
			}
			f = fields.NewUnknown("Contract", nil, err.Error())
		}
		if single && f.Type == fields.TypePreviewLayout {
			title, subtitle = f.PreviewLayout.Title, f.PreviewLayout.Subtitle
		}
		out = append(out, f)
	}

	return fields.New("TronTx", title, subtitle, out), nil
}

func itoa64(n int64) string {
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
