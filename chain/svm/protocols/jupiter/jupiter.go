// Package jupiter renders Jupiter Aggregator v6 swap instructions. The
// route plan itself threads through dozens of AMM-specific swap variants
// that this module does not attempt to enumerate byte-for-byte; instead it
// decodes the trailing summary fields every route variant shares (in/out
// amount, slippage, platform fee), resolves the swap's source/destination
// mints through the same contract registry the SPL Token visualizer uses,
// and lists the instruction's remaining accounts, annotating any of them
// that registry.ContractRegistry recognizes as a token mint.
package jupiter

import (
	"encoding/binary"
	"math/big"

	sollib "github.com/gagliardetto/solana-go"

	"github.com/anchorageoss/visualsign-parser/chain/svm"
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
	"github.com/anchorageoss/visualsign-parser/internal/numfmt"
	"github.com/anchorageoss/visualsign-parser/registry"
)

// ProgramID is the Jupiter Aggregator v6 program address.
var ProgramID = sollib.MustPublicKeyFromBase58("JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4")

// Anchor global-namespace instruction discriminators: the first 8 bytes of
// sha256("global:<instruction_name>").
var (
	discRoute                             = [8]byte{229, 23, 203, 151, 122, 227, 173, 42}
	discRouteWithTokenLedger              = [8]byte{150, 86, 71, 116, 167, 93, 14, 104}
	discExactOutRoute                     = [8]byte{208, 51, 239, 151, 123, 43, 237, 92}
	discSharedAccountsRoute                = [8]byte{193, 32, 155, 51, 65, 214, 156, 129}
	discSharedAccountsRouteWithTokenLedger = [8]byte{230, 121, 143, 80, 119, 159, 106, 170}
	discSharedAccountsExactOutRoute        = [8]byte{176, 209, 105, 168, 154, 125, 69, 62}
)

var routeNames = map[[8]byte]string{
	discRoute:                             "Jupiter Swap",
	discRouteWithTokenLedger:              "Jupiter Swap (Token Ledger)",
	discSharedAccountsRoute:                "Jupiter Swap (Shared Accounts)",
	discSharedAccountsRouteWithTokenLedger: "Jupiter Swap (Shared Accounts, Token Ledger)",
}

var exactOutNames = map[[8]byte]string{
	discExactOutRoute:               "Jupiter Exact-Out Swap",
	discSharedAccountsExactOutRoute: "Jupiter Exact-Out Swap (Shared Accounts)",
}

// inputMintAccountIndex and outputMintAccountIndex are the account-meta
// positions every route variant (route, route_with_token_ledger,
// exact_out_route, the shared-accounts variants) carries its source and
// destination token accounts at; Jupiter's client always emits the swap's
// mints at these fixed indices regardless of which AMMs the route_plan
// threads through.
const (
	inputMintAccountIndex  = 0
	outputMintAccountIndex = 5
)

// Visualizer renders Jupiter Aggregator v6 instructions. Contracts resolves
// a mint's symbol the same way chain/svm/protocols/spltoken does.
type Visualizer struct {
	Contracts *registry.ContractRegistry
}

// NewVisualizer returns the Jupiter Visualizer for registration against
// svm.Registry.Register(ProgramID, ...).
func NewVisualizer(contracts *registry.ContractRegistry) svm.Visualizer {
	return Visualizer{Contracts: contracts}
}

func (v Visualizer) Visualize(ctx svm.InstructionContext) (fields.Field, error) {
	if len(ctx.Data) < 8 {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch, "jupiter instruction shorter than an 8-byte discriminator")
	}
	var disc [8]byte
	copy(disc[:], ctx.Data[:8])

	if name, ok := routeNames[disc]; ok {
		return v.visualizeRoute(ctx, name, "In Amount", "Quoted Out Amount")
	}
	if name, ok := exactOutNames[disc]; ok {
		return v.visualizeRoute(ctx, name, "Out Amount", "Quoted In Amount")
	}
	return fields.Field{}, chainerr.NewResolutionError(chainerr.SelectorNotFound,
		"jupiter: unrecognized instruction discriminator 0x%x", disc)
}

// visualizeRoute decodes the trailing {amount: u64, quoted_amount: u64,
// slippage_bps: u16, platform_fee_bps: u8} shared by every route variant;
// the preceding route_plan vec is left undecoded (Jupiter doesn't publish
// its Swap enum's per-AMM wire layout through any dependency this project
// carries) and is not needed to render these summary fields.
func (v Visualizer) visualizeRoute(ctx svm.InstructionContext, title, amountLabel, quotedAmountLabel string) (fields.Field, error) {
	tail := ctx.Data[8:]
	const summaryLen = 8 + 8 + 2 + 1
	if len(tail) < summaryLen {
		return fields.Field{}, chainerr.NewMalformedCalldata(chainerr.LengthMismatch,
			"jupiter route: need %d trailing bytes, have %d", summaryLen, len(tail))
	}
	summary := tail[len(tail)-summaryLen:]
	amount := binary.LittleEndian.Uint64(summary[0:8])
	quotedAmount := binary.LittleEndian.Uint64(summary[8:16])
	slippageBps := binary.LittleEndian.Uint16(summary[16:18])
	platformFeeBps := summary[18]

	inSymbol := v.mintSymbol(ctx.Accounts, inputMintAccountIndex)
	outSymbol := v.mintSymbol(ctx.Accounts, outputMintAccountIndex)

	amountUnits := numfmt.RawUnits(bigFromUint64(amount))
	quotedUnits := numfmt.RawUnits(bigFromUint64(quotedAmount))
	amountF := fields.NewAmountV2(amountLabel, amountUnits, inSymbol, amountWithSymbol(amountUnits, inSymbol))
	quotedF := fields.NewAmountV2(quotedAmountLabel, quotedUnits, outSymbol, amountWithSymbol(quotedUnits, outSymbol))

	condensedText := "Swap " + amountUnits
	if inSymbol != "" {
		condensedText += " " + inSymbol
	}
	condensedText += " → min " + quotedUnits
	if outSymbol != "" {
		condensedText += " " + outSymbol
	}

	condensed := fields.NewListLayout(fields.Plain(fields.NewTextV2("Swap", condensedText)))
	rows := []fields.AnnotatedField{
		fields.Plain(amountF),
		fields.Plain(quotedF),
		fields.Plain(fields.NewNumber("Slippage", itoa(uint64(slippageBps)), bpsToPercent(slippageBps))),
		fields.Plain(fields.NewNumber("Platform Fee", itoa(uint64(platformFeeBps)), bpsToPercent(uint16(platformFeeBps)))),
	}
	for i, acct := range ctx.Accounts {
		label := routeAccountLabel(i)
		assetLabel := ""
		if v.Contracts != nil {
			if info, ok := v.Contracts.LookupSVM(acct.Key.String()); ok {
				assetLabel = info.Symbol
			}
		}
		rows = append(rows, fields.Plain(fields.NewAddressV2(label, acct.Key.String(), "", fields.AddressFieldOpts{AssetLabel: assetLabel})))
	}

	return fields.NewPreviewLayout(title, title, "", condensed, fields.NewListLayout(rows...)), nil
}

// routeAccountLabel names the two fixed mint positions explicitly and
// falls back to a positional label for every other account the route
// passes through (remaining_accounts, whose per-AMM grouping varies by
// route_plan step and isn't recoverable without Jupiter's own IDL).
func routeAccountLabel(i int) string {
	switch i {
	case inputMintAccountIndex:
		return "Input Mint"
	case outputMintAccountIndex:
		return "Output Mint"
	default:
		return "Route Account " + itoa(uint64(i))
	}
}

func (v Visualizer) mintSymbol(accounts []svm.ResolvedAccount, index int) string {
	if v.Contracts == nil || index < 0 || index >= len(accounts) {
		return ""
	}
	info, ok := v.Contracts.LookupSVM(accounts[index].Key.String())
	if !ok {
		return ""
	}
	return info.Symbol
}

func amountWithSymbol(units, symbol string) string {
	if symbol == "" {
		return units + " (raw units)"
	}
	return units + " " + symbol
}

func bpsToPercent(bps uint16) string {
	whole := bps / 100
	frac := bps % 100
	s := itoa(uint64(whole)) + "."
	if frac < 10 {
		s += "0"
	}
	s += itoa(uint64(frac)) + "%"
	return s
}

func bigFromUint64(n uint64) *big.Int { return new(big.Int).SetUint64(n) }

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
