package fields

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTextV2_Validates(t *testing.T) {
	t.Parallel()

	f := NewTextV2("Memo", "hello world")
	require.NoError(t, f.Validate(0))
}

func TestNewAmountV2_RejectsBadNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"integer", "100", false},
		{"decimal", "1.5", false},
		{"negative", "-1.5", false},
		{"zero", "0", false},
		{"leading zero", "01.5", true},
		{"trailing zero", "1.50", true},
		{"empty", "", true},
		{"bare dot", "1.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := NewAmountV2("Amount", tt.amount, "USDT", tt.amount+" USDT")
			err := f.Validate(0)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestField_ExactlyOnePayload(t *testing.T) {
	t.Parallel()

	f := NewTextV2("Memo", "hello")
	// Setting a second variant's payload alongside Type=text_v2 is rejected.
	f.Text = &TextPayload{Text: "hello"}

	err := f.Validate(0)
	require.Error(t, err)
}

func TestPreviewLayout_RejectsNestedCondensed(t *testing.T) {
	t.Parallel()

	nested := NewPreviewLayout("Inner", "Inner Action", "", NewListLayout(), NewListLayout())
	outer := NewPreviewLayout("Outer", "Outer Action", "",
		NewListLayout(Plain(nested)),
		NewListLayout(Plain(nested)),
	)

	err := outer.Validate(0)
	require.Error(t, err)
}

func TestUnknown_RequiresHexAndExplanation(t *testing.T) {
	t.Parallel()

	f := NewUnknown("Calldata", []byte{0xde, 0xad, 0xbe, 0xef}, "unrecognized selector 0xdeadbeef")
	require.NoError(t, f.Validate(0))
	require.Equal(t, "deadbeef", f.Unknown.Data)
}

func TestSignablePayload_ValidateAbortsOnBadField(t *testing.T) {
	t.Parallel()

	bad := NewAmountV2("Amount", "01.00", "", "bad")
	p := New("EthereumTx", "Ethereum Transaction", "", []Field{
		NewTextV2("Network", "Ethereum Mainnet"),
		bad,
	})

	require.Error(t, p.Validate())
}
