package numfmt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsSignedProperNumber(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"0":      true,
		"0.5":    true,
		"-0.5":   true,
		"100":    true,
		"01":     false,
		"1.50":   false,
		"1.":     false,
		"":       false,
		"-0":     true,
		"1e10":   false,
	}
	for in, want := range tests {
		require.Equal(t, want, IsSignedProperNumber(in), "input %q", in)
	}
}

func TestTokenAmount(t *testing.T) {
	t.Parallel()

	got := TokenAmount(big.NewInt(1_000_000), 6)
	require.Equal(t, "1", got)

	got = TokenAmount(big.NewInt(1_500_000), 6)
	require.Equal(t, "1.5", got)

	got = TokenAmount(big.NewInt(110_000_000_000), 6)
	require.Equal(t, "110000", got)
}

func TestFormatEtherValue_SwitchesToGwei(t *testing.T) {
	t.Parallel()

	oneEth := new(big.Int)
	oneEth.SetString("1000000000000000000", 10)
	amount, unit := FormatEtherValue(oneEth)
	require.Equal(t, "1", amount)
	require.Equal(t, "ETH", unit)

	tinyWei := big.NewInt(100) // far below 1e-6 ETH
	amount, unit = FormatEtherValue(tinyWei)
	require.Equal(t, "gwei", unit)
	require.Equal(t, "0.0000001", amount)
}

func TestFormatEtherValue_Zero(t *testing.T) {
	t.Parallel()

	amount, unit := FormatEtherValue(big.NewInt(0))
	require.Equal(t, "0", amount)
	require.Equal(t, "ETH", unit)
}
