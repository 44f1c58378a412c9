package chainerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseError_Formatting(t *testing.T) {
	t.Parallel()

	err := NewParseErrorAt(TrailingData, 21, "%d unexpected bytes after RLP list", 3)
	require.Contains(t, err.Error(), "trailing_data")
	require.Contains(t, err.Error(), "byte 21")
}

func TestValidationError_UnwrapsToSentinel(t *testing.T) {
	t.Parallel()

	err := NewValidationError(2, "amount is not a proper number")
	require.True(t, errors.Is(err, ErrValidation))
}

func TestIsDegradable(t *testing.T) {
	t.Parallel()

	require.True(t, IsDegradable(NewResolutionError(AltUnresolved, "table %s idx %d", "tbl", 3)))
	require.True(t, IsDegradable(NewMalformedCalldata(OffsetOverflow, "offset beyond calldata length")))
	require.False(t, IsDegradable(NewParseError(TruncatedInput, "input ended mid RLP list")))
	require.False(t, IsDegradable(NewValidationError(0, "bad field")))
}
