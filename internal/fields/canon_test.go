package fields

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalJSON_Deterministic(t *testing.T) {
	t.Parallel()

	build := func() *SignablePayload {
		return New("EthereumTx", "Ethereum Transaction", "", []Field{
			NewTextV2("Network", "Ethereum Mainnet"),
			NewAddressV2("To", "0x3535353535353535353535353535353535353535", "", AddressFieldOpts{}),
			NewAmountV2("Value", "1", "ETH", "1 ETH"),
		})
	}

	a, err := build().CanonicalJSON()
	require.NoError(t, err)
	b, err := build().CanonicalJSON()
	require.NoError(t, err)

	require.Equal(t, string(a), string(b))
	require.NotContains(t, string(a), " ")
	require.NotContains(t, string(a), "\n")
}

func TestCanonicalJSON_VersionIsString(t *testing.T) {
	t.Parallel()

	p := New("EthereumTx", "Ethereum Transaction", "", nil)
	out, err := p.CanonicalJSON()
	require.NoError(t, err)
	require.Contains(t, string(out), `"version":"0"`)
}

func TestCanonicalJSON_OmitsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	p := New("EthereumTx", "Ethereum Transaction", "", nil)
	out, err := p.CanonicalJSON()
	require.NoError(t, err)
	require.NotContains(t, string(out), "subtitle")
	require.NotContains(t, string(out), "endorsed_params_digest")
}
