package rpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/dispatcher"
)

const legacyTransferHex = "f86c808504a817c800825208943535353535353535353535353535353535353535880de0b6b3a76400008025a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276a067cbb6c45adf1ec1f78cb8977a36862b3bde45ef3dc7e44b0ce5eb6a72a4e618"

func newTestService() *Service {
	return &Service{Registries: dispatcher.NewRegistries(abi.NewRegistry())}
}

func TestService_Parse_EVM(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	resp, err := svc.parse(context.Background(), &ParseRequest{
		Chain:       "ethereum",
		Transaction: legacyTransferHex,
	})
	require.NoError(t, err)
	require.Contains(t, string(resp.Payload), `"payload_type":"EthereumTx"`)
}

func TestService_Parse_UnrecognizedChain(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	_, err := svc.parse(context.Background(), &ParseRequest{
		Chain:       "dogecoin",
		Transaction: legacyTransferHex,
	})
	require.Error(t, err)
}

func TestService_Parse_BadLookupTableAddress(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	_, err := svc.parse(context.Background(), &ParseRequest{
		Chain:       "solana",
		Transaction: "AQL/",
		LookupTables: map[string][]string{
			"sometable": {"not-base58!!"},
		},
	})
	require.Error(t, err)
}

func TestService_Health(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	resp, err := svc.health(context.Background(), &HealthRequest{})
	require.NoError(t, err)
	require.Equal(t, "ok", resp.Status)
}

func TestJSONCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	c := jsonCodec{}
	require.Equal(t, "json", c.Name())

	in := &HealthResponse{Status: "ok"}
	b, err := c.Marshal(in)
	require.NoError(t, err)

	var out HealthResponse
	require.NoError(t, c.Unmarshal(b, &out))
	require.Equal(t, in.Status, out.Status)
}
