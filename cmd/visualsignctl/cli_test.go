package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
)

func TestClassifyExit(t *testing.T) {
	t.Parallel()

	require.Equal(t, exitParseError, classifyExit(chainerr.NewParseError(chainerr.BadHex, "bad")))
	require.Equal(t, exitValidationErr, classifyExit(chainerr.NewValidationError(0, "bad field")))
	require.Equal(t, exitOtherError, classifyExit(chainerr.NewResolutionError(chainerr.SelectorNotFound, "nope")))
}

const legacyTransferHex = "f86c808504a817c800825208943535353535353535353535353535353535353535880de0b6b3a76400008025a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276a067cbb6c45adf1ec1f78cb8977a36862b3bde45ef3dc7e44b0ce5eb6a72a4e618"

func TestDoParse_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := doParse("ethereum", legacyTransferHex, "", "json", nil, 0, &buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"payload_type":"EthereumTx"`)
}

func TestDoParse_HumanOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := doParse("ethereum", legacyTransferHex, "", "human", nil, 0, &buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "Ethereum Transaction")
}

func TestDoParse_UnrecognizedOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := doParse("ethereum", legacyTransferHex, "", "xml", nil, 0, &buf)
	require.Error(t, err)
}

func TestDoParse_TransactionFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tx.hex")
	require.NoError(t, os.WriteFile(path, []byte(legacyTransferHex+"\n"), 0o600))

	var buf bytes.Buffer
	err := doParse("ethereum", "", path, "json", nil, 0, &buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "EthereumTx")
}

func TestDoParse_MissingTransaction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := doParse("ethereum", "", "", "json", nil, 0, &buf)
	require.Error(t, err)
}

func TestDoParse_BadChain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := doParse("dogecoin", legacyTransferHex, "", "json", nil, 0, &buf)
	require.Error(t, err)
}

func TestDoParse_RejectsOverMaxPayloadSize(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := doParse("ethereum", legacyTransferHex, "", "json", nil, 4, &buf)
	require.Error(t, err)

	var parseErr *chainerr.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, chainerr.PayloadTooLarge, parseErr.Kind)
}

func TestLoadAbiMappings_MalformedEntry(t *testing.T) {
	t.Parallel()

	_, err := loadAbiMappings([]string{"OnlyName"})
	require.Error(t, err)
}

func TestLoadAbiMappings_BadAddress(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "abi.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"type":"function","name":"foo","inputs":[]}]`), 0o600))

	_, err := loadAbiMappings([]string{"Foo:" + path + ":not-an-address"})
	require.Error(t, err)
}

func TestLoadAbiMappings_Valid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "abi.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"type":"function","name":"foo","inputs":[]}]`), 0o600))

	reg, err := loadAbiMappings([]string{"Foo:" + path + ":0x1111111111111111111111111111111111111111"})
	require.NoError(t, err)
	require.NotNil(t, reg)
}

func TestWriteFieldHuman_Divider(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	writeFieldHuman(&b, fields.NewDivider("solid"), 0)
	require.Contains(t, b.String(), "---")
}
