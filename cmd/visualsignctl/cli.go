package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/dispatcher"
	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
	"github.com/anchorageoss/visualsign-parser/internal/fields"
	"github.com/anchorageoss/visualsign-parser/internal/obslog"
)

const (
	exitSuccess       = 0
	exitOtherError    = 1
	exitParseError    = 2
	exitValidationErr = 3
)

// run builds and executes the root command, translating the first error
// that surfaces into one of the four documented exit codes.
func run(log obslog.Logger) int {
	var (
		chainFlag       string
		transaction     string
		transactionFile string
		output          string
		abiMappings     []string
		maxPayloadSize  int
	)

	root := &cobra.Command{
		Use:           "visualsignctl",
		Short:         "Decode an unsigned blockchain transaction into a SignablePayload",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doParse(chainFlag, transaction, transactionFile, output, abiMappings, maxPayloadSize, cmd.OutOrStdout())
		},
	}

	root.Flags().StringVar(&chainFlag, "chain", "", "chain family: ethereum|solana|sui|tron")
	root.Flags().StringVar(&transaction, "transaction", "", "unsigned transaction, hex or base64")
	root.Flags().StringVar(&transactionFile, "transaction-file", "", "path to a file containing the unsigned transaction")
	root.Flags().StringVar(&output, "output", "json", "output format: json|human")
	root.Flags().StringArrayVar(&abiMappings, "abi-json-mappings", nil, "Name:Path:0xAddress, repeatable")
	root.Flags().IntVar(&maxPayloadSize, "max-payload-size", fields.MaxPayloadSize, "reject transactions larger than this many bytes")

	if err := root.Execute(); err != nil {
		log.Errorw("parse failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return classifyExit(err)
	}
	return exitSuccess
}

// classifyExit maps an error onto the CLI's documented exit codes: 2 for a
// ParseError (the input itself could not be decoded), 3 for a
// ValidationError (an internal contract broken by a visualizer), 1 for
// anything else (bad flags, resolution failures that reach here unwrapped).
func classifyExit(err error) int {
	var parseErr *chainerr.ParseError
	if errors.As(err, &parseErr) {
		return exitParseError
	}
	var validationErr *chainerr.ValidationError
	if errors.As(err, &validationErr) {
		return exitValidationErr
	}
	return exitOtherError
}

func doParse(chainFlag, transaction, transactionFile, output string, abiMappings []string, maxPayloadSize int, w io.Writer) error {
	chain, err := dispatcher.ParseChain(chainFlag)
	if err != nil {
		return err
	}

	raw, err := readTransaction(transaction, transactionFile)
	if err != nil {
		return err
	}
	if maxPayloadSize > 0 && len(raw) > maxPayloadSize {
		return chainerr.NewParseError(chainerr.PayloadTooLarge, "transaction is %d bytes, exceeds --max-payload-size %d", len(raw), maxPayloadSize)
	}

	abiRegistry, err := loadAbiMappings(abiMappings)
	if err != nil {
		return err
	}

	regs := dispatcher.NewRegistries(abiRegistry)
	payload, err := regs.Parse(dispatcher.Request{Chain: chain, Payload: raw})
	if err != nil {
		return err
	}

	return printPayload(payload, output, w)
}

func readTransaction(transaction, transactionFile string) ([]byte, error) {
	if transactionFile != "" {
		data, err := os.ReadFile(transactionFile)
		if err != nil {
			return nil, chainerr.NewParseError(chainerr.TruncatedInput, "cannot read transaction file: %s", err.Error())
		}
		return dispatcher.DecodeTransactionBytes(strings.TrimSpace(string(data)))
	}
	if transaction == "" {
		return nil, chainerr.NewParseError(chainerr.TruncatedInput, "one of --transaction or --transaction-file is required")
	}
	return dispatcher.DecodeTransactionBytes(transaction)
}

// loadAbiMappings parses repeated "Name:Path:0xAddress" entries into an ABI
// registry, each naming a Solidity ABI JSON file and the single EVM mainnet
// address it should resolve selectors for.
func loadAbiMappings(mappings []string) (*abi.Registry, error) {
	reg := abi.NewRegistry()
	for _, m := range mappings {
		parts := strings.SplitN(m, ":", 3)
		if len(parts) != 3 {
			return nil, chainerr.NewConfigError(chainerr.MalformedAbiJSON,
				"--abi-json-mappings entry %q must be Name:Path:0xAddress", m)
		}
		name, path, addrHex := parts[0], parts[1], parts[2]

		doc, err := os.ReadFile(path)
		if err != nil {
			return nil, chainerr.NewConfigError(chainerr.MalformedAbiJSON, "abi %q: %s", name, err.Error())
		}
		parsed, err := abi.ParseJSON(name, doc)
		if err != nil {
			return nil, err
		}
		if err := reg.RegisterAbi(parsed); err != nil {
			return nil, err
		}
		if !common.IsHexAddress(addrHex) {
			return nil, chainerr.NewConfigError(chainerr.AddressMappingMalformed, "abi %q: %q is not a valid address", name, addrHex)
		}
		if err := reg.MapAddress(dispatcher.EthereumMainnetChainID, common.HexToAddress(addrHex), name); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func printPayload(payload *fields.SignablePayload, output string, w io.Writer) error {
	switch output {
	case "", "json":
		out, err := payload.CanonicalJSON()
		if err != nil {
			return err
		}
		_, err = w.Write(append(out, '\n'))
		return err
	case "human":
		return printHuman(payload, w)
	default:
		return fmt.Errorf("unrecognized --output %q, want json or human", output)
	}
}

func printHuman(payload *fields.SignablePayload, w io.Writer) error {
	var b strings.Builder
	b.WriteString(payload.Title)
	if payload.Subtitle != "" {
		b.WriteString(" — " + payload.Subtitle)
	}
	b.WriteString("\n")
	for _, f := range payload.Fields {
		writeFieldHuman(&b, f, 0)
	}
	_, err := w.Write([]byte(b.String()))
	return err
}

func writeFieldHuman(b *strings.Builder, f fields.Field, depth int) {
	indent := strings.Repeat("  ", depth)
	switch f.Type {
	case fields.TypeDivider:
		b.WriteString(indent + "---\n")
	case fields.TypePreviewLayout:
		b.WriteString(indent + f.PreviewLayout.Title + "\n")
		for _, af := range f.PreviewLayout.Expanded.Fields {
			writeFieldHuman(b, af.Field, depth+1)
		}
	case fields.TypeListLayout:
		for _, af := range f.ListLayout.Fields {
			writeFieldHuman(b, af.Field, depth)
		}
	default:
		label := f.Label
		if label == "" {
			label = string(f.Type)
		}
		b.WriteString(indent + label + ": " + f.FallbackText + "\n")
	}
}
