package abi

import (
	"encoding/json"

	"github.com/anchorageoss/visualsign-parser/internal/chainerr"
)

// jsonParam mirrors one entry of a Solidity ABI JSON "inputs"/"outputs"
// array. Tuples use "components".
type jsonParam struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Components []jsonParam `json:"components,omitempty"`
}

// jsonEntry mirrors one top-level ABI JSON array element. Only
// type:"function" entries are used; anything else (event, error,
// constructor, fallback, receive) is skipped.
type jsonEntry struct {
	Type    string      `json:"type"`
	Name    string      `json:"name"`
	Inputs  []jsonParam `json:"inputs"`
	Outputs []jsonParam `json:"outputs"`
}

// ParseJSON parses a Solidity `--abi` JSON document (an array of function
// descriptors into a named Abi with selectors computed.
func ParseJSON(name string, doc []byte) (*Abi, error) {
	var entries []jsonEntry
	if err := json.Unmarshal(doc, &entries); err != nil {
		return nil, chainerr.NewConfigError(chainerr.MalformedAbiJSON, "abi %q: %s", name, err.Error())
	}

	var functions []Function
	for _, e := range entries {
		if e.Type != "function" {
			continue
		}
		inputs, err := convertParams(e.Inputs)
		if err != nil {
			return nil, chainerr.NewConfigError(chainerr.MalformedAbiJSON, "abi %q function %q: %s", name, e.Name, err.Error())
		}
		outputs, err := convertParams(e.Outputs)
		if err != nil {
			return nil, chainerr.NewConfigError(chainerr.MalformedAbiJSON, "abi %q function %q: %s", name, e.Name, err.Error())
		}
		functions = append(functions, Function{Name: e.Name, Inputs: inputs, Outputs: outputs})
	}

	return NewAbi(name, functions)
}

func convertParams(params []jsonParam) ([]Field, error) {
	fields := make([]Field, len(params))
	for i, p := range params {
		components, err := convertParams(p.Components)
		if err != nil {
			return nil, err
		}
		t, err := ParseType(p.Type, components)
		if err != nil {
			return nil, err
		}
		fields[i] = Field{Name: p.Name, Type: t}
	}
	return fields, nil
}
