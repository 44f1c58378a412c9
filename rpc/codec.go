// Package rpc exposes a thin gRPC service wrapping dispatcher.Registries.Parse.
// Request and response messages are plain Go structs rather than generated
// protobuf: this is a collaborator at the edge of the system, not a core
// wire format the module owns, so a JSON encoding.Codec keeps it dependency-
// light while google.golang.org/protobuf stays a real import elsewhere (the
// Tron codec decodes wire protobuf messages).
package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements google.golang.org/grpc/encoding.Codec. grpc-go
// selects a codec per request by the content-subtype in the "content-type"
// header ("application/grpc+json" here), so registering this by name is
// enough to make both client and server use it without any ServerOption.
type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("rpc: marshal %T: %w", v, err)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("rpc: unmarshal into %T: %w", v, err)
	}
	return nil
}
