package rpc

import (
	"context"
	"encoding/json"

	sollib "github.com/gagliardetto/solana-go"
	"google.golang.org/grpc"

	"github.com/anchorageoss/visualsign-parser/chain/svm"
	"github.com/anchorageoss/visualsign-parser/dispatcher"
)

// ParseRequest is the wire shape of a Parse RPC call. Transaction carries
// the same hex-or-base64 encoding dispatcher.DecodeTransactionBytes
// accepts from the CLI's --transaction flag. LookupTables maps an SVM
// address-lookup-table account (base58) to its fetched address list (also
// base58), mirroring svm.LookupTableContent; unused by non-SVM requests.
type ParseRequest struct {
	Chain        string              `json:"chain"`
	Transaction  string              `json:"transaction"`
	LookupTables map[string][]string `json:"lookup_tables,omitempty"`
}

// ParseResponse wraps the assembled payload, pre-rendered to its canonical
// JSON form so callers never need this module's internal field types.
type ParseResponse struct {
	Payload json.RawMessage `json:"payload"`
}

// HealthRequest and HealthResponse back the Health RPC, a liveness probe
// with no parameters worth naming yet.
type HealthRequest struct{}

type HealthResponse struct {
	Status string `json:"status"`
}

// Service implements the Parse and Health RPCs over a shared
// *dispatcher.Registries, exactly as cmd/visualsignctl shares one across
// every --transaction invocation.
type Service struct {
	Registries *dispatcher.Registries
}

func (s *Service) parse(ctx context.Context, req *ParseRequest) (*ParseResponse, error) {
	chain, err := dispatcher.ParseChain(req.Chain)
	if err != nil {
		return nil, err
	}
	raw, err := dispatcher.DecodeTransactionBytes(req.Transaction)
	if err != nil {
		return nil, err
	}

	tables, err := decodeLookupTables(req.LookupTables)
	if err != nil {
		return nil, err
	}

	payload, err := s.Registries.Parse(dispatcher.Request{
		Chain:        chain,
		Payload:      raw,
		LookupTables: tables,
	})
	if err != nil {
		return nil, err
	}

	out, err := payload.CanonicalJSON()
	if err != nil {
		return nil, err
	}
	return &ParseResponse{Payload: out}, nil
}

func (s *Service) health(context.Context, *HealthRequest) (*HealthResponse, error) {
	return &HealthResponse{Status: "ok"}, nil
}

// serviceName matches the ordinary dotted-path convention generated
// protobuf stubs use, so a grpcurl/grpc-gateway client pointed at this
// service needs no special casing versus a codegen'd one.
const serviceName = "visualsign.Parser"

// ServiceDesc is the hand-rolled equivalent of a generated *_grpc.pb.go's
// service descriptor: grpc.Server.RegisterService needs exactly this shape,
// generated code or not.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Parse",
			Handler:    parseHandler,
		},
		{
			MethodName: "Health",
			Handler:    healthHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "visualsign/rpc.proto",
}

func parseHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(ParseRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	svc := srv.(*Service)
	if interceptor == nil {
		return svc.parse(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Parse"}
	handler := func(ctx context.Context, req any) (any, error) {
		return svc.parse(ctx, req.(*ParseRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func healthHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(HealthRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	svc := srv.(*Service)
	if interceptor == nil {
		return svc.health(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Health"}
	handler := func(ctx context.Context, req any) (any, error) {
		return svc.health(ctx, req.(*HealthRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func decodeLookupTables(in map[string][]string) (map[string]svm.LookupTableContent, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[string]svm.LookupTableContent, len(in))
	for table, addrs := range in {
		keys := make([]sollib.PublicKey, 0, len(addrs))
		for _, a := range addrs {
			key, err := sollib.PublicKeyFromBase58(a)
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
		}
		out[table] = svm.LookupTableContent{Addresses: keys}
	}
	return out, nil
}
