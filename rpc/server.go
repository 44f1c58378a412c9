package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/anchorageoss/visualsign-parser/dispatcher"
	"github.com/anchorageoss/visualsign-parser/internal/obslog"
)

// Server wraps a *grpc.Server bound to one listener, carrying its own
// *dispatcher.Registries so every Parse call shares the same bundled
// protocol presets without rebuilding them per request.
type Server struct {
	log        obslog.Logger
	grpcServer *grpc.Server
	listener   net.Listener
}

// NewServer builds a Server registered against addr but does not start
// accepting connections until Start is called.
func NewServer(regs *dispatcher.Registries, log obslog.Logger, addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("rpc: listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer()
	grpcServer.RegisterService(&ServiceDesc, &Service{Registries: regs})
	reflection.Register(grpcServer)

	return &Server{log: log.Named("rpc"), grpcServer: grpcServer, listener: listener}, nil
}

// Addr returns the address the listener is actually bound to, useful when
// NewServer was given a ":0" port.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start blocks serving requests until Stop is called or the listener fails.
// It returns nil after Stop, including when Stop ran before serving began.
func (s *Server) Start() error {
	s.log.Infow("rpc server listening", "addr", s.Addr())
	if err := s.grpcServer.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop gracefully drains in-flight requests before shutting down, falling
// back to an immediate stop once ctx is done.
func (s *Server) Stop(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.grpcServer.Stop()
	}
}
