package rpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anchorageoss/visualsign-parser/chain/evm/abi"
	"github.com/anchorageoss/visualsign-parser/dispatcher"
	"github.com/anchorageoss/visualsign-parser/internal/obslog"
)

func TestNewServer_StartStop(t *testing.T) {
	t.Parallel()

	regs := dispatcher.NewRegistries(abi.NewRegistry())
	srv, err := NewServer(regs, obslog.NewNop(), "127.0.0.1:0")
	require.NoError(t, err)
	require.NotEmpty(t, srv.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	srv.Stop(ctx)

	require.NoError(t, <-errCh)
}
