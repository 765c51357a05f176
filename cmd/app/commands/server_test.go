package commands

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer blocks in Start until Shutdown is called, or fails immediately
// when startErr is set.
type fakeServer struct {
	startErr    error
	shutdownErr error
	stopped     chan struct{}
	shutdowns   atomic.Int32
}

func newFakeServer() *fakeServer {
	return &fakeServer{stopped: make(chan struct{})}
}

func (s *fakeServer) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-s.stopped
	return nil
}

func (s *fakeServer) Shutdown(ctx context.Context) error {
	if s.shutdowns.Add(1) == 1 {
		close(s.stopped)
	}
	return s.shutdownErr
}

func TestRunServers(t *testing.T) {
	logger := discardLogger()

	t.Run("context cancellation shuts every server down", func(t *testing.T) {
		api := newFakeServer()
		metricsSrv := newFakeServer()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- runServers(ctx, logger, time.Second, api, metricsSrv)
		}()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("runServers did not return")
		}
		assert.Equal(t, int32(1), api.shutdowns.Load())
		assert.Equal(t, int32(1), metricsSrv.shutdowns.Load())
	})

	t.Run("start failure stops the other servers", func(t *testing.T) {
		startErr := errors.New("address already in use")
		api := newFakeServer()
		metricsSrv := newFakeServer()
		metricsSrv.startErr = startErr

		err := runServers(context.Background(), logger, time.Second, api, metricsSrv)
		require.ErrorIs(t, err, startErr)
		assert.Equal(t, int32(1), api.shutdowns.Load())
	})

	t.Run("shutdown error is reported", func(t *testing.T) {
		shutdownErr := errors.New("deadline exceeded")
		api := newFakeServer()
		api.shutdownErr = shutdownErr

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := runServers(ctx, logger, time.Second, api)
		require.ErrorIs(t, err, shutdownErr)
	})
}
