// pkg/eos_cli/signals.go
//
// Signal handling for credgen commands.
// Ctrl-C cancels the command context so long-running loops stop cleanly.

package eos_cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// SignalHandler cancels its context on SIGINT or SIGTERM.
type SignalHandler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	sigChan  chan os.Signal
	doneChan chan struct{}
	stopOnce sync.Once
	received atomic.Bool
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(ctx context.Context) *SignalHandler {
	ctx, cancel := context.WithCancel(ctx)

	handler := &SignalHandler{
		ctx:      ctx,
		cancel:   cancel,
		sigChan:  make(chan os.Signal, 1),
		doneChan: make(chan struct{}),
	}

	signal.Notify(handler.sigChan, os.Interrupt, syscall.SIGTERM)
	go handler.handleSignals()

	return handler
}

// Context returns the cancellable context
// Operations should use this context to detect cancellation
func (h *SignalHandler) Context() context.Context {
	return h.ctx
}

// Interrupted reports whether a signal cancelled the context.
func (h *SignalHandler) Interrupted() bool {
	return h.received.Load()
}

// Stop unregisters the handler and releases the context.
func (h *SignalHandler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.doneChan)
		h.cancel()
	})
}

func (h *SignalHandler) handleSignals() {
	select {
	case sig := <-h.sigChan:
		otelzap.Ctx(h.ctx).Warn("Received signal, cancelling command",
			zap.String("signal", sig.String()))
		h.received.Store(true)
		h.cancel()
	case <-h.doneChan:
	}
}

// trigger simulates a delivered signal.
func (h *SignalHandler) trigger(sig os.Signal) {
	select {
	case h.sigChan <- sig:
	default:
	}
}
