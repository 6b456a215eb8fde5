// Package signal turns SIGINT and SIGTERM into context cancellation so every
// blocking wait in a run (subprocess, backoff, cooldown) can stop promptly.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler registers SIGINT and SIGTERM handlers.
// On the first signal it calls onInterrupt (if non-nil), then cancel.
// The handler is then removed, so a second signal terminates the process
// with the default behavior.
//
// The returned stop function unregisters the handler; it is safe to call
// more than once.
//
// Example usage:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	stop := signal.SetupSignalHandler(ctx, cancel, func() {
//	    fmt.Println("Interrupted, finishing up...")
//	})
//	defer stop()
func SetupSignalHandler(ctx context.Context, cancel context.CancelFunc, onInterrupt func()) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			if onInterrupt != nil {
				onInterrupt()
			}
			cancel()
		case <-ctx.Done():
		case <-done:
		}
	}()

	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		close(done)
		signal.Stop(sigCh)
	}
}
