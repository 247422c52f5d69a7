package shutdown

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"fedisync/pkg/logger"
)

// SetupSignalHandler installs handlers for SIGINT/SIGTERM and SIGPIPE and
// returns a cancellable context. The returned context is cancelled when
// any of the watched signals arrives.
func SetupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigc
		logger.Log.Info("signal_received",
			zap.String("signal", s.String()),
			zap.String("msg", "shutdown requested"))
		cancel()
	}()

	// SIGPIPE gets a goroutine stack dump to aid diagnostics.
	sigpipe := make(chan os.Signal, 1)
	signal.Notify(sigpipe, syscall.SIGPIPE)
	go func() {
		s := <-sigpipe
		buf := make([]byte, 1<<20)
		n := runtime.Stack(buf, true)
		logger.Log.Info("signal_received",
			zap.String("signal", s.String()),
			zap.String("dump", string(buf[:n])))
		cancel()
	}()

	return ctx, cancel
}
