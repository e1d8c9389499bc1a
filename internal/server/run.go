package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// ErrListen is returned when the server address cannot be bound.
var ErrListen = errors.New("cannot listen")

// Server timeouts.
const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 120 * time.Second // PDF export runs inside the request
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Run serves h on addr until ctx is done, then shuts down gracefully.
// ready, if non-nil, receives the bound address once listening.
func Run(ctx context.Context, addr string, h http.Handler, log *slog.Logger, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrListen, err)
	}

	httpServer := &http.Server{
		Handler:      h,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	log.Info("starting preview server", "addr", ln.Addr().String())
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
