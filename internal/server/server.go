// Package server wires together the listener, worker pool, and
// session machine into the knnd daemon: accept a connection, hand it
// to a pooled worker, drive that worker's session.Machine until the
// client exits or the transport fails.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/ehrlich-b/knn-service/internal/config"
	"github.com/ehrlich-b/knn-service/internal/knn"
	"github.com/ehrlich-b/knn-service/internal/wire"
)

// Run loads the shared training set, binds the listener, and serves
// sessions until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	shared := knn.NewDataSet()
	if cfg.SharedTrainPath != "" {
		f, err := os.Open(cfg.SharedTrainPath)
		if err != nil {
			return fmt.Errorf("open shared training set: %w", err)
		}
		loaded, err := knn.LoadCSV(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load shared training set: %w", err)
		}
		shared = loaded
	}

	addr := fmt.Sprintf("%s:%d", cfg.BindIP, cfg.BindPort)
	ln, err := wire.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	defer ln.Close()

	// Closing the listener on cancellation wakes a blocked Accept.
	stopClose := context.AfterFunc(ctx, func() { ln.Close() })
	defer stopClose()

	pool := NewPool(cfg.Pool())
	defer pool.Shutdown()

	acc := &Acceptor{
		Listener:      ln,
		Pool:          pool,
		Shared:        shared,
		Log:           log,
		AcceptTimeout: cfg.AcceptTimeoutDuration(),
	}

	log.Info("knnd listening", "addr", addr, "pool_size", cfg.Pool(),
		"training_points", humanize.Comma(int64(shared.Len())),
		"accept_timeout", cfg.AcceptTimeoutDuration())
	if err := acc.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
