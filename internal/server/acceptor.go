package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ehrlich-b/knn-service/internal/codec"
	"github.com/ehrlich-b/knn-service/internal/knn"
	"github.com/ehrlich-b/knn-service/internal/remoteio"
	"github.com/ehrlich-b/knn-service/internal/session"
	"github.com/ehrlich-b/knn-service/internal/wire"
)

// Acceptor owns the listening socket and hands each accepted
// connection to the worker pool as one session job.
type Acceptor struct {
	Listener      *wire.Listener
	Pool          *Pool
	Shared        *knn.DataSet
	Log           *slog.Logger
	AcceptTimeout time.Duration
}

// Serve loops accepting connections until ctx is cancelled or a full
// AcceptTimeout elapses with no pending connection, at which point it
// returns cleanly so the caller's deferred Pool.Shutdown runs and the
// process exits 0 instead of hanging forever on an idle listener.
func (a *Acceptor) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		t, err := a.Listener.AcceptWithDeadline(a.AcceptTimeout)
		if err != nil {
			if errors.Is(err, wire.ErrAcceptTimeout) {
				a.Log.Info("accept deadline elapsed, shutting down")
				return nil
			}
			return err
		}

		sessionID := uuid.NewString()
		a.Log.Info("session accepted", "session_id", sessionID)
		a.Pool.Submit(func() {
			a.runSession(sessionID, t)
		})
	}
}

func (a *Acceptor) runSession(sessionID string, t wire.Transport) {
	defer t.Close()

	c := codec.New(t)
	ep := remoteio.NewServer(c)
	m := session.NewMachine(ep, a.Shared, a.Log, sessionID)

	if err := m.Run(); err != nil {
		if errors.Is(err, wire.ErrPeerClosed) {
			a.Log.Info("session closed by peer", "session_id", sessionID)
			return
		}
		a.Log.Warn("session ended with error", "session_id", sessionID, "error", err)
	}
}
