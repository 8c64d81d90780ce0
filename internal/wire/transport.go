// Package wire implements the byte-transport layer: a reliable,
// ordered, bidirectional stream with exact-count send/receive and a
// deadline-bounded accept. Everything above this layer (codec,
// remote-IO protocol) is built on the Transport interface, never on
// net.Conn directly.
package wire

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
)

// ErrPeerClosed indicates the peer performed an orderly close before
// a required read or write completed.
var ErrPeerClosed = errors.New("wire: peer closed connection")

// ErrAcceptTimeout indicates AcceptWithDeadline's deadline elapsed
// with no pending connection.
var ErrAcceptTimeout = errors.New("wire: accept deadline exceeded")

// IOError wraps a transport failure that isn't a clean peer close.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("wire: %s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// Transport is a reliable, ordered, bidirectional byte stream.
type Transport interface {
	// SendExact writes every byte of b or returns an error. It never
	// returns a short write.
	SendExact(b []byte) error
	// ReceiveExact blocks until exactly n bytes have been read, or
	// returns ErrPeerClosed / an *IOError.
	ReceiveExact(n int) ([]byte, error)
	// ReceiveUpTo reads at most n bytes in a single underlying Read
	// and returns however many were actually available.
	ReceiveUpTo(n int) ([]byte, error)
	// Close is idempotent.
	Close() error
	// IsAlive reports whether the transport has not yet been closed
	// locally. It does not probe the peer.
	IsAlive() bool
}

type connTransport struct {
	conn net.Conn

	mu     sync.Mutex
	closed bool
}

// NewTransport wraps an established net.Conn (TCP in practice; any
// reliable ordered stream works).
func NewTransport(conn net.Conn) Transport {
	return &connTransport{conn: conn}
}

func (t *connTransport) SendExact(b []byte) error {
	total := 0
	for total < len(b) {
		n, err := t.conn.Write(b[total:])
		total += n
		if err != nil {
			if isClosedOrEOF(err) {
				return ErrPeerClosed
			}
			return &IOError{Op: "send", Err: err}
		}
	}
	return nil
}

func (t *connTransport) ReceiveExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := io.ReadFull(t.conn, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || isClosedOrEOF(err) {
			return nil, ErrPeerClosed
		}
		return nil, &IOError{Op: "receive", Err: err}
	}
	return buf, nil
}

func (t *connTransport) ReceiveUpTo(n int) ([]byte, error) {
	buf := make([]byte, n)
	k, err := t.conn.Read(buf)
	if k > 0 {
		return buf[:k], nil
	}
	if err != nil {
		if errors.Is(err, io.EOF) || isClosedOrEOF(err) {
			return nil, ErrPeerClosed
		}
		return nil, &IOError{Op: "receive", Err: err}
	}
	return buf[:0], nil
}

func (t *connTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	return t.conn.Close()
}

func (t *connTransport) IsAlive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.closed
}

func isClosedOrEOF(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) {
		return true
	}
	return false
}
