package wire

import (
	"context"
	"net"
	"time"
)

// Listener accepts incoming Transports on a bound address.
type Listener struct {
	ln net.Listener
}

// Listen binds a TCP listener at addr, enabling SO_REUSEADDR so a
// restarted server can rebind without waiting out TIME_WAIT.
func Listen(network, addr string) (*Listener, error) {
	lc := reuseAddrListenConfig()
	ln, err := lc.Listen(context.Background(), network, addr)
	if err != nil {
		return nil, &IOError{Op: "listen", Err: err}
	}
	return &Listener{ln: ln}, nil
}

// AcceptWithDeadline blocks for at most d for an incoming connection.
// On timeout it returns ErrAcceptTimeout; the listener remains open
// and usable for a subsequent call.
func (l *Listener) AcceptWithDeadline(d time.Duration) (Transport, error) {
	if tl, ok := l.ln.(interface{ SetDeadline(time.Time) error }); ok {
		if err := tl.SetDeadline(time.Now().Add(d)); err != nil {
			return nil, &IOError{Op: "set-accept-deadline", Err: err}
		}
	}
	conn, err := l.ln.Accept()
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, ErrAcceptTimeout
		}
		return nil, &IOError{Op: "accept", Err: err}
	}
	return NewTransport(conn), nil
}

// Close closes the underlying listener, waking any blocked Accept.
func (l *Listener) Close() error {
	return l.ln.Close()
}

// Addr returns the listener's bound address.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}
