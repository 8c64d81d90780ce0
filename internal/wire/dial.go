package wire

import "net"

// Dial connects to addr over network and wraps the resulting
// connection as a Transport, binding the local address to localAddr
// when non-empty.
func Dial(network, localAddr, addr string) (Transport, error) {
	d := net.Dialer{}
	if localAddr != "" {
		laddr, err := net.ResolveTCPAddr(network, localAddr+":0")
		if err != nil {
			return nil, &IOError{Op: "resolve-local-addr", Err: err}
		}
		d.LocalAddr = laddr
	}
	conn, err := d.Dial(network, addr)
	if err != nil {
		return nil, &IOError{Op: "dial", Err: err}
	}
	return NewTransport(conn), nil
}
