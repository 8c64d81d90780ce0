//go:build windows

package wire

import "net"

// reuseAddrListenConfig is a no-op on Windows, where SO_REUSEADDR has
// different (unsafe-for-us) semantics than on POSIX systems.
func reuseAddrListenConfig() net.ListenConfig {
	return net.ListenConfig{}
}
