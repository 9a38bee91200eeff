// Package netutil provides small address and port helpers used alongside
// the checksum tooling.
package netutil

import "net/netip"

// AddrPortString renders an address and port as "addr:port", bracketing
// IPv6 addresses ("[2001:db8::1]:5060").
func AddrPortString(addr netip.Addr, port uint16) string {
	return netip.AddrPortFrom(addr, port).String()
}

// IsValidPort reports whether port is a usable TCP or UDP port number.
// Port 0 is reserved and never valid here.
func IsValidPort(port int) bool {
	return port > 0 && port < 65536
}
