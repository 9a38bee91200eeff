// Package header provides byte-slice views over IP and transport headers
// in network byte order, plus helpers that verify or rewrite the checksum
// fields of a framed packet in place.
//
// Views are plain slices: constructing one never copies or validates.
// Accessors index directly into the slice, so a view over a truncated
// header panics the same way a short slice access does. Callers that work
// with untrusted input should length-check before taking a view.
package header

import "errors"

// Header sizes fixed by the protocol layouts.
const (
	IPv4MinLen = 20
	IPv6Len    = 40
	TCPMinLen  = 20
	UDPLen     = 8
	ICMPMinLen = 8
)

// ErrUnsupportedTransport is returned when a checksum operation is asked
// for a transport protocol that carries no checksum field this package
// knows about.
var ErrUnsupportedTransport = errors.New("header: unsupported transport protocol")

// IPVersion returns the IP version nibble of the packet's first byte, or 0
// for an empty packet. Values other than 4 and 6 are returned as-is.
func IPVersion(pkt []byte) int {
	if len(pkt) == 0 {
		return 0
	}
	return int(pkt[0] >> 4)
}
