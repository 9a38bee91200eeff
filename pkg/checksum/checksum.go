// Package checksum implements the Internet checksum (RFC 1071) used for
// IPv4 header checksums and for TCP, UDP, ICMPv4 and ICMPv6 transport
// checksums, computed over raw packet bytes in network byte order.
//
// All functions are pure and never mutate their input. Offsets are trusted:
// an offset outside the buffer panics via the normal bounds check. Only the
// sign of a transport length and the IP version nibble are validated,
// matching the permissiveness of the checksum users in real stacks.
package checksum

import (
	"encoding/binary"
	"errors"
)

// IANA protocol numbers for the transports this package computes
// checksums for.
const (
	ProtocolICMP   = 1
	ProtocolTCP    = 6
	ProtocolUDP    = 17
	ProtocolICMPv6 = 58
)

var (
	// ErrNegativeLength is returned when a caller supplies a negative
	// transport length.
	ErrNegativeLength = errors.New("checksum: negative transport length")

	// ErrUnsupportedVersion is returned when the IP version nibble is
	// neither 4 nor 6.
	ErrUnsupportedVersion = errors.New("checksum: ip version must be 4 or 6")
)

// Sum returns the raw 32-bit sum of b interpreted as big-endian 16-bit
// words. An odd trailing byte is padded with an implicit zero low byte, so
// it contributes its value shifted into the high byte (RFC 1071 padding
// rule). The result is neither folded nor complemented; raw sums are
// additive and may be combined before folding.
func Sum(b []byte) uint32 {
	var sum uint32
	n := len(b) &^ 1
	for i := 0; i < n; i += 2 {
		sum += uint32(binary.BigEndian.Uint16(b[i : i+2]))
	}
	if len(b)&1 != 0 {
		sum += uint32(b[len(b)-1]) << 8
	}
	return sum
}

// Checksum computes the one's-complement checksum of b combined with seed,
// which carries a partial sum such as a pseudo-header contribution. The
// accumulator starts at seed + 0xffff, which is zero in one's-complement
// arithmetic and normalizes an empty, unseeded input to a complemented
// result of 0x0000.
func Checksum(b []byte, seed uint32) uint16 {
	sum := seed + 0xffff
	sum += Sum(b)

	// The first fold can still carry into bit 16; the second cannot.
	sum = (sum >> 16) + (sum & 0xffff)
	sum = (sum >> 16) + (sum & 0xffff)
	return ^uint16(sum)
}
