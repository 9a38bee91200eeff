package header

import (
	"encoding/binary"
	"net/netip"
)

// IPv6 is a view over an IPv6 header and the bytes that follow it.
type IPv6 []byte

// Version returns the version nibble (6 for a well-formed header).
func (h IPv6) Version() int {
	return int(h[0] >> 4)
}

// PayloadLength returns the payload length field. Unlike IPv4's total
// length it excludes the 40-byte header.
func (h IPv6) PayloadLength() uint16 {
	return binary.BigEndian.Uint16(h[4:6])
}

// SetPayloadLength stores the payload length field.
func (h IPv6) SetPayloadLength(length uint16) {
	binary.BigEndian.PutUint16(h[4:6], length)
}

// NextHeader returns the next-header field, the IPv6 counterpart of the
// IPv4 protocol number.
func (h IPv6) NextHeader() uint8 {
	return h[6]
}

// HopLimit returns the hop-limit field.
func (h IPv6) HopLimit() uint8 {
	return h[7]
}

// SourceAddr returns the source address.
func (h IPv6) SourceAddr() netip.Addr {
	return netip.AddrFrom16([16]byte(h[8:24]))
}

// SetSourceAddr stores a source address. addr must be an IPv6 address.
func (h IPv6) SetSourceAddr(addr netip.Addr) {
	a := addr.As16()
	copy(h[8:24], a[:])
}

// DestinationAddr returns the destination address.
func (h IPv6) DestinationAddr() netip.Addr {
	return netip.AddrFrom16([16]byte(h[24:40]))
}

// SetDestinationAddr stores a destination address. addr must be an IPv6
// address.
func (h IPv6) SetDestinationAddr(addr netip.Addr) {
	a := addr.As16()
	copy(h[24:40], a[:])
}

// Payload returns the bytes after the fixed header, bounded by the payload
// length when it fits inside the view.
func (h IPv6) Payload() []byte {
	if len(h) < IPv6Len {
		return nil
	}
	if end := IPv6Len + int(h.PayloadLength()); end <= len(h) {
		return h[IPv6Len:end]
	}
	return h[IPv6Len:]
}
