package header

import (
	"encoding/binary"
	"net/netip"
)

// IPv4 is a view over an IPv4 header and the bytes that follow it.
type IPv4 []byte

// Version returns the version nibble (4 for a well-formed header).
func (h IPv4) Version() int {
	return int(h[0] >> 4)
}

// HeaderLength returns the header length in bytes (IHL nibble times four).
func (h IPv4) HeaderLength() int {
	return int(h[0]&0x0f) * 4
}

// TotalLength returns the total packet length, header included.
func (h IPv4) TotalLength() uint16 {
	return binary.BigEndian.Uint16(h[2:4])
}

// PayloadLength returns the length of the bytes after the header.
func (h IPv4) PayloadLength() int {
	return int(h.TotalLength()) - h.HeaderLength()
}

// TTL returns the time-to-live field.
func (h IPv4) TTL() uint8 {
	return h[8]
}

// Protocol returns the transport protocol number.
func (h IPv4) Protocol() uint8 {
	return h[9]
}

// Checksum returns the stored header checksum.
func (h IPv4) Checksum() uint16 {
	return binary.BigEndian.Uint16(h[10:12])
}

// SetChecksum stores a header checksum.
func (h IPv4) SetChecksum(sum uint16) {
	binary.BigEndian.PutUint16(h[10:12], sum)
}

// SourceAddr returns the source address.
func (h IPv4) SourceAddr() netip.Addr {
	return netip.AddrFrom4([4]byte(h[12:16]))
}

// SetSourceAddr stores a source address. addr must be an IPv4 address.
func (h IPv4) SetSourceAddr(addr netip.Addr) {
	a := addr.As4()
	copy(h[12:16], a[:])
}

// DestinationAddr returns the destination address.
func (h IPv4) DestinationAddr() netip.Addr {
	return netip.AddrFrom4([4]byte(h[16:20]))
}

// SetDestinationAddr stores a destination address. addr must be an IPv4
// address.
func (h IPv4) SetDestinationAddr(addr netip.Addr) {
	a := addr.As4()
	copy(h[16:20], a[:])
}

// IsFragment reports whether the packet is a fragment: either the MF flag
// is set or the fragment offset is nonzero.
func (h IPv4) IsFragment() bool {
	flagsOffset := binary.BigEndian.Uint16(h[6:8])
	return flagsOffset&0x2000 != 0 || flagsOffset&0x1fff != 0
}

// Payload returns the bytes after the header, bounded by the total length
// when it fits inside the view.
func (h IPv4) Payload() []byte {
	headerLen := h.HeaderLength()
	if len(h) < headerLen {
		return nil
	}
	if total := int(h.TotalLength()); total >= headerLen && total <= len(h) {
		return h[headerLen:total]
	}
	return h[headerLen:]
}
