package header

import "encoding/binary"

// TCP is a view over a TCP header and its payload.
type TCP []byte

// SourcePort returns the source port.
func (h TCP) SourcePort() uint16 {
	return binary.BigEndian.Uint16(h[0:2])
}

// SetSourcePort stores the source port.
func (h TCP) SetSourcePort(port uint16) {
	binary.BigEndian.PutUint16(h[0:2], port)
}

// DestinationPort returns the destination port.
func (h TCP) DestinationPort() uint16 {
	return binary.BigEndian.Uint16(h[2:4])
}

// SetDestinationPort stores the destination port.
func (h TCP) SetDestinationPort(port uint16) {
	binary.BigEndian.PutUint16(h[2:4], port)
}

// DataOffset returns the header length in bytes (data offset nibble times
// four, options included).
func (h TCP) DataOffset() int {
	return int(h[12]>>4) * 4
}

// Flags returns the flag byte (CWR..FIN).
func (h TCP) Flags() uint8 {
	return h[13]
}

// Checksum returns the stored checksum.
func (h TCP) Checksum() uint16 {
	return binary.BigEndian.Uint16(h[16:18])
}

// SetChecksum stores the checksum.
func (h TCP) SetChecksum(sum uint16) {
	binary.BigEndian.PutUint16(h[16:18], sum)
}

// UDP is a view over a UDP header and its payload.
type UDP []byte

// SourcePort returns the source port.
func (h UDP) SourcePort() uint16 {
	return binary.BigEndian.Uint16(h[0:2])
}

// SetSourcePort stores the source port.
func (h UDP) SetSourcePort(port uint16) {
	binary.BigEndian.PutUint16(h[0:2], port)
}

// DestinationPort returns the destination port.
func (h UDP) DestinationPort() uint16 {
	return binary.BigEndian.Uint16(h[2:4])
}

// SetDestinationPort stores the destination port.
func (h UDP) SetDestinationPort(port uint16) {
	binary.BigEndian.PutUint16(h[2:4], port)
}

// Length returns the UDP length field, header plus payload.
func (h UDP) Length() uint16 {
	return binary.BigEndian.Uint16(h[4:6])
}

// Checksum returns the stored checksum. Zero means "no checksum used"
// when the segment is carried over IPv4 (RFC 768).
func (h UDP) Checksum() uint16 {
	return binary.BigEndian.Uint16(h[6:8])
}

// SetChecksum stores the checksum.
func (h UDP) SetChecksum(sum uint16) {
	binary.BigEndian.PutUint16(h[6:8], sum)
}

// ICMPv4 is a view over an ICMPv4 message.
type ICMPv4 []byte

// Type returns the message type.
func (h ICMPv4) Type() uint8 { return h[0] }

// Code returns the message code.
func (h ICMPv4) Code() uint8 { return h[1] }

// Checksum returns the stored checksum.
func (h ICMPv4) Checksum() uint16 {
	return binary.BigEndian.Uint16(h[2:4])
}

// SetChecksum stores the checksum.
func (h ICMPv4) SetChecksum(sum uint16) {
	binary.BigEndian.PutUint16(h[2:4], sum)
}

// ICMPv6 is a view over an ICMPv6 message.
type ICMPv6 []byte

// Type returns the message type.
func (h ICMPv6) Type() uint8 { return h[0] }

// Code returns the message code.
func (h ICMPv6) Code() uint8 { return h[1] }

// Checksum returns the stored checksum.
func (h ICMPv6) Checksum() uint16 {
	return binary.BigEndian.Uint16(h[2:4])
}

// SetChecksum stores the checksum.
func (h ICMPv6) SetChecksum(sum uint16) {
	binary.BigEndian.PutUint16(h[2:4], sum)
}
