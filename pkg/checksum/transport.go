package checksum

import "encoding/binary"

// TransportChecksum computes the transport-layer checksum for the segment
// at [transportOffset, transportOffset+transportLen) inside a packet whose
// IP header starts at ipOffset. The pseudo-header partial sum for the
// packet's IP version seeds the accumulator over the segment.
//
// A UDP result of exactly zero is substituted with 0xffff: an all-zero UDP
// checksum field means "no checksum used" on the wire (RFC 768). The
// substitution never applies to TCP or ICMPv6.
func TransportChecksum(b []byte, protocol uint8, ipOffset, transportOffset, transportLen int) (uint16, error) {
	if transportLen < 0 {
		return 0, ErrNegativeLength
	}
	seed, err := PseudoSum(b, ipOffset, protocol, transportLen)
	if err != nil {
		return 0, err
	}
	sum := Checksum(b[transportOffset:transportOffset+transportLen], seed)
	if protocol == ProtocolUDP && sum == 0 {
		sum = 0xffff
	}
	return sum, nil
}

// IPChecksum computes the IPv4 header checksum for the header starting at
// ipOffset. The span is the header length nibble times four; no
// pseudo-header is involved. Computed over a valid header, including its
// stored checksum field, the result is 0x0000.
func IPChecksum(b []byte, ipOffset int) uint16 {
	headerLen := int(b[ipOffset]&0x0f) * 4
	return Checksum(b[ipOffset:ipOffset+headerLen], 0)
}

// UDPChecksum computes the UDP checksum, taking the transport length from
// the UDP length field of the segment itself.
func UDPChecksum(b []byte, ipOffset, transportOffset int) (uint16, error) {
	transportLen := int(binary.BigEndian.Uint16(b[transportOffset+4 : transportOffset+6]))
	return TransportChecksum(b, ProtocolUDP, ipOffset, transportOffset, transportLen)
}

// TCPChecksum computes the TCP checksum. TCP has no self-describing length
// field, so the caller derives transportLen from the IP total length minus
// the header lengths.
func TCPChecksum(b []byte, ipOffset, transportOffset, transportLen int) (uint16, error) {
	return TransportChecksum(b, ProtocolTCP, ipOffset, transportOffset, transportLen)
}

// ICMPChecksum computes the ICMPv4 checksum. ICMPv4 uses no pseudo-header
// (RFC 792), so this is a plain accumulator pass over the message.
func ICMPChecksum(b []byte, transportOffset, transportLen int) uint16 {
	return Checksum(b[transportOffset:transportOffset+transportLen], 0)
}

// ICMPv6Checksum computes the ICMPv6 checksum. Unlike ICMPv4, the IPv6
// pseudo-header is mandatory (RFC 4443).
func ICMPv6Checksum(b []byte, ipOffset, transportOffset, transportLen int) (uint16, error) {
	return TransportChecksum(b, ProtocolICMPv6, ipOffset, transportOffset, transportLen)
}
