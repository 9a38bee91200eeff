package checksum

import "encoding/binary"

// IPv4 carries addresses at fixed offsets 12..19 regardless of options;
// IPv6 carries them at 8..39. Both pseudo-headers additionally cover the
// transport protocol number and the transport length.
const (
	ipv4AddrOffset = 12
	ipv4AddrEnd    = 20
	ipv6AddrOffset = 8
	ipv6AddrEnd    = 40
)

// PseudoSum computes the unfolded pseudo-header partial sum for the IP
// header starting at ipOffset, dispatching on the version nibble of the
// first header byte. The result is combined with a transport-range sum via
// the seed parameter of Checksum; it is never folded or complemented here.
// transportLen must be non-negative; TransportChecksum validates it.
func PseudoSum(b []byte, ipOffset int, protocol uint8, transportLen int) (uint32, error) {
	switch version(b, ipOffset) {
	case 4:
		return addrWordSum(b, ipOffset+ipv4AddrOffset, ipOffset+ipv4AddrEnd, protocol, transportLen), nil
	case 6:
		return addrWordSum(b, ipOffset+ipv6AddrOffset, ipOffset+ipv6AddrEnd, protocol, transportLen), nil
	default:
		return 0, ErrUnsupportedVersion
	}
}

// version reads the IP version nibble at ipOffset. No further validation
// is performed here.
func version(b []byte, ipOffset int) int {
	return int(b[ipOffset] >> 4)
}

func addrWordSum(b []byte, start, end int, protocol uint8, transportLen int) uint32 {
	sum := uint32(protocol) + uint32(transportLen)
	for off := start; off < end; off += 2 {
		sum += uint32(binary.BigEndian.Uint16(b[off : off+2]))
	}
	return sum
}
