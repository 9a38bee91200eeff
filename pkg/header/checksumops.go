package header

import (
	"encoding/binary"

	"github.com/LineVall/linevall-frameworks-libs-net/pkg/checksum"
)

// ChecksumState classifies a stored checksum field against a recomputation.
type ChecksumState int

const (
	// ChecksumValid means the stored value matches the recomputed one.
	ChecksumValid ChecksumState = iota
	// ChecksumInvalid means the stored value does not match.
	ChecksumInvalid
	// ChecksumAbsent means the field legitimately carries no checksum
	// (a zero UDP checksum over IPv4, RFC 768).
	ChecksumAbsent
)

// String returns the lowercase name of the state.
func (s ChecksumState) String() string {
	switch s {
	case ChecksumValid:
		return "valid"
	case ChecksumInvalid:
		return "invalid"
	case ChecksumAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// checksumFieldOffset returns the offset of the checksum field relative to
// the transport header start.
func checksumFieldOffset(protocol uint8) (int, error) {
	switch protocol {
	case checksum.ProtocolTCP:
		return 16, nil
	case checksum.ProtocolUDP:
		return 6, nil
	case checksum.ProtocolICMP, checksum.ProtocolICMPv6:
		return 2, nil
	default:
		return 0, ErrUnsupportedTransport
	}
}

// VerifyIPChecksum reports whether the stored IPv4 header checksum is
// valid. Summing a valid header, stored checksum included, yields zero.
func VerifyIPChecksum(pkt []byte, ipOffset int) bool {
	return checksum.IPChecksum(pkt, ipOffset) == 0
}

// VerifyTransportChecksum classifies the stored transport checksum of the
// segment at [transportOffset, transportOffset+transportLen). The stored
// field participates in the sum, so a valid segment folds to zero; no byte
// of pkt is modified. A zero UDP checksum over IPv4 is reported as
// ChecksumAbsent; over IPv6 a zero checksum is illegal and reports
// ChecksumInvalid.
func VerifyTransportChecksum(pkt []byte, protocol uint8, ipOffset, transportOffset, transportLen int) (ChecksumState, error) {
	if transportLen < 0 {
		return ChecksumInvalid, checksum.ErrNegativeLength
	}
	switch protocol {
	case checksum.ProtocolICMP:
		if checksum.ICMPChecksum(pkt, transportOffset, transportLen) == 0 {
			return ChecksumValid, nil
		}
		return ChecksumInvalid, nil

	case checksum.ProtocolUDP:
		if UDP(pkt[transportOffset:]).Checksum() == 0 {
			if IPVersion(pkt[ipOffset:]) == 4 {
				return ChecksumAbsent, nil
			}
			return ChecksumInvalid, nil
		}
		fallthrough

	case checksum.ProtocolTCP, checksum.ProtocolICMPv6:
		seed, err := checksum.PseudoSum(pkt, ipOffset, protocol, transportLen)
		if err != nil {
			return ChecksumInvalid, err
		}
		if checksum.Checksum(pkt[transportOffset:transportOffset+transportLen], seed) == 0 {
			return ChecksumValid, nil
		}
		return ChecksumInvalid, nil

	default:
		return ChecksumInvalid, ErrUnsupportedTransport
	}
}

// ResetIPChecksum zeroes the IPv4 header checksum field and stores a
// freshly computed value.
func ResetIPChecksum(pkt []byte, ipOffset int) {
	h := IPv4(pkt[ipOffset:])
	h.SetChecksum(0)
	h.SetChecksum(checksum.IPChecksum(pkt, ipOffset))
}

// ResetTransportChecksum zeroes the transport checksum field and stores a
// freshly computed value, including the UDP zero-to-0xffff substitution.
// The packet is left untouched when an error is returned.
func ResetTransportChecksum(pkt []byte, protocol uint8, ipOffset, transportOffset, transportLen int) error {
	fieldOff, err := checksumFieldOffset(protocol)
	if err != nil {
		return err
	}
	if transportLen < 0 {
		return checksum.ErrNegativeLength
	}
	if protocol != checksum.ProtocolICMP {
		if v := IPVersion(pkt[ipOffset:]); v != 4 && v != 6 {
			return checksum.ErrUnsupportedVersion
		}
	}

	binary.BigEndian.PutUint16(pkt[transportOffset+fieldOff:transportOffset+fieldOff+2], 0)

	var sum uint16
	if protocol == checksum.ProtocolICMP {
		sum = checksum.ICMPChecksum(pkt, transportOffset, transportLen)
	} else {
		sum, err = checksum.TransportChecksum(pkt, protocol, ipOffset, transportOffset, transportLen)
		if err != nil {
			return err
		}
	}
	binary.BigEndian.PutUint16(pkt[transportOffset+fieldOff:transportOffset+fieldOff+2], sum)
	return nil
}
