package inspect

import (
	"strconv"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/core"
	"github.com/LineVall/linevall-frameworks-libs-net/pkg/checksum"
	"github.com/LineVall/linevall-frameworks-libs-net/pkg/header"
)

// Verify checks every applicable checksum of a located packet and returns
// one result per checksum field. data is never modified: expected values
// are computed on a scratch copy with the stored field zeroed.
func Verify(data []byte, layout core.Layout) []core.ChecksumResult {
	var results []core.ChecksumResult

	if layout.Version == 4 {
		results = append(results, verifyIPv4Header(data, layout))
	}

	results = append(results, verifyTransport(data, layout))
	return results
}

// Repair verifies a packet and rewrites every failed checksum field in
// place. It returns the pre-repair results and whether anything changed.
func Repair(data []byte, layout core.Layout) ([]core.ChecksumResult, bool) {
	results := Verify(data, layout)

	changed := false
	for _, res := range results {
		if res.Status != core.StatusBad {
			continue
		}
		switch res.Layer {
		case core.LayerIPv4:
			header.ResetIPChecksum(data, layout.IPOffset)
			changed = true
		default:
			if err := header.ResetTransportChecksum(data, layout.Protocol,
				layout.IPOffset, layout.TransportOffset, layout.TransportLen); err == nil {
				changed = true
			}
		}
	}
	return results, changed
}

func verifyIPv4Header(data []byte, layout core.Layout) core.ChecksumResult {
	result := core.ChecksumResult{Layer: core.LayerIPv4}

	h := header.IPv4(data[layout.IPOffset:])
	headerLen := h.HeaderLength()
	if len(data) < layout.IPOffset+headerLen {
		result.Status = core.StatusSkipped
		result.Reason = "truncated header"
		return result
	}
	result.Stored = h.Checksum()

	// Recompute on a scratch copy with the field zeroed so data stays
	// untouched.
	scratch := make([]byte, headerLen)
	copy(scratch, data[layout.IPOffset:layout.IPOffset+headerLen])
	header.IPv4(scratch).SetChecksum(0)
	result.Computed = checksum.IPChecksum(scratch, 0)

	if result.Computed == result.Stored {
		result.Status = core.StatusOK
	} else {
		result.Status = core.StatusBad
	}
	return result
}

func verifyTransport(data []byte, layout core.Layout) core.ChecksumResult {
	result := core.ChecksumResult{Layer: transportLayer(layout.Protocol)}

	if result.Layer == "" {
		result.Layer = "proto-" + strconv.Itoa(int(layout.Protocol))
		result.Status = core.StatusSkipped
		result.Reason = "unsupported transport"
		return result
	}
	if layout.Fragment {
		result.Status = core.StatusSkipped
		result.Reason = "fragment"
		return result
	}
	if layout.TransportLen < minTransportLen(layout.Protocol) ||
		len(data) < layout.TransportOffset+layout.TransportLen {
		result.Status = core.StatusSkipped
		result.Reason = "truncated segment"
		return result
	}

	state, err := header.VerifyTransportChecksum(data, layout.Protocol,
		layout.IPOffset, layout.TransportOffset, layout.TransportLen)
	if err != nil {
		result.Status = core.StatusSkipped
		result.Reason = err.Error()
		return result
	}

	result.Stored = storedTransportChecksum(data, layout)
	switch state {
	case header.ChecksumValid:
		result.Status = core.StatusOK
		result.Computed = result.Stored
	case header.ChecksumAbsent:
		result.Status = core.StatusAbsent
	default:
		result.Status = core.StatusBad
		result.Computed = expectedTransportChecksum(data, layout)
	}
	return result
}

// expectedTransportChecksum computes the value a correct packet would
// carry, using a scratch copy with the stored field zeroed.
func expectedTransportChecksum(data []byte, layout core.Layout) uint16 {
	scratch := make([]byte, len(data))
	copy(scratch, data)

	if err := header.ResetTransportChecksum(scratch, layout.Protocol,
		layout.IPOffset, layout.TransportOffset, layout.TransportLen); err != nil {
		return 0
	}
	return storedTransportChecksum(scratch, layout)
}

func storedTransportChecksum(data []byte, layout core.Layout) uint16 {
	t := data[layout.TransportOffset:]
	switch layout.Protocol {
	case checksum.ProtocolTCP:
		return header.TCP(t).Checksum()
	case checksum.ProtocolUDP:
		return header.UDP(t).Checksum()
	case checksum.ProtocolICMP:
		return header.ICMPv4(t).Checksum()
	case checksum.ProtocolICMPv6:
		return header.ICMPv6(t).Checksum()
	default:
		return 0
	}
}

func transportLayer(protocol uint8) string {
	switch protocol {
	case checksum.ProtocolTCP:
		return core.LayerTCP
	case checksum.ProtocolUDP:
		return core.LayerUDP
	case checksum.ProtocolICMP:
		return core.LayerICMPv4
	case checksum.ProtocolICMPv6:
		return core.LayerICMPv6
	default:
		return ""
	}
}

// minTransportLen is the smallest segment that still contains the
// protocol's checksum field.
func minTransportLen(protocol uint8) int {
	switch protocol {
	case checksum.ProtocolTCP:
		return header.TCPMinLen
	case checksum.ProtocolUDP:
		return header.UDPLen
	default:
		return 4
	}
}
