// Package inspect locates checksum inputs inside captured frames and
// verifies or repairs the checksum fields they cover.
package inspect

import (
	"encoding/binary"

	"github.com/google/gopacket/layers"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/core"
	"github.com/LineVall/linevall-frameworks-libs-net/pkg/checksum"
	"github.com/LineVall/linevall-frameworks-libs-net/pkg/header"
	"github.com/LineVall/linevall-frameworks-libs-net/pkg/netutil"
)

const (
	ethernetHeaderLen = 14
	vlanHeaderLen     = 4
	nullHeaderLen     = 4

	etherTypeIPv4 = 0x0800
	etherTypeIPv6 = 0x86DD
	etherTypeVLAN = 0x8100
	etherTypeQinQ = 0x88A8
)

// Locate walks a raw frame and returns the offsets and fields the checksum
// functions need. The link layer is skipped according to linkType; any
// number of stacked VLAN tags is handled for Ethernet captures.
func Locate(data []byte, linkType layers.LinkType) (core.Layout, error) {
	var layout core.Layout

	ipOffset, vlans, err := skipLinkLayer(data, linkType)
	if err != nil {
		return layout, err
	}
	layout.IPOffset = ipOffset
	layout.VLANs = vlans

	ip := data[ipOffset:]
	if len(ip) < 1 {
		return layout, core.ErrPacketTooShort
	}

	switch header.IPVersion(ip) {
	case 4:
		return locateIPv4(layout, ip)
	case 6:
		return locateIPv6(layout, ip)
	default:
		return layout, core.ErrNotIP
	}
}

// skipLinkLayer returns the byte offset of the IP header for the capture's
// link type.
func skipLinkLayer(data []byte, linkType layers.LinkType) (int, []uint16, error) {
	switch linkType {
	case layers.LinkTypeEthernet:
		return skipEthernet(data)
	case layers.LinkTypeRaw, layers.LinkTypeIPv4, layers.LinkTypeIPv6:
		return 0, nil, nil
	case layers.LinkTypeNull, layers.LinkTypeLoop:
		if len(data) < nullHeaderLen {
			return 0, nil, core.ErrPacketTooShort
		}
		return nullHeaderLen, nil, nil
	default:
		return 0, nil, core.ErrUnsupportedLinkType
	}
}

// skipEthernet skips the Ethernet header including any stacked VLAN tags
// (QinQ) and returns the offset of the first non-VLAN payload.
func skipEthernet(data []byte) (int, []uint16, error) {
	if len(data) < ethernetHeaderLen {
		return 0, nil, core.ErrPacketTooShort
	}

	etherType := binary.BigEndian.Uint16(data[12:14])
	offset := ethernetHeaderLen

	var vlans []uint16
	for etherType == etherTypeVLAN || etherType == etherTypeQinQ {
		if len(data) < offset+vlanHeaderLen {
			return 0, nil, core.ErrPacketTooShort
		}

		// VLAN header: 2 bytes TCI + 2 bytes EtherType
		tci := binary.BigEndian.Uint16(data[offset : offset+2])
		vlans = append(vlans, tci&0x0FFF)

		etherType = binary.BigEndian.Uint16(data[offset+2 : offset+4])
		offset += vlanHeaderLen
	}

	if etherType != etherTypeIPv4 && etherType != etherTypeIPv6 {
		// Non-IP frame (ARP, LLDP, ...)
		return 0, vlans, core.ErrNotIP
	}
	return offset, vlans, nil
}

func locateIPv4(layout core.Layout, ip []byte) (core.Layout, error) {
	if len(ip) < header.IPv4MinLen {
		return layout, core.ErrPacketTooShort
	}

	h := header.IPv4(ip)
	headerLen := h.HeaderLength()
	if headerLen < header.IPv4MinLen || len(ip) < headerLen {
		return layout, core.ErrPacketTooShort
	}

	layout.Version = 4
	layout.Protocol = h.Protocol()
	layout.Fragment = h.IsFragment()
	layout.TransportOffset = layout.IPOffset + headerLen
	layout.TransportLen = int(h.TotalLength()) - headerLen
	layout.SrcIP = h.SourceAddr()
	layout.DstIP = h.DestinationAddr()

	readPorts(&layout, ip[headerLen:])
	return layout, nil
}

func locateIPv6(layout core.Layout, ip []byte) (core.Layout, error) {
	if len(ip) < header.IPv6Len {
		return layout, core.ErrPacketTooShort
	}

	// Extension header chains are not walked: the next-header value is
	// reported as-is and unknown transports end up skipped by Verify.
	h := header.IPv6(ip)
	layout.Version = 6
	layout.Protocol = h.NextHeader()
	layout.TransportOffset = layout.IPOffset + header.IPv6Len
	layout.TransportLen = int(h.PayloadLength())
	layout.SrcIP = h.SourceAddr()
	layout.DstIP = h.DestinationAddr()

	readPorts(&layout, ip[header.IPv6Len:])
	return layout, nil
}

// readPorts fills in the port pair for TCP and UDP when the transport
// header start was captured. Ports are informational only; missing ones
// never fail the walk.
func readPorts(layout *core.Layout, transport []byte) {
	switch layout.Protocol {
	case checksum.ProtocolTCP, checksum.ProtocolUDP:
		if len(transport) >= 4 && !layout.Fragment {
			layout.SrcPort = binary.BigEndian.Uint16(transport[0:2])
			layout.DstPort = binary.BigEndian.Uint16(transport[2:4])
		}
	}
}

// Flow renders the layout's address pair in "src > dst" form, with ports
// when present.
func Flow(layout core.Layout) string {
	if layout.SrcPort == 0 && layout.DstPort == 0 {
		return layout.SrcIP.String() + " > " + layout.DstIP.String()
	}
	src := netutil.AddrPortString(layout.SrcIP, layout.SrcPort)
	dst := netutil.AddrPortString(layout.DstIP, layout.DstPort)
	return src + " > " + dst
}
