package rewrite

import (
	"net/netip"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/core"
	"github.com/LineVall/linevall-frameworks-libs-net/pkg/checksum"
	"github.com/LineVall/linevall-frameworks-libs-net/pkg/header"
)

// Rule mutates the addressing bytes of a located packet. It reports
// whether anything changed; checksum repair is the Rewriter's job.
type Rule interface {
	Apply(pkt []byte, layout core.Layout) bool
}

// Rewriter applies a compiled rule list to packets and repairs the
// checksum fields the rewrites invalidated.
type Rewriter struct {
	rules []Rule
}

// Len returns the number of compiled rules.
func (rw *Rewriter) Len() int {
	return len(rw.rules)
}

// Apply runs every rule against the packet. When any rule changed the
// packet, the IPv4 header checksum and the transport checksum are
// recomputed in place. Packets with no matching rule pass through
// untouched.
func (rw *Rewriter) Apply(pkt []byte, layout core.Layout) (bool, error) {
	changed := false
	for _, rule := range rw.rules {
		if rule.Apply(pkt, layout) {
			changed = true
		}
	}
	if !changed {
		return false, nil
	}

	if layout.Version == 4 {
		header.ResetIPChecksum(pkt, layout.IPOffset)
	}
	if err := rw.repairTransport(pkt, layout); err != nil {
		return true, err
	}
	return true, nil
}

func (rw *Rewriter) repairTransport(pkt []byte, layout core.Layout) error {
	switch layout.Protocol {
	case checksum.ProtocolTCP, checksum.ProtocolUDP, checksum.ProtocolICMPv6:
	default:
		// ICMPv4 has no pseudo-header, so address rewrites cannot
		// invalidate it; other transports are not repaired.
		return nil
	}
	if layout.Fragment || len(pkt) < layout.TransportOffset+layout.TransportLen {
		return nil
	}

	// A zero UDP checksum over IPv4 means "no checksum used"; rewriting
	// addresses keeps it that way.
	if layout.Protocol == checksum.ProtocolUDP && layout.Version == 4 &&
		header.UDP(pkt[layout.TransportOffset:]).Checksum() == 0 {
		return nil
	}

	return header.ResetTransportChecksum(pkt, layout.Protocol,
		layout.IPOffset, layout.TransportOffset, layout.TransportLen)
}

// addressMapRule rewrites source and destination addresses by lookup.
type addressMapRule struct {
	m map[netip.Addr]netip.Addr
}

func (r *addressMapRule) Apply(pkt []byte, layout core.Layout) bool {
	switch layout.Version {
	case 4:
		h := header.IPv4(pkt[layout.IPOffset:])
		src := r.rewrite(h.SourceAddr(), h.SetSourceAddr)
		dst := r.rewrite(h.DestinationAddr(), h.SetDestinationAddr)
		return src || dst
	case 6:
		h := header.IPv6(pkt[layout.IPOffset:])
		src := r.rewrite(h.SourceAddr(), h.SetSourceAddr)
		dst := r.rewrite(h.DestinationAddr(), h.SetDestinationAddr)
		return src || dst
	default:
		return false
	}
}

func (r *addressMapRule) rewrite(addr netip.Addr, set func(netip.Addr)) bool {
	to, ok := r.m[addr]
	if !ok {
		return false
	}
	set(to)
	return true
}

// portMapRule rewrites TCP and UDP ports by lookup.
type portMapRule struct {
	m map[uint16]uint16
}

func (r *portMapRule) Apply(pkt []byte, layout core.Layout) bool {
	if layout.Fragment || len(pkt) < layout.TransportOffset+4 {
		return false
	}

	switch layout.Protocol {
	case checksum.ProtocolTCP:
		h := header.TCP(pkt[layout.TransportOffset:])
		src := r.rewrite(h.SourcePort(), h.SetSourcePort)
		dst := r.rewrite(h.DestinationPort(), h.SetDestinationPort)
		return src || dst
	case checksum.ProtocolUDP:
		h := header.UDP(pkt[layout.TransportOffset:])
		src := r.rewrite(h.SourcePort(), h.SetSourcePort)
		dst := r.rewrite(h.DestinationPort(), h.SetDestinationPort)
		return src || dst
	default:
		return false
	}
}

func (r *portMapRule) rewrite(port uint16, set func(uint16)) bool {
	to, ok := r.m[port]
	if !ok {
		return false
	}
	set(to)
	return true
}
