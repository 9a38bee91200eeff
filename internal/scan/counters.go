package scan

import (
	"sync/atomic"
)

// counters holds per-run counters, atomic so Stats can snapshot them
// while the engine runs.
type counters struct {
	Packets atomic.Uint64
	Bytes   atomic.Uint64
	Checked atomic.Uint64
	Bad     atomic.Uint64
	Absent  atomic.Uint64
	Skipped atomic.Uint64
	Fixed   atomic.Uint64
	Errors  atomic.Uint64
}

// Stats is a point-in-time snapshot of the engine counters.
type Stats struct {
	Packets uint64
	Bytes   uint64
	Checked uint64
	Bad     uint64
	Absent  uint64
	Skipped uint64
	Fixed   uint64
	Errors  uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Packets: c.Packets.Load(),
		Bytes:   c.Bytes.Load(),
		Checked: c.Checked.Load(),
		Bad:     c.Bad.Load(),
		Absent:  c.Absent.Load(),
		Skipped: c.Skipped.Load(),
		Fixed:   c.Fixed.Load(),
		Errors:  c.Errors.Load(),
	}
}
