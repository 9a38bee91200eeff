// Package scan implements the capture scanning engine.
package scan

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/core"
	"github.com/LineVall/linevall-frameworks-libs-net/internal/inspect"
	"github.com/LineVall/linevall-frameworks-libs-net/internal/log"
	"github.com/LineVall/linevall-frameworks-libs-net/internal/metrics"
	"github.com/LineVall/linevall-frameworks-libs-net/internal/rewrite"
	"github.com/LineVall/linevall-frameworks-libs-net/pkg/checksum"
)

// Source supplies raw packets, typically a pcap file reader.
type Source interface {
	ReadPacket() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// Sink receives processed packets, typically a pcap file writer.
type Sink interface {
	WritePacket(ci gopacket.CaptureInfo, data []byte) error
}

// Config contains engine configuration.
type Config struct {
	Source   Source
	Output   Sink               // Optional, receives every packet
	Rewriter *rewrite.Rewriter  // Optional, applied before verification
	Fix      bool               // Repair bad checksum fields in place

	ChannelCapacity int // Raw packet channel buffer size
	MaxPackets      int // Stop after this many packets, 0 = unlimited

	// OnPacket is invoked for every finding as it is produced, so the
	// CLI can stream results while the scan runs. May be nil.
	OnPacket func(core.PacketReport)
}

// Result is the outcome of a completed run.
type Result struct {
	Summary  core.RunSummary
	Findings []core.PacketReport
}

// Engine reads packets from a source and verifies, repairs or rewrites
// their checksums.
type Engine struct {
	cfg      Config
	linkType layers.LinkType
	counters counters

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	rawPacketChan chan core.RawPacket

	mu       sync.Mutex
	findings []core.PacketReport
	readErr  error
	writeErr error
}

// New creates a new engine.
func New(cfg Config) *Engine {
	if cfg.ChannelCapacity <= 0 {
		cfg.ChannelCapacity = 1024
	}

	return &Engine{
		cfg:           cfg,
		linkType:      cfg.Source.LinkType(),
		rawPacketChan: make(chan core.RawPacket, cfg.ChannelCapacity),
	}
}

// Run drives the full scan and blocks until the source is exhausted,
// the packet limit is reached, or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	e.ctx, e.cancel = context.WithCancel(ctx)
	defer e.cancel()

	start := time.Now()

	e.wg.Add(1)
	go e.readLoop()

	e.wg.Add(1)
	go e.processLoop()

	e.wg.Wait()

	duration := time.Since(start)
	metrics.RunDurationSeconds.Observe(duration.Seconds())

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.writeErr != nil {
		return nil, e.writeErr
	}
	if e.readErr != nil {
		return nil, e.readErr
	}
	if ctx.Err() != nil {
		return nil, core.ErrScanStopped
	}

	stats := e.counters.snapshot()
	return &Result{
		Summary: core.RunSummary{
			Packets:  stats.Packets,
			Bytes:    stats.Bytes,
			Checked:  stats.Checked,
			Bad:      stats.Bad,
			Absent:   stats.Absent,
			Skipped:  stats.Skipped,
			Fixed:    stats.Fixed,
			Errors:   stats.Errors,
			Duration: duration,
		},
		Findings: e.findings,
	}, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return e.counters.snapshot()
}

// readLoop reads packets from the source and sends them to the
// processing channel.
func (e *Engine) readLoop() {
	defer e.wg.Done()
	defer close(e.rawPacketChan)

	logger := log.GetLogger()

	for index := 0; ; index++ {
		if e.cfg.MaxPackets > 0 && index >= e.cfg.MaxPackets {
			return
		}

		data, ci, err := e.cfg.Source.ReadPacket()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.WithError(err).Error("failed to read packet")
				e.mu.Lock()
				e.readErr = err
				e.mu.Unlock()
			}
			return
		}

		raw := core.RawPacket{
			Data:       data,
			Timestamp:  ci.Timestamp,
			CaptureLen: uint32(ci.CaptureLength),
			OrigLen:    uint32(ci.Length),
			Index:      index,
		}

		select {
		case <-e.ctx.Done():
			return
		case e.rawPacketChan <- raw:
		}
	}
}

// processLoop is the main processing loop.
func (e *Engine) processLoop() {
	defer e.wg.Done()

	for {
		select {
		case <-e.ctx.Done():
			return

		case raw, ok := <-e.rawPacketChan:
			if !ok {
				return
			}

			if err := e.processPacket(raw); err != nil {
				e.cancel()
				return
			}
		}
	}
}

// processPacket runs one packet through locate, rewrite, verify or
// repair, and the optional output sink.
func (e *Engine) processPacket(raw core.RawPacket) error {
	logger := log.GetLogger()

	e.counters.Packets.Add(1)
	e.counters.Bytes.Add(uint64(raw.CaptureLen))
	metrics.BytesScannedTotal.Add(float64(raw.CaptureLen))

	layout, err := inspect.Locate(raw.Data, e.linkType)
	if err != nil {
		e.counters.Errors.Add(1)
		metrics.ScanErrorsTotal.Inc()
		metrics.PacketsScannedTotal.WithLabelValues("other").Inc()
		if logger.IsDebugEnabled() {
			logger.WithField("packet", raw.Index).WithError(err).Debug("packet not inspectable")
		}
		// Non-IP and undecodable packets still pass through to the
		// output file untouched.
		return e.writePacket(raw)
	}
	metrics.PacketsScannedTotal.WithLabelValues(protocolLabel(layout.Protocol)).Inc()

	rewritten := false
	if e.cfg.Rewriter != nil {
		// Apply works on a scratch copy so a failed rewrite never leaks
		// half-rewritten bytes into the output capture.
		scratch := make([]byte, len(raw.Data))
		copy(scratch, raw.Data)
		rewritten, err = e.cfg.Rewriter.Apply(scratch, layout)
		if err != nil {
			e.counters.Errors.Add(1)
			metrics.ScanErrorsTotal.Inc()
			logger.WithField("packet", raw.Index).WithError(err).Error("rewrite failed")
			return e.writePacket(raw)
		}
		if rewritten {
			copy(raw.Data, scratch)
		}
	}

	var results []core.ChecksumResult
	fixed := false
	if e.cfg.Fix {
		results, fixed = inspect.Repair(raw.Data, layout)
	} else {
		results = inspect.Verify(raw.Data, layout)
	}

	e.tally(results, fixed)

	if hasFindings(results) || fixed || rewritten {
		report := core.PacketReport{
			Index:     raw.Index,
			Timestamp: raw.Timestamp,
			Flow:      inspect.Flow(layout),
			Results:   results,
			Fixed:     fixed,
		}

		e.mu.Lock()
		e.findings = append(e.findings, report)
		e.mu.Unlock()

		if e.cfg.OnPacket != nil {
			e.cfg.OnPacket(report)
		}
	}

	return e.writePacket(raw)
}

// tally folds the per-field results into the run counters and metrics.
func (e *Engine) tally(results []core.ChecksumResult, fixed bool) {
	for _, res := range results {
		metrics.ChecksumVerificationsTotal.WithLabelValues(res.Layer, res.Status.String()).Inc()

		switch res.Status {
		case core.StatusBad:
			e.counters.Checked.Add(1)
			e.counters.Bad.Add(1)
		case core.StatusAbsent:
			e.counters.Absent.Add(1)
		case core.StatusSkipped:
			e.counters.Skipped.Add(1)
		default:
			e.counters.Checked.Add(1)
		}
	}

	if fixed {
		e.counters.Fixed.Add(1)
		metrics.PacketsFixedTotal.Inc()
	}
}

func (e *Engine) writePacket(raw core.RawPacket) error {
	if e.cfg.Output == nil {
		return nil
	}

	ci := gopacket.CaptureInfo{
		Timestamp:     raw.Timestamp,
		CaptureLength: int(raw.CaptureLen),
		Length:        int(raw.OrigLen),
	}
	if err := e.cfg.Output.WritePacket(ci, raw.Data); err != nil {
		log.GetLogger().WithError(err).Error("failed to write packet")
		e.mu.Lock()
		e.writeErr = err
		e.mu.Unlock()
		return err
	}
	return nil
}

// hasFindings reports whether any result needs to surface in the run
// report.
func hasFindings(results []core.ChecksumResult) bool {
	for _, res := range results {
		if res.Status != core.StatusOK {
			return true
		}
	}
	return false
}

// protocolLabel names a transport protocol for the metrics label.
func protocolLabel(protocol uint8) string {
	switch protocol {
	case checksum.ProtocolICMP:
		return "icmpv4"
	case checksum.ProtocolTCP:
		return "tcp"
	case checksum.ProtocolUDP:
		return "udp"
	case checksum.ProtocolICMPv6:
		return "icmpv6"
	default:
		return strconv.Itoa(int(protocol))
	}
}
