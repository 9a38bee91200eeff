// Package metrics implements Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PacketsScannedTotal counts packets read from capture files.
	PacketsScannedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netsum_packets_scanned_total",
			Help: "Total number of packets read from capture files",
		},
		[]string{"protocol"},
	)

	// BytesScannedTotal counts capture bytes processed.
	BytesScannedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netsum_bytes_scanned_total",
			Help: "Total number of capture bytes processed",
		},
	)

	// ChecksumVerificationsTotal counts checksum field verifications by
	// layer and outcome.
	ChecksumVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netsum_checksum_verifications_total",
			Help: "Total number of checksum field verifications",
		},
		[]string{"layer", "status"},
	)

	// PacketsFixedTotal counts packets whose checksum fields were rewritten.
	PacketsFixedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netsum_packets_fixed_total",
			Help: "Total number of packets with rewritten checksum fields",
		},
	)

	// ScanErrorsTotal counts packets that could not be processed.
	ScanErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netsum_scan_errors_total",
			Help: "Total number of packets that failed processing",
		},
	)

	// RunDurationSeconds measures full scan run durations.
	RunDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netsum_run_duration_seconds",
			Help:    "Duration of complete scan runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~32s
		},
	)
)
