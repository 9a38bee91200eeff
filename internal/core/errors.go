// Package core defines sentinel errors.
package core

import "errors"

var (
	// Frame walking errors
	ErrPacketTooShort      = errors.New("netsum: packet too short")
	ErrUnsupportedLinkType = errors.New("netsum: unsupported link type")
	ErrNotIP               = errors.New("netsum: not an ip packet")

	// Scan errors
	ErrScanStopped = errors.New("netsum: scan stopped")

	// Configuration errors
	ErrConfigInvalid = errors.New("netsum: invalid configuration")
)
