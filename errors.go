package qrdecode

import "errors"

var (
	// ErrNotFound reports that no QR symbol was found. No decoding path in
	// this module returns it; a matrix without a valid QR dimension yields
	// ErrFormat.
	ErrNotFound = errors.New("qr symbol not found")

	// ErrChecksum is returned when error correction cannot repair a block.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when the symbol cannot be decoded due to format issues.
	ErrFormat = errors.New("format error")
)
