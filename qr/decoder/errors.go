package decoder

import "errors"

var (
	errInvalidECLevel = errors.New("qr/decoder: invalid error correction level")
	errInvalidMode    = errors.New("qr/decoder: invalid mode")
	errInvalidVersion = errors.New("qr/decoder: invalid version number")
)
