package decoder

// DecoderResult encapsulates the decoded contents of a QR symbol.
type DecoderResult struct {
	RawBytes                       []byte
	NumBits                        int
	Text                           string
	ByteSegments                   [][]byte
	ECLevel                        string
	Version                        int
	ErrorsCorrected                int
	StructuredAppendSequenceNumber int
	StructuredAppendParity         int
	SymbologyModifier              int
}

// NewDecoderResult creates a DecoderResult from the bitstream decode outputs.
func NewDecoderResult(rawBytes []byte, text string, byteSegments [][]byte,
	ecLevel string, saSequence, saParity, symbologyModifier int) *DecoderResult {
	numBits := 0
	if rawBytes != nil {
		numBits = 8 * len(rawBytes)
	}
	return &DecoderResult{
		RawBytes:                       rawBytes,
		NumBits:                        numBits,
		Text:                           text,
		ByteSegments:                   byteSegments,
		ECLevel:                        ecLevel,
		StructuredAppendSequenceNumber: saSequence,
		StructuredAppendParity:         saParity,
		SymbologyModifier:              symbologyModifier,
	}
}

// HasStructuredAppend returns true if this symbol is part of a structured
// append sequence.
func (d *DecoderResult) HasStructuredAppend() bool {
	return d.StructuredAppendParity >= 0 && d.StructuredAppendSequenceNumber >= 0
}
