// Package qr decodes QR code symbols given as module matrices.
package qr

import (
	"fmt"

	qrdecode "github.com/qrwire/qrdecode"
	"github.com/qrwire/qrdecode/bitutil"
	"github.com/qrwire/qrdecode/qr/decoder"
)

// Reader decodes QR symbols from module matrices.
type Reader struct {
	dec *decoder.Decoder
}

// NewReader creates a new QR code Reader.
func NewReader() *Reader {
	return &Reader{
		dec: decoder.NewDecoder(),
	}
}

// Decode decodes the given module matrix, where a set bit is a dark module.
// The matrix is not modified.
func (r *Reader) Decode(bits *bitutil.BitMatrix, opts *qrdecode.DecodeOptions) (*qrdecode.Result, error) {
	if opts == nil {
		opts = &qrdecode.DecodeOptions{}
	}

	dr, err := r.dec.Decode(bits, opts.CharacterSet)
	if err != nil {
		return nil, err
	}

	result := qrdecode.NewResult(dr.Text, dr.RawBytes)
	if dr.ByteSegments != nil {
		result.PutMetadata(qrdecode.MetadataByteSegments, dr.ByteSegments)
	}
	if dr.ECLevel != "" {
		result.PutMetadata(qrdecode.MetadataErrorCorrectionLevel, dr.ECLevel)
	}
	if dr.HasStructuredAppend() {
		result.PutMetadata(qrdecode.MetadataStructuredAppendSequence, dr.StructuredAppendSequenceNumber)
		result.PutMetadata(qrdecode.MetadataStructuredAppendParity, dr.StructuredAppendParity)
	}
	result.PutMetadata(qrdecode.MetadataErrorsCorrected, dr.ErrorsCorrected)
	result.PutMetadata(qrdecode.MetadataSymbologyIdentifier, fmt.Sprintf("]Q%d", dr.SymbologyModifier))
	result.PutMetadata(qrdecode.MetadataVersionNumber, dr.Version)
	return result, nil
}

// Decode decodes a QR module matrix with a default Reader.
func Decode(bits *bitutil.BitMatrix, opts *qrdecode.DecodeOptions) (*qrdecode.Result, error) {
	return NewReader().Decode(bits, opts)
}
