package decoder

import (
	qrdecode "github.com/qrwire/qrdecode"
	"github.com/qrwire/qrdecode/bitutil"
	"github.com/qrwire/qrdecode/reedsolomon"
)

// Decoder decodes QR symbols from module matrices.
type Decoder struct {
	rsDecoder *reedsolomon.Decoder
}

// NewDecoder creates a new QR code Decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		rsDecoder: reedsolomon.NewDecoder(reedsolomon.QRCodeField256),
	}
}

// Decode decodes a module matrix into a DecoderResult. The input matrix is
// never modified; a mirrored reading is attempted when the straight reading
// fails, and the straight reading's error is reported if both fail.
func (d *Decoder) Decode(bits *bitutil.BitMatrix, characterSet string) (*DecoderResult, error) {
	parser, err := NewBitMatrixParser(bits.Clone())
	if err != nil {
		return nil, err
	}

	result, err := d.decodeParser(parser, characterSet)
	if err == nil {
		return result, nil
	}

	// Mirrored retry on a fresh copy
	mirrorParser, perr := NewBitMatrixParser(bits.Clone())
	if perr != nil {
		return nil, err
	}
	mirrorParser.SetMirror(true)

	if _, verr := mirrorParser.ReadVersion(); verr != nil {
		return nil, err
	}
	if _, ferr := mirrorParser.ReadFormatInformation(); ferr != nil {
		return nil, err
	}

	mirrorParser.Mirror()

	result, err2 := d.decodeParser(mirrorParser, characterSet)
	if err2 != nil {
		return nil, err
	}
	return result, nil
}

func (d *Decoder) decodeParser(parser *BitMatrixParser, characterSet string) (*DecoderResult, error) {
	version, err := parser.ReadVersion()
	if err != nil {
		return nil, err
	}
	formatInfo, err := parser.ReadFormatInformation()
	if err != nil {
		return nil, err
	}
	ecLevel := formatInfo.ECLevel

	codewords, err := parser.ReadCodewords()
	if err != nil {
		return nil, err
	}

	dataBlocks, err := GetDataBlocks(codewords, version, ecLevel)
	if err != nil {
		return nil, err
	}

	totalBytes := 0
	for _, db := range dataBlocks {
		totalBytes += db.NumDataCodewords
	}
	resultBytes := make([]byte, totalBytes)
	resultOffset := 0

	errorsCorrected := 0
	for _, db := range dataBlocks {
		corrected, err := d.correctErrors(db.Codewords, db.NumDataCodewords)
		if err != nil {
			return nil, err
		}
		errorsCorrected += corrected
		copy(resultBytes[resultOffset:], db.Codewords[:db.NumDataCodewords])
		resultOffset += db.NumDataCodewords
	}

	result, err := DecodeBitStream(resultBytes, version, ecLevel, characterSet)
	if err != nil {
		return nil, err
	}
	result.Version = version.Number
	result.ErrorsCorrected = errorsCorrected
	return result, nil
}

// correctErrors repairs a single codeword block in place and strips nothing;
// the caller reads the leading data codewords afterwards.
func (d *Decoder) correctErrors(codewordBytes []byte, numDataCodewords int) (int, error) {
	numCodewords := len(codewordBytes)
	codewordsInts := make([]int, numCodewords)
	for i := 0; i < numCodewords; i++ {
		codewordsInts[i] = int(codewordBytes[i]) & 0xFF
	}
	corrected, err := d.rsDecoder.Decode(codewordsInts, numCodewords-numDataCodewords)
	if err != nil {
		return 0, qrdecode.ErrChecksum
	}
	for i := 0; i < numCodewords; i++ {
		codewordBytes[i] = byte(codewordsInts[i])
	}
	return corrected, nil
}
