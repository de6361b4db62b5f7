package decoder

import (
	"errors"
	"testing"

	qrdecode "github.com/qrwire/qrdecode"
	"github.com/qrwire/qrdecode/bitutil"
	"github.com/qrwire/qrdecode/reedsolomon"
)

// makeCodewords pads the segment bits to the version's data capacity, adds
// per-block error correction, and interleaves the blocks for transmission.
func makeCodewords(t *testing.T, version *Version, ecLevel ErrorCorrectionLevel, w *bitWriter) []byte {
	t.Helper()
	ecBlocks := version.ECBlocksForLevel(ecLevel)
	totalData := 0
	for _, blk := range ecBlocks.Blocks {
		totalData += blk.Count * blk.DataCodewords
	}
	if w.bitCount > totalData*8 {
		t.Fatalf("segment bits %d exceed data capacity %d", w.bitCount, totalData*8)
	}
	// Terminator, then byte alignment via the writer's zero fill
	remaining := totalData*8 - w.bitCount
	if remaining > 4 {
		remaining = 4
	}
	w.write(0, remaining)

	data := make([]byte, totalData)
	copy(data, w.bits)
	pad := [2]byte{0xEC, 0x11}
	for i := len(w.bits); i < totalData; i++ {
		data[i] = pad[(i-len(w.bits))%2]
	}

	enc := reedsolomon.NewEncoder(reedsolomon.QRCodeField256)
	var blocks []DataBlock
	offset := 0
	for _, blockSpec := range ecBlocks.Blocks {
		for i := 0; i < blockSpec.Count; i++ {
			numCodewords := blockSpec.DataCodewords + ecBlocks.ECCodewordsPerBlock
			toEncode := make([]int, numCodewords)
			for j := 0; j < blockSpec.DataCodewords; j++ {
				toEncode[j] = int(data[offset+j])
			}
			enc.Encode(toEncode, ecBlocks.ECCodewordsPerBlock)
			codewords := make([]byte, numCodewords)
			for j, v := range toEncode {
				codewords[j] = byte(v)
			}
			blocks = append(blocks, DataBlock{
				NumDataCodewords: blockSpec.DataCodewords,
				Codewords:        codewords,
			})
			offset += blockSpec.DataCodewords
		}
	}
	return interleaveBlocks(blocks, ecBlocks.ECCodewordsPerBlock)
}

// renderSymbol lays out format info and masked codeword bits on a fresh
// module matrix. Versions above 6 would also need version info blocks.
func renderSymbol(t *testing.T, version *Version, ecLevel ErrorCorrectionLevel, maskIndex int, interleaved []byte) *bitutil.BitMatrix {
	t.Helper()
	if version.Number > 6 {
		t.Fatalf("renderSymbol does not write version info blocks")
	}
	dim := version.DimensionForVersion()
	m := bitutil.NewBitMatrix(dim)

	formatData := (ecLevel.Bits() << 3) | maskIndex
	maskedBits := -1
	for _, entry := range formatInfoDecodeLookup {
		if entry[1] == formatData {
			maskedBits = entry[0]
			break
		}
	}
	if maskedBits < 0 {
		t.Fatalf("no format codeword for data %#x", formatData)
	}

	// Module positions in format read order, most significant bit first
	copy1 := [][2]int{
		{0, 8}, {1, 8}, {2, 8}, {3, 8}, {4, 8}, {5, 8}, {7, 8}, {8, 8},
		{8, 7}, {8, 5}, {8, 4}, {8, 3}, {8, 2}, {8, 1}, {8, 0},
	}
	var copy2 [][2]int
	for j := dim - 1; j >= dim-7; j-- {
		copy2 = append(copy2, [2]int{8, j})
	}
	for i := dim - 8; i < dim; i++ {
		copy2 = append(copy2, [2]int{i, 8})
	}
	for _, positions := range [][][2]int{copy1, copy2} {
		for k, pos := range positions {
			if (maskedBits>>uint(14-k))&1 != 0 {
				m.Set(pos[0], pos[1])
			}
		}
	}

	functionPattern := version.BuildFunctionPattern()
	maskFunc := DataMasks[maskIndex]
	totalBits := 8 * len(interleaved)
	bitIndex := 0
	readingUp := true
	for j := dim - 1; j > 0; j -= 2 {
		if j == 6 {
			j--
		}
		for count := 0; count < dim; count++ {
			i := count
			if readingUp {
				i = dim - 1 - count
			}
			for col := 0; col < 2; col++ {
				x := j - col
				if functionPattern.Get(x, i) {
					continue
				}
				bit := false
				if bitIndex < totalBits {
					bit = (interleaved[bitIndex/8]>>uint(7-bitIndex%8))&1 != 0
				}
				bitIndex++
				if bit != maskFunc(i, x) {
					m.Set(x, i)
				}
			}
		}
		readingUp = !readingUp
	}
	return m
}

func buildSymbol(t *testing.T, versionNumber int, ecLevel ErrorCorrectionLevel, maskIndex int, w *bitWriter) *bitutil.BitMatrix {
	t.Helper()
	version, err := GetVersionForNumber(versionNumber)
	if err != nil {
		t.Fatal(err)
	}
	return renderSymbol(t, version, ecLevel, maskIndex, makeCodewords(t, version, ecLevel, w))
}

func numericSegment(digits string) *bitWriter {
	var w bitWriter
	w.write(0x1, 4)
	w.write(len(digits), 10)
	i := 0
	for ; i+3 <= len(digits); i += 3 {
		w.write(atoiDigits(digits[i:i+3]), 10)
	}
	switch len(digits) - i {
	case 2:
		w.write(atoiDigits(digits[i:]), 7)
	case 1:
		w.write(atoiDigits(digits[i:]), 4)
	}
	return &w
}

func atoiDigits(s string) int {
	v := 0
	for i := 0; i < len(s); i++ {
		v = v*10 + int(s[i]-'0')
	}
	return v
}

func TestDecodeNumericSymbol(t *testing.T) {
	matrix := buildSymbol(t, 1, ECLevelM, 2, numericSegment("01234567"))

	result, err := NewDecoder().Decode(matrix, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Text != "01234567" {
		t.Errorf("Text = %q, want %q", result.Text, "01234567")
	}
	if result.ECLevel != "M" {
		t.Errorf("ECLevel = %q, want M", result.ECLevel)
	}
	if result.Version != 1 {
		t.Errorf("Version = %d, want 1", result.Version)
	}
	if result.ErrorsCorrected != 0 {
		t.Errorf("ErrorsCorrected = %d, want 0", result.ErrorsCorrected)
	}
}

func TestDecodeAllMasks(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		matrix := buildSymbol(t, 1, ECLevelL, mask, numericSegment("31415926"))
		result, err := NewDecoder().Decode(matrix, "")
		if err != nil {
			t.Fatalf("mask %d: Decode failed: %v", mask, err)
		}
		if result.Text != "31415926" {
			t.Errorf("mask %d: Text = %q", mask, result.Text)
		}
	}
}

func TestDecodeWithCorrectableErrors(t *testing.T) {
	version, _ := GetVersionForNumber(1)
	codewords := makeCodewords(t, version, ECLevelM, numericSegment("01234567"))
	// Version 1-M corrects up to 5 codeword errors
	codewords[0] ^= 0xFF
	codewords[5] ^= 0x3C
	matrix := renderSymbol(t, version, ECLevelM, 2, codewords)

	result, err := NewDecoder().Decode(matrix, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Text != "01234567" {
		t.Errorf("Text = %q, want %q", result.Text, "01234567")
	}
	if result.ErrorsCorrected != 2 {
		t.Errorf("ErrorsCorrected = %d, want 2", result.ErrorsCorrected)
	}
}

func TestDecodeChecksumFailure(t *testing.T) {
	version, _ := GetVersionForNumber(1)
	codewords := makeCodewords(t, version, ECLevelM, numericSegment("01234567"))
	for i := 0; i < 6; i++ {
		codewords[i] ^= 0xA5
	}
	matrix := renderSymbol(t, version, ECLevelM, 2, codewords)

	if _, err := NewDecoder().Decode(matrix, ""); !errors.Is(err, qrdecode.ErrChecksum) {
		t.Errorf("err = %v, want ErrChecksum", err)
	}
}

func TestDecodeMirroredSymbol(t *testing.T) {
	matrix := buildSymbol(t, 1, ECLevelM, 2, numericSegment("01234567"))

	mirrored := bitutil.NewBitMatrix(matrix.Width())
	for y := 0; y < matrix.Height(); y++ {
		for x := 0; x < matrix.Width(); x++ {
			if matrix.Get(x, y) {
				mirrored.Set(y, x)
			}
		}
	}

	result, err := NewDecoder().Decode(mirrored, "")
	if err != nil {
		t.Fatalf("Decode of mirrored symbol failed: %v", err)
	}
	if result.Text != "01234567" {
		t.Errorf("Text = %q, want %q", result.Text, "01234567")
	}
}

func TestDecodeLeavesInputUnchanged(t *testing.T) {
	matrix := buildSymbol(t, 1, ECLevelM, 2, numericSegment("01234567"))
	snapshot := matrix.Clone()

	if _, err := NewDecoder().Decode(matrix, ""); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !matrix.Equals(snapshot) {
		t.Error("Decode must not modify its input matrix")
	}

	// The input stays untouched on failure as well
	garbage := bitutil.NewBitMatrix(21)
	garbage.SetRegion(2, 2, 17, 17)
	snapshot = garbage.Clone()
	if _, err := NewDecoder().Decode(garbage, ""); err == nil {
		t.Error("expected decode failure for garbage matrix")
	}
	if !garbage.Equals(snapshot) {
		t.Error("failed Decode must not modify its input matrix")
	}
}

func TestDecodeMultiBlockSymbol(t *testing.T) {
	// Version 3-Q splits data across two Reed-Solomon blocks
	text := "HELLO WORLD FROM A MULTI BLOCK QR"
	var w bitWriter
	w.write(0x2, 4)
	w.write(len(text), 9)
	i := 0
	for ; i+2 <= len(text); i += 2 {
		w.write(alphanumericIndex(text[i])*45+alphanumericIndex(text[i+1]), 11)
	}
	if i < len(text) {
		w.write(alphanumericIndex(text[i]), 6)
	}

	matrix := buildSymbol(t, 3, ECLevelQ, 5, &w)
	result, err := NewDecoder().Decode(matrix, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Text != text {
		t.Errorf("Text = %q, want %q", result.Text, text)
	}
	if result.Version != 3 {
		t.Errorf("Version = %d, want 3", result.Version)
	}
	if result.ECLevel != "Q" {
		t.Errorf("ECLevel = %q, want Q", result.ECLevel)
	}
}

func alphanumericIndex(c byte) int {
	for i := 0; i < len(alphanumericChars); i++ {
		if alphanumericChars[i] == c {
			return i
		}
	}
	return -1
}

func TestDecodeInvalidDimension(t *testing.T) {
	for _, dim := range []int{20, 22, 17} {
		matrix := bitutil.NewBitMatrix(dim)
		if _, err := NewDecoder().Decode(matrix, ""); !errors.Is(err, qrdecode.ErrFormat) {
			t.Errorf("dimension %d: err = %v, want ErrFormat", dim, err)
		}
	}
}
