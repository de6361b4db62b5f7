package decoder

import (
	"fmt"
	"math/bits"

	"github.com/qrwire/qrdecode/bitutil"
)

// ECB represents a single error-correction block specification.
type ECB struct {
	Count         int
	DataCodewords int
}

// ECBlocks represents a set of error-correction blocks for one EC level.
type ECBlocks struct {
	ECCodewordsPerBlock int
	Blocks              []ECB
}

// NumBlocks returns the total number of blocks.
func (ecb *ECBlocks) NumBlocks() int {
	total := 0
	for _, b := range ecb.Blocks {
		total += b.Count
	}
	return total
}

// TotalECCodewords returns the total number of error-correction codewords.
func (ecb *ECBlocks) TotalECCodewords() int {
	return ecb.ECCodewordsPerBlock * ecb.NumBlocks()
}

// Version represents a QR code version (1-40).
type Version struct {
	Number                  int
	AlignmentPatternCenters []int
	ECBlocksArray           [4]ECBlocks // L, M, Q, H
	TotalCodewords          int
}

// DimensionForVersion returns the module dimension for this version.
func (v *Version) DimensionForVersion() int {
	return 17 + 4*v.Number
}

// ECBlocksForLevel returns the ECBlocks for the given error correction level.
func (v *Version) ECBlocksForLevel(ecLevel ErrorCorrectionLevel) *ECBlocks {
	return &v.ECBlocksArray[ecLevel.Ordinal()]
}

// BuildFunctionPattern builds a BitMatrix with every function pattern module
// set: finder patterns with separators and format info strips, timing
// patterns, alignment patterns, and version info blocks.
func (v *Version) BuildFunctionPattern() *bitutil.BitMatrix {
	dim := v.DimensionForVersion()
	bm := bitutil.NewBitMatrix(dim)

	// The three finder patterns, each with its separator and the format
	// info modules alongside
	bm.SetRegion(0, 0, 9, 9)
	bm.SetRegion(dim-8, 0, 8, 9)
	bm.SetRegion(0, dim-8, 9, 8)

	// Timing patterns in row and column 6, between the finders
	for k := 8; k < dim-8; k++ {
		bm.Set(k, 6)
		bm.Set(6, k)
	}

	// Alignment patterns, except where a finder already sits
	for _, row := range v.AlignmentPatternCenters {
		for _, col := range v.AlignmentPatternCenters {
			if (row == 6 && (col == 6 || col == dim-7)) || (row == dim-7 && col == 6) {
				continue
			}
			bm.SetRegion(col-2, row-2, 5, 5)
		}
	}

	// Version info blocks flank the top-right and bottom-left finders
	if v.Number >= 7 {
		bm.SetRegion(dim-11, 0, 3, 6)
		bm.SetRegion(0, dim-11, 6, 3)
	}

	return bm
}

// versionDecodeInfo holds the 18-bit Golay-coded version words for versions
// 7 and up.
var versionDecodeInfo = []int{
	0x07C94, 0x085BC, 0x09A99, 0x0A4D3, 0x0BBF6,
	0x0C762, 0x0D847, 0x0E60D, 0x0F928, 0x10B78,
	0x1145D, 0x12A17, 0x13532, 0x149A6, 0x15683,
	0x168C9, 0x177EC, 0x18EC4, 0x191E1, 0x1AFAB,
	0x1B08E, 0x1CC1A, 0x1D33F, 0x1ED75, 0x1F250,
	0x209D5, 0x216F0, 0x228BA, 0x2379F, 0x24B0B,
	0x2542E, 0x26A64, 0x27541, 0x28C69,
}

// GetVersionForNumber returns the Version for the given version number (1-40).
func GetVersionForNumber(number int) (*Version, error) {
	if number < 1 || number > 40 {
		return nil, errInvalidVersion
	}
	return &versions[number-1], nil
}

// GetProvisionalVersionForDimension returns the Version for a QR code of the
// given dimension.
func GetProvisionalVersionForDimension(dimension int) (*Version, error) {
	if dimension%4 != 1 {
		return nil, fmt.Errorf("qr/decoder: invalid dimension %d", dimension)
	}
	return GetVersionForNumber((dimension - 17) / 4)
}

// DecodeVersionInformation decodes the raw version bits, tolerating up to 3
// bit errors. Returns nil when no version word is close enough. Any two
// version words differ in at least 8 bits, so at most one can be within 3
// bits of the input.
func DecodeVersionInformation(versionBits int) *Version {
	number := 0
	closest := 4
	for i, word := range versionDecodeInfo {
		if d := bits.OnesCount(uint(versionBits ^ word)); d < closest {
			number = i + 7
			closest = d
		}
	}
	if number == 0 {
		return nil
	}
	return &versions[number-1]
}

// level builds one EC level's block set from (count, dataCodewords) pairs.
func level(ecPerBlock int, pairs ...int) ECBlocks {
	blocks := make([]ECB, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		blocks = append(blocks, ECB{Count: pairs[i], DataCodewords: pairs[i+1]})
	}
	return ECBlocks{ECCodewordsPerBlock: ecPerBlock, Blocks: blocks}
}

func ver(align []int, l, m, q, h ECBlocks) Version {
	return Version{
		AlignmentPatternCenters: align,
		ECBlocksArray:           [4]ECBlocks{l, m, q, h},
	}
}

// Version numbers and codeword totals are derived in init: the number from
// the table position, the total from the L-level blocks (every level of a
// version accounts for the same total).
func init() {
	for i := range versions {
		v := &versions[i]
		v.Number = i + 1
		ecb := &v.ECBlocksArray[0]
		total := ecb.TotalECCodewords()
		for _, blk := range ecb.Blocks {
			total += blk.Count * blk.DataCodewords
		}
		v.TotalCodewords = total
	}
}

// versions contains all 40 QR code versions.
var versions = [40]Version{
	ver(nil, level(7, 1, 19), level(10, 1, 16), level(13, 1, 13), level(17, 1, 9)),
	ver([]int{6, 18}, level(10, 1, 34), level(16, 1, 28), level(22, 1, 22), level(28, 1, 16)),
	ver([]int{6, 22}, level(15, 1, 55), level(26, 1, 44), level(18, 2, 17), level(22, 2, 13)),
	ver([]int{6, 26}, level(20, 1, 80), level(18, 2, 32), level(26, 2, 24), level(16, 4, 9)),
	ver([]int{6, 30}, level(26, 1, 108), level(24, 2, 43), level(18, 2, 15, 2, 16), level(22, 2, 11, 2, 12)),
	ver([]int{6, 34}, level(18, 2, 68), level(16, 4, 27), level(24, 4, 19), level(28, 4, 15)),
	ver([]int{6, 22, 38}, level(20, 2, 78), level(18, 4, 31), level(18, 2, 14, 4, 15), level(26, 4, 13, 1, 14)),
	ver([]int{6, 24, 42}, level(24, 2, 97), level(22, 2, 38, 2, 39), level(22, 4, 18, 2, 19), level(26, 4, 14, 2, 15)),
	ver([]int{6, 26, 46}, level(30, 2, 116), level(22, 3, 36, 2, 37), level(20, 4, 16, 4, 17), level(24, 4, 12, 4, 13)),
	ver([]int{6, 28, 50}, level(18, 2, 68, 2, 69), level(26, 4, 43, 1, 44), level(24, 6, 19, 2, 20), level(28, 6, 15, 2, 16)),
	ver([]int{6, 30, 54}, level(20, 4, 81), level(30, 1, 50, 4, 51), level(28, 4, 22, 4, 23), level(24, 3, 12, 8, 13)),
	ver([]int{6, 32, 58}, level(24, 2, 92, 2, 93), level(22, 6, 36, 2, 37), level(26, 4, 20, 6, 21), level(28, 7, 14, 4, 15)),
	ver([]int{6, 34, 62}, level(26, 4, 107), level(22, 8, 37, 1, 38), level(24, 8, 20, 4, 21), level(22, 12, 11, 4, 12)),
	ver([]int{6, 26, 46, 66}, level(30, 3, 115, 1, 116), level(24, 4, 40, 5, 41), level(20, 11, 16, 5, 17), level(24, 11, 12, 5, 13)),
	ver([]int{6, 26, 48, 70}, level(22, 5, 87, 1, 88), level(24, 5, 41, 5, 42), level(30, 5, 24, 7, 25), level(24, 11, 12, 7, 13)),
	ver([]int{6, 26, 50, 74}, level(24, 5, 98, 1, 99), level(28, 7, 45, 3, 46), level(24, 15, 19, 2, 20), level(30, 3, 15, 13, 16)),
	ver([]int{6, 30, 54, 78}, level(28, 1, 107, 5, 108), level(28, 10, 46, 1, 47), level(28, 1, 22, 15, 23), level(28, 2, 14, 17, 15)),
	ver([]int{6, 30, 56, 82}, level(30, 5, 120, 1, 121), level(26, 9, 43, 4, 44), level(28, 17, 22, 1, 23), level(28, 2, 14, 19, 15)),
	ver([]int{6, 30, 58, 86}, level(28, 3, 113, 4, 114), level(26, 3, 44, 11, 45), level(26, 17, 21, 4, 22), level(26, 9, 13, 16, 14)),
	ver([]int{6, 34, 62, 90}, level(28, 3, 107, 5, 108), level(26, 3, 41, 13, 42), level(30, 15, 24, 5, 25), level(28, 15, 15, 10, 16)),
	ver([]int{6, 28, 50, 72, 94}, level(28, 4, 116, 4, 117), level(26, 17, 42), level(28, 17, 22, 6, 23), level(30, 19, 16, 6, 17)),
	ver([]int{6, 26, 50, 74, 98}, level(28, 2, 111, 7, 112), level(28, 17, 46), level(30, 7, 24, 16, 25), level(24, 34, 13)),
	ver([]int{6, 30, 54, 78, 102}, level(30, 4, 121, 5, 122), level(28, 4, 47, 14, 48), level(30, 11, 24, 14, 25), level(30, 16, 15, 14, 16)),
	ver([]int{6, 28, 54, 80, 106}, level(30, 6, 117, 4, 118), level(28, 6, 45, 14, 46), level(30, 11, 24, 16, 25), level(30, 30, 16, 2, 17)),
	ver([]int{6, 32, 58, 84, 110}, level(26, 8, 106, 4, 107), level(28, 8, 47, 13, 48), level(30, 7, 24, 22, 25), level(30, 22, 15, 13, 16)),
	ver([]int{6, 30, 58, 86, 114}, level(28, 10, 114, 2, 115), level(28, 19, 46, 4, 47), level(28, 28, 22, 6, 23), level(30, 33, 16, 4, 17)),
	ver([]int{6, 34, 62, 90, 118}, level(30, 8, 122, 4, 123), level(28, 22, 45, 3, 46), level(30, 8, 23, 26, 24), level(30, 12, 15, 28, 16)),
	ver([]int{6, 26, 50, 74, 98, 122}, level(30, 3, 117, 10, 118), level(28, 3, 45, 23, 46), level(30, 4, 24, 31, 25), level(30, 11, 15, 31, 16)),
	ver([]int{6, 30, 54, 78, 102, 126}, level(30, 7, 116, 7, 117), level(28, 21, 45, 7, 46), level(30, 1, 23, 37, 24), level(30, 19, 15, 26, 16)),
	ver([]int{6, 26, 52, 78, 104, 130}, level(30, 5, 115, 10, 116), level(28, 19, 47, 10, 48), level(30, 15, 24, 25, 25), level(30, 23, 15, 25, 16)),
	ver([]int{6, 30, 56, 82, 108, 134}, level(30, 13, 115, 3, 116), level(28, 2, 46, 29, 47), level(30, 42, 24, 1, 25), level(30, 23, 15, 28, 16)),
	ver([]int{6, 34, 60, 86, 112, 138}, level(30, 17, 115), level(28, 10, 46, 23, 47), level(30, 10, 24, 35, 25), level(30, 19, 15, 35, 16)),
	ver([]int{6, 30, 58, 86, 114, 142}, level(30, 17, 115, 1, 116), level(28, 14, 46, 21, 47), level(30, 29, 24, 19, 25), level(30, 11, 15, 46, 16)),
	ver([]int{6, 34, 62, 90, 118, 146}, level(30, 13, 115, 6, 116), level(28, 14, 46, 23, 47), level(30, 44, 24, 7, 25), level(30, 59, 16, 1, 17)),
	ver([]int{6, 30, 54, 78, 102, 126, 150}, level(30, 12, 121, 7, 122), level(28, 12, 47, 26, 48), level(30, 39, 24, 14, 25), level(30, 22, 15, 41, 16)),
	ver([]int{6, 24, 50, 76, 102, 128, 154}, level(30, 6, 121, 14, 122), level(28, 6, 47, 34, 48), level(30, 46, 24, 10, 25), level(30, 2, 15, 64, 16)),
	ver([]int{6, 28, 54, 80, 106, 132, 158}, level(30, 17, 122, 4, 123), level(28, 29, 46, 14, 47), level(30, 49, 24, 10, 25), level(30, 24, 15, 46, 16)),
	ver([]int{6, 32, 58, 84, 110, 136, 162}, level(30, 4, 122, 18, 123), level(28, 13, 46, 32, 47), level(30, 48, 24, 14, 25), level(30, 42, 15, 32, 16)),
	ver([]int{6, 26, 54, 82, 110, 138, 166}, level(30, 20, 117, 4, 118), level(28, 40, 47, 7, 48), level(30, 43, 24, 22, 25), level(30, 10, 15, 67, 16)),
	ver([]int{6, 30, 58, 86, 114, 142, 170}, level(30, 19, 118, 6, 119), level(28, 18, 47, 31, 48), level(30, 34, 24, 34, 25), level(30, 20, 15, 61, 16)),
}
