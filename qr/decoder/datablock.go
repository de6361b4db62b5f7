package decoder

import qrdecode "github.com/qrwire/qrdecode"

// DataBlock represents one de-interleaved block of data and error-correction
// codewords.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// GetDataBlocks separates interleaved QR code codewords into their original
// blocks. It fails when rawCodewords does not hold exactly the number of
// codewords the version carries.
func GetDataBlocks(rawCodewords []byte, version *Version, ecLevel ErrorCorrectionLevel) ([]DataBlock, error) {
	if len(rawCodewords) != version.TotalCodewords {
		return nil, qrdecode.ErrFormat
	}
	ecBlocks := version.ECBlocksForLevel(ecLevel)

	totalBlocks := 0
	for _, block := range ecBlocks.Blocks {
		totalBlocks += block.Count
	}

	result := make([]DataBlock, totalBlocks)
	numResultBlocks := 0
	for _, block := range ecBlocks.Blocks {
		for i := 0; i < block.Count; i++ {
			numDataCodewords := block.DataCodewords
			numBlockCodewords := ecBlocks.ECCodewordsPerBlock + numDataCodewords
			result[numResultBlocks] = DataBlock{
				NumDataCodewords: numDataCodewords,
				Codewords:        make([]byte, numBlockCodewords),
			}
			numResultBlocks++
		}
	}

	// Find where the longer blocks start. Shorter blocks come first, and
	// all blocks differ in length by at most one codeword.
	shorterBlocksTotalCodewords := len(result[0].Codewords)
	longerBlocksStartAt := len(result) - 1
	for longerBlocksStartAt >= 0 {
		if len(result[longerBlocksStartAt].Codewords) == shorterBlocksTotalCodewords {
			break
		}
		longerBlocksStartAt--
	}
	longerBlocksStartAt++

	shorterBlocksNumDataCodewords := shorterBlocksTotalCodewords - ecBlocks.ECCodewordsPerBlock

	// Data codewords round-robin across all blocks
	rawCodewordsOffset := 0
	for i := 0; i < shorterBlocksNumDataCodewords; i++ {
		for j := 0; j < numResultBlocks; j++ {
			result[j].Codewords[i] = rawCodewords[rawCodewordsOffset]
			rawCodewordsOffset++
		}
	}
	// Extra data codeword carried only by the longer blocks
	for j := longerBlocksStartAt; j < numResultBlocks; j++ {
		result[j].Codewords[shorterBlocksNumDataCodewords] = rawCodewords[rawCodewordsOffset]
		rawCodewordsOffset++
	}
	// EC codewords round-robin across all blocks
	max := len(result[0].Codewords)
	for i := shorterBlocksNumDataCodewords; i < max; i++ {
		for j := 0; j < numResultBlocks; j++ {
			iOffset := i
			if j >= longerBlocksStartAt {
				iOffset = i + 1
			}
			result[j].Codewords[iOffset] = rawCodewords[rawCodewordsOffset]
			rawCodewordsOffset++
		}
	}

	return result, nil
}
