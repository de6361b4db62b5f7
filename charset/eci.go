// Package charset provides character set ECI mappings, byte decoding, and
// encoding detection for QR Byte segments.
package charset

import "errors"

// ErrFormatECI indicates an ECI designator outside the assignable range.
var ErrFormatECI = errors.New("charset: invalid ECI value")

// maxECIValue bounds the assignable ECI designator range.
const maxECIValue = 999999

// ECI represents a Character Set Extended Channel Interpretation: an assigned
// designator value together with the canonical name of its character set.
type ECI struct {
	Value   int
	Name    string
	Aliases []string
}

// Assigned character set ECIs. Values not listed here are legal designators
// with no canonical charset; Byte segments following them fall back to
// encoding detection.
var (
	ECICp437     = &ECI{0, "CP437", []string{"IBM437"}}
	ECIISO8859_1 = &ECI{1, "ISO-8859-1", []string{"ISO8859_1", "Latin-1"}}
	ECIISO8859_2 = &ECI{4, "ISO-8859-2", []string{"ISO8859_2"}}
	ECIISO8859_3 = &ECI{5, "ISO-8859-3", []string{"ISO8859_3"}}
	ECIISO8859_4 = &ECI{6, "ISO-8859-4", []string{"ISO8859_4"}}
	ECIISO8859_5 = &ECI{7, "ISO-8859-5", []string{"ISO8859_5"}}
	ECIISO8859_6 = &ECI{8, "ISO-8859-6", []string{"ISO8859_6"}}
	ECIISO8859_7 = &ECI{9, "ISO-8859-7", []string{"ISO8859_7"}}
	ECIISO8859_8 = &ECI{10, "ISO-8859-8", []string{"ISO8859_8"}}
	ECIISO8859_9 = &ECI{11, "ISO-8859-9", []string{"ISO8859_9"}}
	ECIISO8859_10 = &ECI{12, "ISO-8859-10", []string{"ISO8859_10"}}
	ECIISO8859_11 = &ECI{13, "ISO-8859-11", []string{"ISO8859_11"}}
	ECIISO8859_13 = &ECI{15, "ISO-8859-13", []string{"ISO8859_13"}}
	ECIISO8859_14 = &ECI{16, "ISO-8859-14", []string{"ISO8859_14"}}
	ECIISO8859_15 = &ECI{17, "ISO-8859-15", []string{"ISO8859_15"}}
	ECIISO8859_16 = &ECI{18, "ISO-8859-16", []string{"ISO8859_16"}}
	ECISJIS      = &ECI{20, "Shift_JIS", []string{"SJIS"}}
	ECICp1250    = &ECI{21, "Windows-1250", []string{"Cp1250"}}
	ECICp1251    = &ECI{22, "Windows-1251", []string{"Cp1251"}}
	ECICp1252    = &ECI{23, "Windows-1252", []string{"Cp1252"}}
	ECICp1253    = &ECI{24, "Windows-1253", []string{"Cp1253"}}
	ECICp1254    = &ECI{25, "Windows-1254", []string{"Cp1254"}}
	ECIUTF8      = &ECI{26, "UTF-8", []string{"UTF8"}}
	ECIASCII     = &ECI{27, "US-ASCII", []string{"ASCII"}}
	ECIBig5      = &ECI{28, "Big5", nil}
	ECIGB18030   = &ECI{29, "GB18030", []string{"GB2312", "GBK", "EUC_CN"}}
	ECIEUCKR     = &ECI{30, "EUC-KR", []string{"EUC_KR"}}
)

var (
	valueToECI map[int]*ECI
	nameToECI  map[string]*ECI
)

func init() {
	valueToECI = make(map[int]*ECI)
	nameToECI = make(map[string]*ECI)

	allECIs := []*ECI{
		ECICp437, ECIISO8859_1, ECIISO8859_2, ECIISO8859_3, ECIISO8859_4,
		ECIISO8859_5, ECIISO8859_6, ECIISO8859_7, ECIISO8859_8, ECIISO8859_9,
		ECIISO8859_10, ECIISO8859_11, ECIISO8859_13, ECIISO8859_14,
		ECIISO8859_15, ECIISO8859_16, ECISJIS, ECICp1250, ECICp1251,
		ECICp1252, ECICp1253, ECICp1254, ECIUTF8, ECIASCII, ECIBig5,
		ECIGB18030, ECIEUCKR,
	}

	// Designators with more than one assigned value
	extraValues := map[*ECI][]int{
		ECICp437:     {0, 2},
		ECIISO8859_1: {1, 3},
		ECIASCII:     {27, 170},
	}

	for _, eci := range allECIs {
		if vals, ok := extraValues[eci]; ok {
			for _, v := range vals {
				valueToECI[v] = eci
			}
		} else {
			valueToECI[eci.Value] = eci
		}
		nameToECI[eci.Name] = eci
		for _, alias := range eci.Aliases {
			nameToECI[alias] = eci
		}
	}
}

// GetECIByValue returns the ECI for the given designator value. It fails for
// values outside 0..999999 and returns nil for in-range values with no
// assigned character set.
func GetECIByValue(value int) (*ECI, error) {
	if value < 0 || value > maxECIValue {
		return nil, ErrFormatECI
	}
	return valueToECI[value], nil
}

// GetECIByName returns the ECI for the given canonical name or alias, or nil.
func GetECIByName(name string) *ECI {
	return nameToECI[name]
}
