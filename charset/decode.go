package charset

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// encodingByName maps canonical charset names to their decoders. UTF-8 and
// US-ASCII are absent on purpose; their bytes pass through unchanged.
var encodingByName = map[string]encoding.Encoding{
	"CP437":       charmap.CodePage437,
	"ISO-8859-1":  charmap.ISO8859_1,
	"ISO-8859-2":  charmap.ISO8859_2,
	"ISO-8859-3":  charmap.ISO8859_3,
	"ISO-8859-4":  charmap.ISO8859_4,
	"ISO-8859-5":  charmap.ISO8859_5,
	"ISO-8859-6":  charmap.ISO8859_6,
	"ISO-8859-7":  charmap.ISO8859_7,
	"ISO-8859-8":  charmap.ISO8859_8,
	"ISO-8859-9":  charmap.ISO8859_9,
	"ISO-8859-10": charmap.ISO8859_10,
	// x/text has no ISO-8859-11 table; Windows-874 is a superset that
	// decodes every ISO-8859-11 byte identically
	"ISO-8859-11":  charmap.Windows874,
	"ISO-8859-13":  charmap.ISO8859_13,
	"ISO-8859-14":  charmap.ISO8859_14,
	"ISO-8859-15":  charmap.ISO8859_15,
	"ISO-8859-16":  charmap.ISO8859_16,
	"Shift_JIS":    japanese.ShiftJIS,
	"Windows-1250": charmap.Windows1250,
	"Windows-1251": charmap.Windows1251,
	"Windows-1252": charmap.Windows1252,
	"Windows-1253": charmap.Windows1253,
	"Windows-1254": charmap.Windows1254,
	"Big5":         traditionalchinese.Big5,
	"GB18030":      simplifiedchinese.GB18030,
	"EUC-KR":       korean.EUCKR,
	"UTF-16":       unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
}

// DecodeBytes converts bytes in the named encoding to a UTF-8 string.
// Aliases resolve through the ECI registry. Unknown names and conversion
// failures fall back to the raw bytes.
func DecodeBytes(data []byte, name string) string {
	if eci := GetECIByName(name); eci != nil {
		name = eci.Name
	}
	enc, ok := encodingByName[name]
	if !ok {
		return string(data)
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
