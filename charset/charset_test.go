package charset

import "testing"

func TestGetECIByValue(t *testing.T) {
	cases := []struct {
		value int
		name  string
	}{
		{0, "CP437"},
		{2, "CP437"},
		{1, "ISO-8859-1"},
		{3, "ISO-8859-1"},
		{4, "ISO-8859-2"},
		{13, "ISO-8859-11"},
		{15, "ISO-8859-13"},
		{18, "ISO-8859-16"},
		{20, "Shift_JIS"},
		{21, "Windows-1250"},
		{25, "Windows-1254"},
		{26, "UTF-8"},
		{27, "US-ASCII"},
		{170, "US-ASCII"},
		{28, "Big5"},
		{29, "GB18030"},
		{30, "EUC-KR"},
	}
	for _, c := range cases {
		eci, err := GetECIByValue(c.value)
		if err != nil {
			t.Errorf("GetECIByValue(%d) failed: %v", c.value, err)
			continue
		}
		if eci == nil || eci.Name != c.name {
			t.Errorf("GetECIByValue(%d) = %v, want %s", c.value, eci, c.name)
		}
	}
}

func TestGetECIByValueUnassigned(t *testing.T) {
	// In-range designators with no assigned character set
	for _, v := range []int{14, 19, 31, 900, 999999} {
		eci, err := GetECIByValue(v)
		if err != nil {
			t.Errorf("GetECIByValue(%d) failed: %v", v, err)
		}
		if eci != nil {
			t.Errorf("GetECIByValue(%d) = %s, want nil", v, eci.Name)
		}
	}
}

func TestGetECIByValueOutOfRange(t *testing.T) {
	for _, v := range []int{-1, 1000000} {
		if _, err := GetECIByValue(v); err != ErrFormatECI {
			t.Errorf("GetECIByValue(%d) error = %v, want ErrFormatECI", v, err)
		}
	}
}

func TestGetECIByName(t *testing.T) {
	cases := []struct {
		query string
		name  string
	}{
		{"ISO-8859-1", "ISO-8859-1"},
		{"Latin-1", "ISO-8859-1"},
		{"ISO8859_1", "ISO-8859-1"},
		{"SJIS", "Shift_JIS"},
		{"GBK", "GB18030"},
		{"Cp1252", "Windows-1252"},
		{"ASCII", "US-ASCII"},
		{"UTF8", "UTF-8"},
	}
	for _, c := range cases {
		eci := GetECIByName(c.query)
		if eci == nil || eci.Name != c.name {
			t.Errorf("GetECIByName(%q) = %v, want %s", c.query, eci, c.name)
		}
	}
	if GetECIByName("KOI8-R") != nil {
		t.Error("GetECIByName for an unassigned charset should be nil")
	}
}

func TestDecodeBytes(t *testing.T) {
	cases := []struct {
		name     string
		encoding string
		data     []byte
		want     string
	}{
		{"utf8 passthrough", "UTF-8", []byte("caf\xc3\xa9"), "café"},
		{"ascii passthrough", "US-ASCII", []byte("hello"), "hello"},
		{"latin1", "ISO-8859-1", []byte{0x63, 0x61, 0x66, 0xE9}, "café"},
		{"latin1 alias", "Latin-1", []byte{0xE9}, "é"},
		{"shift jis", "Shift_JIS", []byte{0x93, 0x5F, 0x96, 0xA2}, "点未"},
		{"iso-8859-11 thai", "ISO-8859-11", []byte{0xA1}, "ก"},
		{"windows-1252", "Windows-1252", []byte{0x80}, "€"},
		{"gb18030", "GB18030", []byte{0xC4, 0xE3, 0xBA, 0xC3}, "你好"},
		{"euc-kr", "EUC-KR", []byte{0xBE, 0xC8}, "안"},
		{"unknown name passthrough", "EBCDIC", []byte("abc"), "abc"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DecodeBytes(c.data, c.encoding); got != c.want {
				t.Errorf("DecodeBytes(% x, %q) = %q, want %q", c.data, c.encoding, got, c.want)
			}
		})
	}
}

func TestGuessEncoding(t *testing.T) {
	cases := []struct {
		name  string
		data  []byte
		want  string
		force string
	}{
		{"plain ascii", []byte("Hello, world"), "ISO-8859-1", ""},
		{"utf8 multibyte", []byte("caf\xc3\xa9"), "UTF-8", ""},
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "UTF-8", ""},
		{"utf16 be bom", []byte{0xFE, 0xFF, 0x00, 0x41}, "UTF-16", ""},
		{"utf16 le bom", []byte{0xFF, 0xFE, 0x41, 0x00}, "UTF-16", ""},
		{"sjis double byte words", []byte{0x93, 0x5F, 0x96, 0xA2, 0x97, 0xB3, 0x8B, 0x40}, "Shift_JIS", ""},
		{"forced", []byte("anything"), "EUC-KR", "EUC-KR"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := GuessEncoding(c.data, c.force); got != c.want {
				t.Errorf("GuessEncoding(% x) = %q, want %q", c.data, got, c.want)
			}
		})
	}
}
