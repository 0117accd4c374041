package mlink

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/numlink/numlink"
	"github.com/numlink/numlink/errman"
)

// Encoding selects the wire representation of strings on a stream.
type Encoding int

const (
	Undefined Encoding = iota
	// Native uses the host's own default string functions.
	Native
	// Byte sends one byte per character, Latin-1, substituting 0x1A for
	// anything wider.
	Byte
	// UTF8 sends UTF-8, with an all-ASCII fast path through the byte
	// functions.
	UTF8
	// UTF8Strict is UTF8 but rejects invalid input instead of substituting.
	UTF8Strict
	// UTF16 sends UTF-16 code units with surrogate pairs.
	UTF16
	// UCS2 sends one code unit per character; code points beyond the BMP
	// are substituted.
	UCS2
	// UTF32 sends one code point per unit.
	UTF32
)

func (e Encoding) String() string {
	switch e {
	case Native:
		return "Native"
	case Byte:
		return "Byte"
	case UTF8:
		return "UTF8"
	case UTF8Strict:
		return "UTF8Strict"
	case UTF16:
		return "UTF16"
	case UCS2:
		return "UCS2"
	case UTF32:
		return "UTF32"
	}
	return "Undefined"
}

// substituteChar replaces unrepresentable characters in lossy encodings.
const substituteChar = 0x1A

// byteEncoder maps to Latin-1 and substitutes 0x1A for unmappable runes.
var byteEncoder = encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())

func (s *Stream) putString(l numlink.Link, v string) error {
	api := s.ld.Link
	switch s.enc {
	case Native, Undefined:
		return api.PutString(l, v)
	case Byte:
		b, err := byteEncoder.Bytes([]byte(v))
		if err != nil {
			return errman.Named(errman.MLPutStringError).WithDebug("byte encode: %v", err)
		}
		return api.PutByteString(l, b)
	case UTF8, UTF8Strict:
		if !utf8.ValidString(v) {
			if s.enc == UTF8Strict {
				return errman.Named(errman.MLPutStringError).WithDebug("invalid UTF-8 input")
			}
			v = string([]rune(v)) // replaces broken sequences
		}
		if ascii(v) {
			// Plain bytes are valid UTF-8; the byte put function skips the
			// host's UTF-8 validation pass.
			return api.PutByteString(l, []byte(v))
		}
		return api.PutUTF8String(l, []byte(v))
	case UTF16:
		return api.PutUTF16String(l, utf16.Encode([]rune(v)))
	case UCS2:
		rs := []rune(v)
		out := make([]uint16, len(rs))
		for i, r := range rs {
			if r > 0xFFFF {
				out[i] = substituteChar
			} else {
				out[i] = uint16(r)
			}
		}
		return api.PutUCS2String(l, out)
	case UTF32:
		rs := []rune(v)
		out := make([]uint32, len(rs))
		for i, r := range rs {
			out[i] = uint32(r)
		}
		return api.PutUTF32String(l, out)
	}
	return errman.Named(errman.MLPutStringError).WithDebug("unknown encoding %d", s.enc)
}

func (s *Stream) getString(l numlink.Link) (string, error) {
	api := s.ld.Link
	switch s.enc {
	case Native, Undefined:
		v, err := api.GetString(l)
		if err != nil {
			return "", err
		}
		api.ReleaseString(l, v)
		return v, nil
	case Byte:
		b, err := api.GetByteString(l, substituteChar)
		if err != nil {
			return "", err
		}
		api.ReleaseString(l, b)
		v, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		if err != nil {
			return "", errman.Named(errman.MLGetStringError).WithDebug("byte decode: %v", err)
		}
		return string(v), nil
	case UTF8, UTF8Strict:
		b, err := api.GetUTF8String(l)
		if err != nil {
			return "", err
		}
		api.ReleaseString(l, b)
		if s.enc == UTF8Strict && !utf8.Valid(b) {
			return "", errman.Named(errman.MLGetStringError).WithDebug("invalid UTF-8 from host")
		}
		return string(b), nil
	case UTF16:
		u, err := api.GetUTF16String(l)
		if err != nil {
			return "", err
		}
		api.ReleaseString(l, u)
		return string(utf16.Decode(u)), nil
	case UCS2:
		u, err := api.GetUCS2String(l)
		if err != nil {
			return "", err
		}
		api.ReleaseString(l, u)
		rs := make([]rune, len(u))
		for i, c := range u {
			rs[i] = rune(c)
		}
		return string(rs), nil
	case UTF32:
		u, err := api.GetUTF32String(l)
		if err != nil {
			return "", err
		}
		api.ReleaseString(l, u)
		rs := make([]rune, len(u))
		for i, c := range u {
			rs[i] = rune(c)
		}
		return string(rs), nil
	}
	return "", errman.Named(errman.MLGetStringError).WithDebug("unknown encoding %d", s.enc)
}

func ascii(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
