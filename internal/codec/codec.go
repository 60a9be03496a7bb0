// Package codec converts between raw file content and text for the encodings
// the engine accepts.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/brettbedarf/fakefs"
)

// ErrUnknownEncoding is returned for encoding names with no codec.
var ErrUnknownEncoding = errors.New("unknown encoding")

var aliases = map[string]fakefs.Encoding{
	"utf8":       fakefs.UTF8,
	"utf-8":      fakefs.UTF8,
	"ascii":      fakefs.ASCII,
	"latin1":     fakefs.Latin1,
	"binary":     fakefs.Latin1,
	"iso-8859-1": fakefs.Latin1,
	"base64":     fakefs.Base64,
	"hex":        fakefs.Hex,
	"utf16le":    fakefs.UTF16LE,
	"utf-16le":   fakefs.UTF16LE,
	"ucs2":       fakefs.UTF16LE,
	"ucs-2":      fakefs.UTF16LE,
}

// Canonical maps an encoding name or alias (case-insensitive) onto its
// canonical [fakefs.Encoding].
func Canonical(enc fakefs.Encoding) (fakefs.Encoding, error) {
	if c, ok := aliases[strings.ToLower(string(enc))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, string(enc))
}

// encodeLatin1 replaces runes outside the charset with '?' instead of failing.
func encodeLatin1(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

func utf16le() encoding.Encoding {
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
}

// Decode renders data as text in enc.
func Decode(enc fakefs.Encoding, data []byte) (string, error) {
	enc, err := Canonical(enc)
	if err != nil {
		return "", err
	}

	switch enc {
	case fakefs.UTF8:
		// invalid sequences become U+FFFD
		out, err := unicode.UTF8.NewDecoder().Bytes(data)
		return string(out), err
	case fakefs.ASCII:
		out := make([]byte, len(data))
		for i, b := range data {
			out[i] = b & 0x7f
		}
		return string(out), nil
	case fakefs.Latin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		return string(out), err
	case fakefs.Base64:
		return base64.StdEncoding.EncodeToString(data), nil
	case fakefs.Hex:
		return hex.EncodeToString(data), nil
	case fakefs.UTF16LE:
		out, err := utf16le().NewDecoder().Bytes(data)
		return string(out), err
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, string(enc))
}

// Encode converts text in enc into raw content.
func Encode(enc fakefs.Encoding, text string) ([]byte, error) {
	enc, err := Canonical(enc)
	if err != nil {
		return nil, err
	}

	switch enc {
	case fakefs.UTF8:
		return unicode.UTF8.NewEncoder().Bytes([]byte(text))
	case fakefs.ASCII, fakefs.Latin1:
		return encodeLatin1(text), nil
	case fakefs.Base64:
		return decodeBase64(text)
	case fakefs.Hex:
		out, err := hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("invalid hex content: %w", err)
		}
		return out, nil
	case fakefs.UTF16LE:
		return utf16le().NewEncoder().Bytes([]byte(text))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, string(enc))
}

// decodeBase64 accepts standard and URL-safe alphabets, with or without
// padding, and ignores whitespace.
func decodeBase64(text string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		case '-':
			return '+'
		case '_':
			return '/'
		}
		return r
	}, text)
	cleaned = strings.TrimRight(cleaned, "=")

	out, err := base64.RawStdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 content: %w", err)
	}
	return out, nil
}
