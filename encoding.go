package fakefs

// Encoding names a text encoding used to convert between file content and strings.
type Encoding string

// Canonical encodings. Aliases such as "utf-8", "binary" or "ucs2" are accepted
// wherever an Encoding is read and mapped onto one of these.
const (
	UTF8    Encoding = "utf8"
	ASCII   Encoding = "ascii"
	Latin1  Encoding = "latin1"
	Base64  Encoding = "base64"
	Hex     Encoding = "hex"
	UTF16LE Encoding = "utf16le"
)

func (e Encoding) encoding() Encoding { return e }

// Options is the record form of an [EncodingOption].
type Options struct {
	Encoding Encoding `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

func (o Options) encoding() Encoding { return o.Encoding }

// ResolveEncoding returns the first non-empty encoding named by opts,
// or "" when none is given.
func ResolveEncoding(opts ...EncodingOption) Encoding {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if enc := opt.encoding(); enc != "" {
			return enc
		}
	}
	return ""
}
