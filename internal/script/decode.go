package script

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encodings lists the accepted input charset names.
var Encodings = []string{"utf8", "latin1", "windows1252"}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "")) {
	case "", "utf8":
		return nil, nil
	case "latin1", "iso88591":
		return charmap.ISO8859_1, nil
	case "windows1252", "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("script: unknown encoding %q (want one of %s)", name, strings.Join(Encodings, ", "))
}

// NewDecodingReader wraps r so its bytes are decoded from the named charset to UTF-8.
func NewDecodingReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
