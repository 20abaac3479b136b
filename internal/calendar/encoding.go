package calendar

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no source encoding is configured
const DefaultEncoding = "utf-8"

// ValidateEncoding checks that name is a known encoding label
func ValidateEncoding(name string) error {
	if isUTF8(name) {
		return nil
	}
	if _, err := htmlindex.Get(name); err != nil {
		return fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return nil
}

// decodeReader wraps r so that it yields UTF-8 text.
// A leading UTF-8 byte order mark is dropped.
func decodeReader(r io.Reader, name string) (io.Reader, error) {
	if isUTF8(name) {
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}

	return transform.NewReader(r, enc.NewDecoder()), nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}
