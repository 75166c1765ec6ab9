package ingest

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrUndecodable is returned when no candidate encoding can decode the
// input bytes.
var ErrUndecodable = errors.New("could not decode input with any supported encoding")

// candidate is one entry in the encoding try-list. A nil charmap means
// plain UTF-8 validation.
type candidate struct {
	name string
	cm   *charmap.Charmap
}

// Bank exports arrive in a handful of legacy encodings; candidates are
// tried in order and the first that decodes wins. latin-1 and
// iso-8859-1 share a decoder but both names stay in the list so the
// published order is preserved.
var candidates = []candidate{
	{name: "utf-8"},
	{name: "latin-1", cm: charmap.ISO8859_1},
	{name: "iso-8859-1", cm: charmap.ISO8859_1},
	{name: "cp1252", cm: charmap.Windows1252},
}

// DecodeText decodes raw CSV bytes, returning the text and the name of
// the encoding that succeeded.
func DecodeText(data []byte) (string, string, error) {
	for _, c := range candidates {
		if c.cm == nil {
			if utf8.Valid(data) {
				return string(data), c.name, nil
			}
			continue
		}
		out, err := c.cm.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		return string(out), c.name, nil
	}
	return "", "", ErrUndecodable
}
