package csv

import "github.com/domonda/go-types/charset"

// TextTransformer transforms encoded rows before they are written.
type TextTransformer interface {
	Bytes([]byte) ([]byte, error)
}

// CharsetEncoder is a TextTransformer encoding UTF-8 to a charset.
type CharsetEncoder struct {
	Encoding charset.Encoding
}

func (e CharsetEncoder) Bytes(utf8Str []byte) ([]byte, error) {
	return e.Encoding.Encode(utf8Str)
}
