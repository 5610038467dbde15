package jsef

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// runeDecoder decodes UTF-8 from a byte source one scalar value at a time.
// Nothing is validated ahead of the character being read, so errors are
// reported exactly where decoding stops.
type runeDecoder struct {
	r io.ByteReader
}

func newRuneDecoder(r io.Reader) *runeDecoder {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &runeDecoder{r: br}
}

// readRune returns io.EOF at a clean end of input, ErrInvalidEncoding for
// malformed sequences, and any other error from the source unchanged.
func (d *runeDecoder) readRune() (rune, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}

	var r rune
	var n int
	switch {
	case b <= 0x7F:
		return rune(b), nil
	case b >= 0xC0 && b <= 0xDF:
		r, n = rune(b&0x1F), 1
	case b >= 0xE0 && b <= 0xEF:
		r, n = rune(b&0x0F), 2
	case b >= 0xF0 && b <= 0xF7:
		r, n = rune(b&0x07), 3
	default:
		return 0, ErrInvalidEncoding
	}

	for i := 0; i < n; i++ {
		c, err := d.readCont()
		if err != nil {
			return 0, err
		}
		r = r<<6 | c
	}

	if !utf8.ValidRune(r) {
		return 0, ErrInvalidEncoding
	}
	return r, nil
}

func (d *runeDecoder) readCont() (rune, error) {
	b, err := d.r.ReadByte()
	if err == io.EOF {
		return 0, ErrInvalidEncoding
	}
	if err != nil {
		return 0, err
	}
	if b < 0x80 || b > 0xBF {
		return 0, ErrInvalidEncoding
	}
	return rune(b & 0x3F), nil
}
