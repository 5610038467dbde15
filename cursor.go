package jsef

import (
	"io"
	"unicode/utf8"
)

// cursor is the parser's view of its input: one character of lookahead.
type cursor interface {
	// peek returns the next character without consuming it, or EOF.
	peek() (rune, error)
	// skip consumes the character last returned by peek.
	skip()
}

// spanner is implemented by cursors over in-memory text, letting the
// parser slice tokens out of the input instead of copying them.
type spanner interface {
	offset() int
	since(start int) string
}

type stringCursor struct {
	src string
	off int
}

func newStringCursor(src string) *stringCursor {
	return &stringCursor{src: src}
}

func (c *stringCursor) peek() (rune, error) {
	if c.off >= len(c.src) {
		return EOF, nil
	}
	if b := c.src[c.off]; b < utf8.RuneSelf {
		return rune(b), nil
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.off:])
	return r, nil
}

func (c *stringCursor) skip() {
	if c.off >= len(c.src) {
		return
	}
	if c.src[c.off] < utf8.RuneSelf {
		c.off++
		return
	}
	_, n := utf8.DecodeRuneInString(c.src[c.off:])
	c.off += n
}

func (c *stringCursor) offset() int {
	return c.off
}

func (c *stringCursor) since(start int) string {
	return c.src[start:c.off]
}

type readerCursor struct {
	dec    *runeDecoder
	r      rune
	err    error
	peeked bool
}

func newReaderCursor(r io.Reader) *readerCursor {
	return &readerCursor{dec: newRuneDecoder(r)}
}

func (c *readerCursor) peek() (rune, error) {
	if !c.peeked {
		c.r, c.err = c.dec.readRune()
		if c.err == io.EOF {
			c.r, c.err = EOF, nil
		}
		c.peeked = true
	}
	return c.r, c.err
}

func (c *readerCursor) skip() {
	if c.err == nil && c.r != EOF {
		c.peeked = false
	}
}
