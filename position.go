package jsef

import "strconv"

// Position is a 1-based line and column, counted in characters.
// The zero Position means tracking was disabled.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

func (p Position) IsValid() bool {
	return p.Line > 0
}

// positioner is told about every character consumed or emitted, in order.
type positioner interface {
	observe(r rune)
	position() Position
}

func newPositioner(enabled bool) positioner {
	if !enabled {
		return nopCounter{}
	}
	return &lineCounter{line: 1, col: 1}
}

type lineCounter struct {
	line int
	col  int
}

func (c *lineCounter) observe(r rune) {
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
}

func (c *lineCounter) position() Position {
	return Position{Line: c.line, Column: c.col}
}

type nopCounter struct{}

func (nopCounter) observe(rune)       {}
func (nopCounter) position() Position { return Position{} }
