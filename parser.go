package jsef

import (
	"errors"
	"io"
	"strings"
)

// DepthLimit is the default bound on list and dict nesting for both parsing
// and composing.
const DepthLimit = 256

// Parser holds parse settings. The zero value is ready to use.
type Parser struct {
	// MaxDepth bounds list/dict nesting; zero means DepthLimit. Input nested
	// MaxDepth levels deep fails with ErrMaxDepth.
	MaxDepth int

	// NoPositions turns off line/column tracking; errors then carry the
	// zero Position.
	NoPositions bool
}

var DefaultParser = Parser{MaxDepth: DepthLimit}

// ParseValue parses any value. Root lists and dicts need their brackets.
func (e Parser) ParseValue(text string) (*Value, error) {
	return e.newParser(newStringCursor(text)).valueRoot()
}

// ParseList parses a list whose root square brackets are omitted.
func (e Parser) ParseList(text string) (List, error) {
	return e.newParser(newStringCursor(text)).listRoot()
}

// ParseDict parses a dict whose root curly brackets are omitted.
func (e Parser) ParseDict(text string) (*Dict, error) {
	return e.newParser(newStringCursor(text)).dictRoot()
}

// ReadValue is ParseValue over UTF-8 read from r. It reads through the end
// of input.
func (e Parser) ReadValue(r io.Reader) (*Value, error) {
	return e.newParser(newReaderCursor(r)).valueRoot()
}

func (e Parser) ReadList(r io.Reader) (List, error) {
	return e.newParser(newReaderCursor(r)).listRoot()
}

func (e Parser) ReadDict(r io.Reader) (*Dict, error) {
	return e.newParser(newReaderCursor(r)).dictRoot()
}

func (e Parser) newParser(c cursor) *parser {
	limit := e.MaxDepth
	if limit <= 0 {
		limit = DepthLimit
	}
	return &parser{
		src:   c,
		pos:   newPositioner(!e.NoPositions),
		limit: limit,
	}
}

// invalid is returned by peek once the source has failed. It matches no
// character class, so the grammar stops and reports the stored fault.
const invalid rune = -2

type parser struct {
	src   cursor
	pos   positioner
	depth int
	limit int

	// fault is the first failure of the source itself. Once set, it is
	// reported in place of whatever error the grammar runs into next.
	fault error
}

func (p *parser) valueRoot() (*Value, error) {
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if err = p.assertEOF(); err != nil {
		return nil, err
	}
	return v, nil
}

func (p *parser) listRoot() (List, error) {
	l, err := p.list(true)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if err = p.assertEOF(); err != nil {
		return nil, err
	}
	return l, nil
}

func (p *parser) dictRoot() (*Dict, error) {
	d, err := p.dict(true)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if err = p.assertEOF(); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *parser) fail(err error, expected, found rune) error {
	if p.fault != nil {
		return p.fault
	}
	return &Error{
		Err:      err,
		Expected: expected,
		Found:    found,
		Pos:      p.pos.position(),
	}
}

func (p *parser) peek() rune {
	if p.fault != nil {
		return invalid
	}
	r, err := p.src.peek()
	if err != nil {
		e := &Error{Err: ErrSourceFailure, Found: EOF, Pos: p.pos.position(), Cause: err}
		if errors.Is(err, ErrInvalidEncoding) {
			e.Err, e.Cause = ErrInvalidEncoding, nil
		}
		p.fault = e
		return invalid
	}
	return r
}

func (p *parser) advance() {
	r := p.peek()
	if r < 0 {
		return
	}
	p.src.skip()
	p.pos.observe(r)
}

func (p *parser) skipWhile(pred func(rune) bool) {
	for r := p.peek(); r >= 0 && pred(r); r = p.peek() {
		p.advance()
	}
}

func (p *parser) takeWhile(pred func(rune) bool) string {
	if s, ok := p.src.(spanner); ok {
		start := s.offset()
		p.skipWhile(pred)
		return s.since(start)
	}

	var sb strings.Builder
	for r := p.peek(); r >= 0 && pred(r); r = p.peek() {
		sb.WriteRune(r)
		p.advance()
	}
	return sb.String()
}

func (p *parser) expect(c rune) error {
	if r := p.peek(); r != c {
		return p.fail(ErrMismatch, c, r)
	}
	p.advance()
	return nil
}

func (p *parser) accept(c rune) bool {
	if p.peek() != c {
		return false
	}
	p.advance()
	return true
}

func (p *parser) assertEOF() error {
	if r := p.peek(); r != EOF {
		return p.fail(ErrTrailingContent, 0, r)
	}
	return nil
}

func (p *parser) push() error {
	p.depth++
	if p.depth >= p.limit {
		return p.fail(ErrMaxDepth, 0, 0)
	}
	return nil
}

func (p *parser) pop() {
	p.depth--
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// IsWordChar reports whether r may appear in an unquoted word.
func IsWordChar(r rune) bool {
	if r < 0 || isSpace(r) {
		return false
	}
	switch r {
	case '"', '=', '.', '{', '}', '[', ']', '#':
		return false
	}
	return true
}

// skipSpace skips whitespace and comments.
func (p *parser) skipSpace() {
	for {
		switch r := p.peek(); {
		case isSpace(r):
			p.skipWhile(isSpace)
		case r == '#':
			p.skipWhile(func(r rune) bool { return r != '\n' })
		default:
			return
		}
	}
}

func (p *parser) word() (string, error) {
	s := p.takeWhile(IsWordChar)
	if s == "" {
		return "", p.fail(ErrUnexpected, 0, p.peek())
	}
	return s, nil
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	}
	return r
}

func (p *parser) quoted() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}

	var sb strings.Builder
	for {
		sb.WriteString(p.takeWhile(func(r rune) bool { return r != '"' && r != '\\' }))
		if p.peek() != '\\' {
			break
		}
		p.advance()

		r := p.peek()
		if r < 0 {
			return "", p.fail(ErrUnexpected, 0, r)
		}
		p.advance()
		sb.WriteRune(unescape(r))
	}

	if err := p.expect('"'); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (p *parser) ident() (string, error) {
	if p.peek() == '"' {
		return p.quoted()
	}
	return p.word()
}

// pair parses key(.key)*=value into d, creating or replacing intermediate
// dicts along the path.
func (p *parser) pair(d *Dict) error {
	key, err := p.ident()
	if err != nil {
		return err
	}
	p.skipSpace()

	for p.accept('.') {
		d = d.fold(key)

		p.skipSpace()
		key, err = p.ident()
		if err != nil {
			return err
		}
		p.skipSpace()
	}

	if err = p.expect('='); err != nil {
		return err
	}
	p.skipSpace()

	v, err := p.value()
	if err != nil {
		return err
	}
	d.Set(key, v)
	return nil
}

// many parses the elements of a list or dict. Root forms have no brackets
// and run to the end of input.
func (p *parser) many(root bool, open, close rune, each func() error) error {
	if !root {
		if err := p.push(); err != nil {
			return err
		}
		if err := p.expect(open); err != nil {
			return err
		}
	}
	p.skipSpace()

	for {
		r := p.peek()
		if root {
			if r == EOF {
				break
			}
		} else if r == close {
			p.advance()
			break
		} else if r == EOF {
			return p.fail(ErrMismatch, close, r)
		}

		if err := each(); err != nil {
			return err
		}
		p.skipSpace()
	}

	if !root {
		p.pop()
	}
	return nil
}

func (p *parser) value() (*Value, error) {
	switch p.peek() {
	case '{':
		d, err := p.dict(false)
		if err != nil {
			return nil, err
		}
		return DictOf(d), nil
	case '[':
		l, err := p.list(false)
		if err != nil {
			return nil, err
		}
		return ListOf(l...), nil
	case '"':
		s, err := p.quoted()
		if err != nil {
			return nil, err
		}
		return Str(s), nil
	default:
		s, err := p.word()
		if err != nil {
			return nil, err
		}
		return Str(s), nil
	}
}

func (p *parser) list(root bool) (List, error) {
	l := make(List, 0)
	err := p.many(root, '[', ']', func() error {
		v, err := p.value()
		if err != nil {
			return err
		}
		l = append(l, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (p *parser) dict(root bool) (*Dict, error) {
	d := NewDict()
	err := p.many(root, '{', '}', func() error {
		return p.pair(d)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}
