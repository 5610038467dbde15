package jsef

import (
	"bufio"
	"io"
	"strings"
)

// Style controls how values are composed into text.
type Style struct {
	// Multiline puts every element and every closing bracket on its own line,
	// indented by Indent once per nesting level. Without it the whole
	// document is composed on a single line.
	Multiline bool
	Indent    string

	// ForceQuotes quotes every key and string, not just the ones that need it.
	ForceQuotes bool

	// Dense omits optional spaces: around '=', and inside brackets when not
	// Multiline. Siblings are always separated.
	Dense bool

	// FoldDicts writes a pair whose value is a single-entry dict with path
	// notation, a.b=x instead of a={b=x}.
	FoldDicts bool

	// Prelude is written first, each line as a '#' comment.
	Prelude string

	// MaxDepth bounds list/dict nesting; zero means DepthLimit.
	MaxDepth int
}

var (
	// Pretty is for output meant to be read and edited by people.
	Pretty = Style{
		Multiline: true,
		Indent:    "\t",
		FoldDicts: true,
	}

	// Compact is for small output not necessarily meant for reading.
	Compact = Style{
		Dense:     true,
		FoldDicts: true,
	}

	// Simple is for output that is easy for other tools to consume.
	Simple = Style{
		ForceQuotes: true,
		Dense:       true,
	}
)

func (s Style) WithIndent(unit string) Style {
	s.Multiline = true
	s.Indent = unit
	return s
}

func (s Style) SingleLine() Style {
	s.Multiline = false
	s.Indent = ""
	return s
}

func (s Style) WithForceQuotes(v bool) Style {
	s.ForceQuotes = v
	return s
}

func (s Style) WithDense(v bool) Style {
	s.Dense = v
	return s
}

func (s Style) WithFoldDicts(v bool) Style {
	s.FoldDicts = v
	return s
}

func (s Style) WithPrelude(msg string) Style {
	s.Prelude = msg
	return s
}

func (s Style) WithMaxDepth(n int) Style {
	s.MaxDepth = n
	return s
}

// ComposeValue composes v including any root brackets; the result parses
// back with ParseValue.
func (s Style) ComposeValue(v *Value) (string, error) {
	var sb strings.Builder
	if err := s.newComposer(&sb).valueRoot(v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ComposeList composes l without its root brackets; the result parses back
// with ParseList.
func (s Style) ComposeList(l List) (string, error) {
	var sb strings.Builder
	if err := s.newComposer(&sb).listRoot(l); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ComposeDict composes d without its root brackets; the result parses back
// with ParseDict.
func (s Style) ComposeDict(d *Dict) (string, error) {
	var sb strings.Builder
	if err := s.newComposer(&sb).dictRoot(d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (s Style) WriteValue(w io.Writer, v *Value) error {
	return s.write(w, func(c *composer) error { return c.valueRoot(v) })
}

func (s Style) WriteList(w io.Writer, l List) error {
	return s.write(w, func(c *composer) error { return c.listRoot(l) })
}

func (s Style) WriteDict(w io.Writer, d *Dict) error {
	return s.write(w, func(c *composer) error { return c.dictRoot(d) })
}

func (s Style) write(w io.Writer, f func(c *composer) error) error {
	bw := bufio.NewWriter(w)
	c := s.newComposer(bw)
	if err := f(c); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return c.sinkError(err)
	}
	return nil
}

func (s Style) newComposer(w io.Writer) *composer {
	limit := s.MaxDepth
	if limit <= 0 {
		limit = DepthLimit
	}
	return &composer{
		style: s,
		w:     w,
		pos:   &lineCounter{line: 1, col: 1},
		limit: limit,
	}
}

type composer struct {
	style Style
	w     io.Writer
	pos   *lineCounter
	depth int
	limit int

	// err is the first sink failure; once set nothing more is written.
	err error
}

func (c *composer) sinkError(err error) error {
	return &Error{
		Err:   ErrSinkFailure,
		Found: EOF,
		Pos:   c.pos.position(),
		Cause: err,
	}
}

func (c *composer) emit(s string) {
	if c.err != nil {
		return
	}
	if _, err := io.WriteString(c.w, s); err != nil {
		c.err = c.sinkError(err)
		return
	}
	for _, r := range s {
		c.pos.observe(r)
	}
}

func (c *composer) valueRoot(v *Value) error {
	c.prelude()
	if err := c.value(v); err != nil {
		return err
	}
	return c.err
}

func (c *composer) listRoot(l List) error {
	c.prelude()
	if err := c.list(l, false); err != nil {
		return err
	}
	return c.err
}

func (c *composer) dictRoot(d *Dict) error {
	c.prelude()
	if err := c.dict(d, false); err != nil {
		return err
	}
	return c.err
}

func (c *composer) prelude() {
	if c.style.Prelude == "" {
		return
	}
	for _, line := range strings.Split(c.style.Prelude, "\n") {
		if line == "" {
			c.emit("#\n")
		} else {
			c.emit("# " + line + "\n")
		}
	}
}

func (c *composer) push() error {
	c.depth++
	if c.depth >= c.limit {
		return &Error{Err: ErrMaxDepth, Pos: c.pos.position()}
	}
	return nil
}

func (c *composer) pop() {
	c.depth--
}

// separator goes before an element or a closing bracket. between is set
// for the space that must separate two siblings.
func (c *composer) separator(between bool) {
	if c.style.Multiline {
		c.emit("\n" + strings.Repeat(c.style.Indent, c.depth))
	} else if between || !c.style.Dense {
		c.emit(" ")
	}
}

var escaper = strings.NewReplacer(
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
	"\x00", `\0`,
	`\`, `\\`,
	`"`, `\"`,
)

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	return strings.IndexFunc(s, func(r rune) bool { return !IsWordChar(r) }) >= 0
}

func (c *composer) str(s string) {
	if c.style.ForceQuotes || needsQuotes(s) {
		c.emit(`"` + escaper.Replace(s) + `"`)
	} else {
		c.emit(s)
	}
}

func (c *composer) pair(key string, v *Value) error {
	c.str(key)

	if c.style.FoldDicts {
		for v.IsDict() && v.Dict.Len() == 1 {
			var k string
			k, v = v.Dict.At(0)
			c.emit(".")
			c.str(k)
		}
	}

	if c.style.Dense {
		c.emit("=")
	} else {
		c.emit(" = ")
	}
	return c.value(v)
}

// many composes n elements. brackets is false only for root forms, which
// also do not count towards the depth limit.
func (c *composer) many(brackets bool, open, close string, n int, each func(i int) error) error {
	if brackets {
		if err := c.push(); err != nil {
			return err
		}
		c.emit(open)
	}

	for i := 0; i < n; i++ {
		if i > 0 {
			c.separator(true)
		} else if brackets {
			c.separator(false)
		}
		if err := each(i); err != nil {
			return err
		}
	}

	if brackets {
		c.pop()
		if n > 0 {
			c.separator(false)
		}
		c.emit(close)
	}
	return c.err
}

func (c *composer) value(v *Value) error {
	switch {
	case v.IsList():
		return c.list(v.List, true)
	case v.IsDict():
		return c.dict(v.Dict, true)
	case v == nil:
		c.str("")
	default:
		c.str(v.Str)
	}
	return c.err
}

func (c *composer) list(l List, brackets bool) error {
	return c.many(brackets, "[", "]", len(l), func(i int) error {
		return c.value(l[i])
	})
}

func (c *composer) dict(d *Dict, brackets bool) error {
	return c.many(brackets, "{", "}", d.Len(), func(i int) error {
		k, v := d.At(i)
		return c.pair(k, v)
	})
}
