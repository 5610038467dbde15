// Package highlight colors JSeF text for terminal output.
package highlight

import (
	"strings"
	"unicode/utf8"

	"github.com/alttpo/jsef"
	"github.com/charmbracelet/lipgloss"
)

// Kind classifies a token.
type Kind int

const (
	Word Kind = iota
	Quoted
	Key
	Bracket
	Operator
	Comment
	Invalid
)

// Token is a styled region of the highlighted text.
type Token struct {
	// Start and End are byte offsets into the text, End exclusive.
	Start int
	End   int
	Kind  Kind
	Style lipgloss.Style
}

// Theme holds one style per token kind.
type Theme struct {
	Word     lipgloss.Style
	Quoted   lipgloss.Style
	Key      lipgloss.Style
	Bracket  lipgloss.Style
	Operator lipgloss.Style
	Comment  lipgloss.Style
	Invalid  lipgloss.Style
}

// NewTheme builds the default colors on r, so the color profile follows
// the output r was created for.
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Word:     r.NewStyle().Foreground(lipgloss.Color("2")),
		Quoted:   r.NewStyle().Foreground(lipgloss.Color("3")),
		Key:      r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		Bracket:  r.NewStyle().Foreground(lipgloss.Color("5")),
		Operator: r.NewStyle().Faint(true),
		Comment:  r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Invalid:  r.NewStyle().Foreground(lipgloss.Color("1")).Underline(true),
	}
}

// DefaultTheme uses the default renderer.
func DefaultTheme() Theme {
	return NewTheme(lipgloss.DefaultRenderer())
}

func (th Theme) style(k Kind) lipgloss.Style {
	switch k {
	case Word:
		return th.Word
	case Quoted:
		return th.Quoted
	case Key:
		return th.Key
	case Bracket:
		return th.Bracket
	case Operator:
		return th.Operator
	case Comment:
		return th.Comment
	}
	return th.Invalid
}

// Tokenize splits text into non-overlapping tokens sorted by Start.
// Whitespace is left in the gaps. Words and quoted strings directly
// followed by '=' or '.', or preceded by '.', are keys.
//
// Tokenize never fails: text that would not parse still gets tokens, with
// stray characters marked Invalid.
func (th Theme) Tokenize(text string) []Token {
	var toks []Token
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		start := i
		var k Kind
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			i += size
			continue
		case r == utf8.RuneError && size == 1:
			k = Invalid
			i += size
		case r == '#':
			k = Comment
			if n := strings.IndexByte(text[i:], '\n'); n >= 0 {
				i += n
			} else {
				i = len(text)
			}
		case r == '"':
			k = Quoted
			i = quotedEnd(text, i+1)
		case r == '[' || r == ']' || r == '{' || r == '}':
			k = Bracket
			i += size
		case r == '=' || r == '.':
			k = Operator
			i += size
		case jsef.IsWordChar(r):
			k = Word
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if (r == utf8.RuneError && size == 1) || !jsef.IsWordChar(r) {
					break
				}
				i += size
			}
		default:
			k = Invalid
			i += size
		}
		toks = append(toks, Token{Start: start, End: i, Kind: k})
	}

	markKeys(text, toks)
	for i := range toks {
		toks[i].Style = th.style(toks[i].Kind)
	}
	return toks
}

// quotedEnd returns the offset just past the closing quote, or len(text)
// for an unterminated string.
func quotedEnd(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
			continue
		case '"':
			return i + 1
		}
		i++
	}
	return len(text)
}

func markKeys(text string, toks []Token) {
	isOp := func(i int, op byte) bool {
		return i >= 0 && i < len(toks) && toks[i].Kind == Operator && text[toks[i].Start] == op
	}
	for i := range toks {
		if toks[i].Kind != Word && toks[i].Kind != Quoted {
			continue
		}
		if isOp(i+1, '=') || isOp(i+1, '.') || isOp(i-1, '.') {
			toks[i].Kind = Key
		}
	}
}

// Render returns text with every token styled. Styles are applied one line
// at a time so multiline strings are not padded into blocks.
func (th Theme) Render(text string) string {
	var sb strings.Builder
	last := 0
	for _, tok := range th.Tokenize(text) {
		sb.WriteString(text[last:tok.Start])
		for j, line := range strings.Split(text[tok.Start:tok.End], "\n") {
			if j > 0 {
				sb.WriteByte('\n')
			}
			if line != "" {
				sb.WriteString(tok.Style.TabWidth(lipgloss.NoTabConversion).Render(line))
			}
		}
		last = tok.End
	}
	sb.WriteString(text[last:])
	return sb.String()
}
