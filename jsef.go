package jsef

import "io"

// ParseValue parses any value from text with DefaultParser.
// Root lists and dicts must be enclosed in their brackets.
func ParseValue(text string) (*Value, error) {
	return DefaultParser.ParseValue(text)
}

// ParseList parses a list from text. Its root square brackets must be omitted.
func ParseList(text string) (List, error) {
	return DefaultParser.ParseList(text)
}

// ParseDict parses a dict from text. Its root curly brackets must be omitted.
func ParseDict(text string) (*Dict, error) {
	return DefaultParser.ParseDict(text)
}

func ReadValue(r io.Reader) (*Value, error) {
	return DefaultParser.ReadValue(r)
}

func ReadList(r io.Reader) (List, error) {
	return DefaultParser.ReadList(r)
}

func ReadDict(r io.Reader) (*Dict, error) {
	return DefaultParser.ReadDict(r)
}

// ComposeValue composes v with style, root brackets included.
func ComposeValue(v *Value, style Style) (string, error) {
	return style.ComposeValue(v)
}

// ComposeList composes l with style, root brackets omitted.
func ComposeList(l List, style Style) (string, error) {
	return style.ComposeList(l)
}

// ComposeDict composes d with style, root brackets omitted.
func ComposeDict(d *Dict, style Style) (string, error) {
	return style.ComposeDict(d)
}

func WriteValue(w io.Writer, v *Value, style Style) error {
	return style.WriteValue(w, v)
}

func WriteList(w io.Writer, l List, style Style) error {
	return style.WriteList(w, l)
}

func WriteDict(w io.Writer, d *Dict, style Style) error {
	return style.WriteDict(w, d)
}
