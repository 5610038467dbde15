package jsef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// MarshalJSON writes strings as JSON strings, lists as arrays and dicts as
// objects with their keys in insertion order.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDictJSON(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *Value) error {
	switch {
	case v.IsList():
		buf.WriteByte('[')
		for i, item := range v.List {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case v.IsDict():
		return writeDictJSON(buf, v.Dict)
	}

	s := ""
	if v != nil {
		s = v.Str
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func writeDictJSON(buf *bytes.Buffer, d *Dict) error {
	buf.WriteByte('{')
	for i := 0; i < d.Len(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, v := d.At(i)
		b, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(b)
		buf.WriteByte(':')
		if err = writeJSON(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON accepts any JSON document. Object key order is kept.
// Numbers and booleans become their literal text and null becomes the
// empty string, since strings are the only scalar.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	out, err := decodeJSON(dec, 0)
	if err != nil {
		return err
	}
	*v = *out
	return nil
}

func (d *Dict) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	if !v.IsDict() {
		return fmt.Errorf("jsef: cannot unmarshal JSON %v into a dict", v.Kind)
	}
	*d = *v.Dict
	return nil
}

func decodeJSON(dec *json.Decoder, depth int) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if depth+1 >= DepthLimit {
			return nil, &Error{Err: ErrMaxDepth}
		}
		switch t {
		case '[':
			l := make(List, 0)
			for dec.More() {
				item, err := decodeJSON(dec, depth+1)
				if err != nil {
					return nil, err
				}
				l = append(l, item)
			}
			if _, err = dec.Token(); err != nil {
				return nil, err
			}
			return ListOf(l...), nil
		case '{':
			d := NewDict()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				item, err := decodeJSON(dec, depth+1)
				if err != nil {
					return nil, err
				}
				d.Set(kt.(string), item)
			}
			if _, err = dec.Token(); err != nil {
				return nil, err
			}
			return DictOf(d), nil
		}
		return nil, fmt.Errorf("jsef: unexpected JSON delimiter %v", t)
	case string:
		return Str(t), nil
	case json.Number:
		return Str(t.String()), nil
	case bool:
		return Str(strconv.FormatBool(t)), nil
	case nil:
		return Str(""), nil
	}
	return nil, fmt.Errorf("jsef: unexpected JSON token %v", tok)
}
