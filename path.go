package jsef

import "strconv"

// ParsePath splits a dotted key path such as `server."host name".port` using
// the same identifier rules as dict keys.
func ParsePath(path string) ([]string, error) {
	p := DefaultParser.newParser(newStringCursor(path))
	p.skipSpace()

	var keys []string
	for {
		key, err := p.ident()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)

		p.skipSpace()
		if !p.accept('.') {
			break
		}
		p.skipSpace()
	}

	if err := p.assertEOF(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Lookup follows path from v. Dicts are indexed by key and lists by
// decimal position.
func (v *Value) Lookup(path ...string) (*Value, bool) {
	for _, key := range path {
		switch {
		case v.IsDict():
			var ok bool
			if v, ok = v.Dict.Get(key); !ok {
				return nil, false
			}
		case v.IsList():
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(v.List) {
				return nil, false
			}
			v = v.List[i]
		default:
			return nil, false
		}
	}
	return v, v != nil
}

func (d *Dict) Lookup(path ...string) (*Value, bool) {
	if len(path) == 0 {
		return DictOf(d), true
	}
	v, ok := d.Get(path[0])
	if !ok {
		return nil, false
	}
	return v.Lookup(path[1:]...)
}
