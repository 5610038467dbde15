package jsef

// Dict is a string-keyed map that remembers insertion order.
// Keys are compared byte for byte.
type Dict struct {
	entries []entry
	index   map[string]int // key -> position in entries
}

type entry struct {
	key   string
	value *Value
}

func NewDict() *Dict {
	return &Dict{
		index: map[string]int{},
	}
}

func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

func (d *Dict) Get(key string) (*Value, bool) {
	if d == nil {
		return nil, false
	}
	idx, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.entries[idx].value, true
}

// Set stores value under key. An existing key keeps its position.
func (d *Dict) Set(key string, value *Value) {
	if d.index == nil {
		d.index = map[string]int{}
	}
	if idx, ok := d.index[key]; ok {
		d.entries[idx].value = value
		return
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, entry{key: key, value: value})
}

// With is Set for building literals: NewDict().With("a", Str("1")).
func (d *Dict) With(key string, value *Value) *Dict {
	d.Set(key, value)
	return d
}

func (d *Dict) Delete(key string) bool {
	idx, ok := d.index[key]
	if !ok {
		return false
	}
	d.entries = append(d.entries[:idx], d.entries[idx+1:]...)
	delete(d.index, key)
	for i := idx; i < len(d.entries); i++ {
		d.index[d.entries[i].key] = i
	}
	return true
}

// At returns the i-th entry in insertion order.
func (d *Dict) At(i int) (string, *Value) {
	e := d.entries[i]
	return e.key, e.value
}

func (d *Dict) Keys() []string {
	keys := make([]string, d.Len())
	for i := range keys {
		keys[i] = d.entries[i].key
	}
	return keys
}

// Range calls f for each entry in insertion order until f returns false.
func (d *Dict) Range(f func(key string, value *Value) bool) {
	if d == nil {
		return
	}
	for _, e := range d.entries {
		if !f(e.key, e.value) {
			return
		}
	}
}

func (d *Dict) Equal(o *Dict) bool {
	if d.Len() != o.Len() {
		return false
	}
	for i := 0; i < d.Len(); i++ {
		if d.entries[i].key != o.entries[i].key {
			return false
		}
		if !d.entries[i].value.Equal(o.entries[i].value) {
			return false
		}
	}
	return true
}

// fold returns the dict stored under key for path notation. If key is absent
// or holds anything other than a dict, the old value is discarded and
// replaced in place with a new empty dict.
func (d *Dict) fold(key string) *Dict {
	v, ok := d.Get(key)
	if ok && v.IsDict() {
		return v.Dict
	}
	child := NewDict()
	d.Set(key, DictOf(child))
	return child
}
