package jsef

type Kind int

const (
	KindString Kind = iota
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	}
	return "invalid"
}

// Value is a single node of a value tree. Kind selects which of Str, List
// or Dict is meaningful; the other fields are left at their zero value.
type Value struct {
	Kind
	Str  string
	List List
	Dict *Dict
}

// List is an ordered sequence of values.
type List []*Value

func Str(s string) *Value {
	return &Value{
		Kind: KindString,
		Str:  s,
	}
}

func ListOf(items ...*Value) *Value {
	if items == nil {
		items = make(List, 0)
	}
	return &Value{
		Kind: KindList,
		List: items,
	}
}

// DictOf wraps d in a Value. A nil d is replaced with an empty dict.
func DictOf(d *Dict) *Value {
	if d == nil {
		d = NewDict()
	}
	return &Value{
		Kind: KindDict,
		Dict: d,
	}
}

func (v *Value) IsString() bool { return v != nil && v.Kind == KindString }
func (v *Value) IsList() bool   { return v != nil && v.Kind == KindList }
func (v *Value) IsDict() bool   { return v != nil && v.Kind == KindDict }

func (v *Value) AsString() (string, bool) {
	if !v.IsString() {
		return "", false
	}
	return v.Str, true
}

func (v *Value) AsList() (List, bool) {
	if !v.IsList() {
		return nil, false
	}
	return v.List, true
}

func (v *Value) AsDict() (*Dict, bool) {
	if !v.IsDict() {
		return nil, false
	}
	return v.Dict, true
}

// Equal reports whether v and o hold the same tree. List order and dict
// insertion order are both significant.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindList:
		return v.List.Equal(o.List)
	case KindDict:
		return v.Dict.Equal(o.Dict)
	}
	return false
}

func (l List) Equal(o List) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if !l[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// String composes v with the Compact style.
func (v *Value) String() string {
	s, err := Compact.ComposeValue(v)
	if err != nil {
		return "!!(" + err.Error() + ")!!"
	}
	return s
}
