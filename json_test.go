package jsef

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMarshalJSON(t *testing.T) {
	v := DictOf(NewDict().
		With("z", Str("last")).
		With("a", ListOf(Str("1"), DictOf(nil), ListOf())).
		With("q", Str(`say "hi"`)))

	got, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"z":"last","a":["1",{},[]],"q":"say \"hi\""}`
	if string(got) != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}

	got, err = json.Marshal(v.Dict)
	if err != nil || string(got) != want {
		t.Errorf("json.Marshal(dict) = %s, %v", got, err)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var v Value
	src := `{"b": 1.50, "a": [true, null, "x"], "c": {"d": {}}}`
	if err := json.Unmarshal([]byte(src), &v); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	want := DictOf(NewDict().
		With("b", Str("1.50")).
		With("a", ListOf(Str("true"), Str(""), Str("x"))).
		With("c", DictOf(NewDict().With("d", DictOf(nil)))))
	if !v.Equal(want) {
		t.Errorf("json.Unmarshal() = %v, want %v", &v, want)
	}

	var d Dict
	if err := json.Unmarshal([]byte(src), &d); err != nil {
		t.Fatalf("json.Unmarshal(dict) error = %v", err)
	}
	if !d.Equal(want.Dict) {
		t.Errorf("json.Unmarshal(dict) = %v", DictOf(&d))
	}

	if err := json.Unmarshal([]byte(`["not", "a", "dict"]`), &d); err == nil {
		t.Errorf("json.Unmarshal(list into dict) succeeded")
	}

	var l List
	if err := json.Unmarshal([]byte(`["a", ["b"]]`), &l); err != nil {
		t.Fatalf("json.Unmarshal(list) error = %v", err)
	}
	if !l.Equal(List{Str("a"), ListOf(Str("b"))}) {
		t.Errorf("json.Unmarshal(list) = %v", ListOf(l...))
	}
}

func TestUnmarshalJSONDepth(t *testing.T) {
	deep := strings.Repeat("[", DepthLimit) + strings.Repeat("]", DepthLimit)
	var v Value
	err := json.Unmarshal([]byte(deep), &v)
	if !errors.Is(err, ErrMaxDepth) {
		t.Errorf("json.Unmarshal() error = %v, want ErrMaxDepth", err)
	}
}
