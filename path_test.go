package jsef

import (
	"reflect"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    []string
		wantErr bool
	}{
		{name: "xpass: single key", path: "a", want: []string{"a"}},
		{name: "xpass: dotted", path: "a.b.c", want: []string{"a", "b", "c"}},
		{name: "xpass: spaced and quoted", path: ` a . "b c" .0 `, want: []string{"a", "b c", "0"}},
		{name: "xfail: empty", path: "", wantErr: true},
		{name: "xfail: trailing dot", path: "a.", wantErr: true},
		{name: "xfail: assignment", path: "a=b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePath() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	d, err := ParseDict(`server.host = localhost servers = [{name = a} {name = b}] empty = ""`)
	if err != nil {
		t.Fatalf("ParseDict() error = %v", err)
	}

	tests := []struct {
		path   []string
		want   *Value
		wantOk bool
	}{
		{[]string{"server", "host"}, Str("localhost"), true},
		{[]string{"servers", "1", "name"}, Str("b"), true},
		{[]string{"empty"}, Str(""), true},
		{[]string{"server", "port"}, nil, false},
		{[]string{"servers", "2"}, nil, false},
		{[]string{"servers", "-1"}, nil, false},
		{[]string{"servers", "x"}, nil, false},
		{[]string{"server", "host", "deeper"}, nil, false},
	}
	for _, tt := range tests {
		got, ok := d.Lookup(tt.path...)
		if ok != tt.wantOk || !got.Equal(tt.want) {
			t.Errorf("Lookup(%v) = %v, %v, want %v, %v", tt.path, got, ok, tt.want, tt.wantOk)
		}
	}

	if got, ok := d.Lookup(); !ok || !got.Dict.Equal(d) {
		t.Errorf("Lookup() with no path = %v, %v", got, ok)
	}
}
