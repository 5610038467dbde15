// Package lua exposes the JSeF codec to gopher-lua scripts.
//
//	L.PreloadModule("jsef", lua.Loader)
//
//	local jsef = require("jsef")
//	local cfg, err = jsef.parse("a.b = 1 list = [x y]", "dict")
//	print(cfg.a.b, cfg.list[2])
//	print(jsef.compose(cfg, "compact", "dict"))
//
// Strings map to Lua strings, lists to sequences and dicts to tables with
// string keys. Lists and dicts carry a metatable recording which they are,
// and dicts remember their key order, so a parsed table composes back the
// same way. Plain tables are lists when their keys are exactly 1..n and
// dicts otherwise; numbers and booleans become their text.
package lua

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alttpo/jsef"
	lua "github.com/yuin/gopher-lua"
)

const (
	kindField  = "__jsef"
	orderField = "__order"
)

var exports = map[string]lua.LGFunction{
	"parse":   parse,
	"compose": compose,
	"list":    newList,
	"dict":    newDict,
}

// Loader is a lua.LGFunction suitable for LState.PreloadModule.
func Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), exports)
	L.Push(mod)
	return 1
}

// Open registers the module as the global "jsef".
func Open(L *lua.LState) {
	L.Push(L.NewFunction(Loader))
	L.Call(0, 1)
	L.SetGlobal("jsef", L.Get(-1))
	L.Pop(1)
}

// parse(text [, form]) returns the value, or nil and an error table with
// err, kind, line and column fields. form is "value" (default), "list" or
// "dict".
func parse(L *lua.LState) int {
	text := L.CheckString(1)
	form := L.OptString(2, "value")

	var v *jsef.Value
	var err error
	switch form {
	case "value":
		v, err = jsef.ParseValue(text)
	case "list":
		var l jsef.List
		if l, err = jsef.ParseList(text); err == nil {
			v = jsef.ListOf(l...)
		}
	case "dict":
		var d *jsef.Dict
		if d, err = jsef.ParseDict(text); err == nil {
			v = jsef.DictOf(d)
		}
	default:
		L.ArgError(2, "form must be value, list or dict")
		return 0
	}

	if err != nil {
		L.Push(lua.LNil)
		L.Push(errorTable(L, err))
		return 2
	}
	L.Push(ToLua(L, v))
	return 1
}

// compose(value [, style [, form]]) returns the text, or nil and an error
// table. style is "pretty", "compact" (default), "simple" or a table of
// options named like the Style fields in snake_case.
func compose(L *lua.LState) int {
	v, err := FromLua(L.CheckAny(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	style, err := checkStyle(L, 2)
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}

	var out string
	switch form := L.OptString(3, "value"); form {
	case "value":
		out, err = style.ComposeValue(v)
	case "list":
		if !v.IsList() {
			L.ArgError(1, "list form needs a list")
			return 0
		}
		out, err = style.ComposeList(v.List)
	case "dict":
		if !v.IsDict() {
			L.ArgError(1, "dict form needs a dict")
			return 0
		}
		out, err = style.ComposeDict(v.Dict)
	default:
		L.ArgError(3, "form must be value, list or dict")
		return 0
	}

	if err != nil {
		L.Push(lua.LNil)
		L.Push(errorTable(L, err))
		return 2
	}
	L.Push(lua.LString(out))
	return 1
}

// list([tbl]) marks tbl (or a new table) as a list.
func newList(L *lua.LState) int {
	tbl := L.OptTable(1, L.NewTable())
	L.SetMetatable(tbl, kindMeta(L, "list"))
	L.Push(tbl)
	return 1
}

// dict([tbl]) marks tbl (or a new table) as a dict.
func newDict(L *lua.LState) int {
	tbl := L.OptTable(1, L.NewTable())
	L.SetMetatable(tbl, kindMeta(L, "dict"))
	L.Push(tbl)
	return 1
}

func kindMeta(L *lua.LState, kind string) *lua.LTable {
	mt := L.NewTable()
	mt.RawSetString(kindField, lua.LString(kind))
	return mt
}

func checkStyle(L *lua.LState, n int) (jsef.Style, error) {
	switch lv := L.Get(n).(type) {
	case *lua.LNilType:
		return jsef.Compact, nil
	case lua.LString:
		switch string(lv) {
		case "pretty":
			return jsef.Pretty, nil
		case "compact":
			return jsef.Compact, nil
		case "simple":
			return jsef.Simple, nil
		}
		return jsef.Style{}, fmt.Errorf("unknown style %q", string(lv))
	case *lua.LTable:
		var s jsef.Style
		if indent := lv.RawGetString("indent"); indent != lua.LNil {
			s = s.WithIndent(lua.LVAsString(indent))
		}
		s.ForceQuotes = lua.LVAsBool(lv.RawGetString("force_quotes"))
		s.Dense = lua.LVAsBool(lv.RawGetString("dense"))
		s.FoldDicts = lua.LVAsBool(lv.RawGetString("fold_dicts"))
		s.Prelude = lua.LVAsString(lv.RawGetString("prelude"))
		return s, nil
	}
	return jsef.Style{}, fmt.Errorf("style must be a name or a table")
}

func errorTable(L *lua.LState, err error) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("err", lua.LString(err.Error()))

	var e *jsef.Error
	if errors.As(err, &e) {
		t.RawSetString("kind", lua.LString(kindName(e.Err)))
		t.RawSetString("line", lua.LNumber(e.Pos.Line))
		t.RawSetString("column", lua.LNumber(e.Pos.Column))
	}
	return t
}

func kindName(err error) string {
	switch err {
	case jsef.ErrUnexpected:
		return "unexpected"
	case jsef.ErrMismatch:
		return "mismatch"
	case jsef.ErrTrailingContent:
		return "trailing"
	case jsef.ErrMaxDepth:
		return "depth"
	case jsef.ErrInvalidEncoding:
		return "encoding"
	}
	return "io"
}

// ToLua converts v into Lua values owned by L.
func ToLua(L *lua.LState, v *jsef.Value) lua.LValue {
	switch {
	case v.IsList():
		tbl := L.CreateTable(len(v.List), 0)
		for _, item := range v.List {
			tbl.Append(ToLua(L, item))
		}
		L.SetMetatable(tbl, kindMeta(L, "list"))
		return tbl
	case v.IsDict():
		tbl := L.CreateTable(0, v.Dict.Len())
		order := L.CreateTable(v.Dict.Len(), 0)
		v.Dict.Range(func(key string, item *jsef.Value) bool {
			tbl.RawSetString(key, ToLua(L, item))
			order.Append(lua.LString(key))
			return true
		})
		mt := kindMeta(L, "dict")
		mt.RawSetString(orderField, order)
		L.SetMetatable(tbl, mt)
		return tbl
	case v == nil:
		return lua.LNil
	}
	return lua.LString(v.Str)
}

// FromLua converts a Lua value into a value tree. Functions, userdata and
// other non-data values are rejected, as are tables nested deeper than
// jsef.DepthLimit.
func FromLua(lv lua.LValue) (*jsef.Value, error) {
	return fromLua(lv, 0)
}

func fromLua(lv lua.LValue, depth int) (*jsef.Value, error) {
	switch v := lv.(type) {
	case lua.LString:
		return jsef.Str(string(v)), nil
	case lua.LNumber, lua.LBool:
		return jsef.Str(v.String()), nil
	case *lua.LNilType:
		return jsef.Str(""), nil
	case *lua.LTable:
		if depth+1 >= jsef.DepthLimit {
			return nil, jsef.ErrMaxDepth
		}
		if isList(v) {
			return listFromLua(v, depth+1)
		}
		return dictFromLua(v, depth+1)
	}
	return nil, fmt.Errorf("cannot convert %s to a jsef value", lv.Type())
}

func metaField(tbl *lua.LTable, name string) lua.LValue {
	mt, ok := tbl.Metatable.(*lua.LTable)
	if !ok {
		return lua.LNil
	}
	return mt.RawGetString(name)
}

func isList(tbl *lua.LTable) bool {
	switch lua.LVAsString(metaField(tbl, kindField)) {
	case "list":
		return true
	case "dict":
		return false
	}

	n := tbl.Len()
	if n == 0 {
		return false
	}
	count := 0
	tbl.ForEach(func(lua.LValue, lua.LValue) { count++ })
	return count == n
}

func listFromLua(tbl *lua.LTable, depth int) (*jsef.Value, error) {
	n := tbl.Len()
	l := make(jsef.List, 0, n)
	for i := 1; i <= n; i++ {
		item, err := fromLua(tbl.RawGetInt(i), depth)
		if err != nil {
			return nil, err
		}
		l = append(l, item)
	}
	return jsef.ListOf(l...), nil
}

// dictFromLua keeps the recorded key order for keys that are still present
// and appends any others in sorted order.
func dictFromLua(tbl *lua.LTable, depth int) (*jsef.Value, error) {
	var keys []string
	seen := map[string]bool{}
	if order, ok := metaField(tbl, orderField).(*lua.LTable); ok {
		for i := 1; i <= order.Len(); i++ {
			key := lua.LVAsString(order.RawGetInt(i))
			if tbl.RawGetString(key) != lua.LNil && !seen[key] {
				keys = append(keys, key)
				seen[key] = true
			}
		}
	}

	var rest []string
	values := map[string]lua.LValue{}
	tbl.ForEach(func(k, v lua.LValue) {
		key := k.String()
		values[key] = v
		if !seen[key] {
			rest = append(rest, key)
		}
	})
	sort.Strings(rest)
	keys = append(keys, rest...)

	d := jsef.NewDict()
	for _, key := range keys {
		item, err := fromLua(values[key], depth)
		if err != nil {
			return nil, err
		}
		d.Set(key, item)
	}
	return jsef.DictOf(d), nil
}
