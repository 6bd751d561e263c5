// Package starlark hosts the Starlark runtime used by custom lint rules:
// value conversion, the predeclared builtins rule scripts can call and a
// pool of threads for parallel checks.
package starlark

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
)

// FromGo converts decoded configuration (the shapes koanf and yaml.v3
// produce) into a frozen Starlark value. Maps become dicts with sorted keys.
func FromGo(v any) (starlark.Value, error) {
	sv, err := fromGo(v)
	if err != nil {
		return nil, err
	}
	sv.Freeze()
	return sv, nil
}

func fromGo(v any) (starlark.Value, error) {
	switch val := v.(type) {
	case nil:
		return starlark.None, nil
	case string:
		return starlark.String(val), nil
	case bool:
		return starlark.Bool(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case int64:
		return starlark.MakeInt64(val), nil
	case uint64:
		return starlark.MakeUint64(val), nil
	case float64:
		return starlark.Float(val), nil
	case []string:
		elems := make([]any, len(val))
		for i, s := range val {
			elems[i] = s
		}
		return listFromGo(elems)
	case []any:
		return listFromGo(val)
	case map[string]any:
		return dictFromGo(val)
	}
	return nil, fmt.Errorf("cannot convert %T to a starlark value", v)
}

func listFromGo(elems []any) (*starlark.List, error) {
	out := make([]starlark.Value, 0, len(elems))
	for i, e := range elems {
		sv, err := fromGo(e)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, sv)
	}
	return starlark.NewList(out), nil
}

func dictFromGo(m map[string]any) (*starlark.Dict, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dict := starlark.NewDict(len(m))
	for _, k := range keys {
		sv, err := fromGo(m[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		if err := dict.SetKey(starlark.String(k), sv); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

// ToGo converts a value returned by a rule script. Lists and tuples become
// []any, dicts with string keys become map[string]any and integers that fit
// become int64. Any other value is rendered with its String method.
func ToGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.String:
		return val.GoString(), nil
	case starlark.Bool:
		return bool(val), nil
	case starlark.Float:
		return float64(val), nil
	case starlark.Int:
		if n, ok := val.Int64(); ok {
			return n, nil
		}
		return val.String(), nil
	case *starlark.Dict:
		return dictToGo(val)
	case starlark.Indexable:
		out := make([]any, val.Len())
		for i := range out {
			gv, err := ToGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = gv
		}
		return out, nil
	}
	return v.String(), nil
}

func dictToGo(d *starlark.Dict) (map[string]any, error) {
	out := make(map[string]any, d.Len())
	for _, kv := range d.Items() {
		key, ok := starlark.AsString(kv[0])
		if !ok {
			return nil, fmt.Errorf("dict key must be a string, got %s", kv[0].Type())
		}
		gv, err := ToGo(kv[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = gv
	}
	return out, nil
}

// Int narrows a converted number to an int. Floats qualify only when they
// have no fractional part.
func Int(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case float64:
		if i := int(n); float64(i) == n {
			return i, true
		}
	}
	return 0, false
}
