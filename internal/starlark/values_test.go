package starlark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func TestFromGo(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantStr string
		wantErr bool
	}{
		{name: "string", input: "hello", wantStr: `"hello"`},
		{name: "int", input: 42, wantStr: "42"},
		{name: "int64", input: int64(123456789), wantStr: "123456789"},
		{name: "float64", input: 3.5, wantStr: "3.5"},
		{name: "bool", input: true, wantStr: "True"},
		{name: "nil", input: nil, wantStr: "None"},
		{name: "string slice", input: []string{"a", "b"}, wantStr: `["a", "b"]`},
		{name: "mixed slice", input: []any{"a", 1, false}, wantStr: `["a", 1, False]`},
		{name: "uint64", input: uint64(7), wantStr: "7"},
		{name: "map keys sorted", input: map[string]any{"b": 2, "a": "x"}, wantStr: `{"a": "x", "b": 2}`},
		{name: "nested map", input: map[string]any{"tags": []any{"p", map[string]any{"n": 1}}}, wantStr: `{"tags": ["p", {"n": 1}]}`},
		{name: "unsupported", input: struct{}{}, wantErr: true},
		{name: "unsupported nested", input: []any{make(chan int)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromGo(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStr, got.String())
		})
	}
}

func TestFromGo_Frozen(t *testing.T) {
	v, err := FromGo(map[string]any{"tags": []any{"p"}})
	require.NoError(t, err)

	dict := v.(*starlark.Dict)
	assert.Error(t, dict.SetKey(starlark.String("x"), starlark.None))

	tags, found, err := dict.Get(starlark.String("tags"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Error(t, tags.(*starlark.List).Append(starlark.None))
}

func TestToGo(t *testing.T) {
	dict := starlark.NewDict(2)
	require.NoError(t, dict.SetKey(starlark.String("line"), starlark.MakeInt(3)))
	require.NoError(t, dict.SetKey(starlark.String("tags"), starlark.Tuple{starlark.String("a")}))

	badKey := starlark.NewDict(1)
	require.NoError(t, badKey.SetKey(starlark.MakeInt(1), starlark.None))

	tests := []struct {
		name    string
		input   starlark.Value
		want    any
		wantErr bool
	}{
		{name: "none", input: starlark.None, want: nil},
		{name: "string", input: starlark.String("x"), want: "x"},
		{name: "int", input: starlark.MakeInt(7), want: int64(7)},
		{name: "float", input: starlark.Float(1.5), want: 1.5},
		{name: "bool", input: starlark.False, want: false},
		{name: "list", input: starlark.NewList([]starlark.Value{starlark.MakeInt(1)}), want: []any{int64(1)}},
		{name: "dict", input: dict, want: map[string]any{"line": int64(3), "tags": []any{"a"}}},
		{name: "non-string key", input: badKey, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToGo(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInt(t *testing.T) {
	n, ok := Int(int64(4))
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	n, ok = Int(2.0)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = Int(2.5)
	assert.False(t, ok)

	_, ok = Int("3")
	assert.False(t, ok)
}
