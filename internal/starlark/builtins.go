package starlark

import (
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// Severities exposed to rule scripts as the severity namespace, so a rule
// can write severity = severity.warning.
var Severities = []string{"error", "warning", "info", "hint"}

// Predeclared returns the globals visible to rule scripts:
//
//	severity    struct of severity names
//	lines(s)    s split on "\n", without line terminators
//	position(s, offset)
//	            (line, column) of a byte offset, both 1-based
func Predeclared() starlark.StringDict {
	sev := make(starlark.StringDict, len(Severities))
	for _, s := range Severities {
		sev[s] = starlark.String(s)
	}
	return starlark.StringDict{
		"severity": starlarkstruct.FromStringDict(starlark.String("severity"), sev),
		"lines":    starlark.NewBuiltin("lines", lines),
		"position": starlark.NewBuiltin("position", position),
	}
}

func lines(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var source string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &source); err != nil {
		return nil, err
	}
	parts := strings.Split(source, "\n")
	out := make([]starlark.Value, len(parts))
	for i, line := range parts {
		out[i] = starlark.String(strings.TrimSuffix(line, "\r"))
	}
	return starlark.NewList(out), nil
}

func position(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var source string
	var offset int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &source, &offset); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	before := source[:offset]
	line := strings.Count(before, "\n") + 1
	column := offset - strings.LastIndexByte(before, '\n')
	return starlark.Tuple{starlark.MakeInt(line), starlark.MakeInt(column)}, nil
}
