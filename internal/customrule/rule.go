package customrule

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/herb/pkg/lint"
	herbstar "github.com/leapstack-labs/herb/internal/starlark"
)

// Rule is a source rule backed by a Starlark check function. The compiled
// function is frozen after loading and safe to call from many goroutines.
type Rule struct {
	lint.BaseRule
	Path string

	check *starlark.Function
	pool  *herbstar.ThreadPool
}

// CheckSource implements lint.SourceRule. A script error panics and is
// reported by the engine as a rule failure.
func (r *Rule) CheckSource(p *lint.Pass) {
	args := starlark.Tuple{starlark.String(p.Source)}
	if r.check.NumParams() == 2 {
		opts, err := herbstar.FromGo(map[string]any(p.Options))
		if err != nil {
			panic(fmt.Errorf("options: %w", err))
		}
		args = append(args, opts)
	}

	v, err := r.pool.Call(r.Name(), r.check, args)
	if err != nil {
		panic(err)
	}
	results, err := herbstar.ToGo(v)
	if err != nil {
		panic(fmt.Errorf("check result: %w", err))
	}
	if results == nil {
		return
	}
	list, ok := results.([]any)
	if !ok {
		panic(fmt.Errorf("check must return a list, got %s", v.Type()))
	}

	for i, item := range list {
		off, err := decodeOffense(item)
		if err != nil {
			panic(fmt.Errorf("check result %d: %w", i, err))
		}
		start := offsetOf(p.Source, off.line, off.column)
		end := start
		if off.endLine > 0 {
			end = max(start, offsetOf(p.Source, off.endLine, off.endColumn))
		}
		p.AddOffense(off.message, p.Span(start, end))
	}
}

type scriptOffense struct {
	line, column       int
	endLine, endColumn int
	message            string
}

func decodeOffense(item any) (scriptOffense, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return scriptOffense{}, fmt.Errorf("expected dict, got %T", item)
	}
	var off scriptOffense
	msg, ok := m["message"].(string)
	if !ok || msg == "" {
		return off, fmt.Errorf("message must be a non-empty string")
	}
	off.message = msg

	fields := []struct {
		key      string
		dst      *int
		required bool
	}{
		{"line", &off.line, true},
		{"column", &off.column, false},
		{"end_line", &off.endLine, false},
		{"end_column", &off.endColumn, false},
	}
	for _, f := range fields {
		raw, present := m[f.key]
		if !present {
			if f.required {
				return off, fmt.Errorf("missing %s", f.key)
			}
			continue
		}
		n, ok := herbstar.Int(raw)
		if !ok || n < 1 {
			return off, fmt.Errorf("%s must be a positive integer", f.key)
		}
		*f.dst = n
	}
	if off.column == 0 {
		off.column = 1
	}
	if off.endLine > 0 && off.endColumn == 0 {
		off.endColumn = 1
	}
	return off, nil
}

// offsetOf converts a 1-based line and column into a byte offset, clamped
// to the source and to the end of the line.
func offsetOf(source string, line, column int) int {
	offset := 0
	for l := 1; l < line; l++ {
		i := strings.IndexByte(source[offset:], '\n')
		if i < 0 {
			return len(source)
		}
		offset += i + 1
	}
	lineEnd := len(source)
	if i := strings.IndexByte(source[offset:], '\n'); i >= 0 {
		lineEnd = offset + i
	}
	return min(offset+column-1, lineEnd)
}
