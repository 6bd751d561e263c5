// Package autofix applies rule fixes to a file until it stops changing.
//
// One pass applies node-anchored fixes to the tree first and re-prints it,
// then applies source-anchored fixes in descending offset order so earlier
// edits never shift the ranges of later ones. Overlapping source ranges are
// left for the next pass, which re-parses and re-checks the new source.
package autofix

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/printer"
	"github.com/leapstack-labs/herb/pkg/token"
)

// MaxPasses bounds the fix loop so rules that undo each other cannot cycle forever.
const MaxPasses = 10

// Fixer applies fixes at one safety tier.
type Fixer struct {
	unsafe bool
	logger *slog.Logger
}

// Option configures a Fixer.
type Option func(*Fixer)

// WithUnsafe allows fixes of rules that are only unsafe-autofixable.
func WithUnsafe(unsafe bool) Option {
	return func(f *Fixer) { f.unsafe = unsafe }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fixer) { f.logger = logger }
}

// New creates a Fixer. Unsafe fixes are off unless WithUnsafe(true) is given.
func New(opts ...Option) *Fixer {
	f := &Fixer{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// PassResult is the outcome of one fix pass.
type PassResult struct {
	Source string
	Fixed  []lint.Offense
	Open   []lint.Offense
}

// Apply runs one pass over offenses found in tree/source. The tree is
// edited in place by node fixes.
func (f *Fixer) Apply(tree *ast.Tree, source string, offenses []lint.Offense) PassResult {
	var (
		res         = PassResult{Source: source}
		nodeFixes   []lint.Offense
		sourceFixes []lint.Offense
	)

	for _, o := range offenses {
		if !o.Autofixable(f.unsafe) {
			res.Open = append(res.Open, o)
			continue
		}
		switch o.Autofix.(type) {
		case lint.NodeFix:
			nodeFixes = append(nodeFixes, o)
		case lint.SourceFix:
			sourceFixes = append(sourceFixes, o)
		default:
			res.Open = append(res.Open, o)
		}
	}

	treeChanged := false
	for _, o := range nodeFixes {
		if f.applyNodeFix(tree, o) {
			res.Fixed = append(res.Fixed, o)
			treeChanged = true
		} else {
			res.Open = append(res.Open, o)
		}
	}
	if treeChanged {
		res.Source = printer.Print(tree)
	}

	// Source ranges were computed against the original text.
	if res.Source != source {
		res.Open = append(res.Open, sourceFixes...)
		return res
	}

	sort.SliceStable(sourceFixes, func(i, j int) bool {
		a, b := sourceFixes[i].Autofix.(lint.SourceFix), sourceFixes[j].Autofix.(lint.SourceFix)
		if a.Start != b.Start {
			return a.Start > b.Start
		}
		return a.End > b.End
	})

	var lowest token.Span // lowest range applied so far
	applied := false
	for _, o := range sourceFixes {
		fix := o.Autofix.(lint.SourceFix)
		if applied && conflicts(fix.Range(), lowest) {
			res.Open = append(res.Open, o)
			continue
		}
		updated, ok := f.applySourceFix(res.Source, o, fix)
		if !ok {
			res.Open = append(res.Open, o)
			continue
		}
		res.Source = updated
		res.Fixed = append(res.Fixed, o)
		lowest, applied = fix.Range(), true
	}
	return res
}

// conflicts reports whether r cannot be applied after prev in the same pass.
// Two edits anchored at the same offset conflict even when one is an insertion.
func conflicts(r, prev token.Span) bool {
	return r.Start.Offset == prev.Start.Offset || r.Overlaps(prev)
}

func (f *Fixer) applyNodeFix(tree *ast.Tree, o lint.Offense) (ok bool) {
	fix := o.Autofix.(lint.NodeFix)
	fixer, isFixer := fix.Rule.(lint.NodeAutofixer)
	if !isFixer || !tree.Attached(fix.Node) {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			f.logger.Warn("autofix panicked", "rule", o.Rule, "error", fmt.Sprint(r))
			ok = false
		}
	}()
	return fixer.Autofix(tree, fix.Node)
}

// applySourceFix runs the rule's fix and rejects results that touch text
// outside the offense's range.
func (f *Fixer) applySourceFix(source string, o lint.Offense, fix lint.SourceFix) (updated string, ok bool) {
	fixer, isFixer := fix.Rule.(lint.SourceAutofixer)
	if !isFixer || fix.Start < 0 || fix.End < fix.Start || fix.End > len(source) {
		return "", false
	}
	defer func() {
		if r := recover(); r != nil {
			f.logger.Warn("autofix panicked", "rule", o.Rule, "error", fmt.Sprint(r))
			updated, ok = "", false
		}
	}()

	updated, ok = fixer.AutofixSource(o, source)
	if !ok {
		return "", false
	}
	prefix, suffix := source[:fix.Start], source[fix.End:]
	if len(updated) < len(prefix)+len(suffix) ||
		!strings.HasPrefix(updated, prefix) || !strings.HasSuffix(updated, suffix) {
		f.logger.Warn("autofix edited outside its range", "rule", o.Rule)
		return "", false
	}
	return updated, true
}
