package autofix

import (
	"github.com/leapstack-labs/herb/pkg/ast"
	"github.com/leapstack-labs/herb/pkg/lint"
)

// Checked is a freshly parsed and checked source.
type Checked struct {
	Tree     *ast.Tree
	Offenses []lint.Offense // after suppression
}

// CheckFunc parses and checks source. It reports false when source does not parse.
type CheckFunc func(source string) (Checked, bool)

// Outcome is the result of Run.
type Outcome struct {
	Source    string
	Fixed     []lint.Offense
	Open      []lint.Offense
	Passes    int
	Converged bool // the last pass fixed nothing
	Reverted  bool // a pass produced unparsable source and was undone
}

// Changed reports whether the source differs from the input.
func (o Outcome) Changed(original string) bool {
	return o.Source != original
}

// Run checks and fixes source until a pass fixes nothing, the source stops
// changing or MaxPasses is reached. A pass whose output no longer parses is
// discarded.
func (f *Fixer) Run(source string, check CheckFunc) Outcome {
	out := Outcome{Source: source}

	current, ok := check(source)
	if !ok {
		return out
	}

	for out.Passes < MaxPasses {
		out.Passes++
		pass := f.Apply(current.Tree, out.Source, current.Offenses)
		if len(pass.Fixed) == 0 || pass.Source == out.Source {
			out.Converged = len(pass.Fixed) == 0
			break
		}

		next, ok := check(pass.Source)
		if !ok {
			f.logger.Warn("autofix produced unparsable source, reverting pass", "pass", out.Passes)
			out.Reverted = true
			break
		}
		out.Source = pass.Source
		out.Fixed = append(out.Fixed, pass.Fixed...)
		current = next
	}

	// A fresh parse of the final source: node fixes above edited the tree.
	final, ok := check(out.Source)
	if !ok {
		final = current
	}
	out.Open = final.Offenses
	return out
}
