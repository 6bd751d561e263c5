// Package source provides lint rules that work on the raw template text
// rather than the tree.
package source

import "github.com/leapstack-labs/herb/pkg/lint"

// Factories lists the rules of this package.
var Factories = []lint.Factory{
	func() lint.Rule { return NewNoTrailingWhitespace() },
	func() lint.Rule { return NewRequireTrailingNewline() },
}

// Register adds the package's rules to r.
func Register(r *lint.Registry) {
	for _, f := range Factories {
		r.Register(f)
	}
}
