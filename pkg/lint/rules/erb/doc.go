// Package erb provides lint rules for embedded Ruby tags.
package erb

import "github.com/leapstack-labs/herb/pkg/lint"

// Factories lists the rules of this package.
var Factories = []lint.Factory{
	func() lint.Rule { return NewNoEmptyTags() },
	func() lint.Rule { return NewPreferImageTagHelper() },
	func() lint.Rule { return NewRightTrim() },
	func() lint.Rule { return NewRequireWhitespaceInsideTags() },
	func() lint.Rule { return NewCommentSyntax() },
}

// Register adds the package's rules to r.
func Register(r *lint.Registry) {
	for _, f := range Factories {
		r.Register(f)
	}
}
