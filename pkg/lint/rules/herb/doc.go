// Package herb provides rules that check herb:disable comments themselves.
//
// All of them except herb-disable-comment-unnecessary are directive rules:
// the engine hands them each parsed disable/enable comment instead of
// walking the tree. herb-disable-comment-unnecessary runs after
// suppression, when it is known which directives suppressed nothing.
package herb

import "github.com/leapstack-labs/herb/pkg/lint"

// Factories lists the rules of this package.
var Factories = []lint.Factory{
	func() lint.Rule { return NewMalformed() },
	func() lint.Rule { return NewMissingRules() },
	func() lint.Rule { return NewNoDuplicateRules() },
	func() lint.Rule { return NewNoRedundantAll() },
	func() lint.Rule { return NewValidRuleName() },
	func() lint.Rule { return NewUnnecessary() },
}

// Register adds the package's rules to r.
func Register(r *lint.Registry) {
	for _, f := range Factories {
		r.Register(f)
	}
}
