// Package rules registers every built-in rule.
//
// Rules live in one package per group:
//
//	html/    HTML structure and attributes
//	erb/     ERB tag syntax
//	source/  raw text checks (whitespace, trailing newline)
//	herb/    hygiene of herb:disable comments
//
// Importing this package does not register anything; call RegisterAll.
package rules

import (
	"github.com/leapstack-labs/herb/pkg/lint"
	"github.com/leapstack-labs/herb/pkg/lint/linter"
	"github.com/leapstack-labs/herb/pkg/lint/rules/erb"
	"github.com/leapstack-labs/herb/pkg/lint/rules/herb"
	"github.com/leapstack-labs/herb/pkg/lint/rules/html"
	"github.com/leapstack-labs/herb/pkg/lint/rules/source"
)

// RegisterAll adds all built-in rules to r.
func RegisterAll(r *lint.Registry) {
	html.Register(r)
	erb.Register(r)
	source.Register(r)
	herb.Register(r)
	r.Register(func() lint.Rule { return linter.NewParserNoErrors() })
}

// NewRegistry returns a registry holding every built-in rule.
func NewRegistry() *lint.Registry {
	r := lint.NewRegistry()
	RegisterAll(r)
	return r
}
