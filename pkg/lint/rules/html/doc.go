// Package html provides lint rules for the HTML structure of templates.
//
// Register adds every rule of the package to a registry:
//
//	html.Register(lint.NewRegistry())
package html

import "github.com/leapstack-labs/herb/pkg/lint"

// Factories lists the rules of this package.
var Factories = []lint.Factory{
	func() lint.Rule { return NewImgRequireAlt() },
	func() lint.Rule { return NewAttributeValuesRequireQuotes() },
	func() lint.Rule { return NewAttributeDoubleQuotes() },
	func() lint.Rule { return NewTagNameLowercase() },
	func() lint.Rule { return NewNoDuplicateAttributes() },
	func() lint.Rule { return NewBooleanAttributesNoValue() },
	func() lint.Rule { return NewAnchorRequireHref() },
	func() lint.Rule { return NewNoSelfClosing() },
	func() lint.Rule { return NewNoUnknownTags() },
}

// Register adds the package's rules to r.
func Register(r *lint.Registry) {
	for _, f := range Factories {
		r.Register(f)
	}
}
