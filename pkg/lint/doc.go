// Package lint is the rule engine of herb.
//
// # Rule models
//
// Every rule implements Rule and one of three execution models:
//
//   - VisitorRule walks the parsed tree. NewVisitor is called once per file
//     and the visitor it returns owns all traversal state for that file.
//   - SourceRule scans the raw source text (trailing whitespace, final newline).
//   - DirectiveRule sees only herb:disable and herb:enable comments and is
//     used by the rules that check the suppression comments themselves.
//
// Rules report through a Pass. An offense may carry an AutofixContext:
// NodeFix points at a tree node, SourceFix at a byte range of the source.
//
// # Registration
//
// Rules are registered explicitly with a Factory:
//
//	reg := lint.NewRegistry()
//	reg.Register(func() lint.Rule { return &ImgRequireAlt{} })
//
// Registering a name twice replaces the earlier rule, which lets custom
// rules override built-ins. Registry.BuildAll turns the registry plus a
// Config into the Instances for a run.
//
// # Subpackages
//
//   - directive: parses inline herb comments and filters offenses
//   - linter: lints one file
//   - autofix: applies fixes until the file is stable
//   - runner: lints many files in parallel
//   - rules: the built-in rules
package lint
