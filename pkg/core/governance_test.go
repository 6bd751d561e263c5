//go:build governance

package core_test

import (
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/leapstack-labs/herb"

// =============================================================================
// LAYERING TEST - Public packages never reach into internal/
// =============================================================================

// TestGovernance_PkgDoesNotImportInternal verifies that the embeddable engine
// under pkg/ stays free of CLI, config loading and Starlark plumbing.
func TestGovernance_PkgDoesNotImportInternal(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	for _, p := range pkgs {
		for path := range p.Imports {
			if strings.HasPrefix(path, modulePath+"/internal/") {
				t.Errorf("LAYERING VIOLATION: '%s' imports '%s'.\n"+
					"   Fix: pass the dependency in through an interface defined under pkg/.",
					strings.TrimPrefix(p.PkgPath, modulePath+"/"), strings.TrimPrefix(path, modulePath+"/"))
			}
		}
	}
}

// =============================================================================
// RULE CONTRACT TEST - Built-in rules implement exactly one execution model
// =============================================================================

// TestGovernance_RulesImplementOneModel loads every rule package and checks
// that each exported rule type satisfies lint.Rule plus exactly one of
// VisitorRule, SourceRule or DirectiveRule.
func TestGovernance_RulesImplementOneModel(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedImports | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/lint", modulePath+"/pkg/lint/rules/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	var lintPkg *types.Package
	for _, p := range pkgs {
		if p.PkgPath == modulePath+"/pkg/lint" {
			lintPkg = p.Types
		}
	}
	if lintPkg == nil {
		t.Fatal("Could not find pkg/lint")
	}

	iface := func(name string) *types.Interface {
		return lintPkg.Scope().Lookup(name).Type().Underlying().(*types.Interface)
	}
	rule := iface("Rule")
	models := map[string]*types.Interface{
		"VisitorRule":   iface("VisitorRule"),
		"SourceRule":    iface("SourceRule"),
		"DirectiveRule": iface("DirectiveRule"),
	}

	for _, p := range pkgs {
		if !strings.HasPrefix(p.PkgPath, modulePath+"/pkg/lint/rules/") {
			continue
		}
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !obj.Exported() {
				continue
			}
			if _, isStruct := obj.Type().Underlying().(*types.Struct); !isStruct {
				continue
			}
			ptr := types.NewPointer(obj.Type())
			if !types.Implements(ptr, rule) {
				continue
			}

			var matched []string
			for model, mi := range models {
				if types.Implements(ptr, mi) {
					matched = append(matched, model)
				}
			}
			if len(matched) != 1 {
				t.Errorf("CONTRACT VIOLATION: %s.%s implements %d execution models %v, want exactly one",
					p.Name, name, len(matched), matched)
			}
		}
	}
}
