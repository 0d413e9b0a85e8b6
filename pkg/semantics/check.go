package semantics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/lolmark/pkg/ast"
	"github.com/walteh/lolmark/pkg/diagnostic"
	"github.com/walteh/lolmark/pkg/position"
)

// Finding is a non-fatal observation about a program.
type Finding struct {
	Position position.RawPosition
	Message  string
}

// Report holds the lints gathered while checking a program. Lints never
// affect whether the program compiles.
type Report struct {
	// Shadowed lists definitions that hide a binding of an enclosing scope.
	Shadowed []Finding
	// Unused lists definitions no use ever resolved to.
	Unused []Finding
}

// Unresolved builds the semantic error for a use that resolves to nothing
// in s, suggesting the closest visible name.
func Unresolved(s *Scopes, use *ast.VarUse) *diagnostic.Error {
	err := diagnostic.NewSemanticError(use.NamePos, use.Name)
	return err.WithSuggestion(diagnostic.Suggest(use.Name, s.Visible()))
}

type checker struct {
	scopes  *Scopes
	defines []*ast.VarDefine
	used    *position.PositionsSeenMap
	report  *Report
}

// Check walks prog with a fresh scope stack and fails on the first variable
// use that has no binding in any enclosing scope.
func Check(ctx context.Context, prog *ast.Program) (*Report, error) {
	c := &checker{
		scopes: NewScopes(),
		used:   position.NewPositionsSeenMap(),
		report: &Report{},
	}

	if err := c.visit(prog); err != nil {
		return nil, err
	}

	for _, def := range c.defines {
		if !c.used.Has(def.NamePos) {
			c.report.Unused = append(c.report.Unused, Finding{
				Position: def.NamePos,
				Message:  fmt.Sprintf("variable '%s' is defined but never used", def.Name),
			})
		}
	}

	zerolog.Ctx(ctx).Debug().
		Int("defines", len(c.defines)).
		Int("shadowed", len(c.report.Shadowed)).
		Int("unused", len(c.report.Unused)).
		Msg("checked scopes")

	return c.report, nil
}

func (c *checker) visit(n ast.Node) error {
	switch n := n.(type) {
	case *ast.VarDefine:
		c.defines = append(c.defines, n)
		if prev := c.scopes.Define(n); prev != nil {
			c.report.Shadowed = append(c.report.Shadowed, Finding{
				Position: n.NamePos,
				Message:  fmt.Sprintf("variable '%s' shadows the definition at %s", n.Name, prev.Def.NamePos),
			})
		}
		return nil
	case *ast.VarUse:
		b, ok := c.scopes.Resolve(n.Name)
		if !ok {
			return Unresolved(c.scopes, n)
		}
		c.used.Add(b.Def.NamePos)
		return nil
	}

	if ast.OpensScope(n) {
		c.scopes.Push()
		defer c.scopes.Pop()
	}
	for _, child := range ast.Children(n) {
		if err := c.visit(child); err != nil {
			return err
		}
	}
	return nil
}
