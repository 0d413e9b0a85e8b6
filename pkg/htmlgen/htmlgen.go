// Package htmlgen renders a program as HTML. Variables are resolved during
// the same walk that emits the markup.
package htmlgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/lolmark/pkg/ast"
	"github.com/walteh/lolmark/pkg/semantics"
)

type generator struct {
	out    strings.Builder
	scopes *semantics.Scopes
}

// Generate walks prog depth-first with its own scope stack and returns the
// document. Substituted values are written verbatim. Nothing is returned
// when a variable fails to resolve.
func Generate(ctx context.Context, prog *ast.Program) (string, error) {
	g := &generator{scopes: semantics.NewScopes()}

	if err := g.emit(prog); err != nil {
		return "", err
	}

	if g.scopes.Depth() != 0 {
		panic(fmt.Sprintf("htmlgen: %d scopes left open", g.scopes.Depth()))
	}

	zerolog.Ctx(ctx).Debug().Int("bytes", g.out.Len()).Msg("generated html")

	return g.out.String(), nil
}

func (g *generator) emit(n ast.Node) error {
	if ast.OpensScope(n) {
		g.scopes.Push()
		defer g.scopes.Pop()
	}

	switch n := n.(type) {
	case *ast.Program:
		g.out.WriteString("<html>\n")
		if err := g.emitAll(n.Children); err != nil {
			return err
		}
		g.out.WriteString("</html>\n")
	case *ast.Comment:
		g.out.WriteString("<!-- " + n.Text + " -->\n")
	case *ast.Head:
		g.out.WriteString("<head>\n<title>")
		g.word(n.Title)
		g.out.WriteString("</title>\n</head>\n")
	case *ast.Paragraph:
		g.out.WriteString("<p>")
		if err := g.emitAll(n.Children); err != nil {
			return err
		}
		g.out.WriteString("</p>\n")
	case *ast.Bold:
		g.out.WriteString("<b>" + n.Text + "</b>")
	case *ast.Italics:
		g.out.WriteString("<i>" + n.Text + "</i>")
	case *ast.List:
		g.out.WriteString("<ul>\n")
		for _, item := range n.Items {
			if err := g.emit(item); err != nil {
				return err
			}
		}
		g.out.WriteString("</ul>\n")
	case *ast.ListItem:
		g.out.WriteString("<li>")
		if err := g.emitAll(n.Children); err != nil {
			return err
		}
		g.out.WriteString("</li>\n")
	case *ast.Audio:
		g.out.WriteString("<audio controls>\n<source src=\"" + n.URL + "\">\n</audio>")
	case *ast.Video:
		g.out.WriteString("<iframe src=\"" + n.URL + "\"></iframe>\n")
	case *ast.Newline:
		g.out.WriteString("<br>\n")
	case *ast.Text:
		g.word(n.Word)
	case *ast.VarDefine:
		g.scopes.Define(n)
	case *ast.VarUse:
		b, ok := g.scopes.Resolve(n.Name)
		if !ok {
			return semantics.Unresolved(g.scopes, n)
		}
		g.out.WriteString(b.Value)
	default:
		panic(fmt.Sprintf("htmlgen: unhandled node %T", n))
	}
	return nil
}

func (g *generator) emitAll(nodes []ast.Node) error {
	for _, n := range nodes {
		if err := g.emit(n); err != nil {
			return err
		}
	}
	return nil
}

// word writes s followed by a single space, or nothing when s is empty.
func (g *generator) word(s string) {
	if s == "" {
		return
	}
	g.out.WriteString(s)
	g.out.WriteByte(' ')
}
