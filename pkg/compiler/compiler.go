// Package compiler runs the phases in order and owns the output artifact.
package compiler

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/lolmark/pkg/ast"
	"github.com/walteh/lolmark/pkg/htmlgen"
	"github.com/walteh/lolmark/pkg/parser"
	"github.com/walteh/lolmark/pkg/scanner"
	"github.com/walteh/lolmark/pkg/semantics"
	"github.com/walteh/lolmark/pkg/token"
	"gitlab.com/tozd/go/errors"
)

// Result is everything a successful compilation produced.
type Result struct {
	Tokens  []token.Token
	Program *ast.Program
	HTML    string
	Report  *semantics.Report
}

// Compile translates src to HTML. Each phase runs only when the previous one
// succeeded; the first error is returned unchanged in message and kind.
func Compile(ctx context.Context, src string) (*Result, error) {
	log := zerolog.Ctx(ctx)

	toks, err := scanner.ScanAll(src)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	log.Debug().Int("tokens", len(toks)).Msg("scanned source")

	prog, err := parser.Parse(ctx, toks)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// validation and generation each rebuild their own scopes
	report, err := semantics.Check(ctx, prog)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	html, err := htmlgen.Generate(ctx, prog)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Result{
		Tokens:  toks,
		Program: prog,
		HTML:    html,
		Report:  report,
	}, nil
}
