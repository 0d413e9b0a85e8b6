package print_ast

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/lolmark/pkg/ast"
	"github.com/walteh/lolmark/pkg/compiler"
	"github.com/walteh/lolmark/pkg/parser"
	"github.com/walteh/lolmark/pkg/scanner"
	"gitlab.com/tozd/go/errors"
)

type Handler struct {
	input string

	fs       afero.Fs
	out      io.Writer
	colorize bool
}

func NewPrintASTCommand() *cobra.Command {
	me := &Handler{
		fs:       afero.NewOsFs(),
		out:      os.Stdout,
		colorize: !color.NoColor,
	}

	cmd := &cobra.Command{
		Use:   "ast <file.lol>",
		Short: "pretty-print the syntax tree",
	}

	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.input = args[0]
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	src, err := compiler.New(me.fs, nil).ReadSource(me.input)
	if err != nil {
		return err
	}

	toks, err := scanner.ScanAll(src)
	if err != nil {
		return errors.WithStack(err)
	}

	prog, err := parser.Parse(ctx, toks)
	if err != nil {
		return errors.WithStack(err)
	}

	return ast.Dump(me.out, prog, me.colorize)
}
