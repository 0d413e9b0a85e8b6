package check

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/lolmark/pkg/compiler"
	"github.com/walteh/lolmark/pkg/diagnostic"
	"gitlab.com/tozd/go/errors"
)

type Handler struct {
	input  string
	format string // text, json, vscode

	fs       afero.Fs
	out      io.Writer
	colorize bool
}

func NewCheckCommand() *cobra.Command {
	me := &Handler{
		fs:       afero.NewOsFs(),
		out:      os.Stdout,
		colorize: !color.NoColor,
	}

	cmd := &cobra.Command{
		Use:   "check <file.lol>",
		Short: "run every phase without writing, and print diagnostics",
	}

	cmd.Flags().StringVar(&me.format, "format", "text", "the format of the diagnostics (text, json, vscode)")
	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.input = args[0]
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	formatter, err := diagnostic.NewFormatter(me.format, me.colorize)
	if err != nil {
		return err
	}

	c := compiler.New(me.fs, nil)
	src, err := c.ReadSource(me.input)
	if err != nil {
		return err
	}

	diags := diagnostic.NewDiagnostics(me.input)

	res, err := compiler.Compile(ctx, src)
	if err != nil {
		if _, ok := diagnostic.AsError(err); !ok {
			return err
		}
		diags.AddError(err)
	} else {
		for _, f := range res.Report.Shadowed {
			diags.AddWarning(f.Position, f.Message)
		}
		for _, f := range res.Report.Unused {
			diags.AddHint(f.Position, f.Message)
		}
	}

	formatted, err := formatter.Format(diags)
	if err != nil {
		return errors.Errorf("formatting diagnostics: %w", err)
	}
	if n := len(formatted); n > 0 && formatted[n-1] != '\n' {
		formatted = append(formatted, '\n')
	}
	if _, err := me.out.Write(formatted); err != nil {
		return errors.Errorf("writing diagnostics: %w", err)
	}

	if diags.HasErrors() {
		return errors.Errorf("%s: %d error(s)", me.input, len(diags.Errors))
	}
	return nil
}
