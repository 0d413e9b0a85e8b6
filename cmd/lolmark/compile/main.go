package compile

import (
	"context"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/lolmark/pkg/compiler"
	"github.com/walteh/lolmark/pkg/config"
	"gitlab.com/tozd/go/errors"
)

type Handler struct {
	input  string
	outDir string
	open   bool
	stdout bool

	fs     afero.Fs
	opener compiler.Opener
	out    io.Writer
}

func NewCompileCommand() *cobra.Command {
	return newCommand(&Handler{
		fs:     afero.NewOsFs(),
		opener: compiler.BrowserOpener{},
		out:    os.Stdout,
	})
}

func newCommand(me *Handler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <file.lol>",
		Short: "compile a .lol file to .html",
	}

	cmd.Flags().StringVar(&me.outDir, "out-dir", "", "directory to write the artifact to (default: next to the input)")
	cmd.Flags().BoolVar(&me.open, "open", false, "open the artifact in a browser after writing it")
	cmd.Flags().BoolVar(&me.stdout, "stdout", false, "print the html instead of writing a file")

	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.input = args[0]
		cfg := config.FromContext(cmd.Context())
		if !cmd.Flags().Changed("out-dir") {
			me.outDir = cfg.Output.Dir
		}
		if !cmd.Flags().Changed("open") {
			me.open = cfg.Output.Open
		}
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	c := compiler.New(me.fs, me.opener)

	if me.stdout {
		src, err := c.ReadSource(me.input)
		if err != nil {
			return err
		}
		res, err := compiler.Compile(ctx, src)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(me.out, res.HTML); err != nil {
			return errors.Errorf("writing html: %w", err)
		}
		return nil
	}

	_, _, err := c.CompileFile(ctx, me.input, compiler.Options{
		OutDir: me.outDir,
		Open:   me.open,
	})
	return err
}
