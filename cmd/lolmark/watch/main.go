package watch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/lolmark/pkg/compiler"
	"github.com/walteh/lolmark/pkg/config"
	filewatch "github.com/walteh/lolmark/pkg/watch"
)

type Handler struct {
	input  string
	outDir string
	open   bool

	fs     afero.Fs
	opener compiler.Opener
	errOut io.Writer
}

func NewWatchCommand() *cobra.Command {
	me := &Handler{
		fs:     afero.NewOsFs(),
		opener: compiler.BrowserOpener{},
		errOut: os.Stderr,
	}

	cmd := &cobra.Command{
		Use:   "watch <file.lol>",
		Short: "recompile a .lol file every time it changes",
	}

	cmd.Flags().StringVar(&me.outDir, "out-dir", "", "directory to write the artifact to (default: next to the input)")
	cmd.Flags().BoolVar(&me.open, "open", false, "open the artifact after the first successful build")

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
	if _, err := compiler.OutputPath(me.input, me.outDir); err != nil {
		return err
	}

	c := compiler.New(me.fs, me.opener)
	debounce := config.FromContext(ctx).Debounce()
	open := me.open

	return filewatch.File(ctx, me.input, debounce, func(ctx context.Context) error {
		out, _, err := c.CompileFile(ctx, me.input, compiler.Options{OutDir: me.outDir, Open: open})
		if err != nil {
			fmt.Fprintln(me.errOut, err.Error())
			return err
		}
		open = false
		zerolog.Ctx(ctx).Info().Str("artifact", out).Msg("rebuilt")
		return nil
	})
}
