package tokens

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/lolmark/pkg/compiler"
	"github.com/walteh/lolmark/pkg/scanner"
	"gitlab.com/tozd/go/errors"
)

type Handler struct {
	input string

	fs  afero.Fs
	out io.Writer
}

func NewTokensCommand() *cobra.Command {
	me := &Handler{
		fs:  afero.NewOsFs(),
		out: os.Stdout,
	}

	cmd := &cobra.Command{
		Use:   "tokens <file.lol>",
		Short: "print the token stream, one token per line",
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
	zerolog.Ctx(ctx).Debug().Int("tokens", len(toks)).Msg("scanned source")

	w := bufio.NewWriter(me.out)
	for _, tok := range toks {
		fmt.Fprintf(w, "%d:%d\t%s\n", tok.Position.Line, tok.Position.Column, tok)
	}
	if err := w.Flush(); err != nil {
		return errors.Errorf("writing tokens: %w", err)
	}
	return nil
}
