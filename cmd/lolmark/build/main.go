package build

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/lolmark/pkg/compiler"
	"github.com/walteh/lolmark/pkg/config"
)

type Handler struct {
	patterns  []string
	root      string
	outDir    string
	jobs      int
	keepGoing bool

	fs  afero.Fs
	out io.Writer
}

func NewBuildCommand() *cobra.Command {
	me := &Handler{
		fs:  afero.NewOsFs(),
		out: os.Stdout,
	}

	cmd := &cobra.Command{
		Use:   "build <glob>...",
		Short: "compile every .lol file matching the globs",
	}

	cmd.Flags().StringVar(&me.root, "root", ".", "directory the globs are matched against")
	cmd.Flags().StringVar(&me.outDir, "out-dir", "", "directory to write artifacts to (default: next to each input)")
	cmd.Flags().IntVar(&me.jobs, "jobs", 1, "how many files to compile at once")
	cmd.Flags().BoolVar(&me.keepGoing, "keep-going", false, "compile every file and report all failures")

	cmd.Args = cobra.MinimumNArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.patterns = args
		cfg := config.FromContext(cmd.Context())
		if !cmd.Flags().Changed("out-dir") {
			me.outDir = cfg.Output.Dir
		}
		if !cmd.Flags().Changed("jobs") {
			me.jobs = cfg.Build.Jobs
		}
		if !cmd.Flags().Changed("keep-going") {
			me.keepGoing = cfg.Build.KeepGoing
		}
		return me.Run(cmd.Context())
	}

	return cmd
}

// Run prints each artifact written, one per line, even when some files
// failed.
func (me *Handler) Run(ctx context.Context) error {
	outs, err := compiler.New(me.fs, nil).Build(ctx, me.patterns, compiler.BuildOptions{
		Options:   compiler.Options{OutDir: me.outDir},
		Root:      me.root,
		Jobs:      me.jobs,
		KeepGoing: me.keepGoing,
	})
	for _, out := range outs {
		if out != "" {
			fmt.Fprintln(me.out, out)
		}
	}
	return err
}
