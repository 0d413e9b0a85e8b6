package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/walteh/lolmark/cmd/lolmark/build"
	"github.com/walteh/lolmark/cmd/lolmark/check"
	"github.com/walteh/lolmark/cmd/lolmark/compile"
	print_ast "github.com/walteh/lolmark/cmd/lolmark/print-ast"
	"github.com/walteh/lolmark/cmd/lolmark/tokens"
	"github.com/walteh/lolmark/cmd/lolmark/watch"
	"github.com/walteh/lolmark/pkg/config"
	lolmarkdebug "github.com/walteh/lolmark/pkg/debug"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := run(); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func run() error {
	flags := &globalFlags{}
	compileCmd := compile.NewCompileCommand()

	rootCmd := &cobra.Command{
		Use:           "lolmark <file.lol>",
		Short:         "compile LOLCODE markup to html",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          compileCmd.RunE,
	}
	rootCmd.Flags().AddFlagSet(compileCmd.Flags())

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a lolmark.hcl or lolmark.yaml file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format (console, json)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		ctx, err := flags.setup(cmd)
		if err != nil {
			return err
		}
		cmd.SetContext(ctx)
		return nil
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)
	rootCmd.AddCommand(compile.NewCompileCommand())
	rootCmd.AddCommand(check.NewCheckCommand())
	rootCmd.AddCommand(tokens.NewTokensCommand())
	rootCmd.AddCommand(print_ast.NewPrintASTCommand())
	rootCmd.AddCommand(build.NewBuildCommand())
	rootCmd.AddCommand(watch.NewWatchCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// setup resolves the config (flag > file > default) and installs the
// logger and config in the command context.
func (me *globalFlags) setup(cmd *cobra.Command) (context.Context, error) {
	fs := afero.NewOsFs()

	var (
		cfg *config.Config
		err error
	)
	if me.configPath != "" {
		cfg, err = config.Load(fs, me.configPath)
	} else {
		cfg, _, err = config.Discover(fs, ".")
	}
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if me.logLevel != "" {
		cfg.Log.Level = me.logLevel
	}
	if me.logFormat != "" {
		cfg.Log.Format = me.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := lolmarkdebug.NewLogger(os.Stderr, lolmarkdebug.Options{
		Level:  cfg.Level(),
		Format: cfg.Log.Format,
		Color:  !color.NoColor,
		Caller: cfg.Level() <= zerolog.DebugLevel,
	})

	ctx := logger.WithContext(cmd.Context())
	ctx = config.WithContext(ctx, cfg)

	logger.Debug().Str("command", cmd.Name()).Str("log_level", cfg.Log.Level).Msg("starting")

	return ctx, nil
}
