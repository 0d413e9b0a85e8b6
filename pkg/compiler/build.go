package compiler

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

type BuildOptions struct {
	Options
	// Root is the directory patterns are matched against.
	Root string
	// Jobs bounds how many files compile at once. Values below 1 mean 1.
	Jobs int
	// KeepGoing compiles every file and reports all failures together
	// instead of stopping at the first.
	KeepGoing bool
}

// Expand matches each doublestar pattern under root and returns the sorted,
// de-duplicated paths, joined back onto root. A pattern that matches
// nothing is an error.
func (c *Compiler) Expand(patterns []string, root string) ([]string, error) {
	if root == "" {
		root = "."
	}
	base := c.fs
	if root != "." {
		base = afero.NewBasePathFs(c.fs, root)
	}
	fsys := afero.NewIOFS(base)

	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(filepath.Clean(pattern))
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("matching %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("no files match %q", pattern)
		}
		for _, m := range matches {
			seen[filepath.Join(root, filepath.FromSlash(m))] = struct{}{}
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

// Build compiles every file matching patterns. Each file is an independent
// compilation; only the files run concurrently. Artifacts are returned in
// the order of the sorted inputs, with "" for files that failed.
func (c *Compiler) Build(ctx context.Context, patterns []string, opts BuildOptions) ([]string, error) {
	files, err := c.Expand(patterns, opts.Root)
	if err != nil {
		return nil, err
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	single := opts.Options
	single.Open = false

	outputs := make([]string, len(files))
	failures := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, _, err := c.CompileFile(gctx, file, single)
			if err != nil {
				err = errors.Errorf("%s: %w", file, err)
				if !opts.KeepGoing {
					return err
				}
				failures[i] = err
				return nil
			}
			outputs[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outputs, err
	}

	zerolog.Ctx(ctx).Debug().Int("files", len(files)).Int("jobs", jobs).Msg("build finished")

	return outputs, multierr.Combine(failures...)
}
