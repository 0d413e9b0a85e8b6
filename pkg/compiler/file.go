package compiler

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

const (
	SourceExt = ".lol"
	OutputExt = ".html"
)

var ErrNotSource = errors.New("input file must end in " + SourceExt)

// OutputPath swaps the .lol suffix of input for .html. When outDir is set
// the artifact is placed there under the same base name.
func OutputPath(input, outDir string) (string, error) {
	if !strings.HasSuffix(input, SourceExt) || len(filepath.Base(input)) == len(SourceExt) {
		return "", errors.Errorf("%q: %w", input, ErrNotSource)
	}
	out := strings.TrimSuffix(input, SourceExt) + OutputExt
	if outDir != "" {
		out = filepath.Join(outDir, filepath.Base(out))
	}
	return out, nil
}

// Opener shows a finished artifact to the user.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// BrowserOpener hands the artifact to the platform's default browser.
type BrowserOpener struct{}

func (BrowserOpener) Open(_ context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Errorf("resolving %s: %w", path, err)
	}
	return browser.OpenFile(abs)
}

type Options struct {
	OutDir string
	Open   bool
}

// Compiler compiles files on fs.
type Compiler struct {
	fs     afero.Fs
	opener Opener
}

func New(fs afero.Fs, opener Opener) *Compiler {
	return &Compiler{fs: fs, opener: opener}
}

// ReadSource reads a .lol file without compiling it.
func (c *Compiler) ReadSource(input string) (string, error) {
	if _, err := OutputPath(input, ""); err != nil {
		return "", err
	}
	src, err := afero.ReadFile(c.fs, input)
	if err != nil {
		return "", errors.Errorf("reading source: %w", err)
	}
	return string(src), nil
}

// CompileFile reads input, compiles it and writes the artifact. Nothing is
// written unless every phase succeeds. It returns the artifact path.
func (c *Compiler) CompileFile(ctx context.Context, input string, opts Options) (string, *Result, error) {
	out, err := OutputPath(input, opts.OutDir)
	if err != nil {
		return "", nil, err
	}

	src, err := c.ReadSource(input)
	if err != nil {
		return "", nil, err
	}

	res, err := Compile(ctx, src)
	if err != nil {
		return "", nil, err
	}

	if opts.OutDir != "" {
		if err := c.fs.MkdirAll(opts.OutDir, 0o755); err != nil {
			return "", nil, errors.Errorf("creating output dir: %w", err)
		}
	}

	if err := WriteAtomic(c.fs, out, []byte(res.HTML)); err != nil {
		return "", nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("input", input).Str("artifact", out).Msg("wrote artifact")

	if opts.Open && c.opener != nil {
		if err := c.opener.Open(ctx, out); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("artifact", out).Msg("could not open artifact")
		}
	}

	return out, res, nil
}

// WriteAtomic writes data next to path and renames it into place, so path
// either keeps its old contents or holds all of data.
func WriteAtomic(fs afero.Fs, path string, data []byte) error {
	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(name)
		return errors.Errorf("writing artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(name)
		return errors.Errorf("closing artifact: %w", err)
	}
	if err := fs.Chmod(name, 0o644); err != nil {
		fs.Remove(name)
		return errors.Errorf("setting artifact mode: %w", err)
	}
	if err := fs.Rename(name, path); err != nil {
		fs.Remove(name)
		return errors.Errorf("renaming artifact: %w", err)
	}
	return nil
}
