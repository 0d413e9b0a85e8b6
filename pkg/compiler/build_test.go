package compiler_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/lolmark/pkg/compiler"
	"go.uber.org/multierr"
)

func siteFs(t *testing.T) afero.Fs {
	return newFs(t, map[string]string{
		"/site/a.lol":       "#HAI a #KTHXBYE",
		"/site/bad.lol":     "#HAI #LEMME SEE nope #MKAY #KTHXBYE",
		"/site/sub/b.lol":   "#HAI b #KTHXBYE",
		"/site/notes.txt":   "not markup",
		"/site/sub/c.lolol": "#HAI #KTHXBYE",
	})
}

func TestExpand(t *testing.T) {
	c := compiler.New(siteFs(t), nil)

	files, err := c.Expand([]string{"**/*.lol", "sub/*.lol"}, "/site")
	require.NoError(t, err)
	assert.Equal(t, []string{"/site/a.lol", "/site/bad.lol", "/site/sub/b.lol"}, files)

	_, err = c.Expand([]string{"*.md"}, "/site")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")

	_, err = c.Expand([]string{"[a"}, "/site")
	require.Error(t, err)
}

func TestBuild_KeepGoing(t *testing.T) {
	fs := siteFs(t)
	c := compiler.New(fs, nil)

	outs, err := c.Build(context.Background(), []string{"**/*.lol"}, compiler.BuildOptions{
		Root:      "/site",
		Jobs:      4,
		KeepGoing: true,
	})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)
	assert.Contains(t, err.Error(), "/site/bad.lol: Static scope error: variable 'nope'")

	assert.Equal(t, []string{"/site/a.html", "", "/site/sub/b.html"}, outs)

	for _, path := range []string{"/site/a.html", "/site/sub/b.html"} {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.True(t, exists, path)
	}
	exists, err := afero.Exists(fs, "/site/bad.html")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBuild_StopsAtFirstFailure(t *testing.T) {
	fs := siteFs(t)
	c := compiler.New(fs, nil)

	_, err := c.Build(context.Background(), []string{"**/*.lol"}, compiler.BuildOptions{
		Root: "/site",
		Jobs: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/site/bad.lol")

	exists, err := afero.Exists(fs, "/site/sub/b.html")
	require.NoError(t, err)
	assert.False(t, exists, "files after the failure should not be compiled")
}

func TestBuild_OutDir(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/site/a.lol": "#HAI #KTHXBYE",
		"/site/b.lol": "#HAI #KTHXBYE",
	})
	c := compiler.New(fs, nil)

	outs, err := c.Build(context.Background(), []string{"*.lol"}, compiler.BuildOptions{
		Options: compiler.Options{OutDir: "/public"},
		Root:    "/site",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/public/a.html", "/public/b.html"}, outs)
}
