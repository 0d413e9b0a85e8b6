package build

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/site/a.lol", []byte("#HAI #KTHXBYE"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/site/b.lol", []byte("#HAI"), 0o644))

	var out bytes.Buffer
	me := &Handler{
		patterns:  []string{"*.lol"},
		root:      "/site",
		jobs:      2,
		keepGoing: true,
		fs:        fs,
		out:       &out,
	}

	err := me.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/site/b.lol: Syntax error")
	assert.Equal(t, "/site/a.html\n", out.String())
}
