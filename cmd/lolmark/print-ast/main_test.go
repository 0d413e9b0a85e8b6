package print_ast

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
	require.NoError(t, afero.WriteFile(fs, "/proj/page.lol", []byte("#HAI #MAEK PARAGRAF #LEMME SEE who #MKAY #OIC #KTHXBYE"), 0o644))

	var out bytes.Buffer
	me := &Handler{input: "/proj/page.lol", fs: fs, out: &out}
	require.NoError(t, me.Run(context.Background()))

	assert.Contains(t, out.String(), "ast.Paragraph")
	assert.Contains(t, out.String(), `"who"`)
}

func TestHandler_SyntaxError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/page.lol", []byte("#HAI #OIC #KTHXBYE"), 0o644))

	me := &Handler{input: "/proj/page.lol", fs: fs, out: &bytes.Buffer{}}
	err := me.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Syntax error near position 1. Expected #KTHXBYE token but found #OIC", err.Error())
}
