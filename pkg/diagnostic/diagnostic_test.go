package diagnostic_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/lolmark/pkg/diagnostic"
	"github.com/walteh/lolmark/pkg/position"
	"gitlab.com/tozd/go/errors"
)

func TestError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *diagnostic.Error
		want string
	}{
		{
			name: "lexical",
			err:  diagnostic.NewLexicalError(position.NewPosition("#", 10, 2, 1), "Expected keyword after '#'"),
			want: "Lexical error at line 2, col 1: Expected keyword after '#'",
		},
		{
			name: "lexical with suggestion",
			err:  diagnostic.NewLexicalError(position.NewPosition("#GIMME", 0, 1, 6), "'%s' is Not a valid token", "#GIMME").WithSuggestion("#GIMMEH"),
			want: "Lexical error at line 1, col 6: '#GIMME' is Not a valid token (did you mean '#GIMMEH'?)",
		},
		{
			name: "syntax",
			err:  diagnostic.NewSyntaxError(3, position.NewPosition("EOF", 20, 1, 20), "#KTHXBYE", "EOF"),
			want: "Syntax error near position 3. Expected #KTHXBYE token but found EOF",
		},
		{
			name: "semantic",
			err:  diagnostic.NewSemanticError(position.NewPosition("name", 5, 1, 5), "name"),
			want: "Static scope error: variable 'name' used before it was defined (or out of scope).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOf_ThroughWrapping(t *testing.T) {
	base := diagnostic.NewSemanticError(position.NewPosition("x", 0, 1, 0), "x")
	wrapped := errors.Errorf("compiling a.lol: %w", base)

	kind, ok := diagnostic.KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, diagnostic.KindSemantic, kind)

	_, ok = diagnostic.KindOf(errors.New("disk on fire"))
	assert.False(t, ok)
}

func TestDiagnostics_AddError(t *testing.T) {
	diags := diagnostic.NewDiagnostics("page.lol")
	diags.AddError(diagnostic.NewSemanticError(position.NewPosition("who", 30, 4, 12), "who"))
	diags.AddError(errors.New("open page.lol: no such file"))

	require.True(t, diags.HasErrors())
	require.Len(t, diags.Errors, 2)

	first := diags.Errors[0]
	assert.Equal(t, diagnostic.KindSemantic, first.Kind)
	assert.Equal(t, 4, first.Line)
	assert.Equal(t, 12, first.Column)
	assert.Equal(t, 4, first.EndLine)
	assert.Equal(t, 15, first.EndCol)

	second := diags.Errors[1]
	assert.Equal(t, 1, second.Line)
	assert.Empty(t, second.Kind)
}

func TestFormatters(t *testing.T) {
	diags := diagnostic.NewDiagnostics("page.lol")
	diags.AddError(diagnostic.NewSyntaxError(1, position.NewPosition("#MKAY", 9, 2, 3), "TEXT", "#MKAY"))
	diags.AddWarning(position.NewPosition("name", 40, 5, 8), "shadowed")
	diags.AddHint(position.NewPosition("name", 50, 6, 0), "unused")

	t.Run("text", func(t *testing.T) {
		f, err := diagnostic.NewFormatter("text", false)
		require.NoError(t, err)
		out, err := f.Format(diags)
		require.NoError(t, err)
		assert.Equal(t,
			"page.lol:2:3: error: Syntax error near position 1. Expected TEXT token but found #MKAY\n"+
				"page.lol:5:8: warning: shadowed\n"+
				"page.lol:6:0: hint: unused\n",
			string(out))
	})

	t.Run("vscode", func(t *testing.T) {
		f, err := diagnostic.NewFormatter("vscode", false)
		require.NoError(t, err)
		out, err := f.Format(diags)
		require.NoError(t, err)

		var got []struct {
			Severity int `json:"severity"`
			Range    struct {
				Start struct {
					Line      int `json:"line"`
					Character int `json:"character"`
				} `json:"start"`
			} `json:"range"`
		}
		require.NoError(t, json.Unmarshal(out, &got))
		require.Len(t, got, 3)
		assert.Equal(t, 1, got[0].Severity)
		assert.Equal(t, 1, got[0].Range.Start.Line)
		assert.Equal(t, 3, got[0].Range.Start.Character)
		assert.Equal(t, 2, got[1].Severity)
		assert.Equal(t, 4, got[2].Severity)
	})

	t.Run("json", func(t *testing.T) {
		f, err := diagnostic.NewFormatter("JSON", false)
		require.NoError(t, err)
		out, err := f.Format(diags)
		require.NoError(t, err)
		assert.Contains(t, string(out), `"file":"page.lol"`)
		assert.Contains(t, string(out), `"kind":"syntax"`)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := diagnostic.NewFormatter("xml", false)
		require.Error(t, err)
	})
}
