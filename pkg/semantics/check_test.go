package semantics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/lolmark/pkg/ast"
	"github.com/walteh/lolmark/pkg/diagnostic"
	"github.com/walteh/lolmark/pkg/parser"
	"github.com/walteh/lolmark/pkg/scanner"
	"github.com/walteh/lolmark/pkg/semantics"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := scanner.ScanAll(src)
	require.NoError(t, err)
	prog, err := parser.Parse(context.Background(), toks)
	require.NoError(t, err)
	return prog
}

func messages(findings []semantics.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Message)
	}
	return out
}

func TestCheck_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "undefined variable",
			src:     "#HAI #LEMME SEE nobody #MKAY #KTHXBYE",
			wantMsg: "Static scope error: variable 'nobody' used before it was defined (or out of scope).",
		},
		{
			name: "sibling paragraphs do not share scope",
			src: `#HAI
#MAEK PARAGRAF #I HAZ x #IT IZ 1 #MKAY #OIC
#MAEK PARAGRAF #LEMME SEE x #MKAY #OIC
#KTHXBYE`,
			wantMsg: "Static scope error: variable 'x' used before it was defined (or out of scope).",
		},
		{
			name:    "use before define",
			src:     "#HAI #LEMME SEE x #MKAY #I HAZ x #IT IZ 1 #MKAY #KTHXBYE",
			wantMsg: "Static scope error: variable 'x' used before it was defined (or out of scope).",
		},
		{
			name:    "close name is suggested",
			src:     "#HAI #I HAZ color #IT IZ red #MKAY #LEMME SEE colour #MKAY #KTHXBYE",
			wantMsg: "Static scope error: variable 'colour' used before it was defined (or out of scope). (did you mean 'color'?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := semantics.Check(context.Background(), mustParse(t, tt.src))
			require.Error(t, err)
			assert.Nil(t, report)
			assert.Equal(t, tt.wantMsg, err.Error())

			kind, ok := diagnostic.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, diagnostic.KindSemantic, kind)
		})
	}
}

func TestCheck_ErrorPointsAtName(t *testing.T) {
	_, err := semantics.Check(context.Background(), mustParse(t, "#HAI\n  #LEMME SEE ghost #MKAY\n#KTHXBYE"))
	de, ok := diagnostic.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "2:13", de.Position.String())
}

func TestCheck_Lints(t *testing.T) {
	src := `#HAI
#I HAZ x #IT IZ outer #MKAY
#I HAZ spare #IT IZ 0 #MKAY
#MAEK PARAGRAF
  #I HAZ x #IT IZ inner #MKAY
  #LEMME SEE x #MKAY
#OIC
#LEMME SEE x #MKAY
#KTHXBYE`

	report, err := semantics.Check(context.Background(), mustParse(t, src))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"variable 'x' shadows the definition at 2:7",
	}, messages(report.Shadowed))
	assert.Equal(t, []string{
		"variable 'spare' is defined but never used",
	}, messages(report.Unused))
}

func TestCheck_ListScopes(t *testing.T) {
	src := `#HAI
#I HAZ x #IT IZ top #MKAY
#MAEK LIST
  #GIMMEH ITEM #LEMME SEE x #MKAY #MKAY
#OIC
#KTHXBYE`

	report, err := semantics.Check(context.Background(), mustParse(t, src))
	require.NoError(t, err)
	assert.Empty(t, report.Shadowed)
	assert.Empty(t, report.Unused)
}
