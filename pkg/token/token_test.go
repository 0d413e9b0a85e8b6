package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/lolmark/pkg/token"
)

func TestLookupHash(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   token.Kind
		wantOk bool
	}{
		{name: "single word", input: "#HAI", want: token.HAI, wantOk: true},
		{name: "lower case", input: "#kthxbye", want: token.KTHXBYE, wantOk: true},
		{name: "two words", input: "#I HAZ", want: token.IHAZ, wantOk: true},
		{name: "two words mixed case", input: "#lemme See", want: token.LEMMESEE, wantOk: true},
		{name: "plain keyword is not a hash form", input: "#HEAD", wantOk: false},
		{name: "unknown", input: "#NOPE", wantOk: false},
		{name: "missing hash", input: "HAI", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := token.LookupHash(tt.input)
			require.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLookupPlain(t *testing.T) {
	k, ok := token.LookupPlain("paragraf")
	require.True(t, ok)
	assert.Equal(t, token.PARAGRAF, k)

	_, ok = token.LookupPlain("#PARAGRAF")
	assert.False(t, ok)

	_, ok = token.LookupPlain("HAI")
	assert.False(t, ok, "hash keywords need their hash")
}

func TestKindClasses(t *testing.T) {
	assert.True(t, token.LEMMESEE.IsHashKeyword())
	assert.False(t, token.LEMMESEE.IsPlainKeyword())
	assert.True(t, token.VIDZ.IsPlainKeyword())
	assert.False(t, token.TEXT.IsHashKeyword())
	assert.False(t, token.EOF.IsPlainKeyword())
	assert.Len(t, token.HashKeywords(), 11)
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "TEXT(hello)", token.Token{Kind: token.TEXT, Text: "hello"}.String())
	assert.Equal(t, "#IT IZ", token.Token{Kind: token.ITIZ}.String())
	assert.Equal(t, "EOF", token.Token{Kind: token.EOF}.String())
	assert.Equal(t, "Kind(99)", token.Kind(99).String())
}
