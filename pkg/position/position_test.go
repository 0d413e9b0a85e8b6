package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/lolmark/pkg/position"
)

func TestGetLineAndColumn(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{
			name:     "empty text",
			text:     "",
			offset:   0,
			wantLine: 1,
			wantCol:  0,
		},
		{
			name:     "single line",
			text:     "#HAI hello",
			offset:   5,
			wantLine: 1,
			wantCol:  5,
		},
		{
			name:     "second line",
			text:     "#HAI\nhello world",
			offset:   11,
			wantLine: 2,
			wantCol:  6,
		},
		{
			name:     "multibyte runes count once",
			text:     "héllo wörld",
			offset:   8,
			wantLine: 1,
			wantCol:  7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := position.NewBasicPosition("", tt.offset)
			line, col := pos.GetLineAndColumn(tt.text)
			assert.Equal(t, tt.wantLine, line, "line should match")
			assert.Equal(t, tt.wantCol, col, "column should match")
		})
	}
}

func TestRawPosition_GetRange(t *testing.T) {
	pos := position.NewPosition("GIMMEH", 12, 3, 4)

	rng := pos.GetRange()

	assert.Equal(t, position.Place{Line: 3, Character: 4}, rng.Start)
	assert.Equal(t, position.Place{Line: 3, Character: 10}, rng.End)
	assert.Equal(t, "3:4", pos.String())
	assert.Equal(t, "GIMMEH@12", pos.ID())
}

func TestRawPosition_StringWithoutLine(t *testing.T) {
	pos := position.NewBasicPosition("word", 7)
	assert.Equal(t, "word@7", pos.String())
	assert.Equal(t, "other@7", pos.WithText("other").String())
}
