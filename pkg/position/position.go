package position

import (
	"fmt"
	"unicode/utf8"
)

type Place struct {
	Line      int
	Character int
}

type Range struct {
	Start Place
	End   Place
}

// RawPosition represents a position in the source text
type RawPosition struct {
	// Text is the actual text at this position
	Text string
	// Offset is the byte offset in the source text
	Offset int
	// Line is 1-based
	Line int
	// Column counts runes consumed on the current line, starting at 0
	Column int
}

func NewBasicPosition(text string, offset int) RawPosition {
	return RawPosition{Text: text, Offset: offset}
}

func NewPosition(text string, offset, line, column int) RawPosition {
	return RawPosition{Text: text, Offset: offset, Line: line, Column: column}
}

// ID returns a unique identifier for this position based on offset and text
func (p RawPosition) ID() string {
	return fmt.Sprintf("%s@%d", p.Text, p.Offset)
}

// Length returns the length in runes of the text at this position
func (p RawPosition) Length() int {
	return utf8.RuneCountInString(p.Text)
}

// WithText returns a copy of p pointing at the same place with different text.
func (p RawPosition) WithText(text string) RawPosition {
	p.Text = text
	return p
}

// Place returns the start of the position in line/column form.
func (p RawPosition) Place() Place {
	return Place{Line: p.Line, Character: p.Column}
}

// GetRange returns the line/column range covered by the text. Positions
// never span a newline, so the end is on the same line.
func (p RawPosition) GetRange() Range {
	return Range{
		Start: p.Place(),
		End:   Place{Line: p.Line, Character: p.Column + p.Length()},
	}
}

// GetLineAndColumn recomputes the line and column for the offset by
// scanning text. Line is 1-based, column is a 0-based rune count.
func (p RawPosition) GetLineAndColumn(text string) (line, col int) {
	line = 1
	for i, r := range text {
		if i >= p.Offset {
			break
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

func (p RawPosition) String() string {
	if p.Line == 0 {
		return fmt.Sprintf("%s@%d", p.Text, p.Offset)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
