// Package scanner turns markup source text into a flat token sequence.
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/walteh/lolmark/pkg/diagnostic"
	"github.com/walteh/lolmark/pkg/position"
	"github.com/walteh/lolmark/pkg/token"
)

// Scanner produces one token per call to Next. It is not safe for
// concurrent use.
type Scanner struct {
	src []rune
	cur mark
}

// mark is everything needed to roll the scanner back.
type mark struct {
	index  int // rune index into src
	offset int // byte offset into the original text
	line   int
	col    int
}

func New(src string) *Scanner {
	return &Scanner{
		src: []rune(src),
		cur: mark{line: 1},
	}
}

// ScanAll scans src to the end. The returned slice always ends with an EOF
// token. The first lexical error stops the scan.
func ScanAll(src string) ([]token.Token, error) {
	s := New(src)
	toks := make([]token.Token, 0, len(src)/4+1)
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Next returns the next token, or an EOF token once input is exhausted.
func (s *Scanner) Next() (token.Token, error) {
	s.skipWhitespace()

	start := s.cur
	r, ok := s.peek()
	if !ok {
		return token.Token{Kind: token.EOF, Position: start.position("")}, nil
	}

	if r == '#' {
		return s.scanHash(start)
	}

	word := s.readWord()
	if k, ok := token.LookupPlain(word); ok {
		return token.Token{Kind: k, Position: start.position(k.String())}, nil
	}
	return token.Token{Kind: token.TEXT, Text: word, Position: start.position(word)}, nil
}

// scanHash reads a hash keyword. Two-word forms are tried first; when the
// pair is not a keyword the scanner rewinds to just past the first word.
func (s *Scanner) scanHash(start mark) (token.Token, error) {
	s.advance()

	first := strings.ToUpper(s.readWord())
	if first == "" {
		return token.Token{}, diagnostic.NewLexicalError(s.cur.position("#"), "Expected keyword after '#'")
	}

	afterFirst := s.cur
	s.skipWhitespace()
	second := strings.ToUpper(s.readWord())
	if second != "" {
		if k, ok := token.LookupHash("#" + first + " " + second); ok {
			return token.Token{Kind: k, Position: start.position(k.String())}, nil
		}
	}
	s.cur = afterFirst

	single := "#" + first
	k, ok := token.LookupHash(single)
	if !ok {
		err := diagnostic.NewLexicalError(s.cur.position(single), "'%s' is Not a valid token", single)
		return token.Token{}, err.WithSuggestion(diagnostic.Suggest(single, token.HashKeywords()))
	}
	return token.Token{Kind: k, Position: start.position(k.String())}, nil
}

func (s *Scanner) peek() (rune, bool) {
	if s.cur.index >= len(s.src) {
		return 0, false
	}
	return s.src[s.cur.index], true
}

func (s *Scanner) advance() {
	r, ok := s.peek()
	if !ok {
		return
	}
	s.cur.index++
	s.cur.offset += utf8.RuneLen(r)
	if r == '\n' {
		s.cur.line++
		s.cur.col = 0
	} else {
		s.cur.col++
	}
}

func (s *Scanner) skipWhitespace() {
	for {
		r, ok := s.peek()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		s.advance()
	}
}

// readWord consumes runes up to whitespace, a '#', or the end of input.
func (s *Scanner) readWord() string {
	start := s.cur.index
	for {
		r, ok := s.peek()
		if !ok || unicode.IsSpace(r) || r == '#' {
			break
		}
		s.advance()
	}
	return string(s.src[start:s.cur.index])
}

func (m mark) position(text string) position.RawPosition {
	return position.NewPosition(text, m.offset, m.line, m.col)
}
