// Package token defines the closed token vocabulary of the markup dialect.
package token

import (
	"fmt"
	"strings"

	"github.com/walteh/lolmark/pkg/position"
)

// Kind identifies a token. Every keyword is its own kind; free words are TEXT.
type Kind int

const (
	EOF Kind = iota
	TEXT

	// hash keywords
	HAI
	KTHXBYE
	OBTW
	TLDR
	MAEK
	OIC
	GIMMEH
	MKAY
	IHAZ     // #I HAZ
	ITIZ     // #IT IZ
	LEMMESEE // #LEMME SEE

	// plain keywords
	HEAD
	TITLE
	PARAGRAF
	BOLD
	ITALICS
	LIST
	ITEM
	NEWLINE
	SOUNDZ
	VIDZ
)

var kindNames = [...]string{
	EOF:      "EOF",
	TEXT:     "TEXT",
	HAI:      "#HAI",
	KTHXBYE:  "#KTHXBYE",
	OBTW:     "#OBTW",
	TLDR:     "#TLDR",
	MAEK:     "#MAEK",
	OIC:      "#OIC",
	GIMMEH:   "#GIMMEH",
	MKAY:     "#MKAY",
	IHAZ:     "#I HAZ",
	ITIZ:     "#IT IZ",
	LEMMESEE: "#LEMME SEE",
	HEAD:     "HEAD",
	TITLE:    "TITLE",
	PARAGRAF: "PARAGRAF",
	BOLD:     "BOLD",
	ITALICS:  "ITALICS",
	LIST:     "LIST",
	ITEM:     "ITEM",
	NEWLINE:  "NEWLINE",
	SOUNDZ:   "SOUNDZ",
	VIDZ:     "VIDZ",
}

// String returns the source spelling of the kind, e.g. "#I HAZ" or "ITEM".
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) IsHashKeyword() bool {
	return k >= HAI && k <= LEMMESEE
}

func (k Kind) IsPlainKeyword() bool {
	return k >= HEAD && k <= VIDZ
}

var (
	hashKeywords  = map[string]Kind{}
	plainKeywords = map[string]Kind{}
)

func init() {
	for k := HAI; k <= LEMMESEE; k++ {
		hashKeywords[k.String()] = k
	}
	for k := HEAD; k <= VIDZ; k++ {
		plainKeywords[k.String()] = k
	}
}

// LookupHash resolves a hash form such as "#gimmeh" or "#I HAZ".
// Matching ignores case.
func LookupHash(s string) (Kind, bool) {
	k, ok := hashKeywords[strings.ToUpper(s)]
	return k, ok
}

// LookupPlain resolves a bare word against the plain keyword set, ignoring case.
func LookupPlain(word string) (Kind, bool) {
	k, ok := plainKeywords[strings.ToUpper(word)]
	return k, ok
}

// HashKeywords returns the spelling of every hash keyword.
func HashKeywords() []string {
	out := make([]string, 0, len(hashKeywords))
	for k := HAI; k <= LEMMESEE; k++ {
		out = append(out, k.String())
	}
	return out
}

// Token is one scanned unit. Text is only meaningful for TEXT tokens.
type Token struct {
	Kind     Kind
	Text     string
	Position position.RawPosition
}

func (t Token) String() string {
	if t.Kind == TEXT {
		return "TEXT(" + t.Text + ")"
	}
	return t.Kind.String()
}

func (t Token) Is(k Kind) bool {
	return t.Kind == k
}
