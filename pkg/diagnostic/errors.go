package diagnostic

import (
	"fmt"

	"github.com/walteh/lolmark/pkg/position"
	"gitlab.com/tozd/go/errors"
)

// Kind is the class of a fatal compile error.
type Kind string

const (
	KindLexical  Kind = "lexical"
	KindSyntax   Kind = "syntax"
	KindSemantic Kind = "semantic"
)

// Error is the single fatal error a compilation phase reports. The first one
// aborts the compilation.
type Error struct {
	Kind     Kind
	Message  string
	Position position.RawPosition

	// syntax errors
	TokenIndex int
	Expected   string
	Found      string

	// semantic errors
	Name string

	// Suggestion is a close match for the offending keyword or name, if any.
	Suggestion string
}

func NewLexicalError(pos position.RawPosition, format string, args ...any) *Error {
	return &Error{
		Kind:     KindLexical,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	}
}

func NewSyntaxError(index int, pos position.RawPosition, expected, found string) *Error {
	return &Error{
		Kind:       KindSyntax,
		Position:   pos,
		TokenIndex: index,
		Expected:   expected,
		Found:      found,
	}
}

func NewSemanticError(pos position.RawPosition, name string) *Error {
	return &Error{
		Kind:     KindSemantic,
		Position: pos,
		Name:     name,
	}
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindLexical:
		msg = fmt.Sprintf("Lexical error at line %d, col %d: %s", e.Position.Line, e.Position.Column, e.Message)
	case KindSyntax:
		msg = fmt.Sprintf("Syntax error near position %d. Expected %s token but found %s", e.TokenIndex, e.Expected, e.Found)
	case KindSemantic:
		msg = fmt.Sprintf("Static scope error: variable '%s' used before it was defined (or out of scope).", e.Name)
	default:
		msg = e.Message
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", e.Suggestion)
	}
	return msg
}

// WithSuggestion sets the suggestion and returns e.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// AsError finds a compile error anywhere in err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf reports the compile error kind carried by err.
func KindOf(err error) (Kind, bool) {
	de, ok := AsError(err)
	if !ok {
		return "", false
	}
	return de.Kind, true
}
