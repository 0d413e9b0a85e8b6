// Package semantics resolves block-scoped variables.
package semantics

import (
	"sort"

	"github.com/walteh/lolmark/pkg/ast"
)

// Binding is one name→value entry of a scope.
type Binding struct {
	Name  string
	Value string
	Def   *ast.VarDefine
}

// Scopes is a stack of scopes mirroring tree nesting. The zero value has no
// active scope; callers push one for the program before defining anything.
type Scopes struct {
	frames []map[string]*Binding
}

func NewScopes() *Scopes {
	return &Scopes{}
}

func (s *Scopes) Push() {
	s.frames = append(s.frames, make(map[string]*Binding))
}

// Pop discards the innermost scope. Popping an empty stack is a bug in the
// caller's traversal.
func (s *Scopes) Pop() {
	if len(s.frames) == 0 {
		panic("semantics: pop of empty scope stack")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *Scopes) Depth() int {
	return len(s.frames)
}

// Define binds def in the innermost scope, replacing any binding of the same
// name there. It returns the binding of an enclosing scope that is now
// hidden, or nil.
func (s *Scopes) Define(def *ast.VarDefine) (shadowed *Binding) {
	if len(s.frames) == 0 {
		panic("semantics: define with no active scope")
	}
	inner := len(s.frames) - 1
	for i := inner - 1; i >= 0; i-- {
		if b, ok := s.frames[i][def.Name]; ok {
			shadowed = b
			break
		}
	}
	s.frames[inner][def.Name] = &Binding{Name: def.Name, Value: def.Value, Def: def}
	return shadowed
}

// Resolve searches from the innermost scope outwards.
func (s *Scopes) Resolve(name string) (*Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i][name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Visible returns every name that currently resolves, sorted.
func (s *Scopes) Visible() []string {
	seen := make(map[string]struct{})
	for _, frame := range s.frames {
		for name := range frame {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
