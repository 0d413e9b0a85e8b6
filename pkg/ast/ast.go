// Package ast holds the syntax tree of a markup document. Trees are built
// once by the parser and never mutated afterwards.
package ast

import (
	"github.com/walteh/lolmark/pkg/position"
)

// Node is implemented by every tree node.
type Node interface {
	// Position returns where the node's first token starts
	Position() position.RawPosition
	node()
}

// Program is the root. Exactly one exists per compilation.
type Program struct {
	Children []Node
	Pos      position.RawPosition
}

func NewProgram(pos position.RawPosition, children []Node) *Program {
	return &Program{Children: children, Pos: pos}
}

// Comment is an OBTW ... TLDR block; its words are joined with single spaces.
type Comment struct {
	Text string
	Pos  position.RawPosition
}

func NewComment(pos position.RawPosition, text string) *Comment {
	return &Comment{Text: text, Pos: pos}
}

// Head carries the document title.
type Head struct {
	Title string
	Pos   position.RawPosition
}

func NewHead(pos position.RawPosition, title string) *Head {
	return &Head{Title: title, Pos: pos}
}

// Text is a single word of body text.
type Text struct {
	Word string
	Pos  position.RawPosition
}

func NewText(pos position.RawPosition, word string) *Text {
	return &Text{Word: word, Pos: pos}
}

// Paragraph opens a scope.
type Paragraph struct {
	Children []Node
	Pos      position.RawPosition
}

func NewParagraph(pos position.RawPosition, children []Node) *Paragraph {
	return &Paragraph{Children: children, Pos: pos}
}

type Bold struct {
	Text string
	Pos  position.RawPosition
}

func NewBold(pos position.RawPosition, text string) *Bold {
	return &Bold{Text: text, Pos: pos}
}

type Italics struct {
	Text string
	Pos  position.RawPosition
}

func NewItalics(pos position.RawPosition, text string) *Italics {
	return &Italics{Text: text, Pos: pos}
}

// List opens a scope. The grammar only allows list items as children.
type List struct {
	Items []*ListItem
	Pos   position.RawPosition
}

func NewList(pos position.RawPosition, items []*ListItem) *List {
	return &List{Items: items, Pos: pos}
}

// ListItem opens a scope.
type ListItem struct {
	Children []Node
	Pos      position.RawPosition
}

func NewListItem(pos position.RawPosition, children []Node) *ListItem {
	return &ListItem{Children: children, Pos: pos}
}

type Audio struct {
	URL string
	Pos position.RawPosition
}

func NewAudio(pos position.RawPosition, url string) *Audio {
	return &Audio{URL: url, Pos: pos}
}

type Video struct {
	URL string
	Pos position.RawPosition
}

func NewVideo(pos position.RawPosition, url string) *Video {
	return &Video{URL: url, Pos: pos}
}

type Newline struct {
	Pos position.RawPosition
}

func NewNewline(pos position.RawPosition) *Newline {
	return &Newline{Pos: pos}
}

// VarDefine binds Name to the literal Value in the innermost scope.
type VarDefine struct {
	Name  string
	Value string
	Pos   position.RawPosition
	// NamePos points at the identifier itself
	NamePos position.RawPosition
}

func NewVarDefine(pos, namePos position.RawPosition, name, value string) *VarDefine {
	return &VarDefine{Name: name, Value: value, Pos: pos, NamePos: namePos}
}

// VarUse is replaced by the value bound to Name.
type VarUse struct {
	Name    string
	Pos     position.RawPosition
	NamePos position.RawPosition
}

func NewVarUse(pos, namePos position.RawPosition, name string) *VarUse {
	return &VarUse{Name: name, Pos: pos, NamePos: namePos}
}

func (n *Program) Position() position.RawPosition   { return n.Pos }
func (n *Comment) Position() position.RawPosition   { return n.Pos }
func (n *Head) Position() position.RawPosition      { return n.Pos }
func (n *Text) Position() position.RawPosition      { return n.Pos }
func (n *Paragraph) Position() position.RawPosition { return n.Pos }
func (n *Bold) Position() position.RawPosition      { return n.Pos }
func (n *Italics) Position() position.RawPosition   { return n.Pos }
func (n *List) Position() position.RawPosition      { return n.Pos }
func (n *ListItem) Position() position.RawPosition  { return n.Pos }
func (n *Audio) Position() position.RawPosition     { return n.Pos }
func (n *Video) Position() position.RawPosition     { return n.Pos }
func (n *Newline) Position() position.RawPosition   { return n.Pos }
func (n *VarDefine) Position() position.RawPosition { return n.Pos }
func (n *VarUse) Position() position.RawPosition    { return n.Pos }

func (*Program) node()   {}
func (*Comment) node()   {}
func (*Head) node()      {}
func (*Text) node()      {}
func (*Paragraph) node() {}
func (*Bold) node()      {}
func (*Italics) node()   {}
func (*List) node()      {}
func (*ListItem) node()  {}
func (*Audio) node()     {}
func (*Video) node()     {}
func (*Newline) node()   {}
func (*VarDefine) node() {}
func (*VarUse) node()    {}

// OpensScope reports whether entering n pushes a new variable scope.
func OpensScope(n Node) bool {
	switch n.(type) {
	case *Program, *Paragraph, *List, *ListItem:
		return true
	}
	return false
}

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Program:
		return n.Children
	case *Paragraph:
		return n.Children
	case *ListItem:
		return n.Children
	case *List:
		out := make([]Node, len(n.Items))
		for i, item := range n.Items {
			out[i] = item
		}
		return out
	}
	return nil
}

// Inspect walks the tree depth-first in source order, calling f for every
// node. Children of n are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	total := 0
	Inspect(n, func(Node) bool {
		total++
		return true
	})
	return total
}
