// Package parser builds the syntax tree from a complete token sequence using
// recursive descent. Each production returns the node it owns.
package parser

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/lolmark/pkg/ast"
	"github.com/walteh/lolmark/pkg/diagnostic"
	"github.com/walteh/lolmark/pkg/position"
	"github.com/walteh/lolmark/pkg/token"
)

type parser struct {
	tokens []token.Token
	pos    int
}

// Parse consumes toks once, left to right, and returns the program root.
// The first mismatched token aborts with a syntax error.
func Parse(ctx context.Context, toks []token.Token) (*ast.Program, error) {
	p := &parser{tokens: toks}

	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Int("tokens", len(toks)).
		Int("nodes", ast.Count(prog)).
		Msg("parsed program")

	return prog, nil
}

func (p *parser) current() token.Token {
	return p.peek(0)
}

// peek looks n tokens ahead. Past the end it yields EOF.
func (p *parser) peek(n int) token.Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	eof := token.Token{Kind: token.EOF}
	if len(p.tokens) > 0 {
		eof.Position = p.tokens[len(p.tokens)-1].Position
	}
	return eof
}

func (p *parser) at(k token.Kind) bool {
	return p.current().Kind == k
}

// atPair reports whether the current and next tokens are a and b.
func (p *parser) atPair(a, b token.Kind) bool {
	return p.current().Kind == a && p.peek(1).Kind == b
}

func (p *parser) expect(k token.Kind) (token.Token, error) {
	tok := p.current()
	if tok.Kind != k {
		return tok, p.errorf(k.String())
	}
	p.pos++
	return tok, nil
}

func (p *parser) errorf(expected string) error {
	found := p.current()
	return diagnostic.NewSyntaxError(p.pos, found.Position, expected, found.String())
}

// program := HAI comment* head? body KTHXBYE EOF
func (p *parser) parseProgram() (*ast.Program, error) {
	start, err := p.expect(token.HAI)
	if err != nil {
		return nil, err
	}

	children := make([]ast.Node, 0)

	for p.at(token.OBTW) {
		c, err := p.parseComment()
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}

	if p.atPair(token.MAEK, token.HEAD) {
		h, err := p.parseHead()
		if err != nil {
			return nil, err
		}
		children = append(children, h)
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	children = append(children, body...)

	if _, err := p.expect(token.KTHXBYE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}

	return ast.NewProgram(start.Position, children), nil
}

// head := MAEK HEAD title OIC
// title := GIMMEH TITLE text* MKAY
func (p *parser) parseHead() (*ast.Head, error) {
	start, err := p.expect(token.MAEK)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.HEAD); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.GIMMEH); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TITLE); err != nil {
		return nil, err
	}
	title := p.parseWords()
	if _, err := p.expect(token.MKAY); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OIC); err != nil {
		return nil, err
	}
	return ast.NewHead(start.Position, title), nil
}

// comment := OBTW text* TLDR
func (p *parser) parseComment() (*ast.Comment, error) {
	start, err := p.expect(token.OBTW)
	if err != nil {
		return nil, err
	}
	text := p.parseWords()
	if _, err := p.expect(token.TLDR); err != nil {
		return nil, err
	}
	return ast.NewComment(start.Position, text), nil
}

// parseWords greedily consumes text tokens and joins them with single spaces.
func (p *parser) parseWords() string {
	var words []string
	for p.at(token.TEXT) {
		words = append(words, p.current().Text)
		p.pos++
	}
	return strings.Join(words, " ")
}

// body := ( paragraph | list | bold | italics | newline | audio | video
//
//	| vardefine | varuse | text | comment )*
func (p *parser) parseBody() ([]ast.Node, error) {
	nodes := make([]ast.Node, 0)
	for {
		var (
			n   ast.Node
			err error
		)
		switch {
		case p.atPair(token.MAEK, token.PARAGRAF):
			n, err = p.parseParagraph()
		case p.atPair(token.MAEK, token.LIST):
			n, err = p.parseList()
		case p.at(token.IHAZ):
			n, err = p.parseVarDefine()
		case p.at(token.OBTW):
			n, err = p.parseComment()
		default:
			var ok bool
			n, ok, err = p.parseInline()
			if !ok {
				return nodes, nil
			}
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

// parseInline handles the alternatives shared by body and paragraphs:
// varuse, text, and the GIMMEH forms other than ITEM. ok is false when the
// current pair starts none of them.
func (p *parser) parseInline() (n ast.Node, ok bool, err error) {
	switch {
	case p.at(token.LEMMESEE):
		n, err = p.parseVarUse()
	case p.at(token.TEXT):
		n, err = p.parseText()
	case p.atPair(token.GIMMEH, token.BOLD):
		n, err = p.parseBold()
	case p.atPair(token.GIMMEH, token.ITALICS):
		n, err = p.parseItalics()
	case p.atPair(token.GIMMEH, token.NEWLINE):
		n, err = p.parseNewline()
	case p.atPair(token.GIMMEH, token.SOUNDZ):
		n, err = p.parseAudio()
	case p.atPair(token.GIMMEH, token.VIDZ):
		n, err = p.parseVideo()
	default:
		return nil, false, nil
	}
	return n, true, err
}

// paragraph := MAEK PARAGRAF vardefine? inner_paragraph OIC
// inner_paragraph := ( varuse | bold | italics | newline | audio | video | text | list )*
func (p *parser) parseParagraph() (*ast.Paragraph, error) {
	start, err := p.expect(token.MAEK)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.PARAGRAF); err != nil {
		return nil, err
	}

	children := make([]ast.Node, 0)

	if p.at(token.IHAZ) {
		def, err := p.parseVarDefine()
		if err != nil {
			return nil, err
		}
		children = append(children, def)
	}

	for {
		var (
			n   ast.Node
			err error
		)
		if p.atPair(token.MAEK, token.LIST) {
			n, err = p.parseList()
		} else {
			var ok bool
			n, ok, err = p.parseInline()
			if !ok {
				break
			}
		}
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}

	if _, err := p.expect(token.OIC); err != nil {
		return nil, err
	}
	return ast.NewParagraph(start.Position, children), nil
}

// list := MAEK LIST list_items OIC
// list_items := ( GIMMEH ITEM inner_list MKAY )*
func (p *parser) parseList() (*ast.List, error) {
	start, err := p.expect(token.MAEK)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LIST); err != nil {
		return nil, err
	}

	items := make([]*ast.ListItem, 0)
	for p.atPair(token.GIMMEH, token.ITEM) {
		item, err := p.parseListItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if _, err := p.expect(token.OIC); err != nil {
		return nil, err
	}
	return ast.NewList(start.Position, items), nil
}

// inner_list := ( text | bold | italics | varuse )*
func (p *parser) parseListItem() (*ast.ListItem, error) {
	start, err := p.expect(token.GIMMEH)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ITEM); err != nil {
		return nil, err
	}

	children := make([]ast.Node, 0)
loop:
	for {
		var (
			n   ast.Node
			err error
		)
		switch {
		case p.at(token.TEXT):
			n, err = p.parseText()
		case p.atPair(token.GIMMEH, token.BOLD):
			n, err = p.parseBold()
		case p.atPair(token.GIMMEH, token.ITALICS):
			n, err = p.parseItalics()
		case p.at(token.LEMMESEE):
			n, err = p.parseVarUse()
		default:
			break loop
		}
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}

	if _, err := p.expect(token.MKAY); err != nil {
		return nil, err
	}
	return ast.NewListItem(start.Position, children), nil
}

// vardefine := IHAZ text ITIZ text MKAY
func (p *parser) parseVarDefine() (*ast.VarDefine, error) {
	start, err := p.expect(token.IHAZ)
	if err != nil {
		return nil, err
	}
	name, err := p.parseText()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ITIZ); err != nil {
		return nil, err
	}
	value, err := p.parseText()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.MKAY); err != nil {
		return nil, err
	}
	return ast.NewVarDefine(start.Position, name.Pos, name.Word, value.Word), nil
}

// varuse := LEMMESEE text MKAY
func (p *parser) parseVarUse() (*ast.VarUse, error) {
	start, err := p.expect(token.LEMMESEE)
	if err != nil {
		return nil, err
	}
	name, err := p.parseText()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.MKAY); err != nil {
		return nil, err
	}
	return ast.NewVarUse(start.Position, name.Pos, name.Word), nil
}

// bold := GIMMEH BOLD text* MKAY
func (p *parser) parseBold() (*ast.Bold, error) {
	start, text, err := p.parseWrapped(token.BOLD)
	if err != nil {
		return nil, err
	}
	return ast.NewBold(start, text), nil
}

// italics := GIMMEH ITALICS text* MKAY
func (p *parser) parseItalics() (*ast.Italics, error) {
	start, text, err := p.parseWrapped(token.ITALICS)
	if err != nil {
		return nil, err
	}
	return ast.NewItalics(start, text), nil
}

func (p *parser) parseWrapped(kw token.Kind) (position.RawPosition, string, error) {
	start, err := p.expect(token.GIMMEH)
	if err != nil {
		return start.Position, "", err
	}
	if _, err := p.expect(kw); err != nil {
		return start.Position, "", err
	}
	text := p.parseWords()
	if _, err := p.expect(token.MKAY); err != nil {
		return start.Position, "", err
	}
	return start.Position, text, nil
}

// audio := GIMMEH SOUNDZ text MKAY
func (p *parser) parseAudio() (*ast.Audio, error) {
	start, url, err := p.parseMedia(token.SOUNDZ)
	if err != nil {
		return nil, err
	}
	return ast.NewAudio(start, url), nil
}

// video := GIMMEH VIDZ text MKAY
func (p *parser) parseVideo() (*ast.Video, error) {
	start, url, err := p.parseMedia(token.VIDZ)
	if err != nil {
		return nil, err
	}
	return ast.NewVideo(start, url), nil
}

func (p *parser) parseMedia(kw token.Kind) (position.RawPosition, string, error) {
	start, err := p.expect(token.GIMMEH)
	if err != nil {
		return start.Position, "", err
	}
	if _, err := p.expect(kw); err != nil {
		return start.Position, "", err
	}
	url, err := p.parseText()
	if err != nil {
		return start.Position, "", err
	}
	if _, err := p.expect(token.MKAY); err != nil {
		return start.Position, "", err
	}
	return start.Position, url.Word, nil
}

// newline := GIMMEH NEWLINE
func (p *parser) parseNewline() (*ast.Newline, error) {
	start, err := p.expect(token.GIMMEH)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	return ast.NewNewline(start.Position), nil
}

// parseText consumes exactly one text token.
func (p *parser) parseText() (*ast.Text, error) {
	tok := p.current()
	if tok.Kind != token.TEXT {
		return nil, p.errorf(token.TEXT.String())
	}
	p.pos++
	return ast.NewText(tok.Position, tok.Text), nil
}
