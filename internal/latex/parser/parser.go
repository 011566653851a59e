// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parser implements a recursive-descent parser for a TeX math
// subset, building internal/latex/tex.Node layout trees from the token
// stream. Math spans are laid out directly, with no intermediate math-list;
// non-math runs are first collected into a small internal/latex/ast tree.
// The font state is saved and restored by value at group and math-mode
// boundaries.
package parser // import "github.com/go-latex/mathtext/internal/latex/parser"

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-latex/mathtext/internal/latex/tex"
	"github.com/go-latex/mathtext/internal/latex/token"
)

// Config is the initial font state and diagnostics sink a Parser is built
// from.
type Config struct {
	Fonts tex.FontMetricer
	Out   renderer
	Font  string
	Size  float64
	DPI   float64
	Warn  func(Warning)
}

// renderer mirrors the (unexported) backend interface internal/latex/tex
// draws into; it is declared locally so Config.Out can be typed without
// importing an unexported type, structural typing makes any value
// implementing these two methods assignable into tex.State.Out.
type renderer interface {
	RenderGlyph(ox, oy float64, glyph tex.Glyph)
	RenderRectFilled(x1, y1, x2, y2 float64)
}

// Parser parses one expression at a time into a tex.HList. It is not safe
// for concurrent use; callers needing concurrent parsing should use one
// Parser per goroutine (they are cheap to construct).
type Parser struct {
	cfg   Config
	state tex.State
	stack []tex.State
	sc    *tokStream
	input string
}

// NewParser builds a Parser from cfg. cfg.Fonts must be non-nil.
func NewParser(cfg Config) *Parser {
	return &Parser{cfg: cfg}
}

// Parse lays out input (which may freely mix non-math text and
// '$'-delimited math spans, e.g. `"hello $x^2$ world"`) into a single
// root Hlist. Internal invariant violations (a Char node reaching
// vlist_out) panic inside the tex package; Parse recovers them here and
// reports them as a plain error distinct from ParseError so a caller can
// tell malformed input apart from a bug in this module.
func (p *Parser) Parse(input string) (result *tex.HList, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				err = pe
				return
			}
			err = fmt.Errorf("mathtext: internal error: %v", r)
		}
	}()

	p.input = input
	p.state = tex.State{
		Fonts: p.cfg.Fonts,
		Out:   p.cfg.Out,
		Font:  p.cfg.Font,
		Size:  p.cfg.Size,
		DPI:   p.cfg.DPI,
	}
	p.stack = nil
	p.sc = newTokStream(input)

	nodes, err := p.parseMain()
	if err != nil {
		return nil, err
	}
	return tex.HListOf(nodes, true, p.relayWarn), nil
}

func (p *Parser) relayWarn(msg string) {
	if p.cfg.Warn == nil {
		return
	}
	kind := OverfullWarning
	if strings.HasPrefix(msg, "Underfull") {
		kind = UnderfullWarning
	}
	p.cfg.Warn(Warning{Kind: kind, Msg: msg})
}

func (p *Parser) parseMain() ([]tex.Node, error) {
	var nodes []tex.Node
	for {
		tok, ok := p.sc.peek()
		if !ok {
			break
		}
		if tok.Kind == token.Dollar {
			p.sc.next()
			mathNodes, err := p.parseMathUntilDollar()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, mathNodes...)
			continue
		}
		textNodes, err := p.parseNonMathRun()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, textNodes...)
	}
	return nodes, nil
}

func (p *Parser) parseMathUntilDollar() ([]tex.Node, error) {
	saved := p.state
	p.state.Math = true
	if p.state.Font == "" {
		p.state.Font = "it"
	}

	var nodes []tex.Node
	for {
		tok, ok := p.sc.peek()
		if !ok {
			return nil, p.errorf(tok, "unterminated math mode: missing closing '$'")
		}
		if tok.Kind == token.Dollar {
			p.sc.next()
			break
		}
		n, err := p.mathToken()
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	p.state = saved
	return nodes, nil
}

// mathToken parses one (placeable, optional sub/superscript) production.
func (p *Parser) mathToken() (tex.Node, error) {
	tok, ok := p.sc.peek()
	if !ok {
		return nil, nil
	}
	switch tok.Kind {
	case token.Space, token.EmptyLine, token.Comment:
		p.sc.next()
		return nil, nil
	}

	nucleus, err := p.placeable()
	if err != nil {
		return nil, err
	}
	if nucleus == nil {
		return nil, nil
	}
	return p.maybeAttachScripts(nucleus)
}

func (p *Parser) maybeAttachScripts(nucleus tex.Node) (tex.Node, error) {
	var sub, super tex.Node
loop:
	for {
		tok, ok := p.sc.peek()
		if !ok {
			break
		}
		switch tok.Kind {
		case token.Underscore:
			if sub != nil {
				return nil, p.errorf(tok, "Double subscript")
			}
			p.sc.next()
			n, err := p.placeable()
			if err != nil {
				return nil, err
			}
			if n != nil {
				n.Shrink()
			}
			sub = n
		case token.Hat:
			if super != nil {
				return nil, p.errorf(tok, "double superscript")
			}
			p.sc.next()
			n, err := p.placeable()
			if err != nil {
				return nil, err
			}
			if n != nil {
				n.Shrink()
			}
			super = n
		default:
			break loop
		}
	}
	if sub == nil && super == nil {
		return nucleus, nil
	}
	if p.isOverUnder(nucleus) {
		return p.attachOverUnder(nucleus, sub, super)
	}
	return p.attachScript(nucleus, sub, super, p.state)
}

// placeable parses a single math "atom": a group, a macro, or a literal
// symbol, with no attached scripts (those are handled by the caller).
func (p *Parser) placeable() (tex.Node, error) {
	tok, ok := p.sc.peek()
	if !ok {
		return nil, p.errorf(tok, "unexpected end of input")
	}
	switch tok.Kind {
	case token.Lbrace:
		return p.group()
	case token.Macro:
		p.sc.next()
		return p.macro(tok)
	case token.Word, token.Number:
		return p.mathSymbolToken(tok)
	case token.Space, token.EmptyLine, token.Comment:
		p.sc.next()
		return p.placeable()
	case token.Rbrace:
		return nil, p.errorf(tok, "unexpected '}'")
	case token.Dollar:
		return nil, p.errorf(tok, "unexpected '$'")
	default:
		p.sc.next()
		return p.symbol(tok.Text)
	}
}

// mathSymbolToken consumes a single Unicode character off the front of a
// (possibly multi-character) Word/Number token, pushing the remainder
// back so each letter or digit is its own independently scriptable
// symbol, matching TeX's treatment of math-mode identifiers.
func (p *Parser) mathSymbolToken(tok token.Token) (tex.Node, error) {
	p.sc.next()
	text := tok.Text
	r, size := utf8.DecodeRuneInString(text)
	if len(text) > size {
		p.sc.pushFront(token.Token{Kind: tok.Kind, Pos: tok.Pos + token.Pos(size), Text: text[size:]})
	}
	return p.symbol(string(r))
}

func (p *Parser) symbol(sym string) (tex.Node, error) {
	ch, err := tex.NewChar(sym, p.state)
	if err != nil {
		ch, err = p.substituteUnknownSymbol(sym)
		if err != nil {
			return nil, err
		}
	}
	if isSpacedSymbol(sym) {
		return p.wrapSpaced(ch), nil
	}
	if isPunctuationSymbol(sym) {
		return tex.HListOf([]tex.Node{ch, tex.NewKern(p.state.Size / 6)}, false, p.relayWarn), nil
	}
	return ch, nil
}

// dummySymbolGlyph stands in for a symbol the font layer cannot resolve,
// the same fallback mathtext.py's _get_glyph uses for lack of anything
// better (its own comment there calls 0x3F, '?', the "currency
// character").
const dummySymbolGlyph = "?"

// substituteUnknownSymbol reports a non-fatal UnknownSymbolWarning and
// returns a dummy glyph in place of sym, rather than failing the parse:
// an unresolved symbol command is a warning, not an error.
func (p *Parser) substituteUnknownSymbol(sym string) (*tex.Char, error) {
	if p.cfg.Warn != nil {
		p.cfg.Warn(Warning{
			Kind:   UnknownSymbolWarning,
			Symbol: sym,
			Msg:    fmt.Sprintf("unknown symbol %q, substituting a dummy glyph", sym),
		})
	}
	ch, err := tex.NewChar(dummySymbolGlyph, p.state)
	if err != nil {
		return nil, p.errorf(token.Token{}, "unknown symbol %q and no dummy glyph available: %v", sym, err)
	}
	return ch, nil
}

func (p *Parser) wrapSpaced(ch tex.Node) tex.Node {
	space := tex.NewKern(p.state.Size / 6)
	return tex.HListOf([]tex.Node{space, ch, tex.NewKern(p.state.Size / 6)}, false, p.relayWarn)
}

// group parses a brace-delimited '{' ... '}' span into an Hlist, scoping
// any font switch applied inside it (e.g. \bf) to the group.
func (p *Parser) group() (tex.Node, error) {
	open, _ := p.sc.next() // consume '{'
	saved := p.state

	var nodes []tex.Node
	for {
		tok, ok := p.sc.peek()
		if !ok {
			return nil, p.errorf(open, "unterminated group: missing '}'")
		}
		if tok.Kind == token.Rbrace {
			p.sc.next()
			break
		}
		n, err := p.mathToken()
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	p.state = saved
	return tex.HListOf(nodes, true, p.relayWarn), nil
}

func mathFontRole(name string) string {
	switch name {
	case "mathrm":
		return "rm"
	case "mathit":
		return "it"
	case "mathbf":
		return "bf"
	case "mathtt":
		return "tt"
	case "mathsf":
		return "sf"
	case "mathcal":
		return "cal"
	default: // mathdefault
		return "it"
	}
}

// fontGroup parses the mandatory '{...}' argument of a \math* macro under
// a font switched for the duration of that group only.
func (p *Parser) fontGroup(role string) (tex.Node, error) {
	tok, ok := p.sc.peek()
	if !ok || tok.Kind != token.Lbrace {
		return nil, p.errorf(tok, "expected '{' after font-switch macro")
	}
	saved := p.state
	p.state.Font = role
	node, err := p.group()
	p.state = saved
	return node, err
}

// macro dispatches a consumed Macro token (tok.Text includes the leading
// backslash) to the production that implements it.
func (p *Parser) macro(tok token.Token) (tex.Node, error) {
	name := strings.TrimPrefix(tok.Text, `\`)

	switch name {
	case "frac", "dfrac", "tfrac":
		return p.frac()
	case "sqrt":
		return p.sqrt()
	case "left":
		return p.autoSizedDelimiterGroup()
	case "right":
		return nil, p.errorf(tok, `unexpected \right without matching \left`)
	case "AA":
		return p.charOverChars("A", "˚")
	case "mathrm", "mathit", "mathbf", "mathtt", "mathsf", "mathcal", "mathdefault":
		return p.fontGroup(mathFontRole(name))
	case "rm", "it", "bf", "tt", "sf", "cal":
		p.state.Font = name
		return nil, nil
	case ",", ";", "!", "quad", "qquad", " ", "/":
		return p.spacing(name), nil
	case "hspace":
		return p.hspace()
	}

	if mark, ok := accentCommands[`\`+name]; ok {
		return p.accent(mark)
	}
	if wideAccentCommands[name] {
		return p.wideAccent(name)
	}
	if functionNames[name] {
		return p.function(name)
	}

	return p.symbol(`\` + name)
}

// spacing returns the fixed-width Kern for one of the whitespace commands
// (\, \; \quad \qquad \! \  \/), whose widths are literal em fractions
// rather than anything derived from font metrics.
func (p *Parser) spacing(name string) tex.Node {
	em := p.state.Size
	var width float64
	switch name {
	case ",":
		width = 0.4 * em
	case ";":
		width = 0.8 * em
	case "!":
		width = -0.4 * em
	case "quad":
		width = 1.6 * em
	case "qquad":
		width = 3.2 * em
	case " ":
		width = 0.3 * em
	case "/":
		width = 0.4 * em
	}
	return tex.NewKern(width)
}

// hspace parses \hspace{f} and returns a Kern of f em.
func (p *Parser) hspace() (tex.Node, error) {
	f, err := p.requireNumberGroup("hspace")
	if err != nil {
		return nil, err
	}
	return tex.NewKern(f * p.state.Size), nil
}

// requireNumberGroup parses a brace-delimited group containing exactly
// one Number token, as \hspace{f} requires.
func (p *Parser) requireNumberGroup(macro string) (float64, error) {
	open, ok := p.sc.next()
	if !ok || open.Kind != token.Lbrace {
		return 0, p.errorf(open, `expected '{' for argument of \%s`, macro)
	}
	numTok, ok := p.sc.next()
	if !ok || numTok.Kind != token.Number {
		return 0, p.errorf(numTok, `expected a numeric argument for \%s`, macro)
	}
	closeTok, ok := p.sc.next()
	if !ok || closeTok.Kind != token.Rbrace {
		return 0, p.errorf(closeTok, `expected '}' after \%s{%s`, macro, numTok.Text)
	}
	f, err := strconv.ParseFloat(numTok.Text, 64)
	if err != nil {
		return 0, p.errorf(numTok, `invalid numeric argument %q for \%s: %v`, numTok.Text, macro, err)
	}
	return f, nil
}

func (p *Parser) function(name string) (tex.Node, error) {
	st := p.state
	st.Font = "rm"
	nodes := make([]tex.Node, 0, len(name))
	for _, r := range name {
		ch, err := tex.NewChar(string(r), st)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, ch)
	}
	hl := tex.HListOf(nodes, true, p.relayWarn)
	hl.FunctionName = name
	out := p.wrapSpaced(hl)
	if w, ok := out.(*tex.HList); ok {
		w.FunctionName = name
	}
	return out, nil
}

func (p *Parser) accent(mark string) (tex.Node, error) {
	nucleus, err := p.placeable()
	if err != nil {
		return nil, err
	}
	width, _, _ := dimsOf(nucleus)

	acc, err := tex.NewAccent(mark, p.state)
	if err != nil {
		return nil, err
	}
	shifted := tex.HListOf([]tex.Node{acc}, false, p.relayWarn)
	shifted.SetShift((width - acc.Width()) / 2)

	vlist := tex.VListOf([]tex.Node{
		shifted,
		tex.NewKern(p.state.Size * 0.1),
		wrapHList(nucleus, p.relayWarn),
	}, p.relayWarn)
	return tex.HListOf([]tex.Node{vlist}, false, p.relayWarn), nil
}

func (p *Parser) wideAccent(name string) (tex.Node, error) {
	nucleus, err := p.placeable()
	if err != nil {
		return nil, err
	}
	width, _, _ := dimsOf(nucleus)

	acc, err := tex.AutoWidthChar(`\`+name, width, p.state, false)
	if err != nil {
		return nil, err
	}
	shifted := tex.HListOf([]tex.Node{acc}, false, p.relayWarn)
	shifted.SetShift((width - acc.Width()) / 2)

	vlist := tex.VListOf([]tex.Node{
		shifted,
		tex.NewKern(p.state.Size * 0.1),
		wrapHList(nucleus, p.relayWarn),
	}, p.relayWarn)
	return tex.HListOf([]tex.Node{vlist}, false, p.relayWarn), nil
}

// charOverChars builds the composite glyph \AA needs: a small ring
// accent centered above an 'A' in the current font, each independently positioned
// rather than looked up as a single precomposed glyph, following
// mathtext.py's Parser._char_over_chars.
func (p *Parser) charOverChars(base, over string) (tex.Node, error) {
	baseChar, err := tex.NewChar(base, p.state)
	if err != nil {
		return nil, err
	}
	accState := p.state
	accState.Size *= 0.7
	overChar, err := tex.NewChar(over, accState)
	if err != nil {
		return nil, err
	}

	shifted := tex.HListOf([]tex.Node{overChar}, false, p.relayWarn)
	shifted.SetShift((baseChar.Width() - overChar.Width()) / 2)

	vlist := tex.VListOf([]tex.Node{
		shifted,
		tex.NewKern(p.state.Size * 0.05),
		baseChar,
	}, p.relayWarn)
	return tex.HListOf([]tex.Node{vlist}, false, p.relayWarn), nil
}

// autoSizedDelimiterGroup parses `\left` DELIM ... `\right` DELIM, sizing
// the two delimiters to the height and depth of their enclosed material
// via tex.AutoHeightChar. A delimiter of "." is the TeX null delimiter:
// no glyph is drawn and nothing takes its place.
func (p *Parser) autoSizedDelimiterGroup() (tex.Node, error) {
	leftTok, ok := p.sc.next()
	if !ok {
		return nil, p.errorf(leftTok, `expected a delimiter after \left`)
	}

	var nodes []tex.Node
	for {
		tok, ok := p.sc.peek()
		if !ok {
			return nil, p.errorf(tok, `unterminated \left ... \right`)
		}
		if tok.Kind == token.Macro && strings.TrimPrefix(tok.Text, `\`) == "right" {
			p.sc.next()
			break
		}
		n, err := p.mathToken()
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	rightTok, ok := p.sc.next()
	if !ok {
		return nil, p.errorf(rightTok, `expected a delimiter after \right`)
	}

	inner := tex.HListOf(nodes, true, p.relayWarn)
	height, depth := inner.Height(), inner.Depth()

	var out []tex.Node
	if leftTok.Text != "." {
		lchar, err := tex.AutoHeightChar(leftTok.Text, height, depth, p.state, false)
		if err != nil {
			return nil, err
		}
		out = append(out, lchar)
	}
	out = append(out, inner)
	if rightTok.Text != "." {
		rchar, err := tex.AutoHeightChar(rightTok.Text, height, depth, p.state, false)
		if err != nil {
			return nil, err
		}
		out = append(out, rchar)
	}
	return tex.HListOf(out, false, p.relayWarn), nil
}

// errorf builds a ParseError anchored at tok's position within the
// original input.
func (p *Parser) errorf(tok token.Token, format string, args ...interface{}) *ParseError {
	line, col := lineCol(p.input, int(tok.Pos))
	return &ParseError{Input: p.input, Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func lineCol(s string, pos int) (line, col int) {
	line, col = 1, 1
	for i, r := range s {
		if i >= pos {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// tokStream wraps a scanner with a small pushback buffer so the parser
// can peek one token ahead, and so a multi-rune Word/Number token can be
// split and have its remainder pushed back onto the stream.
type tokStream struct {
	sc  *scanner
	buf []token.Token
	eof bool
}

func newTokStream(s string) *tokStream {
	return &tokStream{sc: newScanner(strings.NewReader(s))}
}

func (t *tokStream) fill() {
	if len(t.buf) > 0 || t.eof {
		return
	}
	if t.sc.Next() {
		t.buf = append(t.buf, t.sc.Token())
	} else {
		t.eof = true
	}
}

func (t *tokStream) peek() (token.Token, bool) {
	t.fill()
	if len(t.buf) == 0 {
		return token.Token{}, false
	}
	return t.buf[0], true
}

func (t *tokStream) next() (token.Token, bool) {
	tok, ok := t.peek()
	if ok {
		t.buf = t.buf[1:]
	}
	return tok, ok
}

func (t *tokStream) pushFront(tok token.Token) {
	t.buf = append([]token.Token{tok}, t.buf...)
}
