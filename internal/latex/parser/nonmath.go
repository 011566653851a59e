// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"strings"

	"github.com/go-latex/mathtext/internal/latex/ast"
	"github.com/go-latex/mathtext/internal/latex/tex"
	"github.com/go-latex/mathtext/internal/latex/token"
)

// textFontMacros are the text-mode (as opposed to math-mode \math...)
// font-switching macros recognized inside a non-math run, e.g.
// "hello \textbf{world} $x$".
var textFontMacros = map[string]string{
	"textrm": "rm", "textit": "it", "textbf": "bf", "texttt": "tt", "textsf": "sf",
}

// parseNonMathRun consumes tokens up to (but not including) the next
// unescaped '$' or end of input. It builds a small ast.List of literal
// runs and recognized font-switch macros, then lowers that AST into Char
// nodes under the current (non-math) state. This is the one place the
// retained internal/latex/ast package is exercised: it models exactly the
// piece of the grammar it fits (text runs with \textbf-style macros), not
// a unified math+text tree.
func (p *Parser) parseNonMathRun() ([]tex.Node, error) {
	nodes, err := p.buildNonMathAST()
	if err != nil {
		return nil, err
	}
	return p.lowerNonMathAST(nodes, p.state)
}

func (p *Parser) buildNonMathAST() (ast.List, error) {
	var out ast.List
	for {
		tok, ok := p.sc.peek()
		if !ok || tok.Kind == token.Dollar {
			break
		}

		if tok.Kind != token.Macro {
			p.sc.next()
			out = append(out, &ast.Literal{LitPos: tok.Pos, Text: tok.Text})
			continue
		}

		p.sc.next()
		name := strings.TrimPrefix(tok.Text, `\`)
		if _, ok := textFontMacros[name]; !ok {
			// Not a recognized text macro: keep its literal spelling,
			// e.g. an escaped special character like "\%" or "\$".
			out = append(out, &ast.Literal{LitPos: tok.Pos, Text: tok.Text})
			continue
		}

		argTok, ok := p.sc.peek()
		if !ok || argTok.Kind != token.Lbrace {
			return nil, p.errorf(argTok, `expected '{' after \%s`, name)
		}
		p.sc.next()

		arg := &ast.Arg{Lbrace: argTok.Pos}
		for {
			t, ok := p.sc.peek()
			if !ok {
				return nil, p.errorf(t, "unterminated group (missing '}')")
			}
			if t.Kind == token.Rbrace {
				p.sc.next()
				arg.Rbrace = t.Pos
				break
			}
			if t.Kind == token.Dollar {
				return nil, p.errorf(t, "math mode not allowed inside a text macro argument")
			}
			p.sc.next()
			arg.List = append(arg.List, &ast.Literal{LitPos: t.Pos, Text: t.Text})
		}
		out = append(out, &ast.Macro{
			Name: ast.Ident{NamePos: tok.Pos, Name: name},
			Args: []ast.Node{arg},
		})
	}
	return out, nil
}

// lowerNonMathAST walks the AST built by buildNonMathAST and produces Char
// (and Kern, for whitespace) nodes under the given state.
func (p *Parser) lowerNonMathAST(nodes ast.List, state tex.State) ([]tex.Node, error) {
	var out []tex.Node
	for _, n := range nodes {
		switch n := n.(type) {
		case *ast.Literal:
			for _, r := range n.Text {
				if r == ' ' || r == '\t' || r == '\n' {
					out = append(out, tex.NewKern(state.Size/3))
					continue
				}
				ch, err := tex.NewChar(string(r), state)
				if err != nil {
					return nil, err
				}
				out = append(out, ch)
			}
		case *ast.Macro:
			role, ok := textFontMacros[n.Name.Name]
			if !ok {
				continue
			}
			st := state
			st.Font = role
			arg := n.Args[0].(*ast.Arg)
			inner, err := p.lowerNonMathAST(ast.List(arg.List), st)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
		}
	}
	return out, nil
}
