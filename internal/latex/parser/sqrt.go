// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"github.com/go-latex/mathtext/internal/latex/tex"
	"github.com/go-latex/mathtext/internal/latex/token"
)

// sqrt parses \sqrt{...}. An optional bracketed root index (\sqrt[3]{...})
// must be "simple" — a bare run of symbols, following mathtext.py's
// grammar `Optional('[' + OneOrMore(c_over_c | symbol) ^ font + ']')` —
// anything nested (a brace or bracket group inside the index) is a
// parse error, matching Parser.sqrt's "Can not parse root of radical.
// Only simple symbols are allowed in the root." Once validated, the
// index is discarded: this module does not draw the superscript root
// index, only the plain radical (see DESIGN.md).
//
// The radical glyph is grown with AutoHeightChar to cover the argument's
// height and depth plus clearance for the vinculum, following
// mathtext.py's Parser.sqrt.
func (p *Parser) sqrt() (tex.Node, error) {
	if tok, ok := p.sc.peek(); ok && tok.Kind == token.Lbrack {
		p.sc.next()
		n := 0
		for {
			t, ok := p.sc.next()
			if !ok {
				return nil, p.errorf(t, `unterminated root index in \sqrt[...]`)
			}
			if t.Kind == token.Rbrack {
				break
			}
			if t.Kind == token.Lbrace || t.Kind == token.Rbrace || t.Kind == token.Lbrack {
				return nil, p.errorf(t, `non-simple root index in \sqrt[...]: only simple symbols are allowed in the root`)
			}
			n++
		}
		if n == 0 {
			return nil, p.errorf(tok, `non-simple root index in \sqrt[...]: only simple symbols are allowed in the root`)
		}
	}

	arg, err := p.requireGroup("sqrt")
	if err != nil {
		return nil, err
	}
	argHL := wrapHList(arg, p.relayWarn)

	thickness := p.state.UnderlineThickness()
	target := argHL.Height() + argHL.Depth() + thickness*5

	radical, err := tex.AutoHeightChar(`\__sqrt__`, target, 0, p.state, false)
	if err != nil {
		return nil, err
	}

	rule := tex.NewHRule(p.state, thickness)
	padded := tex.VListOf([]tex.Node{
		rule,
		tex.NewKern(thickness * 3),
		argHL,
	}, p.relayWarn)

	return tex.HListOf([]tex.Node{radical, padded}, false, p.relayWarn), nil
}
