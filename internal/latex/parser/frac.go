// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"github.com/go-latex/mathtext/internal/latex/tex"
	"github.com/go-latex/mathtext/internal/latex/token"
)

// frac parses \frac{num}{den} (and treats \dfrac, \tfrac identically,
// since this module does not model TeX's displaystyle/textstyle
// distinction), building a Vlist with the numerator centered above a
// horizontal rule above the denominator, following mathtext.py's
// Parser._genfrac.
func (p *Parser) frac() (tex.Node, error) {
	if tok, ok := p.sc.peek(); !ok || tok.Kind != token.Lbrace {
		return nil, p.errorf(tok, `Expected \frac{num}{den}`)
	}
	num, err := p.requireGroup("frac")
	if err != nil {
		return nil, err
	}
	if tok, ok := p.sc.peek(); !ok || tok.Kind != token.Lbrace {
		return nil, p.errorf(tok, `Expected \frac{num}{den}`)
	}
	den, err := p.requireGroup("frac")
	if err != nil {
		return nil, err
	}

	st := p.state
	thickness := st.UnderlineThickness()
	xheight, err := st.XHeight()
	if err != nil {
		xheight = 0
	}

	numHL := wrapHList(num, p.relayWarn)
	denHL := wrapHList(den, p.relayWarn)

	// Both sides of a fraction shrink one level, same as sub/superscripts
	// do, following mathtext.py's Parser._genfrac.
	numHL.Shrink()
	denHL.Shrink()

	target := numHL.Width()
	if denHL.Width() > target {
		target = denHL.Width()
	}
	target += 10 * thickness

	numCentered := tex.HListTo(target, []tex.Node{tex.NewGlue("ss"), numHL, tex.NewGlue("ss")}, false, p.relayWarn)
	denCentered := tex.HListTo(target, []tex.Node{tex.NewGlue("ss"), denHL, tex.NewGlue("ss")}, false, p.relayWarn)
	rule := tex.NewHRule(st, thickness)

	clr := 3 * thickness
	vlist := tex.VListOf([]tex.Node{
		numCentered,
		tex.NewKern(clr),
		rule,
		tex.NewKern(clr),
		denCentered,
	}, p.relayWarn)

	// Center the stack on the font's math axis (roughly the x-height
	// midpoint), matching where the vinculum of a fraction should sit
	// relative to the surrounding baseline.
	vlist.SetShift((vlist.Height()-vlist.Depth())/2 - xheight/2)

	return tex.HListOf([]tex.Node{vlist}, false, p.relayWarn), nil
}

// requireGroup parses a brace-delimited group, as macros with mandatory
// arguments (\frac's two, \sqrt's one) require in mathtext.py.
func (p *Parser) requireGroup(macro string) (tex.Node, error) {
	tok, ok := p.sc.peek()
	if !ok || tok.Kind != token.Lbrace {
		return nil, p.errorf(tok, `expected '{' for argument of \%s`, macro)
	}
	return p.group()
}
