// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"math"

	"github.com/go-latex/mathtext/internal/latex/tex"
)

// dims is satisfied by the node kinds whose box dimensions the script and
// fraction layout need (tex.Char, tex.HList, tex.Accent); bare Node values
// that don't implement it (e.g. tex.Kern) are treated as zero-sized.
type dims interface {
	Width() float64
	Height() float64
	Depth() float64
}

func dimsOf(n tex.Node) (w, h, d float64) {
	if v, ok := n.(dims); ok {
		return v.Width(), v.Height(), v.Depth()
	}
	return 0, 0, 0
}

// wrapHList returns n itself if it is already an *tex.HList, otherwise
// packs it into a singleton one so callers can always call Height/Depth/
// SetShift on the result.
func wrapHList(n tex.Node, warn func(string)) *tex.HList {
	if hl, ok := n.(*tex.HList); ok {
		return hl
	}
	return tex.HListOf([]tex.Node{n}, false, warn)
}

// attachScript builds the inline sub/superscript cluster for nucleus,
// following mathtext.py's Parser._make_sub_super: the script boxes are
// stacked in a Vlist shifted up/down from the nucleus's baseline by an
// amount derived from FontConstants and the font's x-height, with the
// two-script case additionally enforcing a minimum vertical gap between
// the superscript's ink and the subscript's ink.
func (p *Parser) attachScript(nucleus, sub, super tex.Node, state tex.State) (tex.Node, error) {
	fc := tex.DefaultFontConstants
	xheight, err := state.XHeight()
	if err != nil {
		xheight = 0
	}

	_, nh, nd := dimsOf(nucleus)
	shiftUp := nh - fc.SubDrop*xheight
	shiftDown := nd + fc.SubDrop*xheight

	var vlist *tex.VList
	switch {
	case sub != nil && super == nil:
		subHL := wrapHList(sub, p.relayWarn)
		shiftDown = math.Max(shiftDown, fc.Sub1*xheight)
		if clr := subHL.Height() - math.Abs(0.8*xheight); clr > shiftDown {
			shiftDown = clr
		}
		vlist = tex.VListOf([]tex.Node{subHL}, p.relayWarn)
		vlist.SetShift(shiftDown)

	case sub == nil && super != nil:
		superHL := wrapHList(super, p.relayWarn)
		shiftUp = math.Max(shiftUp, fc.Sup1*xheight)
		if clr := superHL.Depth() + math.Abs(0.25*xheight); clr > shiftUp {
			shiftUp = clr
		}
		vlist = tex.VListOf([]tex.Node{superHL}, p.relayWarn)
		vlist.SetShift(-shiftUp)

	default:
		subHL := wrapHList(sub, p.relayWarn)
		superHL := wrapHList(super, p.relayWarn)
		shiftUp = math.Max(shiftUp, fc.Sup1*xheight)
		shiftDown = math.Max(shiftDown, fc.Sub2*xheight)
		minGap := 4 * state.UnderlineThickness()

		gap := (shiftUp - superHL.Depth()) - (subHL.Height() - shiftDown)
		if gap < minGap {
			diff := minGap - gap
			shiftUp += diff / 2
			shiftDown += diff / 2
			gap = minGap
		}
		// The VList's baseline is the subscript's, so shifting it down by
		// shiftDown leaves the superscript's baseline shiftUp above the
		// nucleus's.
		vlist = tex.VListOf([]tex.Node{superHL, tex.NewKern(gap), subHL}, p.relayWarn)
		vlist.SetShift(shiftDown)
	}

	spacer := tex.NewKern(fc.ScriptSpace * xheight)
	hl := tex.HListOf([]tex.Node{nucleus, vlist, spacer}, false, p.relayWarn)
	return tex.NewSubSuperCluster(nucleus, sub, super, hl), nil
}

// attachOverUnder builds the stacked limits display used by big operators
// (\sum, \prod, ...) and the over/under subset of named functions (\lim,
// \max, ...), following mathtext.py's Parser._make_sub_super over/under
// branch: the superscript is centered above the nucleus, the subscript
// centered below, separated by a small fixed gap.
func (p *Parser) attachOverUnder(nucleus, sub, super tex.Node) (tex.Node, error) {
	nucHL := wrapHList(nucleus, p.relayWarn)
	gap := tex.NewKern(p.state.Size * 0.1)

	width := nucHL.Width()
	for _, n := range []tex.Node{sub, super} {
		if n != nil {
			width = math.Max(width, wrapHList(n, p.relayWarn).Width())
		}
	}
	center := func(n tex.Node) tex.Node {
		return tex.HListTo(width, []tex.Node{tex.NewGlue("ss"), wrapHList(n, p.relayWarn), tex.NewGlue("ss")}, false, p.relayWarn)
	}

	var rows []tex.Node
	if super != nil {
		rows = append(rows, center(super), gap)
	}
	rows = append(rows, center(nucHL))
	if sub != nil {
		rows = append(rows, gap, center(sub))
	}

	vlist := tex.VListOf(rows, p.relayWarn)
	hl := tex.HListOf([]tex.Node{vlist}, false, p.relayWarn)
	return tex.NewSubSuperCluster(nucleus, sub, super, hl), nil
}

// isOverUnder reports whether nucleus should take its scripts as over/under
// limits rather than inline sub/superscripts.
func (p *Parser) isOverUnder(n tex.Node) bool {
	switch v := n.(type) {
	case *tex.HList:
		return overUnderFunctions[v.FunctionName]
	case *tex.Char:
		return overUnderSymbols[v.String()]
	default:
		return false
	}
}
