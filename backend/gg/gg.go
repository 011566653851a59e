// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gg implements a backend.Backend on top of git.sr.ht/~sbinet/gg,
// painting into an image.Image. True glyph rasterization is out of scope
// for this module (see spec.md §1): each glyph is painted as a filled
// rectangle covering its ink bounding box, a visible placeholder rather
// than a faithful rendering of the character; filled rules (fraction
// bars, radical vinculum) are painted exactly since they are themselves
// rectangles.
package gg // import "github.com/go-latex/mathtext/backend/gg"

import (
	"image"
	"image/color"

	"git.sr.ht/~sbinet/gg"

	"github.com/go-latex/mathtext/internal/latex/tex"
)

// Backend paints onto a *gg.Context sized at construction time.
type Backend struct {
	dc        *gg.Context
	GlyphFill color.Color
	RuleFill  color.Color
}

// New returns a Backend painting into a width×height canvas, initially
// cleared to white.
func New(width, height int) *Backend {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	return &Backend{
		dc:        dc,
		GlyphFill: color.Black,
		RuleFill:  color.Black,
	}
}

// Image returns the rendered canvas.
func (b *Backend) Image() image.Image { return b.dc.Image() }

func (b *Backend) RenderGlyph(ox, oy float64, glyph tex.Glyph) {
	m := glyph.Metrics
	x1, y1 := ox+m.Xmin, oy-m.Ymax
	w, h := m.Xmax-m.Xmin, m.Ymax-m.Ymin
	if w <= 0 || h <= 0 {
		return
	}
	b.dc.SetColor(b.GlyphFill)
	b.dc.DrawRectangle(x1, y1, w, h)
	b.dc.Fill()
}

func (b *Backend) RenderRectFilled(x1, y1, x2, y2 float64) {
	w, h := x2-x1, y2-y1
	if w <= 0 || h <= 0 {
		return
	}
	b.dc.SetColor(b.RuleFill)
	b.dc.DrawRectangle(x1, y1, w, h)
	b.dc.Fill()
}

var _ interface {
	RenderGlyph(ox, oy float64, glyph tex.Glyph)
	RenderRectFilled(x1, y1, x2, y2 float64)
} = (*Backend)(nil)
