// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svg implements a backend.Backend that streams SVG markup using
// github.com/ajstarks/svgo. Like backend/gg, it paints glyph ink boxes as
// filled rectangles rather than true glyph outlines; rules (fraction
// bars, radical vinculum) are painted as the rectangles they are.
package svg // import "github.com/go-latex/mathtext/backend/svg"

import (
	"io"

	"github.com/ajstarks/svgo"

	"github.com/go-latex/mathtext/internal/latex/tex"
)

// Backend streams an SVG document to an io.Writer as draw calls arrive.
// Close must be called once shipping is complete to emit the closing tag.
type Backend struct {
	canvas *svg.SVG
	closed bool

	GlyphFill string
	RuleFill  string
}

// New returns a Backend that writes an SVG document of the given pixel
// dimensions to w. The document's opening tag is emitted immediately.
func New(w io.Writer, width, height int) *Backend {
	canvas := svg.New(w)
	canvas.Start(width, height)
	return &Backend{
		canvas:    canvas,
		GlyphFill: "fill:black",
		RuleFill:  "fill:black",
	}
}

func (b *Backend) RenderGlyph(ox, oy float64, glyph tex.Glyph) {
	m := glyph.Metrics
	x, y := ox+m.Xmin, oy-m.Ymax
	w, h := m.Xmax-m.Xmin, m.Ymax-m.Ymin
	if w <= 0 || h <= 0 {
		return
	}
	b.canvas.Rect(int(x), int(y), int(w), int(h), b.GlyphFill)
}

func (b *Backend) RenderRectFilled(x1, y1, x2, y2 float64) {
	w, h := x2-x1, y2-y1
	if w <= 0 || h <= 0 {
		return
	}
	b.canvas.Rect(int(x1), int(y1), int(w), int(h), b.RuleFill)
}

// Close emits the closing "</svg>" tag. It is safe to call more than once.
func (b *Backend) Close() {
	if b.closed {
		return
	}
	b.canvas.End()
	b.closed = true
}

var _ interface {
	RenderGlyph(ox, oy float64, glyph tex.Glyph)
	RenderRectFilled(x1, y1, x2, y2 float64)
} = (*Backend)(nil)
