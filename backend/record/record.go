// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package record implements an in-memory backend.Backend that records
// every draw call verbatim, for use by this module's own tests and by
// backend.BBoxPrepass.
package record // import "github.com/go-latex/mathtext/backend/record"

import "github.com/go-latex/mathtext/internal/latex/tex"

// Glyph is one recorded RenderGlyph call.
type Glyph struct {
	OX, OY float64
	tex.Glyph
}

// Rect is one recorded RenderRectFilled call.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Backend records glyph and rect draw calls in the order they are issued.
type Backend struct {
	Glyphs []Glyph
	Rects  []Rect
}

// New returns an empty recording Backend.
func New() *Backend { return &Backend{} }

func (b *Backend) RenderGlyph(ox, oy float64, glyph tex.Glyph) {
	b.Glyphs = append(b.Glyphs, Glyph{OX: ox, OY: oy, Glyph: glyph})
}

func (b *Backend) RenderRectFilled(x1, y1, x2, y2 float64) {
	b.Rects = append(b.Rects, Rect{X1: x1, Y1: y1, X2: x2, Y2: y2})
}

// Reset discards all recorded calls so the Backend can be reused for
// another formula.
func (b *Backend) Reset() {
	b.Glyphs = b.Glyphs[:0]
	b.Rects = b.Rects[:0]
}
