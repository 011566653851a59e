// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package backend defines the drawing surface internal/latex/tex.Ship
// issues its draw calls into, and a bounding-box pre-pass wrapper that
// tightens an arbitrary Backend to the ink it actually receives.
package backend // import "github.com/go-latex/mathtext/backend"

import "github.com/go-latex/mathtext/internal/latex/tex"

// Backend is the abstract output sink a laid-out formula is shipped to.
// Real rendering (rasterization, vector emission) lives in a concrete
// implementation of this interface outside this module's core; three
// sub-packages of this package provide one each: record (an in-memory
// recorder used by tests and by BBoxPrepass), gg (a
// git.sr.ht/~sbinet/gg-backed renderer) and svg.
type Backend interface {
	RenderGlyph(ox, oy float64, glyph tex.Glyph)
	RenderRectFilled(x1, y1, x2, y2 float64)
}

// glyphCall and rectCall record a single draw call, used by BBoxPrepass to
// track ink extrema and replay them against the wrapped backend.
type glyphCall struct {
	ox, oy float64
	glyph  tex.Glyph
}

type rectCall struct {
	x1, y1, x2, y2 float64
}

// BBoxPrepass wraps a Backend and, on its first pass (Prepass), records
// every draw call without forwarding them, computing the ink bounding box
// (expanded by one unit on each side, as mathtext.py's
// MathtextBackendBbox does). Call Bounds to retrieve it, then Replay to
// re-issue every recorded call shifted so that box's origin lands at
// (0, 0) against the wrapped Backend.
type BBoxPrepass struct {
	Wrapped Backend

	glyphs []glyphCall
	rects  []rectCall

	minX, minY, maxX, maxY float64
	empty                  bool
}

// NewBBoxPrepass returns a BBoxPrepass recording into a fresh pass; call
// it once per shipped formula.
func NewBBoxPrepass(wrapped Backend) *BBoxPrepass {
	return &BBoxPrepass{Wrapped: wrapped, empty: true}
}

func (b *BBoxPrepass) expand(x1, y1, x2, y2 float64) {
	if b.empty {
		b.minX, b.minY, b.maxX, b.maxY = x1, y1, x2, y2
		b.empty = false
		return
	}
	if x1 < b.minX {
		b.minX = x1
	}
	if y1 < b.minY {
		b.minY = y1
	}
	if x2 > b.maxX {
		b.maxX = x2
	}
	if y2 > b.maxY {
		b.maxY = y2
	}
}

func (b *BBoxPrepass) RenderGlyph(ox, oy float64, glyph tex.Glyph) {
	b.glyphs = append(b.glyphs, glyphCall{ox: ox, oy: oy, glyph: glyph})
	m := glyph.Metrics
	b.expand(ox+m.Xmin, oy-m.Ymax, ox+m.Xmax, oy-m.Ymin)
}

func (b *BBoxPrepass) RenderRectFilled(x1, y1, x2, y2 float64) {
	b.rects = append(b.rects, rectCall{x1: x1, y1: y1, x2: x2, y2: y2})
	b.expand(x1, y1, x2, y2)
}

// Bounds returns the recorded ink bounding box, expanded by one unit on
// each side. It is only meaningful after a prepass has recorded at least
// one draw call.
func (b *BBoxPrepass) Bounds() (width, height float64) {
	if b.empty {
		return 0, 0
	}
	return b.maxX - b.minX + 2, b.maxY - b.minY + 2
}

// Replay re-issues every recorded draw call against Wrapped, shifted so
// the ink bounding box's top-left corner (minus the one-unit margin)
// lands at (0, 0).
func (b *BBoxPrepass) Replay() {
	if b.Wrapped == nil {
		return
	}
	dx, dy := 1-b.minX, 1-b.minY
	for _, g := range b.glyphs {
		b.Wrapped.RenderGlyph(g.ox+dx, g.oy+dy, g.glyph)
	}
	for _, r := range b.rects {
		b.Wrapped.RenderRectFilled(r.x1+dx, r.y1+dy, r.x2+dx, r.y2+dy)
	}
}

var _ Backend = (*BBoxPrepass)(nil)
