// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend_test

import (
	"testing"

	"github.com/go-latex/mathtext/backend"
	"github.com/go-latex/mathtext/backend/record"
	"github.com/go-latex/mathtext/internal/latex/tex"
)

func TestBBoxPrepassShrinksToInk(t *testing.T) {
	wrapped := record.New()
	prepass := backend.NewBBoxPrepass(wrapped)

	prepass.RenderRectFilled(10, 20, 30, 25)
	prepass.RenderGlyph(5, 5, tex.Glyph{
		Metrics: tex.Metrics{Xmin: 0, Xmax: 4, Ymin: -2, Ymax: 6},
	})

	width, height := prepass.Bounds()
	// ink spans x in [5, 30], y in [-1, 25] (glyph Ymax=6 -> oy-Ymax=-1,
	// glyph Ymin=-2 -> oy-Ymin=7); expanded by 1 unit each side.
	if width <= 0 || height <= 0 {
		t.Fatalf("Bounds() = (%v, %v), want positive dimensions", width, height)
	}

	prepass.Replay()
	if len(wrapped.Rects) != 1 {
		t.Errorf("Replay() issued %d rects, want 1", len(wrapped.Rects))
	}
	if len(wrapped.Glyphs) != 1 {
		t.Errorf("Replay() issued %d glyphs, want 1", len(wrapped.Glyphs))
	}

	// Recompute the ink bounding box over the replayed calls: its top-left
	// corner must land at the 1-unit margin, i.e. (1, 1).
	r := wrapped.Rects[0]
	g := wrapped.Glyphs[0]
	minX := r.X1
	minY := r.Y1
	if x := g.OX + g.Metrics.Xmin; x < minX {
		minX = x
	}
	if y := g.OY - g.Metrics.Ymax; y < minY {
		minY = y
	}
	if minX != 1 || minY != 1 {
		t.Errorf("replayed ink origin = (%v, %v), want (1, 1)", minX, minY)
	}
}

func TestBBoxPrepassEmptyBoundsAreZero(t *testing.T) {
	prepass := backend.NewBBoxPrepass(record.New())
	width, height := prepass.Bounds()
	if width != 0 || height != 0 {
		t.Errorf("Bounds() on an empty prepass = (%v, %v), want (0, 0)", width, height)
	}
}

func TestBBoxPrepassReplayIsNoopWithoutWrapped(t *testing.T) {
	prepass := backend.NewBBoxPrepass(nil)
	prepass.RenderRectFilled(0, 0, 1, 1)
	// Must not panic.
	prepass.Replay()
}
