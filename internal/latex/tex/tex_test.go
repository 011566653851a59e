// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tex

import (
	"math"
	"testing"
)

// fakeFonts is a minimal FontMetricer standing in for *mtfont.Fonts: every
// symbol is a 10x8x2 (width/height/depth) box with no kerning, so layout
// arithmetic can be checked without real glyph data.
type fakeFonts struct{}

func (fakeFonts) Metrics(font, symbol string, fontsize, dpi float64) (Metrics, error) {
	scale := fontsize / 10
	return Metrics{
		Advance: 10 * scale,
		Width:   10 * scale,
		Height:  10 * scale,
		Iceberg: 8 * scale,
		Xmin:    0,
		Xmax:    10 * scale,
		Ymin:    -2 * scale,
		Ymax:    8 * scale,
	}, nil
}

func (fakeFonts) Kern(font1, sym1 string, size1 float64, font2, sym2 string, size2, dpi float64) float64 {
	return 0
}

func (fakeFonts) UnderlineThickness(font string, fontsize, dpi float64) float64 {
	return fontsize / 20
}

func (fakeFonts) XHeight(font string, fontsize, dpi float64) (float64, error) {
	return fontsize / 2, nil
}

// recorder is a minimal backend recording every draw call, used to check
// Ship actually reaches every Char in a tree.
type recorder struct {
	glyphs int
	rects  int
}

func (r *recorder) RenderGlyph(ox, oy float64, glyph Glyph) { r.glyphs++ }
func (r *recorder) RenderRectFilled(x1, y1, x2, y2 float64) { r.rects++ }

func newTestState(out *recorder) State {
	return State{Fonts: fakeFonts{}, Out: out, Font: "rm", Size: 10, DPI: 100}
}

func TestCharMetrics(t *testing.T) {
	st := newTestState(nil)
	c, err := NewChar("x", st)
	if err != nil {
		t.Fatalf("NewChar: %v", err)
	}
	if c.Width() != 10 {
		t.Errorf("Width() = %v, want 10", c.Width())
	}
	if c.Height() != 8 {
		t.Errorf("Height() = %v, want 8", c.Height())
	}
	if c.Depth() != 2 {
		t.Errorf("Depth() = %v, want 2", c.Depth())
	}
}

func TestHListOfPacksWidth(t *testing.T) {
	st := newTestState(nil)
	var nodes []Node
	for i := 0; i < 3; i++ {
		c, err := NewChar("x", st)
		if err != nil {
			t.Fatalf("NewChar: %v", err)
		}
		nodes = append(nodes, c)
	}
	hl := HListOf(nodes, false, nil)
	if got, want := hl.Width(), 30.0; got != want {
		t.Errorf("HList width = %v, want %v", got, want)
	}
	if got, want := hl.Height(), 8.0; got != want {
		t.Errorf("HList height = %v, want %v", got, want)
	}
	if got, want := hl.Depth(), 2.0; got != want {
		t.Errorf("HList depth = %v, want %v", got, want)
	}
}

func TestHListOfIdempotentOnSingleElement(t *testing.T) {
	// Packing a list twice (as HCentered composes with HListOf) must not
	// change an already-natural-sized box's dimensions.
	st := newTestState(nil)
	c, err := NewChar("x", st)
	if err != nil {
		t.Fatalf("NewChar: %v", err)
	}
	hl1 := HListOf([]Node{c}, false, nil)
	w1, h1, d1 := hl1.Width(), hl1.Height(), hl1.Depth()

	c2, err := NewChar("x", st)
	if err != nil {
		t.Fatalf("NewChar: %v", err)
	}
	hl2 := HListOf([]Node{HListOf([]Node{c2}, false, nil)}, false, nil)
	if hl2.Width() != w1 || hl2.Height() != h1 || hl2.Depth() != d1 {
		t.Errorf("re-packing changed dims: got (%v,%v,%v), want (%v,%v,%v)",
			hl2.Width(), hl2.Height(), hl2.Depth(), w1, h1, d1)
	}
}

func TestBoxShrinkMonotonic(t *testing.T) {
	st := newTestState(nil)
	c, err := NewChar("x", st)
	if err != nil {
		t.Fatalf("NewChar: %v", err)
	}
	w0 := c.Width()
	c.Shrink()
	if c.Width() >= w0 {
		t.Errorf("Shrink() did not reduce width: %v -> %v", w0, c.Width())
	}
	w1 := c.Width()
	c.Grow()
	if math.Abs(c.Width()-w0) > 1e-9 {
		t.Errorf("Grow() did not undo Shrink(): got %v, want ~%v (was %v)", c.Width(), w0, w1)
	}
}

func TestShipVisitsEveryChar(t *testing.T) {
	rec := &recorder{}
	st := newTestState(rec)
	var nodes []Node
	for i := 0; i < 4; i++ {
		c, err := NewChar("x", st)
		if err != nil {
			t.Fatalf("NewChar: %v", err)
		}
		nodes = append(nodes, c)
	}
	hl := HListOf(nodes, false, nil)

	var s Ship
	s.Call(0, 0, hl)
	if rec.glyphs != 4 {
		t.Errorf("Ship visited %d glyphs, want 4", rec.glyphs)
	}
}

func TestNewRuleRendersRect(t *testing.T) {
	// An HRule's width is a running dimension resolved against its
	// enclosing box, so it must sit inside a VList (as frac's bar does)
	// rather than directly inside a bare HList to actually paint.
	rec := &recorder{}
	st := newTestState(rec)
	c, err := NewChar("x", st)
	if err != nil {
		t.Fatalf("NewChar: %v", err)
	}
	rule := NewHRule(st, 1)
	vl := VListOf([]Node{HListOf([]Node{c}, false, nil), rule}, nil)
	hl := HListOf([]Node{vl}, false, nil)

	var s Ship
	s.Call(0, 0, hl)
	if rec.rects != 1 {
		t.Errorf("Ship issued %d rects for one HRule, want 1", rec.rects)
	}
}

func TestAccentDims(t *testing.T) {
	st := newTestState(nil)
	acc, err := NewAccent("^", st)
	if err != nil {
		t.Fatalf("NewAccent: %v", err)
	}
	// Unlike Char, an Accent's height spans its full glyph box (Ymax-Ymin)
	// and it carries no depth: an accent mark sits entirely above the
	// baseline it is shifted onto.
	if acc.Width() != 10 || acc.Height() != 10 || acc.Depth() != 0 {
		t.Errorf("Accent dims = (%v,%v,%v), want (10,10,0)", acc.Width(), acc.Height(), acc.Depth())
	}
}

func TestGlueConservationOnExactWidth(t *testing.T) {
	st := newTestState(nil)
	c, err := NewChar("x", st)
	if err != nil {
		t.Fatalf("NewChar: %v", err)
	}
	// Packing to exactly the natural width should need no glue stretch.
	hl := HListOf([]Node{c}, false, nil)
	if hl.GlueSet() != 0 {
		t.Errorf("GlueSet() = %v for an unstretched list, want 0", hl.GlueSet())
	}
}
