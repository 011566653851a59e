// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tex provides a TeX-like box model.
//
// The following is based directly on the document 'woven' from the
// TeX82 source code.  This information is also available in printed
// form:
//
//    Knuth, Donald E.. 1986.  Computers and Typesetting, Volume B:
//    TeX: The Program.  Addison-Wesley Professional.
//
// The most relevant "chapters" are:
//    Data structures for boxes and their friends
//    Shipping pages out (Ship class)
//    Packaging (hpack and vpack)
//    Data structures for math mode
//    Subroutines for math mode
//    Typesetting math formulas
//
// Many of the docstrings below refer to a numbered "node" in that
// book, e.g., node123
//
// Note that (as TeX) y increases downward.
package tex

import (
	"fmt"
	"math"
)

const (
	// How much text shrinks when going to the next-smallest level.  GROW_FACTOR
	// must be the inverse of SHRINK_FACTOR.
	SHRINK_FACTOR = 0.7
	GROW_FACTOR   = 1.0 / SHRINK_FACTOR

	// The number of different sizes of chars to use, beyond which they will not
	// get any smaller
	NUM_SIZE_LEVELS = 4
)

// FontConstants is a set of magical values that control how certain things,
// such as sub- and superscripts are laid out.
// These are all metrics that can't be reliably retreived from the font metrics
// in the font itself.
type FontConstants struct {
	// Percentage of x-height of additional horiz. space after sub/superscripts
	ScriptSpace float64 // = 0.2

	// Percentage of x-height that sub/superscripts drop below the baseline
	SubDrop float64 // = 0.3

	// Percentage of x-height that superscripts are raised from the baseline
	Sup1 float64 // = 0.7

	// Percentage of x-height that subscripts drop below the baseline
	Sub1 float64 // = 0.0

	// Percentage of x-height that subscripts drop below the baseline when a
	// superscript is present
	Sub2 float64 // = 0.5

	// Percentage of x-height that sub/supercripts are offset relative to the
	// nucleus edge for non-slanted nuclei
	Delta float64 // = 0.18

	// Additional percentage of last character height above 2/3 of the
	// x-height that supercripts are offset relative to the subscript
	// for slanted nuclei
	DeltaSlanted float64 // = 0.2

	// Percentage of x-height that supercripts and subscripts are offset for
	// integrals
	DeltaIntegral float64 // = 0.1
}

// DefaultFontConstants are the Knuth-derived constants used when a font
// backend does not override them. The values come from TeX's plain.tex
// and are not meant to be tuned per-font.
var DefaultFontConstants = FontConstants{
	ScriptSpace:   0.2,
	SubDrop:       0.3,
	Sup1:          0.7,
	Sub1:          0.0,
	Sub2:          0.5,
	Delta:         0.18,
	DeltaSlanted:  0.2,
	DeltaIntegral: 0.1,
}

// Glyph carries everything a Backend needs to draw a single character.
type Glyph struct {
	Font     string
	FontSize float64
	DPI      float64
	Symbol   string
	Metrics  Metrics
}

// Metrics is the set of dimensions the font layer reports for a symbol,
// expressed in points (already scaled by fontsize/dpi).
type Metrics struct {
	Advance float64
	Height  float64
	Width   float64
	Xmin    float64
	Xmax    float64
	Ymin    float64
	Ymax    float64
	// Iceberg is the distance from the baseline to the top of the glyph's
	// ink (horiBearingY in TrueType parlance).
	Iceberg float64
	Slanted bool
}

// backend is the abstract output sink that Ship draws into. Real
// rendering (rasterization, PDF/PS/SVG emission) lives outside this
// package; RenderGlyph takes the resolved Glyph rather than a bare font
// handle so the backend never needs to re-derive metrics.
type backend interface {
	RenderGlyph(ox, oy float64, glyph Glyph)
	RenderRectFilled(x1, y1, x2, y2 float64)
}

// FontMetricer is the subset of the font layer the box model needs in
// order to size and kern Char nodes. It is implemented by the
// internal/mtfont package's Fonts type.
type FontMetricer interface {
	Metrics(font, symbol string, fontsize, dpi float64) (Metrics, error)
	Kern(font1, sym1 string, size1 float64, font2, sym2 string, size2 float64, dpi float64) float64
	UnderlineThickness(font string, fontsize, dpi float64) float64
	XHeight(font string, fontsize, dpi float64) (float64, error)
}

// State is the per-scope parsing/layout context: the active font role,
// font size and resolution, plus the font metrics provider and output
// backend used to size and render Char nodes. The parser pushes and pops
// copies of State at group and math-mode boundaries.
type State struct {
	Fonts   FontMetricer
	Out     backend
	Font    string
	Size    float64
	DPI     float64
	Math    bool
}

// Copy returns an independent copy of the state. Fonts and Out are
// process-lifetime resources shared by reference; Font/Size/DPI/Math are
// copied by value so that pushing and popping scopes never aliases them.
func (s State) Copy() State { return s }

func (s State) Backend() backend            { return s.Out }
func (s State) UnderlineThickness() float64 {
	return s.Fonts.UnderlineThickness(s.Font, s.Size, s.DPI)
}

// XHeight returns the height of a lowercase 'x' in the current font, used
// by the parser to scale sub/superscript and accent offsets.
func (s State) XHeight() (float64, error) {
	return s.Fonts.XHeight(s.Font, s.Size, s.DPI)
}

// Node represents a node in the TeX box model.
type Node interface {
	// Kerning returns the amount of kerning between this and the next node.
	Kerning(next Node) float64

	// Shrinks one level smaller.
	// There are only NUM_SIZE_LEVELS levels, after which things
	// will no longer get smaller.
	Shrink()

	// Grows one level larger.
	// There is no limit to how big something can get.
	Grow()

	// Render renders the node at (x,y) on the canvas.
	Render(x, y float64)
}

type hpacker interface {
	hpackDims(width, height, depth *float64, stretch, shrink []float64)
}

type vpacker interface {
	vpackDims(width, height, depth *float64, stretch, shrink []float64)
}

// Box is a node with a physical location
type Box struct {
	size   int
	width  float64
	height float64
	depth  float64
}

func (*Box) Kerning(next Node) float64 { return 0 }

func (box *Box) Shrink() {
	box.size++
	if box.size > NUM_SIZE_LEVELS {
		return
	}
	box.width *= SHRINK_FACTOR
	box.height *= SHRINK_FACTOR
	box.depth *= SHRINK_FACTOR
}

func (box *Box) Grow() {
	box.size--
	box.width *= GROW_FACTOR
	box.height *= GROW_FACTOR
	box.depth *= GROW_FACTOR
}

func (*Box) Render(x, y float64) {}

func (box *Box) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	*width += box.width
	if math.IsInf(box.height, 0) || math.IsInf(box.depth, 0) {
		return
	}
	*height = math.Max(*height, box.height)
	*depth = math.Max(*depth, box.depth)
}

func (box *Box) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	*height += *depth + box.height
	*depth = box.depth
	if math.IsInf(box.width, 0) {
		return
	}
	*width = math.Max(*width, box.width)
}

// VBox is a box with a height but no width.
type VBox struct {
	size   int
	height float64
	depth  float64
}

func NewVBox(height, depth float64) *VBox {
	return &VBox{height: height, depth: depth}
}

func (*VBox) Kerning(next Node) float64 { return 0 }

func (box *VBox) Shrink() {
	box.size++
	if box.size > NUM_SIZE_LEVELS {
		return
	}
	box.height *= SHRINK_FACTOR
	box.depth *= SHRINK_FACTOR
}

func (box *VBox) Grow() {
	box.size--
	box.height *= GROW_FACTOR
	box.depth *= GROW_FACTOR
}

func (*VBox) Render(x, y float64) {}

func (box *VBox) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	if math.IsInf(box.height, 0) || math.IsInf(box.depth, 0) {
		return
	}
	*height = math.Max(*height, box.height)
	*depth = math.Max(*depth, box.depth)
}

func (box *VBox) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	*height += *depth + box.height
	*depth = box.depth
	*width = math.Max(*width, 0)
}

// HBox is a box with a width but no height nor depth.
type HBox struct {
	size  int
	width float64
}

func NewHBox(width float64) *HBox {
	return &HBox{width: width}
}

func (*HBox) Kerning(next Node) float64 { return 0 }

func (box *HBox) Shrink() {
	box.size++
	if box.size > NUM_SIZE_LEVELS {
		return
	}
	box.width *= SHRINK_FACTOR
}

func (box *HBox) Grow() {
	box.size--
	box.width *= GROW_FACTOR
}

func (*HBox) Render(x, y float64) {}

func (box *HBox) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	*width += box.width
}

func (box *HBox) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	*height += *depth
	*depth = 0
	if math.IsInf(box.width, 0) {
		return
	}
	*width = math.Max(*width, box.width)
}

// Char is a single character.
//
// Unlike TeX, the font information and metrics are stored with each `Char`
// to make it easier to lookup the font metrics when needed.  Note that TeX
// boxes have a width, height, and depth, unlike Type1 and TrueType which use
// a full bounding box and an advance in the x-direction.  The metrics must
// be converted to the TeX model, and the advance (if different from width)
// must be converted into a `Kern` node when the `Char` is added to its parent
// `HList`.
type Char struct {
	C     string
	State State

	size    int
	width   float64
	height  float64
	depth   float64
	metrics Metrics
}

// NewChar constructs a Char for symbol c under the given state, deriving
// its metrics immediately.
func NewChar(c string, state State) (*Char, error) {
	ch := &Char{C: c, State: state}
	if err := ch.updateMetrics(); err != nil {
		return nil, err
	}
	return ch, nil
}

func (c Char) String() string { return c.C }

func (c *Char) Metrics() Metrics  { return c.metrics }
func (c *Char) Width() float64    { return c.width }
func (c *Char) Height() float64   { return c.height }
func (c *Char) Depth() float64    { return c.depth }
func (c *Char) IsSlanted() bool   { return c.metrics.Slanted }

func (c *Char) updateMetrics() error {
	metrics, err := c.State.Fonts.Metrics(c.State.Font, c.C, c.State.Size, c.State.DPI)
	if err != nil {
		return err
	}
	c.metrics = metrics
	if c.C == " " {
		c.width = metrics.Advance
	} else {
		c.width = metrics.Width
	}
	c.height = metrics.Iceberg
	c.depth = -metrics.Iceberg + metrics.Height
	return nil
}

func (c *Char) Kerning(next Node) float64 {
	advance := c.metrics.Advance - c.width
	nc, ok := next.(*Char)
	if !ok {
		return advance
	}
	return advance + c.State.Fonts.Kern(
		c.State.Font, c.C, c.State.Size,
		nc.State.Font, nc.C, nc.State.Size,
		c.State.DPI)
}

func (box *Char) Shrink() {
	box.size++
	if box.size > NUM_SIZE_LEVELS {
		return
	}
	box.State.Size *= SHRINK_FACTOR
	if err := box.updateMetrics(); err != nil {
		panic(err)
	}
}

func (box *Char) Grow() {
	box.size--
	box.State.Size *= GROW_FACTOR
	if err := box.updateMetrics(); err != nil {
		panic(err)
	}
}

func (c *Char) Render(x, y float64) {
	out := c.State.Backend()
	if out == nil {
		return
	}
	out.RenderGlyph(x, y, Glyph{
		Font:     c.State.Font,
		FontSize: c.State.Size,
		DPI:      c.State.DPI,
		Symbol:   c.C,
		Metrics:  c.metrics,
	})
}

func (c *Char) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	*width += c.width
	*height = math.Max(*height, c.height)
	*depth = math.Max(*depth, c.depth)
}

func (*Char) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	panic("tex: Char node in VList")
}

// Accent is a character with an accent.
// Accents need to be dealt with separately as they are already offset
// from the baseline in TrueType fonts.
type Accent struct {
	char Char
}

// NewAccent constructs an Accent for symbol c under the given state.
func NewAccent(c string, state State) (*Accent, error) {
	ch, err := NewChar(c, state)
	if err != nil {
		return nil, err
	}
	box := &Accent{char: *ch}
	box.updateMetrics()
	return box, nil
}

func (box *Accent) String() string            { return box.char.String() }
func (box *Accent) Kerning(next Node) float64 { return box.char.Kerning(next) }

func (box *Accent) Width() float64  { return box.char.width }
func (box *Accent) Height() float64 { return box.char.height }
func (box *Accent) Depth() float64  { return box.char.depth }

func (box *Accent) Shrink() {
	box.char.Shrink()
	box.updateMetrics()
}

func (box *Accent) Grow() {
	box.char.Grow()
	box.updateMetrics()
}

// updateMetrics recomputes width/height/depth from the glyph's ink
// bounding box rather than from the advance: accent glyphs already carry
// their own offset in the font, so the usual Char baseline math does not
// apply and depth is always zero.
func (box *Accent) updateMetrics() {
	m := box.char.metrics
	box.char.width = m.Xmax - m.Xmin
	box.char.height = m.Ymax - m.Ymin
	box.char.depth = 0
}

func (box *Accent) Render(x, y float64) {
	out := box.char.State.Backend()
	if out == nil {
		return
	}
	m := box.char.metrics
	out.RenderGlyph(x-m.Xmin, y+m.Ymin, Glyph{
		Font:     box.char.State.Font,
		FontSize: box.char.State.Size,
		DPI:      box.char.State.DPI,
		Symbol:   box.char.C,
		Metrics:  m,
	})
}

func (box *Accent) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	box.char.hpackDims(width, height, depth, stretch, shrink)
}

func (*Accent) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	panic("tex: Accent node in VList")
}

// List is a list of vertical or horizontal nodes.
type List struct {
	box      Box
	shift    float64 // shift is an arbitrary offset.
	children []Node  // children nodes of this list.
	warn     func(string)

	glue struct {
		set   float64 // glue setting of this list
		sign  int     // 0: normal, -1: shrinking, 1: stretching
		order int     // the order of infinity (0 - 3) for the glue.
	}
}

func ListOf(elements []Node) *List {
	list := &List{children: make([]Node, len(elements))}
	copy(list.children, elements)
	return list
}

// determineOrder returns the highest order (0-3) with a non-zero total,
// scanning from the highest order down; order 0 (finite glue) is the
// fallback when no higher order participates.
func determineOrder(totals []float64) int {
	for i := len(totals) - 1; i > 0; i-- {
		if totals[i] != 0 {
			return i
		}
	}
	return 0
}

func (lst *List) setGlue(x float64, sign int, totals []float64, errType string) {
	o := determineOrder(totals)
	lst.glue.order = o
	lst.glue.sign = sign
	if totals[o] != 0 {
		lst.glue.set = x / totals[o]
	} else {
		lst.glue.sign = 0
		lst.glue.set = 0
		if o == 0 && len(lst.children) > 0 && lst.warn != nil {
			kind := "Overfull"
			if errType != "overfull" {
				kind = "Underfull"
			}
			lst.warn(fmt.Sprintf("%s %s (badness %.4g)", kind, errType, math.Abs(x)))
		}
	}
}

func (lst *List) Kerning(next Node) float64 {
	return lst.box.Kerning(next)
}

func (lst *List) Shrink() {
	for _, node := range lst.children {
		node.Shrink()
	}
	lst.box.Shrink()
	if lst.box.size <= NUM_SIZE_LEVELS {
		lst.shift *= SHRINK_FACTOR
		lst.glue.set *= SHRINK_FACTOR
	}
}

func (lst *List) Grow() {
	for _, node := range lst.children {
		node.Grow()
	}
	lst.box.Grow()
	lst.shift *= GROW_FACTOR
	lst.glue.set *= GROW_FACTOR
}

func (lst *List) Render(x, y float64) {
	lst.box.Render(x, y)
}

func (lst *List) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	*width += lst.box.width
	if math.IsInf(lst.box.height, 0) || math.IsInf(lst.box.depth, 0) {
		return
	}
	*height = math.Max(*height, lst.box.height-lst.shift)
	*depth = math.Max(*depth, lst.box.depth+lst.shift)
}

func (lst *List) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	*height += *depth + lst.box.height
	*depth = lst.box.depth
	if math.IsInf(lst.box.width, 0) {
		return
	}
	*width = math.Max(*width, lst.box.width)
}

// HList is a horizontal list of boxes.
type HList struct {
	lst List

	// FunctionName records the roman function name (e.g. "lim", "sin")
	// this HList renders, when it was built by Parser.function. Empty
	// otherwise. Used by Parser.isOverUnder to decide whether an
	// operator-like function such as \lim takes over/under scripts.
	FunctionName string
}

func HListOf(elements []Node, doKern bool, warn func(string)) *HList {
	lst := &HList{lst: *ListOf(elements)}
	lst.lst.warn = warn
	if doKern {
		lst.kern()
	}
	const (
		width      = 0
		additional = true
	)
	lst.hpack(width, additional)
	return lst
}

// HListTo builds an HList packed to an exact target width (e.g. the
// common width a fraction's numerator and denominator must share so the
// vinculum spans both), rather than the natural width HListOf produces.
func HListTo(width float64, elements []Node, doKern bool, warn func(string)) *HList {
	lst := &HList{lst: *ListOf(elements)}
	lst.lst.warn = warn
	if doKern {
		lst.kern()
	}
	const additional = false
	lst.hpack(width, additional)
	return lst
}

func (lst *HList) Children() []Node { return lst.lst.children }
func (lst *HList) Width() float64   { return lst.lst.box.width }
func (lst *HList) Height() float64  { return lst.lst.box.height }
func (lst *HList) Depth() float64   { return lst.lst.box.depth }
func (lst *HList) Shift() float64   { return lst.lst.shift }
func (lst *HList) SetShift(v float64) { lst.lst.shift = v }
func (lst *HList) GlueSign() int    { return lst.lst.glue.sign }
func (lst *HList) GlueOrder() int   { return lst.lst.glue.order }
func (lst *HList) GlueSet() float64 { return lst.lst.glue.set }

// kern inserts Kern nodes between Char nodes to set kerning.
//
// The Char nodes themselves determine the amount of kerning they need.
// This method just creates the correct list.
func (lst *HList) kern() {
	if len(lst.lst.children) == 0 {
		return
	}
	var (
		n        = len(lst.lst.children)
		children = make([]Node, 0, n)
	)
	for i := range lst.lst.children {
		var (
			elem = lst.lst.children[i]
			next Node
			dist float64
		)
		if i < n-1 {
			next = lst.lst.children[i+1]
			dist = elem.Kerning(next)
		}
		children = append(children, elem)
		if dist != 0 {
			children = append(children, NewKern(dist))
		}
	}
	lst.lst.children = children
}

// hpack computes the dimensions of the resulting boxes, and adjusts the glue
// if one of those dimensions is pre-specified.
//
// The computed sizes normally enclose all of the material inside the new box;
// but some items may stick out if negative glue is used, if the box is
// overfull, or if a `\vbox` includes other boxes that have been shifted left.
//
// If additional is false, hpack will produce a box whose width is exactly as
// wide as the given 'width'.
// Otherwise, hpack will produce a box with the natural width of the contents,
// plus the given 'width'.
func (lst *HList) hpack(width float64, additional bool) {
	var (
		h float64
		d float64
		x float64

		totStretch = make([]float64, 4)
		totShrink  = make([]float64, 4)
	)

	for _, node := range lst.lst.children {
		switch node := node.(type) {
		case hpacker:
			node.hpackDims(&x, &h, &d, totStretch, totShrink)
		default:
			panic(fmt.Errorf("tex: unknown node type %T", node))
		}
	}
	lst.lst.box.height = h
	lst.lst.box.depth = d

	if additional {
		width += x
	}
	lst.lst.box.width = width
	x = width - x
	switch {
	case x == 0:
		lst.lst.glue.sign = 0
		lst.lst.glue.order = 0
		lst.lst.glue.set = 0
	case x > 0:
		lst.lst.setGlue(x, 1, totStretch, "overfull")
	default:
		lst.lst.setGlue(x, -1, totShrink, "underfull")
	}
}

func (lst *HList) Kerning(next Node) float64 { return lst.lst.Kerning(next) }
func (lst *HList) Shrink()                   { lst.lst.Shrink() }
func (lst *HList) Grow()                     { lst.lst.Grow() }
func (lst *HList) Render(x, y float64)       { lst.lst.Render(x, y) }

func (lst *HList) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	lst.lst.hpackDims(width, height, depth, stretch, shrink)
}

func (lst *HList) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	lst.lst.vpackDims(width, height, depth, stretch, shrink)
}

// VList is a vertical list of boxes.
type VList struct {
	lst List
}

func VListOf(elements []Node, warn func(string)) *VList {
	lst := &VList{lst: *ListOf(elements)}
	lst.lst.warn = warn
	var (
		height     float64
		additional = true
		max        = math.Inf(+1)
	)
	lst.vpack(height, additional, max)
	return lst
}

func (lst *VList) Children() []Node   { return lst.lst.children }
func (lst *VList) Width() float64     { return lst.lst.box.width }
func (lst *VList) Height() float64    { return lst.lst.box.height }
func (lst *VList) Depth() float64     { return lst.lst.box.depth }
func (lst *VList) Shift() float64     { return lst.lst.shift }
func (lst *VList) SetShift(v float64) { lst.lst.shift = v }

// vpack computes the dimensions of the resulting boxes, and adjusts the
// glue if one of those dimensions is pre-specified.
//
// If additional is false, vpack will produce a box whose height is exactly as
// tall as the given 'height'.
// Otherwise, vpack will produce a box with the natural height of the contents,
// plus the given 'height'.
func (lst *VList) vpack(height float64, additional bool, l float64) {
	var (
		w float64
		d float64
		x float64

		totStretch = make([]float64, 4)
		totShrink  = make([]float64, 4)
	)

	for _, node := range lst.lst.children {
		switch node := node.(type) {
		case vpacker:
			node.vpackDims(&w, &x, &d, totStretch, totShrink)
		default:
			panic(fmt.Errorf("tex: unknown node type %T", node))
		}
	}

	lst.lst.box.width = w
	switch {
	case d > l:
		x += d - l
		lst.lst.box.depth = l
	default:
		lst.lst.box.depth = d
	}

	if additional {
		height += x
	}
	lst.lst.box.height = height
	x = height - x

	switch {
	case x == 0:
		lst.lst.glue.sign = 0
		lst.lst.glue.order = 0
		lst.lst.glue.set = 0
	case x > 0:
		lst.lst.setGlue(x, +1, totStretch, "overfull")
	default:
		lst.lst.setGlue(x, -1, totShrink, "underfull")
	}
}

func (lst *VList) Kerning(next Node) float64 { return lst.lst.Kerning(next) }
func (lst *VList) Shrink()                   { lst.lst.Shrink() }
func (lst *VList) Grow()                     { lst.lst.Grow() }
func (lst *VList) Render(x, y float64)       { lst.lst.Render(x, y) }

func (lst *VList) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	lst.lst.hpackDims(width, height, depth, stretch, shrink)
}

func (lst *VList) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	lst.lst.vpackDims(width, height, depth, stretch, shrink)
}

// Rule is a solid black rectangle.
//
// Like a HList, Rule has a width, a depth and a height.
// However, if any of these dimensions is ∞, the actual value will be
// determined by running the rule up to the boundary of the innermost
// enclosing box.
// This is called a "running dimension".
// The width is never running in an HList; the height and depth are never
// running in a VList.
type Rule struct {
	box Box
	out backend
}

func NewRule(w, h, d float64, state State) *Rule {
	return &Rule{
		box: Box{width: w, height: h, depth: d},
		out: state.Backend(),
	}
}

// render paints the rectangle once its running dimensions have been
// resolved by Ship, at the given final width/height.
func (rule *Rule) render(x, y, w, h float64) {
	if rule.out == nil {
		return
	}
	rule.out.RenderRectFilled(x, y, x+w, y+h)
}

func (rule *Rule) Kerning(next Node) float64 { return rule.box.Kerning(next) }
func (rule *Rule) Shrink()                   { rule.box.Shrink() }
func (rule *Rule) Grow()                     { rule.box.Grow() }
func (rule *Rule) Render(x, y float64)       { rule.box.Render(x, y) }

func (rule *Rule) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	rule.box.hpackDims(width, height, depth, stretch, shrink)
}

func (rule *Rule) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	rule.box.vpackDims(width, height, depth, stretch, shrink)
}

// HRule is a horizontal rule.
type HRule struct {
	rule Rule
}

func NewHRule(state State, thickness float64) *HRule {
	if thickness < 0 {
		thickness = state.UnderlineThickness()
	}
	var (
		height = 0.5 * thickness
		depth  = 0.5 * thickness
	)
	return &HRule{
		rule: *NewRule(math.Inf(+1), height, depth, state),
	}
}

func (rule *HRule) Kerning(next Node) float64 { return rule.rule.Kerning(next) }
func (rule *HRule) Shrink()                   { rule.rule.Shrink() }
func (rule *HRule) Grow()                     { rule.rule.Grow() }
func (rule *HRule) Render(x, y float64)       { rule.rule.Render(x, y) }

func (rule *HRule) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	rule.rule.hpackDims(width, height, depth, stretch, shrink)
}

func (rule *HRule) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	rule.rule.vpackDims(width, height, depth, stretch, shrink)
}

// VRule is a vertical rule.
type VRule struct {
	rule Rule
}

func NewVRule(state State) *VRule {
	thickness := state.UnderlineThickness()
	return &VRule{
		rule: *NewRule(thickness, math.Inf(+1), math.Inf(+1), state),
	}
}

func (rule *VRule) Kerning(next Node) float64 { return rule.rule.Kerning(next) }
func (rule *VRule) Shrink()                   { rule.rule.Shrink() }
func (rule *VRule) Grow()                     { rule.rule.Grow() }
func (rule *VRule) Render(x, y float64)       { rule.rule.Render(x, y) }

func (rule *VRule) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	rule.rule.hpackDims(width, height, depth, stretch, shrink)
}

func (rule *VRule) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	rule.rule.vpackDims(width, height, depth, stretch, shrink)
}

type Glue struct {
	size         int
	width        float64
	stretch      float64
	stretchOrder int
	shrink       float64
	shrinkOrder  int
}

func NewGlue(typ string) *Glue {
	switch typ {
	case "fil":
		return newGlue(0, 1, 1, 0, 0)
	case "fill":
		return newGlue(0, 1, 2, 0, 0)
	case "filll":
		return newGlue(0, 1, 3, 0, 0)
	case "neg_fil":
		return newGlue(0, 0, 0, 1, 1)
	case "neg_fill":
		return newGlue(0, 0, 0, 1, 2)
	case "neg_filll":
		return newGlue(0, 0, 0, 1, 3)
	case "empty":
		return &Glue{}
	case "ss":
		return newGlue(0, 1, 1, 1, 1)
	default:
		panic(fmt.Errorf("tex: unknown Glue spec %q", typ))
	}
}

func newGlue(w, st float64, sto int, sh float64, sho int) *Glue {
	return &Glue{
		size:         0,
		width:        w,
		stretch:      st,
		stretchOrder: sto,
		shrink:       sh,
		shrinkOrder:  sho,
	}
}

func (g *Glue) Width() float64 { return g.width }

func (g *Glue) Kerning(next Node) float64 { return 0 }

func (g *Glue) Shrink() {
	g.size++
	if g.size > NUM_SIZE_LEVELS {
		return
	}
	g.width *= SHRINK_FACTOR
}

func (g *Glue) Grow() {
	g.size--
	g.width *= GROW_FACTOR
}

func (g *Glue) Render(x, y float64) {}

func (g *Glue) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	*width += g.width
	stretch[g.stretchOrder] += g.stretch
	shrink[g.shrinkOrder] += g.shrink
}

func (g *Glue) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	*height += *depth
	*depth = 0
	*height += g.width
	stretch[g.stretchOrder] += g.stretch
	shrink[g.shrinkOrder] += g.shrink
}

// HCentered creates an HList whose contents are centered within
// its enclosing box.
func HCentered(elements []Node, warn func(string)) *HList {
	const doKern = false
	nodes := make([]Node, 0, len(elements)+2)
	nodes = append(nodes, NewGlue("ss"))
	nodes = append(nodes, elements...)
	nodes = append(nodes, NewGlue("ss"))
	return HListOf(nodes, doKern, warn)
}

// VCentered creates a VList whose contents are centered within
// its enclosing box.
func VCentered(elements []Node, warn func(string)) *VList {
	nodes := make([]Node, 0, len(elements)+2)
	nodes = append(nodes, NewGlue("ss"))
	nodes = append(nodes, elements...)
	nodes = append(nodes, NewGlue("ss"))
	return VListOf(nodes, warn)
}

// Kern is a node with a width to specify a (normally negative) amount of spacing.
//
// This spacing correction appears in horizontal lists between letters
// like A and V, when the font designer decided it looks better to move them
// closer together or further apart.
// A Kern node can also appear in a vertical list, when its width denotes
// spacing in the vertical direction.
type Kern struct {
	size  int
	width float64
}

func NewKern(width float64) *Kern {
	return &Kern{width: width}
}

func (k *Kern) Width() float64 { return k.width }

func (k *Kern) String() string { return fmt.Sprintf("k%.02f", k.width) }

func (k *Kern) Kerning(next Node) float64 { return 0 }

func (k *Kern) Shrink() {
	k.size++
	if k.size > NUM_SIZE_LEVELS {
		return
	}
	k.width *= SHRINK_FACTOR
}

func (k *Kern) Grow() {
	k.size--
	k.width *= GROW_FACTOR
}

func (k *Kern) Render(x, y float64) {}

func (k *Kern) hpackDims(width, height, depth *float64, stretch, shrink []float64) {
	*width += k.width
}

func (k *Kern) vpackDims(width, height, depth *float64, stretch, shrink []float64) {
	*height += *depth + k.width
	*depth = 0
}

// SubSuperCluster is the HList produced when a nucleus gains a sub
// and/or superscript. It embeds the already laid-out HList of the whole
// cluster (so it satisfies Node like everything else).
//
// This is a sort of hack: this parser doesn't build an intermediate
// math-list and then convert it to an HList the way TeX itself does; it
// goes directly to HLists. SubSuperCluster also retains the nucleus/sub/
// super nodes it was built from; nothing in this module reads them (the
// parser detects a double subscript before the cluster is built).
type SubSuperCluster struct {
	*HList
	Nucleus Node
	Sub     Node
	Super   Node
}

// NewSubSuperCluster wraps hlist, the hpacked layout of nucleus with its
// sub/super attached, into a SubSuperCluster that also records the three
// source nodes.
func NewSubSuperCluster(nucleus, sub, super Node, hlist *HList) *SubSuperCluster {
	return &SubSuperCluster{HList: hlist, Nucleus: nucleus, Sub: sub, Super: super}
}

// AutoHeightChar finds the smallest size of symbol c (from its sized
// alternatives) tall enough to cover [height,depth]; if no alternative is
// tall enough it grows the last one by the required factor. The returned
// Char is not shifted: it keeps its own baseline, so its vertical center
// does not necessarily line up with the target box.
func AutoHeightChar(c string, height, depth float64, state State, alwaysGrow bool) (*Char, error) {
	target := height + depth

	type altFinder interface {
		SizedAlternatives(symbol string) []struct {
			Font   string
			Symbol string
		}
	}

	alts := []struct {
		Font   string
		Symbol string
	}{{Font: state.Font, Symbol: c}}
	if af, ok := state.Fonts.(altFinder); ok {
		if found := af.SizedAlternatives(c); len(found) > 0 {
			alts = found
		}
	}

	var char *Char
	var err error
	for _, alt := range alts {
		st := state
		st.Font = alt.Font
		char, err = NewChar(alt.Symbol, st)
		if err != nil {
			return nil, err
		}
		if char.height+char.depth >= target || alwaysGrow {
			break
		}
	}

	factor := target / (char.height + char.depth)
	if char.height+char.depth < target {
		char.State.Size *= factor
		if err := char.updateMetrics(); err != nil {
			return nil, err
		}
	}
	shift := depth - char.depth
	_ = shift
	return char, nil
}

// AutoWidthChar is the horizontal analogue of AutoHeightChar, used for
// wide accents (\widehat, \widetilde) that must span the full width of
// the symbol underneath them.
func AutoWidthChar(c string, width float64, state State, alwaysGrow bool) (*Char, error) {
	type altFinder interface {
		SizedAlternatives(symbol string) []struct {
			Font   string
			Symbol string
		}
	}

	alts := []struct {
		Font   string
		Symbol string
	}{{Font: state.Font, Symbol: c}}
	if af, ok := state.Fonts.(altFinder); ok {
		if found := af.SizedAlternatives(c); len(found) > 0 {
			alts = found
		}
	}

	var char *Char
	var err error
	for _, alt := range alts {
		st := state
		st.Font = alt.Font
		char, err = NewChar(alt.Symbol, st)
		if err != nil {
			return nil, err
		}
		if char.width >= width || alwaysGrow {
			break
		}
	}

	if char.width < width {
		factor := width / char.width
		char.State.Size *= factor
		if err := char.updateMetrics(); err != nil {
			return nil, err
		}
	}
	return char, nil
}

// Ship walks a fully laid-out HList and issues draw calls against the
// backend reachable from each Char's State, translating box-relative
// coordinates into absolute canvas coordinates.
//
// ox, oy is the origin the whole formula is shipped at; since TeX y grows
// downward but the box coordinate (cur_v) is measured from the top of
// box, Ship starts cur_v at box.Height() below oy.
type Ship struct {
	curS int

	curV, curH float64
	offH, offV float64

	curFontSize float64
}

// clamp limits glue adjustments to TeX's usual ±1e9 "infinitely bad"
// bound so that degenerate glue specs cannot blow up into NaN/Inf pixel
// coordinates.
func clamp(v float64) float64 {
	switch {
	case v < -1e9:
		return -1e9
	case v > 1e9:
		return 1e9
	default:
		return v
	}
}

// Call ships box at offset (ox, oy).
func (s *Ship) Call(ox, oy float64, box *HList) {
	s.curS = 0
	s.curV = 0
	s.curH = 0
	s.offH = ox
	s.offV = oy + box.Height()
	s.hlistOut(box)
}

func (s *Ship) hlistOut(box *HList) {
	curG := 0.0
	curGlue := 0.0
	glueOrder := box.GlueOrder()
	glueSign := box.GlueSign()
	baseLine := s.curV
	leftEdge := s.curH

	for _, p := range box.Children() {
		switch p := p.(type) {
		case *Char:
			p.Render(s.curH+s.offH, s.curV+s.offV)
			s.curH += p.width

		case *SubSuperCluster:
			s.hlistOutList(p.HList, baseLine, leftEdge)

		case *HList:
			s.hlistOutList(p, baseLine, leftEdge)

		case *VList:
			edge := s.curH
			s.curV = baseLine + p.Shift()
			savedV := s.curV
			s.vlistOut(p)
			s.curH = edge + p.Width()
			s.curV = baseLine
			_ = savedV

		case *HRule:
			s.renderRule(p.rule, baseLine)
		case *VRule:
			s.renderRule(p.rule, baseLine)
		case *Rule:
			s.renderRule(*p, baseLine)

		case *Glue:
			ruleWidth := g(p).width - curG
			if glueSign == 1 && g(p).stretchOrder == glueOrder {
				curGlue += g(p).stretch
				curG = round(clamp(box.GlueSet() * curGlue))
			} else if glueSign == -1 && g(p).shrinkOrder == glueOrder {
				curGlue += g(p).shrink
				curG = round(clamp(box.GlueSet() * curGlue))
			}
			ruleWidth += curG
			s.curH += ruleWidth

		case *Kern:
			s.curH += p.width

		default:
			panic(fmt.Errorf("tex: unknown node type %T in hlist", p))
		}
	}
}

func (s *Ship) hlistOutList(p interface {
	Node
	Width() float64
}, baseLine, leftEdge float64) {
	if hl, ok := p.(*HList); ok {
		if len(hl.Children()) == 0 {
			s.curH += hl.Width()
			return
		}
		edge := s.curH
		s.curV = baseLine + hl.Shift()
		s.hlistOut(hl)
		s.curH = edge + hl.Width()
		s.curV = baseLine
	}
}

func (s *Ship) vlistOut(box *VList) {
	curG := 0.0
	curGlue := 0.0
	glueOrder := box.lst.glue.order
	glueSign := box.lst.glue.sign
	leftEdge := s.curH
	s.curV -= box.Height()
	topEdge := s.curV

	for _, p := range box.Children() {
		switch p := p.(type) {
		case *Char:
			panic("tex: Char node found in vlist")

		case *HList:
			if len(p.Children()) == 0 {
				s.curV += p.Height() + p.Depth()
				break
			}
			s.curV += p.Height()
			s.curH = leftEdge + p.Shift()
			savedV := s.curV
			s.hlistOut(p)
			s.curV = savedV + p.Depth()
			s.curH = leftEdge

		case *VList:
			if len(p.Children()) == 0 {
				s.curV += p.Height() + p.Depth()
				break
			}
			s.curV += p.Height()
			s.curH = leftEdge + p.Shift()
			savedV := s.curV
			s.vlistOut(p)
			s.curV = savedV + p.Depth()
			s.curH = leftEdge

		case *HRule:
			s.renderHRuleInVList(p.rule, box.Width(), leftEdge)
		case *VRule:
			s.curV += vruleHeight(p.rule)
			s.renderVRule(p.rule)
		case *Rule:
			s.renderHRuleInVList(*p, box.Width(), leftEdge)

		case *Glue:
			ruleHeight := g(p).width - curG
			if glueSign == 1 && g(p).stretchOrder == glueOrder {
				curGlue += g(p).stretch
				curG = round(clamp(box.lst.glue.set * curGlue))
			} else if glueSign == -1 && g(p).shrinkOrder == glueOrder {
				curGlue += g(p).shrink
				curG = round(clamp(box.lst.glue.set * curGlue))
			}
			ruleHeight += curG
			s.curV += ruleHeight

		case *Kern:
			s.curV += p.width

		default:
			panic(fmt.Errorf("tex: unknown node type %T in vlist", p))
		}
	}
	_ = topEdge
}

func g(n *Glue) *Glue { return n }

func round(v float64) float64 { return math.Round(v) }

// ruleDims resolves a Rule's running (infinite) dimensions against the
// enclosing box, returning the concrete width/height/depth to paint.
func ruleDims(r Rule, enclosingWidth, enclosingHeight, enclosingDepth float64) (w, h, d float64) {
	w, h, d = r.box.width, r.box.height, r.box.depth
	if math.IsInf(w, 0) {
		w = enclosingWidth
	}
	if math.IsInf(h, 0) {
		h = enclosingHeight
	}
	if math.IsInf(d, 0) {
		d = enclosingDepth
	}
	return w, h, d
}

func (s *Ship) renderRule(r Rule, baseLine float64) {
	w, h, d := ruleDims(r, 0, 0, 0)
	if h > 0 && w > 0 {
		r.render(s.curH+s.offH, baseLine+d+s.offV, w, h)
	}
	s.curH += w
}

func vruleHeight(r Rule) float64 {
	_, h, d := ruleDims(r, 0, 0, 0)
	if math.IsInf(h, 0) {
		h = 0
	}
	if math.IsInf(d, 0) {
		d = 0
	}
	return h + d
}

// renderHRuleInVList paints a rule node that runs horizontally across a
// VList (e.g. a fraction bar or a radical's vinculum): its width is a
// running dimension, resolved against the enclosing box's own width
// rather than left at 0 as a bare hlistOut rule would be.
func (s *Ship) renderHRuleInVList(r Rule, enclosingWidth, leftEdge float64) {
	w, h, d := ruleDims(r, enclosingWidth, 0, 0)
	s.curV += h + d
	if h > 0 && w > 0 {
		r.render(leftEdge+s.offH, s.curV-d+s.offV, w, h)
	}
}

func (s *Ship) renderVRule(r Rule) {
	_, h, d := ruleDims(r, 0, 0, 0)
	if h > 0 && d > 0 {
		r.render(s.curH+s.offH, s.curV+s.offV, 0, h+d)
	}
}

var (
	_ Node = (*Box)(nil)
	_ Node = (*VBox)(nil)
	_ Node = (*HBox)(nil)
	_ Node = (*Char)(nil)
	_ Node = (*Accent)(nil)
	_ Node = (*List)(nil)
	_ Node = (*HList)(nil)
	_ Node = (*VList)(nil)
	_ Node = (*Rule)(nil)
	_ Node = (*HRule)(nil)
	_ Node = (*VRule)(nil)
	_ Node = (*Glue)(nil)
	_ Node = (*Kern)(nil)
	_ Node = (*SubSuperCluster)(nil)

	_ hpacker = (*Box)(nil)
	_ hpacker = (*VBox)(nil)
	_ hpacker = (*HBox)(nil)
	_ hpacker = (*Char)(nil)
	_ hpacker = (*Accent)(nil)
	_ hpacker = (*List)(nil)
	_ hpacker = (*HList)(nil)
	_ hpacker = (*VList)(nil)
	_ hpacker = (*Rule)(nil)
	_ hpacker = (*HRule)(nil)
	_ hpacker = (*VRule)(nil)
	_ hpacker = (*Glue)(nil)
	_ hpacker = (*Kern)(nil)

	_ vpacker = (*Box)(nil)
	_ vpacker = (*VBox)(nil)
	_ vpacker = (*HBox)(nil)
	_ vpacker = (*List)(nil)
	_ vpacker = (*HList)(nil)
	_ vpacker = (*VList)(nil)
	_ vpacker = (*Rule)(nil)
	_ vpacker = (*HRule)(nil)
	_ vpacker = (*VRule)(nil)
	_ vpacker = (*Glue)(nil)
	_ vpacker = (*Kern)(nil)
)
