// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mathtext parses a TeX math subset and lays it out with a
// TeX-style box-and-glue algorithm, the same model matplotlib.mathtext
// implements in Python. It does not rasterize glyphs itself: laid-out
// formulas are shipped to a Backend (see package backend and its
// sub-packages record, gg and svg), an external collaborator this package
// defines but does not own.
package mathtext // import "github.com/go-latex/mathtext"

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/go-latex/mathtext/backend/record"
	"github.com/go-latex/mathtext/internal/latex/parser"
	"github.com/go-latex/mathtext/internal/latex/tex"
	"github.com/go-latex/mathtext/internal/mtfont"
)

// FontSet selects the glyph family a Parser draws symbols from.
type FontSet = mtfont.FontSet

const (
	FontSetCM     = mtfont.FontSetCM
	FontSetSTIX   = mtfont.FontSetSTIX
	FontSetCustom = mtfont.FontSetCustom
)

// FontDescriptor names the concrete face backing one of the math roles
// (rm, it, bf, sf, tt, cal, ex).
type FontDescriptor = mtfont.FontDescriptor

// ParseError reports a malformed expression: the input, the offending
// line/column, and a message. It is the only error type Parser.Parse
// returns for bad input; anything else escaping Parse is this module's
// own bug, not the caller's.
type ParseError = parser.ParseError

// WarnKind enumerates the non-fatal diagnostics a Parser can report
// through Config.Warn.
type WarnKind = parser.WarnKind

const (
	UnknownSymbolWarning = parser.UnknownSymbolWarning
	OverfullWarning       = parser.OverfullWarning
	UnderfullWarning      = parser.UnderfullWarning
)

// Warning is one non-fatal diagnostic delivered through Config.Warn,
// e.g. an unresolved symbol substituted with a placeholder glyph.
type Warning = parser.Warning

// Backend is the abstract drawing surface a laid-out Result is shipped
// to. Passing nil to Config.Out defaults to an in-memory
// backend/record.Backend, suitable for measuring a Result without
// actually painting it anywhere.
type Backend interface {
	RenderGlyph(ox, oy float64, glyph tex.Glyph)
	RenderRectFilled(x1, y1, x2, y2 float64)
}

// Config configures a Parser: which font family and per-role faces to
// draw symbols from, the backend laid-out formulas are shipped to, and
// the diagnostics/cache behavior around that.
type Config struct {
	// FontSet selects the Bakoma/STIX/Unicode glyph family.
	FontSet FontSet
	// Fonts overrides the face used for one or more math roles ("rm",
	// "it", "bf", "sf", "tt", "cal", "ex"); roles left unset fall back to
	// the bundled Latin Modern collection.
	Fonts map[string]FontDescriptor
	// FallbackToCM makes the Unicode/STIX families fall back to Bakoma
	// glyphs for symbols they don't carry themselves.
	FallbackToCM bool
	// PSUseAFM is carried for parity with matplotlib.mathtext's
	// configuration surface; this module does not emit PostScript (see
	// spec Non-goals) so it has no effect on layout or rendering.
	PSUseAFM bool

	// DefaultFont is the TeX font role that both non-math text and math
	// spans start in. Defaults to "it" (the traditional default for math
	// variables); with the default, non-math text is also set in italic.
	DefaultFont string
	// Size is the default font size in points. Defaults to 12.
	Size float64
	// DPI is the default rendering resolution. Defaults to 100, and may
	// be overridden per call to Parser.Parse.
	DPI float64

	// Out is the Backend laid-out formulas draw into. Defaults to a
	// fresh backend/record.Backend when nil.
	Out Backend
	// Warn receives non-fatal diagnostics. Defaults to a no-op.
	Warn func(Warning)
	// CacheSize bounds the number of distinct (expression, dpi) layouts
	// this Parser keeps in memory. Defaults to 256.
	CacheSize int
}

// cacheKey identifies one cached layout. Font properties are not part of
// the key: a Parser is built from a fixed Config (one font configuration
// per Parser, per spec §5's single-owner model), so they are already
// constant across every entry in its cache.
type cacheKey struct {
	expr string
	dpi  float64
}

// Result is a fully laid-out formula: a root Hlist ready to be measured
// or shipped to a Backend.
type Result struct {
	List *tex.HList
}

// Width, Height and Depth report the formula's box dimensions in points.
func (r *Result) Width() float64  { return r.List.Width() }
func (r *Result) Height() float64 { return r.List.Height() }
func (r *Result) Depth() float64  { return r.List.Depth() }

// Ship issues this Result's draw calls against the Backend its Parser
// was configured with, at origin (ox, oy).
func (r *Result) Ship(ox, oy float64) {
	var s tex.Ship
	s.Call(ox, oy, r.List)
}

// Parser parses and lays out math expressions under a fixed font
// configuration, caching results per (expression, dpi). It is not safe
// for concurrent use; construct one Parser per goroutine, which is cheap
// (the expensive part, font metric resolution, is itself cached inside
// the *mtfont.Fonts it owns).
type Parser struct {
	innerCfg parser.Config
	cache    *lru.Cache[cacheKey, *Result]
}

// NewParser builds a Parser from cfg.
func NewParser(cfg Config) (*Parser, error) {
	fonts, err := mtfont.NewFonts(cfg.FontSet, cfg.Fonts, cfg.FallbackToCM)
	if err != nil {
		return nil, fmt.Errorf("mathtext: %w", err)
	}

	out := cfg.Out
	if out == nil {
		out = record.New()
	}
	size := cfg.Size
	if size == 0 {
		size = 12
	}
	dpi := cfg.DPI
	if dpi == 0 {
		dpi = 100
	}
	font := cfg.DefaultFont
	if font == "" {
		font = "it"
	}
	warn := cfg.Warn
	if warn == nil {
		warn = func(Warning) {}
	}

	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cache, err := lru.New[cacheKey, *Result](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("mathtext: could not create result cache: %w", err)
	}

	return &Parser{
		innerCfg: parser.Config{
			Fonts: fonts,
			Out:   out,
			Font:  font,
			Size:  size,
			DPI:   dpi,
			Warn:  warn,
		},
		cache: cache,
	}, nil
}

// Parse lays out expr (freely mixing non-math text with '$'-delimited
// math spans) at the given dpi, returning the cached Result if this
// expression was already parsed at that resolution. dpi <= 0 uses the
// Parser's configured default.
func (p *Parser) Parse(expr string, dpi float64) (*Result, error) {
	if dpi <= 0 {
		dpi = p.innerCfg.DPI
	}
	key := cacheKey{expr: expr, dpi: dpi}
	if r, ok := p.cache.Get(key); ok {
		return r, nil
	}

	cfg := p.innerCfg
	cfg.DPI = dpi
	hl, err := parser.NewParser(cfg).Parse(expr)
	if err != nil {
		return nil, err
	}

	res := &Result{List: hl}
	p.cache.Add(key, res)
	return res, nil
}

// Clear purges the cached layouts this Parser has accumulated.
func (p *Parser) Clear() {
	p.cache.Purge()
}
