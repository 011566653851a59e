// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mtfont resolves TeX symbol names to glyph metrics across the
// Bakoma (Computer-Modern-alike), Unicode ("custom") and STIX font
// families, and caches the results.
//
// This is the Go analogue of matplotlib.mathtext's Fonts/TruetypeFonts/
// BakomaFonts/UnicodeFonts/StixFonts hierarchy, rebuilt around
// golang.org/x/image/font/sfnt instead of FreeType.
package mtfont // import "github.com/go-latex/mathtext/internal/mtfont"

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	xfnt "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/go-latex/mathtext/font"
	"github.com/go-latex/mathtext/font/latex"
	"github.com/go-latex/mathtext/internal/latex/tex"
)

// FontSet selects the family of glyphs used to render math symbols.
type FontSet int

const (
	// FontSetCM renders with the Computer-Modern-alike Bakoma family.
	FontSetCM FontSet = iota
	// FontSetSTIX renders with the STIX family.
	FontSetSTIX
	// FontSetCustom renders with a user-supplied Unicode font collection.
	FontSetCustom
)

// FontDescriptor names the concrete face backing one of the math roles
// (rm/it/bf/sf/tt/cal/ex). It mirrors golang.org/x/image/font's Style and
// Weight enums the way font.Font already does, so a caller can point a
// role at any font.Collection entry without this package needing to know
// about file paths or font discovery (explicitly out of scope).
type FontDescriptor struct {
	Family  string
	Variant string
	Style   xfnt.Style
	Weight  xfnt.Weight
}

// symbolKey identifies a cached metric lookup.
type symbolKey struct {
	font     string
	symbol   string
	fontsize float64
	dpi      float64
}

// Fonts resolves TeX symbol names to glyphs and caches their metrics. It
// implements tex.FontMetricer.
type Fonts struct {
	set      FontSet
	fallback bool // fallback_to_cm: UnicodeFonts falls back to Bakoma glyphs

	collection font.Collection // default glyph source: Latin Modern (teacher's font/latex)
	roles      map[string]FontDescriptor

	mu    sync.Mutex
	faces map[string]*sfnt.Font // cache key: role font name -> parsed face

	metrics *lru.Cache[symbolKey, tex.Metrics]
	kerns   *lru.Cache[[2]symbolKey, float64]

	usedMu   sync.Mutex
	used     map[string]map[rune]bool
}

const defaultCacheSize = 4096

// NewFonts returns a Fonts resolving symbols against the given FontSet.
// roles maps TeX font roles ("rm", "it", "bf", "sf", "tt", "cal", "ex")
// to the concrete face to use; any role left unset falls back to the
// bundled Latin Modern collection for that style/weight.
func NewFonts(set FontSet, roles map[string]FontDescriptor, fallbackToCM bool) (*Fonts, error) {
	metrics, err := lru.New[symbolKey, tex.Metrics](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("mtfont: could not create metrics cache: %w", err)
	}
	kerns, err := lru.New[[2]symbolKey, float64](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("mtfont: could not create kerning cache: %w", err)
	}
	if roles == nil {
		roles = map[string]FontDescriptor{}
	}
	return &Fonts{
		set:        set,
		fallback:   fallbackToCM,
		collection: latex.Collection(),
		roles:      roles,
		faces:      map[string]*sfnt.Font{},
		metrics:    metrics,
		kerns:      kerns,
		used:       map[string]map[rune]bool{},
	}, nil
}

// fontmapBakoma mirrors mathtext.py's BakomaFonts._fontmap: the default
// face for each TeX font role when FontSetCM is selected.
var fontmapBakoma = map[string]string{
	"cal": "cal",
	"rm":  "rm",
	"tt":  "tt",
	"it":  "it",
	"bf":  "bf",
	"sf":  "sf",
	"ex":  "ex",
}

// roleVariant maps a TeX font role onto the (variant, style, weight) the
// bundled Latin Modern collection was tagged with in font/latex.Collection.
func roleVariant(role string) (variant string, style xfnt.Style, weight xfnt.Weight) {
	switch role {
	case "rm":
		return "Serif", xfnt.StyleNormal, xfnt.WeightNormal
	case "cal", "ex":
		return "Math", xfnt.StyleNormal, xfnt.WeightNormal
	case "it":
		return "Serif", xfnt.StyleItalic, xfnt.WeightNormal
	case "bf":
		return "Serif", xfnt.StyleNormal, xfnt.WeightBold
	case "tt":
		return "Mono", xfnt.StyleNormal, xfnt.WeightNormal
	case "sf":
		return "Sans", xfnt.StyleNormal, xfnt.WeightNormal
	default:
		return "Serif", xfnt.StyleNormal, xfnt.WeightNormal
	}
}

// resolveFace returns the parsed face backing role, resolving and caching
// it from either an explicit FontDescriptor or the bundled collection.
func (f *Fonts) resolveFace(role string) (*sfnt.Font, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := role
	if desc, ok := f.roles[role]; ok {
		key = fmt.Sprintf("%s:%s:%d:%d", desc.Family, desc.Variant, desc.Style, desc.Weight)
	}
	if face, ok := f.faces[key]; ok {
		return face, key, nil
	}

	var face font.Face
	var found bool
	if desc, ok := f.roles[role]; ok {
		face, found = f.collection.Find(desc.Variant, desc.Style, desc.Weight)
		if !found {
			return nil, "", fmt.Errorf("mtfont: no face registered for role %q (%+v)", role, desc)
		}
	} else {
		variant, style, weight := roleVariant(role)
		face, found = f.collection.Find(variant, style, weight)
		if !found {
			return nil, "", fmt.Errorf("mtfont: no bundled face for role %q", role)
		}
	}

	sf, err := face.SFNT()
	if err != nil {
		return nil, "", fmt.Errorf("mtfont: could not parse face for role %q: %w", role, err)
	}
	f.faces[key] = sf
	return sf, key, nil
}

// glyphForSymbol resolves symbol (a literal rune or a \tex command) under
// role to a (face, glyph index), consulting the Bakoma/STIX remapping
// tables before falling back to a direct Unicode lookup.
func (f *Fonts) glyphForSymbol(role, symbol string) (*sfnt.Font, sfnt.GlyphIndex, rune, error) {
	cp, ok := tex.UnicodeIndex(symbol, true)
	if !ok {
		return nil, 0, 0, fmt.Errorf("mtfont: unknown symbol %q", symbol)
	}

	switch f.set {
	case FontSetSTIX:
		if mapped, mrole, found := stixRemap(role, symbol, cp); found {
			role, cp = mrole, mapped
		}
	case FontSetCM:
		if mapped, ok := fontmapBakoma[role]; ok {
			role = mapped
		}
		if r, c, found := latexToCmex[symbol]; found {
			role, cp = r, c
		}
	}

	face, _, err := f.resolveFace(role)
	if err != nil {
		return nil, 0, 0, err
	}
	var buf sfnt.Buffer
	idx, err := face.GlyphIndex(&buf, cp)
	if err != nil {
		return nil, 0, 0, err
	}
	if idx == 0 && f.fallback {
		// Fall back to the roman face for a glyph the current role lacks.
		face, _, err = f.resolveFace("rm")
		if err != nil {
			return nil, 0, 0, err
		}
		idx, err = face.GlyphIndex(&buf, cp)
		if err != nil {
			return nil, 0, 0, err
		}
	}
	return face, idx, cp, nil
}

// Metrics implements tex.FontMetricer: resolves and caches the scaled
// metrics of symbol under role at fontsize/dpi.
func (f *Fonts) Metrics(role, symbol string, fontsize, dpi float64) (tex.Metrics, error) {
	key := symbolKey{font: role, symbol: symbol, fontsize: fontsize, dpi: dpi}
	if m, ok := f.metrics.Get(key); ok {
		return m, nil
	}

	face, idx, cp, err := f.glyphForSymbol(role, symbol)
	if err != nil {
		return tex.Metrics{}, err
	}
	f.markUsed(role, cp)

	scale := fixedScale(fontsize, dpi)

	var buf sfnt.Buffer
	advance, err := face.GlyphAdvance(&buf, idx, scale, xfnt.HintingNone)
	if err != nil {
		return tex.Metrics{}, fmt.Errorf("mtfont: glyph advance: %w", err)
	}
	bounds, _, err := face.GlyphBounds(&buf, idx, scale, xfnt.HintingNone)
	if err != nil {
		return tex.Metrics{}, fmt.Errorf("mtfont: glyph bounds: %w", err)
	}

	const toFloat = 1.0 / 64.0
	m := tex.Metrics{
		Advance: float64(advance) * toFloat,
		Xmin:    float64(bounds.Min.X) * toFloat,
		Xmax:    float64(bounds.Max.X) * toFloat,
		Ymin:    -float64(bounds.Max.Y) * toFloat,
		Ymax:    -float64(bounds.Min.Y) * toFloat,
	}
	m.Width = m.Xmax - m.Xmin
	m.Height = float64(bounds.Max.Y-bounds.Min.Y) * toFloat
	m.Iceberg = -float64(bounds.Min.Y) * toFloat
	m.Slanted = role == "it" || isSlantedSymbol(symbol)

	f.metrics.Add(key, m)
	return m, nil
}

// Kern implements tex.FontMetricer. Kerning is only meaningful between
// two glyphs of the same face+size, mirroring mathtext.py's get_kern
// ("if font1 == font2 and fontsize1 == fontsize2 and dpi1 == dpi2").
func (f *Fonts) Kern(font1, sym1 string, size1 float64, font2, sym2 string, size2, dpi float64) float64 {
	if font1 != font2 || size1 != size2 {
		return 0
	}
	k1 := symbolKey{font: font1, symbol: sym1, fontsize: size1, dpi: dpi}
	k2 := symbolKey{font: font2, symbol: sym2, fontsize: size2, dpi: dpi}
	cacheKey := [2]symbolKey{k1, k2}
	if v, ok := f.kerns.Get(cacheKey); ok {
		return v
	}

	face, idx1, _, err := f.glyphForSymbol(font1, sym1)
	if err != nil {
		return 0
	}
	_, idx2, _, err := f.glyphForSymbol(font2, sym2)
	if err != nil {
		return 0
	}
	scale := fixedScale(size1, dpi)
	var buf sfnt.Buffer
	k, err := face.Kern(&buf, idx1, idx2, scale, xfnt.HintingNone)
	if err != nil {
		f.kerns.Add(cacheKey, 0)
		return 0
	}
	v := float64(k) / 64.0
	f.kerns.Add(cacheKey, v)
	return v
}

// XHeight returns the height of a lowercase 'x' in the given role,
// used by the parser to scale sub/superscript placement constants.
func (f *Fonts) XHeight(font string, fontsize, dpi float64) (float64, error) {
	m, err := f.Metrics(font, "x", fontsize, dpi)
	if err != nil {
		return 0, err
	}
	return m.Iceberg, nil
}

// UnderlineThickness implements tex.FontMetricer, used by \frac and \sqrt
// for the rule weight. Matplotlib derives this from the font's PCLT
// table; absent that (as here, since sfnt does not expose it), a fixed
// fraction of the font size is used, scaled by dpi.
func (f *Fonts) UnderlineThickness(font string, fontsize, dpi float64) float64 {
	return math64Max(1.0, fontsize/10.0*dpi/72.0)
}

func math64Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// fixedScale converts a point size at a given resolution into the pixels-
// per-em fixed-point value golang.org/x/image/font/sfnt expects to scale
// glyph outlines and metrics.
func fixedScale(fontsize, dpi float64) fixed.Int26_6 {
	return fixed.Int26_6(0.5 + fontsize*dpi*64/72)
}

func (f *Fonts) markUsed(font string, cp rune) {
	f.usedMu.Lock()
	defer f.usedMu.Unlock()
	m, ok := f.used[font]
	if !ok {
		m = map[rune]bool{}
		f.used[font] = m
	}
	m[cp] = true
}

// UsedCharacters returns the set of codepoints, per font role, that have
// actually been looked up — subsetting information a real glyph-embedding
// backend would need (out of scope here, but the accounting itself is
// cheap and matches mathtext.py's get_used_characters).
func (f *Fonts) UsedCharacters() map[string]map[rune]bool {
	f.usedMu.Lock()
	defer f.usedMu.Unlock()
	out := make(map[string]map[rune]bool, len(f.used))
	for k, v := range f.used {
		cp := make(map[rune]bool, len(v))
		for r := range v {
			cp[r] = true
		}
		out[k] = cp
	}
	return out
}

// isSlantedSymbol reports whether symbol is in mathtext.py's
// _slanted_symbols set (operators whose glyph leans, so sub/superscripts
// need the DELTA offset).
func isSlantedSymbol(symbol string) bool {
	switch symbol {
	case `\int`, `\oint`:
		return true
	default:
		return false
	}
}
