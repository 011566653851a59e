// Copyright ©2021 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package font provides the types used to describe and resolve the
// glyph sources (TrueType/OpenType fonts) the math typesetting engine
// draws from.
package font // import "github.com/go-latex/mathtext/font"

import (
	"strings"

	xfnt "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Font identifies a font face within a Collection: a typeface name (e.g.
// "Latin Modern Mono"), a style (regular/italic) and weight
// (regular/bold), plus an optional variant ("Math", "Mono", "Sans", ...)
// used to pick between several families sharing the same typeface name.
type Font struct {
	Typeface string
	Variant  string
	Style    xfnt.Style
	Weight   xfnt.Weight
}

// Face pairs a Font descriptor with the parsed OpenType program backing
// it. Raw retains the original font bytes so that callers needing direct
// glyph-metric access (package mtfont) can obtain an *sfnt.Font of their
// own instead of re-deriving it from Face, which golang.org/x/image's
// opentype.Font does not expose.
type Face struct {
	Font Font
	Face *opentype.Font
	Raw  []byte
}

// SFNT parses and returns the underlying *sfnt.Font backing this face.
func (f Face) SFNT() (*sfnt.Font, error) {
	return sfnt.Parse(f.Raw)
}

// Collection is a set of font faces, typically all the faces making up
// one font family (regular/italic/bold/bold-italic, plus any named
// variants).
type Collection []Face

// Find returns the first face in the collection matching style, weight
// and variant, falling back to the regular (normal style and weight) face
// of that variant when no exact match exists.
func (c Collection) Find(variant string, style xfnt.Style, weight xfnt.Weight) (Face, bool) {
	var fallback Face
	haveFallback := false
	for _, f := range c {
		if f.Font.Variant != variant {
			continue
		}
		if f.Font.Style == style && f.Font.Weight == weight {
			return f, true
		}
		if f.Font.Style == xfnt.StyleNormal && f.Font.Weight == xfnt.WeightNormal && !haveFallback {
			fallback = f
			haveFallback = true
		}
	}
	return fallback, haveFallback
}

// faceFrom parses a raw OpenType/TrueType font file and derives its
// Font descriptor (typeface, style, weight) from the font's name table.
func faceFrom(raw []byte) (Face, error) {
	fnt, err := sfnt.Parse(raw)
	if err != nil {
		return Face{}, err
	}
	otf, err := opentype.Parse(raw)
	if err != nil {
		return Face{}, err
	}

	var buf sfnt.Buffer
	family, _ := fnt.Name(&buf, sfnt.NameIDFamily)
	sub, _ := fnt.Name(&buf, sfnt.NameIDSubfamily)

	typeface, style, weight := parseNames(family, sub)

	return Face{
		Font: Font{
			Typeface: typeface,
			Style:    style,
			Weight:   weight,
		},
		Face: otf,
		Raw:  raw,
	}, nil
}

// parseNames derives a canonical typeface name plus style/weight from a
// font's OpenType family/subfamily strings (e.g. "Liberation Mono" /
// "Bold Italic").
func parseNames(family, sub string) (typeface string, style xfnt.Style, weight xfnt.Weight) {
	typeface = strings.TrimSpace(family)
	lower := strings.ToLower(sub)

	style = xfnt.StyleNormal
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		style = xfnt.StyleItalic
	}

	weight = xfnt.WeightNormal
	switch {
	case strings.Contains(lower, "bold"):
		weight = xfnt.WeightBold
	}

	return typeface, style, weight
}
