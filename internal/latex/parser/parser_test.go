// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser_test

import (
	"strings"
	"testing"

	"github.com/go-latex/mathtext/backend/record"
	"github.com/go-latex/mathtext/internal/latex/parser"
	"github.com/go-latex/mathtext/internal/latex/tex"
)

// fakeFonts is a minimal tex.FontMetricer standing in for *mtfont.Fonts:
// every resolvable symbol is a fixed-size box, so the parser's layout and
// error-handling paths can be exercised without real glyph data. Symbols
// containing "unknownfoo" are rejected, simulating a font that cannot
// resolve a given TeX command.
type fakeFonts struct{}

func (fakeFonts) Metrics(font, symbol string, fontsize, dpi float64) (tex.Metrics, error) {
	if strings.Contains(symbol, "unknownfoo") {
		return tex.Metrics{}, errUnknown(symbol)
	}
	scale := fontsize / 10
	return tex.Metrics{
		Advance: 10 * scale,
		Width:   10 * scale,
		Height:  10 * scale,
		Iceberg: 8 * scale,
		Xmax:    10 * scale,
		Ymax:    8 * scale,
		Ymin:    -2 * scale,
	}, nil
}

type errUnknown string

func (e errUnknown) Error() string { return "fake: unknown symbol " + string(e) }

func (fakeFonts) Kern(font1, sym1 string, size1 float64, font2, sym2 string, size2, dpi float64) float64 {
	return 0
}

func (fakeFonts) UnderlineThickness(font string, fontsize, dpi float64) float64 {
	return fontsize / 20
}

func (fakeFonts) XHeight(font string, fontsize, dpi float64) (float64, error) {
	return fontsize / 2, nil
}

func newTestParser(t *testing.T) *parser.Parser {
	t.Helper()
	return parser.NewParser(parser.Config{
		Fonts: fakeFonts{},
		Out:   record.New(),
		Font:  "it",
		Size:  10,
		DPI:   100,
	})
}

func TestParseValidExpressions(t *testing.T) {
	cases := []string{
		`$x$`,
		`$x^2$`,
		`$x_i^2$`,
		`$\frac{1}{2}$`,
		`$\sqrt{x+1}$`,
		`$\sum_{i=0}^n i$`,
		`hello $x$ world`,
		`$\left( \frac{a}{b} \right)$`,
	}
	for _, expr := range cases {
		t.Run(expr, func(t *testing.T) {
			p := newTestParser(t)
			hl, err := p.Parse(expr)
			if err != nil {
				t.Fatalf("Parse(%q) = %v, want no error", expr, err)
			}
			if hl.Width() <= 0 {
				t.Errorf("Parse(%q) produced zero-width result", expr)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		`$x_a_b$`,
		`$\frac{1}$`,
	}
	for _, expr := range cases {
		t.Run(expr, func(t *testing.T) {
			p := newTestParser(t)
			_, err := p.Parse(expr)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want an error", expr)
			}
			if _, ok := err.(*parser.ParseError); !ok {
				t.Errorf("Parse(%q) error = %T (%v), want *parser.ParseError", expr, err, err)
			}
		})
	}
}

func TestParseUnknownSymbolWarnsAndSubstitutes(t *testing.T) {
	var warnings []parser.Warning
	p := parser.NewParser(parser.Config{
		Fonts: fakeFonts{},
		Out:   record.New(),
		Font:  "it",
		Size:  10,
		DPI:   100,
		Warn:  func(w parser.Warning) { warnings = append(warnings, w) },
	})
	hl, err := p.Parse(`$\unknownfoo$`)
	if err != nil {
		t.Fatalf("Parse(%q) = %v, want success with a substituted glyph", `$\unknownfoo$`, err)
	}
	if hl.Width() <= 0 {
		t.Errorf("Parse(%q) produced zero-width result", `$\unknownfoo$`)
	}
	if len(warnings) != 1 || warnings[0].Kind != parser.UnknownSymbolWarning {
		t.Errorf("warnings = %v, want exactly one UnknownSymbolWarning", warnings)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	const expr = `$\frac{1}{2} + x^2_i$`
	p := newTestParser(t)
	hl1, err := p.Parse(expr)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	hl2, err := p.Parse(expr)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if hl1.Width() != hl2.Width() || hl1.Height() != hl2.Height() || hl1.Depth() != hl2.Depth() {
		t.Errorf("two parses of the same expression disagree: (%v,%v,%v) vs (%v,%v,%v)",
			hl1.Width(), hl1.Height(), hl1.Depth(), hl2.Width(), hl2.Height(), hl2.Depth())
	}
}

func TestParseNonMathTextRun(t *testing.T) {
	p := newTestParser(t)
	hl, err := p.Parse(`hello \textbf{world} $x$`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(hl.Children()) == 0 {
		t.Errorf("Parse produced an empty root Hlist")
	}
}

func TestParseAndShipReachesBackend(t *testing.T) {
	out := record.New()
	p := parser.NewParser(parser.Config{
		Fonts: fakeFonts{},
		Out:   out,
		Font:  "it",
		Size:  10,
		DPI:   100,
	})
	hl, err := p.Parse(`$x+y$`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var s tex.Ship
	s.Call(0, 0, hl)
	if len(out.Glyphs) == 0 {
		t.Errorf("Ship issued no glyphs for %q", `$x+y$`)
	}
}
