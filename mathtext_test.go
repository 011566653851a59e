// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathtext_test

import (
	"testing"

	"github.com/go-latex/mathtext"
)

func TestNewParserDefaults(t *testing.T) {
	if _, err := mathtext.NewParser(mathtext.Config{}); err != nil {
		t.Fatalf("NewParser(Config{}) = %v, want no error", err)
	}
}

func TestParseSimpleExpression(t *testing.T) {
	p, err := mathtext.NewParser(mathtext.Config{})
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	res, err := p.Parse(`$x$`, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Width() <= 0 || res.Height() <= 0 {
		t.Errorf("Result dims = (%v, %v, %v), want positive width/height", res.Width(), res.Height(), res.Depth())
	}
}

func TestParseCachesByExpressionAndDPI(t *testing.T) {
	p, err := mathtext.NewParser(mathtext.Config{})
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}

	r1, err := p.Parse(`$x$`, 100)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r2, err := p.Parse(`$x$`, 100)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r1 != r2 {
		t.Errorf("Parse(%q, 100) called twice returned different *Result, want a cache hit", `$x$`)
	}

	r3, err := p.Parse(`$x$`, 200)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r1 == r3 {
		t.Errorf("Parse at a different dpi returned the same cached *Result")
	}
}

func TestClearPurgesCache(t *testing.T) {
	p, err := mathtext.NewParser(mathtext.Config{})
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}

	r1, err := p.Parse(`$x$`, 100)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p.Clear()
	r2, err := p.Parse(`$x$`, 100)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r1 == r2 {
		t.Errorf("Parse after Clear() returned the pre-Clear cached *Result")
	}
}

func TestParseReportsUnknownSymbol(t *testing.T) {
	var warnings []mathtext.Warning
	p, err := mathtext.NewParser(mathtext.Config{
		Warn: func(w mathtext.Warning) { warnings = append(warnings, w) },
	})
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	res, err := p.Parse(`$\notarealcommand$`, 0)
	if err != nil {
		t.Fatalf("Parse of an unknown command = %v, want success with a substituted glyph", err)
	}
	if res.Width() <= 0 || res.Height() <= 0 {
		t.Errorf("Result dims = (%v, %v, %v), want positive width/height from the substituted glyph", res.Width(), res.Height(), res.Depth())
	}
	if len(warnings) != 1 || warnings[0].Kind != mathtext.UnknownSymbolWarning {
		t.Errorf("warnings = %v, want exactly one UnknownSymbolWarning", warnings)
	}
}
