// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mtfont

// latexToCmex mirrors mathtext.py's BakomaFonts use_cmex table: a
// handful of symbols (the radical sign and the two wide accents) that,
// under the "cm" font set, must be drawn from the "ex" (extension) role
// rather than whatever role the surrounding text is in, together with
// the codepoint of the corresponding glyph in that role's Unicode
// cmap (the Latin Modern Math face already carries Unicode-mapped
// equivalents of the original Type-1 CM extension glyphs).
var latexToCmex = map[string]struct {
	role string
	cp   rune
}{
	`\__sqrt__`: {"ex", 0x221A},
	`\widehat`:  {"ex", 0x0302},
	`\widetilde`: {"ex", 0x0303},
}

// sizedAlternatives mirrors mathtext.py's BakomaFonts/UnicodeFonts
// _size_alternatives: for delimiters that must grow to match the
// contents they enclose, the ordered list of increasingly large glyphs
// to try, each possibly drawn from a different font role (the
// extension/"ex" role carries the larger piecewise variants).
var sizedAlternatives = map[string][]struct{ Font, Symbol string }{
	"(":          {{"rm", "("}, {"ex", "⎛"}, {"ex", "⎜"}, {"ex", "⎝"}},
	")":          {{"rm", ")"}, {"ex", "⎞"}, {"ex", "⎟"}, {"ex", "⎠"}},
	"{":          {{"rm", "{"}, {"ex", "⎧"}, {"ex", "⎨"}, {"ex", "⎩"}},
	"}":          {{"rm", "}"}, {"ex", "⎫"}, {"ex", "⎬"}, {"ex", "⎭"}},
	"[":          {{"rm", "["}, {"ex", "⎡"}, {"ex", "⎢"}, {"ex", "⎣"}},
	"]":          {{"rm", "]"}, {"ex", "⎤"}, {"ex", "⎥"}, {"ex", "⎦"}},
	`\lfloor`:    {{"rm", `\lfloor`}, {"ex", "⎢"}, {"ex", "⎣"}},
	`\rfloor`:    {{"rm", `\rfloor`}, {"ex", "⎥"}, {"ex", "⎦"}},
	`\lceil`:     {{"rm", `\lceil`}, {"ex", "⎡"}, {"ex", "⎢"}},
	`\rceil`:     {{"rm", `\rceil`}, {"ex", "⎤"}, {"ex", "⎥"}},
	`\langle`:    {{"rm", `\langle`}, {"ex", "⟨"}},
	`\rangle`:    {{"rm", `\rangle`}, {"ex", "⟩"}},
	`\backslash`: {{"rm", `\backslash`}},
	"/":          {{"rm", "/"}},
	`\__sqrt__`:  {{"ex", `\__sqrt__`}},
}

// SizedAlternatives returns the ordered list of (role, symbol) pairs to
// try when an auto-sized delimiter or wide accent needs to grow to cover
// a target height or width, as used by tex.AutoHeightChar/AutoWidthChar.
func (f *Fonts) SizedAlternatives(symbol string) []struct{ Font, Symbol string } {
	if alts, ok := sizedAlternatives[symbol]; ok {
		return alts
	}
	return nil
}

// stixCalBase remaps single uppercase calligraphic letters into the
// Private Use Area the way mathtext.py's StixFonts._get_glyph does:
// PUA codepoint = 0xE22D + (c - 'A').
const stixCalBase = 0xE22D

// stixRemap applies the STIX family's glyph substitutions when the
// requested role is "cal": a single uppercase letter moves into the PUA
// range above. STIX's numbered size-variant families are not modeled,
// here or elsewhere: SizedAlternatives uses the same table for every font
// set. Returns ok=false when no substitution
// applies, leaving the caller's (role, codepoint) untouched.
func stixRemap(role, symbol string, cp rune) (mapped rune, newRole string, ok bool) {
	if role == "cal" && len(symbol) == 1 && symbol[0] >= 'A' && symbol[0] <= 'Z' {
		return stixCalBase + rune(symbol[0]-'A'), "cal", true
	}
	return 0, "", false
}
