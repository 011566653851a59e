// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

// functionNames is mathtext.py's _function_names: symbols that render as
// a roman-type word rather than a sequence of italic variables.
var functionNames = map[string]bool{
	"arccos": true, "arcsin": true, "arctan": true, "arg": true,
	"cos": true, "cosh": true, "cot": true, "coth": true,
	"csc": true, "deg": true, "dim": true, "exp": true,
	"gcd": true, "hom": true, "inf": true, "ker": true,
	"lg": true, "lim": true, "liminf": true, "limsup": true,
	"ln": true, "log": true, "max": true, "min": true,
	"Pr": true, "sec": true, "sin": true, "sinh": true,
	"sup": true, "tan": true, "tanh": true,
}

// overUnderFunctions is the smaller subset of functionNames (mathtext.py's
// _over_under_functions) whose sub/superscripts are drawn as limits above
// and below the name rather than attached inline at its corner.
var overUnderFunctions = map[string]bool{
	"lim": true, "liminf": true, "limsup": true,
	"sup": true, "max": true, "min": true,
}

// overUnderSymbols is the equivalent set for "big operator" glyphs (as
// opposed to named functions): large sums, products and unions take their
// limits above/below rather than as inline scripts.
var overUnderSymbols = map[string]bool{
	`\sum`: true, `\prod`: true, `\coprod`: true,
	`\bigcup`: true, `\bigcap`: true, `\bigvee`: true, `\bigwedge`: true,
	`\bigoplus`: true, `\bigotimes`: true, `\bigodot`: true, `\biguplus`: true,
}

// binaryOperators is a subset of mathtext.py's _binary_operators.
var binaryOperators = map[string]bool{
	"+": true, "-": true, "*": true,
	`\pm`: true, `\mp`: true, `\times`: true, `\div`: true, `\cdot`: true,
	`\ast`: true, `\star`: true, `\circ`: true, `\bullet`: true,
	`\oplus`: true, `\ominus`: true, `\otimes`: true, `\oslash`: true, `\odot`: true,
	`\cup`: true, `\cap`: true, `\sqcup`: true, `\sqcap`: true,
	`\vee`: true, `\wedge`: true, `\setminus`: true, `\wr`: true,
	`\amalg`: true, `\uplus`: true,
}

// relationSymbols is a subset of mathtext.py's _relation_symbols.
var relationSymbols = map[string]bool{
	"=": true, "<": true, ">": true,
	`\leq`: true, `\geq`: true, `\neq`: true, `\equiv`: true,
	`\sim`: true, `\simeq`: true, `\approx`: true, `\cong`: true,
	`\propto`: true, `\subset`: true, `\supset`: true,
	`\subseteq`: true, `\supseteq`: true, `\in`: true, `\ni`: true,
	`\parallel`: true, `\perp`: true, `\asymp`: true, `\doteq`: true,
	`\ll`: true, `\gg`: true,
}

// arrowSymbols is a subset of mathtext.py's _arrow_symbols.
var arrowSymbols = map[string]bool{
	`\leftarrow`: true, `\rightarrow`: true, `\leftrightarrow`: true,
	`\Leftarrow`: true, `\Rightarrow`: true, `\Leftrightarrow`: true,
	`\uparrow`: true, `\downarrow`: true, `\updownarrow`: true,
	`\mapsto`: true, `\to`: true, `\longrightarrow`: true, `\longleftarrow`: true,
}

// punctuationSymbols is mathtext.py's _punctuation_symbols: these get a
// thin space after them, never before.
var punctuationSymbols = map[string]bool{
	",": true, ";": true, ".": true, "!": true,
	`\ldotp`: true, `\cdotp`: true,
}

func isSpacedSymbol(sym string) bool {
	return binaryOperators[sym] || relationSymbols[sym] || arrowSymbols[sym]
}

func isPunctuationSymbol(sym string) bool {
	return punctuationSymbols[sym]
}

// accentCommands maps a narrow accent macro to the accent character (a
// spacing or a combining form) drawn above its nucleus.
var accentCommands = map[string]string{
	`\hat`: "̂", `\breve`: "˘", `\bar`: "ˉ",
	`\grave`: "`", `\acute`: "´", `\tilde`: "̃",
	`\dot`: "˙", `\ddot`: "¨", `\vec`: "⃗", `\check`: "ˇ",
}

// wideAccentCommands are accents that must grow to the width of their
// nucleus instead of sitting at a fixed glyph size above it.
var wideAccentCommands = map[string]bool{
	"widehat": true, "widetilde": true,
}
