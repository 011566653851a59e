// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import "fmt"

// WarnKind classifies a non-fatal Warning raised while parsing or laying
// out an expression.
type WarnKind int

const (
	UnknownSymbolWarning WarnKind = iota
	OverfullWarning
	UnderfullWarning
)

func (k WarnKind) String() string {
	switch k {
	case UnknownSymbolWarning:
		return "UnknownSymbolWarning"
	case OverfullWarning:
		return "OverfullWarning"
	case UnderfullWarning:
		return "UnderfullWarning"
	default:
		return fmt.Sprintf("WarnKind(%d)", int(k))
	}
}

// Warning is a non-fatal diagnostic: an unknown symbol substitution or a
// box that could not be packed to its target size without stretching or
// shrinking glue past its natural limits. Warnings never abort a parse.
type Warning struct {
	Kind   WarnKind
	Symbol string
	Msg    string
}

func (w Warning) String() string { return w.Msg }

// ParseError reports a syntax or semantic error anchored at a line/column
// position within the original input. It is the only error type Parse
// returns for malformed input; internal invariant violations surface as a
// plain error instead, so callers can tell "bad input" apart from
// "bug in this module".
type ParseError struct {
	Input  string
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mathtext: %d:%d: %s", e.Line, e.Column, e.Msg)
}
