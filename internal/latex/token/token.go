// Copyright ©2024 The go-latex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package token defines the lexical tokens produced by the scanner and
// consumed by the parser.
package token // import "github.com/go-latex/mathtext/internal/latex/token"

import "fmt"

type Kind int

const (
	Invalid Kind = iota
	Macro
	EmptyLine
	Comment
	Space
	Word
	Number
	Dollar
	Lbrace
	Rbrace
	Lbrack
	Rbrack
	Equal
	Underscore
	Lparen
	Rparen
	Lt
	Gt
	Hat
	Div
	Mul
	Sub
	Add
	Not
	Colon
	Backslash
	Other
	Verbatim
	EOF
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Macro:
		return "Macro"
	case EmptyLine:
		return "EmptyLine"
	case Comment:
		return "Comment"
	case Space:
		return "Space"
	case Word:
		return "Word"
	case Number:
		return "Number"
	case Dollar:
		return "Dollar"
	case Lbrace:
		return "Lbrace"
	case Rbrace:
		return "Rbrace"
	case Lbrack:
		return "Lbrack"
	case Rbrack:
		return "Rbrack"
	case Equal:
		return "Equal"
	case Underscore:
		return "Underscore"
	case Lparen:
		return "Lparen"
	case Rparen:
		return "Rparen"
	case Lt:
		return "Lt"
	case Gt:
		return "Gt"
	case Hat:
		return "Hat"
	case Div:
		return "Div"
	case Mul:
		return "Mul"
	case Sub:
		return "Sub"
	case Add:
		return "Add"
	case Not:
		return "Not"
	case Colon:
		return "Colon"
	case Backslash:
		return "Backslash"
	case Other:
		return "Other"
	case Verbatim:
		return "Verbatim"
	case EOF:
		return "EOF"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Token struct {
	Kind Kind
	Pos  Pos
	Text string
}

func (t Token) String() string { return t.Text }

type Pos int

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

