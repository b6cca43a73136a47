package syntax

import (
	"fmt"

	"github.com/QPC-github/fathom/source"
)

// Kind identifies a lexical token class.
type Kind int

const (
	// EOF is synthesized by the parser past the end of the token
	// stream; the lexer never yields it.
	EOF Kind = iota

	Name
	Hole
	StringLit
	NumberLit

	KwDef
	KwElse
	KwFalse
	KwFun
	KwIf
	KwLet
	KwMatch
	KwOverlap
	KwThen
	KwTrue
	KwType
	KwWhere

	At
	Colon
	Comma
	Equal
	DoubleArrow // "=>"
	Dot
	Slash
	Arrow     // "->"
	LeftArrow // "<-"
	Minus
	Pipe
	Plus
	Semi
	Star
	Underscore

	NotEqual
	EqualEqual
	GreaterEqual
	Greater
	LessEqual
	Less

	LBrace
	RBrace
	LBracket
	RBracket
	LParen
	RParen
)

var kindNames = map[Kind]string{
	EOF:          "end of input",
	Name:         "a name",
	Hole:         "a hole",
	StringLit:    "a string literal",
	NumberLit:    "a number literal",
	KwDef:        `"def"`,
	KwElse:       `"else"`,
	KwFalse:      `"false"`,
	KwFun:        `"fun"`,
	KwIf:         `"if"`,
	KwLet:        `"let"`,
	KwMatch:      `"match"`,
	KwOverlap:    `"overlap"`,
	KwThen:       `"then"`,
	KwTrue:       `"true"`,
	KwType:       `"Type"`,
	KwWhere:      `"where"`,
	At:           `"@"`,
	Colon:        `":"`,
	Comma:        `","`,
	Equal:        `"="`,
	DoubleArrow:  `"=>"`,
	Dot:          `"."`,
	Slash:        `"/"`,
	Arrow:        `"->"`,
	LeftArrow:    `"<-"`,
	Minus:        `"-"`,
	Pipe:         `"|"`,
	Plus:         `"+"`,
	Semi:         `";"`,
	Star:         `"*"`,
	Underscore:   `"_"`,
	NotEqual:     `"!="`,
	EqualEqual:   `"=="`,
	GreaterEqual: `">="`,
	Greater:      `">"`,
	LessEqual:    `"<="`,
	Less:         `"<"`,
	LBrace:       `"{"`,
	RBrace:       `"}"`,
	LBracket:     `"["`,
	RBracket:     `"]"`,
	LParen:       `"("`,
	RParen:       `")"`,
}

// String returns the description used in "expected ..." diagnostics.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"def":     KwDef,
	"else":    KwElse,
	"false":   KwFalse,
	"fun":     KwFun,
	"if":      KwIf,
	"let":     KwLet,
	"match":   KwMatch,
	"overlap": KwOverlap,
	"then":    KwThen,
	"true":    KwTrue,
	"Type":    KwType,
	"where":   KwWhere,
}

// Token is one lexeme, with its byte extent in the source text.
// Text is set for Name, Hole (the name without the "?"), StringLit
// (the full lexeme, quotes included) and NumberLit (the full lexeme);
// it is empty for fixed-spelling tokens.
type Token struct {
	Kind       Kind
	Text       string
	Start, End source.BytePos
}

// Range returns the token's byte extent.
func (t Token) Range() source.ByteRange {
	return source.ByteRange{Start: t.Start, End: t.End}
}

// describe renders the token for an error message.
func (t Token) describe() string {
	switch t.Kind {
	case Name, NumberLit:
		return fmt.Sprintf("%q", t.Text)
	case Hole:
		return fmt.Sprintf("%q", "?"+t.Text)
	case StringLit:
		return t.Text
	default:
		return t.Kind.String()
	}
}
