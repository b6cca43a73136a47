package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexOps(t *testing.T) {
	for _, testCase := range lexOpDefs {
		toks, err := Lex([]byte(testCase.str))
		require.Nilf(t, err, "op: %+v", testCase)
		require.Lenf(t, toks, 1, "op: %+v", testCase)
		require.Equalf(t, testCase.kind, toks[0].Kind, "op: %+v", testCase)
		require.Equal(t, lexeme(t, testCase.str, toks[0]), testCase.str)
	}
}

// lexeme extracts the text a token's range covers.
func lexeme(t *testing.T, src string, tok Token) string {
	require.True(t, tok.Start <= tok.End)
	require.True(t, int(tok.End) <= len(src))
	return src[tok.Start:tok.End]
}

func TestLexKeywords(t *testing.T) {
	for text, kind := range keywords {
		toks, err := Lex([]byte(text))
		require.Nil(t, err)
		require.Len(t, toks, 1)
		assert.Equal(t, kind, toks[0].Kind)
	}
	// A keyword prefix is still a name.
	toks, err := Lex([]byte("definition iffy Typed"))
	require.Nil(t, err)
	require.Len(t, toks, 3)
	for i, want := range []string{"definition", "iffy", "Typed"} {
		assert.Equal(t, Name, toks[i].Kind)
		assert.Equal(t, want, toks[i].Text)
	}
}

func TestLexNames(t *testing.T) {
	toks, err := Lex([]byte("u16 _tag x3 _"))
	require.Nil(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, Name, toks[0].Kind)
	assert.Equal(t, "u16", toks[0].Text)
	assert.Equal(t, Name, toks[1].Kind)
	assert.Equal(t, "_tag", toks[1].Text)
	assert.Equal(t, Name, toks[2].Kind)
	assert.Equal(t, Underscore, toks[3].Kind)
}

func TestLexHole(t *testing.T) {
	toks, err := Lex([]byte("?x ?size2"))
	require.Nil(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, Hole, toks[0].Kind)
	assert.Equal(t, "x", toks[0].Text)
	assert.Equal(t, Hole, toks[1].Kind)
	assert.Equal(t, "size2", toks[1].Text)
	assert.Equal(t, "?size2", "?x ?size2"[toks[1].Start:toks[1].End])

	_, lexErr := Lex([]byte("? x"))
	require.NotNil(t, lexErr)
	assert.Equal(t, UnexpectedCharacter, lexErr.Kind)
}

func TestLexNumbers(t *testing.T) {
	// Number lexemes are opaque; only their extents matter here.
	for _, text := range []string{"0", "123", "0xFF7F", "0b1010", "1_000", "1.5", "2e10"} {
		toks, err := Lex([]byte(text))
		require.Nilf(t, err, "number: %s", text)
		require.Lenf(t, toks, 1, "number: %s", text)
		assert.Equal(t, NumberLit, toks[0].Kind)
		assert.Equal(t, text, toks[0].Text)
	}
	// "-" is always its own token; signs are grammar, not lexing.
	toks, err := Lex([]byte("-5"))
	require.Nil(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, Minus, toks[0].Kind)
	assert.Equal(t, NumberLit, toks[1].Kind)
}

func TestLexStrings(t *testing.T) {
	toks, err := Lex([]byte(`"abc" "a\"b" ""`))
	require.Nil(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, StringLit, toks[0].Kind)
	assert.Equal(t, `"abc"`, toks[0].Text)
	assert.Equal(t, `"a\"b"`, toks[1].Text)
	assert.Equal(t, `""`, toks[2].Text)
}

func TestLexUnterminatedString(t *testing.T) {
	toks, lexErr := Lex([]byte(`x = "abc`))
	require.NotNil(t, lexErr)
	assert.Equal(t, UnterminatedLiteral, lexErr.Kind)
	// Tokens before the failure are kept.
	require.Len(t, toks, 2)
	assert.Equal(t, Name, toks[0].Kind)
	assert.Equal(t, Equal, toks[1].Kind)
}

func TestLexUnknownChar(t *testing.T) {
	for _, text := range []string{"a & b", "$x", "a # b"} {
		_, lexErr := Lex([]byte(text))
		require.NotNilf(t, lexErr, "input: %s", text)
		assert.Equal(t, UnexpectedCharacter, lexErr.Kind)
	}
	_, lexErr := Lex([]byte("a ! b"))
	require.NotNil(t, lexErr)
	assert.Equal(t, UnknownOperator, lexErr.Kind)
}

func TestLexComments(t *testing.T) {
	toks, err := Lex([]byte("a // comment\nb /* block */ c"))
	require.Nil(t, err)
	require.Len(t, toks, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, Name, toks[i].Kind)
		assert.Equal(t, want, toks[i].Text)
	}
}

func TestLexMultiCharOps(t *testing.T) {
	toks, err := Lex([]byte("a<-b->c=>d==e!=f<=g>=h"))
	require.Nil(t, err)
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{
		Name, LeftArrow, Name, Arrow, Name, DoubleArrow, Name, EqualEqual,
		Name, NotEqual, Name, LessEqual, Name, GreaterEqual, Name,
	}, kinds)
}

func TestLexOffsets(t *testing.T) {
	src := "def x = 10;"
	toks, err := Lex([]byte(src))
	require.Nil(t, err)
	require.Len(t, toks, 5)
	for _, want := range []string{"def", "x", "=", "10", ";"} {
		tok := toks[0]
		toks = toks[1:]
		assert.Equal(t, want, src[tok.Start:tok.End])
	}
}

func TestLexerPull(t *testing.T) {
	lex := NewLexer([]byte("x + y"))
	tok, ok := lex.Next()
	require.True(t, ok)
	assert.Equal(t, Name, tok.Kind)
	tok, ok = lex.Next()
	require.True(t, ok)
	assert.Equal(t, Plus, tok.Kind)
	tok, ok = lex.Next()
	require.True(t, ok)
	assert.Equal(t, Name, tok.Kind)
	_, ok = lex.Next()
	require.False(t, ok)
	assert.Nil(t, lex.Err())
}
