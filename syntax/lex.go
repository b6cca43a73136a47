package syntax

import (
	"bytes"
	"fmt"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/QPC-github/fathom/source"
)

// LexErrorKind classifies a lexical failure.
type LexErrorKind int

const (
	// UnexpectedCharacter reports a character that cannot begin any
	// token.
	UnexpectedCharacter LexErrorKind = iota
	// UnknownOperator reports a run of operator characters that does
	// not spell an operator.
	UnknownOperator
	// UnterminatedLiteral reports a string literal with no closing
	// quote before end of line or input.
	UnterminatedLiteral
	// InvalidLiteral reports a malformed literal, e.g. a bad escape.
	InvalidLiteral
)

// String returns a human-readable kind name.
func (k LexErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected character"
	case UnknownOperator:
		return "unknown operator"
	case UnterminatedLiteral:
		return "unterminated literal"
	case InvalidLiteral:
		return "invalid literal"
	}
	return fmt.Sprintf("lex error kind(%d)", int(k))
}

// LexError describes a lexical failure. The token stream ends at the
// failing position; the parser surfaces the error as a diagnostic.
type LexError struct {
	Span source.ByteRange
	Kind LexErrorKind
	Msg  string
}

// Error implements error.
func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Msg)
}

// Lexer splits a source text into tokens. Byte offsets in the
// returned tokens index into the source passed to NewLexer.
type Lexer struct {
	sc   scanner.Scanner
	err  *LexError
	done bool

	opPrefixes map[string][]Kind
	ops        map[string]Kind
	opChars    [256]bool
}

type lexOpDef struct {
	str  string
	kind Kind
}

var lexOpDefs = []lexOpDef{
	{"@", At},
	{":", Colon},
	{",", Comma},
	{"=", Equal},
	{"==", EqualEqual},
	{"=>", DoubleArrow},
	{".", Dot},
	{"/", Slash},
	{"-", Minus},
	{"->", Arrow},
	{"<", Less},
	{"<=", LessEqual},
	{"<-", LeftArrow},
	{">", Greater},
	{">=", GreaterEqual},
	{"!=", NotEqual},
	{"|", Pipe},
	{"+", Plus},
	{";", Semi},
	{"*", Star},
	{"{", LBrace},
	{"}", RBrace},
	{"[", LBracket},
	{"]", RBracket},
	{"(", LParen},
	{")", RParen},
}

// NewLexer creates a lexer over src.
func NewLexer(src []byte) *Lexer {
	lex := &Lexer{}
	lex.sc.Init(bytes.NewReader(src))
	lex.sc.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	lex.sc.IsIdentRune = func(ch rune, i int) bool {
		return ch == '_' || unicode.IsLetter(ch) || (unicode.IsDigit(ch) && i > 0)
	}
	lex.sc.Error = func(sc *scanner.Scanner, msg string) {
		if lex.err != nil {
			return
		}
		pos := source.BytePos(sc.Pos().Offset)
		kind := InvalidLiteral
		if strings.Contains(msg, "not terminated") {
			kind = UnterminatedLiteral
		}
		lex.err = &LexError{
			Span: source.ByteRange{Start: pos, End: pos},
			Kind: kind,
			Msg:  msg,
		}
	}
	lex.opPrefixes = map[string][]Kind{}
	lex.ops = map[string]Kind{}
	for _, d := range lexOpDefs {
		lex.registerOp(d.str, d.kind)
	}
	return lex
}

func (lex *Lexer) registerOp(op string, kind Kind) {
	for _, ch := range op {
		lex.opChars[ch] = true
	}
	lex.ops[op] = kind
	for i := 0; i < len(op); i++ {
		prefix := op[0 : i+1]
		lex.opPrefixes[prefix] = append(lex.opPrefixes[prefix], kind)
	}
}

func (lex *Lexer) numPossibleOpsWithPrefix(prefix string) int {
	return len(lex.opPrefixes[prefix])
}

// Err returns the lexical error that ended the stream, if any.
func (lex *Lexer) Err() *LexError { return lex.err }

func (lex *Lexer) fail(span source.ByteRange, kind LexErrorKind, format string, args ...interface{}) (Token, bool) {
	if lex.err == nil {
		lex.err = &LexError{Span: span, Kind: kind, Msg: fmt.Sprintf(format, args...)}
	}
	lex.done = true
	return Token{}, false
}

// Next returns the next token. It returns false at end of input or
// on a lexical error; the two are told apart via Err.
func (lex *Lexer) Next() (Token, bool) {
	if lex.done || lex.err != nil {
		return Token{}, false
	}
	tok := lex.sc.Scan()
	start := source.BytePos(lex.sc.Position.Offset)
	end := source.BytePos(lex.sc.Pos().Offset)
	if lex.err != nil {
		lex.done = true
		return Token{}, false
	}
	switch tok {
	case scanner.EOF:
		lex.done = true
		return Token{}, false
	case scanner.Ident:
		text := lex.sc.TokenText()
		if text == "_" {
			return Token{Kind: Underscore, Start: start, End: end}, true
		}
		if kind, ok := keywords[text]; ok {
			return Token{Kind: kind, Start: start, End: end}, true
		}
		return Token{Kind: Name, Text: text, Start: start, End: end}, true
	case scanner.Int, scanner.Float:
		// Numbers are opaque lexemes here. Validation and radix
		// interpretation happen during elaboration.
		return Token{Kind: NumberLit, Text: lex.sc.TokenText(), Start: start, End: end}, true
	case scanner.String:
		// The lexeme is kept verbatim, quotes and escapes included.
		return Token{Kind: StringLit, Text: lex.sc.TokenText(), Start: start, End: end}, true
	case '?':
		ch := lex.sc.Peek()
		if ch != '_' && !unicode.IsLetter(ch) {
			return lex.fail(source.ByteRange{Start: start, End: end},
				UnexpectedCharacter, "expected a name after %q", "?")
		}
		buf := strings.Builder{}
		for {
			ch := lex.sc.Peek()
			if ch != '_' && !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
				break
			}
			buf.WriteRune(lex.sc.Next())
		}
		end = source.BytePos(lex.sc.Pos().Offset)
		return Token{Kind: Hole, Text: buf.String(), Start: start, End: end}, true
	default:
		if tok <= 0 || tok > 127 || !lex.opChars[tok] {
			return lex.fail(source.ByteRange{Start: start, End: end},
				UnexpectedCharacter, "unexpected character %q", string(tok))
		}
		buf := bytes.Buffer{}
		buf.WriteByte(byte(tok))
		if lex.numPossibleOpsWithPrefix(buf.String()) <= 1 {
			if op, ok := lex.ops[buf.String()]; ok {
				return Token{Kind: op, Start: start, End: end}, true
			}
		}
		for {
			ch := lex.sc.Peek()
			if ch <= 0 || ch >= 256 || !lex.opChars[ch] {
				break
			}
			buf.WriteByte(byte(ch))
			switch lex.numPossibleOpsWithPrefix(buf.String()) {
			case 0:
				buf.Truncate(buf.Len() - 1)
				goto end
			case 1:
				lex.sc.Next()
				if op, ok := lex.ops[buf.String()]; ok {
					return Token{Kind: op, Start: start, End: source.BytePos(lex.sc.Pos().Offset)}, true
				}
			default:
				lex.sc.Next()
			}
		}
	end:
		op, ok := lex.ops[buf.String()]
		if !ok {
			return lex.fail(source.ByteRange{Start: start, End: source.BytePos(lex.sc.Pos().Offset)},
				UnknownOperator, "unknown operator %q", buf.String())
		}
		return Token{Kind: op, Start: start, End: source.BytePos(lex.sc.Pos().Offset)}, true
	}
}

// Lex tokenizes src in one call. On a lexical error the tokens read
// so far are returned along with the error.
func Lex(src []byte) ([]Token, *LexError) {
	lex := NewLexer(src)
	var toks []Token
	for {
		tok, ok := lex.Next()
		if !ok {
			return toks, lex.Err()
		}
		toks = append(toks, tok)
	}
}
