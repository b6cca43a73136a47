package syntax

// The parser. It is a hand-maintained precedence parser over the
// token stream: each binary level recurses into itself on the right
// and into the next-tighter level on the left, so every binary
// operator associates to the right. Braced constructs are
// disambiguated by the shape of their first field.
//
// The parser never fails. Errors raised while parsing an item unwind
// to the item boundary and leave an ASTError item behind; errors
// inside a tuple or array element are contained to that element when
// its "," or closing bracket can be reached, and otherwise unwind to
// the item. Every recovery reports exactly one message.

import (
	"github.com/grailbio/base/log"

	"github.com/QPC-github/fathom/arena"
	"github.com/QPC-github/fathom/source"
	"github.com/QPC-github/fathom/symbol"
)

// parseFailure carries a diagnostic up to the nearest recovery
// point. It is the only panic the parser recovers from.
type parseFailure struct {
	msg Message
}

type parser struct {
	toks    []Token
	pos     int
	prevEnd source.BytePos // end of the last consumed token
	eofPos  source.BytePos
	tbl     *symbol.Table
	ar      *arena.Arena
	msgs    *Messages
}

func newParser(src []byte, tbl *symbol.Table, ar *arena.Arena, msgs *Messages) *parser {
	toks, lexErr := Lex(src)
	eofPos := source.BytePos(len(src))
	if lexErr != nil {
		// The token stream ends at the error; the parser sees EOF
		// there.
		msgs.Report(Message{Span: lexErr.Span, Kind: LexicalError, Found: lexErr.Msg})
		eofPos = lexErr.Span.Start
	}
	return &parser{toks: toks, eofPos: eofPos, tbl: tbl, ar: ar, msgs: msgs}
}

// ParseModule parses one source file into a module. It always
// returns: syntax errors become ASTError items and diagnostics in
// msgs. The returned tree is backed by ar and references handles in
// tbl.
func ParseModule(src []byte, tbl *symbol.Table, ar *arena.Arena, msgs *Messages) *Module {
	p := newParser(src, tbl, ar, msgs)
	var items []Item
	for !p.atEOF() {
		items = append(items, p.parseItem())
	}
	log.Debug.Printf("syntax: parsed %d items, %d diagnostics, %d bytes of nodes",
		len(items), msgs.Len(), ar.Bytes())
	return arena.Alloc(ar, Module{Items: arena.Copy(ar, items)})
}

// ParseTerm parses a single term; for the REPL and tests. Like
// ParseModule it always returns; input left over after the term is
// reported as an extra token.
func ParseTerm(src []byte, tbl *symbol.Table, ar *arena.Arena, msgs *Messages) Term {
	p := newParser(src, tbl, ar, msgs)
	t := p.parseTopTerm()
	if !p.atEOF() {
		tok := p.cur()
		p.msgs.Report(Message{Span: tok.Range(), Kind: ExtraToken, Found: tok.describe()})
	}
	return t
}

func (p *parser) parseTopTerm() (t Term) {
	start := p.cur().Start
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(*parseFailure)
			if !ok {
				panic(r)
			}
			p.msgs.Report(f.msg)
			p.pos = len(p.toks)
			end := p.prevEnd
			if end < start {
				end = start
			}
			t = arena.Alloc(p.ar, ASTError{Span: source.ByteRange{Start: start, End: end}})
		}
	}()
	return p.parseTerm()
}

// Token cursor.

func (p *parser) cur() Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return Token{Kind: EOF, Start: p.eofPos, End: p.eofPos}
}

func (p *parser) peekKind(n int) Kind {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n].Kind
	}
	return EOF
}

func (p *parser) atEOF() bool { return p.pos >= len(p.toks) }

func (p *parser) at(k Kind) bool { return p.cur().Kind == k }

func (p *parser) advance() Token {
	tok := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
		p.prevEnd = tok.End
	}
	return tok
}

func (p *parser) expect(k Kind) Token {
	if p.cur().Kind != k {
		p.failHere(k.String())
	}
	return p.advance()
}

// failHere unwinds to the nearest recovery point with an
// unexpected-token (or unexpected-EOF) diagnostic for the current
// token.
func (p *parser) failHere(expected ...string) {
	tok := p.cur()
	msg := Message{Span: tok.Range(), Kind: UnexpectedToken, Found: tok.describe(), Expected: expected}
	if tok.Kind == EOF {
		msg.Kind = UnrecognizedEOF
		msg.Found = ""
	}
	panic(&parseFailure{msg: msg})
}

// Items.

func (p *parser) parseItem() (item Item) {
	start := p.cur().Start
	startPos := p.pos
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(*parseFailure)
			if !ok {
				panic(r)
			}
			p.msgs.Report(f.msg)
			if p.pos == startPos && !p.atEOF() {
				p.advance() // guarantee progress
			}
			p.skipToItemBoundary()
			end := p.prevEnd
			if end < start {
				end = start
			}
			item = arena.Alloc(p.ar, ASTError{Span: source.ByteRange{Start: start, End: end}})
		}
	}()
	return p.parseDef()
}

// skipToItemBoundary discards tokens up to and including the next
// top-level ";", or up to (not including) a top-level "def" or EOF.
func (p *parser) skipToItemBoundary() {
	depth := 0
	for !p.atEOF() {
		switch p.cur().Kind {
		case KwDef:
			if depth == 0 {
				return
			}
		case Semi:
			if depth == 0 {
				p.advance()
				return
			}
		case LParen, LBrace, LBracket:
			depth++
		case RParen, RBrace, RBracket:
			if depth > 0 {
				depth--
			}
		}
		p.advance()
	}
}

func (p *parser) parseDef() Item {
	defTok := p.expect(KwDef)
	label := p.parseLabel()
	var params []Param
	for p.startsParam() {
		params = append(params, p.parseParam())
	}
	var typ Term
	if p.at(Colon) {
		p.advance()
		typ = p.parseLetTerm()
	}
	p.expect(Equal)
	expr := p.parseTerm()
	semi := p.expect(Semi)
	return arena.Alloc(p.ar, ASTDef{
		Span:   source.ByteRange{Start: defTok.Start, End: semi.End},
		Label:  label,
		Params: arena.Copy(p.ar, params),
		Type:   typ,
		Expr:   expr,
	})
}

func (p *parser) parseLabel() Label {
	tok := p.expect(Name)
	return Label{Span: tok.Range(), Name: p.tbl.Intern(tok.Text)}
}

// Parameters and patterns.

func startsPattern(k Kind) bool {
	switch k {
	case Name, Underscore, StringLit, NumberLit, KwTrue, KwFalse:
		return true
	}
	return false
}

func (p *parser) startsParam() bool {
	k := p.cur().Kind
	return k == At || k == LParen || startsPattern(k)
}

// parseParam parses "pattern", "@pattern", or the parenthesized,
// annotated forms "(pattern : Type)" and "(@pattern : Type)". The
// annotation is required inside parentheses and unavailable outside
// them.
func (p *parser) parseParam() Param {
	if p.at(LParen) {
		p.advance()
		plicity := Explicit
		if p.at(At) {
			p.advance()
			plicity = Implicit
		}
		pat := p.parsePattern()
		p.expect(Colon)
		typ := p.parseLetTerm()
		p.expect(RParen)
		return Param{Plicity: plicity, Pattern: pat, Type: typ}
	}
	plicity := Explicit
	if p.at(At) {
		p.advance()
		plicity = Implicit
	}
	return Param{Plicity: plicity, Pattern: p.parsePattern()}
}

func (p *parser) parsePattern() Pattern {
	tok := p.cur()
	switch tok.Kind {
	case Name:
		p.advance()
		return arena.Alloc(p.ar, ASTNamePattern{Span: tok.Range(), Name: p.tbl.Intern(tok.Text)})
	case Underscore:
		p.advance()
		return arena.Alloc(p.ar, ASTPlaceholderPattern{Span: tok.Range()})
	case StringLit:
		p.advance()
		return arena.Alloc(p.ar, ASTStringPattern{Span: tok.Range(), Text: p.tbl.Intern(tok.Text)})
	case NumberLit:
		p.advance()
		return arena.Alloc(p.ar, ASTNumberPattern{Span: tok.Range(), Text: p.tbl.Intern(tok.Text)})
	case KwTrue, KwFalse:
		p.advance()
		return arena.Alloc(p.ar, ASTBooleanPattern{Span: tok.Range(), Value: tok.Kind == KwTrue})
	}
	p.failHere("a pattern")
	panic("unreachable")
}

// The precedence ladder, loosest first.

func (p *parser) parseTerm() Term {
	t := p.parseLetTerm()
	if p.at(Colon) {
		p.advance()
		typ := p.parseLetTerm()
		t = arena.Alloc(p.ar, ASTAnn{
			Span: t.Range().Cover(typ.Range()),
			Expr: t,
			Type: typ,
		})
	}
	return t
}

func (p *parser) parseLetTerm() Term {
	switch p.cur().Kind {
	case KwLet:
		letTok := p.advance()
		pat := p.parsePattern()
		var typ Term
		if p.at(Colon) {
			p.advance()
			typ = p.parseLetTerm()
		}
		p.expect(Equal)
		val := p.parseTerm()
		p.expect(Semi)
		body := p.parseLetTerm()
		return arena.Alloc(p.ar, ASTLet{
			Span:    source.ByteRange{Start: letTok.Start, End: body.Range().End},
			Pattern: pat,
			Type:    typ,
			Value:   val,
			Body:    body,
		})
	case KwIf:
		ifTok := p.advance()
		cond := p.parseFunTerm()
		p.expect(KwThen)
		then := p.parseLetTerm()
		p.expect(KwElse)
		els := p.parseLetTerm()
		return arena.Alloc(p.ar, ASTIf{
			Span: source.ByteRange{Start: ifTok.Start, End: els.Range().End},
			Cond: cond,
			Then: then,
			Else: els,
		})
	}
	return p.parseFunTerm()
}

func (p *parser) parseFunTerm() Term {
	switch p.cur().Kind {
	case KwFun:
		funTok := p.advance()
		var params []Param
		for p.startsParam() {
			params = append(params, p.parseParam())
		}
		if len(params) == 0 {
			p.failHere("a parameter")
		}
		switch p.cur().Kind {
		case Arrow:
			p.advance()
			body := p.parseFunTerm()
			return arena.Alloc(p.ar, ASTFunType{
				Span:     source.ByteRange{Start: funTok.Start, End: body.Range().End},
				Params:   arena.Copy(p.ar, params),
				BodyType: body,
			})
		case DoubleArrow:
			p.advance()
			body := p.parseLetTerm()
			return arena.Alloc(p.ar, ASTFunLiteral{
				Span:   source.ByteRange{Start: funTok.Start, End: body.Range().End},
				Params: arena.Copy(p.ar, params),
				Body:   body,
			})
		}
		p.failHere(Arrow.String(), DoubleArrow.String())
	case At:
		atTok := p.advance()
		dom := p.parseAppTerm()
		p.expect(Arrow)
		cod := p.parseFunTerm()
		return arena.Alloc(p.ar, ASTArrow{
			Span:      source.ByteRange{Start: atTok.Start, End: cod.Range().End},
			Plicity:   Implicit,
			ParamType: dom,
			BodyType:  cod,
		})
	}
	lhs := p.parseEqTerm()
	if p.at(Arrow) {
		p.advance()
		rhs := p.parseFunTerm()
		return arena.Alloc(p.ar, ASTArrow{
			Span:      lhs.Range().Cover(rhs.Range()),
			Plicity:   Explicit,
			ParamType: lhs,
			BodyType:  rhs,
		})
	}
	return lhs
}

var (
	eqOps  = map[Kind]BinOpKind{EqualEqual: OpEq, NotEqual: OpNeq}
	cmpOps = map[Kind]BinOpKind{Less: OpLt, LessEqual: OpLte, Greater: OpGt, GreaterEqual: OpGte}
	addOps = map[Kind]BinOpKind{Plus: OpAdd, Minus: OpSub}
	mulOps = map[Kind]BinOpKind{Star: OpMul, Slash: OpDiv}
)

// parseBinRight parses one binary level: the left operand at the
// tighter level, the right operand at the same level. All levels
// associate to the right.
func (p *parser) parseBinRight(tighter func() Term, ops map[Kind]BinOpKind, same func() Term) Term {
	lhs := tighter()
	opKind, ok := ops[p.cur().Kind]
	if !ok {
		return lhs
	}
	opTok := p.advance()
	rhs := same()
	return arena.Alloc(p.ar, ASTBinOp{
		Span: lhs.Range().Cover(rhs.Range()),
		Lhs:  lhs,
		Op:   BinOp{Span: opTok.Range(), Kind: opKind},
		Rhs:  rhs,
	})
}

func (p *parser) parseEqTerm() Term {
	return p.parseBinRight(p.parseCmpTerm, eqOps, p.parseEqTerm)
}

func (p *parser) parseCmpTerm() Term {
	return p.parseBinRight(p.parseAddTerm, cmpOps, p.parseCmpTerm)
}

func (p *parser) parseAddTerm() Term {
	return p.parseBinRight(p.parseMulTerm, addOps, p.parseAddTerm)
}

func (p *parser) parseMulTerm() Term {
	return p.parseBinRight(p.parseAppTerm, mulOps, p.parseMulTerm)
}

func (p *parser) parseAppTerm() Term {
	head := p.parseProjTerm()
	var args []Arg
	for {
		if p.at(At) {
			p.advance()
			args = append(args, Arg{Plicity: Implicit, Term: p.parseProjTerm()})
			continue
		}
		if startsAtomic(p.cur().Kind) {
			args = append(args, Arg{Plicity: Explicit, Term: p.parseProjTerm()})
			continue
		}
		break
	}
	if len(args) == 0 {
		return head
	}
	return arena.Alloc(p.ar, ASTApp{
		Span: head.Range().Cover(args[len(args)-1].Term.Range()),
		Head: head,
		Args: arena.Copy(p.ar, args),
	})
}

func (p *parser) parseProjTerm() Term {
	t := p.parseAtomic()
	if !p.at(Dot) {
		return t
	}
	var labels []Label
	for p.at(Dot) {
		p.advance()
		labels = append(labels, p.parseLabel())
	}
	return arena.Alloc(p.ar, ASTProj{
		Span:   t.Range().Cover(labels[len(labels)-1].Span),
		Head:   t,
		Labels: arena.Copy(p.ar, labels),
	})
}

// Atomic terms.

func startsAtomic(k Kind) bool {
	switch k {
	case LParen, LBrace, LBracket, Name, Underscore, Hole, KwType,
		KwMatch, KwOverlap, StringLit, NumberLit, KwTrue, KwFalse:
		return true
	}
	return false
}

func (p *parser) parseAtomic() Term {
	tok := p.cur()
	switch tok.Kind {
	case LParen:
		return p.parseParenOrTuple()
	case LBrace:
		return p.parseBrace()
	case LBracket:
		return p.parseArray()
	case Name:
		p.advance()
		return arena.Alloc(p.ar, ASTName{Span: tok.Range(), Name: p.tbl.Intern(tok.Text)})
	case Underscore:
		p.advance()
		return arena.Alloc(p.ar, ASTPlaceholder{Span: tok.Range()})
	case Hole:
		p.advance()
		return arena.Alloc(p.ar, ASTHole{Span: tok.Range(), Name: p.tbl.Intern(tok.Text)})
	case KwType:
		p.advance()
		return arena.Alloc(p.ar, ASTUniverse{Span: tok.Range()})
	case StringLit:
		p.advance()
		return arena.Alloc(p.ar, ASTStringLiteral{Span: tok.Range(), Text: p.tbl.Intern(tok.Text)})
	case NumberLit:
		p.advance()
		return arena.Alloc(p.ar, ASTNumberLiteral{Span: tok.Range(), Text: p.tbl.Intern(tok.Text)})
	case KwTrue, KwFalse:
		p.advance()
		return arena.Alloc(p.ar, ASTBooleanLiteral{Span: tok.Range(), Value: tok.Kind == KwTrue})
	case KwMatch:
		return p.parseMatch()
	case KwOverlap:
		ovTok := p.advance()
		p.expect(LBrace)
		fields := p.parseFormatFields()
		if len(fields) == 0 {
			p.failHere("a format field")
		}
		rb := p.expect(RBrace)
		return arena.Alloc(p.ar, ASTFormatOverlap{
			Span:   source.ByteRange{Start: ovTok.Start, End: rb.End},
			Fields: arena.Copy(p.ar, fields),
		})
	}
	p.failHere("a term")
	panic("unreachable")
}

func (p *parser) parseParenOrTuple() Term {
	lp := p.advance()
	if p.at(RParen) {
		rp := p.advance()
		return arena.Alloc(p.ar, ASTTuple{Span: source.ByteRange{Start: lp.Start, End: rp.End}})
	}
	first := p.parseSeqTerm(RParen)
	if p.at(Comma) {
		elems := []Term{first}
		p.advance()
		for !p.at(RParen) && !p.atEOF() {
			elems = append(elems, p.parseSeqTerm(RParen))
			if !p.at(Comma) {
				break
			}
			p.advance()
		}
		rp := p.expect(RParen)
		return arena.Alloc(p.ar, ASTTuple{
			Span:  source.ByteRange{Start: lp.Start, End: rp.End},
			Elems: arena.Copy(p.ar, elems),
		})
	}
	rp := p.expect(RParen)
	return arena.Alloc(p.ar, ASTParen{
		Span: source.ByteRange{Start: lp.Start, End: rp.End},
		Term: first,
	})
}

func (p *parser) parseArray() Term {
	lb := p.advance()
	var elems []Term
	for !p.at(RBracket) && !p.atEOF() {
		elems = append(elems, p.parseSeqTerm(RBracket))
		if !p.at(Comma) {
			break
		}
		p.advance()
	}
	rb := p.expect(RBracket)
	return arena.Alloc(p.ar, ASTArrayLiteral{
		Span:  source.ByteRange{Start: lb.Start, End: rb.End},
		Elems: arena.Copy(p.ar, elems),
	})
}

// parseSeqTerm parses one element of a bracketed sequence. A failure
// inside the element is contained: it is reported, tokens are
// discarded up to the enclosing separator or closer, and an ASTError
// node takes the element's place.
func (p *parser) parseSeqTerm(close Kind) (t Term) {
	start := p.cur().Start
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(*parseFailure)
			if !ok {
				panic(r)
			}
			p.skipToSeqBoundary(close)
			if k := p.cur().Kind; k != Comma && k != close {
				// No element boundary here (EOF or a mismatched
				// closer); let an enclosing recovery handle it.
				panic(r)
			}
			p.msgs.Report(f.msg)
			end := p.prevEnd
			if end < start {
				end = start
			}
			t = arena.Alloc(p.ar, ASTError{Span: source.ByteRange{Start: start, End: end}})
		}
	}()
	return p.parseTerm()
}

// skipToSeqBoundary discards tokens up to (not including) the next
// "," or closer of the enclosing bracketed sequence. It also gives
// up at a top-level ";" or "def", which signal that the enclosing
// item is the better recovery point.
func (p *parser) skipToSeqBoundary(close Kind) {
	depth := 0
	for !p.atEOF() {
		k := p.cur().Kind
		if depth == 0 && (k == Comma || k == close || k == Semi || k == KwDef) {
			return
		}
		switch k {
		case LParen, LBrace, LBracket:
			depth++
		case RParen, RBrace, RBracket:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

func (p *parser) parseMatch() Term {
	mTok := p.advance()
	scrut := p.parseProjTerm()
	p.expect(LBrace)
	var arms []MatchArm
	for !p.at(RBrace) && !p.atEOF() {
		pat := p.parsePattern()
		p.expect(DoubleArrow)
		expr := p.parseTerm()
		arms = append(arms, MatchArm{Pattern: pat, Expr: expr})
		if !p.at(Comma) {
			break
		}
		p.advance()
	}
	rb := p.expect(RBrace)
	return arena.Alloc(p.ar, ASTMatch{
		Span:      source.ByteRange{Start: mTok.Start, End: rb.End},
		Scrutinee: scrut,
		Arms:      arena.Copy(p.ar, arms),
	})
}

// Braced constructs. "{" opens an empty tuple, a record type, a
// record literal, a format record, or a conditional format; the
// shape of the first field decides which.
func (p *parser) parseBrace() Term {
	lb := p.advance()
	if p.at(RBrace) {
		rb := p.advance()
		return arena.Alloc(p.ar, ASTTuple{Span: source.ByteRange{Start: lb.Start, End: rb.End}})
	}
	switch {
	case p.at(KwLet):
		fields := p.parseFormatFields()
		rb := p.expect(RBrace)
		return arena.Alloc(p.ar, ASTFormatRecord{
			Span:   source.ByteRange{Start: lb.Start, End: rb.End},
			Fields: arena.Copy(p.ar, fields),
		})
	case p.at(Name):
		switch p.peekKind(1) {
		case Colon:
			fields := p.parseTypeFields()
			rb := p.expect(RBrace)
			return arena.Alloc(p.ar, ASTRecordType{
				Span:   source.ByteRange{Start: lb.Start, End: rb.End},
				Fields: arena.Copy(p.ar, fields),
			})
		case Equal:
			fields := p.parseExprFields()
			rb := p.expect(RBrace)
			return arena.Alloc(p.ar, ASTRecordLiteral{
				Span:   source.ByteRange{Start: lb.Start, End: rb.End},
				Fields: arena.Copy(p.ar, fields),
			})
		case LeftArrow:
			return p.parseFormatRecordOrCond(lb)
		}
		p.failHere(Colon.String(), Equal.String(), LeftArrow.String())
	}
	p.failHere(RBrace.String(), "a field label", KwLet.String())
	panic("unreachable")
}

// parseFormatRecordOrCond parses "{ name <- ...": a conditional
// format when the first field is followed by "|", a format record
// otherwise.
func (p *parser) parseFormatRecordOrCond(lb Token) Term {
	label := p.parseLabel()
	p.expect(LeftArrow)
	format := p.parseTerm()
	var pred Term
	if p.at(KwWhere) {
		p.advance()
		pred = p.parseTerm()
	}
	if p.at(Pipe) {
		if pred != nil {
			p.failHere(Comma.String(), RBrace.String())
		}
		p.advance()
		cond := p.parseTerm()
		rb := p.expect(RBrace)
		return arena.Alloc(p.ar, ASTFormatCond{
			Span:   source.ByteRange{Start: lb.Start, End: rb.End},
			Label:  label,
			Format: format,
			Cond:   cond,
		})
	}
	fields := []FormatField{{Label: label, Format: format, Pred: pred}}
	if p.at(Comma) {
		p.advance()
		fields = append(fields, p.parseFormatFields()...)
	}
	rb := p.expect(RBrace)
	return arena.Alloc(p.ar, ASTFormatRecord{
		Span:   source.ByteRange{Start: lb.Start, End: rb.End},
		Fields: arena.Copy(p.ar, fields),
	})
}

func (p *parser) parseTypeFields() []TypeField {
	var fields []TypeField
	for !p.at(RBrace) && !p.atEOF() {
		label := p.parseLabel()
		p.expect(Colon)
		typ := p.parseTerm()
		fields = append(fields, TypeField{Label: label, Type: typ})
		if !p.at(Comma) {
			break
		}
		p.advance()
	}
	return fields
}

func (p *parser) parseExprFields() []ExprField {
	var fields []ExprField
	for !p.at(RBrace) && !p.atEOF() {
		label := p.parseLabel()
		p.expect(Equal)
		expr := p.parseTerm()
		fields = append(fields, ExprField{Label: label, Expr: expr})
		if !p.at(Comma) {
			break
		}
		p.advance()
	}
	return fields
}

func (p *parser) parseFormatFields() []FormatField {
	var fields []FormatField
	for !p.at(RBrace) && !p.atEOF() {
		fields = append(fields, p.parseFormatField())
		if !p.at(Comma) {
			break
		}
		p.advance()
	}
	return fields
}

func (p *parser) parseFormatField() FormatField {
	if p.at(KwLet) {
		p.advance()
		label := p.parseLabel()
		var typ Term
		if p.at(Colon) {
			p.advance()
			typ = p.parseTerm()
		}
		p.expect(Equal)
		expr := p.parseTerm()
		return FormatField{Computed: true, Label: label, Type: typ, Expr: expr}
	}
	label := p.parseLabel()
	p.expect(LeftArrow)
	format := p.parseTerm()
	var pred Term
	if p.at(KwWhere) {
		p.advance()
		pred = p.parseTerm()
	}
	return FormatField{Label: label, Format: format, Pred: pred}
}
