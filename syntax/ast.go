// Package syntax implements the surface syntax of the data
// description language: the token alphabet, the lexer, the abstract
// syntax tree, and an error-recovering parser. Parsing never fails;
// malformed input yields placeholder nodes plus diagnostics, and
// downstream elaboration decides whether to proceed.
package syntax

import (
	"strings"

	"github.com/QPC-github/fathom/hash"
	"github.com/QPC-github/fathom/source"
	"github.com/QPC-github/fathom/symbol"
)

// Node is implemented by every syntax tree node. Nodes are immutable
// once the parse returns; the backing storage lives in the arena
// passed to the parser and must outlive all readers.
type Node interface {
	// Range reports the node's byte extent in the source text.
	Range() source.ByteRange

	// Render produces a compact, single-line rendering for logs and
	// tests. It is not a pretty-printer.
	Render(tbl *symbol.Table) string

	// Hash computes a deep structural hash of the node. Structurally
	// equal nodes hash equal whatever their ranges; downstream phases
	// use this for memoization.
	Hash(tbl *symbol.Table) hash.Hash
}

// Term is a parsed expression.
type Term interface {
	Node
	isTerm()
}

// Pattern is a binder or literal pattern.
type Pattern interface {
	Node
	isPattern()
}

// Item is a top-level declaration.
type Item interface {
	Node
	isItem()
}

// Label is a name together with the range of its occurrence.
type Label struct {
	Span source.ByteRange
	Name symbol.ID
}

// Plicity says whether a parameter or argument is written explicitly
// or elided and inferred later.
type Plicity int

const (
	Explicit Plicity = iota
	Implicit
)

// String returns "explicit" or "implicit".
func (p Plicity) String() string {
	if p == Implicit {
		return "implicit"
	}
	return "explicit"
}

// BinOpKind identifies a binary operator.
type BinOpKind int

const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
)

var binOpSpellings = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
	OpEq: "==", OpNeq: "!=", OpLt: "<", OpLte: "<=", OpGt: ">", OpGte: ">=",
}

// String returns the operator's source spelling.
func (k BinOpKind) String() string { return binOpSpellings[k] }

// BinOp is a binary operator occurrence: the kind plus the range of
// the operator token itself.
type BinOp struct {
	Span source.ByteRange
	Kind BinOpKind
}

// Param is one function or definition parameter. Type is nil unless
// the parameter was written in its parenthesized, annotated form.
type Param struct {
	Plicity Plicity
	Pattern Pattern
	Type    Term
}

func (p Param) render(tbl *symbol.Table) string {
	buf := strings.Builder{}
	if p.Type != nil {
		buf.WriteByte('(')
	}
	if p.Plicity == Implicit {
		buf.WriteByte('@')
	}
	buf.WriteString(p.Pattern.Render(tbl))
	if p.Type != nil {
		buf.WriteString(" : ")
		buf.WriteString(p.Type.Render(tbl))
		buf.WriteByte(')')
	}
	return buf.String()
}

func (p Param) hash(tbl *symbol.Table) hash.Hash {
	h := hash.Int(int64(p.Plicity)).Merge(p.Pattern.Hash(tbl))
	if p.Type != nil {
		h = h.Merge(p.Type.Hash(tbl))
	}
	return h
}

// Arg is one call argument. "@e" marks an implicit argument.
type Arg struct {
	Plicity Plicity
	Term    Term
}

func (a Arg) render(tbl *symbol.Table) string {
	if a.Plicity == Implicit {
		return "@" + a.Term.Render(tbl)
	}
	return a.Term.Render(tbl)
}

// TypeField is one "label : Type" field of a record type.
type TypeField struct {
	Label Label
	Type  Term
}

// ExprField is one "label = expr" field of a record literal.
type ExprField struct {
	Label Label
	Expr  Term
}

// FormatField is one field of a format record or overlap record.
// When Computed is false the field reads its value from the input
// via Format, optionally constrained by Pred ("where" clause). When
// Computed is true the field is "let label (: Type)? = Expr".
type FormatField struct {
	Computed bool
	Label    Label
	Format   Term // set iff !Computed
	Pred     Term // optional, only when !Computed
	Type     Term // optional, only when Computed
	Expr     Term // set iff Computed
}

func (f FormatField) render(tbl *symbol.Table) string {
	buf := strings.Builder{}
	if f.Computed {
		buf.WriteString("let ")
		buf.WriteString(tbl.Name(f.Label.Name))
		if f.Type != nil {
			buf.WriteString(" : ")
			buf.WriteString(f.Type.Render(tbl))
		}
		buf.WriteString(" = ")
		buf.WriteString(f.Expr.Render(tbl))
		return buf.String()
	}
	buf.WriteString(tbl.Name(f.Label.Name))
	buf.WriteString(" <- ")
	buf.WriteString(f.Format.Render(tbl))
	if f.Pred != nil {
		buf.WriteString(" where ")
		buf.WriteString(f.Pred.Render(tbl))
	}
	return buf.String()
}

func (f FormatField) hash(tbl *symbol.Table) hash.Hash {
	h := hash.Bool(f.Computed).Merge(tbl.Hash(f.Label.Name))
	for _, t := range []Term{f.Format, f.Pred, f.Type, f.Expr} {
		if t != nil {
			h = h.Merge(t.Hash(tbl))
		}
	}
	return h
}

// MatchArm is one "pattern => expr" arm of a match expression.
type MatchArm struct {
	Pattern Pattern
	Expr    Term
}

// Module is one parsed source file: the items in source order.
type Module struct {
	Items []Item
}

// Render returns a compact rendering of all items.
func (m *Module) Render(tbl *symbol.Table) string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		lines[i] = item.Render(tbl)
	}
	return strings.Join(lines, "\n")
}

// Hash computes a deep structural hash of the module.
func (m *Module) Hash(tbl *symbol.Table) hash.Hash {
	h := hashModule
	for _, item := range m.Items {
		h = h.Merge(item.Hash(tbl))
	}
	return h
}

// Per-kind seeds keep structurally different nodes from colliding.
var (
	hashModule      = hash.String("syntax.module")
	hashDef         = hash.String("syntax.def")
	hashError       = hash.String("syntax.error")
	hashName        = hash.String("syntax.name")
	hashHole        = hash.String("syntax.hole")
	hashPlaceholder = hash.String("syntax.placeholder")
	hashUniverse    = hash.String("syntax.universe")
	hashStringLit   = hash.String("syntax.string")
	hashNumberLit   = hash.String("syntax.number")
	hashBoolLit     = hash.String("syntax.bool")
	hashParen       = hash.String("syntax.paren")
	hashTuple       = hash.String("syntax.tuple")
	hashArrayLit    = hash.String("syntax.array")
	hashAnn         = hash.String("syntax.ann")
	hashLet         = hash.String("syntax.let")
	hashIf          = hash.String("syntax.if")
	hashArrow       = hash.String("syntax.arrow")
	hashFunType     = hash.String("syntax.funtype")
	hashFunLiteral  = hash.String("syntax.funliteral")
	hashApp         = hash.String("syntax.app")
	hashProj        = hash.String("syntax.proj")
	hashMatch       = hash.String("syntax.match")
	hashRecordType  = hash.String("syntax.recordtype")
	hashRecordLit   = hash.String("syntax.recordliteral")
	hashFormatRec   = hash.String("syntax.formatrecord")
	hashFormatCond  = hash.String("syntax.formatcond")
	hashOverlap     = hash.String("syntax.formatoverlap")
	hashBinOp       = hash.String("syntax.binop")
	hashNamePat     = hash.String("syntax.pat.name")
	hashPlacePat    = hash.String("syntax.pat.placeholder")
	hashStringPat   = hash.String("syntax.pat.string")
	hashNumberPat   = hash.String("syntax.pat.number")
	hashBoolPat     = hash.String("syntax.pat.bool")
)

// ASTDef is a top-level definition,
// "def name params (: Type)? = expr;".
type ASTDef struct {
	Span   source.ByteRange
	Label  Label
	Params []Param
	Type   Term // nil when no annotation was written
	Expr   Term
}

var _ Item = &ASTDef{}

func (n *ASTDef) isItem()                 {}
func (n *ASTDef) Range() source.ByteRange { return n.Span }

// Render implements Node.
func (n *ASTDef) Render(tbl *symbol.Table) string {
	buf := strings.Builder{}
	buf.WriteString("def ")
	buf.WriteString(tbl.Name(n.Label.Name))
	for _, p := range n.Params {
		buf.WriteByte(' ')
		buf.WriteString(p.render(tbl))
	}
	if n.Type != nil {
		buf.WriteString(" : ")
		buf.WriteString(n.Type.Render(tbl))
	}
	buf.WriteString(" = ")
	buf.WriteString(n.Expr.Render(tbl))
	buf.WriteByte(';')
	return buf.String()
}

// Hash implements Node.
func (n *ASTDef) Hash(tbl *symbol.Table) hash.Hash {
	h := hashDef.Merge(tbl.Hash(n.Label.Name))
	for _, p := range n.Params {
		h = h.Merge(p.hash(tbl))
	}
	if n.Type != nil {
		h = h.Merge(n.Type.Hash(tbl))
	}
	return h.Merge(n.Expr.Hash(tbl))
}

// ASTError is the recovery placeholder. It stands for a region that
// failed to parse; every ASTError has a corresponding diagnostic in
// the message channel. It is usable wherever an item or a term is
// expected.
type ASTError struct {
	Span source.ByteRange
}

var (
	_ Item = &ASTError{}
	_ Term = &ASTError{}
)

func (n *ASTError) isItem()                 {}
func (n *ASTError) isTerm()                 {}
func (n *ASTError) Range() source.ByteRange { return n.Span }

// Render implements Node.
func (n *ASTError) Render(tbl *symbol.Table) string { return "(error)" }

// Hash implements Node.
func (n *ASTError) Hash(tbl *symbol.Table) hash.Hash { return hashError }

// ASTName is an identifier reference.
type ASTName struct {
	Span source.ByteRange
	Name symbol.ID
}

var _ Term = &ASTName{}

func (n *ASTName) isTerm()                            {}
func (n *ASTName) Range() source.ByteRange            { return n.Span }
func (n *ASTName) Render(tbl *symbol.Table) string    { return tbl.Name(n.Name) }
func (n *ASTName) Hash(tbl *symbol.Table) hash.Hash   { return hashName.Merge(tbl.Hash(n.Name)) }

// ASTHole is a named metavariable, "?name".
type ASTHole struct {
	Span source.ByteRange
	Name symbol.ID
}

var _ Term = &ASTHole{}

func (n *ASTHole) isTerm()                          {}
func (n *ASTHole) Range() source.ByteRange          { return n.Span }
func (n *ASTHole) Render(tbl *symbol.Table) string  { return "?" + tbl.Name(n.Name) }
func (n *ASTHole) Hash(tbl *symbol.Table) hash.Hash { return hashHole.Merge(tbl.Hash(n.Name)) }

// ASTPlaceholder is the anonymous metavariable, "_".
type ASTPlaceholder struct {
	Span source.ByteRange
}

var _ Term = &ASTPlaceholder{}

func (n *ASTPlaceholder) isTerm()                          {}
func (n *ASTPlaceholder) Range() source.ByteRange          { return n.Span }
func (n *ASTPlaceholder) Render(tbl *symbol.Table) string  { return "_" }
func (n *ASTPlaceholder) Hash(tbl *symbol.Table) hash.Hash { return hashPlaceholder }

// ASTUniverse is the type of types, "Type".
type ASTUniverse struct {
	Span source.ByteRange
}

var _ Term = &ASTUniverse{}

func (n *ASTUniverse) isTerm()                          {}
func (n *ASTUniverse) Range() source.ByteRange          { return n.Span }
func (n *ASTUniverse) Render(tbl *symbol.Table) string  { return "Type" }
func (n *ASTUniverse) Hash(tbl *symbol.Table) hash.Hash { return hashUniverse }

// ASTStringLiteral is a string literal. Text is the interned source
// lexeme, quotes and escapes included; unescaping happens during
// elaboration.
type ASTStringLiteral struct {
	Span source.ByteRange
	Text symbol.ID
}

var _ Term = &ASTStringLiteral{}

func (n *ASTStringLiteral) isTerm()                         {}
func (n *ASTStringLiteral) Range() source.ByteRange         { return n.Span }
func (n *ASTStringLiteral) Render(tbl *symbol.Table) string { return tbl.Name(n.Text) }
func (n *ASTStringLiteral) Hash(tbl *symbol.Table) hash.Hash {
	return hashStringLit.Merge(tbl.Hash(n.Text))
}

// ASTNumberLiteral is a number literal, kept as its interned source
// lexeme. Numeric interpretation happens during elaboration.
type ASTNumberLiteral struct {
	Span source.ByteRange
	Text symbol.ID
}

var _ Term = &ASTNumberLiteral{}

func (n *ASTNumberLiteral) isTerm()                         {}
func (n *ASTNumberLiteral) Range() source.ByteRange         { return n.Span }
func (n *ASTNumberLiteral) Render(tbl *symbol.Table) string { return tbl.Name(n.Text) }
func (n *ASTNumberLiteral) Hash(tbl *symbol.Table) hash.Hash {
	return hashNumberLit.Merge(tbl.Hash(n.Text))
}

// ASTBooleanLiteral is "true" or "false".
type ASTBooleanLiteral struct {
	Span  source.ByteRange
	Value bool
}

var _ Term = &ASTBooleanLiteral{}

func (n *ASTBooleanLiteral) isTerm()                 {}
func (n *ASTBooleanLiteral) Range() source.ByteRange { return n.Span }

func (n *ASTBooleanLiteral) Render(tbl *symbol.Table) string {
	if n.Value {
		return "true"
	}
	return "false"
}

func (n *ASTBooleanLiteral) Hash(tbl *symbol.Table) hash.Hash {
	return hashBoolLit.Merge(hash.Bool(n.Value))
}

// ASTParen is an explicitly parenthesized term. Grouping is kept in
// the tree so the source can be reconstructed.
type ASTParen struct {
	Span source.ByteRange
	Term Term
}

var _ Term = &ASTParen{}

func (n *ASTParen) isTerm()                 {}
func (n *ASTParen) Range() source.ByteRange { return n.Span }

func (n *ASTParen) Render(tbl *symbol.Table) string {
	return "(" + n.Term.Render(tbl) + ")"
}

func (n *ASTParen) Hash(tbl *symbol.Table) hash.Hash {
	return hashParen.Merge(n.Term.Hash(tbl))
}

// ASTTuple is "()", "(e,)" or "(e1, ..., en)" with n >= 2. The
// one-element unparenthesized case does not exist; "(e)" is an
// ASTParen. "{}" also parses to the empty tuple.
type ASTTuple struct {
	Span  source.ByteRange
	Elems []Term
}

var _ Term = &ASTTuple{}

func (n *ASTTuple) isTerm()                 {}
func (n *ASTTuple) Range() source.ByteRange { return n.Span }

func (n *ASTTuple) Render(tbl *symbol.Table) string {
	buf := strings.Builder{}
	buf.WriteByte('(')
	for i, e := range n.Elems {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(e.Render(tbl))
	}
	if len(n.Elems) == 1 {
		buf.WriteByte(',')
	}
	buf.WriteByte(')')
	return buf.String()
}

func (n *ASTTuple) Hash(tbl *symbol.Table) hash.Hash {
	h := hashTuple
	for _, e := range n.Elems {
		h = h.Merge(e.Hash(tbl))
	}
	return h
}

// ASTArrayLiteral is "[e1, ..., en]", possibly empty.
type ASTArrayLiteral struct {
	Span  source.ByteRange
	Elems []Term
}

var _ Term = &ASTArrayLiteral{}

func (n *ASTArrayLiteral) isTerm()                 {}
func (n *ASTArrayLiteral) Range() source.ByteRange { return n.Span }

func (n *ASTArrayLiteral) Render(tbl *symbol.Table) string {
	buf := strings.Builder{}
	buf.WriteByte('[')
	for i, e := range n.Elems {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(e.Render(tbl))
	}
	buf.WriteByte(']')
	return buf.String()
}

func (n *ASTArrayLiteral) Hash(tbl *symbol.Table) hash.Hash {
	h := hashArrayLit
	for _, e := range n.Elems {
		h = h.Merge(e.Hash(tbl))
	}
	return h
}

// ASTAnn is a type annotation, "expr : Type".
type ASTAnn struct {
	Span source.ByteRange
	Expr Term
	Type Term
}

var _ Term = &ASTAnn{}

func (n *ASTAnn) isTerm()                 {}
func (n *ASTAnn) Range() source.ByteRange { return n.Span }

func (n *ASTAnn) Render(tbl *symbol.Table) string {
	return n.Expr.Render(tbl) + " : " + n.Type.Render(tbl)
}

func (n *ASTAnn) Hash(tbl *symbol.Table) hash.Hash {
	return hashAnn.Merge(n.Expr.Hash(tbl)).Merge(n.Type.Hash(tbl))
}

// ASTLet is "let pattern (: Type)? = value; body".
type ASTLet struct {
	Span    source.ByteRange
	Pattern Pattern
	Type    Term // nil when no annotation was written
	Value   Term
	Body    Term
}

var _ Term = &ASTLet{}

func (n *ASTLet) isTerm()                 {}
func (n *ASTLet) Range() source.ByteRange { return n.Span }

func (n *ASTLet) Render(tbl *symbol.Table) string {
	buf := strings.Builder{}
	buf.WriteString("let ")
	buf.WriteString(n.Pattern.Render(tbl))
	if n.Type != nil {
		buf.WriteString(" : ")
		buf.WriteString(n.Type.Render(tbl))
	}
	buf.WriteString(" = ")
	buf.WriteString(n.Value.Render(tbl))
	buf.WriteString("; ")
	buf.WriteString(n.Body.Render(tbl))
	return buf.String()
}

func (n *ASTLet) Hash(tbl *symbol.Table) hash.Hash {
	h := hashLet.Merge(n.Pattern.Hash(tbl))
	if n.Type != nil {
		h = h.Merge(n.Type.Hash(tbl))
	}
	return h.Merge(n.Value.Hash(tbl)).Merge(n.Body.Hash(tbl))
}

// ASTIf is "if cond then t else e".
type ASTIf struct {
	Span source.ByteRange
	Cond Term
	Then Term
	Else Term
}

var _ Term = &ASTIf{}

func (n *ASTIf) isTerm()                 {}
func (n *ASTIf) Range() source.ByteRange { return n.Span }

func (n *ASTIf) Render(tbl *symbol.Table) string {
	return "if " + n.Cond.Render(tbl) + " then " + n.Then.Render(tbl) +
		" else " + n.Else.Render(tbl)
}

func (n *ASTIf) Hash(tbl *symbol.Table) hash.Hash {
	return hashIf.Merge(n.Cond.Hash(tbl)).Merge(n.Then.Hash(tbl)).Merge(n.Else.Hash(tbl))
}

// ASTArrow is a non-dependent function type, "A -> B", optionally
// with an implicit domain, "@A -> B".
type ASTArrow struct {
	Span      source.ByteRange
	Plicity   Plicity
	ParamType Term
	BodyType  Term
}

var _ Term = &ASTArrow{}

func (n *ASTArrow) isTerm()                 {}
func (n *ASTArrow) Range() source.ByteRange { return n.Span }

func (n *ASTArrow) Render(tbl *symbol.Table) string {
	buf := strings.Builder{}
	if n.Plicity == Implicit {
		buf.WriteByte('@')
	}
	buf.WriteString(n.ParamType.Render(tbl))
	buf.WriteString(" -> ")
	buf.WriteString(n.BodyType.Render(tbl))
	return buf.String()
}

func (n *ASTArrow) Hash(tbl *symbol.Table) hash.Hash {
	return hashArrow.Merge(hash.Int(int64(n.Plicity))).
		Merge(n.ParamType.Hash(tbl)).Merge(n.BodyType.Hash(tbl))
}

// ASTFunType is a dependent function type, "fun params -> BodyType".
type ASTFunType struct {
	Span     source.ByteRange
	Params   []Param
	BodyType Term
}

var _ Term = &ASTFunType{}

func (n *ASTFunType) isTerm()                 {}
func (n *ASTFunType) Range() source.ByteRange { return n.Span }

func (n *ASTFunType) Render(tbl *symbol.Table) string {
	return renderFun(tbl, n.Params, "->", n.BodyType)
}

func (n *ASTFunType) Hash(tbl *symbol.Table) hash.Hash {
	h := hashFunType
	for _, p := range n.Params {
		h = h.Merge(p.hash(tbl))
	}
	return h.Merge(n.BodyType.Hash(tbl))
}

// ASTFunLiteral is a function literal, "fun params => body".
type ASTFunLiteral struct {
	Span   source.ByteRange
	Params []Param
	Body   Term
}

var _ Term = &ASTFunLiteral{}

func (n *ASTFunLiteral) isTerm()                 {}
func (n *ASTFunLiteral) Range() source.ByteRange { return n.Span }

func (n *ASTFunLiteral) Render(tbl *symbol.Table) string {
	return renderFun(tbl, n.Params, "=>", n.Body)
}

func (n *ASTFunLiteral) Hash(tbl *symbol.Table) hash.Hash {
	h := hashFunLiteral
	for _, p := range n.Params {
		h = h.Merge(p.hash(tbl))
	}
	return h.Merge(n.Body.Hash(tbl))
}

func renderFun(tbl *symbol.Table, params []Param, arrow string, body Term) string {
	buf := strings.Builder{}
	buf.WriteString("fun")
	for _, p := range params {
		buf.WriteByte(' ')
		buf.WriteString(p.render(tbl))
	}
	buf.WriteByte(' ')
	buf.WriteString(arrow)
	buf.WriteByte(' ')
	buf.WriteString(body.Render(tbl))
	return buf.String()
}

// ASTApp is an application: a head followed by one or more
// arguments.
type ASTApp struct {
	Span source.ByteRange
	Head Term
	Args []Arg
}

var _ Term = &ASTApp{}

func (n *ASTApp) isTerm()                 {}
func (n *ASTApp) Range() source.ByteRange { return n.Span }

func (n *ASTApp) Render(tbl *symbol.Table) string {
	buf := strings.Builder{}
	buf.WriteString(n.Head.Render(tbl))
	for _, a := range n.Args {
		buf.WriteByte(' ')
		buf.WriteString(a.render(tbl))
	}
	return buf.String()
}

func (n *ASTApp) Hash(tbl *symbol.Table) hash.Hash {
	h := hashApp.Merge(n.Head.Hash(tbl))
	for _, a := range n.Args {
		h = h.Merge(hash.Int(int64(a.Plicity))).Merge(a.Term.Hash(tbl))
	}
	return h
}

// ASTProj is a projection chain, "head.l1.l2...".
type ASTProj struct {
	Span   source.ByteRange
	Head   Term
	Labels []Label
}

var _ Term = &ASTProj{}

func (n *ASTProj) isTerm()                 {}
func (n *ASTProj) Range() source.ByteRange { return n.Span }

func (n *ASTProj) Render(tbl *symbol.Table) string {
	buf := strings.Builder{}
	buf.WriteString(n.Head.Render(tbl))
	for _, l := range n.Labels {
		buf.WriteByte('.')
		buf.WriteString(tbl.Name(l.Name))
	}
	return buf.String()
}

func (n *ASTProj) Hash(tbl *symbol.Table) hash.Hash {
	h := hashProj.Merge(n.Head.Hash(tbl))
	for _, l := range n.Labels {
		h = h.Merge(tbl.Hash(l.Name))
	}
	return h
}

// ASTMatch is "match scrutinee { pattern => expr, ... }".
type ASTMatch struct {
	Span      source.ByteRange
	Scrutinee Term
	Arms      []MatchArm
}

var _ Term = &ASTMatch{}

func (n *ASTMatch) isTerm()                 {}
func (n *ASTMatch) Range() source.ByteRange { return n.Span }

func (n *ASTMatch) Render(tbl *symbol.Table) string {
	buf := strings.Builder{}
	buf.WriteString("match ")
	buf.WriteString(n.Scrutinee.Render(tbl))
	buf.WriteString(" {")
	for i, arm := range n.Arms {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte(' ')
		buf.WriteString(arm.Pattern.Render(tbl))
		buf.WriteString(" => ")
		buf.WriteString(arm.Expr.Render(tbl))
	}
	buf.WriteString(" }")
	return buf.String()
}

func (n *ASTMatch) Hash(tbl *symbol.Table) hash.Hash {
	h := hashMatch.Merge(n.Scrutinee.Hash(tbl))
	for _, arm := range n.Arms {
		h = h.Merge(arm.Pattern.Hash(tbl)).Merge(arm.Expr.Hash(tbl))
	}
	return h
}

// ASTRecordType is "{ l1 : T1, ... }".
type ASTRecordType struct {
	Span   source.ByteRange
	Fields []TypeField
}

var _ Term = &ASTRecordType{}

func (n *ASTRecordType) isTerm()                 {}
func (n *ASTRecordType) Range() source.ByteRange { return n.Span }

func (n *ASTRecordType) Render(tbl *symbol.Table) string {
	buf := strings.Builder{}
	buf.WriteString("{")
	for i, f := range n.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte(' ')
		buf.WriteString(tbl.Name(f.Label.Name))
		buf.WriteString(" : ")
		buf.WriteString(f.Type.Render(tbl))
	}
	buf.WriteString(" }")
	return buf.String()
}

func (n *ASTRecordType) Hash(tbl *symbol.Table) hash.Hash {
	h := hashRecordType
	for _, f := range n.Fields {
		h = h.Merge(tbl.Hash(f.Label.Name)).Merge(f.Type.Hash(tbl))
	}
	return h
}

// ASTRecordLiteral is "{ l1 = e1, ... }".
type ASTRecordLiteral struct {
	Span   source.ByteRange
	Fields []ExprField
}

var _ Term = &ASTRecordLiteral{}

func (n *ASTRecordLiteral) isTerm()                 {}
func (n *ASTRecordLiteral) Range() source.ByteRange { return n.Span }

func (n *ASTRecordLiteral) Render(tbl *symbol.Table) string {
	buf := strings.Builder{}
	buf.WriteString("{")
	for i, f := range n.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte(' ')
		buf.WriteString(tbl.Name(f.Label.Name))
		buf.WriteString(" = ")
		buf.WriteString(f.Expr.Render(tbl))
	}
	buf.WriteString(" }")
	return buf.String()
}

func (n *ASTRecordLiteral) Hash(tbl *symbol.Table) hash.Hash {
	h := hashRecordLit
	for _, f := range n.Fields {
		h = h.Merge(tbl.Hash(f.Label.Name)).Merge(f.Expr.Hash(tbl))
	}
	return h
}

// ASTFormatRecord is "{ l1 <- f1, ... }", a record of binary
// formats read in sequence.
type ASTFormatRecord struct {
	Span   source.ByteRange
	Fields []FormatField
}

var _ Term = &ASTFormatRecord{}

func (n *ASTFormatRecord) isTerm()                 {}
func (n *ASTFormatRecord) Range() source.ByteRange { return n.Span }

func (n *ASTFormatRecord) Render(tbl *symbol.Table) string {
	return renderFormatFields(tbl, "{", n.Fields)
}

func (n *ASTFormatRecord) Hash(tbl *symbol.Table) hash.Hash {
	h := hashFormatRec
	for _, f := range n.Fields {
		h = h.Merge(f.hash(tbl))
	}
	return h
}

// ASTFormatCond is the single-field conditional format,
// "{ label <- format | cond }".
type ASTFormatCond struct {
	Span   source.ByteRange
	Label  Label
	Format Term
	Cond   Term
}

var _ Term = &ASTFormatCond{}

func (n *ASTFormatCond) isTerm()                 {}
func (n *ASTFormatCond) Range() source.ByteRange { return n.Span }

func (n *ASTFormatCond) Render(tbl *symbol.Table) string {
	return "{ " + tbl.Name(n.Label.Name) + " <- " + n.Format.Render(tbl) +
		" | " + n.Cond.Render(tbl) + " }"
}

func (n *ASTFormatCond) Hash(tbl *symbol.Table) hash.Hash {
	return hashFormatCond.Merge(tbl.Hash(n.Label.Name)).
		Merge(n.Format.Hash(tbl)).Merge(n.Cond.Hash(tbl))
}

// ASTFormatOverlap is "overlap { ... }": format fields that all
// read the same byte region.
type ASTFormatOverlap struct {
	Span   source.ByteRange
	Fields []FormatField
}

var _ Term = &ASTFormatOverlap{}

func (n *ASTFormatOverlap) isTerm()                 {}
func (n *ASTFormatOverlap) Range() source.ByteRange { return n.Span }

func (n *ASTFormatOverlap) Render(tbl *symbol.Table) string {
	return renderFormatFields(tbl, "overlap {", n.Fields)
}

func (n *ASTFormatOverlap) Hash(tbl *symbol.Table) hash.Hash {
	h := hashOverlap
	for _, f := range n.Fields {
		h = h.Merge(f.hash(tbl))
	}
	return h
}

func renderFormatFields(tbl *symbol.Table, open string, fields []FormatField) string {
	buf := strings.Builder{}
	buf.WriteString(open)
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte(' ')
		buf.WriteString(f.render(tbl))
	}
	buf.WriteString(" }")
	return buf.String()
}

// ASTBinOp is a binary arithmetic or comparison expression.
type ASTBinOp struct {
	Span source.ByteRange
	Lhs  Term
	Op   BinOp
	Rhs  Term
}

var _ Term = &ASTBinOp{}

func (n *ASTBinOp) isTerm()                 {}
func (n *ASTBinOp) Range() source.ByteRange { return n.Span }

func (n *ASTBinOp) Render(tbl *symbol.Table) string {
	return "(" + n.Lhs.Render(tbl) + " " + n.Op.Kind.String() + " " + n.Rhs.Render(tbl) + ")"
}

func (n *ASTBinOp) Hash(tbl *symbol.Table) hash.Hash {
	return hashBinOp.Merge(hash.Int(int64(n.Op.Kind))).
		Merge(n.Lhs.Hash(tbl)).Merge(n.Rhs.Hash(tbl))
}

// ASTNamePattern binds a name.
type ASTNamePattern struct {
	Span source.ByteRange
	Name symbol.ID
}

var _ Pattern = &ASTNamePattern{}

func (n *ASTNamePattern) isPattern()                {}
func (n *ASTNamePattern) Range() source.ByteRange   { return n.Span }
func (n *ASTNamePattern) Render(tbl *symbol.Table) string { return tbl.Name(n.Name) }
func (n *ASTNamePattern) Hash(tbl *symbol.Table) hash.Hash {
	return hashNamePat.Merge(tbl.Hash(n.Name))
}

// ASTPlaceholderPattern matches anything without binding, "_".
type ASTPlaceholderPattern struct {
	Span source.ByteRange
}

var _ Pattern = &ASTPlaceholderPattern{}

func (n *ASTPlaceholderPattern) isPattern()                       {}
func (n *ASTPlaceholderPattern) Range() source.ByteRange          { return n.Span }
func (n *ASTPlaceholderPattern) Render(tbl *symbol.Table) string  { return "_" }
func (n *ASTPlaceholderPattern) Hash(tbl *symbol.Table) hash.Hash { return hashPlacePat }

// ASTStringPattern matches a string literal.
type ASTStringPattern struct {
	Span source.ByteRange
	Text symbol.ID
}

var _ Pattern = &ASTStringPattern{}

func (n *ASTStringPattern) isPattern()                      {}
func (n *ASTStringPattern) Range() source.ByteRange         { return n.Span }
func (n *ASTStringPattern) Render(tbl *symbol.Table) string { return tbl.Name(n.Text) }
func (n *ASTStringPattern) Hash(tbl *symbol.Table) hash.Hash {
	return hashStringPat.Merge(tbl.Hash(n.Text))
}

// ASTNumberPattern matches a number literal.
type ASTNumberPattern struct {
	Span source.ByteRange
	Text symbol.ID
}

var _ Pattern = &ASTNumberPattern{}

func (n *ASTNumberPattern) isPattern()                      {}
func (n *ASTNumberPattern) Range() source.ByteRange         { return n.Span }
func (n *ASTNumberPattern) Render(tbl *symbol.Table) string { return tbl.Name(n.Text) }
func (n *ASTNumberPattern) Hash(tbl *symbol.Table) hash.Hash {
	return hashNumberPat.Merge(tbl.Hash(n.Text))
}

// ASTBooleanPattern matches "true" or "false".
type ASTBooleanPattern struct {
	Span  source.ByteRange
	Value bool
}

var _ Pattern = &ASTBooleanPattern{}

func (n *ASTBooleanPattern) isPattern()              {}
func (n *ASTBooleanPattern) Range() source.ByteRange { return n.Span }

func (n *ASTBooleanPattern) Render(tbl *symbol.Table) string {
	if n.Value {
		return "true"
	}
	return "false"
}

func (n *ASTBooleanPattern) Hash(tbl *symbol.Table) hash.Hash {
	return hashBoolPat.Merge(hash.Bool(n.Value))
}
