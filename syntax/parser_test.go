package syntax

import (
	"fmt"
	"testing"

	"github.com/grailbio/base/traverse"
	"github.com/grailbio/testutil/expect"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QPC-github/fathom/arena"
	"github.com/QPC-github/fathom/hash"
	srcpos "github.com/QPC-github/fathom/source"
	"github.com/QPC-github/fathom/symbol"
)

func parseTerm(t *testing.T, src string) (Term, *Messages, *symbol.Table) {
	t.Helper()
	tbl := symbol.NewTable()
	msgs := &Messages{}
	term := ParseTerm([]byte(src), tbl, arena.New(), msgs)
	require.NotNil(t, term)
	return term, msgs, tbl
}

func parseModule(t *testing.T, src string) (*Module, *Messages, *symbol.Table) {
	t.Helper()
	tbl := symbol.NewTable()
	msgs := &Messages{}
	mod := ParseModule([]byte(src), tbl, arena.New(), msgs)
	require.NotNil(t, mod)
	return mod, msgs, tbl
}

// render parses src as a term, requiring a clean parse, and returns
// its compact rendering.
func render(t *testing.T, src string) string {
	t.Helper()
	term, msgs, tbl := parseTerm(t, src)
	require.Truef(t, msgs.Empty(), "parse %q: %v", src, msgs.Slice())
	return term.Render(tbl)
}

func TestEmptyModule(t *testing.T) {
	for _, src := range []string{"", "   \n\t", "// comment only\n", "/* block */"} {
		mod, msgs, _ := parseModule(t, src)
		assert.Emptyf(t, mod.Items, "src: %q", src)
		assert.Truef(t, msgs.Empty(), "src: %q", src)
	}
}

func TestSimpleDef(t *testing.T) {
	mod, msgs, tbl := parseModule(t, "def id : Type = Type;")
	require.True(t, msgs.Empty())
	require.Len(t, mod.Items, 1)
	def, ok := mod.Items[0].(*ASTDef)
	require.Truef(t, ok, "item: %# v", pretty.Formatter(mod.Items[0]))
	assert.Equal(t, "id", tbl.Name(def.Label.Name))
	assert.Empty(t, def.Params)
	_, ok = def.Type.(*ASTUniverse)
	assert.True(t, ok)
	_, ok = def.Expr.(*ASTUniverse)
	assert.True(t, ok)
	expect.EQ(t, mod.Render(tbl), "def id : Type = Type;")
}

func TestDefParams(t *testing.T) {
	mod, msgs, tbl := parseModule(t, "def f x (y : Type) @z = x;")
	require.True(t, msgs.Empty())
	def := mod.Items[0].(*ASTDef)
	require.Len(t, def.Params, 3)
	assert.Equal(t, Explicit, def.Params[0].Plicity)
	assert.Nil(t, def.Params[0].Type)
	assert.NotNil(t, def.Params[1].Type)
	assert.Equal(t, Implicit, def.Params[2].Plicity)
	expect.EQ(t, mod.Render(tbl), "def f x (y : Type) @z = x;")
}

func TestModuleOrder(t *testing.T) {
	mod, msgs, tbl := parseModule(t, "def a = Type;\ndef b = a;\ndef c = b;")
	require.True(t, msgs.Empty())
	require.Len(t, mod.Items, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, want, tbl.Name(mod.Items[i].(*ASTDef).Label.Name))
	}
}

func TestPrecedence(t *testing.T) {
	expect.EQ(t, render(t, "a + b * c"), "(a + (b * c))")
	expect.EQ(t, render(t, "a * b + c"), "((a * b) + c)")
	expect.EQ(t, render(t, "a < b + c"), "(a < (b + c))")
	expect.EQ(t, render(t, "a == b < c"), "(a == (b < c))")
	expect.EQ(t, render(t, "a != b"), "(a != b)")
	expect.EQ(t, render(t, "f x + g y"), "(f x + g y)")
}

// Every binary level associates to the right, division and
// subtraction included.
func TestRightAssociativity(t *testing.T) {
	expect.EQ(t, render(t, "a - b - c"), "(a - (b - c))")
	expect.EQ(t, render(t, "a / b / c"), "(a / (b / c))")
	expect.EQ(t, render(t, "a + b - c"), "(a + (b - c))")
	expect.EQ(t, render(t, "a == b == c"), "(a == (b == c))")
}

func TestArrow(t *testing.T) {
	term, msgs, tbl := parseTerm(t, "A -> B -> C")
	require.True(t, msgs.Empty())
	outer, ok := term.(*ASTArrow)
	require.True(t, ok)
	assert.Equal(t, Explicit, outer.Plicity)
	_, ok = outer.ParamType.(*ASTName)
	assert.True(t, ok)
	_, ok = outer.BodyType.(*ASTArrow)
	assert.True(t, ok)
	expect.EQ(t, term.Render(tbl), "A -> B -> C")
}

func TestImplicitArrow(t *testing.T) {
	term, msgs, tbl := parseTerm(t, "@A -> B")
	require.True(t, msgs.Empty())
	arrow, ok := term.(*ASTArrow)
	require.True(t, ok)
	assert.Equal(t, Implicit, arrow.Plicity)
	expect.EQ(t, term.Render(tbl), "@A -> B")
}

func TestAppPlicity(t *testing.T) {
	term, msgs, tbl := parseTerm(t, "f @x y")
	require.True(t, msgs.Empty())
	app, ok := term.(*ASTApp)
	require.True(t, ok)
	require.Len(t, app.Args, 2)
	assert.Equal(t, Implicit, app.Args[0].Plicity)
	assert.Equal(t, Explicit, app.Args[1].Plicity)
	expect.EQ(t, term.Render(tbl), "f @x y")
}

func TestTuples(t *testing.T) {
	term, _, _ := parseTerm(t, "()")
	assert.Empty(t, term.(*ASTTuple).Elems)

	term, _, _ = parseTerm(t, "{}")
	assert.Empty(t, term.(*ASTTuple).Elems)

	term, _, tbl := parseTerm(t, "(x,)")
	tup := term.(*ASTTuple)
	require.Len(t, tup.Elems, 1)
	assert.Equal(t, "x", tbl.Name(tup.Elems[0].(*ASTName).Name))
	expect.EQ(t, term.Render(tbl), "(x,)")

	term, _, tbl = parseTerm(t, "(x)")
	par, ok := term.(*ASTParen)
	require.True(t, ok)
	_, ok = par.Term.(*ASTName)
	assert.True(t, ok)

	term, _, tbl = parseTerm(t, "(x, y, z,)")
	assert.Len(t, term.(*ASTTuple).Elems, 3)
	expect.EQ(t, term.Render(tbl), "(x, y, z)")
}

func TestArrayLiteral(t *testing.T) {
	term, _, _ := parseTerm(t, "[]")
	assert.Empty(t, term.(*ASTArrayLiteral).Elems)
	expect.EQ(t, render(t, "[1, 2, 3]"), "[1, 2, 3]")
	expect.EQ(t, render(t, "[x + y]"), "[(x + y)]")
}

func TestBraceDisambiguation(t *testing.T) {
	term, _, _ := parseTerm(t, "{ x : A }")
	_, ok := term.(*ASTRecordType)
	assert.True(t, ok)

	term, _, _ = parseTerm(t, "{ x = a }")
	_, ok = term.(*ASTRecordLiteral)
	assert.True(t, ok)

	term, _, _ = parseTerm(t, "{ x <- f }")
	_, ok = term.(*ASTFormatRecord)
	assert.True(t, ok)

	term, _, _ = parseTerm(t, "{ x <- f | c }")
	_, ok = term.(*ASTFormatCond)
	assert.True(t, ok)

	term, _, _ = parseTerm(t, "overlap { x <- f, y <- g }")
	_, ok = term.(*ASTFormatOverlap)
	assert.True(t, ok)

	term, _, _ = parseTerm(t, "{ let x = 1, y <- f }")
	rec, ok := term.(*ASTFormatRecord)
	require.True(t, ok)
	require.Len(t, rec.Fields, 2)
	assert.True(t, rec.Fields[0].Computed)
	assert.False(t, rec.Fields[1].Computed)
}

func TestRecordRenders(t *testing.T) {
	expect.EQ(t, render(t, "{ x : A, y : B }"), "{ x : A, y : B }")
	expect.EQ(t, render(t, "{ x = a, y = b, }"), "{ x = a, y = b }")
	expect.EQ(t, render(t, "{ x <- f | c }"), "{ x <- f | c }")
	expect.EQ(t, render(t, "{ let x : A = a, y <- f }"), "{ let x : A = a, y <- f }")
}

func TestMixedFieldsRejected(t *testing.T) {
	for _, src := range []string{
		"{ x : A, y = b }",
		"{ x = a, y : B }",
		"{ x <- f, y = b }",
		"{ x = a, y <- f }",
	} {
		term, msgs, _ := parseTerm(t, src)
		assert.Falsef(t, msgs.Empty(), "src: %q", src)
		_, ok := term.(*ASTError)
		assert.Truef(t, ok, "src: %q -> %# v", src, pretty.Formatter(term))
	}
}

func TestFormatRecordWhere(t *testing.T) {
	src := "{ len <- u16, data <- array len u8 where len > 0 }"
	term, msgs, tbl := parseTerm(t, src)
	require.Truef(t, msgs.Empty(), "msgs: %v", msgs.Slice())
	rec := term.(*ASTFormatRecord)
	require.Len(t, rec.Fields, 2)

	assert.Equal(t, "len", tbl.Name(rec.Fields[0].Label.Name))
	_, ok := rec.Fields[0].Format.(*ASTName)
	assert.True(t, ok)
	assert.Nil(t, rec.Fields[0].Pred)

	assert.Equal(t, "data", tbl.Name(rec.Fields[1].Label.Name))
	app, ok := rec.Fields[1].Format.(*ASTApp)
	require.True(t, ok)
	assert.Len(t, app.Args, 2)
	pred, ok := rec.Fields[1].Pred.(*ASTBinOp)
	require.True(t, ok)
	assert.Equal(t, OpGt, pred.Op.Kind)

	expect.EQ(t, term.Render(tbl),
		"{ len <- u16, data <- array len u8 where (len > 0) }")
}

func TestFormatCondNoWhere(t *testing.T) {
	// A where-predicate and a "|" condition cannot be combined.
	_, msgs, _ := parseTerm(t, "{ x <- f where p | c }")
	assert.False(t, msgs.Empty())
}

func TestMatch(t *testing.T) {
	term, msgs, tbl := parseTerm(t, "match x { true => 1, false => 0, _ => 2 }")
	require.True(t, msgs.Empty())
	m := term.(*ASTMatch)
	_, ok := m.Scrutinee.(*ASTName)
	assert.True(t, ok)
	require.Len(t, m.Arms, 3)
	b, ok := m.Arms[0].Pattern.(*ASTBooleanPattern)
	require.True(t, ok)
	assert.True(t, b.Value)
	_, ok = m.Arms[2].Pattern.(*ASTPlaceholderPattern)
	assert.True(t, ok)
	expect.EQ(t, term.Render(tbl), "match x { true => 1, false => 0, _ => 2 }")
}

func TestMatchEmpty(t *testing.T) {
	term, msgs, _ := parseTerm(t, "match x {}")
	require.True(t, msgs.Empty())
	assert.Empty(t, term.(*ASTMatch).Arms)
}

func TestLetIfAnn(t *testing.T) {
	expect.EQ(t, render(t, "let x : A = 1; x"), "let x : A = 1; x")
	expect.EQ(t, render(t, "let _ = f y; z"), "let _ = f y; z")
	expect.EQ(t, render(t, "if a then b else c"), "if a then b else c")
	expect.EQ(t, render(t, "x : A"), "x : A")
	expect.EQ(t, render(t, "if a == b then c else d"), "if (a == b) then c else d")
}

func TestFun(t *testing.T) {
	term, msgs, tbl := parseTerm(t, "fun x (y : A) => x")
	require.True(t, msgs.Empty())
	lit := term.(*ASTFunLiteral)
	assert.Len(t, lit.Params, 2)
	expect.EQ(t, term.Render(tbl), "fun x (y : A) => x")

	term, msgs, tbl = parseTerm(t, "fun (A : Type) -> A")
	require.True(t, msgs.Empty())
	_, ok := term.(*ASTFunType)
	assert.True(t, ok)
	expect.EQ(t, term.Render(tbl), "fun (A : Type) -> A")
}

func TestAtoms(t *testing.T) {
	term, _, tbl := parseTerm(t, "?size")
	hole := term.(*ASTHole)
	assert.Equal(t, "size", tbl.Name(hole.Name))

	term, _, _ = parseTerm(t, "_")
	_, ok := term.(*ASTPlaceholder)
	assert.True(t, ok)

	expect.EQ(t, render(t, `"abc"`), `"abc"`)
	expect.EQ(t, render(t, "0xFF"), "0xFF")
	expect.EQ(t, render(t, "true"), "true")
}

func TestProj(t *testing.T) {
	term, msgs, tbl := parseTerm(t, "header.magic.lo")
	require.True(t, msgs.Empty())
	proj := term.(*ASTProj)
	require.Len(t, proj.Labels, 2)
	assert.Equal(t, "magic", tbl.Name(proj.Labels[0].Name))
	expect.EQ(t, term.Render(tbl), "header.magic.lo")

	// Projection binds tighter than application.
	expect.EQ(t, render(t, "f x.lo y.hi"), "f x.lo y.hi")
}

func TestItemRecovery(t *testing.T) {
	mod, msgs, tbl := parseModule(t, "def f = ;  def g = Type;")
	require.Len(t, mod.Items, 2)
	_, ok := mod.Items[0].(*ASTError)
	assert.Truef(t, ok, "item: %# v", pretty.Formatter(mod.Items[0]))
	def, ok := mod.Items[1].(*ASTDef)
	require.True(t, ok)
	assert.Equal(t, "g", tbl.Name(def.Label.Name))
	assert.Equal(t, 1, msgs.Len())
	assert.Equal(t, UnexpectedToken, msgs.At(0).Kind)
}

func TestElementRecovery(t *testing.T) {
	term, msgs, _ := parseTerm(t, "[1, +, 2]")
	arr := term.(*ASTArrayLiteral)
	require.Len(t, arr.Elems, 3)
	_, ok := arr.Elems[1].(*ASTError)
	assert.True(t, ok)
	assert.Equal(t, 1, msgs.Len())
}

func TestLexicalErrorSurfaces(t *testing.T) {
	mod, msgs, _ := parseModule(t, "def f = $;")
	require.NotNil(t, mod)
	require.False(t, msgs.Empty())
	assert.Equal(t, LexicalError, msgs.At(0).Kind)
}

func TestExtraToken(t *testing.T) {
	_, msgs, _ := parseTerm(t, "x y) z")
	require.False(t, msgs.Empty())
	last := msgs.At(msgs.Len() - 1)
	assert.Equal(t, ExtraToken, last.Kind)
}

func TestEOFReported(t *testing.T) {
	_, msgs, _ := parseModule(t, "def f = 1 +")
	require.False(t, msgs.Empty())
	assert.Equal(t, UnrecognizedEOF, msgs.At(0).Kind)
}

// countErrorNodes walks the module counting recovery placeholders.
func countErrorNodes(mod *Module) int {
	n := 0
	for _, item := range mod.Items {
		Walk(item, func(node Node) bool {
			if _, ok := node.(*ASTError); ok {
				n++
			}
			return true
		})
	}
	return n
}

func countRecoveryMessages(msgs *Messages) int {
	n := 0
	for _, m := range msgs.Slice() {
		if m.Kind == UnexpectedToken || m.Kind == UnrecognizedEOF {
			n++
		}
	}
	return n
}

// The parser must terminate on arbitrary input, and recovery
// placeholders must pair one-to-one with recovery diagnostics.
func TestParserNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"def",
		"def ;",
		"def f",
		"def f = ;",
		"def f = 1 + ;",
		"def f = (1, ; def g = 2;",
		"((",
		"))",
		"}{",
		"def f = { x <- ;",
		"def f = match x { true => , };",
		"def f = [1, , 2];",
		"def f = fun -> x;",
		"def f = @;",
		"; ; ;",
		"def f = { x : A, y = b };",
		"def f = overlap { };",
		"let x = 1",
		"def f = \"unterminated;",
		"def f = 1; def",
	}
	for _, src := range inputs {
		mod, msgs, _ := parseModule(t, src)
		require.NotNilf(t, mod, "src: %q", src)
		assert.Equalf(t, countRecoveryMessages(msgs), countErrorNodes(mod),
			"src: %q, msgs: %v", src, msgs.Slice())
	}
}

// Range sanity over a corpus: every child range is contained in its
// parent's, and sibling ranges are disjoint and increasing.
func TestRanges(t *testing.T) {
	sources := []string{
		"def id : Type = Type;",
		"def f x (y : Type) @z = x + y * z;",
		"def pair = { first <- u16, second <- array first u8 where first > 0 };",
		"def v = match x { true => (1, 2), _ => [a.b.c, ?h] };",
		"def g = fun (x : A) => if x == y then { a = 1 } else { a : Type };",
		"def h = let p : T = overlap { x <- f, y <- g }; { n <- b | n < 10 };",
	}
	for _, src := range sources {
		mod, msgs, _ := parseModule(t, src)
		require.Truef(t, msgs.Empty(), "src: %q msgs: %v", src, msgs.Slice())
		for _, item := range mod.Items {
			checkRanges(t, src, item)
		}
	}
}

func checkRanges(t *testing.T, src string, n Node) {
	t.Helper()
	r := n.Range()
	require.Truef(t, r.Start <= r.End, "src %q: bad range %v on %T", src, r, n)
	prev := srcpos.ByteRange{}
	for _, c := range Children(n) {
		cr := c.Range()
		assert.Truef(t, r.Contains(cr), "src %q: child %T %v outside parent %T %v",
			src, c, cr, n, r)
		assert.Truef(t, prev.End <= cr.Start && (prev == srcpos.ByteRange{} || prev.Start < cr.Start),
			"src %q: sibling %T %v not after %v", src, c, cr, prev)
		prev = cr
		checkRanges(t, src, c)
	}
}

// Parsing the same source repeatedly, concurrently, with a shared
// intern table must produce identical trees.
func TestDeterminism(t *testing.T) {
	src := []byte("def pcap = { magic <- u32 | magic == 1 };\n" +
		"def body = { len <- u16, data <- array len u8 where len > 0 };")
	tbl := symbol.NewTable()
	const n = 16
	renders := make([]string, n)
	hashes := make([]hash.Hash, n)
	err := traverse.Each(n, func(i int) error {
		msgs := &Messages{}
		mod := ParseModule(src, tbl, arena.New(), msgs)
		if !msgs.Empty() {
			return fmt.Errorf("parse %d: %v", i, msgs.Slice())
		}
		renders[i] = mod.Render(tbl)
		hashes[i] = mod.Hash(tbl)
		return nil
	})
	require.NoError(t, err)
	for i := 1; i < n; i++ {
		assert.Equal(t, renders[0], renders[i])
		assert.Equal(t, hashes[0], hashes[i])
	}
}

// Hashes are stable across separate intern tables: handles renumber
// but hashing goes through the interned text.
func TestHashAcrossTables(t *testing.T) {
	src := "def f = { x <- u8, y <- u16 };"
	mod1, msgs1, tbl1 := parseModule(t, src)
	// Skew the second table's IDs before parsing.
	tbl2 := symbol.NewTable()
	tbl2.Intern("skew0")
	tbl2.Intern("skew1")
	msgs2 := &Messages{}
	mod2 := ParseModule([]byte(src), tbl2, arena.New(), msgs2)
	require.True(t, msgs1.Empty() && msgs2.Empty())
	assert.Equal(t, mod1.Hash(tbl1), mod2.Hash(tbl2))
	assert.Equal(t, mod1.Render(tbl1), mod2.Render(tbl2))
}

func TestMessageRender(t *testing.T) {
	_, msgs, _ := parseModule(t, "def f = ;")
	require.Equal(t, 1, msgs.Len())
	assert.Regexp(t, `^8\.\.9: unexpected token ";", expected a term$`, msgs.At(0).String())
}
