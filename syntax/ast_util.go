package syntax

// Traversal utilities over the syntax tree.

import "github.com/grailbio/base/log"

// Children returns n's direct child nodes in source order. Labels
// and operators are not nodes; optional children that were not
// written are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(ns ...Node) {
		for _, c := range ns {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	addTerm := func(ts ...Term) {
		for _, t := range ts {
			if t != nil {
				out = append(out, t)
			}
		}
	}
	addParams := func(params []Param) {
		for _, p := range params {
			add(p.Pattern)
			addTerm(p.Type)
		}
	}
	switch n := n.(type) {
	case *ASTDef:
		addParams(n.Params)
		addTerm(n.Type, n.Expr)
	case *ASTError, *ASTName, *ASTHole, *ASTPlaceholder, *ASTUniverse,
		*ASTStringLiteral, *ASTNumberLiteral, *ASTBooleanLiteral,
		*ASTNamePattern, *ASTPlaceholderPattern, *ASTStringPattern,
		*ASTNumberPattern, *ASTBooleanPattern:
		// Leaves.
	case *ASTParen:
		addTerm(n.Term)
	case *ASTTuple:
		addTerm(n.Elems...)
	case *ASTArrayLiteral:
		addTerm(n.Elems...)
	case *ASTAnn:
		addTerm(n.Expr, n.Type)
	case *ASTLet:
		add(n.Pattern)
		addTerm(n.Type, n.Value, n.Body)
	case *ASTIf:
		addTerm(n.Cond, n.Then, n.Else)
	case *ASTArrow:
		addTerm(n.ParamType, n.BodyType)
	case *ASTFunType:
		addParams(n.Params)
		addTerm(n.BodyType)
	case *ASTFunLiteral:
		addParams(n.Params)
		addTerm(n.Body)
	case *ASTApp:
		addTerm(n.Head)
		for _, a := range n.Args {
			addTerm(a.Term)
		}
	case *ASTProj:
		addTerm(n.Head)
	case *ASTMatch:
		addTerm(n.Scrutinee)
		for _, arm := range n.Arms {
			add(arm.Pattern)
			addTerm(arm.Expr)
		}
	case *ASTRecordType:
		for _, f := range n.Fields {
			addTerm(f.Type)
		}
	case *ASTRecordLiteral:
		for _, f := range n.Fields {
			addTerm(f.Expr)
		}
	case *ASTFormatRecord:
		addFormatFields(&out, n.Fields)
	case *ASTFormatCond:
		addTerm(n.Format, n.Cond)
	case *ASTFormatOverlap:
		addFormatFields(&out, n.Fields)
	case *ASTBinOp:
		addTerm(n.Lhs, n.Rhs)
	default:
		log.Panicf("syntax: unknown node type %T", n)
	}
	return out
}

func addFormatFields(out *[]Node, fields []FormatField) {
	for _, f := range fields {
		for _, t := range []Term{f.Type, f.Expr, f.Format, f.Pred} {
			if t != nil {
				*out = append(*out, t)
			}
		}
	}
}

// Walk calls fn on n and every node below it, preorder. fn returning
// false prunes the subtree.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}
