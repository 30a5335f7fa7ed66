package ast

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Printer renders a tree in a compact JS-like form for diagnostics. The
// output is not meant to be parsed back.
type Printer struct{}

var _ Visitor[string] = Printer{}

// String renders node with a Printer.
func String(node Ast) string {
	return Printer{}.str(node)
}

func (p Printer) str(node Ast) string {
	s, err := Accept[string](node, p)
	if err != nil {
		return "<invalid>"
	}
	return s
}

func (p Printer) VisitAtom(at AtomType, lexeme string) (string, error) {
	if at == Null {
		return "null", nil
	}
	return lexeme, nil
}

func (p Printer) VisitVar(name string) (string, error) {
	return name, nil
}

func (p Printer) VisitPrint(operand Ast) (string, error) {
	return fmt.Sprintf("print(%s)", p.str(operand)), nil
}

func (p Printer) VisitBinary(left Ast, op string, right Ast) (string, error) {
	return fmt.Sprintf("(%s %s %s)", p.str(left), op, p.str(right)), nil
}

func (p Printer) VisitIfelse(condition Ast, thenDo Ast, elseDo Ast) (string, error) {
	if elseDo == nil {
		return fmt.Sprintf("if (%s) { %s }", p.str(condition), p.str(thenDo)), nil
	}
	return fmt.Sprintf("if (%s) { %s } else { %s }",
		p.str(condition),
		p.str(thenDo),
		p.str(elseDo),
	), nil
}

func (p Printer) VisitWhile(condition Ast, body Ast) (string, error) {
	return fmt.Sprintf("while (%s) { %s }", p.str(condition), p.str(body)), nil
}

func (p Printer) VisitSeq(first Ast, second Ast) (string, error) {
	return fmt.Sprintf("%s; %s", p.str(first), p.str(second)), nil
}

func (p Printer) VisitVarDecl(name string, init Ast) (string, error) {
	return fmt.Sprintf("var %s = %s", name, p.str(init)), nil
}

func (p Printer) VisitAssign(name string, expr Ast) (string, error) {
	return fmt.Sprintf("%s = %s", name, p.str(expr)), nil
}

func (p Printer) VisitFuncDecl(params []string, body Ast) (string, error) {
	return fmt.Sprintf("function(%s) { %s }", strings.Join(params, ", "), p.str(body)), nil
}

func (p Printer) VisitFuncCall(fn Ast, args []Ast) (string, error) {
	strs := lo.Map(args, func(a Ast, _ int) string {
		return p.str(a)
	})
	return fmt.Sprintf("%s(%s)", p.str(fn), strings.Join(strs, ", ")), nil
}
