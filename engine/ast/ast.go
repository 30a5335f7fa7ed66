package ast

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedTree    = errors.New("malformed tree")
	ErrMalformedLiteral = errors.New("malformed literal")
)

// Visitor is implemented once per thing that walks a tree: the interpreter
// produces values, the printer produces strings.
type Visitor[T any] interface {
	VisitAtom(at AtomType, lexeme string) (T, error)
	VisitVar(name string) (T, error)
	VisitPrint(operand Ast) (T, error)
	VisitBinary(left Ast, op string, right Ast) (T, error)
	VisitIfelse(condition Ast, thenDo Ast, elseDo Ast) (T, error)
	VisitWhile(condition Ast, body Ast) (T, error)
	VisitSeq(first Ast, second Ast) (T, error)
	VisitVarDecl(name string, init Ast) (T, error)
	VisitAssign(name string, expr Ast) (T, error)
	VisitFuncDecl(params []string, body Ast) (T, error)
	VisitFuncCall(fn Ast, args []Ast) (T, error)
}

// Ast is a node of an already parsed program. Nodes are plain values and are
// never mutated once built, so one tree can be evaluated any number of times.
type Ast interface {
	isAst()
}

var _ Ast = Atom{}
var _ Ast = Var{}
var _ Ast = Print{}
var _ Ast = Binary{}
var _ Ast = IfElse{}
var _ Ast = While{}
var _ Ast = Seq{}
var _ Ast = VarDecl{}
var _ Ast = Assign{}
var _ Ast = FuncDecl{}
var _ Ast = FuncCall{}

type AtomType uint8

const (
	Int AtomType = iota + 1
	Bool
	Null
)

func (at AtomType) String() string {
	switch at {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Null:
		return "null"
	default:
		return fmt.Sprintf("unknown:%d", uint8(at))
	}
}

type Atom struct {
	Type   AtomType
	Lexeme string
}

type Var struct {
	Name string
}

type Print struct {
	Operand Ast
}

type Binary struct {
	Left  Ast
	Op    string
	Right Ast
}

// IfElse with a nil ElseDo has no else branch.
type IfElse struct {
	Condition Ast
	ThenDo    Ast
	ElseDo    Ast
}

type While struct {
	Condition Ast
	Body      Ast
}

type Seq struct {
	First  Ast
	Second Ast
}

type VarDecl struct {
	Name string
	Init Ast
}

type Assign struct {
	Name string
	Expr Ast
}

type FuncDecl struct {
	Params []string
	Body   Ast
}

type FuncCall struct {
	Fn   Ast
	Args []Ast
}

func (Atom) isAst()     {}
func (Var) isAst()      {}
func (Print) isAst()    {}
func (Binary) isAst()   {}
func (IfElse) isAst()   {}
func (While) isAst()    {}
func (Seq) isAst()      {}
func (VarDecl) isAst()  {}
func (Assign) isAst()   {}
func (FuncDecl) isAst() {}
func (FuncCall) isAst() {}

// Accept dispatches node to the matching method of v.
func Accept[T any](node Ast, v Visitor[T]) (T, error) {
	switch n := node.(type) {
	case nil:
		var zero T
		return zero, fmt.Errorf("%w: missing node", ErrMalformedTree)
	case Atom:
		return v.VisitAtom(n.Type, n.Lexeme)
	case Var:
		return v.VisitVar(n.Name)
	case Print:
		return v.VisitPrint(n.Operand)
	case Binary:
		return v.VisitBinary(n.Left, n.Op, n.Right)
	case IfElse:
		return v.VisitIfelse(n.Condition, n.ThenDo, n.ElseDo)
	case While:
		return v.VisitWhile(n.Condition, n.Body)
	case Seq:
		return v.VisitSeq(n.First, n.Second)
	case VarDecl:
		return v.VisitVarDecl(n.Name, n.Init)
	case Assign:
		return v.VisitAssign(n.Name, n.Expr)
	case FuncDecl:
		return v.VisitFuncDecl(n.Params, n.Body)
	case FuncCall:
		return v.VisitFuncCall(n.Fn, n.Args)
	}
	// isAst is unexported, so the switch above is exhaustive
	panic(fmt.Sprintf("unreachable: unexpected node type: %T", node))
}
