package ast

import "strconv"

func MakeInt(i int64) Atom {
	return Atom{Type: Int, Lexeme: strconv.FormatInt(i, 10)}
}

func MakeBool(b bool) Atom {
	return Atom{Type: Bool, Lexeme: strconv.FormatBool(b)}
}

func MakeNull() Atom {
	return Atom{Type: Null}
}

// MakeSeq chains nodes left to right with Seq, the way a parser lowers a
// block of statements. A single node is returned as is.
func MakeSeq(first Ast, rest ...Ast) Ast {
	ret := first
	for _, r := range rest {
		ret = Seq{First: ret, Second: r}
	}
	return ret
}

var TestExamples []Ast

func init() {
	// Used in printer and decoder tests; keep one of each node type.
	TestExamples = []Ast{
		MakeInt(4),
		MakeInt(-4),
		MakeBool(true),
		MakeNull(),
		Var{Name: "x"},
		Print{Operand: Var{Name: "x"}},
		Binary{Left: MakeInt(1), Op: "+", Right: MakeBool(false)},
		IfElse{Condition: MakeBool(true), ThenDo: MakeInt(1), ElseDo: MakeInt(2)},
		IfElse{Condition: MakeBool(true), ThenDo: MakeInt(1)},
		While{Condition: MakeBool(false), Body: Print{Operand: MakeInt(1)}},
		Seq{First: MakeInt(1), Second: MakeInt(2)},
		VarDecl{Name: "x", Init: MakeInt(5)},
		Assign{Name: "x", Expr: MakeInt(6)},
		FuncDecl{Params: []string{"a", "b"}, Body: Binary{Left: Var{Name: "a"}, Op: "+", Right: Var{Name: "b"}}},
		FuncDecl{Params: []string{}, Body: MakeNull()},
		FuncCall{Fn: Var{Name: "f"}, Args: []Ast{MakeInt(1), Var{Name: "y"}}},
	}
}
