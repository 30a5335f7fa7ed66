package interpreter

import (
	"bytes"
	"errors"
	"testing"

	"fwjs/engine/ast"
	"fwjs/engine/runtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fn(body ast.Ast, params ...string) ast.FuncDecl {
	if params == nil {
		params = []string{}
	}
	return ast.FuncDecl{Params: params, Body: body}
}

func call(f ast.Ast, args ...ast.Ast) ast.FuncCall {
	return ast.FuncCall{Fn: f, Args: args}
}

func decl(name string, init ast.Ast) ast.VarDecl {
	return ast.VarDecl{Name: name, Init: init}
}

func TestInterpreter_VisitFuncCall(t *testing.T) {
	// function(a){ return a + 1 } applied to 4
	testValid(t, call(fn(binary(v("a"), "+", ast.MakeInt(1)), "a"), ast.MakeInt(4)), runtime.Int(5))

	// through a variable, with several parameters
	testValid(t, ast.MakeSeq(
		decl("sub", fn(binary(v("a"), "-", v("b")), "a", "b")),
		call(v("sub"), ast.MakeInt(10), ast.MakeInt(3)),
	), runtime.Int(7))

	// functions are values and can be returned
	testValid(t, call(call(fn(fn(binary(v("x"), "*", v("y")), "y"), "x"), ast.MakeInt(6)), ast.MakeInt(7)), runtime.Int(42))
}

func TestInterpreter_VisitFuncCall_NotCallable(t *testing.T) {
	testError(t, call(ast.MakeInt(1)), runtime.ErrNotCallable)
	testError(t, call(ast.MakeBool(true)), runtime.ErrNotCallable)
	testError(t, call(v("undefined")), runtime.ErrNotCallable)
	testError(t, call(ast.MakeNull(), ast.MakeInt(1)), runtime.ErrNotCallable)

	// the callee is checked before any argument is evaluated
	var out bytes.Buffer
	_, err := getInterpreter(&out).Eval(call(ast.MakeInt(1), print_(ast.MakeInt(2))))
	assert.ErrorIs(t, err, runtime.ErrNotCallable)
	assert.Empty(t, out.String())

	// and errors in the callee itself propagate as is
	testError(t, call(binary(ast.MakeInt(1), "/", ast.MakeInt(0))), runtime.ErrDivisionByZero)
}

func TestInterpreter_VisitFuncCall_ArgumentOrder(t *testing.T) {
	testOutput(t, call(
		print_(fn(v("b"), "a", "b")),
		print_(ast.MakeInt(1)),
		print_(ast.MakeInt(2)),
	), runtime.Int(2), "<function(a, b)>\n1\n2\n")

	// arguments are evaluated in the caller's scope
	testValid(t, ast.MakeSeq(
		decl("x", ast.MakeInt(3)),
		decl("id", fn(v("a"), "a")),
		call(v("id"), binary(v("x"), "+", ast.MakeInt(1))),
	), runtime.Int(4))

	// an argument error aborts the call
	var out bytes.Buffer
	_, err := getInterpreter(&out).Eval(call(fn(print_(ast.MakeInt(9)), "a"), ast.IfElse{Condition: ast.MakeInt(0), ThenDo: ast.MakeNull()}))
	assert.ErrorIs(t, err, runtime.ErrTypeMismatch)
	assert.Empty(t, out.String())
}

func TestInterpreter_VisitFuncCall_Arity(t *testing.T) {
	// missing parameters are null
	testValid(t, call(fn(v("b"), "a", "b"), ast.MakeInt(1)), runtime.Nil)
	// and shadow outer bindings of the same name
	testValid(t, ast.MakeSeq(
		decl("a", ast.MakeInt(7)),
		call(fn(v("a"), "a")),
	), runtime.Nil)
	// surplus arguments are evaluated but ignored
	testOutput(t, call(fn(v("a"), "a"), ast.MakeInt(1), print_(ast.MakeInt(2))), runtime.Int(1), "2\n")

	// duplicate parameter names are a redeclaration in the call scope
	testError(t, call(fn(v("a"), "a", "a"), ast.MakeInt(1), ast.MakeInt(2)), runtime.ErrDuplicateDeclaration)
}

func TestInterpreter_ArityMismatchIsLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	i := NewInterpreter(runtime.NewEnv(nil), WithLogger(zap.New(core)))

	_, err := i.Eval(call(fn(v("a"), "a"), ast.MakeInt(1)))
	require.NoError(t, err)
	assert.Equal(t, 0, logs.Len())

	_, err = i.Eval(call(fn(v("a"), "a")))
	require.NoError(t, err)
	entries := logs.FilterMessage("arity mismatch in function application").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["params"])
	assert.Equal(t, int64(0), entries[0].ContextMap()["args"])
}

func TestInterpreter_LexicalScope(t *testing.T) {
	// var x = 1; var f = function() { x }; var g = function(x) { f() }; g(2)
	testValid(t, ast.MakeSeq(
		decl("x", ast.MakeInt(1)),
		decl("f", fn(v("x"))),
		decl("g", fn(call(v("f")), "x")),
		call(v("g"), ast.MakeInt(2)),
	), runtime.Int(1))
}

func TestInterpreter_Shadowing(t *testing.T) {
	// var x = 10; { var x = 20; print x }; print x
	// a block with its own scope is written as an immediately applied function
	testOutput(t, ast.MakeSeq(
		decl("x", ast.MakeInt(10)),
		call(fn(ast.MakeSeq(decl("x", ast.MakeInt(20)), print_(v("x"))))),
		print_(v("x")),
	), runtime.Int(10), "20\n10\n")

	// same thing driving the scopes directly
	var out bytes.Buffer
	global := runtime.NewEnv(nil)
	_, err := NewInterpreter(global, WithSink(LineSink{W: &out})).Eval(decl("x", ast.MakeInt(10)))
	require.NoError(t, err)
	_, err = NewInterpreter(runtime.NewEnv(global), WithSink(LineSink{W: &out})).Eval(ast.MakeSeq(decl("x", ast.MakeInt(20)), print_(v("x"))))
	require.NoError(t, err)
	_, err = NewInterpreter(global, WithSink(LineSink{W: &out})).Eval(print_(v("x")))
	require.NoError(t, err)
	assert.Equal(t, "20\n10\n", out.String())

	// declarations in a function do not leak out of it
	testValid(t, ast.MakeSeq(
		call(fn(decl("z", ast.MakeInt(1)))),
		v("z"),
	), runtime.Nil)
}

func TestInterpreter_ImplicitGlobal(t *testing.T) {
	global := runtime.NewEnv(nil)
	// var f = function() { var g = function() { y = 42 }; g() }; f(); y
	ret, err := NewInterpreter(global).Eval(ast.MakeSeq(
		decl("f", fn(ast.MakeSeq(
			decl("g", fn(ast.Assign{Name: "y", Expr: ast.MakeInt(42)})),
			call(v("g")),
		))),
		call(v("f")),
		v("y"),
	))
	require.NoError(t, err)
	assert.Equal(t, runtime.Int(42), ret)
	assert.Equal(t, runtime.Int(42), global.ResolveVar("y"))

	// but an existing enclosing binding is updated in place
	global = runtime.NewEnv(nil)
	ret, err = NewInterpreter(global).Eval(ast.MakeSeq(
		decl("outer", fn(ast.MakeSeq(
			decl("n", ast.MakeInt(1)),
			call(fn(ast.Assign{Name: "n", Expr: ast.MakeInt(2)})),
			v("n"),
		))),
		call(v("outer")),
	))
	require.NoError(t, err)
	assert.Equal(t, runtime.Int(2), ret)
	assert.Equal(t, runtime.Nil, global.ResolveVar("n"))
}

func TestInterpreter_ClosureCapture(t *testing.T) {
	// var x = 1; var f = function() { x }; x = 5; f()
	testValid(t, ast.MakeSeq(
		decl("x", ast.MakeInt(1)),
		decl("f", fn(v("x"))),
		ast.Assign{Name: "x", Expr: ast.MakeInt(5)},
		call(v("f")),
	), runtime.Int(5))

	// a counter keeps its scope alive after the defining call returns
	testOutput(t, ast.MakeSeq(
		decl("counter", fn(ast.MakeSeq(
			decl("c", ast.MakeInt(0)),
			fn(ast.Assign{Name: "c", Expr: binary(v("c"), "+", ast.MakeInt(1))}),
		))),
		decl("inc", call(v("counter"))),
		decl("other", call(v("counter"))),
		print_(call(v("inc"))),
		print_(call(v("inc"))),
		print_(call(v("other"))),
		v("c"),
	), runtime.Nil, "1\n2\n1\n")

	// two closures declared in the same scope share it
	testValid(t, ast.MakeSeq(
		decl("pair", fn(ast.MakeSeq(
			decl("s", ast.MakeInt(0)),
			decl("set", fn(ast.Assign{Name: "s", Expr: v("n")}, "n")),
			decl("get", fn(v("s"))),
			call(v("set"), ast.MakeInt(8)),
			call(v("get")),
		))),
		call(v("pair")),
	), runtime.Int(8))
}

func TestInterpreter_Determinism(t *testing.T) {
	program := ast.MakeSeq(
		decl("i", ast.MakeInt(0)),
		decl("acc", ast.MakeInt(1)),
		decl("double", fn(binary(v("n"), "*", ast.MakeInt(2)), "n")),
		ast.While{
			Condition: binary(v("i"), "<", ast.MakeInt(5)),
			Body: ast.MakeSeq(
				ast.Assign{Name: "acc", Expr: call(v("double"), v("acc"))},
				print_(v("acc")),
				ast.Assign{Name: "i", Expr: binary(v("i"), "+", ast.MakeInt(1))},
			),
		},
		v("acc"),
	)
	var out1, out2 bytes.Buffer
	ret1, err := Evaluate(program, runtime.NewEnv(nil), LineSink{W: &out1})
	require.NoError(t, err)
	ret2, err := Evaluate(program, runtime.NewEnv(nil), LineSink{W: &out2})
	require.NoError(t, err)
	assert.Equal(t, runtime.Int(32), ret1)
	assert.Equal(t, ret1, ret2)
	assert.Equal(t, "2\n4\n8\n16\n32\n", out1.String())
	assert.Equal(t, out1.String(), out2.String())
}

type failingSink struct{}

func (failingSink) Print(runtime.Value) error {
	return errors.New("sink closed")
}

func TestInterpreter_SinkError(t *testing.T) {
	_, err := Evaluate(ast.Seq{First: print_(ast.MakeInt(1)), Second: ast.MakeInt(2)}, runtime.NewEnv(nil), failingSink{})
	assert.EqualError(t, err, "could not print '1': sink closed")
}

func TestEvaluate_MissingNode(t *testing.T) {
	_, err := Evaluate(ast.Binary{Left: ast.MakeInt(1), Op: "+"}, runtime.NewEnv(nil), LineSink{W: &bytes.Buffer{}})
	assert.ErrorIs(t, err, ast.ErrMalformedTree)
}
