package interpreter

import (
	"fmt"
	"io"
	"strconv"

	"fwjs/engine/ast"
	"fwjs/engine/runtime"

	"go.uber.org/zap"
)

type Interpreter struct {
	env    *runtime.Env
	sink   Sink
	logger *zap.Logger
}

var _ ast.Visitor[runtime.Value] = Interpreter{}

type Option func(*Interpreter)

func WithSink(sink Sink) Option {
	return func(i *Interpreter) {
		i.sink = sink
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// NewInterpreter returns an interpreter that evaluates against env. Unless
// overridden, printed values are discarded and nothing is logged.
func NewInterpreter(env *runtime.Env, opts ...Option) Interpreter {
	i := Interpreter{
		env:    env,
		sink:   LineSink{W: io.Discard},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&i)
	}
	return i
}

// Evaluate runs root against global, which should be a fresh scope with no
// outer link. Any error aborts the whole evaluation.
func Evaluate(root ast.Ast, global *runtime.Env, sink Sink) (runtime.Value, error) {
	return NewInterpreter(global, WithSink(sink)).Eval(root)
}

func (i Interpreter) Eval(node ast.Ast) (runtime.Value, error) {
	return ast.Accept[runtime.Value](node, i)
}

func (i Interpreter) VisitAtom(at ast.AtomType, lexeme string) (runtime.Value, error) {
	switch at {
	case ast.Int:
		n, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			return runtime.Nil, fmt.Errorf("%w: '%s' is not an int", ast.ErrMalformedLiteral, lexeme)
		}
		return runtime.Int(n), nil
	case ast.Bool:
		b, err := strconv.ParseBool(lexeme)
		if err != nil {
			return runtime.Nil, fmt.Errorf("%w: '%s' is not a bool", ast.ErrMalformedLiteral, lexeme)
		}
		return runtime.Bool(b), nil
	case ast.Null:
		return runtime.Nil, nil
	default:
		return runtime.Nil, fmt.Errorf("%w: invalid atom type: %v", ast.ErrMalformedLiteral, at)
	}
}

func (i Interpreter) VisitVar(name string) (runtime.Value, error) {
	return i.env.ResolveVar(name), nil
}

func (i Interpreter) VisitPrint(operand ast.Ast) (runtime.Value, error) {
	v, err := i.Eval(operand)
	if err != nil {
		return runtime.Nil, err
	}
	if err = i.sink.Print(v); err != nil {
		return runtime.Nil, fmt.Errorf("could not print '%s': %w", v, err)
	}
	return v, nil
}

func (i Interpreter) VisitBinary(left ast.Ast, op string, right ast.Ast) (runtime.Value, error) {
	l, err := i.Eval(left)
	if err != nil {
		return runtime.Nil, err
	}
	r, err := i.Eval(right)
	if err != nil {
		return runtime.Nil, err
	}
	return l.Op(op, r)
}

// VisitIfelse evaluates both branches before looking at the condition, so
// side effects of both always happen. Only the result is selected.
func (i Interpreter) VisitIfelse(condition ast.Ast, thenDo ast.Ast, elseDo ast.Ast) (runtime.Value, error) {
	t, err := i.Eval(thenDo)
	if err != nil {
		return runtime.Nil, err
	}
	var e runtime.Value = runtime.Nil
	if elseDo != nil {
		if e, err = i.Eval(elseDo); err != nil {
			return runtime.Nil, err
		}
	}
	cond, err := i.condition(condition)
	if err != nil {
		return runtime.Nil, err
	}
	if cond {
		return t, nil
	}
	return e, nil
}

func (i Interpreter) VisitWhile(condition ast.Ast, body ast.Ast) (runtime.Value, error) {
	var ret runtime.Value = runtime.Nil
	for {
		cond, err := i.condition(condition)
		if err != nil {
			return runtime.Nil, err
		}
		if !cond {
			return ret, nil
		}
		if ret, err = i.Eval(body); err != nil {
			return runtime.Nil, err
		}
	}
}

func (i Interpreter) condition(condition ast.Ast) (bool, error) {
	c, err := i.Eval(condition)
	if err != nil {
		return false, err
	}
	b, ok := c.(runtime.Bool)
	if !ok {
		return false, fmt.Errorf("%w: condition %s does not evaluate to a boolean but: '%s'", runtime.ErrTypeMismatch, ast.String(condition), c)
	}
	return bool(b), nil
}

func (i Interpreter) VisitSeq(first ast.Ast, second ast.Ast) (runtime.Value, error) {
	if _, err := i.Eval(first); err != nil {
		return runtime.Nil, err
	}
	return i.Eval(second)
}

func (i Interpreter) VisitVarDecl(name string, init ast.Ast) (runtime.Value, error) {
	val, err := i.Eval(init)
	if err != nil {
		return runtime.Nil, err
	}
	if err = i.env.CreateVar(name, val); err != nil {
		return runtime.Nil, err
	}
	return val, nil
}

// VisitAssign reads the name back after updating it, so the result is
// whatever ended up stored, wherever that is.
func (i Interpreter) VisitAssign(name string, expr ast.Ast) (runtime.Value, error) {
	val, err := i.Eval(expr)
	if err != nil {
		return runtime.Nil, err
	}
	i.env.UpdateVar(name, val)
	return i.env.ResolveVar(name), nil
}

func (i Interpreter) VisitFuncDecl(params []string, body ast.Ast) (runtime.Value, error) {
	return runtime.NewClosure(params, body, i.env), nil
}

func (i Interpreter) VisitFuncCall(fn ast.Ast, args []ast.Ast) (runtime.Value, error) {
	f, err := i.Eval(fn)
	if err != nil {
		return runtime.Nil, err
	}
	closure, ok := f.(*runtime.Closure)
	if !ok {
		return runtime.Nil, fmt.Errorf("%w: %s evaluates to '%s'", runtime.ErrNotCallable, ast.String(fn), f)
	}
	vals := make([]runtime.Value, 0, len(args))
	for _, arg := range args {
		v, err := i.Eval(arg)
		if err != nil {
			return runtime.Nil, err
		}
		vals = append(vals, v)
	}
	return i.apply(closure, vals)
}

// apply runs the closure body in a fresh scope whose outer link is the
// scope the closure was declared in, not the caller's. Parameters without
// an argument are bound to Nil and surplus arguments are dropped.
func (i Interpreter) apply(closure *runtime.Closure, args []runtime.Value) (runtime.Value, error) {
	if len(args) != len(closure.Params) {
		i.logger.Debug("arity mismatch in function application",
			zap.Int("params", len(closure.Params)),
			zap.Int("args", len(args)),
		)
	}
	callee := i
	callee.env = runtime.NewEnv(closure.Env)
	for k, param := range closure.Params {
		var v runtime.Value = runtime.Nil
		if k < len(args) {
			v = args[k]
		}
		if err := callee.env.CreateVar(param, v); err != nil {
			return runtime.Nil, err
		}
	}
	return callee.Eval(closure.Body)
}
