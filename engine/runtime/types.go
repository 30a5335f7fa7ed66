package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"fwjs/engine/ast"
)

type Value interface {
	isValue()
	Equal(v Value) bool
	Op(opt string, other Value) (Value, error)
	String() string
}

var _ Value = Int(0)
var _ Value = Bool(true)
var _ Value = nil_{}
var _ Value = (*Closure)(nil)

type Int int64

func (I Int) isValue() {}
func (I Int) Equal(v Value) bool {
	switch v.(type) {
	case Int:
		return v.(Int) == I
	default:
		return false
	}
}
func (I Int) String() string {
	return strconv.FormatInt(int64(I), 10)
}
func (I Int) Op(opt string, other Value) (Value, error) {
	return route(I, opt, other)
}

type Bool bool

func (b Bool) isValue() {}
func (b Bool) Equal(v Value) bool {
	switch v.(type) {
	case Bool:
		return v.(Bool) == b
	default:
		return false
	}
}
func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}
func (b Bool) Op(opt string, other Value) (Value, error) {
	return route(b, opt, other)
}

type nil_ struct{}

// Nil is what an expression evaluates to when nothing else applies.
var Nil = nil_{}

func (n nil_) isValue() {}
func (n nil_) Equal(v Value) bool {
	switch v.(type) {
	case nil_:
		return true
	default:
		return false
	}
}
func (n nil_) String() string {
	return "null"
}
func (n nil_) Op(opt string, other Value) (Value, error) {
	return route(n, opt, other)
}

// Closure is a function value. Env is the scope the function was declared in;
// it is shared with every other closure declared there, never copied.
type Closure struct {
	Params []string
	Body   ast.Ast
	Env    *Env
}

func NewClosure(params []string, body ast.Ast, env *Env) *Closure {
	return &Closure{Params: params, Body: body, Env: env}
}

func (c *Closure) isValue() {}

// Equal is identity: two closures are equal only if they are the same value.
func (c *Closure) Equal(v Value) bool {
	other, ok := v.(*Closure)
	return ok && other == c
}
func (c *Closure) String() string {
	return fmt.Sprintf("<function(%s)>", strings.Join(c.Params, ", "))
}
func (c *Closure) Op(opt string, other Value) (Value, error) {
	return route(c, opt, other)
}
