package runtime

import (
	"fmt"

	"github.com/samber/mo"
)

type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a scope whose outer link is parent. A nil parent makes a
// global scope.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		table:  make(map[string]Value),
	}
}

func (e *Env) Parent() *Env {
	return e.parent
}

// Global returns the outermost scope of the chain e belongs to.
func (e *Env) Global() *Env {
	g := e
	for g.parent != nil {
		g = g.parent
	}
	return g
}

// lookup walks outward and reports whether any scope binds name.
func (e *Env) lookup(name string) mo.Option[Value] {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.table[name]; ok {
			return mo.Some(v)
		}
	}
	return mo.None[Value]()
}

// ResolveVar returns the innermost binding of name, or Nil if no scope in
// the chain binds it. A missing name is not an error.
func (e *Env) ResolveVar(name string) Value {
	return e.lookup(name).OrElse(Nil)
}

// UpdateVar mutates the nearest existing binding of name. If none exists,
// the binding is created in the global scope, however deep e is.
func (e *Env) UpdateVar(name string, v Value) {
	if _, ok := e.table[name]; ok {
		e.table[name] = v
		return
	}
	if e.parent != nil && e.parent.lookup(name).IsPresent() {
		e.parent.UpdateVar(name, v)
		return
	}
	e.Global().table[name] = v
}

// CreateVar binds name in this scope only. Shadowing an outer binding is
// fine; redeclaring within the same scope is not.
func (e *Env) CreateVar(name string, v Value) error {
	if _, ok := e.table[name]; ok {
		return fmt.Errorf("%w: '%s' is already defined in this scope", ErrDuplicateDeclaration, name)
	}
	e.table[name] = v
	return nil
}
