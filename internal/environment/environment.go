/*
File    : gomix-pseudo/internal/environment/environment.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package environment implements the chained scope frames the evaluator
// runs programs in: each subroutine call opens a child frame whose parent
// is the *defining* environment (lexical scoping), not the caller's frame.
package environment

import (
	"github.com/akashmaji946/gomix-pseudo/internal/values"
)

// binding pairs a stored value with whether it is reassignable.
type binding struct {
	value  values.Value
	access values.Access
}

// Environment is one frame of the scope chain. Resolve and Assign walk the
// parent chain; a write to a name not found anywhere in the chain declares
// it in the writing frame (implicit declaration at first write).
type Environment struct {
	vars   map[string]*binding
	parent *Environment
}

// New creates a root environment with no parent.
func New() *Environment {
	return &Environment{vars: make(map[string]*binding)}
}

// Child creates a new frame whose parent is e.
func (e *Environment) Child() *Environment {
	return &Environment{vars: make(map[string]*binding), parent: e}
}

// Declare binds name in the current frame only, optionally as CONST.
// Redeclaring an existing name in the same frame is a ValueError.
func (e *Environment) Declare(name string, v values.Value, access values.Access) error {
	if _, exists := e.vars[name]; exists {
		return &values.ValueError{Msg: "'" + name + "' is already declared in this scope"}
	}
	e.vars[name] = &binding{value: v, access: access}
	return nil
}

// Resolve walks the parent chain looking for name, returning a NameError
// if it is not found anywhere.
func (e *Environment) Resolve(name string) (values.Value, error) {
	for frame := e; frame != nil; frame = frame.parent {
		if b, ok := frame.vars[name]; ok {
			return b.value, nil
		}
	}
	return nil, &values.NameError{Name: name}
}

// IsConst reports whether name resolves to a CONST binding. Returns false
// if the name is not found at all (the caller should check existence
// separately when that distinction matters).
func (e *Environment) IsConst(name string) bool {
	for frame := e; frame != nil; frame = frame.parent {
		if b, ok := frame.vars[name]; ok {
			return b.access == values.ConstAccess
		}
	}
	return false
}

// Assign walks the parent chain to the frame that declared name and
// overwrites its value there. If name is not found anywhere, it is
// implicitly declared in e, the frame executing the assignment.
func (e *Environment) Assign(name string, v values.Value) error {
	for frame := e; frame != nil; frame = frame.parent {
		if b, ok := frame.vars[name]; ok {
			if b.access == values.ConstAccess {
				return &values.ValueError{Msg: "cannot assign to const '" + name + "'"}
			}
			b.value = v
			return nil
		}
	}
	e.vars[name] = &binding{value: v, access: values.Norm}
	return nil
}

// AssignGlobal forces the write into the root frame of the chain,
// regardless of where name may already be bound. It backs the "global"
// assignment form.
func (e *Environment) AssignGlobal(name string, v values.Value) error {
	root := e
	for root.parent != nil {
		root = root.parent
	}
	if b, ok := root.vars[name]; ok {
		if b.access == values.ConstAccess {
			return &values.ValueError{Msg: "cannot assign to const '" + name + "'"}
		}
		b.value = v
		return nil
	}
	root.vars[name] = &binding{value: v, access: values.Norm}
	return nil
}
