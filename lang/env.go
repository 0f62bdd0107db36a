package lang

import "fmt"

// Env implements a lexical environment chain. A child holds a plain
// reference to its parent; parent links only point outward.
type Env struct {
	parent *Env
	values map[string]Value
}

// NewEnv creates an environment with optional parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		values: make(map[string]Value),
	}
}

// Define binds name to value in the current frame. A name may be defined
// at most once per frame; shadowing a name from an enclosing frame is
// allowed.
func (e *Env) Define(name string, val Value) error {
	if _, ok := e.values[name]; ok {
		return fmt.Errorf("%w: %s", ErrRedefinition, name)
	}
	e.values[name] = val
	return nil
}

// Assign updates an existing binding, searching parents if needed. It
// never creates a binding.
func (e *Env) Assign(name string, val Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = val
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
}

// Get retrieves a binding, searching parents if necessary.
func (e *Env) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name]; ok {
			return val, nil
		}
	}
	return Nil, fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
}

// Parent returns the parent environment.
func (e *Env) Parent() *Env {
	return e.parent
}
