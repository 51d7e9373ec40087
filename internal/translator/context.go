package translator

import "github.com/infiniv/luqum/internal/naming"

// translateContext is threaded explicitly through Pass A as a plain
// function parameter — never stored on the translator — so that concurrent
// Translate calls never share mutable walk state.
type translateContext struct {
	fieldStack []string
	nestedPath string
	names      *naming.NameIndex
	path       []int
}

func (c translateContext) field() string {
	if len(c.fieldStack) == 0 {
		return ""
	}
	return c.fieldStack[len(c.fieldStack)-1]
}

func (c translateContext) pushField(name string) translateContext {
	stack := make([]string, len(c.fieldStack)+1)
	copy(stack, c.fieldStack)
	stack[len(stack)-1] = name
	c.fieldStack = stack
	return c
}

func (c translateContext) withNestedPath(p string) translateContext {
	c.nestedPath = p
	return c
}

func (c translateContext) descend(i int) translateContext {
	path := make([]int, len(c.path)+1)
	copy(path, c.path)
	path[len(path)-1] = i
	c.path = path
	return c
}

func (c translateContext) nameFor() string {
	if c.names == nil {
		return ""
	}
	name, _ := c.names.NameAt(c.path)
	return name
}
