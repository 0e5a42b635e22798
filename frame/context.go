// Package frame implements Frame: graph → value. It walks a shape
// against a Dataset and enumerates every native value that satisfies
// it, via a depth-first backtracking generator.
package frame

import (
	"github.com/cayleygraph/ramp/ramperr"
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
	"github.com/cayleygraph/ramp/value"
)

// Context is the mutable traversal state shared by one Frame call: the
// shape stack, the recursion-breaking "visiting" set, and the vars map
// each yielded Solution is built from.
//
// Context is not safe for concurrent use by multiple goroutines; two
// concurrent Frame calls must each use their own Context.
type Context struct {
	Shapes  *shape.Set
	Dataset *term.Dataset

	vars     map[shape.ShapeID]value.Value
	visiting map[string]bool
	stack    []ramperr.Frame
}

func newContext(shapes *shape.Set, ds *term.Dataset) *Context {
	return &Context{
		Shapes:   shapes,
		Dataset:  ds,
		vars:     make(map[shape.ShapeID]value.Value),
		visiting: make(map[string]bool),
	}
}

func (ctx *Context) push(fr ramperr.Frame) { ctx.stack = append(ctx.stack, fr) }
func (ctx *Context) pop()                  { ctx.stack = ctx.stack[:len(ctx.stack)-1] }

func (ctx *Context) wrap(err error) error {
	if err == nil {
		return nil
	}
	re, ok := err.(*ramperr.Error)
	if !ok {
		return err
	}
	for i := len(ctx.stack) - 1; i >= 0; i-- {
		re = re.Push(ctx.stack[i])
	}
	return re
}

func visitKey(id shape.ShapeID, subject term.Term) string {
	return string(id) + "|" + subject.String()
}
