// Package flatten implements Flatten: value -> graph, the inverse of
// frame. Unlike framing, flattening is deterministic: one native value
// produces exactly one quad set, so there is no backtracking generator
// here, just a recursive walk that accumulates quads as it goes.
package flatten

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/cayleygraph/ramp/ramperr"
	"github.com/cayleygraph/ramp/shape"
	"github.com/cayleygraph/ramp/term"
)

// Context is the mutable state of one Flatten call: the quads emitted
// so far, the blank node generator, the recursion-breaking "visiting"
// set, the subject memo cache keyed by (shape, value) so that the same
// record value flattened from two different places in the tree resolves
// to the same subject rather than emitting it twice, and the
// resolvingSubject set, which catches a cyclic native value (one whose
// own subject resolution depends on itself) before its subject is even
// known.
//
// Context is not safe for concurrent use by multiple goroutines; two
// concurrent Flatten calls must each use their own Context.
type Context struct {
	Shapes *shape.Set

	quads            []term.Quad
	blankPrefix      string
	blankSeq         uint64
	cache            map[string]term.Term
	visiting         map[string]bool
	resolvingSubject map[string]bool
	stack            []ramperr.Frame
}

func newContext(shapes *shape.Set) *Context {
	return &Context{
		Shapes:           shapes,
		blankPrefix:      randomPrefix(),
		cache:            make(map[string]term.Term),
		visiting:         make(map[string]bool),
		resolvingSubject: make(map[string]bool),
	}
}

func randomPrefix() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "fallback"
	}
	return hex.EncodeToString(b[:])
}

func (ctx *Context) freshBlank() term.BlankNode {
	n := atomic.AddUint64(&ctx.blankSeq, 1)
	return term.BlankNode(fmt.Sprintf("f%s_%d", ctx.blankPrefix, n))
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

// attempt runs fn, rolling back any quads and cache entries fn added if
// it returns an error. Used by union and optional, which both need to
// try a branch and cleanly discard it on failure rather than leaving
// partial quads behind.
func (ctx *Context) attempt(fn func() ([]term.Term, error)) ([]term.Term, error) {
	qmark := len(ctx.quads)
	cacheSnapshot := make(map[string]term.Term, len(ctx.cache))
	for k, v := range ctx.cache {
		cacheSnapshot[k] = v
	}
	out, err := fn()
	if err != nil {
		ctx.quads = ctx.quads[:qmark]
		ctx.cache = cacheSnapshot
	}
	return out, err
}
