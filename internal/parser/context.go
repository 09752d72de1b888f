// Package parser implements the Royal recursive descent parser. It walks the
// grouped token tree produced by parsetree and builds the module AST,
// registering every fault with the diagnostics engine.
package parser

import (
	"github.com/royal-lang/rl/internal/ast"
	"github.com/royal-lang/rl/internal/diag"
)

// Context carries all mutable state of one compilation so that parsing is
// free of process-wide globals: the diagnostics engine, the pending
// attributes buffered for the next declaration, the cached do body waiting
// for its while, and the scope-state handler stack.
type Context struct {
	Diag    *diag.Engine
	Source  string
	Verbose bool

	// speculative routes reports through the queued channel so a probing
	// parser can later flush or clear them.
	speculative bool

	pendingAttributes []*ast.Attribute
	pendingDo         *pendingDo

	// handlers maps a scope-state keyword to its installation count.
	// Reference counting lets nested constructs install the same handler
	// without clobbering each other.
	handlers map[string]int
}

// pendingDo caches a parsed do body until the next while statement at the
// same scope level consumes it.
type pendingDo struct {
	line int
	body []*ast.ScopeItem
}

// NewContext creates a parse context for one source file.
func NewContext(engine *diag.Engine, source string) *Context {
	return &Context{
		Diag:     engine,
		Source:   source,
		handlers: make(map[string]int),
	}
}

// report registers a diagnostic on the immediate channel, or on the queued
// channel while a speculative probe is running.
func (c *Context) report(line int, message string) {
	if c.speculative {
		c.Diag.Queue(c.Source, line, message)

		return
	}

	c.Diag.Emit(c.Source, line, message)
}

func (c *Context) reportf(line int, format string, args ...interface{}) {
	if c.speculative {
		c.Diag.Queuef(c.Source, line, format, args...)

		return
	}

	c.Diag.Emitf(c.Source, line, format, args...)
}

// bufferAttribute stores an attribute for the next declaration to claim.
func (c *Context) bufferAttribute(attribute *ast.Attribute) {
	c.pendingAttributes = append(c.pendingAttributes, attribute)
}

// takeAttributes hands out and clears the buffered attributes.
func (c *Context) takeAttributes() []*ast.Attribute {
	attributes := c.pendingAttributes
	c.pendingAttributes = nil

	return attributes
}

// pushHandler installs a scope-state handler for the given keyword.
func (c *Context) pushHandler(name string) {
	c.handlers[name]++
}

// popHandler removes one installation of the handler.
func (c *Context) popHandler(name string) {
	if c.handlers[name] > 0 {
		c.handlers[name]--
	}
}

// handlerActive reports whether the keyword currently has a handler.
func (c *Context) handlerActive(name string) bool {
	return c.handlers[name] > 0
}
