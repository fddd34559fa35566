package interpol

import (
	"fmt"
	"math"
)

// BuildError is returned when an event can't be constructed because one of its
// fields is missing or invalid. Invalid events are never constructed.
type BuildError struct {
	Kind   Kind
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s: %s: %s", e.Kind, e.Field, e.Reason)
}

// check collects the first problem found while validating the fields of an
// event of a given kind.
type check struct {
	kind Kind
	err  *BuildError
}

func (c *check) fail(field, format string, args ...any) {
	if c.err != nil {
		return
	}
	c.err = &BuildError{Kind: c.kind, Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (c *check) rank(field string, r int32) {
	if r < 0 {
		c.fail(field, "must be non-negative, have %d", r)
	}
}

func (c *check) source(field string, r int32) {
	if r < 0 && r != AnySource {
		c.fail(field, "must be non-negative or AnySource, have %d", r)
	}
}

func (c *check) tag(field string, t int32, wildcard bool) {
	switch {
	case t >= 0:
	case wildcard && t == AnyTag:
	default:
		c.fail(field, "invalid tag %d", t)
	}
}

func (c *check) threadLevel(field string, lvl int32) {
	if lvl < ThreadSingle || lvl > ThreadMultiple {
		c.fail(field, "invalid thread level %d", lvl)
	}
}

func (c *check) op(field string, op Op) {
	if !op.Valid() || op == OpNull {
		c.fail(field, "invalid reduction operation %s", op)
	}
}

func (c *check) wallTime(field string, t float64) {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		c.fail(field, "must be a finite non-negative number, have %v", t)
	}
}

func (c *check) result() error {
	if c.err == nil {
		return nil
	}
	return c.err
}
