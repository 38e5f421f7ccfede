// Package planar turns a shape.Shape into a planar dcel.EdgeList: it runs
// a Bentley-Ottmann-style sweep over the shape's segments, splicing in a
// new event wherever two segments properly cross, and builds half-edges
// as the sweep passes each event top to bottom.
package planar

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
