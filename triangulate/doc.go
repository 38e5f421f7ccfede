// Package triangulate reduces each interior face of a dcel.EdgeList to
// triangles, in two passes: a sweep that partitions every face into
// y-monotone pieces by inserting diagonals, and a stack-based sweep that
// triangulates each resulting monotone piece.
package triangulate

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
