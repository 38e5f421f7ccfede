// Package faces turns a planar dcel.EdgeList's half-edges into faces: it
// discovers the boundary cycles the planariser left implicit in the
// Succ/Pred links, classifies each as an outer (filled) or inner (hole)
// boundary, nests them, and allocates one Face per connected region plus
// the single unbounded exterior Face.
package faces

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
