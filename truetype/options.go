package truetype

// Options are optional arguments to GlyphShape. A nil *Options, or a
// zero value for any one field, uses that field's documented default.
type Options struct {
	// Interpolation is the number of line segments each quadratic Bézier
	// curve segment is flattened into. The default, if Interpolation is
	// zero or negative, is 3.
	Interpolation int

	// Debug, if true, traces each decoded contour at debug level.
	Debug bool
}

func (o *Options) interpolation() int {
	if o != nil && o.Interpolation > 0 {
		return o.Interpolation
	}
	return 3
}

func (o *Options) debug() bool {
	return o != nil && o.Debug
}
