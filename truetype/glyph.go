// The simple/composite glyf decoding in this file follows the approach
// of the Freetype-Go project's truetype package (Copyright 2010 The
// Freetype-Go Authors), extended here to apply the full composite
// component transform.

package truetype

// Point is a glyph contour co-ordinate, plus whether it sits on the
// contour or is an off-curve Bézier control point.
type Point struct {
	X, Y int16
	// Flags' low bit means the point is on the contour. Other bits are
	// reserved for this package's own use.
	Flags uint8
}

const flagOnCurve = 1

// GlyphBuf holds one glyph's decoded contours. It can be reused across
// calls to Load to decode a series of glyphs without reallocating.
type GlyphBuf struct {
	// B is the glyph's bounding box, in FUnits.
	B Bounds
	// Point holds every Point of every contour, concatenated.
	Point []Point
	// End[i] is one past the index of the last point of the i'th
	// contour; End[-1] is implicitly zero. len(End) is the contour count.
	End []int
}

// NewGlyphBuf returns an empty, ready-to-use GlyphBuf.
func NewGlyphBuf() *GlyphBuf {
	return &GlyphBuf{
		Point: make([]Point, 0, 256),
		End:   make([]int, 0, 32),
	}
}

// simple glyph flag bits, documented at
// http://developer.apple.com/fonts/TTRefMan/RM06/Chap6glyf.html.
const (
	flagXShortVector = 1 << (iota + 1)
	flagYShortVector
	flagRepeat
	flagPositiveXShortVector
	flagPositiveYShortVector
)

const (
	flagThisXIsSame = flagPositiveXShortVector
	flagThisYIsSame = flagPositiveYShortVector
)

func (g *GlyphBuf) decodeFlags(d data, np0 int) data {
	for i := np0; i < len(g.Point); {
		c := d.u8()
		g.Point[i].Flags = c
		i++
		if c&flagRepeat != 0 {
			count := d.u8()
			for ; count > 0; count-- {
				g.Point[i].Flags = c
				i++
			}
		}
	}
	return d
}

func (g *GlyphBuf) decodeCoords(d data, np0 int) {
	var x int16
	for i := np0; i < len(g.Point); i++ {
		f := g.Point[i].Flags
		switch {
		case f&flagXShortVector != 0:
			dx := int16(d.u8())
			if f&flagPositiveXShortVector == 0 {
				x -= dx
			} else {
				x += dx
			}
		case f&flagThisXIsSame == 0:
			x += int16(d.u16())
		}
		g.Point[i].X = x
	}
	var y int16
	for i := np0; i < len(g.Point); i++ {
		f := g.Point[i].Flags
		switch {
		case f&flagYShortVector != 0:
			dy := int16(d.u8())
			if f&flagPositiveYShortVector == 0 {
				y -= dy
			} else {
				y += dy
			}
		case f&flagThisYIsSame == 0:
			y += int16(d.u16())
		}
		g.Point[i].Y = y
	}
}

// transform2x14 is a composite glyph component's affine transform, its
// four entries each a 2.14 fixed-point value: two integer sign
// bits followed by fourteen fractional bits, i.e. raw/16384.
type transform2x14 struct {
	xx, xy, yx, yy float64
}

func fixed2_14(raw int16) float64 {
	return float64(raw) / 16384
}

func (t transform2x14) apply(x, y int16) (int16, int16) {
	fx, fy := float64(x), float64(y)
	return int16(t.xx*fx + t.yx*fy), int16(t.xy*fx + t.yy*fy)
}

// Load decodes glyph i from f into g, overwriting any contours g
// previously held.
func (g *GlyphBuf) Load(f *Font, i Index) error {
	g.B = Bounds{}
	g.Point = g.Point[:0]
	g.End = g.End[:0]
	return g.load(f, i, 0)
}

// compound glyph flag bits.
const (
	flagArg1And2AreWords = 1 << iota
	flagArgsAreXYValues
	flagRoundXYToGrid
	flagWeHaveAScale
	flagReservedCompound
	flagMoreComponents
	flagWeHaveAnXAndYScale
	flagWeHaveATwoByTwo
	flagWeHaveInstructions
	flagUseMyMetrics
	flagOverlapCompound
)

// loadCompound decodes a composite glyph: a sequence of component
// references, each naming another glyph plus an offset and an optional
// 2.14 fixed-point transform, recursively decoded and concatenated.
// Endpoint indices of later components are shifted so contours from
// different components stay disjoint, since End records absolute point
// indices into the concatenated g.Point.
func (g *GlyphBuf) loadCompound(f *Font, d data, recursion int) error {
	for {
		flags := d.u16()
		component := d.u16()
		var dx, dy int16
		if flags&flagArg1And2AreWords != 0 {
			dx = int16(d.u16())
			dy = int16(d.u16())
		} else {
			dx = int16(int8(d.u8()))
			dy = int16(int8(d.u8()))
		}
		if flags&flagArgsAreXYValues == 0 {
			return errf(Glyph, "composite glyph component args are point indices, not offsets")
		}

		t := transform2x14{xx: 1, yy: 1}
		switch {
		case flags&flagWeHaveATwoByTwo != 0:
			t.xx = fixed2_14(int16(d.u16()))
			t.xy = fixed2_14(int16(d.u16()))
			t.yx = fixed2_14(int16(d.u16()))
			t.yy = fixed2_14(int16(d.u16()))
		case flags&flagWeHaveAnXAndYScale != 0:
			t.xx = fixed2_14(int16(d.u16()))
			t.yy = fixed2_14(int16(d.u16()))
		case flags&flagWeHaveAScale != 0:
			s := fixed2_14(int16(d.u16()))
			t.xx, t.yy = s, s
		}

		b0, i0 := g.B, len(g.Point)
		if err := g.load(f, Index(component), recursion+1); err != nil {
			return err
		}
		for i := i0; i < len(g.Point); i++ {
			px, py := t.apply(g.Point[i].X, g.Point[i].Y)
			g.Point[i].X = px + dx
			g.Point[i].Y = py + dy
		}
		if flags&flagUseMyMetrics == 0 {
			g.B = b0
		}
		if flags&flagMoreComponents == 0 {
			break
		}
	}
	return nil
}

// load appends glyph i's contours to g, recursing through loadCompound
// for composite glyphs up to a shallow depth limit.
func (g *GlyphBuf) load(f *Font, i Index, recursion int) error {
	if recursion >= 8 {
		return errf(Glyph, "composite glyph recursion too deep")
	}
	if int(i) >= f.nGlyph {
		return errf(NotFound, "glyph index %d >= nGlyph %d", i, f.nGlyph)
	}

	var g0, g1 uint32
	if f.locaOffsetFormat == locaOffsetFormatShort {
		d := data(f.loca[2*int(i):])
		g0 = 2 * uint32(d.u16())
		g1 = 2 * uint32(d.u16())
	} else {
		d := data(f.loca[4*int(i):])
		g0 = d.u32()
		g1 = d.u32()
	}
	if g0 == g1 {
		// An empty glyph, e.g. the space character.
		return nil
	}
	if g1 > uint32(len(f.glyf)) || g0 > g1 {
		return errf(Glyph, "glyph %d: bad loca range [%d, %d)", i, g0, g1)
	}
	d := data(f.glyf[g0:g1])
	ne := int(int16(d.u16()))
	g.B.XMin = int16(d.u16())
	g.B.YMin = int16(d.u16())
	g.B.XMax = int16(d.u16())
	g.B.YMax = int16(d.u16())

	if ne == -1 {
		return g.loadCompound(f, d, recursion)
	}
	if ne < 0 {
		return errf(Glyph, "glyph %d: reserved negative contour count %d", i, ne)
	}

	ne0, np0 := len(g.End), len(g.Point)
	ne += ne0
	if ne <= cap(g.End) {
		g.End = g.End[:ne]
	} else {
		g.End = make([]int, ne, ne*2)
	}
	for i := ne0; i < ne; i++ {
		g.End[i] = 1 + np0 + int(d.u16())
	}

	instrLen := int(d.u16())
	d.skip(instrLen)

	np := g.End[ne-1]
	if np <= cap(g.Point) {
		g.Point = g.Point[:np]
	} else {
		g.Point = make([]Point, np, np*2)
	}
	d = g.decodeFlags(d, np0)
	g.decodeCoords(d, np0)
	return nil
}
