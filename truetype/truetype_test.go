package truetype

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/glyphtri/glyphtri/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShape() *shape.Shape { return shape.New() }

func be16(v uint16) []byte { b := make([]byte, 2); binary.BigEndian.PutUint16(b, v); return b }
func be32(v uint32) []byte { b := make([]byte, 4); binary.BigEndian.PutUint32(b, v); return b }

// buildMinimalFont assembles a single-glyph (empty .notdef) sfnt
// container exercising head/hhea/maxp/hmtx/cmap/loca/glyf end to end,
// without needing any real contour data.
func buildMinimalFont(t *testing.T) []byte {
	t.Helper()

	head := append([]byte{}, be32(0)...)        // version
	head = append(head, be32(0)...)              // fontRevision
	head = append(head, be32(0)...)              // checkSumAdjustment
	head = append(head, be32(headMagic)...)      // magicNumber
	head = append(head, be16(0)...)               // flags
	head = append(head, be16(1000)...)            // unitsPerEm
	head = append(head, make([]byte, 16)...)      // created, modified
	head = append(head, be16(0)...)               // xMin
	head = append(head, be16(0)...)               // yMin
	head = append(head, be16(1000)...)            // xMax
	head = append(head, be16(1000)...)            // yMax
	head = append(head, make([]byte, 6)...)       // macStyle, lowestRecPPEM, fontDirectionHint
	head = append(head, be16(0)...)               // indexToLocFormat: short
	head = append(head, be16(0)...)               // glyphDataFormat
	require.Len(t, head, 54)

	hhea := make([]byte, 36)
	binary.BigEndian.PutUint16(hhea[34:], 1) // numOfHMetrics

	maxp := make([]byte, 32)
	binary.BigEndian.PutUint16(maxp[4:], 1) // numGlyphs

	hmtx := append(be16(500), be16(0)...) // advanceWidth, lsb for glyph 0

	// cmap: one format-4 subtable, platform 3 / encoding 1, mapping 'A'
	// (65) to glyph 0 via idDelta, plus the mandatory terminator segment.
	var sub []byte
	sub = append(sub, be16(cmapFormat4)...)
	sub = append(sub, be16(0)...) // length placeholder, fixed below
	sub = append(sub, be16(0)...) // language
	sub = append(sub, be16(4)...) // segCountX2 (2 segments)
	sub = append(sub, make([]byte, 6)...) // searchRange, entrySelector, rangeShift
	sub = append(sub, be16(65)...)        // endCode[0]
	sub = append(sub, be16(0xffff)...)    // endCode[1]
	sub = append(sub, be16(0)...)         // reservedPad
	sub = append(sub, be16(65)...)        // startCode[0]
	sub = append(sub, be16(0xffff)...)    // startCode[1]
	sub = append(sub, be16(uint16(1<<16-65))...) // idDelta[0]: 65 + delta = 0
	sub = append(sub, be16(1)...)           // idDelta[1]: 0xffff + 1 = 0
	sub = append(sub, be16(0)...)           // idRangeOffset[0]
	sub = append(sub, be16(0)...)           // idRangeOffset[1]
	binary.BigEndian.PutUint16(sub[2:], uint16(len(sub)))

	cmap := append([]byte{}, be16(0)...) // version
	cmap = append(cmap, be16(1)...)      // numTables
	cmap = append(cmap, be16(cmapPlatform3)...)
	cmap = append(cmap, be16(cmapEncodingBMP)...)
	cmap = append(cmap, be32(uint32(len(cmap)+4))...) // offset to subtable, after this record
	cmap = append(cmap, sub...)

	loca := append(be16(0), be16(0)...) // glyph 0 starts and ends at 0: empty
	glyf := []byte{}

	tables := map[string][]byte{
		"head": head, "hhea": hhea, "maxp": maxp, "hmtx": hmtx,
		"cmap": cmap, "loca": loca, "glyf": glyf,
	}
	return assembleSfnt(tables)
}

// assembleSfnt packs tables into a minimal, directory-ordered sfnt
// container. Table order does not matter to Parse, so the map's
// (arbitrary) iteration order is fine.
func assembleSfnt(tables map[string][]byte) []byte {
	n := len(tables)
	var out []byte
	out = append(out, be32(sfntVersionTrueType)...)
	out = append(out, be16(uint16(n))...)
	out = append(out, make([]byte, 6)...) // searchRange, entrySelector, rangeShift

	dataStart := 12 + 16*n
	data := make([]byte, 0, 256)
	for name, tab := range tables {
		offset := dataStart + len(data)
		rec := []byte(name)
		rec = append(rec, be32(0)...) // checksum, unchecked
		rec = append(rec, be32(uint32(offset))...)
		rec = append(rec, be32(uint32(len(tab)))...)
		out = append(out, rec...)
		data = append(data, tab...)
	}
	out = append(out, data...)
	return out
}

// buildSquareGlyphFont assembles a two-glyph sfnt container: an empty
// .notdef at index 0, and a real simple glyph at index 1 mapped to 'O',
// whose outline is a 100x100 outer square with a 40x40 square hole cut
// out of its middle. The coordinate deltas are deliberately encoded with
// a mix of the short-vector, same-as-previous, and full 16-bit delta
// flag combinations, so decoding it exercises every branch of
// decodeFlags/decodeCoords rather than just the empty-glyph path.
func buildSquareGlyphFont(t *testing.T) []byte {
	t.Helper()

	head := append([]byte{}, be32(0)...)     // version
	head = append(head, be32(0)...)          // fontRevision
	head = append(head, be32(0)...)          // checkSumAdjustment
	head = append(head, be32(headMagic)...)  // magicNumber
	head = append(head, be16(0)...)          // flags
	head = append(head, be16(1000)...)       // unitsPerEm
	head = append(head, make([]byte, 16)...) // created, modified
	head = append(head, be16(0)...)          // xMin
	head = append(head, be16(0)...)          // yMin
	head = append(head, be16(100)...)        // xMax
	head = append(head, be16(100)...)        // yMax
	head = append(head, make([]byte, 6)...)  // macStyle, lowestRecPPEM, fontDirectionHint
	head = append(head, be16(0)...)          // indexToLocFormat: short
	head = append(head, be16(0)...)          // glyphDataFormat
	require.Len(t, head, 54)

	hhea := make([]byte, 36)
	binary.BigEndian.PutUint16(hhea[34:], 1) // numOfHMetrics

	maxp := make([]byte, 32)
	binary.BigEndian.PutUint16(maxp[4:], 2) // numGlyphs

	hmtx := append(be16(100), be16(0)...) // advanceWidth, lsb for glyph 0
	hmtx = append(hmtx, be16(0)...)       // lsb for glyph 1, reusing glyph 0's advance width

	// cmap: map 'O' (79) to glyph 1 via idDelta, plus the terminator
	// segment required by format 4.
	var sub []byte
	sub = append(sub, be16(cmapFormat4)...)
	sub = append(sub, be16(0)...) // length placeholder, fixed below
	sub = append(sub, be16(0)...) // language
	sub = append(sub, be16(4)...) // segCountX2 (2 segments)
	sub = append(sub, make([]byte, 6)...)
	sub = append(sub, be16(79)...)     // endCode[0]: 'O'
	sub = append(sub, be16(0xffff)...) // endCode[1]
	sub = append(sub, be16(0)...)      // reservedPad
	sub = append(sub, be16(79)...)                    // startCode[0]
	sub = append(sub, be16(0xffff)...)                // startCode[1]
	sub = append(sub, be16(uint16(1<<16+1-79))...)    // idDelta[0]: 79 + delta = 1
	sub = append(sub, be16(1)...)                     // idDelta[1]: 0xffff + 1 = 0
	sub = append(sub, be16(0)...)                     // idRangeOffset[0]
	sub = append(sub, be16(0)...)                     // idRangeOffset[1]
	binary.BigEndian.PutUint16(sub[2:], uint16(len(sub)))

	cmap := append([]byte{}, be16(0)...) // version
	cmap = append(cmap, be16(1)...)      // numTables
	cmap = append(cmap, be16(cmapPlatform3)...)
	cmap = append(cmap, be16(cmapEncodingBMP)...)
	cmap = append(cmap, be32(uint32(len(cmap)+4))...)
	cmap = append(cmap, sub...)

	// glyph 1: two contours, an outer CCW square (0,0)-(100,0)-(100,100)-
	// (0,100) and an inner CCW square (30,30)-(70,30)-(70,70)-(30,70)
	// that faces.ConnectComponents resolves into a hole of the outer
	// one. Flags/coordinates are hand-encoded per the simple glyph
	// format: flag 49 is on-curve + both-same (zero delta from the
	// current pen position), flag 51/53/35 add a short vector on X or Y
	// respectively, and flag 1 on the first hole point forces a full
	// 16-bit delta on both axes so that path gets exercised too.
	var flags, xs, ys []byte
	addPoint := func(flag byte, dx, dy int) {
		flags = append(flags, flag)
		switch {
		case flag&flagXShortVector != 0:
			xs = append(xs, byte(dx))
		case flag&flagThisXIsSame == 0:
			xs = append(xs, be16(uint16(int16(dx)))...)
		}
		switch {
		case flag&flagYShortVector != 0:
			ys = append(ys, byte(dy))
		case flag&flagThisYIsSame == 0:
			ys = append(ys, be16(uint16(int16(dy)))...)
		}
	}
	shortPos := byte(flagOnCurve | flagXShortVector | flagPositiveXShortVector)
	shortNeg := byte(flagOnCurve | flagXShortVector)
	shortPosY := byte(flagOnCurve | flagYShortVector | flagPositiveYShortVector)

	// outer square, starting and ending back at the pen's zero position
	addPoint(flagOnCurve|flagThisXIsSame|flagThisYIsSame, 0, 0)         // (0,0)
	addPoint(shortPos|flagThisYIsSame, 100, 0)                          // (100,0)
	addPoint(flagOnCurve|flagThisXIsSame|shortPosY, 0, 100)             // (100,100)
	addPoint(shortNeg|flagThisYIsSame, 100, 0)                          // (0,100), dx=-100
	// inner square, pen currently at (0,100); first point forces the
	// full 16-bit delta path on both axes
	addPoint(flagOnCurve, 30, -70)                                      // (30,30)
	addPoint(shortPos|flagThisYIsSame, 40, 0)                           // (70,30)
	addPoint(flagOnCurve|flagThisXIsSame|shortPosY, 0, 40)              // (70,70)
	addPoint(shortNeg|flagThisYIsSame, 40, 0)                           // (30,70)

	var glyf []byte
	glyf = append(glyf, be16(2)...)   // numberOfContours
	glyf = append(glyf, be16(0)...)   // xMin
	glyf = append(glyf, be16(0)...)   // yMin
	glyf = append(glyf, be16(100)...) // xMax
	glyf = append(glyf, be16(100)...) // yMax
	glyf = append(glyf, be16(3)...)   // endPtsOfContours[0]: outer square, 4 points
	glyf = append(glyf, be16(7)...)   // endPtsOfContours[1]: inner square, 4 points
	glyf = append(glyf, be16(0)...)   // instructionLength
	glyf = append(glyf, flags...)
	glyf = append(glyf, xs...)
	glyf = append(glyf, ys...)

	loca := append(be16(0), be16(0)...)                  // glyph 0: empty
	loca = append(loca, be16(uint16(len(glyf)/2))...)    // glyph 1 end offset, in 16-bit units

	tables := map[string][]byte{
		"head": head, "hhea": hhea, "maxp": maxp, "hmtx": hmtx,
		"cmap": cmap, "loca": loca, "glyf": glyf,
	}
	return assembleSfnt(tables)
}

func TestLoadAndDecodeRealGlyphOutline(t *testing.T) {
	font, err := Parse(buildSquareGlyphFont(t))
	require.NoError(t, err)
	require.Equal(t, Index(1), font.Index('O'))

	gb := NewGlyphBuf()
	require.NoError(t, gb.Load(font, font.Index('O')))

	require.Equal(t, []int{4, 8}, gb.End, "two four-point contours")
	outer := []Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	for i, want := range outer {
		assert.Equal(t, want.X, gb.Point[i].X, "outer point %d", i)
		assert.Equal(t, want.Y, gb.Point[i].Y, "outer point %d", i)
		assert.NotZero(t, gb.Point[i].Flags&flagOnCurve)
	}
	inner := []Point{{X: 30, Y: 30}, {X: 70, Y: 30}, {X: 70, Y: 70}, {X: 30, Y: 70}}
	for i, want := range inner {
		got := gb.Point[4+i]
		assert.Equal(t, want.X, got.X, "inner point %d", i)
		assert.Equal(t, want.Y, got.Y, "inner point %d", i)
	}

	s, err := font.GlyphShape('O', nil)
	require.NoError(t, err)
	assert.Equal(t, 8, s.NVec(), "every point is on-curve, so no flattening adds vertices")
	assert.Equal(t, 8, s.NSeg())
}

func TestParseRejectsShortData(t *testing.T) {
	_, err := Parse([]byte{1, 2, 3})
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, Io, e.Kind)
}

func TestParseRejectsBadVersion(t *testing.T) {
	data := make([]byte, 16)
	binary.BigEndian.PutUint32(data[0:], 0xdeadbeef)
	_, err := Parse(data)
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, Container, e.Kind)
}

func TestParseMinimalFont(t *testing.T) {
	ttf := buildMinimalFont(t)
	font, err := Parse(ttf)
	require.NoError(t, err)

	assert.Equal(t, 1000, font.Upem())
	assert.Equal(t, Bounds{0, 0, 1000, 1000}, font.Bounds())
	assert.Equal(t, Index(0), font.Index('A'))
	assert.Equal(t, Index(0), font.Index('Z'), "unmapped code points fall back to glyph 0")
	assert.Equal(t, HMetric{AdvanceWidth: 500}, font.HMetric(0))
	assert.InDelta(t, 0.5, font.CharWidth('A'), 1e-9)
}

func TestKerningLookupAndAbsence(t *testing.T) {
	f := &Font{}
	assert.EqualValues(t, 0, f.Kerning(1, 2), "no kern table means no kerning")

	f.nKern = 1
	pair := uint32(1)<<16 | 2
	kern := append(be32(pair), be16(uint16(1<<16-50))...)
	f.kern = append(make([]byte, 18), kern...)
	assert.EqualValues(t, -50, f.Kerning(1, 2))
	assert.EqualValues(t, 0, f.Kerning(3, 4), "an unlisted pair kerns by zero")
}

func TestFlattenQuadEndsAtP2(t *testing.T) {
	p0 := point2{0, 0}
	p1 := point2{50, 100}
	p2 := point2{100, 0}
	pts := flattenQuad(p0, p1, p2, 5)
	require.Len(t, pts, 5)
	assert.InDelta(t, p2.x, pts[len(pts)-1].x, 1e-9)
	assert.InDelta(t, p2.y, pts[len(pts)-1].y, 1e-9)
}

func TestBuildContourTriangleIsAllLines(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0, Flags: flagOnCurve},
		{X: 1000, Y: 0, Flags: flagOnCurve},
		{X: 500, Y: 1000, Flags: flagOnCurve},
	}
	cb := &contourBuilder{s: newTestShape(), lsb: 0, upem: 1000, steps: 4}
	buildContour(cb, pts)

	assert.Equal(t, 3, cb.s.NVec())
	assert.Equal(t, 3, cb.s.NSeg(), "three on-curve points need no flattening, only three closing lines")
}

func TestGlyphShapeNotFoundForUnmappedRune(t *testing.T) {
	f := &Font{unitsPerEm: 1000}
	_, err := f.GlyphShape('A', nil)
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, NotFound, e.Kind)
}

func TestBuildContourSingleQuadClosesToStart(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0, Flags: flagOnCurve},
		{X: 500, Y: 500}, // off-curve control point
	}
	cb := &contourBuilder{s: newTestShape(), lsb: 0, upem: 1000, steps: 4}
	buildContour(cb, pts)

	assert.Equal(t, 4, cb.s.NVec(), "the final flattened point reuses the start vertex")
	assert.Equal(t, 4, cb.s.NSeg())
	last := cb.s.Seg[cb.s.NSeg()-1]
	assert.Equal(t, 0, last[1], "the closing segment lands back on the start vertex")
}
