package glyphtri

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/glyphtri/glyphtri/dcel"
	"github.com/glyphtri/glyphtri/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() *shape.Shape {
	s := shape.New()
	s.AddVec(0, 0)
	s.AddVec(1, 0)
	s.AddVec(1, 1)
	s.AddVec(0, 1)
	s.AddSeg(0, 1)
	s.AddSeg(1, 2)
	s.AddSeg(2, 3)
	s.AddSeg(3, 0)
	return s
}

func TestMakePlanarBuildsOneInteriorAndOneExteriorFace(t *testing.T) {
	el := MakePlanar(square())

	var interior, exterior int
	for _, f := range el.Faces {
		switch f.Interior {
		case dcel.Interior:
			interior++
		case dcel.Exterior:
			exterior++
			assert.Nil(t, f.Outer, "the exterior face has no outer component")
		}
	}
	assert.Equal(t, 1, interior)
	assert.Equal(t, 1, exterior)
}

func TestTriangulateSquareYieldsTwoTriangles(t *testing.T) {
	el := Triangulate(square())

	var triangles int
	for _, f := range el.Faces {
		if f.Interior == dcel.Interior {
			require.NotNil(t, f.Outer)
			assert.Equal(t, 3, dcel.CycleLen(f.Outer), "every interior face is a triangle")
			triangles++
		}
	}
	assert.Equal(t, 2, triangles)
}

func TestShapeRoundTripsThroughTextFormat(t *testing.T) {
	s := square()
	var buf bytes.Buffer
	require.NoError(t, shape.Save(&buf, s))

	got, err := shape.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Vec, got.Vec)
	assert.Equal(t, s.Seg, got.Seg)
}

func ge16(v uint16) []byte { b := make([]byte, 2); binary.BigEndian.PutUint16(b, v); return b }
func ge32(v uint32) []byte { b := make([]byte, 4); binary.BigEndian.PutUint32(b, v); return b }

// buildRingGlyphFont assembles a minimal, valid sfnt container with a
// real two-contour glyph - a 100x100 outer square with a centred 40x40
// square hole, the same ring shape an "O" outline reduces to - mapped to
// 'O'. Values are written with the raw sfnt/glyf byte layout directly,
// independent of the truetype package's own encoder, so this test
// stands on its own as an end-to-end check of the whole pipeline.
func buildRingGlyphFont(t *testing.T) []byte {
	t.Helper()
	const (
		headMagic           = 0x5f0f3cf5
		sfntVersionTrueType = 0x00010000
		cmapFormat4         = 4
		cmapPlatform3       = 3
		cmapEncodingBMP     = 1
		flagOnCurve         = 1
		flagXShortVector    = 1 << 1
		flagYShortVector    = 1 << 2
		flagPositiveX       = 1 << 4
		flagPositiveY       = 1 << 5
		flagThisXIsSame     = flagPositiveX
		flagThisYIsSame     = flagPositiveY
	)

	head := append([]byte{}, ge32(0)...)
	head = append(head, ge32(0)...)
	head = append(head, ge32(0)...)
	head = append(head, ge32(headMagic)...)
	head = append(head, ge16(0)...)
	head = append(head, ge16(1000)...) // unitsPerEm
	head = append(head, make([]byte, 16)...)
	head = append(head, ge16(0)...)
	head = append(head, ge16(0)...)
	head = append(head, ge16(100)...)
	head = append(head, ge16(100)...)
	head = append(head, make([]byte, 6)...)
	head = append(head, ge16(0)...) // indexToLocFormat: short
	head = append(head, ge16(0)...)
	require.Len(t, head, 54)

	hhea := make([]byte, 36)
	binary.BigEndian.PutUint16(hhea[34:], 1)

	maxp := make([]byte, 32)
	binary.BigEndian.PutUint16(maxp[4:], 2) // 2 glyphs: .notdef and the ring

	hmtx := append(ge16(100), ge16(0)...)
	hmtx = append(hmtx, ge16(0)...) // glyph 1's lsb, reusing glyph 0's advance

	var sub []byte
	sub = append(sub, ge16(cmapFormat4)...)
	sub = append(sub, ge16(0)...) // length, fixed below
	sub = append(sub, ge16(0)...)
	sub = append(sub, ge16(4)...)
	sub = append(sub, make([]byte, 6)...)
	sub = append(sub, ge16(79)...)
	sub = append(sub, ge16(0xffff)...)
	sub = append(sub, ge16(0)...)
	sub = append(sub, ge16(79)...)
	sub = append(sub, ge16(0xffff)...)
	sub = append(sub, ge16(uint16(1<<16+1-79))...) // idDelta: 'O' (79) -> glyph 1
	sub = append(sub, ge16(1)...)
	sub = append(sub, ge16(0)...)
	sub = append(sub, ge16(0)...)
	binary.BigEndian.PutUint16(sub[2:], uint16(len(sub)))

	cmap := append([]byte{}, ge16(0)...)
	cmap = append(cmap, ge16(1)...)
	cmap = append(cmap, ge16(cmapPlatform3)...)
	cmap = append(cmap, ge16(cmapEncodingBMP)...)
	cmap = append(cmap, ge32(uint32(len(cmap)+4))...)
	cmap = append(cmap, sub...)

	var flags, xs, ys []byte
	addPoint := func(flag byte, dx, dy int) {
		flags = append(flags, flag)
		if flag&flagXShortVector != 0 {
			xs = append(xs, byte(dx))
		} else if flag&flagThisXIsSame == 0 {
			xs = append(xs, ge16(uint16(int16(dx)))...)
		}
		if flag&flagYShortVector != 0 {
			ys = append(ys, byte(dy))
		} else if flag&flagThisYIsSame == 0 {
			ys = append(ys, ge16(uint16(int16(dy)))...)
		}
	}
	sx := byte(flagOnCurve | flagXShortVector | flagPositiveX)
	nx := byte(flagOnCurve | flagXShortVector)
	sy := byte(flagOnCurve | flagYShortVector | flagPositiveY)

	addPoint(flagOnCurve|flagThisXIsSame|flagThisYIsSame, 0, 0)  // outer (0,0)
	addPoint(sx|flagThisYIsSame, 100, 0)                         // outer (100,0)
	addPoint(flagOnCurve|flagThisXIsSame|sy, 0, 100)             // outer (100,100)
	addPoint(nx|flagThisYIsSame, 100, 0)                         // outer (0,100)
	addPoint(flagOnCurve, 30, -70)                                // inner (30,30): full delta
	addPoint(sx|flagThisYIsSame, 40, 0)                           // inner (70,30)
	addPoint(flagOnCurve|flagThisXIsSame|sy, 0, 40)               // inner (70,70)
	addPoint(nx|flagThisYIsSame, 40, 0)                           // inner (30,70)

	var glyf []byte
	glyf = append(glyf, ge16(2)...)
	glyf = append(glyf, ge16(0)...)
	glyf = append(glyf, ge16(0)...)
	glyf = append(glyf, ge16(100)...)
	glyf = append(glyf, ge16(100)...)
	glyf = append(glyf, ge16(3)...) // end of outer contour
	glyf = append(glyf, ge16(7)...) // end of inner contour
	glyf = append(glyf, ge16(0)...) // no instructions
	glyf = append(glyf, flags...)
	glyf = append(glyf, xs...)
	glyf = append(glyf, ys...)

	loca := append(ge16(0), ge16(0)...)
	loca = append(loca, ge16(uint16(len(glyf)/2))...)

	n := 7
	var out []byte
	out = append(out, ge32(sfntVersionTrueType)...)
	out = append(out, ge16(uint16(n))...)
	out = append(out, make([]byte, 6)...)

	tables := map[string][]byte{
		"head": head, "hhea": hhea, "maxp": maxp, "hmtx": hmtx,
		"cmap": cmap, "loca": loca, "glyf": glyf,
	}
	dataStart := 12 + 16*n
	var data []byte
	for name, tab := range tables {
		offset := dataStart + len(data)
		rec := []byte(name)
		rec = append(rec, ge32(0)...)
		rec = append(rec, ge32(uint32(offset))...)
		rec = append(rec, ge32(uint32(len(tab)))...)
		out = append(out, rec...)
		data = append(data, tab...)
	}
	out = append(out, data...)
	return out
}

// TestTriangulateGlyphRingEndToEnd loads a real font, decodes a glyph
// whose outline is a square ring (the same topology an "O" reduces to)
// through truetype's binary glyf parser, and triangulates it, checking
// that the hole survives all the way through: the triangulated area
// equals the outer square's area minus the hole's, normalised to the
// em-square.
func TestTriangulateGlyphRingEndToEnd(t *testing.T) {
	font, err := LoadFont(bytes.NewReader(buildRingGlyphFont(t)))
	require.NoError(t, err)

	el, err := TriangulateGlyph(font, 'O', nil)
	require.NoError(t, err)

	var interior int
	var total float64
	for _, f := range el.Faces {
		if f.Interior != dcel.Interior {
			continue
		}
		if f.Outer == nil || dcel.CycleLen(f.Outer) != 3 {
			continue
		}
		var pts []dcel.Vertex
		dcel.WalkCycle(f.Outer, func(e *dcel.HalfEdge) { pts = append(pts, *e.Origin) })
		a := pts[1].Pos.Sub(pts[0].Pos)
		b := pts[2].Pos.Sub(pts[0].Pos)
		total += math.Abs(a.X*b.Y-a.Y*b.X) / 2
		interior++
	}

	assert.NotZero(t, interior, "the ring triangulates into at least one triangle")
	want := (100.0*100.0 - 40.0*40.0) / (1000.0 * 1000.0)
	assert.InDelta(t, want, total, 1e-9, "triangulated area excludes the hole")
}
