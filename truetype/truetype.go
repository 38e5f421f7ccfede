// The sfnt container and table parsing in this file follow the
// approach of the Freetype-Go project's truetype package (Copyright
// 2010 The Freetype-Go Authors), adapted here to decode outlines into
// a shape.Shape rather than to rasterize them.

// Package truetype decodes OpenType/TrueType outlines. It parses the sfnt
// container, resolves code points to glyph indices through the cmap, and
// interpolates a glyph's simple or composite quadratic Bézier contours
// into the piecewise-linear polylines a shape.Shape holds. It does not
// render, hint, or shape text; those stay out of scope.
//
// All numbers read from the font (bounds, point co-ordinates, metrics)
// are measured in FUnits. To convert FUnits to some other unit, scale by
// 1/UnitsPerEm and then by whatever target unit is wanted; GlyphShape
// does this itself, producing shape co-ordinates normalised to the
// em-square.
package truetype

import (
	"io"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// An Index is a Font's index of a glyph.
type Index uint16

// Bounds holds an inclusive FUnit co-ordinate range.
type Bounds struct {
	XMin, YMin, XMax, YMax int16
}

// HMetric holds the horizontal metrics of a single glyph.
type HMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// Head flag bits: bit 0 means glyph y co-ordinates are already
// relative to a zero baseline, bit 1 means the left side bearing equals
// xMin and need not be re-derived.
const (
	FlagBaselineAtZero Flags = 1 << iota
	FlagLeftSideBearingAtZero
)

// Flags mirrors head.flags, the subset of bits this package retains.
type Flags uint16

// data interprets a byte slice as a stream of big-endian integer values.
type data []byte

func (d *data) u32() uint32 {
	x := uint32((*d)[0])<<24 | uint32((*d)[1])<<16 | uint32((*d)[2])<<8 | uint32((*d)[3])
	*d = (*d)[4:]
	return x
}

func (d *data) u16() uint16 {
	x := uint16((*d)[0])<<8 | uint16((*d)[1])
	*d = (*d)[2:]
	return x
}

func (d *data) u8() uint8 {
	x := (*d)[0]
	*d = (*d)[1:]
	return x
}

func (d *data) skip(n int) {
	*d = (*d)[n:]
}

// readTable returns the slice of ttf described by a table directory
// entry's offset and length, both read from offsetLength.
func readTable(ttf []byte, offsetLength []byte) ([]byte, error) {
	d := data(offsetLength)
	offset := int(d.u32())
	length := int(d.u32())
	end := offset + length
	if offset < 0 || length < 0 || end < 0 || end > len(ttf) {
		return nil, errf(Container, "table offset/length out of range: %d+%d", offset, length)
	}
	return ttf[offset:end], nil
}

const (
	locaOffsetFormatShort = iota
	locaOffsetFormatLong
)

// cm is one parsed cmap format-4 segment.
type cm struct {
	start, end, delta, offset uint16
}

// Font is a parsed sfnt font. Its zero value is not usable; construct one
// with Parse.
type Font struct {
	cmap, glyf, head, hhea, hmtx, kern, loca, maxp []byte
	cmapIndexes                                    []byte

	cm                      []cm
	locaOffsetFormat        int
	nGlyph, nHMetric, nKern int
	unitsPerEm              int
	bounds                  Bounds
	flags                   Flags
}

// Upem returns the number of FUnits in the font's em-square.
func (f *Font) Upem() int { return f.unitsPerEm }

// Bounds returns the union of the font's glyphs' bounding boxes, as
// recorded in the head table.
func (f *Font) Bounds() Bounds { return f.bounds }

// Flags returns the head table's retained flag bits.
func (f *Font) Flags() Flags { return f.flags }

// NGlyph returns the number of glyphs in the font.
func (f *Font) NGlyph() int { return f.nGlyph }

const (
	sfntVersionTrueType = 0x00010000
	sfntVersionCFF      = 0x4f54544f // "OTTO"
	headMagic           = 0x5f0f3cf5

	cmapFormat4      = 4
	cmapPlatform3    = 3 // Microsoft
	cmapEncodingBMP  = 1 // Unicode BMP, UCS-2
	languageIndependent = 0
)

func (f *Font) parseCmap() error {
	if len(f.cmap) < 4 {
		return errf(Container, "cmap too short")
	}
	d := data(f.cmap[2:])
	nsubtab := int(d.u16())
	if len(f.cmap) < 8*nsubtab+4 {
		return errf(Container, "cmap subtable directory too short")
	}
	offset, found := 0, false
	for i := 0; i < nsubtab; i++ {
		platform, psid, o := d.u16(), d.u16(), d.u32()
		if platform == cmapPlatform3 && psid == cmapEncodingBMP {
			offset, found = int(o), true
			break
		}
		T().Debugf("truetype: skipping cmap subtable platform=%d encoding=%d", platform, psid)
	}
	if !found {
		return errf(Container, "no platform 3 / encoding 1 cmap subtable")
	}
	if offset <= 0 || offset > len(f.cmap) {
		return errf(Container, "bad cmap subtable offset: %d", offset)
	}

	d = data(f.cmap[offset:])
	format := d.u16()
	if format != cmapFormat4 {
		T().Warnf("truetype: unsupported cmap format %d", format)
		return errf(Container, "unsupported cmap format: %d", format)
	}
	d.skip(2)
	if language := d.u16(); language != languageIndependent {
		return errf(Container, "unsupported cmap language: %d", language)
	}
	segCountX2 := int(d.u16())
	if segCountX2%2 == 1 {
		return errf(Container, "odd segCountX2: %d", segCountX2)
	}
	segCount := segCountX2 / 2
	d.skip(6)
	f.cm = make([]cm, segCount)
	for i := 0; i < segCount; i++ {
		f.cm[i].end = d.u16()
	}
	d.skip(2)
	for i := 0; i < segCount; i++ {
		f.cm[i].start = d.u16()
	}
	for i := 0; i < segCount; i++ {
		f.cm[i].delta = d.u16()
	}
	for i := 0; i < segCount; i++ {
		f.cm[i].offset = d.u16()
	}
	f.cmapIndexes = []byte(d)
	return nil
}

func (f *Font) parseHead() error {
	if len(f.head) != 54 {
		return errf(Container, "bad head length: %d", len(f.head))
	}
	d := data(f.head[12:])
	if magic := d.u32(); magic != headMagic {
		return errf(Container, "bad head magic: 0x%08x", magic)
	}
	f.flags = Flags(d.u16())
	f.unitsPerEm = int(d.u16())
	d.skip(16) // created, modified
	f.bounds.XMin = int16(d.u16())
	f.bounds.YMin = int16(d.u16())
	f.bounds.XMax = int16(d.u16())
	f.bounds.YMax = int16(d.u16())
	d.skip(6) // macStyle, lowestRecPPEM, fontDirectionHint
	switch i := d.u16(); i {
	case 0:
		f.locaOffsetFormat = locaOffsetFormatShort
	case 1:
		f.locaOffsetFormat = locaOffsetFormatLong
	default:
		return errf(Container, "bad indexToLocFormat: %d", i)
	}
	return nil
}

func (f *Font) parseHhea() error {
	if len(f.hhea) != 36 {
		return errf(Container, "bad hhea length: %d", len(f.hhea))
	}
	d := data(f.hhea[34:])
	f.nHMetric = int(d.u16())
	if 4*f.nHMetric+2*(f.nGlyph-f.nHMetric) != len(f.hmtx) {
		return errf(Container, "bad hmtx length: %d", len(f.hmtx))
	}
	return nil
}

// parseKern parses the older, UInt16-headed kern table format that
// Windows (and this decoder) use, per Apple's documented caveat that
// fonts targeting both platforms ship the old format. Layout/shaping
// itself is out of scope, but a raw pair-kerning lookup is not shaping.
func (f *Font) parseKern() error {
	if len(f.kern) == 0 {
		if f.nKern != 0 {
			return errf(Container, "bad kern table length")
		}
		return nil
	}
	if len(f.kern) < 18 {
		return errf(Container, "kern data too short")
	}
	d := data(f.kern[0:])
	if version := d.u16(); version != 0 {
		T().Warnf("truetype: unsupported kern version %d, skipping", version)
		return nil
	}
	if n := d.u16(); n != 1 {
		T().Warnf("truetype: unsupported kern nTables %d, skipping", n)
		return nil
	}
	d.skip(2)
	length := int(d.u16())
	if coverage := d.u16(); coverage != 0x0001 {
		T().Warnf("truetype: unsupported kern coverage 0x%04x, skipping", coverage)
		return nil
	}
	f.nKern = int(d.u16())
	if 6*f.nKern != length-14 {
		return errf(Container, "bad kern table length")
	}
	return nil
}

func (f *Font) parseMaxp() error {
	if len(f.maxp) != 32 {
		return errf(Container, "bad maxp length: %d", len(f.maxp))
	}
	d := data(f.maxp[4:])
	f.nGlyph = int(d.u16())
	return nil
}

// Index returns the glyph index a cmap maps r to, or 0 (the notdef
// glyph) if r is unmapped.
func (f *Font) Index(r rune) Index {
	c := uint16(r)
	n := len(f.cm)
	for i := 0; i < n; i++ {
		if f.cm[i].start <= c && c <= f.cm[i].end {
			if f.cm[i].offset == 0 {
				return Index(c + f.cm[i].delta)
			}
			offset := int(f.cm[i].offset) + 2*(i-n+int(c-f.cm[i].start))
			d := data(f.cmapIndexes[offset:])
			return Index(d.u16())
		}
	}
	return Index(0)
}

// HMetric returns the horizontal metrics of glyph i.
func (f *Font) HMetric(i Index) HMetric {
	j := int(i)
	if j >= f.nGlyph {
		return HMetric{}
	}
	if j >= f.nHMetric {
		var hm HMetric
		p := 4 * (f.nHMetric - 1)
		d := data(f.hmtx[p:])
		hm.AdvanceWidth = d.u16()
		p += 2*(j-f.nHMetric) + 4
		d = data(f.hmtx[p:])
		hm.LeftSideBearing = int16(d.u16())
		return hm
	}
	d := data(f.hmtx[4*j:])
	return HMetric{d.u16(), int16(d.u16())}
}

// Kerning returns the horizontal kerning adjustment, in FUnits, for the
// ordered glyph pair (i0, i1), or 0 if the font has no kern table or the
// pair is not listed.
func (f *Font) Kerning(i0, i1 Index) int16 {
	if f.nKern == 0 {
		return 0
	}
	g := uint32(i0)<<16 | uint32(i1)
	lo, hi := 0, f.nKern
	for lo < hi {
		mid := (lo + hi) / 2
		d := data(f.kern[18+6*mid:])
		ig := d.u32()
		switch {
		case ig < g:
			lo = mid + 1
		case ig > g:
			hi = mid
		default:
			return int16(d.u16())
		}
	}
	return 0
}

// CharWidth returns the advance width of the glyph mapped from r, in
// normalised em units.
func (f *Font) CharWidth(r rune) float32 {
	hm := f.HMetric(f.Index(r))
	if f.unitsPerEm == 0 {
		return 0
	}
	return float32(hm.AdvanceWidth) / float32(f.unitsPerEm)
}

// Load reads stream fully and parses it as an sfnt container. It wraps
// a short or failing read in an Io Error and otherwise defers to Parse.
func Load(stream io.Reader) (*Font, error) {
	ttf, err := io.ReadAll(stream)
	if err != nil {
		return nil, wrapf(Io, err, "reading font stream")
	}
	return Parse(ttf)
}

// Parse reads ttf, an in-memory sfnt container, validating the table
// directory and the required tables (cmap, glyf, head, hhea, hmtx,
// loca, maxp), and returns the decoded Font. Parse fails the whole load
// on any structural problem; there is no partial result.
func Parse(ttf []byte) (*Font, error) {
	if len(ttf) < 12 {
		return nil, errf(Io, "sfnt data too short: %d bytes", len(ttf))
	}
	d := data(ttf[0:])
	version := d.u32()
	if version != sfntVersionTrueType && version != sfntVersionCFF {
		return nil, errf(Container, "bad sfnt version: 0x%08x", version)
	}
	n := int(d.u16())
	if len(ttf) < 16*n+12 {
		return nil, errf(Io, "sfnt data too short for %d table records", n)
	}

	f := new(Font)
	var err error
	for i := 0; i < n; i++ {
		x := 16*i + 12
		switch string(ttf[x : x+4]) {
		case "cmap":
			f.cmap, err = readTable(ttf, ttf[x+8:x+16])
		case "glyf":
			f.glyf, err = readTable(ttf, ttf[x+8:x+16])
		case "head":
			f.head, err = readTable(ttf, ttf[x+8:x+16])
		case "hhea":
			f.hhea, err = readTable(ttf, ttf[x+8:x+16])
		case "hmtx":
			f.hmtx, err = readTable(ttf, ttf[x+8:x+16])
		case "kern":
			f.kern, err = readTable(ttf, ttf[x+8:x+16])
		case "loca":
			f.loca, err = readTable(ttf, ttf[x+8:x+16])
		case "maxp":
			f.maxp, err = readTable(ttf, ttf[x+8:x+16])
		}
		if err != nil {
			return nil, err
		}
	}
	for name, tab := range map[string][]byte{
		"cmap": f.cmap, "glyf": f.glyf, "head": f.head, "hhea": f.hhea,
		"hmtx": f.hmtx, "loca": f.loca, "maxp": f.maxp,
	} {
		if tab == nil {
			return nil, errf(Container, "missing required table %q", name)
		}
	}

	if err := f.parseHead(); err != nil {
		return nil, err
	}
	if err := f.parseMaxp(); err != nil {
		return nil, err
	}
	if err := f.parseCmap(); err != nil {
		return nil, err
	}
	if err := f.parseKern(); err != nil {
		return nil, err
	}
	if err := f.parseHhea(); err != nil {
		return nil, err
	}
	T().Infof("truetype: parsed font, %d glyphs, upem=%d", f.nGlyph, f.unitsPerEm)
	return f, nil
}
