package shape

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Load reads the plain-text shape-file format: one record per line,
// vertex lines "v: <float>, <float>" and segment lines "s: <int>, <int>",
// interleaved freely. Indices used by a segment record must have been
// declared by an earlier vertex record. Any malformed record aborts
// loading and returns an error.
func Load(r io.Reader) (*Shape, error) {
	s := New()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		switch {
		case strings.HasPrefix(text, "v:"):
			x, y, err := parsePair(text[len("v:"):])
			if err != nil {
				return nil, fmt.Errorf("shape: line %d: %w", line, err)
			}
			s.AddVec(x, y)
		case strings.HasPrefix(text, "s:"):
			i, j, err := parseIntPair(text[len("s:"):])
			if err != nil {
				return nil, fmt.Errorf("shape: line %d: %w", line, err)
			}
			if i < 0 || i >= len(s.Vec) || j < 0 || j >= len(s.Vec) {
				return nil, fmt.Errorf("shape: line %d: segment index out of range", line)
			}
			s.AddSeg(i, j)
		default:
			return nil, fmt.Errorf("shape: line %d: malformed record %q", line, text)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("shape: %w", err)
	}
	return s, nil
}

func parsePair(s string) (float64, float64, error) {
	a, b, err := splitPair(s)
	if err != nil {
		return 0, 0, err
	}
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func parseIntPair(s string) (int, int, error) {
	a, b, err := splitPair(s)
	if err != nil {
		return 0, 0, err
	}
	i, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, err
	}
	j, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, err
	}
	return i, j, nil
}

func splitPair(s string) (string, string, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("expected two comma-separated fields, got %q", s)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// Save writes s to w in the plain-text shape-file format, vertices first,
// then segments.
func Save(w io.Writer, s *Shape) error {
	bw := bufio.NewWriter(w)
	for _, v := range s.Vec {
		if _, err := fmt.Fprintf(bw, "v: %g, %g\n", v.X, v.Y); err != nil {
			return err
		}
	}
	for _, seg := range s.Seg {
		if _, err := fmt.Fprintf(bw, "s: %d, %d\n", seg[0], seg[1]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
