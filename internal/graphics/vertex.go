package graphics

import (
	"fmt"
	"strconv"
	"strings"
)

// VertexFormat describes an interleaved float32 vertex layout, one entry per
// attribute holding its component count, e.g. "2f 3f".
type VertexFormat struct {
	Components []int32
}

// ParseVertexFormat parses a space separated list of "<n>f" attributes.
func ParseVertexFormat(s string) (VertexFormat, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return VertexFormat{}, fmt.Errorf("empty vertex format")
	}
	var f VertexFormat
	for _, field := range fields {
		if !strings.HasSuffix(field, "f") {
			return VertexFormat{}, fmt.Errorf("vertex format %q: only float attributes are supported, got %q", s, field)
		}
		n, err := strconv.Atoi(strings.TrimSuffix(field, "f"))
		if err != nil || n < 1 || n > 4 {
			return VertexFormat{}, fmt.Errorf("vertex format %q: bad component count in %q", s, field)
		}
		f.Components = append(f.Components, int32(n))
	}
	return f, nil
}

// MustVertexFormat is ParseVertexFormat for package level constants.
func MustVertexFormat(s string) VertexFormat {
	f, err := ParseVertexFormat(s)
	if err != nil {
		panic(err)
	}
	return f
}

// FloatsPerVertex is the number of float32 values in one vertex.
func (f VertexFormat) FloatsPerVertex() int {
	n := 0
	for _, c := range f.Components {
		n += int(c)
	}
	return n
}

// Stride is the byte size of one vertex.
func (f VertexFormat) Stride() int32 {
	return int32(f.FloatsPerVertex() * 4)
}

// Offset is the byte offset of attribute i within a vertex.
func (f VertexFormat) Offset(i int) int {
	off := 0
	for _, c := range f.Components[:i] {
		off += int(c) * 4
	}
	return off
}

func (f VertexFormat) String() string {
	parts := make([]string, len(f.Components))
	for i, c := range f.Components {
		parts[i] = strconv.Itoa(int(c)) + "f"
	}
	return strings.Join(parts, " ")
}

// CheckLayout verifies that data holds whole vertices of format and that one
// attribute name is given per format component.
func CheckLayout(data []float32, format VertexFormat, attrs []string) (vertexCount int, err error) {
	if len(attrs) != len(format.Components) {
		return 0, fmt.Errorf("vertex format %q has %d attributes, got %d names %v", format, len(format.Components), len(attrs), attrs)
	}
	per := format.FloatsPerVertex()
	if per == 0 || len(data)%per != 0 {
		return 0, fmt.Errorf("vertex data of %d floats is not a multiple of format %q (%d floats)", len(data), format, per)
	}
	return len(data) / per, nil
}
