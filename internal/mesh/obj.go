package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cubescene/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Corner references a position and an optional texture coordinate
// (UV = -1 when absent), both zero based.
type Corner struct {
	Position int
	UV       int
}

// Mesh is a triangulated Wavefront OBJ model.
type Mesh struct {
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	Triangles [][3]Corner
}

// Load reads an OBJ file from disk.
func Load(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &graphics.ResourceLoadError{Kind: graphics.ResourceMesh, Path: path, Err: err}
	}
	defer file.Close()

	m, err := Parse(file)
	if err != nil {
		return nil, &graphics.ResourceLoadError{Kind: graphics.ResourceMesh, Path: path, Err: err}
	}
	return m, nil
}

// Parse reads OBJ geometry. Only v, vt and f records are used; normals,
// groups, materials and smoothing are skipped. Polygons are split into
// triangle fans.
func Parse(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v": // v x y z [w]
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			m.Positions = append(m.Positions, mgl32.Vec3{v[0], v[1], v[2]})

		case "vt": // vt u [v [w]]
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			m.UVs = append(m.UVs, mgl32.Vec2{v[0], v[1]})

		case "f":
			// f 1 2 3 | f 1/4 2/5 3/6 | f 1//1 2//1 3//1 | f 1/4/1 ...
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners", lineNo)
			}
			corners := make([]Corner, 0, len(fields)-1)
			for _, f := range fields[1:] {
				c, err := m.parseCorner(f)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, c)
			}
			for i := 1; i+1 < len(corners); i++ {
				m.Triangles = append(m.Triangles, [3]Corner{corners[0], corners[i], corners[i+1]})
			}

		case "vn", "vp", "o", "g", "s", "usemtl", "mtllib", "l":
		default:
			return nil, fmt.Errorf("line %d: unknown record %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(m.Triangles) == 0 {
		return nil, fmt.Errorf("no faces")
	}
	return m, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// parseCorner resolves 1-based (or negative, relative) OBJ indices against
// the records read so far.
func (m *Mesh) parseCorner(s string) (Corner, error) {
	parts := strings.Split(s, "/")
	pos, err := resolveIndex(parts[0], len(m.Positions))
	if err != nil {
		return Corner{}, fmt.Errorf("vertex %q: %w", s, err)
	}
	c := Corner{Position: pos, UV: -1}
	if len(parts) > 1 && parts[1] != "" {
		uv, err := resolveIndex(parts[1], len(m.UVs))
		if err != nil {
			return Corner{}, fmt.Errorf("texcoord %q: %w", s, err)
		}
		c.UV = uv
	}
	return c, nil
}

func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("index %d out of range (have %d)", i, n)
}

// VertexData expands the mesh into the "2f 3f" layout (uv, position). Missing
// texture coordinates become (0, 0).
func (m *Mesh) VertexData() []float32 {
	out := make([]float32, 0, len(m.Triangles)*3*5)
	for _, tri := range m.Triangles {
		for _, c := range tri {
			var uv mgl32.Vec2
			if c.UV >= 0 {
				uv = m.UVs[c.UV]
			}
			p := m.Positions[c.Position]
			out = append(out, uv[0], uv[1], p[0], p[1], p[2])
		}
	}
	return out
}
