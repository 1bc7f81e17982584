package mesh_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cubescene/internal/graphics"
	"cubescene/internal/mesh"
)

const quad = `# a unit quad
mtllib quad.mtl
o Quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl stone
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseQuad(t *testing.T) {
	m, err := mesh.Parse(strings.NewReader(quad))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(m.Positions) != 4 || len(m.UVs) != 4 {
		t.Fatalf("got %d positions, %d uvs", len(m.Positions), len(m.UVs))
	}
	if len(m.Triangles) != 2 {
		t.Fatalf("quad split into %d triangles, want 2", len(m.Triangles))
	}

	data := m.VertexData()
	if len(data) != 2*3*5 {
		t.Fatalf("vertex data has %d floats, want 30", len(data))
	}
	// Second triangle is 1,3,4; its last corner is vertex 4 with uv (0,1).
	last := data[25:30]
	want := []float32{0, 1, 0, 1, 0}
	for i := range want {
		if last[i] != want[i] {
			t.Fatalf("last vertex = %v, want %v", last, want)
		}
	}
}

func TestParseIndexForms(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\nf -3 -2 -1\nf 1//1 2//1 3//1\n"
	m, err := mesh.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(m.Triangles) != 3 {
		t.Fatalf("got %d triangles, want 3", len(m.Triangles))
	}
	if m.Triangles[0] != m.Triangles[1] {
		t.Errorf("relative indices resolved to %v, want %v", m.Triangles[1], m.Triangles[0])
	}
	for _, c := range m.Triangles[2] {
		if c.UV != -1 {
			t.Errorf("corner without texcoord has UV %d", c.UV)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"out of range": "v 0 0 0\nf 1 2 3\n",
		"bad float":    "v 0 zero 0\n",
		"short face":   "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"unknown":      "v 0 0 0\nbogus 1\n",
		"no faces":     "v 0 0 0\n",
	}
	for name, src := range tests {
		if _, err := mesh.Parse(strings.NewReader(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(path, []byte(quad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := mesh.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, err := mesh.Load(filepath.Join(dir, "nope.obj"))
	var rl *graphics.ResourceLoadError
	if !errors.As(err, &rl) || rl.Kind != graphics.ResourceMesh {
		t.Fatalf("missing file: err = %v, want mesh *ResourceLoadError", err)
	}
}
