package mesh

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// box returns a closed axis-aligned box with 12 triangles.
func box(x0, x1, y0, y1, z0, z1 float64) *Mesh {
	v := []r3.Vec{
		{X: x0, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x0, Y: y1, Z: z0},
		{X: x0, Y: y0, Z: z1}, {X: x1, Y: y0, Z: z1}, {X: x1, Y: y1, Z: z1}, {X: x0, Y: y1, Z: z1},
	}
	f := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // bottom
		{4, 5, 6}, {4, 6, 7}, // top
		{0, 1, 5}, {0, 5, 4}, // front
		{2, 3, 7}, {2, 7, 6}, // back
		{1, 2, 6}, {1, 6, 5}, // right
		{0, 4, 7}, {0, 7, 3}, // left
	}
	return &Mesh{Vertices: v, Faces: f}
}

const asciiTetra = `solid tetra
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 0 1
    endloop
  endfacet
  facet normal -1 0 0
    outer loop
      vertex 0 0 0
      vertex 0 1 0
      vertex 0 0 1
    endloop
  endfacet
  facet normal 1 1 1
    outer loop
      vertex 1 0 0
      vertex 0 1 0
      vertex 0 0 1
    endloop
  endfacet
endsolid tetra
`

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestReadASCII(t *testing.T) {
	m, err := ReadSTL(strings.NewReader(asciiTetra))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if m.NumTriangles() != 4 {
		t.Errorf("expected 4 triangles, got %d", m.NumTriangles())
	}
	if m.NumVertices() != 4 {
		t.Errorf("expected 4 merged vertices, got %d", m.NumVertices())
	}
	if b := m.Bounds(); b != [6]float64{0, 1, 0, 1, 0, 1} {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	src := box(-1, 2, -0.5, 0.5, 0, 1.5)
	var buf bytes.Buffer
	if err := src.WriteSTL(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() != 84+12*50 {
		t.Fatalf("unexpected binary size %d", buf.Len())
	}

	m, err := ReadSTL(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if m.NumTriangles() != 12 || m.NumVertices() != 8 {
		t.Errorf("got %d triangles, %d vertices", m.NumTriangles(), m.NumVertices())
	}
	if m.Bounds() != src.Bounds() {
		t.Errorf("bounds %v, want %v", m.Bounds(), src.Bounds())
	}
}

func TestBinaryWithSolidHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := box(0, 1, 0, 1, 0, 1).WriteSTL(&buf); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	copy(data, "solid but actually binary")

	m, err := ReadSTL(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if m.NumTriangles() != 12 {
		t.Errorf("expected 12 triangles, got %d", m.NumTriangles())
	}
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"garbage", "not an stl", ErrMalformedSTL},
		{"empty solid", "solid x\nendsolid x\n", ErrEmptyMesh},
		{"bad vertex", "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0\nendloop\nendfacet\nendsolid\n", ErrMalformedSTL},
		{"bad number", "solid x\nouter loop\nvertex 0 a 0\n", ErrMalformedSTL},
		{"short loop", "solid x\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nendloop\n", ErrMalformedSTL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSTL(strings.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.stl")
	if err := box(0, 4, 0, 2, 0, 1).SaveSTL(path); err != nil {
		t.Fatal(err)
	}
	m, err := LoadSTL(path)
	if err != nil {
		t.Fatal(err)
	}
	if ext := m.Extent(); !approx(ext.X, 4) || !approx(ext.Y, 2) || !approx(ext.Z, 1) {
		t.Errorf("unexpected extent %v", ext)
	}
}

func TestEmptyBounds(t *testing.T) {
	var m Mesh
	if m.Bounds() != [6]float64{} {
		t.Error("empty mesh must have zero bounds")
	}
}

func TestTranslateAndCopy(t *testing.T) {
	m := box(0, 1, 0, 1, 0, 1)
	orig := m.Copy()
	m.Translate(r3.Vec{X: 2, Y: -1, Z: 0.5})

	if b := m.Bounds(); b != [6]float64{2, 3, -1, 0, 0.5, 1.5} {
		t.Errorf("unexpected bounds %v", b)
	}
	if orig.Bounds() != [6]float64{0, 1, 0, 1, 0, 1} {
		t.Error("copy shares vertex storage")
	}
}

func TestScale(t *testing.T) {
	m := box(-1, 1, -1, 1, 0, 1)
	m.ComputeNormals()
	m.Scale(2, 0.5, 3)

	if b := m.Bounds(); b != [6]float64{-2, 2, -0.5, 0.5, 0, 3} {
		t.Errorf("unexpected bounds %v", b)
	}
	for i, n := range m.Normals {
		if !approx(r3.Norm(n), 1) {
			t.Errorf("normal %d not unit after scale: %v", i, n)
		}
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		axis string
		deg  float64
		want [6]float64
	}{
		{"z", 90, [6]float64{-1, 0, 0, 2, 0, 3}},
		{"x", 90, [6]float64{0, 2, -3, 0, 0, 1}},
		{"Y", 90, [6]float64{0, 3, 0, 1, -2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.axis, func(t *testing.T) {
			m := box(0, 2, 0, 1, 0, 3)
			if err := m.Rotate(tt.axis, tt.deg); err != nil {
				t.Fatal(err)
			}
			b := m.Bounds()
			for i := range b {
				if !approx(b[i], tt.want[i]) {
					t.Fatalf("bounds %v, want %v", b, tt.want)
				}
			}
		})
	}
}

func TestRotateUnknownAxis(t *testing.T) {
	m := box(0, 1, 0, 1, 0, 1)
	if err := m.Rotate("w", 15); !errors.Is(err, ErrUnknownAxis) {
		t.Errorf("expected ErrUnknownAxis, got %v", err)
	}
}

func TestCenterAndPlace(t *testing.T) {
	m := box(3, 7, -4, 2, 5, 6)
	m.CenterAndPlace()
	if b := m.Bounds(); b != [6]float64{-2, 2, -3, 3, 0, 1} {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestComputeNormalsPointOutward(t *testing.T) {
	m := box(-1, 1, -1, 1, -1, 1)
	m.ComputeNormals()
	if !m.HasNormals() {
		t.Fatal("normals not set")
	}
	for i, n := range m.Normals {
		if r3.Dot(n, m.Vertices[i]) <= 0 {
			t.Errorf("normal %d points inward: %v at %v", i, n, m.Vertices[i])
		}
		if !approx(r3.Norm(n), 1) {
			t.Errorf("normal %d not unit: %v", i, n)
		}
	}
}
