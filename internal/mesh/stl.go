package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 50
)

// LoadSTL reads an ASCII or binary STL file.
func LoadSTL(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSTL(f)
}

// ReadSTL decodes an STL stream. A stream whose length matches the binary
// layout exactly is read as binary even if its header starts with "solid".
func ReadSTL(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) >= stlHeaderSize+4 {
		n := binary.LittleEndian.Uint32(data[stlHeaderSize:])
		if int64(len(data)) == stlHeaderSize+4+int64(n)*stlFacetSize {
			return readBinary(data[stlHeaderSize+4:], int(n))
		}
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("solid")) {
		return readASCII(trimmed)
	}
	return nil, fmt.Errorf("%w: neither ASCII nor binary layout (%d bytes)", ErrMalformedSTL, len(data))
}

type builder struct {
	m     *Mesh
	index map[r3.Vec]int
}

func newBuilder() *builder {
	return &builder{m: &Mesh{}, index: make(map[r3.Vec]int)}
}

// vertex returns the index of p, merging coincident corners.
func (b *builder) vertex(p r3.Vec) int {
	if i, ok := b.index[p]; ok {
		return i
	}
	i := len(b.m.Vertices)
	b.m.Vertices = append(b.m.Vertices, p)
	b.index[p] = i
	return i
}

func (b *builder) triangle(a, c, d r3.Vec) {
	b.m.Faces = append(b.m.Faces, [3]int{b.vertex(a), b.vertex(c), b.vertex(d)})
}

func (b *builder) finish() (*Mesh, error) {
	if len(b.m.Faces) == 0 {
		return nil, ErrEmptyMesh
	}
	return b.m, nil
}

func readBinary(data []byte, n int) (*Mesh, error) {
	b := newBuilder()
	for i := 0; i < n; i++ {
		rec := data[i*stlFacetSize : (i+1)*stlFacetSize]
		var corners [3]r3.Vec
		for c := 0; c < 3; c++ {
			off := 12 + c*12
			corners[c] = r3.Vec{
				X: float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[off:]))),
				Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[off+4:]))),
				Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[off+8:]))),
			}
		}
		b.triangle(corners[0], corners[1], corners[2])
	}
	return b.finish()
}

func readASCII(data []byte) (*Mesh, error) {
	b := newBuilder()
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var loop []r3.Vec
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", ErrMalformedSTL, line)
			}
			var p [3]float64
			for i := range p {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedSTL, line, err)
				}
				p[i] = v
			}
			loop = append(loop, r3.Vec{X: p[0], Y: p[1], Z: p[2]})
		case "outer":
			loop = loop[:0]
		case "endloop":
			if len(loop) < 3 {
				return nil, fmt.Errorf("%w: line %d: loop with %d vertices", ErrMalformedSTL, line, len(loop))
			}
			// fan-triangulate polygons
			for i := 1; i+1 < len(loop); i++ {
				b.triangle(loop[0], loop[i], loop[i+1])
			}
			loop = loop[:0]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return b.finish()
}

// WriteSTL encodes m as binary STL with unit face normals.
func (m *Mesh) WriteSTL(w io.Writer) error {
	bw := bufio.NewWriter(w)
	header := make([]byte, stlHeaderSize)
	copy(header, "windtunnel binary STL")
	if _, err := bw.Write(header); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Faces))); err != nil {
		return err
	}
	rec := make([]byte, stlFacetSize)
	put := func(off int, v r3.Vec) {
		binary.LittleEndian.PutUint32(rec[off:], math.Float32bits(float32(v.X)))
		binary.LittleEndian.PutUint32(rec[off+4:], math.Float32bits(float32(v.Y)))
		binary.LittleEndian.PutUint32(rec[off+8:], math.Float32bits(float32(v.Z)))
	}
	for i := range m.Faces {
		n := m.FaceNormal(i)
		if r3.Norm(n) > 0 {
			n = r3.Unit(n)
		}
		put(0, n)
		t := m.Triangle(i)
		for c := 0; c < 3; c++ {
			put(12+c*12, t[c])
		}
		rec[48], rec[49] = 0, 0
		if _, err := bw.Write(rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveSTL writes m to path as binary STL.
func (m *Mesh) SaveSTL(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteSTL(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
