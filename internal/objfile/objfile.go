// Package objfile reads the Wavefront OBJ subset the asset library uses:
// vertex positions and faces. Normals, texture coordinates, groups and
// materials are skipped; faces with more than three vertices are fan
// triangulated.
package objfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"spatial-scene-gen/internal/mathutil"
)

// Mesh is a triangle mesh in local object coordinates.
type Mesh struct {
	Verts []mathutil.Vec3
	Tris  [][3]int
}

// Load parses an OBJ file.
func Load(path string) (Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return Mesh{}, fmt.Errorf("objfile: open %s: %w", path, err)
	}
	defer f.Close()

	var mesh Mesh
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return Mesh{}, fmt.Errorf("objfile: %s:%d: short vertex line", path, lineNo)
			}
			var v mathutil.Vec3
			for i := 0; i < 3; i++ {
				v[i], err = strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return Mesh{}, fmt.Errorf("objfile: %s:%d: vertex coord: %w", path, lineNo, err)
				}
			}
			mesh.Verts = append(mesh.Verts, v)
		case "f":
			if len(fields) < 4 {
				return Mesh{}, fmt.Errorf("objfile: %s:%d: face needs 3+ vertices", path, lineNo)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				i, err := vertexIndex(tok, len(mesh.Verts))
				if err != nil {
					return Mesh{}, fmt.Errorf("objfile: %s:%d: %w", path, lineNo, err)
				}
				idx = append(idx, i)
			}
			for k := 1; k+1 < len(idx); k++ {
				mesh.Tris = append(mesh.Tris, [3]int{idx[0], idx[k], idx[k+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Mesh{}, fmt.Errorf("objfile: scan %s: %w", path, err)
	}
	if len(mesh.Verts) == 0 || len(mesh.Tris) == 0 {
		return Mesh{}, fmt.Errorf("objfile: %s: no geometry", path)
	}
	return mesh, nil
}

// vertexIndex resolves an OBJ face token ("7", "7/2", "7//3", "-1") to a
// zero-based vertex index.
func vertexIndex(tok string, nVerts int) (int, error) {
	if j := strings.IndexByte(tok, '/'); j >= 0 {
		tok = tok[:j]
	}
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("face index %q: %w", tok, err)
	}
	switch {
	case i > 0 && i <= nVerts:
		return i - 1, nil
	case i < 0 && -i <= nVerts:
		return nVerts + i, nil
	default:
		return 0, fmt.Errorf("face index %d out of range (have %d vertices)", i, nVerts)
	}
}

// Bounds returns the axis-aligned bounding box of the mesh in local space.
func (m Mesh) Bounds() (min, max mathutil.Vec3) {
	min = mathutil.Vec3{}
	max = mathutil.Vec3{}
	for i, v := range m.Verts {
		if i == 0 {
			min, max = v, v
			continue
		}
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	return min, max
}

// Center returns the bounding-box center of the mesh.
func (m Mesh) Center() mathutil.Vec3 {
	min, max := m.Bounds()
	return min.Add(max).Scale(0.5)
}
