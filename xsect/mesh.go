package xsect

import (
	"io"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// A Mesh is an indexed polygon mesh.
//
// Faces are vertex loops of any length, so quads survive without being
// split into triangles. Each consecutive pair of a face loop (including the
// closing pair) must appear in Edges.
type Mesh struct {
	Vertices []model3d.Coord3D
	Edges    [][2]int
	Faces    [][]int
}

// NewMesh creates a mesh from vertices and face loops, deriving the edge list
// in the order edges are first encountered while walking the faces.
func NewMesh(vertices []model3d.Coord3D, faces [][]int) *Mesh {
	m := &Mesh{
		Vertices: vertices,
		Faces:    faces,
	}
	seen := map[[2]int]bool{}
	for _, face := range faces {
		for i, v1 := range face {
			v2 := face[(i+1)%len(face)]
			key := edgeKey(v1, v2)
			if !seen[key] {
				seen[key] = true
				m.Edges = append(m.Edges, [2]int{v1, v2})
			}
		}
	}
	return m
}

// NewMeshModel3D converts a triangle mesh into an indexed mesh, welding
// triangle corners which share the exact same coordinate.
func NewMeshModel3D(mesh *model3d.Mesh) *Mesh {
	return NewMeshTriangles(mesh.TriangleSlice())
}

// NewMeshTriangles is like NewMeshModel3D, but for a raw triangle list such
// as the one produced by model3d.ReadSTL.
func NewMeshTriangles(tris []*model3d.Triangle) *Mesh {
	var vertices []model3d.Coord3D
	indices := map[model3d.Coord3D]int{}
	faces := make([][]int, 0, len(tris))
	for _, t := range tris {
		face := make([]int, 3)
		for i, c := range t {
			idx, ok := indices[c]
			if !ok {
				idx = len(vertices)
				indices[c] = idx
				vertices = append(vertices, c)
			}
			face[i] = idx
		}
		faces = append(faces, face)
	}
	return NewMesh(vertices, faces)
}

// NewMeshBox creates an axis-aligned box with 8 vertices, 12 edges, and 6
// quad faces.
func NewMeshBox(min, max model3d.Coord3D) *Mesh {
	vertices := make([]model3d.Coord3D, 8)
	for i := range vertices {
		c := min
		if i&1 != 0 {
			c.X = max.X
		}
		if i&2 != 0 {
			c.Y = max.Y
		}
		if i&4 != 0 {
			c.Z = max.Z
		}
		vertices[i] = c
	}
	faces := [][]int{
		{0, 2, 3, 1}, // bottom
		{4, 5, 7, 6}, // top
		{0, 1, 5, 4}, // front
		{2, 6, 7, 3}, // back
		{0, 4, 6, 2}, // left
		{1, 3, 7, 5}, // right
	}
	return NewMesh(vertices, faces)
}

// ReadMeshSTL reads an STL file and welds it into an indexed mesh.
func ReadMeshSTL(r io.Reader) (*Mesh, error) {
	tris, err := model3d.ReadSTL(r)
	if err != nil {
		return nil, errors.Wrap(err, "read mesh STL")
	}
	return NewMeshTriangles(tris), nil
}

// Validate checks that every index in the mesh is in range and that every
// face boundary is backed by an edge.
func (m *Mesh) Validate() error {
	if m == nil || len(m.Vertices) == 0 {
		return invalidInput("mesh has no vertices")
	}
	if len(m.Edges) == 0 {
		return invalidInput("mesh has no edges")
	}
	for i, e := range m.Edges {
		for _, v := range e {
			if v < 0 || v >= len(m.Vertices) {
				return invalidInput("edge %d references vertex %d out of %d", i, v, len(m.Vertices))
			}
		}
		if e[0] == e[1] {
			return invalidInput("edge %d is degenerate (vertex %d)", i, e[0])
		}
	}
	edges := m.edgeIndex()
	for i, face := range m.Faces {
		if len(face) < 3 {
			return invalidInput("face %d has %d vertices", i, len(face))
		}
		for j, v := range face {
			if v < 0 || v >= len(m.Vertices) {
				return invalidInput("face %d references vertex %d out of %d", i, v, len(m.Vertices))
			}
			if _, ok := edges[edgeKey(v, face[(j+1)%len(face)])]; !ok {
				return invalidInput("face %d has no edge between vertices %d and %d",
					i, v, face[(j+1)%len(face)])
			}
		}
	}
	return nil
}

// Transform creates a copy of the mesh with every vertex mapped through f.
//
// This is how an object's world transform is baked into the geometry before
// cutting it.
func (m *Mesh) Transform(f func(model3d.Coord3D) model3d.Coord3D) *Mesh {
	res := &Mesh{
		Vertices: make([]model3d.Coord3D, len(m.Vertices)),
		Edges:    append([][2]int{}, m.Edges...),
		Faces:    m.Faces,
	}
	for i, c := range m.Vertices {
		res.Vertices[i] = f(c)
	}
	return res
}

// Min gets the minimum corner of the mesh's bounding box.
func (m *Mesh) Min() model3d.Coord3D {
	if len(m.Vertices) == 0 {
		return model3d.Origin
	}
	res := m.Vertices[0]
	for _, c := range m.Vertices[1:] {
		res = res.Min(c)
	}
	return res
}

// Max gets the maximum corner of the mesh's bounding box.
func (m *Mesh) Max() model3d.Coord3D {
	if len(m.Vertices) == 0 {
		return model3d.Origin
	}
	res := m.Vertices[0]
	for _, c := range m.Vertices[1:] {
		res = res.Max(c)
	}
	return res
}

// faceEdges gets the edge indices along the boundary of every face.
func (m *Mesh) faceEdges() [][]int {
	edges := m.edgeIndex()
	res := make([][]int, len(m.Faces))
	for i, face := range m.Faces {
		indices := make([]int, 0, len(face))
		for j, v := range face {
			if idx, ok := edges[edgeKey(v, face[(j+1)%len(face)])]; ok {
				indices = append(indices, idx)
			}
		}
		res[i] = indices
	}
	return res
}

func (m *Mesh) edgeIndex() map[[2]int]int {
	res := make(map[[2]int]int, len(m.Edges))
	for i, e := range m.Edges {
		key := edgeKey(e[0], e[1])
		if _, ok := res[key]; !ok {
			res[key] = i
		}
	}
	return res
}

func edgeKey(v1, v2 int) [2]int {
	if v1 > v2 {
		return [2]int{v2, v1}
	}
	return [2]int{v1, v2}
}
