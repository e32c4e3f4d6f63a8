package xsect

import (
	"math"
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

func TestSectionCube(t *testing.T) {
	mesh := NewMeshBox(model3d.XYZ(-0.5, -0.5, -0.5), model3d.XYZ(0.5, 0.5, 0.5))
	s := &Sectioner{}
	res, err := s.Section(mesh, Plane{Normal: model3d.Z(1)})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Vertices) != 4 || len(res.Edges) != 4 {
		t.Fatalf("expected 4 vertices and 4 edges but got %d %d", len(res.Vertices), len(res.Edges))
	}
	for _, c := range res.Vertices {
		if math.Abs(c.X) != 0.5 || math.Abs(c.Y) != 0.5 || c.Z != 0 {
			t.Errorf("unexpected vertex %v", c)
		}
	}
	checkSectionEdges(t, res)
	checkClosedLoops(t, res)

	// Every section edge should be a side of the unit square.
	for _, seg := range res.Segments() {
		if l := seg[0].Dist(seg[1]); math.Abs(l-1) > 1e-8 {
			t.Errorf("segment %v should have length 1 but got %f", seg, l)
		}
	}
}

func TestSectionMiss(t *testing.T) {
	mesh := NewMeshBox(model3d.XYZ(-0.5, -0.5, -0.5), model3d.XYZ(0.5, 0.5, 0.5))
	for _, plane := range []Plane{
		{Point: model3d.Z(2), Normal: model3d.Z(1)},
		{Point: model3d.X(-3), Normal: model3d.XYZ(1, 0.2, 0.1)},
	} {
		res, err := (&Sectioner{}).Section(mesh, plane)
		if err != nil {
			t.Fatal(err)
		}
		if !res.IsEmpty() || len(res.Vertices) != 0 {
			t.Errorf("plane %v: expected empty section but got %d vertices %d edges",
				plane, len(res.Vertices), len(res.Edges))
		}
	}
}

func TestSectionSphere(t *testing.T) {
	mesh := NewMeshModel3D(model3d.NewMeshIcosphere(model3d.Origin, 1, 2))
	plane := Plane{Point: model3d.Z(0.1237), Normal: model3d.XYZ(0.1, -0.05, 1)}
	s := &Sectioner{}
	res, err := s.Section(mesh, plane)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Edges) < 3 {
		t.Fatalf("expected a closed section but got %d edges", len(res.Edges))
	}
	if len(res.Anomalies) != 0 {
		t.Errorf("unexpected anomalies: %v", res.Anomalies)
	}
	checkSectionEdges(t, res)
	checkClosedLoops(t, res)

	normal := plane.Normal.Normalize()
	for _, c := range res.Vertices {
		if d := normal.Dot(c.Sub(plane.Point)); math.Abs(d) > 1e-8 {
			t.Errorf("vertex %v is %f away from the plane", c, d)
		}
	}

	// Determinism: identical inputs produce identical output.
	res1, err := s.Section(mesh, plane)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res, res1) {
		t.Fatal("repeated sections differ")
	}
}

func TestSectionCoincidentStart(t *testing.T) {
	// Both edges leaving vertex 0 meet the plane exactly at their start.
	mesh := &Mesh{
		Vertices: []model3d.Coord3D{
			model3d.XYZ(0, 0, 0),
			model3d.XYZ(1, 0, 1),
			model3d.XYZ(1, 1, -1),
		},
		Edges: [][2]int{{0, 1}, {0, 2}, {1, 2}},
		Faces: [][]int{{0, 1, 2}},
	}
	res, err := (&Sectioner{}).Section(mesh, Plane{Normal: model3d.Z(1)})
	if err != nil {
		t.Fatal(err)
	}
	expected := []model3d.Coord3D{model3d.XYZ(0, 0, 0), model3d.XYZ(1, 0.5, 0)}
	if !reflect.DeepEqual(res.Vertices, expected) {
		t.Fatalf("expected vertices %v but got %v", expected, res.Vertices)
	}
	if !reflect.DeepEqual(res.Edges, []SectionEdge{{0, 1}}) {
		t.Fatalf("expected a single edge but got %v", res.Edges)
	}
}

func TestSectionEdgeIntersection(t *testing.T) {
	s := &Sectioner{}
	plane := &Plane{Normal: model3d.Z(1)}
	tests := []struct {
		name   string
		p1, p2 model3d.Coord3D
		hit    bool
	}{
		{"crossing", model3d.XYZ(0, 0, -1), model3d.XYZ(0, 0, 1), true},
		{"start", model3d.XYZ(0, 0, 0), model3d.XYZ(0, 1, 1), true},
		{"end", model3d.XYZ(0, 1, 1), model3d.XYZ(0, 0, 0), true},
		{"before start", model3d.XYZ(0, 0, 1), model3d.XYZ(0, 0, 2), false},
		{"past end", model3d.XYZ(0, 0, -2), model3d.XYZ(0, 0, -1), false},
		{"parallel", model3d.XYZ(0, 0, 1), model3d.XYZ(1, 0, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, hit := s.edgeIntersection(plane, tt.p1, tt.p2)
			if hit != tt.hit {
				t.Errorf("expected hit=%v but got %v", tt.hit, hit)
			}
		})
	}
}

func TestSectionAnomaly(t *testing.T) {
	// A twisted quad whose four sides all cross z=0.
	mesh := NewMesh(
		[]model3d.Coord3D{
			model3d.XYZ(0, 0, 1),
			model3d.XYZ(1, 0, -1),
			model3d.XYZ(1, 1, 1),
			model3d.XYZ(0, 1, -1),
		},
		[][]int{{0, 1, 2, 3}},
	)
	res, err := (&Sectioner{}).Section(mesh, Plane{Normal: model3d.Z(1)})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Vertices) != 4 {
		t.Errorf("expected 4 vertices but got %d", len(res.Vertices))
	}
	if len(res.Edges) != 0 {
		t.Errorf("expected no edges but got %v", res.Edges)
	}
	if !reflect.DeepEqual(res.Anomalies, []FaceAnomaly{{Face: 0, Points: 4}}) {
		t.Errorf("unexpected anomalies: %v", res.Anomalies)
	}
}

func TestSectionInvalid(t *testing.T) {
	s := &Sectioner{}
	if _, err := s.Section(&Mesh{}, Plane{Normal: model3d.Z(1)}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty mesh: expected invalid input but got %v", err)
	}
	mesh := NewMeshBox(model3d.XYZ(-1, -1, -1), model3d.XYZ(1, 1, 1))
	if _, err := s.Section(mesh, Plane{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero normal: expected invalid input but got %v", err)
	}
}

func TestSectionAll(t *testing.T) {
	meshes := []*Mesh{
		NewMeshBox(model3d.XYZ(-0.5, -0.5, -0.5), model3d.XYZ(0.5, 0.5, 0.5)),
		NewMeshBox(model3d.XYZ(2, 2, 1), model3d.XYZ(3, 3, 2)),
		NewMeshBox(model3d.XYZ(-2, -2, -1), model3d.XYZ(2, 2, 1)),
	}
	results, err := (&Sectioner{}).SectionAll(meshes, Plane{Normal: model3d.Z(1)})
	if err != nil {
		t.Fatal(err)
	}
	counts := []int{4, 0, 4}
	for i, res := range results {
		if len(res.Edges) != counts[i] {
			t.Errorf("mesh %d: expected %d edges but got %d", i, counts[i], len(res.Edges))
		}
	}

	meshes = append(meshes, &Mesh{})
	if _, err := (&Sectioner{}).SectionAll(meshes, Plane{Normal: model3d.Z(1)}); err == nil {
		t.Error("expected error for empty mesh")
	}
}

func checkSectionEdges(t *testing.T, res *SectionResult) {
	seen := map[SectionEdge]bool{}
	for _, e := range res.Edges {
		if e[0] == e[1] {
			t.Fatalf("degenerate edge %v", e)
		}
		if e[0] < 0 || e[1] >= len(res.Vertices) || e[0] > e[1] {
			t.Fatalf("invalid edge %v", e)
		}
		if seen[e] {
			t.Fatalf("duplicate edge %v", e)
		}
		seen[e] = true
	}
	unique := map[model3d.Coord3D]bool{}
	for _, c := range res.Vertices {
		if unique[c] {
			t.Fatalf("duplicate vertex %v", c)
		}
		unique[c] = true
	}
}

func checkClosedLoops(t *testing.T, res *SectionResult) {
	degree := make([]int, len(res.Vertices))
	for _, e := range res.Edges {
		degree[e[0]]++
		degree[e[1]]++
	}
	for i, d := range degree {
		if d != 2 {
			t.Fatalf("vertex %d should have degree 2 but has %d", i, d)
		}
	}
}
