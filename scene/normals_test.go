package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestComputeSmoothNormalsFlatQuad(t *testing.T) {
	g := quadGroup()
	if HasNormals(g) {
		t.Fatal("quadGroup should start without normals")
	}

	ComputeSmoothNormals(g)

	if !HasNormals(g) {
		t.Fatal("group should have normals after ComputeSmoothNormals")
	}
	for i := 0; i < g.VertexCount(); i++ {
		n := g.Normal(i)
		if !approx(n.X(), 0, 1e-5) || !approx(n.Y(), 0, 1e-5) || !approx(n.Z(), 1, 1e-5) {
			t.Errorf("Normal(%d) = %v; want (0 0 1)", i, n)
		}
	}
}

func TestComputeSmoothNormalsDegenerate(t *testing.T) {
	// A vertex referenced by no triangle gets the fallback up normal.
	g := &Group{}
	g.AddVertex(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{}, mgl32.Vec2{})
	ComputeSmoothNormals(g)

	if got := g.Normal(0); got != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("orphan vertex normal = %v; want (0 1 0)", got)
	}
}

func TestComputeSmoothNormalsUnitLength(t *testing.T) {
	// Two triangles at an angle sharing an edge: the shared vertices get an
	// averaged normal that must still be unit length.
	g := &Group{}
	g.AddVertex(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{}, mgl32.Vec2{})
	g.AddVertex(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, mgl32.Vec2{})
	g.AddVertex(mgl32.Vec3{1, 1, 0}, mgl32.Vec3{}, mgl32.Vec2{})
	g.AddVertex(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, mgl32.Vec2{})
	g.Indices = []uint32{0, 1, 2, 0, 2, 3}

	ComputeSmoothNormals(g)

	for i := 0; i < g.VertexCount(); i++ {
		if l := g.Normal(i).Len(); !approx(l, 1, 1e-5) {
			t.Errorf("Normal(%d) length = %v; want 1", i, l)
		}
	}
}
