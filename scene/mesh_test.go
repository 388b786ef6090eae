package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

// quadGroup returns a unit quad in the XY plane with zeroed normals.
func quadGroup() *Group {
	g := &Group{Name: "quad", Material: DefaultMaterial()}
	g.AddVertex(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{}, mgl32.Vec2{0, 0})
	g.AddVertex(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, mgl32.Vec2{1, 0})
	g.AddVertex(mgl32.Vec3{1, 1, 0}, mgl32.Vec3{}, mgl32.Vec2{1, 1})
	g.AddVertex(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, mgl32.Vec2{0, 1})
	g.Indices = []uint32{0, 1, 2, 0, 2, 3}
	return g
}

func TestGroupAddVertex(t *testing.T) {
	g := &Group{}
	i0 := g.AddVertex(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0.25, 0.75})
	i1 := g.AddVertex(mgl32.Vec3{4, 5, 6}, mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0, 0})

	if i0 != 0 || i1 != 1 {
		t.Errorf("AddVertex returned indices %d, %d; want 0, 1", i0, i1)
	}
	if g.VertexCount() != 2 {
		t.Errorf("VertexCount() = %d; want 2", g.VertexCount())
	}
	if got := g.Position(1); got != (mgl32.Vec3{4, 5, 6}) {
		t.Errorf("Position(1) = %v; want (4 5 6)", got)
	}
	if got := g.Normal(0); got != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Normal(0) = %v; want (0 1 0)", got)
	}
}

func TestMeshCounts(t *testing.T) {
	m := &Mesh{Groups: []*Group{quadGroup(), quadGroup()}}
	if got := m.TriangleCount(); got != 4 {
		t.Errorf("TriangleCount() = %d; want 4", got)
	}
	if got := m.VertexCount(); got != 8 {
		t.Errorf("VertexCount() = %d; want 8", got)
	}
}

func TestMeshBounds(t *testing.T) {
	m := &Mesh{Groups: []*Group{quadGroup()}}
	b := m.Bounds()

	if b.Min != (mgl32.Vec3{0, 0, 0}) || b.Max != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("Bounds() = %v..%v; want (0 0 0)..(1 1 0)", b.Min, b.Max)
	}
	if got := b.Center(); got != (mgl32.Vec3{0.5, 0.5, 0}) {
		t.Errorf("Center() = %v; want (0.5 0.5 0)", got)
	}
	if got := b.Radius(); !approx(got, 0.70710677, 1e-5) {
		t.Errorf("Radius() = %v; want ~0.7071", got)
	}
}

func TestMeshSurfaceArea(t *testing.T) {
	m := &Mesh{Groups: []*Group{quadGroup()}}
	if got := m.SurfaceArea(); !approx(got, 1.0, 1e-5) {
		t.Errorf("SurfaceArea() = %v; want 1.0", got)
	}
}

func TestMeshScale(t *testing.T) {
	m := &Mesh{Groups: []*Group{quadGroup()}}
	m.Scale(2)
	b := m.Bounds()
	if b.Max != (mgl32.Vec3{2, 2, 0}) {
		t.Errorf("Bounds().Max after Scale(2) = %v; want (2 2 0)", b.Max)
	}

	// Scale(1) and Scale(0) are no-ops.
	m.Scale(1)
	m.Scale(0)
	if got := m.Bounds().Max; got != (mgl32.Vec3{2, 2, 0}) {
		t.Errorf("Bounds().Max after no-op scales = %v; want (2 2 0)", got)
	}
}

func TestGroupTransform(t *testing.T) {
	g := quadGroup()
	ComputeSmoothNormals(g)
	g.Transform(mgl32.Translate3D(1, 2, 3))

	if got := g.Position(0); got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Position(0) after translate = %v; want (1 2 3)", got)
	}
	// Normals are unaffected by translation.
	n := g.Normal(0)
	if !approx(n.Z(), 1, 1e-5) || !approx(n.X(), 0, 1e-5) {
		t.Errorf("Normal(0) after translate = %v; want (0 0 1)", n)
	}
}

func TestAABBEmpty(t *testing.T) {
	b := NewAABB()
	if !b.Empty() {
		t.Error("NewAABB() should be empty")
	}
	if got := b.Radius(); got != 0 {
		t.Errorf("empty Radius() = %v; want 0", got)
	}
	if got := b.Size(); got != (mgl32.Vec3{}) {
		t.Errorf("empty Size() = %v; want zero", got)
	}

	b.Extend(mgl32.Vec3{1, -1, 2})
	if b.Empty() {
		t.Error("box should not be empty after Extend")
	}
	if b.Min != b.Max {
		t.Errorf("single-point box Min %v != Max %v", b.Min, b.Max)
	}
}
