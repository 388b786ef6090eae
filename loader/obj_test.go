package loader

import (
	"os"
	"path/filepath"
	"testing"

	"modelview/fixture"
	"modelview/scene"
)

func loadCube(t *testing.T, opts Options) *scene.Mesh {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cube.obj")
	if err := fixture.WriteCubeOBJ(path); err != nil {
		t.Fatalf("WriteCubeOBJ: %v", err)
	}
	mesh, err := Load(path, opts)
	if err != nil {
		t.Fatalf("Load(%s): %v", path, err)
	}
	return mesh
}

func TestLoadOBJCube(t *testing.T) {
	mesh := loadCube(t, DefaultOptions())

	if got := mesh.TriangleCount(); got != 12 {
		t.Errorf("TriangleCount() = %d; want 12", got)
	}
	if mesh.Name != "cube" {
		t.Errorf("mesh.Name = %q; want \"cube\"", mesh.Name)
	}

	b := mesh.Bounds()
	for i := 0; i < 3; i++ {
		if !approxF(b.Min[i], -0.5, 1e-5) || !approxF(b.Max[i], 0.5, 1e-5) {
			t.Errorf("Bounds() = %v..%v; want -0.5..0.5 on every axis", b.Min, b.Max)
			break
		}
	}

	if got := mesh.SurfaceArea(); !approxF(got, 6.0, 1e-4) {
		t.Errorf("SurfaceArea() = %v; want 6.0", got)
	}

	for _, g := range mesh.Groups {
		if g.Material == nil {
			t.Error("group has nil material after Load")
		}
		if !scene.HasNormals(g) {
			t.Error("cube group should carry normals from the file")
		}
	}
}

func TestLoadOBJScale(t *testing.T) {
	opts := DefaultOptions()
	opts.Scale = 2
	mesh := loadCube(t, opts)

	b := mesh.Bounds()
	if !approxF(b.Max.X(), 1.0, 1e-5) {
		t.Errorf("Bounds().Max.X() with scale 2 = %v; want 1.0", b.Max.X())
	}
}

func TestLoadOBJQuadTriangulation(t *testing.T) {
	// A single quad face must be fan-triangulated into two triangles and,
	// lacking vn lines, get computed normals.
	const quadOBJ = `o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := mesh.TriangleCount(); got != 2 {
		t.Errorf("TriangleCount() = %d; want 2", got)
	}
	for _, g := range mesh.Groups {
		if !scene.HasNormals(g) {
			t.Error("quad group should have computed normals")
		}
	}
}

func approxF(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
