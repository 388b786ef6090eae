package loader

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hschendel/stl"

	"modelview/scene"
)

func init() {
	Register(".stl", decodeSTL)
}

// decodeSTL loads an STL solid, binary or ASCII. STL has no materials or
// texture coordinates, so the whole solid becomes one group with the default
// material. Facet normals are taken from the file when present; solids with
// zeroed normals get them computed in the shared post-pass.
func decodeSTL(path string, opts Options) (*scene.Mesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, err
	}

	g := &scene.Group{
		Name:     solid.Name,
		Material: scene.DefaultMaterial(),
	}
	for i := range solid.Triangles {
		t := &solid.Triangles[i]
		n := mgl32.Vec3{t.Normal[0], t.Normal[1], t.Normal[2]}
		for _, v := range t.Vertices {
			idx := g.AddVertex(mgl32.Vec3{v[0], v[1], v[2]}, n, mgl32.Vec2{})
			g.Indices = append(g.Indices, idx)
		}
	}

	return &scene.Mesh{Name: solid.Name, Groups: []*scene.Group{g}}, nil
}
