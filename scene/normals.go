package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ComputeSmoothNormals replaces the group's normals with area-weighted
// averages of the face normals of every triangle touching each vertex.
// Vertices that are shared between faces through the index buffer end up
// smooth; duplicated vertices stay faceted.
func ComputeSmoothNormals(g *Group) {
	acc := make([]mgl32.Vec3, g.VertexCount())

	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0, i1, i2 := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		a := g.Position(int(i0))
		b := g.Position(int(i1))
		c := g.Position(int(i2))
		// Cross product length is proportional to the triangle area, so
		// accumulating the raw cross products gives the area weighting.
		face := b.Sub(a).Cross(c.Sub(a))
		acc[i0] = acc[i0].Add(face)
		acc[i1] = acc[i1].Add(face)
		acc[i2] = acc[i2].Add(face)
	}

	for i, n := range acc {
		if l := n.Len(); l > 0 {
			g.setNormal(i, n.Mul(1/l))
		} else {
			g.setNormal(i, mgl32.Vec3{0, 1, 0})
		}
	}
}

// HasNormals reports whether any vertex in the group carries a non-zero normal.
func HasNormals(g *Group) bool {
	for i := 0; i < g.VertexCount(); i++ {
		if g.Normal(i).Len() > 0 {
			return true
		}
	}
	return false
}
