// Package scene holds the in-memory representation of a loaded model:
// triangle groups with interleaved vertex data, materials and bounds.
package scene

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the number of floats per vertex in a Group's interleaved
// vertex array: position (3), normal (3), texture coordinate (2).
const VertexStride = 8

// Material describes how a group is shaded. Colors are linear RGB.
type Material struct {
	Name         string
	Ambient      [3]float32
	Diffuse      [3]float32
	Specular     [3]float32
	Shininess    float32
	Opacity      float32
	DiffuseImage image.Image // decoded diffuse texture, nil when untextured
}

// DefaultMaterial returns the material used when a model carries none.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "default",
		Ambient:   [3]float32{0.1, 0.1, 0.1},
		Diffuse:   [3]float32{0.73, 0.73, 0.73},
		Specular:  [3]float32{0.5, 0.5, 0.5},
		Shininess: 32,
		Opacity:   1,
	}
}

// Group is a single draw batch: one vertex/index buffer pair sharing a material.
type Group struct {
	Name     string
	Vertices []float32 // interleaved, VertexStride floats per vertex
	Indices  []uint32
	Material *Material
}

// AddVertex appends an interleaved vertex and returns its index.
func (g *Group) AddVertex(pos, normal mgl32.Vec3, uv mgl32.Vec2) uint32 {
	i := uint32(len(g.Vertices) / VertexStride)
	g.Vertices = append(g.Vertices,
		pos.X(), pos.Y(), pos.Z(),
		normal.X(), normal.Y(), normal.Z(),
		uv.X(), uv.Y())
	return i
}

// VertexCount returns the number of vertices in the group.
func (g *Group) VertexCount() int {
	return len(g.Vertices) / VertexStride
}

// TriangleCount returns the number of indexed triangles in the group.
func (g *Group) TriangleCount() int {
	return len(g.Indices) / 3
}

// Position returns the position of vertex i.
func (g *Group) Position(i int) mgl32.Vec3 {
	o := i * VertexStride
	return mgl32.Vec3{g.Vertices[o], g.Vertices[o+1], g.Vertices[o+2]}
}

// Normal returns the normal of vertex i.
func (g *Group) Normal(i int) mgl32.Vec3 {
	o := i*VertexStride + 3
	return mgl32.Vec3{g.Vertices[o], g.Vertices[o+1], g.Vertices[o+2]}
}

func (g *Group) setNormal(i int, n mgl32.Vec3) {
	o := i*VertexStride + 3
	g.Vertices[o] = n.X()
	g.Vertices[o+1] = n.Y()
	g.Vertices[o+2] = n.Z()
}

// Transform applies m to every position and its normal matrix to every
// normal in the group. Used to bake node transforms at load time.
func (g *Group) Transform(m mgl32.Mat4) {
	normalMat := m.Inv().Transpose().Mat3()
	for i := 0; i < g.VertexCount(); i++ {
		p := m.Mul4x1(g.Position(i).Vec4(1)).Vec3()
		o := i * VertexStride
		g.Vertices[o] = p.X()
		g.Vertices[o+1] = p.Y()
		g.Vertices[o+2] = p.Z()

		n := normalMat.Mul3x1(g.Normal(i))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		g.setNormal(i, n)
	}
}

// Mesh is a complete loaded model.
type Mesh struct {
	Name   string
	Groups []*Group
}

// TriangleCount returns the total triangle count across all groups.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, g := range m.Groups {
		n += g.TriangleCount()
	}
	return n
}

// VertexCount returns the total vertex count across all groups.
func (m *Mesh) VertexCount() int {
	n := 0
	for _, g := range m.Groups {
		n += g.VertexCount()
	}
	return n
}

// Bounds computes the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() AABB {
	bbox := NewAABB()
	for _, g := range m.Groups {
		for i := 0; i < g.VertexCount(); i++ {
			bbox.Extend(g.Position(i))
		}
	}
	return bbox
}

// SurfaceArea returns the total area of all indexed triangles.
func (m *Mesh) SurfaceArea() float32 {
	var total float32
	for _, g := range m.Groups {
		for i := 0; i+2 < len(g.Indices); i += 3 {
			a := g.Position(int(g.Indices[i]))
			b := g.Position(int(g.Indices[i+1]))
			c := g.Position(int(g.Indices[i+2]))
			cr := b.Sub(a).Cross(c.Sub(a))
			total += 0.5 * math32.Sqrt(cr.X()*cr.X()+cr.Y()*cr.Y()+cr.Z()*cr.Z())
		}
	}
	return total
}

// Scale multiplies every vertex position by s.
func (m *Mesh) Scale(s float32) {
	if s == 1 || s == 0 {
		return
	}
	for _, g := range m.Groups {
		for i := 0; i < g.VertexCount(); i++ {
			o := i * VertexStride
			g.Vertices[o] *= s
			g.Vertices[o+1] *= s
			g.Vertices[o+2] *= s
		}
	}
}
