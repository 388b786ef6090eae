package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABB returns an empty box that the first Extend call will snap to.
func NewAABB() AABB {
	return AABB{
		Min: mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: mgl32.Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

// Empty reports whether the box has never been extended.
func (b *AABB) Empty() bool {
	return b.Min.X() > b.Max.X()
}

// Extend grows the box to contain p.
func (b *AABB) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Center returns the midpoint of the box.
func (b *AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extents along each axis.
func (b *AABB) Size() mgl32.Vec3 {
	if b.Empty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Radius returns the distance from the center to a corner. The viewer uses
// it to frame the model regardless of scale.
func (b *AABB) Radius() float32 {
	if b.Empty() {
		return 0
	}
	half := b.Size().Mul(0.5)
	return math32.Sqrt(half.X()*half.X() + half.Y()*half.Y() + half.Z()*half.Z())
}
