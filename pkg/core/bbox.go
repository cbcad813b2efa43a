package core

import "math"

// BoundingBox represents an axis-aligned bounding box.
// The zero-volume empty box has Min = +Inf and Max = -Inf so that any
// Expand or Union yields the other operand.
type BoundingBox struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewBoundingBox creates a box from its min and max corners
func NewBoundingBox(min, max Vec3) BoundingBox {
	return BoundingBox{Min: min, Max: max}
}

// EmptyBoundingBox returns a box that contains nothing
func EmptyBoundingBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// NewBoundingBoxFromPoints creates the smallest box containing all points
func NewBoundingBoxFromPoints(points ...Vec3) BoundingBox {
	box := EmptyBoundingBox()
	for _, p := range points {
		box = box.Expand(p)
	}
	return box
}

// IsEmpty reports whether the box contains no points
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Expand returns the box grown to contain p
func (b BoundingBox) Expand(p Vec3) BoundingBox {
	return BoundingBox{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns a box that bounds both this box and another
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Extent returns the size of the box along each axis
func (b BoundingBox) Extent() Vec3 {
	return b.Max.Subtract(b.Min)
}

// Centroid returns the center point of the box
func (b BoundingBox) Centroid() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the greatest extent
func (b BoundingBox) LongestAxis() int {
	size := b.Extent()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// SurfaceArea returns the surface area of the box
func (b BoundingBox) SurfaceArea() float64 {
	if b.IsEmpty() {
		return 0
	}
	size := b.Extent()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// Contains reports whether p lies inside the box (boundary included)
func (b BoundingBox) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersect runs the slab test and returns the entry and exit parameters.
//
// The test is purely geometric: the ray's [MinT, MaxT] interval is not
// consulted, callers clip the returned [t0, t1] themselves. A zero direction
// component divides to +-Inf. When the origin also sits on the slab plane the
// division yields NaN; NaN never wins a comparison below, so that axis simply
// does not constrain the interval.
func (b BoundingBox) Intersect(ray Ray) (hit bool, t0, t1 float64) {
	t0 = math.Inf(-1)
	t1 = math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		near := (b.Min.Axis(axis) - origin) / direction
		far := (b.Max.Axis(axis) - origin) / direction
		if near > far {
			near, far = far, near
		}

		if near > t0 {
			t0 = near
		}
		if far < t1 {
			t1 = far
		}
	}

	if t0 > t1 || t1 < 0 {
		return false, t0, t1
	}
	return true, t0, t1
}
