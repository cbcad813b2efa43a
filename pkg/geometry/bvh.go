package geometry

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultMaxLeafSize is the leaf capacity used when none is configured
const DefaultMaxLeafSize = 4

// parallelBuildThreshold is the primitive count above which the two halves
// of a node are built concurrently
const parallelBuildThreshold = 4096

// BVHNode represents a node in the Bounding Volume Hierarchy.
// A leaf covers primitives[Start:End]; an internal node owns exactly two
// children and its box is the union of theirs.
type BVHNode struct {
	BoundingBox core.BoundingBox
	Left        *BVHNode
	Right       *BVHNode
	Start, End  int // Primitive range for leaf nodes
}

// IsLeaf reports whether the node holds primitives directly
func (n *BVHNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Size returns the number of primitives below the node
func (n *BVHNode) Size() int {
	return n.End - n.Start
}

// BVHAccel is a median-split bounding volume hierarchy over primitives.
// It is immutable after construction and safe for concurrent queries.
type BVHAccel struct {
	primitives  []Primitive
	root        *BVHNode
	maxLeafSize int
	tests       atomic.Int64 // Primitive tests plus internal nodes visited
}

// NewBVHAccel builds a hierarchy over a copy of primitives. An empty input
// produces an accelerator for which every query misses.
func NewBVHAccel(primitives []Primitive, maxLeafSize int) *BVHAccel {
	if maxLeafSize < 1 {
		maxLeafSize = DefaultMaxLeafSize
	}

	// Partitioning reorders the slice, so work on a private copy
	prims := make([]Primitive, len(primitives))
	copy(prims, primitives)

	bvh := &BVHAccel{primitives: prims, maxLeafSize: maxLeafSize}
	if len(prims) > 0 {
		bvh.root = bvh.build(0, len(prims))
	}
	return bvh
}

// build constructs the subtree over primitives[start:end]
func (bvh *BVHAccel) build(start, end int) *BVHNode {
	bbox := core.EmptyBoundingBox()
	for _, p := range bvh.primitives[start:end] {
		bbox = bbox.Union(p.BoundingBox())
	}

	node := &BVHNode{BoundingBox: bbox, Start: start, End: end}
	if end-start <= bvh.maxLeafSize {
		return node
	}

	// Split at the middle of the longest axis of the node's box
	axis := bbox.LongestAxis()
	split := bbox.Min.Axis(axis) + bbox.Extent().Axis(axis)*0.5
	mid := bvh.partition(start, end, axis, split)

	// All centroids fell on one side; fall back to the index midpoint
	if mid == start || mid == end {
		mid = start + (end-start)/2
	}

	if end-start >= parallelBuildThreshold {
		var g errgroup.Group
		g.Go(func() error {
			node.Left = bvh.build(start, mid)
			return nil
		})
		node.Right = bvh.build(mid, end)
		_ = g.Wait()
	} else {
		node.Left = bvh.build(start, mid)
		node.Right = bvh.build(mid, end)
	}
	return node
}

// partition reorders primitives[start:end] in place so that primitives whose
// centroid on axis exceeds split come last. It returns the first index of the
// right-hand side.
func (bvh *BVHAccel) partition(start, end, axis int, split float64) int {
	left, right := start, end-1
	for left <= right {
		if bvh.primitives[left].BoundingBox().Centroid().Axis(axis) > split {
			bvh.primitives[left], bvh.primitives[right] = bvh.primitives[right], bvh.primitives[left]
			right--
		} else {
			left++
		}
	}
	return left
}

// Intersect finds the nearest hit along ray. On success ray.MaxT equals the
// returned Intersection's T.
func (bvh *BVHAccel) Intersect(ray *core.Ray) (Intersection, bool) {
	if bvh.root == nil {
		return Intersection{}, false
	}
	return bvh.intersectNode(bvh.root, ray)
}

// enters reports whether ray's active interval overlaps node's box
func enters(node *BVHNode, ray *core.Ray) bool {
	hit, t0, t1 := node.BoundingBox.Intersect(*ray)
	return hit && t0 <= ray.MaxT && t1 >= ray.MinT
}

func (bvh *BVHAccel) intersectNode(node *BVHNode, ray *core.Ray) (Intersection, bool) {
	if !enters(node, ray) {
		return Intersection{}, false
	}

	if node.IsLeaf() {
		var closest Intersection
		hitAnything := false
		for _, p := range bvh.primitives[node.Start:node.End] {
			bvh.tests.Add(1)
			// Every accepted hit shrinks ray.MaxT, so a later hit is never farther
			if isect, ok := p.Intersect(ray); ok {
				closest = isect
				hitAnything = true
			}
		}
		return closest, hitAnything
	}

	bvh.tests.Add(1)
	left, hitLeft := bvh.intersectNode(node.Left, ray)
	right, hitRight := bvh.intersectNode(node.Right, ray)
	return nearest(left, hitLeft, right, hitRight)
}

// nearest merges two child results by explicit comparison
func nearest(a Intersection, hitA bool, b Intersection, hitB bool) (Intersection, bool) {
	switch {
	case hitA && hitB:
		if b.T < a.T {
			return b, true
		}
		return a, true
	case hitA:
		return a, true
	case hitB:
		return b, true
	default:
		return Intersection{}, false
	}
}

// HasIntersection reports whether anything lies along ray. It stops at the
// first hit rather than searching for the closest one.
func (bvh *BVHAccel) HasIntersection(ray *core.Ray) bool {
	if bvh.root == nil {
		return false
	}
	return bvh.hasIntersectionNode(bvh.root, ray)
}

func (bvh *BVHAccel) hasIntersectionNode(node *BVHNode, ray *core.Ray) bool {
	if !enters(node, ray) {
		return false
	}

	if node.IsLeaf() {
		for _, p := range bvh.primitives[node.Start:node.End] {
			bvh.tests.Add(1)
			if p.HasIntersection(ray) {
				return true
			}
		}
		return false
	}

	bvh.tests.Add(1)
	return bvh.hasIntersectionNode(node.Left, ray) || bvh.hasIntersectionNode(node.Right, ray)
}

// BoundingBox returns the bounds of the whole hierarchy
func (bvh *BVHAccel) BoundingBox() core.BoundingBox {
	if bvh.root == nil {
		return core.EmptyBoundingBox()
	}
	return bvh.root.BoundingBox
}

// Root returns the root node, nil for an empty hierarchy
func (bvh *BVHAccel) Root() *BVHNode {
	return bvh.root
}

// Primitives returns the primitives in hierarchy order
func (bvh *BVHAccel) Primitives() []Primitive {
	return bvh.primitives
}

// IntersectionTests returns the diagnostic counter
func (bvh *BVHAccel) IntersectionTests() int64 {
	return bvh.tests.Load()
}

// ResetIntersectionTests zeroes the diagnostic counter
func (bvh *BVHAccel) ResetIntersectionTests() {
	bvh.tests.Store(0)
}

// BVHStats summarizes the shape of a hierarchy
type BVHStats struct {
	TotalNodes   int
	LeafNodes    int
	MaxDepth     int
	AvgLeafDepth float64
	AvgLeafSize  float64
	LargestLeaf  int
	Primitives   int
	MaxLeafSize  int
	RootSurfArea float64
}

// Stats walks the hierarchy and returns its statistics
func (bvh *BVHAccel) Stats() BVHStats {
	stats := BVHStats{Primitives: len(bvh.primitives), MaxLeafSize: bvh.maxLeafSize}
	if bvh.root == nil {
		return stats
	}

	depthSum := 0
	var walk func(node *BVHNode, depth int)
	walk = func(node *BVHNode, depth int) {
		stats.TotalNodes++
		stats.MaxDepth = max(stats.MaxDepth, depth)
		if node.IsLeaf() {
			stats.LeafNodes++
			stats.LargestLeaf = max(stats.LargestLeaf, node.Size())
			depthSum += depth
			return
		}
		walk(node.Left, depth+1)
		walk(node.Right, depth+1)
	}
	walk(bvh.root, 0)

	stats.AvgLeafDepth = float64(depthSum) / float64(stats.LeafNodes)
	stats.AvgLeafSize = float64(stats.Primitives) / float64(stats.LeafNodes)
	stats.RootSurfArea = bvh.root.BoundingBox.SurfaceArea()
	return stats
}
