package geometry

import (
	"github.com/df07/go-light-transport/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Shapes for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 4

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}

	// Partitioning reorders the slice; keep the caller's copy intact
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy)}
}

// buildBVH recursively builds the tree by splitting at the midpoint of the
// longest axis of the node's bounds
func buildBVH(shapes []Shape) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		boundingBox = boundingBox.Union(shape.BoundingBox())
	}

	leaf := &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	if len(shapes) <= leafThreshold {
		return leaf
	}

	axis, splitPos, ok := findSplit(shapes)
	if !ok {
		return leaf
	}

	leftShapes, rightShapes := partitionShapes(shapes, axis, splitPos)
	if len(leftShapes) == 0 || len(rightShapes) == 0 {
		return leaf
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(leftShapes),
		Right:       buildBVH(rightShapes),
	}
}

// findSplit picks the longest axis of the shapes' centroid bounds and its midpoint
func findSplit(shapes []Shape) (int, float64, bool) {
	centers := make([]core.Vec3, len(shapes))
	for i, shape := range shapes {
		centers[i] = shape.BoundingBox().Center()
	}
	centroidBounds := core.NewAABBFromPoints(centers...)

	axis := centroidBounds.LongestAxis()
	minVal := centroidBounds.Min.Component(axis)
	maxVal := centroidBounds.Max.Component(axis)
	if maxVal <= minVal {
		return -1, 0, false
	}
	return axis, (minVal + maxVal) * 0.5, true
}

// partitionShapes partitions shapes based on the chosen axis and split position
func partitionShapes(shapes []Shape, axis int, splitPos float64) ([]Shape, []Shape) {
	var leftShapes, rightShapes []Shape
	for _, shape := range shapes {
		if shape.BoundingBox().Center().Component(axis) < splitPos {
			leftShapes = append(leftShapes, shape)
		} else {
			rightShapes = append(rightShapes, shape)
		}
	}
	return leftShapes, rightShapes
}

// Hit returns the closest intersection in [tMin, tMax]
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax)
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	var closest *Intersection
	closestSoFar := tMax

	if node.Left == nil {
		for _, shape := range node.Shapes {
			if its, ok := shape.Hit(ray, tMin, closestSoFar); ok {
				closest = its
				closestSoFar = its.T
			}
		}
		return closest, closest != nil
	}

	if its, ok := bvh.hitNode(node.Left, ray, tMin, closestSoFar); ok {
		closest = its
		closestSoFar = its.T
	}
	if its, ok := bvh.hitNode(node.Right, ray, tMin, closestSoFar); ok {
		closest = its
	}
	return closest, closest != nil
}

// Occluded reports whether any shape intersects the ray in [tMin, tMax].
// Traversal stops at the first hit found.
func (bvh *BVH) Occluded(ray core.Ray, tMin, tMax float64) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.occludedNode(bvh.Root, ray, tMin, tMax)
}

func (bvh *BVH) occludedNode(node *BVHNode, ray core.Ray, tMin, tMax float64) bool {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}

	if node.Left == nil {
		for _, shape := range node.Shapes {
			if shape.Occludes(ray, tMin, tMax) {
				return true
			}
		}
		return false
	}

	return bvh.occludedNode(node.Left, ray, tMin, tMax) ||
		bvh.occludedNode(node.Right, ray, tMin, tMax)
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	totalShapes int
}

// getStats returns statistics about the BVH structure
func (bvh *BVH) getStats() bvhStats {
	stats := bvhStats{}
	if bvh.Root != nil {
		bvh.collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	if node.Left == nil {
		stats.leafNodes++
		stats.totalShapes += len(node.Shapes)
		return
	}
	bvh.collectStats(node.Left, depth+1, stats)
	bvh.collectStats(node.Right, depth+1, stats)
}
