package prism

import (
	"github.com/akmonengine/prism/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Pair - prisms sharing at least one leaf of the spatial index
type Pair struct {
	PrismA *actor.Prism
	PrismB *actor.Prism
}

// QuadTree is the broad phase spatial index on the XZ plane.
// The whole tree is allocated by NewQuadTree and rebuilt every tick.
type QuadTree struct {
	center mgl64.Vec2
	radius float64

	// children are ordered (-x,-z), (-x,+z), (+x,-z), (+x,+z); all nil on a leaf
	children [4]*QuadTree

	// Leaf membership, members keeps insertion order
	members    []*actor.Prism
	membership map[*actor.Prism]struct{}
}

// NewQuadTree builds a full tree of the given depth covering the square
// [center - radius, center + radius].
func NewQuadTree(depth int, center mgl64.Vec2, radius float64) *QuadTree {
	q := &QuadTree{
		center: center,
		radius: radius,
	}

	if depth <= 0 {
		q.membership = make(map[*actor.Prism]struct{})
		return q
	}

	half := radius / 2
	q.children[0] = NewQuadTree(depth-1, center.Add(mgl64.Vec2{-half, -half}), half)
	q.children[1] = NewQuadTree(depth-1, center.Add(mgl64.Vec2{-half, half}), half)
	q.children[2] = NewQuadTree(depth-1, center.Add(mgl64.Vec2{half, -half}), half)
	q.children[3] = NewQuadTree(depth-1, center.Add(mgl64.Vec2{half, half}), half)

	return q
}

func (q *QuadTree) IsLeaf() bool {
	return q.children[0] == nil
}

// Register inserts the prism in every leaf its bounds reach and returns one
// (member, prism) pair for every prism already in those leaves.
// A prism straddling a center line reaches several quadrants, so the same
// pair may be returned more than once.
func (q *QuadTree) Register(p *actor.Prism) []Pair {
	return q.register(p, p.GetBounds(), nil)
}

func (q *QuadTree) register(p *actor.Prism, bounds actor.Bounds, pairs []Pair) []Pair {
	if q.IsLeaf() {
		if _, ok := q.membership[p]; ok {
			return pairs
		}
		for _, member := range q.members {
			pairs = append(pairs, Pair{PrismA: member, PrismB: p})
		}
		q.members = append(q.members, p)
		q.membership[p] = struct{}{}

		return pairs
	}

	// Strict tests: bounds touching a center line do not cross it
	if bounds.Min.X() < q.center.X() && bounds.Min.Y() < q.center.Y() {
		pairs = q.children[0].register(p, bounds, pairs)
	}
	if bounds.Min.X() < q.center.X() && bounds.Max.Y() > q.center.Y() {
		pairs = q.children[1].register(p, bounds, pairs)
	}
	if bounds.Max.X() > q.center.X() && bounds.Min.Y() < q.center.Y() {
		pairs = q.children[2].register(p, bounds, pairs)
	}
	if bounds.Max.X() > q.center.X() && bounds.Max.Y() > q.center.Y() {
		pairs = q.children[3].register(p, bounds, pairs)
	}

	return pairs
}

// Quadrant is a read-only copy of a QuadTree node, for debug overlays.
type Quadrant struct {
	Bounds   actor.Bounds
	Children []Quadrant
	// Members holds the prism ids of a leaf, in registration order
	Members []int
}

func (q *QuadTree) Snapshot() Quadrant {
	radius := mgl64.Vec2{q.radius, q.radius}
	quadrant := Quadrant{
		Bounds: actor.Bounds{Min: q.center.Sub(radius), Max: q.center.Add(radius)},
	}

	if q.IsLeaf() {
		quadrant.Members = make([]int, len(q.members))
		for i, m := range q.members {
			quadrant.Members[i] = m.ID
		}
		return quadrant
	}

	quadrant.Children = make([]Quadrant, len(q.children))
	for i, child := range q.children {
		quadrant.Children[i] = child.Snapshot()
	}

	return quadrant
}

func (q Quadrant) IsLeaf() bool {
	return len(q.Children) == 0
}

// Leaves flattens the snapshot, depth first in quadrant order.
func (q Quadrant) Leaves() []Quadrant {
	if q.IsLeaf() {
		return []Quadrant{q}
	}

	var leaves []Quadrant
	for _, child := range q.Children {
		leaves = append(leaves, child.Leaves()...)
	}
	return leaves
}
