package epa

import (
	"fmt"
	"sync"

	"github.com/akmonengine/prism/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Polytope holds the expanding polygon in the Minkowski difference space.
type Polytope struct {
	// Every point ever added, used for the interior reference
	points []mgl64.Vec3

	// Current boundary, in discovery order
	edges []Edge
}

// polytopePool avoids reallocating buffers for every colliding pair.
var polytopePool = sync.Pool{
	New: func() interface{} {
		return &Polytope{
			points: make([]mgl64.Vec3, 0, polytopeInitialCapacity),
			edges:  make([]Edge, 0, polytopeInitialCapacity),
		}
	},
}

// Reset prepares the polytope for reuse.
func (p *Polytope) Reset() {
	p.points = p.points[:0]
	p.edges = p.edges[:0]
}

func (p *Polytope) Edges() []Edge {
	return p.edges
}

// BuildInitialEdges creates one edge for every pair of simplex points,
// skipping pairs equal to an edge already built.
//
// Returns error if the simplex is not the 3-point simplex of an overlap.
func (p *Polytope) BuildInitialEdges(simplex *gjk.Simplex) error {
	if simplex.Count != 3 {
		return fmt.Errorf("%w: %d points (expected 3)", ErrInvalidSimplex, simplex.Count)
	}

	points := simplex.Slice()
	p.points = append(p.points, points...)

	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			edge := Edge{A: points[i], B: points[j]}
			if !p.contains(edge) {
				p.edges = append(p.edges, edge)
			}
		}
	}

	return nil
}

func (p *Polytope) contains(edge Edge) bool {
	for _, e := range p.edges {
		if e.Equal(edge) {
			return true
		}
	}
	return false
}

// ClosestEdgeIndex returns the index and distance of the edge closest to the
// origin. Ties keep the first edge found.
func (p *Polytope) ClosestEdgeIndex() (int, float64, error) {
	closestIndex := -1
	minDistance := 0.0

	for i, e := range p.edges {
		distance, err := e.Distance()
		if err != nil {
			return -1, 0, err
		}
		if closestIndex < 0 || distance < minDistance {
			closestIndex = i
			minDistance = distance
		}
	}

	if closestIndex < 0 {
		return -1, 0, ErrDegenerateEdge
	}

	return closestIndex, minDistance, nil
}

// Centroid is the average of every polytope point, strictly inside the polytope
// as long as the simplex it grew from was not flat.
func (p *Polytope) Centroid() mgl64.Vec3 {
	if len(p.points) == 0 {
		return mgl64.Vec3{0, 0, 0}
	}

	sum := mgl64.Vec3{0, 0, 0}
	for _, point := range p.points {
		sum = sum.Add(point)
	}

	return sum.Mul(1.0 / float64(len(p.points)))
}

// Split replaces the edge at index by two edges through support:
// (A, support) and (support, B), appended at the end of the boundary.
func (p *Polytope) Split(index int, support mgl64.Vec3) {
	edge := p.edges[index]
	p.points = append(p.points, support)

	p.edges = append(p.edges, Edge{A: edge.A, B: support}, Edge{A: support, B: edge.B})
	p.edges = append(p.edges[:index], p.edges[index+1:]...)
}
