// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) overlap test for prisms.
//
// GJK detects whether two convex vertex sets overlap by testing if their Minkowski
// difference contains the origin. Prisms only collide through their XZ footprint, so
// the simplex lives on the XZ plane: it grows from a segment to a triangle and the
// test succeeds as soon as a triangle encloses the origin.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"errors"
	"sync"

	"github.com/akmonengine/prism/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxIterations is a safety limit: a planar simplex normally converges in 2-6 steps.
	MaxIterations = 32

	degenerateEpsilon = 1e-12
)

var (
	// ErrDegenerateSimplex is returned when the simplex collapses (collinear triangle),
	// the pair must then be treated as non-colliding.
	ErrDegenerateSimplex = errors.New("gjk: degenerate simplex")
	ErrNoConvergence     = errors.New("gjk: no convergence")
)

// Simplex represents a set of 1-3 points in the Minkowski difference space.
// Points are ordered from oldest to most recent.
type Simplex struct {
	Points [3]mgl64.Vec3
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

// Slice returns the active points
func (s *Simplex) Slice() []mgl64.Vec3 {
	return s.Points[:s.Count]
}

func (s *Simplex) push(point mgl64.Vec3) {
	s.Points[s.Count] = point
	s.Count++
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{}
	},
}

// MinkowskiSupport computes a support point in the Minkowski difference (A - B):
// furthestPoint(A, direction) - furthestPoint(B, -direction).
//
// The result is projected on the XZ plane. Vertex rings of two prisms may sit at
// different heights, the vertical offset would otherwise leak into the search
// directions.
func MinkowskiSupport(a, b *actor.Prism, direction mgl64.Vec3) mgl64.Vec3 {
	supportA := a.Support(direction)
	supportB := b.Support(direction.Mul(-1))
	d := supportA.Sub(supportB)

	return mgl64.Vec3{d.X(), 0, d.Z()}
}

type status int

const (
	searching status = iota
	enclosed
	separated
)

// GJK reports whether two prisms overlap.
//
// Algorithm overview:
//  1. Seed the simplex with the support point along +X, then search along -X
//  2. Add the support point along the search direction
//  3. If it does not pass the origin, the shapes are separated
//  4. Otherwise refine the simplex toward the origin and update the direction
//  5. A triangle enclosing the origin means overlap
//
// On overlap the simplex holds the 3 points EPA starts from. A non-nil error means
// the geometry degenerated and the result must be read as "no overlap".
func GJK(a, b *actor.Prism, simplex *Simplex) (bool, error) {
	direction := mgl64.Vec3{1, 0, 0}

	simplex.Reset()
	simplex.push(MinkowskiSupport(a, b, direction))

	direction = direction.Mul(-1)

	for i := 0; i < MaxIterations; i++ {
		newPoint := MinkowskiSupport(a, b, direction)

		// The new point must pass the origin along the search direction,
		// otherwise the Minkowski difference cannot contain it.
		if newPoint.Dot(direction) <= 0 {
			return false, nil
		}

		simplex.push(newPoint)

		s, err := containsOrigin(simplex, &direction)
		if err != nil {
			return false, err
		}
		switch s {
		case enclosed:
			return true, nil
		case separated:
			return false, nil
		}
	}

	return false, ErrNoConvergence
}

func containsOrigin(simplex *Simplex, direction *mgl64.Vec3) (status, error) {
	if simplex.Count == 3 {
		return triangle(simplex, direction)
	}
	return line(simplex, direction)
}

// line handles the segment made of the seed (B) and the newest point (A).
// The next direction is the segment normal pointing toward the origin.
func line(simplex *Simplex, direction *mgl64.Vec3) (status, error) {
	a := simplex.Points[1]
	b := simplex.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	// A and B are the extreme points along -X and +X, the whole difference has
	// a single X value which is negative since A passed the origin.
	if ab.LenSqr() < degenerateEpsilon {
		return separated, nil
	}

	abNormal := tripleProduct(ab, ao, ab)
	if abNormal.LenSqr() >= degenerateEpsilon {
		*direction = abNormal
		return searching, nil
	}

	// Origin is on the line through A and B
	t := ab.Dot(ao)
	if t < 0 || t > ab.LenSqr() {
		return separated, nil
	}

	// Origin is on the segment: any side works, search along the XZ perpendicular
	*direction = mgl64.Vec3{-ab.Z(), 0, ab.X()}
	return searching, nil
}

// triangle handles the triangle simplex (C oldest, B, A newest).
// Only the two edges adjacent to A are tested: the previous step already put the
// origin on the inner side of BC.
func triangle(simplex *Simplex, direction *mgl64.Vec3) (status, error) {
	a := simplex.Points[2]
	b := simplex.Points[1]
	c := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	if ab.Cross(ac).LenSqr() < degenerateEpsilon {
		return searching, ErrDegenerateSimplex
	}

	abNormal := tripleProduct(ac, ab, ab)
	acNormal := tripleProduct(ab, ac, ac)

	if abNormal.Dot(ao) > 0 {
		// Outside AB, drop C
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = abNormal
		return searching, nil
	}

	if acNormal.Dot(ao) > 0 {
		// Outside AC, drop B
		simplex.Points[0] = c
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = acNormal
		return searching, nil
	}

	return enclosed, nil
}

// tripleProduct computes (a × b) × c
func tripleProduct(a, b, c mgl64.Vec3) mgl64.Vec3 {
	return a.Cross(b).Cross(c)
}
