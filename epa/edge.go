package epa

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Edge is a polytope edge in the Minkowski difference space.
// Equality is order-sensitive: (A, B) and (B, A) are different edges.
type Edge struct {
	A, B mgl64.Vec3
}

func (e Edge) Equal(other Edge) bool {
	return e.A == other.A && e.B == other.B
}

// Distance returns the perpendicular distance from the origin to the edge line,
// measured on the XZ plane.
func (e Edge) Distance() (float64, error) {
	dx := e.B.X() - e.A.X()
	dz := e.B.Z() - e.A.Z()
	length := math.Sqrt(dz*dz + dx*dx)
	if length < degenerateLength {
		return 0, ErrDegenerateEdge
	}

	return math.Abs(e.B.X()*e.A.Z()-e.B.Z()*e.A.X()) / length, nil
}

// Normal returns the unit normal of the edge pointing away from the origin:
// the triple product (AB × A) × AB, A being the position of the first endpoint.
//
// When the edge line passes through the origin the product vanishes; the normal
// then points away from interior, a point strictly inside the polytope.
func (e Edge) Normal(interior mgl64.Vec3) (mgl64.Vec3, error) {
	ab := e.B.Sub(e.A)
	if ab.LenSqr() < degenerateLength*degenerateLength {
		return mgl64.Vec3{}, ErrDegenerateEdge
	}

	normal := ab.Cross(e.A).Cross(ab)
	if normal.LenSqr() < degenerateNormal {
		normal = ab.Cross(e.A.Sub(interior)).Cross(ab)
		if normal.LenSqr() < degenerateNormal {
			return mgl64.Vec3{}, ErrDegenerateEdge
		}
	}

	return normal.Normalize(), nil
}
