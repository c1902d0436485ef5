// Package epa implements the Expanding Polytope Algorithm for computing penetration.
//
// EPA is run after GJK reports an overlap to determine the separation vector: the
// direction and distance to move the prisms apart. The algorithm grows a polygon,
// starting from GJK's final triangle, toward the boundary of the Minkowski
// difference; the edge closest to the origin gives the Minimum Translation Vector.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
package epa

import (
	"errors"
	"fmt"

	"github.com/akmonengine/prism/actor"
	"github.com/akmonengine/prism/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultThreshold stops the expansion when the support point along the closest
	// edge normal improves the edge distance by less than this absolute amount.
	DefaultThreshold = 0.5

	// DefaultSkin is added to the penetration depth so the pair is fully separated
	// after the positional correction.
	DefaultSkin = 0.05

	// DefaultMaxIterations limits polytope expansion to prevent infinite loops.
	DefaultMaxIterations = 32

	degenerateLength = 1e-9
	degenerateNormal = 1e-18

	polytopeInitialCapacity = 8
)

var (
	ErrInvalidSimplex = errors.New("epa: invalid simplex")
	// ErrDegenerateEdge is returned for zero-length edges or normals: the pair must
	// be treated as non-colliding.
	ErrDegenerateEdge = errors.New("epa: degenerate edge")
	ErrNoConvergence  = errors.New("epa: no convergence")
)

// Options tunes the solver. The zero value is not usable, start from DefaultOptions.
type Options struct {
	Threshold     float64
	Skin          float64
	MaxIterations int
}

func DefaultOptions() Options {
	return Options{
		Threshold:     DefaultThreshold,
		Skin:          DefaultSkin,
		MaxIterations: DefaultMaxIterations,
	}
}

// Penetration is the result of a successful EPA run.
type Penetration struct {
	// Normal is the unit separation direction, from A toward B
	Normal mgl64.Vec3
	// Depth is the distance of the closest edge, without the skin
	Depth float64
	// Vector is Normal * (Depth + skin): B moves by +Vector/2, A by -Vector/2
	Vector     mgl64.Vec3
	Iterations int
}

// EPA computes the penetration of two overlapping prisms.
//
// Algorithm overview:
//  1. Build the edges of GJK's triangle
//  2. Find the edge closest to the origin
//  3. Get the support point along its outward normal
//  4. If the support point improves the distance by less than the threshold, stop
//  5. Otherwise split the edge through the support point and repeat from step 2
//  6. Re-scan every edge for the closest one: its normal scaled by distance + skin
//     is the penetration vector
//
// Parameters:
//   - a, b: The two overlapping prisms
//   - simplex: 3-point simplex from GJK enclosing the origin
//
// Returns an error if the polytope degenerates or does not converge.
func EPA(a, b *actor.Prism, simplex *gjk.Simplex, opts Options) (Penetration, error) {
	polytope := polytopePool.Get().(*Polytope)
	defer polytopePool.Put(polytope)
	polytope.Reset()

	if err := polytope.BuildInitialEdges(simplex); err != nil {
		return Penetration{}, err
	}

	converged := false
	iterations := 0
	for iterations < opts.MaxIterations {
		iterations++

		closestIndex, distance, err := polytope.ClosestEdgeIndex()
		if err != nil {
			return Penetration{}, err
		}
		normal, err := polytope.edges[closestIndex].Normal(polytope.Centroid())
		if err != nil {
			return Penetration{}, err
		}

		support := gjk.MinkowskiSupport(a, b, normal)
		if support.Dot(normal)-distance < opts.Threshold {
			converged = true
			break
		}

		polytope.Split(closestIndex, support)
	}

	if !converged {
		return Penetration{}, fmt.Errorf("%w after %d iterations", ErrNoConvergence, opts.MaxIterations)
	}

	closestIndex, distance, err := polytope.ClosestEdgeIndex()
	if err != nil {
		return Penetration{}, err
	}
	normal, err := polytope.edges[closestIndex].Normal(polytope.Centroid())
	if err != nil {
		return Penetration{}, err
	}

	return Penetration{
		Normal:     normal,
		Depth:      distance,
		Vector:     normal.Mul(distance + opts.Skin),
		Iterations: iterations,
	}, nil
}
