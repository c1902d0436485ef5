package constraint

import (
	"github.com/akmonengine/prism/actor"
	"github.com/akmonengine/prism/epa"
	"github.com/go-gl/mathgl/mgl64"
)

// ContactConstraint is a confirmed overlap between two prisms and the
// vector that separates them.
type ContactConstraint struct {
	PrismA *actor.Prism
	PrismB *actor.Prism
	// Normal points from A toward B
	Normal mgl64.Vec3
	Depth  float64
	// Vector is the full separation: A receives -Vector/2, B receives +Vector/2
	Vector mgl64.Vec3
}

func NewContactConstraint(a, b *actor.Prism, penetration epa.Penetration) *ContactConstraint {
	return &ContactConstraint{
		PrismA: a,
		PrismB: b,
		Normal: penetration.Normal,
		Depth:  penetration.Depth,
		Vector: penetration.Vector,
	}
}

// SolvePosition splits the separation evenly between both prisms.
// There is no mass, velocity or angular response.
func (c *ContactConstraint) SolvePosition() {
	half := c.Vector.Mul(0.5)

	c.PrismA.Translate(half.Mul(-1))
	c.PrismB.Translate(half)
}
