package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform places a local vertex ring in world space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Apply scales, rotates then translates a local point
func (t Transform) Apply(local mgl64.Vec3) mgl64.Vec3 {
	scaled := mgl64.Vec3{local.X() * t.Scale.X(), local.Y() * t.Scale.Y(), local.Z() * t.Scale.Z()}
	return t.Rotation.Rotate(scaled).Add(t.Position)
}

// ApplyAll transforms every point of a local ring into a new slice
func (t Transform) ApplyAll(local []mgl64.Vec3) []mgl64.Vec3 {
	world := make([]mgl64.Vec3, len(local))
	for i, p := range local {
		world[i] = t.Apply(p)
	}
	return world
}
