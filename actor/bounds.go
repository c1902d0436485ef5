package actor

import "github.com/go-gl/mathgl/mgl64"

// Bounds represents an axis-aligned rectangle on the XZ plane.
// X() holds the world X coordinate and Y() holds the world Z coordinate.
type Bounds struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

func (b Bounds) Center() mgl64.Vec2 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Expand grows the rectangle so that it contains point
func (b Bounds) Expand(point mgl64.Vec2) Bounds {
	if point.X() < b.Min.X() {
		b.Min[0] = point.X()
	}
	if point.X() > b.Max.X() {
		b.Max[0] = point.X()
	}
	if point.Y() < b.Min.Y() {
		b.Min[1] = point.Y()
	}
	if point.Y() > b.Max.Y() {
		b.Max[1] = point.Y()
	}
	return b
}
