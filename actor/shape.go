package actor

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	MinVertexCount = 3
	MaxVertexCount = 10
)

var (
	ErrVertexCount   = errors.New("prism vertex count out of range")
	ErrInvalidVertex = errors.New("prism vertex is not finite")
	ErrInvalidHeight = errors.New("prism height must be positive")
)

// Prism is a convex vertex ring extruded vertically.
// Vertices hold the ring used for support queries; the vertical extent is
// described by MidY and Height only and is never tested for collision.
type Prism struct {
	// ID is stable for the whole simulation and dense in [0, N)
	ID       int
	Vertices []mgl64.Vec3
	MidY     float64
	Height   float64

	bounds Bounds
}

// NewPrism validates the ring and computes the initial bounds.
// The vertices slice is owned by the prism from now on.
func NewPrism(id int, vertices []mgl64.Vec3, midY, height float64) (*Prism, error) {
	p := &Prism{
		ID:       id,
		Vertices: vertices,
		MidY:     midY,
		Height:   height,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.ComputeBounds()

	return p, nil
}

// Validate reports construction errors: a prism failing it must never enter a world
func (p *Prism) Validate() error {
	if n := len(p.Vertices); n < MinVertexCount || n > MaxVertexCount {
		return fmt.Errorf("prism %d: %w: got %d, want [%d, %d]", p.ID, ErrVertexCount, n, MinVertexCount, MaxVertexCount)
	}
	for i, v := range p.Vertices {
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("prism %d vertex %d: %w", p.ID, i, ErrInvalidVertex)
			}
		}
	}
	if !(p.Height > 0) || math.IsInf(p.Height, 0) || math.IsNaN(p.MidY) || math.IsInf(p.MidY, 0) {
		return fmt.Errorf("prism %d: %w: height=%v midY=%v", p.ID, ErrInvalidHeight, p.Height, p.MidY)
	}

	return nil
}

func (p *Prism) VertexCount() int {
	return len(p.Vertices)
}

// ComputeBounds refreshes the XZ rectangle from the current vertex positions
func (p *Prism) ComputeBounds() {
	p.bounds = p.CurrentBounds()
}

// CurrentBounds measures the XZ rectangle of the current vertex positions
// without storing it.
func (p *Prism) CurrentBounds() Bounds {
	first := mgl64.Vec2{p.Vertices[0].X(), p.Vertices[0].Z()}
	b := Bounds{Min: first, Max: first}
	for _, v := range p.Vertices[1:] {
		b = b.Expand(mgl64.Vec2{v.X(), v.Z()})
	}

	return b
}

// GetBounds returns the rectangle computed by the last ComputeBounds call
func (p *Prism) GetBounds() Bounds {
	return p.bounds
}

// Support returns the vertex furthest along direction
func (p *Prism) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return Support(p.Vertices, direction)
}

// Translate moves every vertex in place
func (p *Prism) Translate(offset mgl64.Vec3) {
	for i := range p.Vertices {
		p.Vertices[i] = p.Vertices[i].Add(offset)
	}
}

// VerticalExtent returns the bottom and top heights of the prism
func (p *Prism) VerticalExtent() (float64, float64) {
	half := p.Height / 2
	return p.MidY - half, p.MidY + half
}

// Outline returns the bottom and top rings of the wireframe: the vertex ring
// placed at both ends of the vertical extent.
func (p *Prism) Outline() (bottom, top []mgl64.Vec3) {
	yMin, yMax := p.VerticalExtent()
	bottom = make([]mgl64.Vec3, len(p.Vertices))
	top = make([]mgl64.Vec3, len(p.Vertices))
	for i, v := range p.Vertices {
		bottom[i] = mgl64.Vec3{v.X(), yMin, v.Z()}
		top[i] = mgl64.Vec3{v.X(), yMax, v.Z()}
	}

	return bottom, top
}

// Support returns the point of points maximizing the dot product with direction.
// Ties keep the first point encountered.
func Support(points []mgl64.Vec3, direction mgl64.Vec3) mgl64.Vec3 {
	highest := -math.MaxFloat64
	var support mgl64.Vec3

	for _, v := range points {
		if dot := v.Dot(direction); dot > highest {
			highest = dot
			support = v
		}
	}

	return support
}
