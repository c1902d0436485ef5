// Package scene generates randomized prism populations for a World.
//
// Every prism is a unit ring of 3 to 10 points, half of them regular polygons
// and half irregular convex rings, rotated around Y, scaled and placed at a
// random position of the region.
package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/akmonengine/prism/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ringRadius is the radius of the local unit ring, its height is 1
const ringRadius = 0.5

var ErrInvalidConfig = errors.New("scene: invalid config")

type Config struct {
	Count          int
	RegionCenter   mgl64.Vec3
	RegionRadiusXZ float64
	RegionRadiusY  float64
	// Scales are drawn in [MinScale, MaxScaleXZ] and [MinScale, MaxScaleY]
	MinScale   float64
	MaxScaleXZ float64
	MaxScaleY  float64
}

func DefaultConfig() Config {
	return Config{
		Count:          10,
		RegionRadiusXZ: 5,
		RegionRadiusY:  5,
		MinScale:       0.2,
		MaxScaleXZ:     5,
		MaxScaleY:      5,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Count <= 0:
		return fmt.Errorf("%w: count %d", ErrInvalidConfig, c.Count)
	case !(c.RegionRadiusXZ > 0) || !(c.RegionRadiusY > 0):
		return fmt.Errorf("%w: region radii (%v, %v)", ErrInvalidConfig, c.RegionRadiusXZ, c.RegionRadiusY)
	case !(c.MinScale > 0):
		return fmt.Errorf("%w: min scale %v", ErrInvalidConfig, c.MinScale)
	case c.MaxScaleXZ < c.MinScale || c.MaxScaleY < c.MinScale:
		return fmt.Errorf("%w: max scales (%v, %v) below min scale %v", ErrInvalidConfig, c.MaxScaleXZ, c.MaxScaleY, c.MinScale)
	}
	return nil
}

// Generate creates cfg.Count prisms with ids 0 to Count-1.
// The same rng seed always yields the same scene.
func Generate(cfg Config, rng *rand.Rand) ([]*actor.Prism, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prisms := make([]*actor.Prism, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		pointCount := int(math.Round(3 + rng.Float64()*7))
		yRotation := rng.Float64() * 2 * math.Pi
		scaleXZ := between(rng, cfg.MinScale, cfg.MaxScaleXZ)
		scaleY := between(rng, cfg.MinScale, cfg.MaxScaleY)
		position := cfg.RegionCenter.Add(mgl64.Vec3{
			between(rng, -cfg.RegionRadiusXZ, cfg.RegionRadiusXZ),
			between(rng, -cfg.RegionRadiusY, cfg.RegionRadiusY),
			between(rng, -cfg.RegionRadiusXZ, cfg.RegionRadiusXZ),
		})

		var ring []mgl64.Vec3
		if rng.Float64() < 0.5 {
			ring = RegularRing(pointCount)
		} else {
			ring = IrregularRing(pointCount, rng)
		}

		transform := actor.NewTransform()
		transform.Position = position
		transform.Rotation = mgl64.QuatRotate(yRotation, mgl64.Vec3{0, 1, 0})
		transform.Scale = mgl64.Vec3{scaleXZ, scaleY, scaleXZ}

		p, err := actor.NewPrism(i, transform.ApplyAll(ring), position.Y(), scaleY)
		if err != nil {
			return nil, fmt.Errorf("scene: prism %d: %w", i, err)
		}
		prisms = append(prisms, p)
	}

	return prisms, nil
}

// RegularRing returns the top ring of a unit regular prism
func RegularRing(pointCount int) []mgl64.Vec3 {
	angles := make([]float64, pointCount)
	for k := range angles {
		angles[k] = 2 * math.Pi * float64(k) / float64(pointCount)
	}
	return ringAt(angles)
}

// IrregularRing returns the top ring of a unit irregular prism: sorted random
// angles on the unit circle always give a convex ring.
func IrregularRing(pointCount int, rng *rand.Rand) []mgl64.Vec3 {
	angles := make([]float64, pointCount)
	for k := range angles {
		angles[k] = rng.Float64() * 2 * math.Pi
	}
	sort.Float64s(angles)
	return ringAt(angles)
}

func ringAt(angles []float64) []mgl64.Vec3 {
	ring := make([]mgl64.Vec3, len(angles))
	for k, a := range angles {
		ring[k] = mgl64.Vec3{ringRadius * math.Cos(a), ringRadius, ringRadius * math.Sin(a)}
	}
	return ring
}

func between(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
