package prism

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/akmonengine/prism/epa"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DEFAULT_WORKERS = 1

	// MaxQuadtreeDepth bounds the eager build: 4^depth leaves are allocated every tick
	MaxQuadtreeDepth = 10

	// MaxShapeCount keeps max*N + min below the int range on 32-bit platforms,
	// so pair keys stay injective.
	MaxShapeCount = 46340
)

var ErrInvalidConfig = errors.New("prism: invalid config")

// Config is the configuration surface of a World.
type Config struct {
	ShapeCount int

	// The simulation region is a box centered on RegionCenter
	RegionCenter   mgl64.Vec3
	RegionRadiusXZ float64
	RegionRadiusY  float64

	// QuadtreeDepth is the fixed depth of the spatial index, 0 means a single leaf
	QuadtreeDepth int
	TickInterval  time.Duration

	// Narrow phase tuning
	EPAThreshold     float64
	SkinMargin       float64
	EPAMaxIterations int

	// Workers refreshing the prism bounds before the broad phase
	Workers int

	// Logger receives skipped pairs, nil means log.Default()
	Logger *log.Logger
}

func DefaultConfig() Config {
	return Config{
		ShapeCount:       10,
		RegionRadiusXZ:   5,
		RegionRadiusY:    5,
		QuadtreeDepth:    5,
		TickInterval:     500 * time.Millisecond,
		EPAThreshold:     epa.DefaultThreshold,
		SkinMargin:       epa.DefaultSkin,
		EPAMaxIterations: epa.DefaultMaxIterations,
		Workers:          DEFAULT_WORKERS,
	}
}

// Validate rejects every value a World cannot run with.
func (c Config) Validate() error {
	switch {
	case c.ShapeCount <= 0 || c.ShapeCount > MaxShapeCount:
		return fmt.Errorf("%w: shape count %d not in [1, %d]", ErrInvalidConfig, c.ShapeCount, MaxShapeCount)
	case !positive(c.RegionRadiusXZ):
		return fmt.Errorf("%w: region XZ radius %v", ErrInvalidConfig, c.RegionRadiusXZ)
	case !positive(c.RegionRadiusY):
		return fmt.Errorf("%w: region Y radius %v", ErrInvalidConfig, c.RegionRadiusY)
	case !finite(c.RegionCenter):
		return fmt.Errorf("%w: region center %v", ErrInvalidConfig, c.RegionCenter)
	case c.QuadtreeDepth < 0 || c.QuadtreeDepth > MaxQuadtreeDepth:
		return fmt.Errorf("%w: quadtree depth %d not in [0, %d]", ErrInvalidConfig, c.QuadtreeDepth, MaxQuadtreeDepth)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval %v", ErrInvalidConfig, c.TickInterval)
	case !positive(c.EPAThreshold):
		return fmt.Errorf("%w: EPA threshold %v", ErrInvalidConfig, c.EPAThreshold)
	case c.SkinMargin < 0 || math.IsNaN(c.SkinMargin) || math.IsInf(c.SkinMargin, 0):
		return fmt.Errorf("%w: skin margin %v", ErrInvalidConfig, c.SkinMargin)
	case c.EPAMaxIterations <= 0:
		return fmt.Errorf("%w: EPA max iterations %d", ErrInvalidConfig, c.EPAMaxIterations)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}

	return nil
}

func (c Config) epaOptions() epa.Options {
	return epa.Options{
		Threshold:     c.EPAThreshold,
		Skin:          c.SkinMargin,
		MaxIterations: c.EPAMaxIterations,
	}
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
