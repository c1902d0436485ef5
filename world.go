package prism

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/akmonengine/prism/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrShapeCount = errors.New("prism: shape count mismatch")
	ErrShapeID    = errors.New("prism: invalid shape id")
)

// TickStats summarizes one Step
type TickStats struct {
	Tick       uint64
	Candidates int
	Collisions int
	// Degenerate pairs were skipped as non-colliding
	Degenerate int
}

// World owns the prisms and runs the collision ticks.
// It is not safe for concurrent use: a tick mutates the prisms in place.
type World struct {
	Config Config
	// Prisms indexed by id
	Prisms []*actor.Prism
	Events Events

	colliding []bool
	tick      uint64
	index     *QuadTree
	logger    *log.Logger
}

// NewWorld validates the configuration and takes ownership of the prisms.
// Prism ids must be unique and dense in [0, cfg.ShapeCount).
func NewWorld(cfg Config, prisms []*actor.Prism) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(prisms) != cfg.ShapeCount {
		return nil, fmt.Errorf("%w: got %d prisms, want %d", ErrShapeCount, len(prisms), cfg.ShapeCount)
	}

	ordered := make([]*actor.Prism, len(prisms))
	for _, p := range prisms {
		if p == nil {
			return nil, fmt.Errorf("%w: nil prism", ErrShapeID)
		}
		if p.ID < 0 || p.ID >= len(prisms) {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrShapeID, p.ID, len(prisms))
		}
		if ordered[p.ID] != nil {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrShapeID, p.ID)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		p.ComputeBounds()
		ordered[p.ID] = p
	}

	return &World{
		Config:    cfg,
		Prisms:    ordered,
		Events:    NewEvents(),
		colliding: make([]bool, len(ordered)),
		logger:    cfg.logger(),
	}, nil
}

// Step runs exactly one tick: bounds, spatial index, candidate pairs, GJK, EPA
// and positional resolution, in that order. Pairs are resolved in discovery
// order, each one seeing the corrections of the pairs before it.
func (w *World) Step() TickStats {
	w.tick++
	clear(w.colliding)

	w.index = w.newIndex()
	pairs := BroadPhase(w.index, w.Prisms, w.Config.Workers)

	stats := TickStats{Tick: w.tick, Candidates: len(pairs)}
	opts := w.Config.epaOptions()

	for _, pair := range pairs {
		contact, err := Collide(pair, opts)
		if err != nil {
			stats.Degenerate++
			w.logger.Printf("tick %d: skipping %v", w.tick, err)
			continue
		}
		if contact == nil {
			continue
		}

		contact.SolvePosition()
		w.colliding[pair.PrismA.ID] = true
		w.colliding[pair.PrismB.ID] = true
		w.Events.recordCollision(pair.PrismA, pair.PrismB)
		stats.Collisions++
	}

	w.Events.flush()

	return stats
}

func (w *World) newIndex() *QuadTree {
	center := mgl64.Vec2{w.Config.RegionCenter.X(), w.Config.RegionCenter.Z()}
	return NewQuadTree(w.Config.QuadtreeDepth, center, w.Config.RegionRadiusXZ)
}

// IsColliding reports whether the prism was separated during the last tick.
// Unknown ids are never colliding.
func (w *World) IsColliding(id int) bool {
	if id < 0 || id >= len(w.colliding) {
		return false
	}
	return w.colliding[id]
}

func (w *World) RegionBounds() (center mgl64.Vec3, radiusXZ, radiusY float64) {
	return w.Config.RegionCenter, w.Config.RegionRadiusXZ, w.Config.RegionRadiusY
}

// SpatialIndexSnapshot returns the partition of the last tick. Before the first
// tick the index is built on demand from the current positions, the prisms
// are left untouched.
func (w *World) SpatialIndexSnapshot() Quadrant {
	if w.index == nil {
		index := w.newIndex()
		for _, p := range w.Prisms {
			index.register(p, p.CurrentBounds(), nil)
		}
		return index.Snapshot()
	}
	return w.index.Snapshot()
}

// Tick returns the number of ticks run so far
func (w *World) Tick() uint64 {
	return w.tick
}

// Run steps the world every Config.TickInterval until ctx is done.
// A running tick always completes; onTick may be nil.
func (w *World) Run(ctx context.Context, onTick func(TickStats)) error {
	ticker := time.NewTicker(w.Config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			stats := w.Step()
			if onTick != nil {
				onTick(stats)
			}
		}
	}
}
