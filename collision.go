package prism

import (
	"fmt"

	"github.com/akmonengine/prism/actor"
	"github.com/akmonengine/prism/constraint"
	"github.com/akmonengine/prism/epa"
	"github.com/akmonengine/prism/gjk"
)

// PairKey returns the symmetric key of the unordered pair (i, j), for ids in [0, n).
func PairKey(i, j, n int) int {
	if i < j {
		i, j = j, i
	}
	return i*n + j
}

// BroadPhase refreshes the bounds of every prism, registers them in id order
// and returns each candidate pair once, in discovery order.
// The tree must be empty: registering a prism twice yields no pair.
func BroadPhase(tree *QuadTree, prisms []*actor.Prism, workersCount int) []Pair {
	task(workersCount, prisms, func(p *actor.Prism) {
		p.ComputeBounds()
	})

	n := len(prisms)
	seen := make(map[int]struct{}, n)
	pairs := make([]Pair, 0, n)

	for _, p := range prisms {
		for _, pair := range tree.Register(p) {
			key := PairKey(pair.PrismA.ID, pair.PrismB.ID, n)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			pairs = append(pairs, pair)
		}
	}

	return pairs
}

// Collide runs the narrow phase on one candidate pair.
// It returns nil without error if the prisms do not overlap, and an error if the
// geometry degenerates: the pair must then be treated as non-colliding.
func Collide(pair Pair, opts epa.Options) (*constraint.ContactConstraint, error) {
	simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
	defer gjk.SimplexPool.Put(simplex)

	collision, err := gjk.GJK(pair.PrismA, pair.PrismB, simplex)
	if err != nil {
		return nil, fmt.Errorf("pair (%d, %d): %w", pair.PrismA.ID, pair.PrismB.ID, err)
	}
	if !collision {
		return nil, nil
	}

	penetration, err := epa.EPA(pair.PrismA, pair.PrismB, simplex, opts)
	if err != nil {
		return nil, fmt.Errorf("pair (%d, %d): %w", pair.PrismA.ID, pair.PrismB.ID, err)
	}

	return constraint.NewContactConstraint(pair.PrismA, pair.PrismB, penetration), nil
}
