package epa

import (
	"errors"
	"math"
	"testing"

	"github.com/akmonengine/prism/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

func TestEdgeEqual(t *testing.T) {
	e := Edge{A: mgl64.Vec3{1, 0, 0}, B: mgl64.Vec3{0, 0, 1}}

	if !e.Equal(Edge{A: mgl64.Vec3{1, 0, 0}, B: mgl64.Vec3{0, 0, 1}}) {
		t.Error("identical edges should be equal")
	}
	if e.Equal(Edge{A: mgl64.Vec3{0, 0, 1}, B: mgl64.Vec3{1, 0, 0}}) {
		t.Error("reversed edges should not be equal")
	}
}

func TestEdgeDistance(t *testing.T) {
	tests := []struct {
		name     string
		edge     Edge
		expected float64
	}{
		{"vertical line x=0.5", Edge{A: mgl64.Vec3{0.5, 0, 0}, B: mgl64.Vec3{0.5, 0, 1}}, 0.5},
		{"horizontal line z=-2", Edge{A: mgl64.Vec3{-1, 0, -2}, B: mgl64.Vec3{3, 0, -2}}, 2},
		{"line through origin", Edge{A: mgl64.Vec3{1, 0, 0}, B: mgl64.Vec3{-1, 0, 0}}, 0},
		{"diagonal", Edge{A: mgl64.Vec3{1, 0, 0}, B: mgl64.Vec3{0, 0, 1}}, math.Sqrt2 / 2},
		{"height is ignored", Edge{A: mgl64.Vec3{0.5, 7, 0}, B: mgl64.Vec3{0.5, -3, 1}}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance, err := tt.edge.Distance()
			if err != nil {
				t.Fatalf("Distance returned error: %v", err)
			}
			if math.Abs(distance-tt.expected) > 1e-12 {
				t.Errorf("Distance = %v, want %v", distance, tt.expected)
			}
		})
	}

	t.Run("zero length", func(t *testing.T) {
		e := Edge{A: mgl64.Vec3{1, 0, 1}, B: mgl64.Vec3{1, 0, 1}}
		if _, err := e.Distance(); !errors.Is(err, ErrDegenerateEdge) {
			t.Errorf("Distance error = %v, want ErrDegenerateEdge", err)
		}
	})
}

func TestEdgeNormal(t *testing.T) {
	tests := []struct {
		name     string
		edge     Edge
		interior mgl64.Vec3
		expected mgl64.Vec3
	}{
		{
			name:     "points away from origin",
			edge:     Edge{A: mgl64.Vec3{0.5, 0, -1}, B: mgl64.Vec3{0.5, 0, 1}},
			expected: mgl64.Vec3{1, 0, 0},
		},
		{
			name:     "orientation does not depend on endpoint order",
			edge:     Edge{A: mgl64.Vec3{0.5, 0, 1}, B: mgl64.Vec3{0.5, 0, -1}},
			expected: mgl64.Vec3{1, 0, 0},
		},
		{
			name:     "through origin uses interior",
			edge:     Edge{A: mgl64.Vec3{1, 0, 0}, B: mgl64.Vec3{-1, 0, 0}},
			interior: mgl64.Vec3{0, 0, 0.5},
			expected: mgl64.Vec3{0, 0, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normal, err := tt.edge.Normal(tt.interior)
			if err != nil {
				t.Fatalf("Normal returned error: %v", err)
			}
			if !vec3ApproxEqual(normal, tt.expected, 1e-12) {
				t.Errorf("Normal = %v, want %v", normal, tt.expected)
			}
		})
	}

	t.Run("zero length", func(t *testing.T) {
		e := Edge{A: mgl64.Vec3{1, 0, 1}, B: mgl64.Vec3{1, 0, 1}}
		if _, err := e.Normal(mgl64.Vec3{}); !errors.Is(err, ErrDegenerateEdge) {
			t.Errorf("Normal error = %v, want ErrDegenerateEdge", err)
		}
	})

	t.Run("interior on the edge line", func(t *testing.T) {
		e := Edge{A: mgl64.Vec3{1, 0, 0}, B: mgl64.Vec3{-1, 0, 0}}
		if _, err := e.Normal(mgl64.Vec3{3, 0, 0}); !errors.Is(err, ErrDegenerateEdge) {
			t.Errorf("Normal error = %v, want ErrDegenerateEdge", err)
		}
	})
}

func TestPolytopeBuildInitialEdges(t *testing.T) {
	t.Run("three distinct points", func(t *testing.T) {
		p := &Polytope{}
		simplex := &gjk.Simplex{Points: [3]mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 0, 1}}, Count: 3}

		if err := p.BuildInitialEdges(simplex); err != nil {
			t.Fatalf("BuildInitialEdges returned error: %v", err)
		}

		expected := []Edge{
			{A: mgl64.Vec3{1, 0, 0}, B: mgl64.Vec3{-1, 0, 0}},
			{A: mgl64.Vec3{1, 0, 0}, B: mgl64.Vec3{0, 0, 1}},
			{A: mgl64.Vec3{-1, 0, 0}, B: mgl64.Vec3{0, 0, 1}},
		}
		if len(p.Edges()) != len(expected) {
			t.Fatalf("got %d edges, want %d", len(p.Edges()), len(expected))
		}
		for i, e := range p.Edges() {
			if !e.Equal(expected[i]) {
				t.Errorf("edge %d = %v, want %v", i, e, expected[i])
			}
		}
	})

	t.Run("duplicate points are deduplicated", func(t *testing.T) {
		p := &Polytope{}
		simplex := &gjk.Simplex{Points: [3]mgl64.Vec3{{1, 0, 0}, {1, 0, 0}, {0, 0, 1}}, Count: 3}

		if err := p.BuildInitialEdges(simplex); err != nil {
			t.Fatalf("BuildInitialEdges returned error: %v", err)
		}
		if len(p.Edges()) != 2 {
			t.Errorf("got %d edges, want 2", len(p.Edges()))
		}
	})

	t.Run("wrong simplex size", func(t *testing.T) {
		p := &Polytope{}
		err := p.BuildInitialEdges(&gjk.Simplex{Count: 2})
		if !errors.Is(err, ErrInvalidSimplex) {
			t.Errorf("error = %v, want ErrInvalidSimplex", err)
		}
	})
}

func TestPolytopeClosestAndSplit(t *testing.T) {
	p := &Polytope{}
	simplex := &gjk.Simplex{Points: [3]mgl64.Vec3{{3, 0, -1}, {-3, 0, -1}, {0, 0, 3}}, Count: 3}
	if err := p.BuildInitialEdges(simplex); err != nil {
		t.Fatalf("BuildInitialEdges returned error: %v", err)
	}

	index, distance, err := p.ClosestEdgeIndex()
	if err != nil {
		t.Fatalf("ClosestEdgeIndex returned error: %v", err)
	}
	if index != 0 || distance != 1 {
		t.Fatalf("closest = (%d, %v), want (0, 1)", index, distance)
	}

	support := mgl64.Vec3{0, 0, -2}
	p.Split(index, support)

	expected := []Edge{
		{A: mgl64.Vec3{3, 0, -1}, B: mgl64.Vec3{0, 0, 3}},
		{A: mgl64.Vec3{-3, 0, -1}, B: mgl64.Vec3{0, 0, 3}},
		{A: mgl64.Vec3{3, 0, -1}, B: support},
		{A: support, B: mgl64.Vec3{-3, 0, -1}},
	}
	if len(p.Edges()) != len(expected) {
		t.Fatalf("got %d edges, want %d", len(p.Edges()), len(expected))
	}
	for i, e := range p.Edges() {
		if !e.Equal(expected[i]) {
			t.Errorf("edge %d = %v, want %v", i, e, expected[i])
		}
	}

	centroid := p.Centroid()
	if !vec3ApproxEqual(centroid, mgl64.Vec3{0, 0, -0.25}, 1e-12) {
		t.Errorf("Centroid = %v, want (0, 0, -0.25)", centroid)
	}
}
