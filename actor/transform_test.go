package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTransformApply(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		tr := NewTransform()
		p := mgl64.Vec3{1, 2, 3}
		if got := tr.Apply(p); !got.ApproxEqual(p) {
			t.Errorf("Apply = %v, want %v", got, p)
		}
	})

	t.Run("scale rotate translate", func(t *testing.T) {
		tr := Transform{
			Position: mgl64.Vec3{10, 0, 0},
			Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}),
			Scale:    mgl64.Vec3{2, 1, 1},
		}
		// (1,0,0) scaled to (2,0,0), rotated 90° around Y to (0,0,-2)
		got := tr.Apply(mgl64.Vec3{1, 0, 0})
		want := mgl64.Vec3{10, 0, -2}
		if !got.ApproxEqualThreshold(want, 1e-9) {
			t.Errorf("Apply = %v, want %v", got, want)
		}
	})

	t.Run("apply all keeps order", func(t *testing.T) {
		tr := NewTransform()
		tr.Position = mgl64.Vec3{0, 1, 0}
		world := tr.ApplyAll([]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}})
		if world[0] != (mgl64.Vec3{0, 1, 0}) || world[1] != (mgl64.Vec3{1, 1, 0}) {
			t.Errorf("ApplyAll = %v", world)
		}
	})
}
