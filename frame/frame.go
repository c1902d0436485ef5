// Package frame captures the visual state of a World after a tick and
// streams it as msgpack to a renderer: prism outlines, collision flags,
// the region box and the spatial index cells.
package frame

import (
	"fmt"
	"io"

	"github.com/akmonengine/prism"
	"github.com/vmihailenco/msgpack/v5"
)

type Frame struct {
	Tick   uint64         `msgpack:"tick"`
	Region Region         `msgpack:"r"`
	Prisms []PrismOutline `msgpack:"p"`
	Cells  []Cell         `msgpack:"c"`
}

type Region struct {
	Center   [3]float64 `msgpack:"c"`
	RadiusXZ float64    `msgpack:"rxz"`
	RadiusY  float64    `msgpack:"ry"`
}

// PrismOutline is drawn as two rings joined by vertical edges.
// Bounds is the XZ rectangle {min, max} the last broad phase used, it lags
// the rings by the resolution of that tick.
type PrismOutline struct {
	ID        int           `msgpack:"id"`
	Colliding bool          `msgpack:"col"`
	Bottom    [][3]float64  `msgpack:"b"`
	Top       [][3]float64  `msgpack:"t"`
	Bounds    [2][2]float64 `msgpack:"bb"`
}

// Cell is a leaf of the spatial index, Min and Max on the XZ plane
type Cell struct {
	Min     [2]float64 `msgpack:"min"`
	Max     [2]float64 `msgpack:"max"`
	Members []int      `msgpack:"m"`
}

// Capture copies the state of the world; it must not run during a Step.
func Capture(w *prism.World) Frame {
	center, radiusXZ, radiusY := w.RegionBounds()

	f := Frame{
		Tick: w.Tick(),
		Region: Region{
			Center:   center,
			RadiusXZ: radiusXZ,
			RadiusY:  radiusY,
		},
		Prisms: make([]PrismOutline, len(w.Prisms)),
	}

	for i, p := range w.Prisms {
		bottom, top := p.Outline()
		bounds := p.GetBounds()
		f.Prisms[i] = PrismOutline{
			ID:        p.ID,
			Colliding: w.IsColliding(p.ID),
			Bottom:    make([][3]float64, len(bottom)),
			Top:       make([][3]float64, len(top)),
			Bounds:    [2][2]float64{bounds.Min, bounds.Max},
		}
		for j := range bottom {
			f.Prisms[i].Bottom[j] = bottom[j]
			f.Prisms[i].Top[j] = top[j]
		}
	}

	leaves := w.SpatialIndexSnapshot().Leaves()
	f.Cells = make([]Cell, len(leaves))
	for i, leaf := range leaves {
		f.Cells[i] = Cell{
			Min:     leaf.Bounds.Min,
			Max:     leaf.Bounds.Max,
			Members: leaf.Members,
		}
	}

	return f
}

// Encoder writes a stream of frames
type Encoder struct {
	enc *msgpack.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return &Encoder{enc: enc}
}

func (e *Encoder) Encode(f Frame) error {
	if err := e.enc.Encode(&f); err != nil {
		return fmt.Errorf("frame %d: %w", f.Tick, err)
	}
	return nil
}

// Decoder reads a stream written by an Encoder. Decode returns io.EOF at the end of the stream.
type Decoder struct {
	dec *msgpack.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: msgpack.NewDecoder(r)}
}

func (d *Decoder) Decode() (Frame, error) {
	var f Frame
	if err := d.dec.Decode(&f); err != nil {
		return Frame{}, err
	}
	return f, nil
}

func Marshal(f Frame) ([]byte, error) {
	return msgpack.Marshal(&f)
}

func Unmarshal(data []byte) (Frame, error) {
	var f Frame
	err := msgpack.Unmarshal(data, &f)
	return f, err
}
