package flow

import (
	"fmt"
	"math"
	"sync"

	"github.com/george9932/LCS-FTLE-Optimized/internal/field"
)

// maxCachedFrames bounds how many velocity snapshots stay resident while
// advecting; the advection sweeps time monotonically so only neighboring
// frames are ever hot.
const maxCachedFrames = 8

// DiscreteVelocity interpolates velocity data stored as one gridded
// snapshot per data timestep: bilinear in space, linear in time between
// the two bracketing snapshots.
type DiscreteVelocity struct {
	Grid   *field.Grid
	TMin   float64
	TMax   float64
	DeltaT float64

	// PathFor maps a data time to its snapshot file.
	PathFor func(t float64) string

	mu    sync.Mutex
	cache map[int]*field.VectorField
}

func NewDiscreteVelocity(g *field.Grid, tMin, tMax, deltaT float64, pathFor func(float64) string) *DiscreteVelocity {
	return &DiscreteVelocity{
		Grid:    g,
		TMin:    tMin,
		TMax:    tMax,
		DeltaT:  deltaT,
		PathFor: pathFor,
		cache:   make(map[int]*field.VectorField),
	}
}

func (d *DiscreteVelocity) frames() int {
	return int(math.Round((d.TMax-d.TMin)/d.DeltaT)) + 1
}

func (d *DiscreteVelocity) frameTime(k int) float64 {
	return d.TMin + float64(k)*d.DeltaT
}

func (d *DiscreteVelocity) frame(k int) (*field.VectorField, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if f, ok := d.cache[k]; ok {
		return f, nil
	}
	path := d.PathFor(d.frameTime(k))
	f, err := field.ReadVectorText(path, d.Grid)
	if err != nil {
		return nil, fmt.Errorf("flow: load velocity snapshot %d: %w", k, err)
	}
	if len(d.cache) >= maxCachedFrames {
		// Evict the frame farthest from the one being loaded.
		worst, worstDist := -1, -1
		for idx := range d.cache {
			dist := idx - k
			if dist < 0 {
				dist = -dist
			}
			if dist > worstDist {
				worst, worstDist = idx, dist
			}
		}
		delete(d.cache, worst)
	}
	d.cache[k] = f
	return f, nil
}

func (d *DiscreteVelocity) Velocity(p field.Vec2, t float64) (field.Vec2, error) {
	// Clamp to the covered time range; RK4 probes half a step past the
	// last snapshot on the final window.
	if t < d.TMin {
		t = d.TMin
	}
	if t > d.TMax {
		t = d.TMax
	}

	s := (t - d.TMin) / d.DeltaT
	k := int(s)
	if k > d.frames()-2 {
		k = d.frames() - 2
	}
	w := s - float64(k)

	fa, err := d.frame(k)
	if err != nil {
		return field.Vec2{}, err
	}
	fb, err := d.frame(k + 1)
	if err != nil {
		return field.Vec2{}, err
	}

	va := fa.Interp(p)
	vb := fb.Interp(p)
	return field.Vec2{
		X: (1-w)*va.X + w*vb.X,
		Y: (1-w)*va.Y + w*vb.Y,
	}, nil
}
