// Package pipeline orchestrates the fast FTLE computation: per-window
// step flow maps first, then trajectory composition by interpolation so
// no particle integration is ever repeated (the unidirectional method of
// Brunton and Rowley).
package pipeline

import (
	"context"
	"fmt"

	"github.com/george9932/LCS-FTLE-Optimized/internal/field"
	"github.com/george9932/LCS-FTLE-Optimized/internal/flow"
	"github.com/george9932/LCS-FTLE-Optimized/internal/ftle"
	"github.com/george9932/LCS-FTLE-Optimized/internal/results"
	"github.com/george9932/LCS-FTLE-Optimized/internal/simparams"
)

// Phase names reported to observers.
const (
	PhaseGenData  = "gendata"
	PhaseStepMaps = "stepmaps"
	PhaseCompose  = "compose"
)

// Progress is one unit of observable work.
type Progress struct {
	Phase   string
	Step    int // 1-based
	Total   int
	T0, T1  float64
	MaxFTLE float64 // compose phase only
}

// Observer receives progress updates; calls are sequential.
type Observer func(Progress)

type Pipeline struct {
	Params   *simparams.Params
	Layout   *results.Layout
	Integ    flow.Integrator
	Substeps int

	observers []Observer
	stepMaps  map[int]*field.VectorField
}

func New(params *simparams.Params, layout *results.Layout, integ flow.Integrator) *Pipeline {
	return &Pipeline{
		Params: params,
		Layout: layout,
		Integ:  integ,
	}
}

func (p *Pipeline) AddObserver(fn Observer) { p.observers = append(p.observers, fn) }

func (p *Pipeline) notify(pr Progress) {
	for _, fn := range p.observers {
		fn(pr)
	}
}

// grid is the computation grid the FTLE field lives on.
func (p *Pipeline) grid() (*field.Grid, error) {
	return field.NewGrid(p.Params.XMin, p.Params.XMax, p.Params.YMin, p.Params.YMax, p.Params.NX, p.Params.NY)
}

// dataGrid is the coarser grid the velocity snapshots live on.
func (p *Pipeline) dataGrid() (*field.Grid, error) {
	return field.NewGrid(p.Params.XMin, p.Params.XMax, p.Params.YMin, p.Params.YMax, p.Params.DataNX, p.Params.DataNY)
}

// stepTime is the start time of step flow map i, derived from the index
// so file names never drift from float accumulation.
func (p *Pipeline) stepTime(i int) float64 {
	return p.Params.InitialTime() + float64(i)*p.Params.SignedDeltaT()
}

// GenerateData samples the analytic model on the data grid at every data
// timestep and writes one snapshot file per time.
func (p *Pipeline) GenerateData(ctx context.Context, model *flow.DoubleGyre) error {
	g, err := p.dataGrid()
	if err != nil {
		return err
	}
	if err := p.Layout.EnsureDirs(); err != nil {
		return err
	}

	total := int((p.Params.TMax-p.Params.TMin)/p.Params.DataDeltaT+1e-12) + 1
	for k := 0; ; k++ {
		t := p.Params.TMin + float64(k)*p.Params.DataDeltaT
		if p.Params.TMax-t < -1e-12 {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		vf := model.Sample(g, t)
		if err := vf.WriteText(p.Layout.VelocityPath(t)); err != nil {
			return err
		}
		p.notify(Progress{Phase: PhaseGenData, Step: k + 1, Total: total, T0: t, T1: t})
	}
	return nil
}

// ComputeStepMaps advects the uniform computation grid across each of the
// `steps` windows, always restarting from the uniform grid, and persists
// every window's flow map.
func (p *Pipeline) ComputeStepMaps(ctx context.Context) error {
	g, err := p.grid()
	if err != nil {
		return err
	}
	dg, err := p.dataGrid()
	if err != nil {
		return err
	}
	if err := p.Layout.EnsureDirs(); err != nil {
		return err
	}

	vel := flow.NewDiscreteVelocity(dg, p.Params.TMin, p.Params.TMax, p.Params.DataDeltaT, p.Layout.VelocityPath)
	dt := p.Params.SignedDeltaT()

	for i := 0; i < p.Params.Steps; i++ {
		t0 := p.stepTime(i)
		fm, err := flow.AdvectGrid(ctx, p.Integ, vel, g, t0, dt, p.Substeps)
		if err != nil {
			return fmt.Errorf("pipeline: step flow map %d: %w", i+1, err)
		}
		fm.Time = t0
		if err := fm.WriteBinary(p.Layout.StepMapPath(t0)); err != nil {
			return err
		}
		p.notify(Progress{Phase: PhaseStepMaps, Step: i + 1, Total: p.Params.Steps, T0: t0, T1: t0 + dt})
	}
	return nil
}

// loadStepMap returns step flow map i, caching it: composition touches
// every map once per outer iteration.
func (p *Pipeline) loadStepMap(i int, g *field.Grid) (*field.VectorField, error) {
	if fm, ok := p.stepMaps[i]; ok {
		return fm, nil
	}
	fm, err := field.ReadBinary(p.Layout.StepMapPath(p.stepTime(i)), g)
	if err != nil {
		return nil, err
	}
	if p.stepMaps == nil {
		p.stepMaps = make(map[int]*field.VectorField)
	}
	p.stepMaps[i] = fm
	return fm, nil
}

// ComposeFTLE builds, for each start time, the full trajectory to the
// final time by chaining step-map interpolations, then computes and
// writes the FTLE field.
func (p *Pipeline) ComposeFTLE(ctx context.Context) error {
	g, err := p.grid()
	if err != nil {
		return err
	}

	dt := p.Params.SignedDeltaT()
	steps := p.Params.Steps

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Trajectories start i+1 windows before the final time.
		firstStep := steps - 1 - i
		t0 := p.stepTime(firstStep)

		cur := field.NewVectorField(g)
		cur.SetUniform()
		cur.Time = t0

		for ii := 0; ii <= i; ii++ {
			sm, err := p.loadStepMap(firstStep+ii, g)
			if err != nil {
				return fmt.Errorf("pipeline: compose step %d: %w", i+1, err)
			}
			next := field.NewVectorField(g)
			flow.ParallelFor(g.Len(), 4*g.NY, func(start, end int) {
				for k := start; k < end; k++ {
					next.Vals[k] = sm.Interp(cur.Vals[k])
				}
			})
			next.ClampOutOfBound()
			next.Time = cur.Time + dt
			cur = next
		}

		horizon := float64(i+1) * p.Params.CalcDeltaT()
		f, err := ftle.Compute(cur, horizon)
		if err != nil {
			return fmt.Errorf("pipeline: ftle at t=%s: %w", p.Params.FormatTime(t0), err)
		}
		f.Time = t0
		if err := f.WriteText(p.Layout.FTLEPath(t0)); err != nil {
			return err
		}

		_, max, _ := f.MinMax()
		p.notify(Progress{Phase: PhaseCompose, Step: i + 1, Total: steps, T0: t0, T1: p.Params.FinalTime(), MaxFTLE: max})
	}
	return nil
}

// Run executes the full computation: step flow maps, then composition.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.ComputeStepMaps(ctx); err != nil {
		return err
	}
	return p.ComposeFTLE(ctx)
}
