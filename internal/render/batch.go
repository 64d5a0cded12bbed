package render

import (
	"context"
	"runtime"
	"sync"

	"github.com/george9932/LCS-FTLE-Optimized/internal/field"
	"github.com/george9932/LCS-FTLE-Optimized/internal/results"
	"github.com/george9932/LCS-FTLE-Optimized/internal/simparams"
)

// Job is one field to render.
type Job struct {
	Step    int // 1-based
	Total   int
	T0      float64
	In, Out string
}

// Batch renders every FTLE field of a run to PNG with a pool of workers.
// done is called after each finished frame; calls may interleave across
// workers but are serialized by an internal mutex.
func Batch(ctx context.Context, params *simparams.Params, layout *results.Layout, r *Renderer, workers int, done func(Job)) error {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	grid, err := field.NewGrid(params.XMin, params.XMax, params.YMin, params.YMax, params.NX, params.NY)
	if err != nil {
		return err
	}

	jobs := make(chan Job)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				f, err := field.ReadScalarText(job.In, grid)
				if err != nil {
					setErr(err)
					continue
				}
				title := "Time = " + params.FormatTime(job.T0)
				if err := r.RenderField(f, title, job.Out); err != nil {
					setErr(err)
					continue
				}
				if done != nil {
					mu.Lock()
					done(job)
					mu.Unlock()
				}
			}
		}()
	}

	dt := params.SignedDeltaT()
	total := params.Steps
loop:
	for i := 0; i < total; i++ {
		// Same index arithmetic as the computation, so formatted names match.
		t0 := params.InitialTime() + dt*float64(total-1-i)
		in := layout.FTLEPath(t0)
		select {
		case jobs <- Job{Step: i + 1, Total: total, T0: t0, In: in, Out: results.PNGPath(in)}:
		case <-ctx.Done():
			setErr(ctx.Err())
			break loop
		}
	}
	close(jobs)
	wg.Wait()

	return firstErr
}
