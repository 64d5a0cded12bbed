package flow

import (
	"context"
	"runtime"
	"sync"

	"github.com/george9932/LCS-FTLE-Optimized/internal/field"
)

// ParallelFor executes fn over [0, n) in parallel chunks. Chunks smaller
// than minChunk are not worth a goroutine and run inline.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// AdvectGrid advects every node of the uniform grid g through f over the
// window [t0, t0+dt], dt signed. Substeps below 1 means a single
// integrator step across the window. Escaped particles are clamped to the
// boundary and flagged on the returned flow map.
func AdvectGrid(ctx context.Context, integ Integrator, f Field, g *field.Grid, t0, dt float64, substeps int) (*field.VectorField, error) {
	if substeps < 1 {
		substeps = 1
	}
	out := field.NewVectorField(g)
	out.SetUniform()
	out.Time = t0 + dt

	h := dt / float64(substeps)

	var mu sync.Mutex
	var firstErr error
	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	ParallelFor(g.Len(), 4*g.NY, func(start, end int) {
		for k := start; k < end; k++ {
			if k%g.NY == 0 && ctx.Err() != nil {
				setErr(ctx.Err())
				return
			}
			p := out.Vals[k]
			t := t0
			var err error
			for s := 0; s < substeps; s++ {
				p, err = integ.Step(f, p, t, h)
				if err != nil {
					setErr(err)
					return
				}
				t += h
			}
			out.Vals[k] = p
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}

	out.ClampOutOfBound()
	return out, nil
}
