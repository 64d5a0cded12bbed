package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/george9932/LCS-FTLE-Optimized/internal/flow"
	"github.com/george9932/LCS-FTLE-Optimized/internal/pipeline"
	"github.com/george9932/LCS-FTLE-Optimized/internal/viz"
)

func runCompute(cmd *cobra.Command, args []string) error {
	params, layout, err := loadProject()
	if err != nil {
		return err
	}

	integ, err := flow.NewIntegrator(integrator)
	if err != nil {
		return err
	}

	pl := pipeline.New(params, layout, integ)
	pl.Substeps = substeps

	if live {
		return runComputeLive(pl)
	}

	switch params.Direction {
	case "forward":
		fmt.Println("*** FORWARD FTLE CALCULATION BEGINS ***")
	case "backward":
		fmt.Println("*** BACKWARD FTLE CALCULATION BEGINS ***")
	}

	pl.AddObserver(func(pr pipeline.Progress) {
		switch pr.Phase {
		case pipeline.PhaseStepMaps:
			fmt.Printf("[%d/%d] step flow map from t = %s to t = %s\n",
				pr.Step, pr.Total, params.FormatTime(pr.T0), params.FormatTime(pr.T1))
		case pipeline.PhaseCompose:
			fmt.Printf("[%d/%d] FTLE at t = %s (max %.4f)\n",
				pr.Step, pr.Total, params.FormatTime(pr.T0), pr.MaxFTLE)
		}
	})

	start := time.Now()

	stepStart := time.Now()
	if err := pl.ComputeStepMaps(context.Background()); err != nil {
		return err
	}
	fmt.Printf("step flow maps done in %.1fs\n", time.Since(stepStart).Seconds())

	composeStart := time.Now()
	if err := pl.ComposeFTLE(context.Background()); err != nil {
		return err
	}
	fmt.Printf("fast calculation done in %.1fs\n", time.Since(composeStart).Seconds())
	fmt.Printf("total calculation time: %.1fs\n", time.Since(start).Seconds())

	return nil
}

// runComputeLive drives the pipeline under the bubbletea view.
func runComputeLive(pl *pipeline.Pipeline) error {
	p := tea.NewProgram(viz.NewModel(pl.Params))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	pl.AddObserver(func(pr pipeline.Progress) {
		p.Send(viz.ProgressMsg(pr))
	})
	go func() {
		err := pl.Run(ctx)
		errCh <- err
		p.Send(viz.DoneMsg{Err: err})
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	cancel()
	return <-errCh
}
