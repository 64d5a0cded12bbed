package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/george9932/LCS-FTLE-Optimized/internal/render"
	"github.com/george9932/LCS-FTLE-Optimized/internal/simparams"
)

func runPlot(cmd *cobra.Command, args []string) error {
	params, layout, err := loadProject()
	if err != nil {
		return err
	}

	settings, err := simparams.LoadRender(projDir)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		settings.Workers = workers
	}

	switch params.Direction {
	case "forward":
		fmt.Println("plotting forward FTLE field")
	case "backward":
		fmt.Println("plotting backward FTLE field")
	}

	r := render.New(settings.ContourLevels, settings.PlotSizeCM)

	start := time.Now()
	err = render.Batch(context.Background(), params, layout, r, settings.Workers, func(job render.Job) {
		fmt.Printf("[%d/%d] t = %s\n", job.Step, job.Total, params.FormatTime(job.T0))
	})
	if err != nil {
		return err
	}

	fmt.Printf("total plotting time: %.1fs\n", time.Since(start).Seconds())
	return nil
}
