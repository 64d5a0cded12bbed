package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/george9932/LCS-FTLE-Optimized/internal/anim"
	"github.com/george9932/LCS-FTLE-Optimized/internal/simparams"
)

func runAnimate(cmd *cobra.Command, args []string) error {
	_, layout, err := loadProject()
	if err != nil {
		return err
	}

	settings, err := simparams.LoadRender(projDir)
	if err != nil {
		return err
	}

	frames, err := layout.Frames()
	if err != nil {
		return err
	}

	fmt.Printf("preparing animation of the FTLE field (%d frames)\n", len(frames))

	start := time.Now()
	out := layout.GIFPath()
	if err := anim.Stitch(frames, out, settings.GIFDelay()); err != nil {
		return err
	}

	fmt.Printf("animation saved to %s (%.1fs)\n", out, time.Since(start).Seconds())
	return nil
}
