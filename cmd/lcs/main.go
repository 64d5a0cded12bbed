// Command lcs drives the fast FTLE pipeline: generating discrete velocity
// data, computing FTLE fields, rendering them, and animating the result.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/george9932/LCS-FTLE-Optimized/internal/results"
	"github.com/george9932/LCS-FTLE-Optimized/internal/simparams"
)

var (
	projDir    string
	paramsFile string

	// compute flags
	integrator string
	substeps   int
	live       bool

	// plot flags
	workers int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lcs",
		Short: "fast Lagrangian coherent structure (FTLE) analysis",
	}

	rootCmd.PersistentFlags().StringVar(&projDir, "project", ".", "project directory")
	rootCmd.PersistentFlags().StringVar(&paramsFile, "params", simparams.DefaultFile, "simulation parameter file (relative to project)")

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "compute FTLE fields with the fast step-flow-map method",
		RunE:  runCompute,
	}
	computeCmd.Flags().StringVar(&integrator, "integrator", "rk4", "particle integrator (rk4, euler)")
	computeCmd.Flags().IntVar(&substeps, "substeps", 1, "integrator substeps per flow-map window")
	computeCmd.Flags().BoolVar(&live, "live", false, "live terminal view")

	gendataCmd := &cobra.Command{
		Use:   "gendata",
		Short: "write discrete double-gyre velocity data",
		RunE:  runGenData,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "render FTLE fields as contour images",
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&workers, "workers", 0, "render workers (0 = all CPUs)")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "stitch rendered frames into an animated GIF",
		RunE:  runAnimate,
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "summarize computed FTLE fields",
		RunE:  runStats,
	}

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "print the loaded simulation parameters",
		RunE:  runParams,
	}

	rootCmd.AddCommand(computeCmd, gendataCmd, plotCmd, animateCmd, statsCmd, paramsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadProject reads the parameter file and builds the project layout.
func loadProject() (*simparams.Params, *results.Layout, error) {
	p, err := simparams.Load(filepath.Join(projDir, paramsFile))
	if err != nil {
		return nil, nil, fmt.Errorf("load parameters: %w", err)
	}
	return p, results.NewLayout(projDir, p), nil
}
