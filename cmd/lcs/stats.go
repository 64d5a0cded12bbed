package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/george9932/LCS-FTLE-Optimized/internal/field"
)

func runStats(cmd *cobra.Command, args []string) error {
	params, layout, err := loadProject()
	if err != nil {
		return err
	}

	grid, err := field.NewGrid(params.XMin, params.XMax, params.YMin, params.YMax, params.NX, params.NY)
	if err != nil {
		return err
	}

	dt := params.SignedDeltaT()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tMIN\tMAX\tMEAN\tSTDDEV")

	maxima := make([]float64, 0, params.Steps)
	found := 0
	for i := 0; i < params.Steps; i++ {
		t0 := params.InitialTime() + dt*float64(i)
		f, err := field.ReadScalarText(layout.FTLEPath(t0), grid)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		found++

		min, max, err := f.MinMax()
		if err != nil {
			return err
		}
		mean, std := stat.MeanStdDev(f.Vals, nil)
		maxima = append(maxima, max)

		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n", params.FormatTime(t0), min, max, mean, std)
	}
	if found == 0 {
		return fmt.Errorf("no FTLE fields found in %s; run compute first", layout.FTLEDir())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(maxima) >= 2 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(maxima,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("max FTLE per timestep"),
		))
	}
	return nil
}
