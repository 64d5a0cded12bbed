package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func runParams(cmd *cobra.Command, args []string) error {
	params, _, err := loadProject()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "x_min\t%g\n", params.XMin)
	fmt.Fprintf(w, "x_max\t%g\n", params.XMax)
	fmt.Fprintf(w, "y_min\t%g\n", params.YMin)
	fmt.Fprintf(w, "y_max\t%g\n", params.YMax)
	fmt.Fprintf(w, "nx\t%d\n", params.NX)
	fmt.Fprintf(w, "ny\t%d\n", params.NY)
	fmt.Fprintf(w, "data_nx\t%d\n", params.DataNX)
	fmt.Fprintf(w, "data_ny\t%d\n", params.DataNY)
	fmt.Fprintf(w, "t_min\t%g\n", params.TMin)
	fmt.Fprintf(w, "t_max\t%g\n", params.TMax)
	fmt.Fprintf(w, "data_delta_t\t%g\n", params.DataDeltaT)
	fmt.Fprintf(w, "steps\t%d\n", params.Steps)
	fmt.Fprintf(w, "file_prefix\t%s\n", params.FilePrefix)
	fmt.Fprintf(w, "direction\t%s\n", params.Direction)
	fmt.Fprintf(w, "calc_delta_t\t%g\n", params.CalcDeltaT())
	fmt.Fprintf(w, "precision\t%d\n", params.Precision())
	return w.Flush()
}
