package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/george9932/LCS-FTLE-Optimized/internal/flow"
	"github.com/george9932/LCS-FTLE-Optimized/internal/pipeline"
)

func runGenData(cmd *cobra.Command, args []string) error {
	params, layout, err := loadProject()
	if err != nil {
		return err
	}

	pl := pipeline.New(params, layout, nil)

	start := time.Now()
	if err := pl.GenerateData(context.Background(), flow.NewDoubleGyre()); err != nil {
		return err
	}

	fmt.Printf("discrete %s data written to %s (%.1fs)\n",
		params.FilePrefix, layout.DataDir(), time.Since(start).Seconds())
	return nil
}
