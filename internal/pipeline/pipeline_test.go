package pipeline_test

import (
	"context"
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/george9932/LCS-FTLE-Optimized/internal/field"
	"github.com/george9932/LCS-FTLE-Optimized/internal/flow"
	"github.com/george9932/LCS-FTLE-Optimized/internal/pipeline"
	"github.com/george9932/LCS-FTLE-Optimized/internal/results"
	"github.com/george9932/LCS-FTLE-Optimized/internal/simparams"
)

var _ = Describe("Pipeline", func() {
	var (
		params *simparams.Params
		layout *results.Layout
		pl     *pipeline.Pipeline
		ctx    context.Context
	)

	newPipeline := func(dir simparams.Direction) {
		params = &simparams.Params{
			XMin: 0, XMax: 2, YMin: 0, YMax: 1,
			NX: 21, NY: 11, DataNX: 21, DataNY: 11,
			TMin: 0, TMax: 1, DataDeltaT: 0.25,
			Steps: 4, FilePrefix: "velocity_", Direction: dir,
		}
		Expect(params.Validate()).To(Succeed())

		layout = results.NewLayout(GinkgoT().TempDir(), params)
		pl = pipeline.New(params, layout, flow.RK4{})
		ctx = context.Background()

		Expect(pl.GenerateData(ctx, flow.NewDoubleGyre())).To(Succeed())
	}

	Describe("GenerateData", func() {
		BeforeEach(func() { newPipeline(simparams.Forward) })

		It("writes one snapshot per data timestep, endpoints included", func() {
			for _, t := range []float64{0, 0.25, 0.5, 0.75, 1.0} {
				Expect(layout.VelocityPath(t)).To(BeAnExistingFile())
			}
		})

		It("writes snapshots readable on the data grid", func() {
			g, err := field.NewGrid(0, 2, 0, 1, 21, 11)
			Expect(err).NotTo(HaveOccurred())

			vf, err := field.ReadVectorText(layout.VelocityPath(0.5), g)
			Expect(err).NotTo(HaveOccurred())
			Expect(vf.Vals).To(HaveLen(g.Len()))
		})
	})

	Describe("forward run", func() {
		BeforeEach(func() {
			newPipeline(simparams.Forward)
			Expect(pl.Run(ctx)).To(Succeed())
		})

		It("persists one step flow map per window", func() {
			for _, t := range []float64{0, 0.25, 0.5, 0.75} {
				Expect(layout.StepMapPath(t)).To(BeAnExistingFile())
			}
		})

		It("writes one FTLE field per start time with finite values", func() {
			g, err := field.NewGrid(0, 2, 0, 1, 21, 11)
			Expect(err).NotTo(HaveOccurred())

			for _, t0 := range []float64{0, 0.25, 0.5, 0.75} {
				path := layout.FTLEPath(t0)
				Expect(path).To(BeAnExistingFile())

				f, err := field.ReadScalarText(path, g)
				Expect(err).NotTo(HaveOccurred())
				for _, v := range f.Vals {
					Expect(math.IsNaN(v)).To(BeFalse())
					Expect(math.IsInf(v, 0)).To(BeFalse())
				}
			}
		})

		It("names FTLE files with an ascending time pair", func() {
			name := filepath.Base(layout.FTLEPath(0.75))
			Expect(name).To(Equal("velocity_positive_0.75-1.00.txt"))
		})
	})

	Describe("backward run", func() {
		BeforeEach(func() {
			newPipeline(simparams.Backward)
			Expect(pl.Run(ctx)).To(Succeed())
		})

		It("keys step maps by their descending start times", func() {
			for _, t := range []float64{1.0, 0.75, 0.5, 0.25} {
				Expect(layout.StepMapPath(t)).To(BeAnExistingFile())
			}
		})

		It("writes FTLE fields ending at t_min", func() {
			for _, t0 := range []float64{1.0, 0.75, 0.5, 0.25} {
				Expect(layout.FTLEPath(t0)).To(BeAnExistingFile())
			}
			name := filepath.Base(layout.FTLEPath(0.25))
			Expect(name).To(Equal("velocity_negative_0.00-0.25.txt"))
		})
	})

	Describe("observers", func() {
		BeforeEach(func() { newPipeline(simparams.Forward) })

		It("reports both phases in step order", func() {
			var stepmaps, compose []int
			pl.AddObserver(func(pr pipeline.Progress) {
				switch pr.Phase {
				case pipeline.PhaseStepMaps:
					stepmaps = append(stepmaps, pr.Step)
				case pipeline.PhaseCompose:
					compose = append(compose, pr.Step)
				}
			})

			Expect(pl.Run(ctx)).To(Succeed())
			Expect(stepmaps).To(Equal([]int{1, 2, 3, 4}))
			Expect(compose).To(Equal([]int{1, 2, 3, 4}))
		})
	})

	Describe("cancellation", func() {
		BeforeEach(func() { newPipeline(simparams.Forward) })

		It("aborts before writing any FTLE field", func() {
			canceled, cancel := context.WithCancel(ctx)
			cancel()

			Expect(pl.Run(canceled)).To(MatchError(context.Canceled))

			entries, err := os.ReadDir(layout.FTLEDir())
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})
})
