// Package results owns the on-disk layout of a project: where velocity
// snapshots, step flow maps, and FTLE fields live, and how times are
// embedded in their file names.
package results

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/george9932/LCS-FTLE-Optimized/internal/simparams"
)

// ErrNoFrames indicates an animation was requested before any field was
// rendered.
var ErrNoFrames = errors.New("results: no rendered frames found")

// Layout resolves project paths. All file names embed times formatted
// with the precision inferred from data_delta_t, so names sort and parse
// exactly.
type Layout struct {
	ProjDir string
	Params  *simparams.Params
}

func NewLayout(projDir string, p *simparams.Params) *Layout {
	return &Layout{ProjDir: projDir, Params: p}
}

func (l *Layout) DataDir() string    { return filepath.Join(l.ProjDir, "data") }
func (l *Layout) StepMapDir() string { return filepath.Join(l.ProjDir, "step_flow_maps") }
func (l *Layout) FTLEDir() string    { return filepath.Join(l.ProjDir, "results", "ftle") }

// EnsureDirs creates the project subdirectories.
func (l *Layout) EnsureDirs() error {
	for _, dir := range []string{l.DataDir(), l.StepMapDir(), l.FTLEDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// VelocityPath names the snapshot of the velocity data at time t.
func (l *Layout) VelocityPath(t float64) string {
	name := l.Params.FilePrefix + l.Params.FormatTime(t) + ".txt"
	return filepath.Join(l.DataDir(), name)
}

// StepMapPath names the step flow map starting at time t.
func (l *Layout) StepMapPath(t float64) string {
	name := l.Params.FilePrefix + l.Params.SignPrefix() + l.Params.FormatTime(t) + ".bin"
	return filepath.Join(l.StepMapDir(), name)
}

// FTLEPath names the FTLE field evaluated at t0 over [t0, final]. The two
// embedded times are always ascending: forward runs end at t_max, backward
// runs end at t_min.
func (l *Layout) FTLEPath(t0 float64) string {
	lo, hi := t0, l.Params.FinalTime()
	if l.Params.Direction == simparams.Backward {
		lo, hi = hi, lo
	}
	name := l.Params.FilePrefix + l.Params.SignPrefix() +
		l.Params.FormatTime(lo) + "-" + l.Params.FormatTime(hi) + ".txt"
	return filepath.Join(l.FTLEDir(), name)
}

// PNGPath is the rendered image next to an FTLE text file.
func PNGPath(ftlePath string) string {
	return strings.TrimSuffix(ftlePath, ".txt") + ".png"
}

// GIFPath names the stitched animation.
func (l *Layout) GIFPath() string {
	name := l.Params.FilePrefix + l.Params.SignPrefix() + "ftle_" +
		l.Params.FormatTime(l.Params.TMin) + "-" + l.Params.FormatTime(l.Params.TMax) + ".gif"
	return filepath.Join(l.FTLEDir(), name)
}

// Frame is one rendered FTLE image with the times parsed from its name.
type Frame struct {
	Path     string
	TLo      float64 // first embedded time
	THi      float64 // second embedded time
	EvalTime float64 // time the field is evaluated at
}

// Frames discovers rendered PNGs and orders them by evaluation time. For
// forward runs the varying (evaluation) time is the first of the pair; for
// backward runs it is the second. Sorting by the constant one would leave
// the frames in directory order.
func (l *Layout) Frames() ([]Frame, error) {
	paths, err := filepath.Glob(filepath.Join(l.FTLEDir(), "*.png"))
	if err != nil {
		return nil, err
	}

	frames := make([]Frame, 0, len(paths))
	for _, path := range paths {
		lo, hi, err := parseTimes(path)
		if err != nil {
			continue // not one of ours
		}
		f := Frame{Path: path, TLo: lo, THi: hi, EvalTime: lo}
		if l.Params.Direction == simparams.Backward {
			f.EvalTime = hi
		}
		frames = append(frames, f)
	}
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	sort.Slice(frames, func(i, j int) bool { return frames[i].EvalTime < frames[j].EvalTime })
	return frames, nil
}

// parseTimes extracts the "t1-t2" pair embedded after the last underscore
// of a frame name.
func parseTimes(path string) (lo, hi float64, err error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	idx := strings.LastIndex(base, "_")
	if idx < 0 || idx == len(base)-1 {
		return 0, 0, fmt.Errorf("results: no time pair in %s", path)
	}
	first, second, ok := strings.Cut(base[idx+1:], "-")
	if !ok {
		return 0, 0, fmt.Errorf("results: no time pair in %s", path)
	}
	lo, err = strconv.ParseFloat(first, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("results: bad time in %s: %w", path, err)
	}
	hi, err = strconv.ParseFloat(second, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("results: bad time in %s: %w", path, err)
	}
	return lo, hi, nil
}
