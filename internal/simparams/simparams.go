package simparams

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultFile is the conventional name of the simulation parameter file
// inside a project directory.
const DefaultFile = "sim_params.json"

// ErrBadDirection indicates a direction value other than forward or backward.
var ErrBadDirection = errors.New("simparams: direction must be \"forward\" or \"backward\"")

type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Params mirrors sim_params.json, the settings file shared with the
// upstream computation tools.
type Params struct {
	XMin       float64   `json:"x_min"`
	XMax       float64   `json:"x_max"`
	YMin       float64   `json:"y_min"`
	YMax       float64   `json:"y_max"`
	NX         int       `json:"nx"`
	NY         int       `json:"ny"`
	DataNX     int       `json:"data_nx"`
	DataNY     int       `json:"data_ny"`
	TMin       float64   `json:"t_min"`
	TMax       float64   `json:"t_max"`
	DataDeltaT float64   `json:"data_delta_t"`
	Steps      int       `json:"steps"`
	FilePrefix string    `json:"file_prefix"`
	Direction  Direction `json:"direction"`
}

func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Params
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("simparams: parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadProject reads the parameter file from its conventional location
// inside the project directory.
func LoadProject(projDir string) (*Params, error) {
	return Load(filepath.Join(projDir, DefaultFile))
}

func (p *Params) Validate() error {
	if p.Direction != Forward && p.Direction != Backward {
		return ErrBadDirection
	}
	if p.XMin >= p.XMax || p.YMin >= p.YMax {
		return fmt.Errorf("simparams: empty spatial domain [%g,%g]x[%g,%g]", p.XMin, p.XMax, p.YMin, p.YMax)
	}
	if p.NX < 2 || p.NY < 2 {
		return fmt.Errorf("simparams: grid must be at least 2x2, got %dx%d", p.NX, p.NY)
	}
	if p.DataNX < 2 || p.DataNY < 2 {
		return fmt.Errorf("simparams: data grid must be at least 2x2, got %dx%d", p.DataNX, p.DataNY)
	}
	if p.TMin >= p.TMax {
		return fmt.Errorf("simparams: empty time range [%g,%g]", p.TMin, p.TMax)
	}
	if p.DataDeltaT <= 0 {
		return fmt.Errorf("simparams: data_delta_t must be positive, got %g", p.DataDeltaT)
	}
	if p.Steps < 1 {
		return fmt.Errorf("simparams: steps must be at least 1, got %d", p.Steps)
	}
	return nil
}

// Precision infers the number of decimal digits needed to print times
// exactly, from the data sampling interval. A delta of 0.25 gives 2.
func (p *Params) Precision() int {
	return PrecisionOf(p.DataDeltaT)
}

func PrecisionOf(num float64) int {
	precision := 0
	for math.Abs(num-math.Trunc(num)) > 0 && precision < 15 {
		num *= 10
		precision++
	}
	return precision
}

// CalcDeltaT is the FTLE integration window, always positive.
func (p *Params) CalcDeltaT() float64 {
	return (p.TMax - p.TMin) / float64(p.Steps)
}

// SignedDeltaT carries the integration direction.
func (p *Params) SignedDeltaT() float64 {
	if p.Direction == Backward {
		return -p.CalcDeltaT()
	}
	return p.CalcDeltaT()
}

func (p *Params) SignPrefix() string {
	if p.Direction == Backward {
		return "negative_"
	}
	return "positive_"
}

// InitialTime is where advection starts: t_min forward, t_max backward.
func (p *Params) InitialTime() float64 {
	if p.Direction == Backward {
		return p.TMax
	}
	return p.TMin
}

// FinalTime is where every composed trajectory ends.
func (p *Params) FinalTime() float64 {
	if p.Direction == Backward {
		return p.TMin
	}
	return p.TMax
}

// FormatTime renders a time the way it appears in filenames and logs,
// with the inferred precision.
func (p *Params) FormatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', p.Precision(), 64)
}
