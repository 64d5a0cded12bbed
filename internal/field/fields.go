package field

import "fmt"

// VectorField holds one Vec2 per grid node: particle positions when it is
// a flow map, velocities when it samples a flow.
type VectorField struct {
	Grid       *Grid
	Vals       []Vec2
	Time       float64
	OutOfBound []bool
}

func NewVectorField(g *Grid) *VectorField {
	return &VectorField{
		Grid:       g,
		Vals:       make([]Vec2, g.Len()),
		OutOfBound: make([]bool, g.Len()),
	}
}

// SetUniform places every node at its own grid coordinate (the identity
// flow map) and clears out-of-bound flags.
func (f *VectorField) SetUniform() {
	for i := 0; i < f.Grid.NX; i++ {
		for j := 0; j < f.Grid.NY; j++ {
			f.Vals[f.Grid.Index(i, j)] = f.Grid.Node(i, j)
		}
	}
	for k := range f.OutOfBound {
		f.OutOfBound[k] = false
	}
}

func (f *VectorField) At(i, j int) Vec2 { return f.Vals[f.Grid.Index(i, j)] }

func (f *VectorField) Set(i, j int, v Vec2) { f.Vals[f.Grid.Index(i, j)] = v }

func (f *VectorField) Clone() *VectorField {
	c := NewVectorField(f.Grid)
	copy(c.Vals, f.Vals)
	copy(c.OutOfBound, f.OutOfBound)
	c.Time = f.Time
	return c
}

// ClampOutOfBound pulls escaped nodes back onto the domain boundary and
// records them, so later interpolation stays defined.
func (f *VectorField) ClampOutOfBound() int {
	n := 0
	for k, v := range f.Vals {
		if !f.Grid.Contains(v) {
			f.Vals[k] = f.Grid.Clamp(v)
			f.OutOfBound[k] = true
			n++
		}
	}
	return n
}

// Interp evaluates the field at an arbitrary point by bilinear
// interpolation of the four surrounding nodes. Points outside the domain
// are clamped first.
func (f *VectorField) Interp(p Vec2) Vec2 {
	g := f.Grid
	p = g.Clamp(p)

	fx := (p.X - g.XMin) / g.DX()
	fy := (p.Y - g.YMin) / g.DY()

	i0 := int(fx)
	j0 := int(fy)
	if i0 > g.NX-2 {
		i0 = g.NX - 2
	}
	if j0 > g.NY-2 {
		j0 = g.NY - 2
	}
	tx := fx - float64(i0)
	ty := fy - float64(j0)

	v00 := f.At(i0, j0)
	v10 := f.At(i0+1, j0)
	v01 := f.At(i0, j0+1)
	v11 := f.At(i0+1, j0+1)

	return Vec2{
		X: (1-tx)*(1-ty)*v00.X + tx*(1-ty)*v10.X + (1-tx)*ty*v01.X + tx*ty*v11.X,
		Y: (1-tx)*(1-ty)*v00.Y + tx*(1-ty)*v10.Y + (1-tx)*ty*v01.Y + tx*ty*v11.Y,
	}
}

// ScalarField holds one value per grid node, FTLE values here.
type ScalarField struct {
	Grid *Grid
	Vals []float64
	Time float64
}

func NewScalarField(g *Grid) *ScalarField {
	return &ScalarField{Grid: g, Vals: make([]float64, g.Len())}
}

func (f *ScalarField) At(i, j int) float64 { return f.Vals[f.Grid.Index(i, j)] }

func (f *ScalarField) Set(i, j int, v float64) { f.Vals[f.Grid.Index(i, j)] = v }

// MinMax returns the extreme values; an error is returned for an empty field.
func (f *ScalarField) MinMax() (min, max float64, err error) {
	if len(f.Vals) == 0 {
		return 0, 0, fmt.Errorf("field: empty scalar field")
	}
	min, max = f.Vals[0], f.Vals[0]
	for _, v := range f.Vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, nil
}
