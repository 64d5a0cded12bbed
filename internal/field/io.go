package field

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Text files carry three header lines before the data block:
//
//	# time <t>
//	# grid <nx> <ny>
//	# domain <x_min> <x_max> <y_min> <y_max>
//
// followed by one line per node, row-major with the x index outer. Readers
// that skip three header lines and reshape to (nx,ny) therefore recover
// the field unchanged.

func writeHeader(w *bufio.Writer, g *Grid, t float64) {
	fmt.Fprintf(w, "# time %s\n", strconv.FormatFloat(t, 'g', -1, 64))
	fmt.Fprintf(w, "# grid %d %d\n", g.NX, g.NY)
	fmt.Fprintf(w, "# domain %s %s %s %s\n",
		strconv.FormatFloat(g.XMin, 'g', -1, 64),
		strconv.FormatFloat(g.XMax, 'g', -1, 64),
		strconv.FormatFloat(g.YMin, 'g', -1, 64),
		strconv.FormatFloat(g.YMax, 'g', -1, 64))
}

// WriteText writes a scalar field with the standard header.
func (f *ScalarField) WriteText(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	writeHeader(w, f.Grid, f.Time)
	for _, v := range f.Vals {
		w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		w.WriteByte('\n')
	}
	return w.Flush()
}

// WriteText writes a vector field with the standard header, two columns
// per node.
func (f *VectorField) WriteText(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	writeHeader(w, f.Grid, f.Time)
	for _, v := range f.Vals {
		w.WriteString(strconv.FormatFloat(v.X, 'g', -1, 64))
		w.WriteByte(' ')
		w.WriteString(strconv.FormatFloat(v.Y, 'g', -1, 64))
		w.WriteByte('\n')
	}
	return w.Flush()
}

// readValues skips the three header lines and parses whitespace-separated
// floats, wantCols per line, returning them flattened.
func readValues(path string, wantCols int) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var vals []float64
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if line <= 3 {
			continue
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		cols := strings.Fields(text)
		if len(cols) != wantCols {
			return nil, fmt.Errorf("field: %s:%d: expected %d columns, got %d", path, line, wantCols, len(cols))
		}
		for _, c := range cols {
			v, err := strconv.ParseFloat(c, 64)
			if err != nil {
				return nil, fmt.Errorf("field: %s:%d: %w", path, line, err)
			}
			vals = append(vals, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return vals, nil
}

// ReadScalarText reads a scalar field written for grid g.
func ReadScalarText(path string, g *Grid) (*ScalarField, error) {
	vals, err := readValues(path, 1)
	if err != nil {
		return nil, err
	}
	if len(vals) != g.Len() {
		return nil, fmt.Errorf("field: %s: expected %d values for %dx%d grid, got %d", path, g.Len(), g.NX, g.NY, len(vals))
	}
	f := NewScalarField(g)
	copy(f.Vals, vals)
	return f, nil
}

// ReadVectorText reads a vector field written for grid g.
func ReadVectorText(path string, g *Grid) (*VectorField, error) {
	vals, err := readValues(path, 2)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2*g.Len() {
		return nil, fmt.Errorf("field: %s: expected %d nodes for %dx%d grid, got %d", path, g.Len(), g.NX, g.NY, len(vals)/2)
	}
	f := NewVectorField(g)
	for k := 0; k < g.Len(); k++ {
		f.Vals[k] = Vec2{X: vals[2*k], Y: vals[2*k+1]}
	}
	return f, nil
}

// Step flow maps are written as flat binary: little-endian int64 nx, ny,
// float64 time, then nx*ny (x,y) float64 pairs. The upstream tool memory
// maps the equivalent layout.

// WriteBinary persists a vector field as a flat binary flow map.
func (f *VectorField) WriteBinary(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	hdr := []interface{}{int64(f.Grid.NX), int64(f.Grid.NY), f.Time}
	for _, v := range hdr {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	buf := make([]float64, 2*len(f.Vals))
	for k, v := range f.Vals {
		buf[2*k] = v.X
		buf[2*k+1] = v.Y
	}
	if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
		return err
	}
	return w.Flush()
}

// ReadBinary loads a flow map written by WriteBinary, checking that it
// matches grid g.
func ReadBinary(path string, g *Grid) (*VectorField, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := bufio.NewReader(file)
	var nx, ny int64
	var t float64
	if err := binary.Read(r, binary.LittleEndian, &nx); err != nil {
		return nil, fmt.Errorf("field: %s: %w", path, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &ny); err != nil {
		return nil, fmt.Errorf("field: %s: %w", path, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &t); err != nil {
		return nil, fmt.Errorf("field: %s: %w", path, err)
	}
	if int(nx) != g.NX || int(ny) != g.NY {
		return nil, fmt.Errorf("field: %s: flow map is %dx%d, grid is %dx%d", path, nx, ny, g.NX, g.NY)
	}

	buf := make([]float64, 2*g.Len())
	if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
		return nil, fmt.Errorf("field: %s: %w", path, err)
	}
	f := NewVectorField(g)
	f.Time = t
	for k := 0; k < g.Len(); k++ {
		f.Vals[k] = Vec2{X: buf[2*k], Y: buf[2*k+1]}
	}
	return f, nil
}
