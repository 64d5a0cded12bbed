// Package field provides the uniform 2D grids and gridded fields the FTLE
// pipeline advects, interpolates, and persists.
package field

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Vec2 is a point or velocity in the flow plane.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Grid is a uniform rectangular grid. Nodes are indexed (i,j) with i along
// x and j along y; flattened storage is row-major with i outer.
type Grid struct {
	XMin, XMax float64
	YMin, YMax float64
	NX, NY     int
}

func NewGrid(xMin, xMax, yMin, yMax float64, nx, ny int) (*Grid, error) {
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("field: grid must be at least 2x2, got %dx%d", nx, ny)
	}
	if xMin >= xMax || yMin >= yMax {
		return nil, fmt.Errorf("field: empty domain [%g,%g]x[%g,%g]", xMin, xMax, yMin, yMax)
	}
	return &Grid{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax, NX: nx, NY: ny}, nil
}

func (g *Grid) Len() int { return g.NX * g.NY }

func (g *Grid) DX() float64 { return (g.XMax - g.XMin) / float64(g.NX-1) }
func (g *Grid) DY() float64 { return (g.YMax - g.YMin) / float64(g.NY-1) }

// XCoords returns the nx node coordinates along x.
func (g *Grid) XCoords() []float64 {
	return floats.Span(make([]float64, g.NX), g.XMin, g.XMax)
}

// YCoords returns the ny node coordinates along y.
func (g *Grid) YCoords() []float64 {
	return floats.Span(make([]float64, g.NY), g.YMin, g.YMax)
}

// Node returns the coordinates of node (i,j).
func (g *Grid) Node(i, j int) Vec2 {
	return Vec2{
		X: g.XMin + float64(i)*g.DX(),
		Y: g.YMin + float64(j)*g.DY(),
	}
}

func (g *Grid) Index(i, j int) int { return i*g.NY + j }

// Contains reports whether p lies inside the grid domain.
func (g *Grid) Contains(p Vec2) bool {
	return p.X >= g.XMin && p.X <= g.XMax && p.Y >= g.YMin && p.Y <= g.YMax
}

// Clamp moves p onto the nearest domain point.
func (g *Grid) Clamp(p Vec2) Vec2 {
	if p.X < g.XMin {
		p.X = g.XMin
	}
	if p.X > g.XMax {
		p.X = g.XMax
	}
	if p.Y < g.YMin {
		p.Y = g.YMin
	}
	if p.Y > g.YMax {
		p.Y = g.YMax
	}
	return p
}
