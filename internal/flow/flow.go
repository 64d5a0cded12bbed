// Package flow provides velocity fields and particle advection for the
// FTLE pipeline.
package flow

import (
	"fmt"

	"github.com/george9932/LCS-FTLE-Optimized/internal/field"
)

// Field supplies the flow velocity at a point and time.
type Field interface {
	Velocity(p field.Vec2, t float64) (field.Vec2, error)
}

// Integrator advances a particle one timestep through a velocity field.
type Integrator interface {
	Step(f Field, p field.Vec2, t, dt float64) (field.Vec2, error)
}

// NewIntegrator resolves an integrator by name.
func NewIntegrator(name string) (Integrator, error) {
	switch name {
	case "rk4":
		return RK4{}, nil
	case "euler":
		return Euler{}, nil
	default:
		return nil, fmt.Errorf("flow: unknown integrator: %s", name)
	}
}
