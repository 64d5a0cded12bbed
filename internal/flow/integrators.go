package flow

import "github.com/george9932/LCS-FTLE-Optimized/internal/field"

// RK4 is the classic fourth-order Runge-Kutta step. dt may be negative for
// backward advection.
type RK4 struct{}

func (RK4) Step(f Field, p field.Vec2, t, dt float64) (field.Vec2, error) {
	k1, err := f.Velocity(p, t)
	if err != nil {
		return p, err
	}
	k2, err := f.Velocity(p.Add(k1.Scale(dt*0.5)), t+dt*0.5)
	if err != nil {
		return p, err
	}
	k3, err := f.Velocity(p.Add(k2.Scale(dt*0.5)), t+dt*0.5)
	if err != nil {
		return p, err
	}
	k4, err := f.Velocity(p.Add(k3.Scale(dt)), t+dt)
	if err != nil {
		return p, err
	}

	dt6 := dt / 6.0
	return field.Vec2{
		X: p.X + dt6*(k1.X+2*k2.X+2*k3.X+k4.X),
		Y: p.Y + dt6*(k1.Y+2*k2.Y+2*k3.Y+k4.Y),
	}, nil
}

// Euler is the first-order step, kept for quick sanity runs.
type Euler struct{}

func (Euler) Step(f Field, p field.Vec2, t, dt float64) (field.Vec2, error) {
	v, err := f.Velocity(p, t)
	if err != nil {
		return p, err
	}
	return p.Add(v.Scale(dt)), nil
}
