package systems

import "github.com/pthm-cable/formica/components"

// Jitter applied when bouncing off a boundary or sliding along an obstacle.
const bounceJitter = 0.5

// boundaryInset keeps clamped positions strictly inside the world.
const boundaryInset = 0.1

// move integrates speed and heading, then resolves boundary and obstacle
// collisions. A fully blocked ant turns sharply without moving.
func (s *ForagingSystem) move(pos *components.Position, mot *components.Motion) {
	p := &s.params

	mot.Speed += p.Acceleration
	mot.Speed *= p.Friction * s.grid.FrictionAt(pos.X, pos.Y)
	mot.Speed = clampFloat(mot.Speed, 0, p.MaxSpeed)

	mot.Heading += (s.rng.Float32() - 0.5) * p.Erratic
	mot.Heading = normalizeAngle(mot.Heading)

	s.avoidObstacles(pos, mot)

	dx := cos32(mot.Heading) * mot.Speed
	dy := sin32(mot.Heading) * mot.Speed
	nx := pos.X + dx
	ny := pos.Y + dy

	w, h := s.grid.Width(), s.grid.Height()
	if nx < 0 || nx >= w {
		mot.Heading = pi - mot.Heading + s.jitter()
		nx = clampFloat(nx, 0, w-boundaryInset)
	}
	if ny < 0 || ny >= h {
		mot.Heading = -mot.Heading + s.jitter()
		ny = clampFloat(ny, 0, h-boundaryInset)
	}

	if s.grid.IsPassable(nx, ny) {
		pos.X, pos.Y = nx, ny
	} else {
		canX := s.grid.IsPassable(nx, pos.Y)
		canY := s.grid.IsPassable(pos.X, ny)

		switch {
		case canX && !canY:
			s.slideX(pos, mot, nx, dx)
		case canY && !canX:
			s.slideY(pos, mot, ny, dy)
		case canX && canY:
			if s.rng.Float32() > 0.5 {
				s.slideX(pos, mot, nx, dx)
			} else {
				s.slideY(pos, mot, ny, dy)
			}
		default:
			mot.Heading += pi * (0.5 + s.rng.Float32())
			s.rec.RecordStuck()
		}
	}

	mot.Heading = normalizeAngle(mot.Heading)
}

func (s *ForagingSystem) slideX(pos *components.Position, mot *components.Motion, nx, dx float32) {
	pos.X = nx
	base := float32(0)
	if dx <= 0 {
		base = pi
	}
	mot.Heading = base + s.jitter()
}

func (s *ForagingSystem) slideY(pos *components.Position, mot *components.Motion, ny, dy float32) {
	pos.Y = ny
	base := float32(-pi / 2)
	if dy > 0 {
		base = pi / 2
	}
	mot.Heading = base + s.jitter()
}

func (s *ForagingSystem) jitter() float32 {
	return (s.rng.Float32() - 0.5) * bounceJitter
}

// avoidObstacles probes ahead and steers toward whichever side is open.
func (s *ForagingSystem) avoidObstacles(pos *components.Position, mot *components.Motion) {
	dist := s.params.SightDistance
	angle := s.params.SightAngle

	if s.grid.IsPassable(pos.X+cos32(mot.Heading)*dist, pos.Y+sin32(mot.Heading)*dist) {
		return
	}

	left := mot.Heading - angle
	right := mot.Heading + angle
	leftBlocked := !s.grid.IsPassable(pos.X+cos32(left)*dist, pos.Y+sin32(left)*dist)
	rightBlocked := !s.grid.IsPassable(pos.X+cos32(right)*dist, pos.Y+sin32(right)*dist)

	switch {
	case !leftBlocked && !rightBlocked:
		if s.rng.Float32() > 0.5 {
			mot.Heading += angle
		} else {
			mot.Heading -= angle
		}
	case !leftBlocked:
		mot.Heading -= angle
	case !rightBlocked:
		mot.Heading += angle
	default:
		mot.Heading += pi
	}
	mot.Heading = normalizeAngle(mot.Heading)
}
