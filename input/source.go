package input

import "github.com/lixenwraith/gem-drift/vmath"

// MovementSource yields the desired movement direction for the avatar
// The result is not normalized; the simulation normalizes and scales by speed
type MovementSource interface {
	Direction(from vmath.Vec2) vmath.Vec2
}

// digitalSource produces one of 8 directions from held keys
type digitalSource struct {
	up, down, left, right bool
}

func (s digitalSource) Direction(vmath.Vec2) vmath.Vec2 {
	var ax, ay float64
	if s.right {
		ax++
	}
	if s.left {
		ax--
	}
	if s.down {
		ay++
	}
	if s.up {
		ay--
	}
	return vmath.V2(ax, ay)
}

// pointerSource steers toward the current drag target
type pointerSource struct {
	target vmath.Vec2
}

func (s pointerSource) Direction(from vmath.Vec2) vmath.Vec2 {
	return s.target.Sub(from)
}
