package mutils

import (
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func Clamp[T Number](x, min, max T) T {
	if x < min {
		return min
	}

	if x > max {
		return max
	}

	return x
}

func Lerp[T constraints.Float](min, max, t T) T {
	return min + (max-min)*t
}

// ReverseLerp returns where x lies between start and end, clamped to [0, 1]
func ReverseLerp[T constraints.Float](x, start, end T) T {
	return Clamp((x-start)/(end-start), 0, 1)
}

// Smoothstep is a cubic Hermite interpolation of x between start and end
func Smoothstep[T constraints.Float](x, start, end T) T {
	x = ReverseLerp(x, start, end)

	return x * x * (3 - 2*x)
}

// Smootherstep is Ken Perlin's quintic variant of Smoothstep with zero first and second derivatives at the edges
func Smootherstep[T constraints.Float](x, start, end T) T {
	x = ReverseLerp(x, start, end)

	return x * x * x * (x*(6*x-15) + 10)
}

func Abs[T Number](a T) T {
	if a < 0 {
		return -a
	}

	return a
}
