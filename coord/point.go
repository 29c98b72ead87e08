package coord

import (
	"math"
)

type Point struct{ X, Y, E float64 }

func (p Point) Equal(b Point) bool {
	return p.X == b.X && p.Y == b.Y && p.E == b.E
}

func (p Point) Mul(val float64) Point {
	p.X *= val
	p.Y *= val
	p.E *= val
	return p
}

func (p Point) Div(val float64) Point {
	p.X /= val
	p.Y /= val
	p.E /= val
	return p
}

// Add will add the target values to p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	p.E += target.E
	return p
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.E -= target.E
	return p
}

// Split will return a set of evenly spaced points
// from p to the target. The final point is always the
// target itself, at full precision.
func (p Point) Split(target Point, n int) []Point {
	target.X = (target.X - p.X) / float64(n)
	target.Y = (target.Y - p.Y) / float64(n)
	target.E = (target.E - p.E) / float64(n)

	res := make([]Point, n)
	for i := range res {
		res[i].X = p.X + target.X*float64(i+1)
		res[i].Y = p.Y + target.Y*float64(i+1)
		res[i].E = p.E + target.E*float64(i+1)
	}

	return res
}

// DistanceXY will return the 2D distance between p and the
// target, ignoring extrusion.
func (p Point) DistanceXY(target Point) float64 {
	return math.Sqrt(math.Pow(target.X-p.X, 2) + math.Pow(target.Y-p.Y, 2))
}
