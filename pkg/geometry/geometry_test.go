package geometry

import (
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

const tolerance = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func vecApproxEqual(a, b core.Vec3, tol float64) bool {
	return a.Subtract(b).Length() < tol
}

func ray(origin, direction core.Vec3) core.Ray {
	return core.MustNewRay(origin, direction)
}
