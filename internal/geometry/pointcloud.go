package geometry

import (
	"math/rand/v2"

	"github.com/Faultbox/scangif/pkg/math"
)

// PointCloud returns n points scattered over the six faces of a cube shell of
// the given half-size around the origin. For each point one axis is pinned to
// ±radius and the other two are uniform in [-radius, radius].
func PointCloud(rng *rand.Rand, n int, radius float32) []math.Vec3 {
	points := make([]math.Vec3, n)
	for i := range points {
		axis := rng.IntN(3)
		sign := float32(1)
		if rng.IntN(2) == 0 {
			sign = -1
		}
		p := [3]float32{
			uniform(rng, radius),
			uniform(rng, radius),
			uniform(rng, radius),
		}
		p[axis] = radius * sign
		points[i] = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	return points
}

// Subset returns k points drawn from points without replacement, in the order
// drawn. k is clamped to [0, len(points)].
func Subset(rng *rand.Rand, points []math.Vec3, k int) []math.Vec3 {
	if k <= 0 {
		return nil
	}
	if k > len(points) {
		k = len(points)
	}
	idx := rng.Perm(len(points))[:k]
	out := make([]math.Vec3, k)
	for i, j := range idx {
		out[i] = points[j]
	}
	return out
}

func uniform(rng *rand.Rand, r float32) float32 {
	return -r + 2*r*rng.Float32()
}
