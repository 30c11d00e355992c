package pose

import "math"

// Angle returns the angle at p2, in degrees within [0,180], formed by the
// rays p2->p1 and p2->p3. A zero-length ray (p1 or p3 coinciding with the
// vertex) yields 0.0 rather than an error so that a collapsed landmark never
// poisons downstream aggregation. The cosine is clamped to [-1,1] before
// acos to absorb floating-point rounding.
func Angle(p1, p2, p3 Landmark) float64 {
	v1x, v1y, v1z := p1.X-p2.X, p1.Y-p2.Y, p1.Z-p2.Z
	v2x, v2y, v2z := p3.X-p2.X, p3.Y-p2.Y, p3.Z-p2.Z

	n1 := math.Sqrt(v1x*v1x + v1y*v1y + v1z*v1z)
	n2 := math.Sqrt(v2x*v2x + v2y*v2y + v2z*v2z)
	if n1 == 0 || n2 == 0 {
		return 0.0
	}

	cos := (v1x*v2x + v1y*v2y + v1z*v2z) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi
}
