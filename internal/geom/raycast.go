package geom

import "math"

// epsilon below which a ray/segment system is treated as parallel or
// degenerate and skipped rather than solved.
const epsilon = 1e-9

// CastRay returns the distance from (ox, oy) along the unit direction
// (dx, dy) to the nearest intersecting segment, or maxRange when no segment
// is hit within range.
func CastRay(ox, oy, dx, dy float64, segs []Segment, maxRange float64) float64 {
	best := maxRange
	for _, s := range segs {
		ex := s.X2 - s.X1
		ey := s.Y2 - s.Y1

		denom := dx*ey - dy*ex
		if math.Abs(denom) < epsilon {
			continue
		}

		// Solve origin + t*dir == s1 + u*edge for t >= 0, u in [0, 1].
		wx := s.X1 - ox
		wy := s.Y1 - oy
		t := (wx*ey - wy*ex) / denom
		u := (wx*dy - wy*dx) / denom

		if t >= 0 && u >= 0 && u <= 1 && t < best {
			best = t
		}
	}
	return best
}

// CastAll casts one ray per relative angle and returns normalized distances
// in [0, 1], where 1.0 means nothing was hit within rayLength. Angles are in
// degrees relative to the heading, matching the backend sensor contract.
func CastAll(ox, oy, headingDeg float64, anglesRel []float64, segs []Segment, rayLength float64) []float64 {
	distances := make([]float64, len(anglesRel))
	for i, rel := range anglesRel {
		rad := (headingDeg + rel) * math.Pi / 180
		d := CastRay(ox, oy, math.Cos(rad), math.Sin(rad), segs, rayLength)
		distances[i] = d / rayLength
	}
	return distances
}
