package geom

// Collides reports whether a circle at (x, y) with the given radius crosses
// the wall boundary or overlaps any obstacle. The obstacle test clamps the
// circle center into the rectangle and compares squared distances, so it is
// exact for axis-aligned rectangles.
func Collides(x, y, radius, width, height, margin float64, obstacles []Rect) bool {
	if x-radius < margin || x+radius > width-margin {
		return true
	}
	if y-radius < margin || y+radius > height-margin {
		return true
	}
	for _, obs := range obstacles {
		if circleOverlapsRect(x, y, radius, obs) {
			return true
		}
	}
	return false
}

func circleOverlapsRect(x, y, radius float64, r Rect) bool {
	cx := clamp(x, r.X, r.X+r.Width)
	cy := clamp(y, r.Y, r.Y+r.Height)
	dx := x - cx
	dy := y - cy
	return dx*dx+dy*dy <= radius*radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
