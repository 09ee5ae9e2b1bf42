package geom

// Segment is a line segment in world coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
// World space follows the backend convention: x grows right, y grows down.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Segments returns the four edges of the rectangle.
func (r Rect) Segments() []Segment {
	x2 := r.X + r.Width
	y2 := r.Y + r.Height
	return []Segment{
		{r.X, r.Y, x2, r.Y},
		{x2, r.Y, x2, y2},
		{x2, y2, r.X, y2},
		{r.X, y2, r.X, r.Y},
	}
}

// WorldSegments reduces the boundary walls and all obstacles to a flat
// segment list suitable for ray queries. The boundary rectangle is inset by
// the wall margin on every side.
func WorldSegments(width, height, margin float64, obstacles []Rect) []Segment {
	boundary := Rect{
		X:      margin,
		Y:      margin,
		Width:  width - 2*margin,
		Height: height - 2*margin,
	}
	segs := make([]Segment, 0, 4+4*len(obstacles))
	segs = append(segs, boundary.Segments()...)
	for _, obs := range obstacles {
		segs = append(segs, obs.Segments()...)
	}
	return segs
}
