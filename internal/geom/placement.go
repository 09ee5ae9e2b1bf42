package geom

// Placement names a sensor layout pattern. The pattern decides how ray
// azimuths spread around the robot heading.
type Placement string

const (
	PlacementFront      Placement = "front"
	PlacementFrontSides Placement = "front_sides"
	PlacementFrontRear  Placement = "front_rear"
	PlacementSides      Placement = "sides"
	PlacementFull       Placement = "360"
	PlacementCustom     Placement = "custom"
)

// fanSpec is the span/offset pair for a single centered fan of rays.
// The numeric values are an observable contract with the editor preview;
// they must not be re-derived.
type fanSpec struct {
	span   float64
	offset float64
}

var placementFans = map[Placement][]fanSpec{
	PlacementFront:      {{span: 90, offset: 0}},
	PlacementFrontSides: {{span: 180, offset: 0}},
	PlacementFrontRear:  {{span: 260, offset: 0}},
	PlacementSides:      {{span: 60, offset: -90}, {span: 60, offset: 90}},
}

// PlacementAngles produces n azimuths in degrees relative to the robot
// heading for the given placement. For PlacementCustom the fan spans
// fovDeg centered straight ahead. A non-positive n yields an empty slice;
// a single ray sits at the fan center with no spread.
func PlacementAngles(tag Placement, n int, fovDeg float64) []float64 {
	if n <= 0 {
		return nil
	}

	if tag == PlacementFull {
		angles := make([]float64, n)
		for i := range angles {
			angles[i] = 360 * float64(i) / float64(n)
		}
		return angles
	}

	fans, ok := placementFans[tag]
	if !ok {
		fans = []fanSpec{{span: fovDeg, offset: 0}}
	}

	angles := make([]float64, 0, n)
	remaining := n
	for i, fan := range fans {
		count := remaining / (len(fans) - i)
		remaining -= count
		angles = append(angles, fanAngles(fan, count)...)
	}
	return angles
}

func fanAngles(fan fanSpec, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{fan.offset}
	}
	angles := make([]float64, n)
	start := fan.offset - fan.span/2
	step := fan.span / float64(n-1)
	for i := range angles {
		angles[i] = start + float64(i)*step
	}
	return angles
}
