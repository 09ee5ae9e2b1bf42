package geom

import "testing"

func TestCollides_Walls(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center clear", 320, 240, false},
		{"left wall", 25, 240, true},
		{"right wall", 615, 240, true},
		{"top wall", 320, 25, true},
		{"bottom wall", 320, 455, true},
		{"just inside", 50, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Collides(tt.x, tt.y, 15, 640, 480, 20, nil)
			if got != tt.want {
				t.Errorf("Collides(%f, %f) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCollides_Obstacle(t *testing.T) {
	obstacles := []Rect{{X: 180, Y: 140, Width: 120, Height: 30}}

	if !Collides(180, 140, 15, 640, 480, 20, obstacles) {
		t.Error("circle overlapping obstacle corner must collide")
	}
	if !Collides(240, 130, 15, 640, 480, 20, obstacles) {
		t.Error("circle touching obstacle edge must collide")
	}
	if Collides(240, 100, 15, 640, 480, 20, obstacles) {
		t.Error("circle clear of obstacle must not collide")
	}
}

func TestCollides_TranslationSymmetry(t *testing.T) {
	base := Rect{X: 180, Y: 140, Width: 120, Height: 30}
	shift := Rect{X: base.X + 37, Y: base.Y + 91, Width: base.Width, Height: base.Height}

	probes := []struct{ x, y float64 }{
		{185, 145}, {240, 128}, {310, 160}, {179, 139}, {400, 400},
	}
	for _, p := range probes {
		a := circleOverlapsRect(p.x, p.y, 12, base)
		b := circleOverlapsRect(p.x+37, p.y+91, 12, shift)
		if a != b {
			t.Errorf("verdict changed under translation at (%f, %f)", p.x, p.y)
		}
	}
}
