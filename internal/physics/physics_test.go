package physics

import "testing"

func TestRectClamp(t *testing.T) {
	r := NewRect(120, 80)
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"inside", Vec2{10, 10}, Vec2{10, 10}},
		{"left", Vec2{-5, 10}, Vec2{0, 10}},
		{"bottom right", Vec2{200, 90}, Vec2{120, 80}},
		{"edge", Vec2{120, 0}, Vec2{120, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Clamp(tt.in); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10)
	if !r.Contains(Vec2{0, 10}) {
		t.Error("edge point should be contained")
	}
	if r.Contains(Vec2{10.01, 5}) {
		t.Error("point past the right edge should not be contained")
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(10, 4).Inset(3)
	if r.MinX != 3 || r.MaxX != 7 {
		t.Errorf("x range = [%v, %v], want [3, 7]", r.MinX, r.MaxX)
	}
	if r.MinY != 2 || r.MaxY != 2 {
		t.Errorf("collapsed y range = [%v, %v], want [2, 2]", r.MinY, r.MaxY)
	}

	grown := NewRect(10, 10).Inset(-5)
	if grown.MinX != -5 || grown.MaxY != 15 {
		t.Errorf("negative inset = %+v, want grown rect", grown)
	}
}

func TestCircles(t *testing.T) {
	if !PointInCircle(3, 4, 0, 0, 5) {
		t.Error("point on the circle edge should be inside")
	}
	if CirclesOverlap(0, 0, 1, 2, 0, 1) {
		t.Error("touching circles should not overlap")
	}
	if !Overlap(Vec2{0, 0}, 1.5, Vec2{2, 0}, 1) {
		t.Error("expected overlap")
	}
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
}

func TestVecOps(t *testing.T) {
	v := Vec2{1, 2}.Add(Vec2{3, 4}).Scale(0.5)
	if v != (Vec2{2, 3}) {
		t.Errorf("got %v, want {2 3}", v)
	}
}
