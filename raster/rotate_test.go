package raster

import (
	"image"
	"testing"
)

func TestParseRotation(t *testing.T) {
	for _, deg := range []int{0, 90, 180, 270} {
		rot, err := ParseRotation(deg)
		if err != nil {
			t.Errorf("ParseRotation(%d): %v", deg, err)
		}
		if int(rot) != deg {
			t.Errorf("ParseRotation(%d) = %v", deg, rot)
		}
	}
	for _, deg := range []int{45, -90, 360} {
		if _, err := ParseRotation(deg); err == nil {
			t.Errorf("ParseRotation(%d): expected error", deg)
		}
	}
}

func TestRotationApply(t *testing.T) {
	bounds := image.Rect(0, 0, 720, 720)
	p := image.Pt(100, 200)

	tests := []struct {
		rot  Rotation
		want image.Point
	}{
		{Rotate0, image.Pt(100, 200)},
		{Rotate90, image.Pt(519, 100)},
		{Rotate180, image.Pt(619, 519)},
		{Rotate270, image.Pt(200, 619)},
	}
	for _, tc := range tests {
		if got := tc.rot.Apply(p, bounds); got != tc.want {
			t.Errorf("Rotate%d.Apply(%v) = %v, want %v", tc.rot, p, got, tc.want)
		}
	}
}

// Rotating four times by 90° must give the identity, and every corner must
// stay inside the bounds.
func TestRotationRoundTrip(t *testing.T) {
	bounds := image.Rect(0, 0, 720, 720)
	corners := []image.Point{
		{0, 0}, {719, 0}, {0, 719}, {719, 719}, {360, 360},
	}
	for _, p := range corners {
		q := p
		for i := 0; i < 4; i++ {
			q = Rotate90.Apply(q, bounds)
			if !q.In(bounds) {
				t.Fatalf("rotation pushed %v out of bounds to %v", p, q)
			}
		}
		if q != p {
			t.Errorf("four rotations moved %v to %v", p, q)
		}
	}
}

func TestRotateImage(t *testing.T) {
	bounds := image.Rect(0, 0, 4, 4)
	src := image.NewRGBA(bounds)
	src.Set(1, 0, white)

	dst := image.NewRGBA(bounds)
	Rotate90.RotateImage(dst, src)

	// (1,0) lands at (h-1-0, 1) = (3,1).
	if !isSet(dst, 3, 1) {
		t.Error("rotated pixel not at (3,1)")
	}
	if got := countSet(dst); got != 1 {
		t.Errorf("set pixels = %d, want 1", got)
	}
}
