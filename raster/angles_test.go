package raster

import (
	"math"
	"testing"
)

func TestHourAngle(t *testing.T) {
	// 3 o'clock points right, angle 0 in math convention.
	if got := HourAngle(3, 0, 0); math.Abs(got) > 1e-9 {
		t.Errorf("HourAngle(3,0,0) = %v, want 0", got)
	}
	// 12 o'clock points up.
	if got := HourAngle(12, 0, 0); math.Abs(got- -math.Pi/2) > 1e-9 {
		t.Errorf("HourAngle(12,0,0) = %v, want -π/2", got)
	}
	// 6 o'clock points down.
	if got := HourAngle(6, 0, 0); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("HourAngle(6,0,0) = %v, want π/2", got)
	}
	// Minutes move the hour hand along.
	if got := HourAngle(3, 30, 0); math.Abs(got-math.Pi/12) > 1e-9 {
		t.Errorf("HourAngle(3,30,0) = %v, want π/12", got)
	}
	// The hand shows the same angle on a 24 hour clock.
	if a, b := HourAngle(0, 0, 0), HourAngle(12, 0, 0); math.Abs(a-b) > 1e-9 {
		t.Errorf("HourAngle(0) = %v, HourAngle(12) = %v", a, b)
	}
}

func TestMinuteAngle(t *testing.T) {
	if got := MinuteAngle(15, 0); math.Abs(got) > 1e-9 {
		t.Errorf("MinuteAngle(15,0) = %v, want 0", got)
	}
	if got := MinuteAngle(0, 0); math.Abs(got- -math.Pi/2) > 1e-9 {
		t.Errorf("MinuteAngle(0,0) = %v, want -π/2", got)
	}
	// Seconds sweep the minute hand smoothly.
	if a, b := MinuteAngle(15, 30), MinuteAngle(15.5, 0); math.Abs(a-b) > 1e-9 {
		t.Errorf("MinuteAngle(15,30) = %v, MinuteAngle(15.5,0) = %v", a, b)
	}
}

func TestSecondAngle(t *testing.T) {
	if got := SecondAngle(15); math.Abs(got) > 1e-9 {
		t.Errorf("SecondAngle(15) = %v, want 0", got)
	}
	if got := SecondAngle(45); math.Abs(got-math.Pi) > 1e-9 {
		t.Errorf("SecondAngle(45) = %v, want π", got)
	}
}

func TestNeedleAngle(t *testing.T) {
	// 0° points up, positive angles lean right.
	if got := NeedleAngle(0); math.Abs(got- -math.Pi/2) > 1e-9 {
		t.Errorf("NeedleAngle(0) = %v, want -π/2", got)
	}
	if got := NeedleAngle(90); math.Abs(got) > 1e-9 {
		t.Errorf("NeedleAngle(90) = %v, want 0", got)
	}
	if got := NeedleAngle(-90); math.Abs(got-(-math.Pi)) > 1e-9 {
		t.Errorf("NeedleAngle(-90) = %v, want -π", got)
	}
}
