package raster

import "math"

// Angles for clock hands in radians, standard math convention where 0 points
// right, rotated by -π/2 so that 12 o'clock points up. Seconds may carry
// fractions for smooth second hand movement.

func HourAngle(hours, minutes, seconds float64) float64 {
	h := math.Mod(hours, 12)
	return (h+minutes/60+seconds/3600)*math.Pi/6 - math.Pi/2
}

func MinuteAngle(minutes, seconds float64) float64 {
	return (minutes+seconds/60)*math.Pi/30 - math.Pi/2
}

func SecondAngle(seconds float64) float64 {
	return seconds*math.Pi/30 - math.Pi/2
}

// NeedleAngle converts a needle angle in degrees, 0° pointing up and
// clockwise positive, to radians in math convention.
func NeedleAngle(deg float64) float64 {
	return (deg - 90) * math.Pi / 180
}
