package docx

import "math"

// Word measures font sizes in half-points and most lengths in twips
// (twentieths of a point). Border widths are in eighths of a point.

// HalfPoints converts a font size in points to half-points.
func HalfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}

// Twips converts points to twips.
func Twips(pt float64) int {
	return int(math.Round(pt * 20))
}
