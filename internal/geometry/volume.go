// Package geometry converts tank dimensions into water volume estimates.
//
// The calculations are deliberately total: malformed or non-positive
// dimensions produce 0 liters instead of an error so that downstream
// planning always has a number to work with.
package geometry

import (
	"math"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

const (
	// cubicCentimetersPerLiter converts cm³ volumes into liters.
	cubicCentimetersPerLiter = 1000.0

	// bowlVolumeLiters is the fixed estimate used for bowl tanks. Bowls
	// are rarely measured precisely by hobbyists, so a conservative
	// constant beats trusting whatever dimensions were typed in.
	bowlVolumeLiters = 10.0
)

// VolumeLiters estimates the water volume of a single tank in liters.
//
// Rectangles use length*width*height. Cylinders treat length as the
// diameter and ignore width. Bowls always report the fixed bowl volume.
// Unrecognized shapes fall back to the rectangle formula. The result is
// never negative.
func VolumeLiters(g domain.TankGeometry) float64 {
	length, width, height := g.DimensionsCm()

	switch g.Shape {
	case domain.ShapeBowl:
		return bowlVolumeLiters
	case domain.ShapeCylinder:
		if length <= 0 || height <= 0 {
			return 0
		}
		radius := length / 2
		return math.Pi * radius * radius * height / cubicCentimetersPerLiter
	case domain.ShapeRectangle:
		return rectangleVolumeLiters(length, width, height)
	default:
		return rectangleVolumeLiters(length, width, height)
	}
}

// TotalVolumeLiters sums the estimated volume across several tanks.
func TotalVolumeLiters(tanks []domain.TankGeometry) float64 {
	var total float64
	for _, tank := range tanks {
		total += VolumeLiters(tank)
	}
	return total
}

func rectangleVolumeLiters(length, width, height float64) float64 {
	if length <= 0 || width <= 0 || height <= 0 {
		return 0
	}
	return length * width * height / cubicCentimetersPerLiter
}
