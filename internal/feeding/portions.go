package feeding

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PortionForm is the physical form a feed is served in. It drives how
// gram amounts are described to the user, independent of the shelf-life
// category.
type PortionForm string

const (
	FormFlakes  PortionForm = "flakes"
	FormPellets PortionForm = "pellets"
	FormWafers  PortionForm = "wafers"
	FormCubes   PortionForm = "cubes"
	FormGeneric PortionForm = "generic"
)

const (
	// milligramThresholdGrams is the point below which amounts are
	// easier to read in milligrams.
	milligramThresholdGrams = 0.1

	gramsPerPellet = 0.02
	gramsPerWafer  = 0.5
	gramsPerCube   = 3.0
)

// DetectForm guesses the serving form from a raw feed name or label.
func DetectForm(feedName string) PortionForm {
	name := strings.ToLower(feedName)
	switch {
	case strings.Contains(name, "flake"):
		return FormFlakes
	case strings.Contains(name, "pellet") || strings.Contains(name, "granule"):
		return FormPellets
	case strings.Contains(name, "wafer"):
		return FormWafers
	case strings.Contains(name, "cube"):
		return FormCubes
	default:
		return FormGeneric
	}
}

// DescribePortion renders a gram amount as a serving in the feed's own
// unit. Purely cosmetic; the numeric forecasts never depend on it.
func DescribePortion(grams float64, form PortionForm) string {
	if grams <= 0 {
		return "none"
	}
	if grams < milligramThresholdGrams {
		return fmt.Sprintf("%.0f mg", grams*1000)
	}

	switch form {
	case FormFlakes:
		return describeFlakes(grams)
	case FormPellets:
		count := int(math.Round(grams / gramsPerPellet))
		if count < 1 {
			count = 1
		}
		if count == 1 {
			return "about 1 pellet"
		}
		return fmt.Sprintf("about %d pellets", count)
	case FormWafers:
		return describeUnits(grams, gramsPerWafer, "wafer", "wafers")
	case FormCubes:
		return describeUnits(grams, gramsPerCube, "cube", "cubes")
	default:
		return fmt.Sprintf("%.1f g", grams)
	}
}

// DescribePortionFor is DescribePortion with the form detected from a
// raw feed name.
func DescribePortionFor(grams float64, feedName string) string {
	return DescribePortion(grams, DetectForm(feedName))
}

func describeFlakes(grams float64) string {
	switch {
	case grams < 0.3:
		return "a small pinch of flakes"
	case grams < 0.8:
		return "a pinch of flakes"
	case grams < 1.5:
		return "a generous pinch of flakes"
	default:
		pinches := int(math.Round(grams / 0.5))
		return fmt.Sprintf("about %d pinches of flakes", pinches)
	}
}

// describeUnits renders a fractional unit count rounded to the nearest
// quarter, never below a quarter.
func describeUnits(grams, gramsPerUnit float64, singular, plural string) string {
	count := math.Round(grams/gramsPerUnit*4) / 4
	if count < 0.25 {
		count = 0.25
	}
	label := plural
	if count == 1 {
		label = singular
	}
	return fmt.Sprintf("about %s %s", trimFloat(count), label)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
