package domain

import (
	"fmt"
	"time"
)

// TankShape identifies the silhouette used to derive a tank's volume.
type TankShape string

const (
	ShapeRectangle TankShape = "rectangle"
	ShapeBowl      TankShape = "bowl"
	ShapeCylinder  TankShape = "cylinder"
)

// LengthUnit is the measurement unit of tank dimensions.
type LengthUnit string

const (
	UnitCentimeters LengthUnit = "cm"
	UnitInches      LengthUnit = "in"
)

// CentimetersPerInch is applied to every dimension before any volume formula runs.
const CentimetersPerInch = 2.54

// TankGeometry describes the physical dimensions of a tank. Volume is always
// derived from geometry on demand, never stored next to it, so the two cannot
// drift apart when the geometry is edited.
type TankGeometry struct {
	Shape  TankShape  `json:"shape"`
	Length float64    `json:"length"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Unit   LengthUnit `json:"unit"`
}

// DimensionsCm returns length, width and height normalized to centimeters.
func (g TankGeometry) DimensionsCm() (length, width, height float64) {
	if g.Unit == UnitInches {
		return g.Length * CentimetersPerInch, g.Width * CentimetersPerInch, g.Height * CentimetersPerInch
	}
	return g.Length, g.Width, g.Height
}

// TankRecord is a stored tank: a display name plus its geometry.
type TankRecord struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Geometry  TankGeometry      `json:"geometry"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// TankNotFoundError represents an error when a tank is not found
type TankNotFoundError struct {
	ID string
}

func (e *TankNotFoundError) Error() string {
	return fmt.Sprintf("tank with ID '%s' not found", e.ID)
}
