// ABOUTME: Unit conversion between display units and canonical storage units.
// ABOUTME: Weights are stored in kilograms, distances in kilometers.
package units

import (
	"fmt"
	"math"
)

// WeightUnit identifies a display unit for weights.
type WeightUnit string

// DistanceUnit identifies a display unit for distances.
type DistanceUnit string

const (
	Kilograms WeightUnit = "kg"
	Pounds    WeightUnit = "lb"

	Kilometers DistanceUnit = "km"
	Miles      DistanceUnit = "mi"
)

// Conversion factors. One kilogram is PoundsPerKilogram pounds;
// one kilometer is MilesPerKilometer miles.
const (
	PoundsPerKilogram = 2.2046226218
	MilesPerKilometer = 0.6213711922
)

// Round2 rounds a value to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseWeightUnit validates a weight unit string.
func ParseWeightUnit(s string) (WeightUnit, error) {
	switch WeightUnit(s) {
	case Kilograms, Pounds:
		return WeightUnit(s), nil
	}
	return "", fmt.Errorf("unknown weight unit: %q (use kg or lb)", s)
}

// ParseDistanceUnit validates a distance unit string.
func ParseDistanceUnit(s string) (DistanceUnit, error) {
	switch DistanceUnit(s) {
	case Kilometers, Miles:
		return DistanceUnit(s), nil
	}
	return "", fmt.Errorf("unknown distance unit: %q (use km or mi)", s)
}

// ToKilograms converts a display-unit weight to the canonical storage unit,
// rounded to two decimal places so stored values are already rounded.
func ToKilograms(v float64, unit WeightUnit) float64 {
	if unit == Pounds {
		v = v / PoundsPerKilogram
	}
	return Round2(v)
}

// FromKilograms converts a stored weight to the given display unit,
// rounded to two decimal places.
func FromKilograms(v float64, unit WeightUnit) float64 {
	if unit == Pounds {
		v = v * PoundsPerKilogram
	}
	return Round2(v)
}

// ToKilometers converts a display-unit distance to the canonical storage
// unit, rounded to two decimal places.
func ToKilometers(v float64, unit DistanceUnit) float64 {
	if unit == Miles {
		v = v / MilesPerKilometer
	}
	return Round2(v)
}

// FromKilometers converts a stored distance to the given display unit,
// rounded to two decimal places.
func FromKilometers(v float64, unit DistanceUnit) float64 {
	if unit == Miles {
		v = v * MilesPerKilometer
	}
	return Round2(v)
}
