package types

import (
	"fmt"
	"strings"
)

// Dimension is one attribute axis products can be tagged with.
type Dimension string

const (
	DressType   Dimension = "dressType"
	Fabric      Dimension = "fabric"
	Color       Dimension = "color"
	Work        Dimension = "work"
	WorkDensity Dimension = "workDensity"
	OriginCity  Dimension = "originCity"
	WearState   Dimension = "wearState"
	PriceBand   Dimension = "priceBand"
	Vendor      Dimension = "vendor"
)

// AttributeDimensions are the multi-valued dimensions carried as id arrays on catalog items.
var AttributeDimensions = []Dimension{Fabric, Color, Work, WorkDensity, OriginCity, WearState}

var MultiValuedDimensions = []Dimension{Fabric, Color, Work, WorkDensity, OriginCity, WearState, PriceBand, Vendor}

var Dimensions = []Dimension{DressType, Fabric, Color, Work, WorkDensity, OriginCity, WearState, PriceBand, Vendor}

func (d Dimension) IsMultiValued() bool {
	return d != DressType && d.IsKnown()
}

func (d Dimension) IsAttribute() bool {
	switch d {
	case Fabric, Color, Work, WorkDensity, OriginCity, WearState:
		return true
	}
	return false
}

func (d Dimension) IsKnown() bool {
	for _, known := range Dimensions {
		if d == known {
			return true
		}
	}
	return false
}

func dimensionKey(s string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(s)))
}

// ParseDimension accepts camelCase, snake_case and kebab-case spellings.
func ParseDimension(s string) (Dimension, error) {
	key := dimensionKey(s)
	for _, d := range Dimensions {
		if dimensionKey(string(d)) == key {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}
