package types

import (
	"errors"
	"testing"
)

func TestParseDimension(t *testing.T) {
	cases := []struct {
		in   string
		want Dimension
	}{
		{"dressType", DressType},
		{"dress_type", DressType},
		{"dress-type", DressType},
		{"WorkDensity", WorkDensity},
		{" origin_city ", OriginCity},
		{"price-band", PriceBand},
		{"vendor", Vendor},
	}
	for _, c := range cases {
		got, err := ParseDimension(c.in)
		if err != nil {
			t.Errorf("ParseDimension(%q) returned %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDimension(%q) = %s, expected %s", c.in, got, c.want)
		}
	}

	if _, err := ParseDimension("size"); !errors.Is(err, ErrUnknownDimension) {
		t.Errorf("expected unknown dimension error, got %v", err)
	}
}

func TestDimensionKinds(t *testing.T) {
	if DressType.IsMultiValued() {
		t.Error("dress type is single valued")
	}
	if !PriceBand.IsMultiValued() || PriceBand.IsAttribute() {
		t.Error("price band is a multi valued filter-only dimension")
	}
	if !Vendor.IsMultiValued() || Vendor.IsAttribute() {
		t.Error("vendor is a multi valued filter-only dimension")
	}
	for _, dim := range AttributeDimensions {
		if !dim.IsAttribute() || !dim.IsMultiValued() {
			t.Errorf("%s should be a multi valued attribute", dim)
		}
	}
	if Dimension("size").IsKnown() {
		t.Error("size is not a dimension")
	}
}

func TestBandValid(t *testing.T) {
	if !(Band{MinAmount: Amount(10)}).Valid() {
		t.Error("open upper bound is valid")
	}
	if (Band{MinAmount: Amount(10), MaxAmount: Amount(5)}).Valid() {
		t.Error("min above max is invalid")
	}
}
