package types

import "time"

type PriceMode string

const (
	PerUnitArea PriceMode = "per_unit_area"
	Total       PriceMode = "total"
)

func (m PriceMode) Valid() bool {
	return m == PerUnitArea || m == Total
}

// Price is either a total amount (optionally with available sizes) or an amount per unit of
// fabric area. Unset amounts are nil.
type Price struct {
	Mode           PriceMode `json:"mode"`
	AmountTotal    *float64  `json:"amountTotal,omitempty"`
	AmountPerUnit  *float64  `json:"amountPerUnit,omitempty"`
	AvailableSizes []string  `json:"availableSizes,omitempty"`
}

type ItemAttributes struct {
	DressTypeIds   []ValueId `json:"dressTypeIds"`
	FabricIds      []ValueId `json:"fabricIds"`
	ColorIds       []ValueId `json:"colorIds"`
	WorkIds        []ValueId `json:"workIds"`
	WorkDensityIds []ValueId `json:"workDensityIds"`
	OriginCityIds  []ValueId `json:"originCityIds"`
	WearStateIds   []ValueId `json:"wearStateIds"`
}

// Ids returns the item's tags for a dimension. Dimensions not carried on items return nil.
func (a *ItemAttributes) Ids(dim Dimension) []ValueId {
	switch dim {
	case DressType:
		return a.DressTypeIds
	case Fabric:
		return a.FabricIds
	case Color:
		return a.ColorIds
	case Work:
		return a.WorkIds
	case WorkDensity:
		return a.WorkDensityIds
	case OriginCity:
		return a.OriginCityIds
	case WearState:
		return a.WearStateIds
	}
	return nil
}

func (a *ItemAttributes) SetIds(dim Dimension, ids []ValueId) {
	switch dim {
	case DressType:
		a.DressTypeIds = ids
	case Fabric:
		a.FabricIds = ids
	case Color:
		a.ColorIds = ids
	case Work:
		a.WorkIds = ids
	case WorkDensity:
		a.WorkDensityIds = ids
	case OriginCity:
		a.OriginCityIds = ids
	case WearState:
		a.WearStateIds = ids
	}
}

// CatalogItem is a product as supplied by the catalog. It is never mutated by the core.
type CatalogItem struct {
	Id         ValueId        `json:"id"`
	VendorId   ValueId        `json:"vendorId"`
	Title      string         `json:"title"`
	CreatedAt  time.Time      `json:"createdAt"`
	Attributes ItemAttributes `json:"attributes"`
	Price      Price          `json:"price"`
}

// Band is a named price range. A nil bound is unbounded on that side.
type Band struct {
	Id        ValueId  `json:"id"`
	Name      string   `json:"name"`
	MinAmount *float64 `json:"minAmount"`
	MaxAmount *float64 `json:"maxAmount"`
	SortOrder int      `json:"sortOrder"`
}

// Valid reports whether the bounds are ordered. Bands with min > max never match.
func (b Band) Valid() bool {
	if b.MinAmount == nil || b.MaxAmount == nil {
		return true
	}
	return *b.MinAmount <= *b.MaxAmount
}

type NameEntry struct {
	Id   ValueId `json:"id"`
	Name string  `json:"name"`
}
