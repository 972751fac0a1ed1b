package facet

import (
	"github.com/matst80/slask-wardrobe/pkg/types"
)

// Selection is the filter state the engine reads. Selected must return the set for a
// multi-valued dimension; the engine never modifies it.
type Selection interface {
	DressType() (types.ValueId, bool)
	Selected(dim types.Dimension) types.IdList
}

// Bands maps price band ids to bands.
type Bands map[types.ValueId]types.Band

func NewBands(bands []types.Band) Bands {
	ret := make(Bands, len(bands))
	for _, b := range bands {
		ret[b.Id] = b
	}
	return ret
}

// MatchesDimension is true when nothing is selected or when the item carries at least one
// of the selected ids.
func MatchesDimension(selected types.IdList, itemIds []types.ValueId) bool {
	if len(selected) == 0 {
		return true
	}
	return selected.HasIntersection(itemIds)
}

// MatchesDressType is true when no dress type is required or the item is tagged with it.
func MatchesDressType(id types.ValueId, itemIds []types.ValueId) bool {
	if id == "" {
		return true
	}
	for _, itemId := range itemIds {
		if itemId == id {
			return true
		}
	}
	return false
}

// MatchesItem requires every dimension to match independently. Vendor is matched on top of
// the attribute and price band dimensions: a non-empty vendor selection keeps only items of
// those vendors.
func MatchesItem(sel Selection, bands Bands, item *types.CatalogItem) bool {
	dressType, _ := sel.DressType()
	if !MatchesDressType(dressType, item.Attributes.DressTypeIds) {
		return false
	}
	for _, dim := range types.AttributeDimensions {
		if !MatchesDimension(sel.Selected(dim), item.Attributes.Ids(dim)) {
			return false
		}
	}
	if vendors := sel.Selected(types.Vendor); len(vendors) > 0 && !vendors.Contains(item.VendorId) {
		return false
	}
	return MatchesPriceBand(sel.Selected(types.PriceBand), bands, ComparablePrice(item.Price))
}

// FilterCatalog keeps the matching items in input order.
func FilterCatalog(items []types.CatalogItem, sel Selection, bands Bands) []types.CatalogItem {
	ret := make([]types.CatalogItem, 0, len(items))
	for i := range items {
		if MatchesItem(sel, bands, &items[i]) {
			ret = append(ret, items[i])
		}
	}
	return ret
}
