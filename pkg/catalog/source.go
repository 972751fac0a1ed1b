package catalog

import (
	"context"
	"errors"

	"github.com/matst80/slask-wardrobe/pkg/types"
)

// MaxItems caps a single catalog fetch. There is no pagination.
const MaxItems = 250

var ErrUnknownCollection = errors.New("no collection for dimension")

// Source is the remote catalog and lookup storage.
type Source interface {
	FetchItems(ctx context.Context, limit int) ([]types.CatalogItem, error)
	FetchNames(ctx context.Context, dim types.Dimension) ([]types.NameEntry, error)
	FetchPriceBands(ctx context.Context) ([]types.Band, error)
}

// ClampLimit keeps a requested row count within 1..MaxItems, zero or less meaning MaxItems.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxItems {
		return MaxItems
	}
	return limit
}

// BandNames turns the band table into the name table of the price band dimension.
func BandNames(bands []types.Band) []types.NameEntry {
	ret := make([]types.NameEntry, 0, len(bands))
	for _, b := range bands {
		ret = append(ret, types.NameEntry{Id: b.Id, Name: b.Name})
	}
	return ret
}

// Collections names the backend tables.
type Collections struct {
	Products   string
	PriceBands string
	Names      map[types.Dimension]string
}

var DefaultCollections = Collections{
	Products:   "products",
	PriceBands: "price_bands",
	Names: map[types.Dimension]string{
		types.DressType:   "dress_types",
		types.Fabric:      "fabrics",
		types.Color:       "colors",
		types.Work:        "works",
		types.WorkDensity: "work_densities",
		types.OriginCity:  "origin_cities",
		types.WearState:   "wear_states",
		types.Vendor:      "shops",
	},
}
