package catalog

import (
	"testing"
	"time"

	"github.com/matst80/slask-wardrobe/pkg/types"
	"github.com/stretchr/testify/assert"
)

const rowsJson = `[
	{
		"id": 12,
		"vendor_id": "shop-1",
		"title": "  Embroidered lawn  ",
		"created_at": "2024-03-01T10:00:00Z",
		"attributes": {
			"dress_type_ids": [3, "4"],
			"fabric_ids": ["silk", "", null],
			"color_ids": null,
			"work_ids": "zari"
		},
		"price": {"mode": "total", "amount_total": "5000", "available_sizes": ["S", "M", ""]}
	},
	{"title": "no id"},
	{"id": "p2", "price": {"amount_per_unit": 750.5}}
]`

func TestParseItems(t *testing.T) {
	rows, err := DecodeRows([]byte(rowsJson))
	assert.NoError(t, err)
	items := ParseItems(rows)
	if !assert.Len(t, items, 2) {
		return
	}

	first := items[0]
	assert.Equal(t, types.ValueId("12"), first.Id)
	assert.Equal(t, types.ValueId("shop-1"), first.VendorId)
	assert.Equal(t, "Embroidered lawn", first.Title)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), first.CreatedAt)
	assert.Equal(t, []types.ValueId{"3", "4"}, first.Attributes.DressTypeIds)
	assert.Equal(t, []types.ValueId{"silk"}, first.Attributes.FabricIds)
	assert.Equal(t, []types.ValueId{}, first.Attributes.ColorIds)
	assert.Equal(t, []types.ValueId{"zari"}, first.Attributes.WorkIds)
	assert.Equal(t, []types.ValueId{}, first.Attributes.WearStateIds)
	assert.Equal(t, types.Total, first.Price.Mode)
	assert.Equal(t, 5000.0, *first.Price.AmountTotal)
	assert.Equal(t, []string{"S", "M"}, first.Price.AvailableSizes)

	second := items[1]
	assert.Equal(t, types.PerUnitArea, second.Price.Mode)
	assert.Nil(t, second.Price.AmountTotal)
	assert.Equal(t, 750.5, *second.Price.AmountPerUnit)
	assert.True(t, second.CreatedAt.IsZero())
}

func TestParseBandsSorted(t *testing.T) {
	rows := []Row{
		{"id": "b3", "name": "Premium", "min_amount": 10000.0, "max_amount": nil, "sort_order": 3.0},
		{"id": "b1", "name": "Budget", "max_amount": int64(2000), "sort_order": int64(1)},
		{"id": "", "name": "broken"},
		{"id": "b2", "name": "Mid", "min_amount": 2001, "max_amount": "9999", "sort_order": 2},
	}
	bands := ParseBands(rows)
	if !assert.Len(t, bands, 3) {
		return
	}
	assert.Equal(t, types.ValueId("b1"), bands[0].Id)
	assert.Nil(t, bands[0].MinAmount)
	assert.Equal(t, 2000.0, *bands[0].MaxAmount)
	assert.Equal(t, types.ValueId("b2"), bands[1].Id)
	assert.Equal(t, 9999.0, *bands[1].MaxAmount)
	assert.Equal(t, types.ValueId("b3"), bands[2].Id)
	assert.Nil(t, bands[2].MaxAmount)
}

func TestParseNames(t *testing.T) {
	names := ParseNames([]Row{{"id": 1.0, "name": " Red "}, {"name": "orphan"}})
	assert.Equal(t, []types.NameEntry{{Id: "1", Name: "Red"}}, names)
}

func TestItemRowRoundTrip(t *testing.T) {
	item := types.CatalogItem{
		Id:        "p1",
		VendorId:  "v1",
		Title:     "Chiffon",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Attributes: types.ItemAttributes{
			DressTypeIds: []types.ValueId{"3"},
			FabricIds:    []types.ValueId{"silk"},
		},
		Price: types.Price{Mode: types.Total, AmountTotal: types.Amount(100), AvailableSizes: []string{"L"}},
	}
	parsed, ok := ParseItem(ItemRow(item))
	assert.True(t, ok)
	assert.Equal(t, item.Id, parsed.Id)
	assert.Equal(t, item.CreatedAt, parsed.CreatedAt)
	assert.Equal(t, item.Attributes.FabricIds, parsed.Attributes.FabricIds)
	assert.Equal(t, []types.ValueId{}, parsed.Attributes.ColorIds)
	assert.Equal(t, item.Price, parsed.Price)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, MaxItems, ClampLimit(0))
	assert.Equal(t, MaxItems, ClampLimit(-1))
	assert.Equal(t, MaxItems, ClampLimit(1000))
	assert.Equal(t, 10, ClampLimit(10))
}
