package main

import (
	"strings"
	"testing"

	"github.com/matst80/slask-wardrobe/pkg/catalog"
	"github.com/matst80/slask-wardrobe/pkg/types"
)

const productsCsv = `id;vendor_id;title;dress_type_ids;fabric_ids;price_mode;amount_total;available_sizes
p1;shop-1;Lawn suit;3;silk|chiffon;total;4500;S|M|L
;shop-1;missing id;3;;;;
p2;shop-2;Per meter;4;;per_unit_area;;
`

func TestProductRows(t *testing.T) {
	records, err := readCsv(strings.NewReader(productsCsv))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	rows := make([]catalog.Row, 0)
	for _, rec := range headerRows(records) {
		rows = append(rows, productRow(rec))
	}
	items := catalog.ParseItems(rows)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	first := items[0]
	if first.Id != "p1" || first.VendorId != "shop-1" {
		t.Errorf("unexpected ids %s %s", first.Id, first.VendorId)
	}
	if len(first.Attributes.FabricIds) != 2 || first.Attributes.FabricIds[1] != "chiffon" {
		t.Errorf("expected two fabrics, got %v", first.Attributes.FabricIds)
	}
	if first.Price.AmountTotal == nil || *first.Price.AmountTotal != 4500 {
		t.Errorf("expected total 4500, got %v", first.Price.AmountTotal)
	}
	if len(first.Price.AvailableSizes) != 3 {
		t.Errorf("expected 3 sizes, got %v", first.Price.AvailableSizes)
	}
	if items[1].Price.Mode != types.PerUnitArea {
		t.Errorf("expected per unit mode, got %s", items[1].Price.Mode)
	}
}

func TestPlainRows(t *testing.T) {
	records, err := readCsv(strings.NewReader("id;name;min_amount;max_amount;sort_order\nb1;Budget;;1000;1\n"))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	bands := catalog.ParseBands(plainRows(records))
	if len(bands) != 1 {
		t.Fatalf("expected 1 band, got %d", len(bands))
	}
	if bands[0].MinAmount != nil || *bands[0].MaxAmount != 1000 {
		t.Errorf("unexpected bounds %v %v", bands[0].MinAmount, bands[0].MaxAmount)
	}
}
