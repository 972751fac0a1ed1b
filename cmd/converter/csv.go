package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matst80/slask-wardrobe/pkg/catalog"
)

const listSeparator = "|"

var productAttributeColumns = []string{
	"dress_type_ids",
	"fabric_ids",
	"color_ids",
	"work_ids",
	"work_density_ids",
	"origin_city_ids",
	"wear_state_ids",
}

func readCsv(r io.Reader) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = ';'
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	return csvReader.ReadAll()
}

func readCsvFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := readCsv(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// headerRows maps every record after the header to a header keyed row.
func headerRows(records [][]string) []map[string]string {
	if len(records) == 0 {
		return nil
	}
	header := records[0]
	ret := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(record) {
				row[strings.TrimSpace(key)] = strings.TrimSpace(record[i])
			}
		}
		ret = append(ret, row)
	}
	return ret
}

func splitList(v string) []any {
	ret := make([]any, 0)
	for _, part := range strings.Split(v, listSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			ret = append(ret, part)
		}
	}
	return ret
}

// productRow turns a flat csv product into the nested row shape the catalog parses.
func productRow(rec map[string]string) catalog.Row {
	attrs := make(map[string]any, len(productAttributeColumns))
	for _, col := range productAttributeColumns {
		attrs[col] = splitList(rec[col])
	}
	price := map[string]any{
		"available_sizes": splitList(rec["available_sizes"]),
	}
	if v := rec["price_mode"]; v != "" {
		price["mode"] = v
	}
	if v := rec["amount_total"]; v != "" {
		price["amount_total"] = v
	}
	if v := rec["amount_per_unit"]; v != "" {
		price["amount_per_unit"] = v
	}
	return catalog.Row{
		"id":         rec["id"],
		"vendor_id":  rec["vendor_id"],
		"title":      rec["title"],
		"created_at": rec["created_at"],
		"attributes": attrs,
		"price":      price,
	}
}

func plainRows(records [][]string) []catalog.Row {
	rows := headerRows(records)
	ret := make([]catalog.Row, 0, len(rows))
	for _, rec := range rows {
		row := make(catalog.Row, len(rec))
		for k, v := range rec {
			if v != "" {
				row[k] = v
			}
		}
		ret = append(ret, row)
	}
	return ret
}
