package catalog

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-wardrobe/pkg/types"
)

// Row is one untyped record as returned by the backend.
type Row = map[string]any

var attributeKeys = map[types.Dimension]string{
	types.DressType:   "dress_type_ids",
	types.Fabric:      "fabric_ids",
	types.Color:       "color_ids",
	types.Work:        "work_ids",
	types.WorkDensity: "work_density_ids",
	types.OriginCity:  "origin_city_ids",
	types.WearState:   "wear_state_ids",
}

// DecodeRows decodes a JSON array of rows.
func DecodeRows(data []byte) ([]Row, error) {
	var rows []Row
	if err := sonic.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ParseItems converts raw rows to catalog items, skipping rows without an id.
func ParseItems(rows []Row) []types.CatalogItem {
	ret := make([]types.CatalogItem, 0, len(rows))
	for _, row := range rows {
		if item, ok := ParseItem(row); ok {
			ret = append(ret, item)
		}
	}
	return ret
}

func ParseItem(row Row) (types.CatalogItem, bool) {
	id := asId(row["id"])
	if id == "" {
		return types.CatalogItem{}, false
	}
	item := types.CatalogItem{
		Id:        id,
		VendorId:  asId(row["vendor_id"]),
		Title:     strings.TrimSpace(asString(row["title"])),
		CreatedAt: asTime(row["created_at"]),
		Price:     parsePrice(row["price"]),
	}
	attrs, _ := row["attributes"].(map[string]any)
	for dim, key := range attributeKeys {
		item.Attributes.SetIds(dim, asIds(attrs[key]))
	}
	return item, true
}

func parsePrice(v any) types.Price {
	raw, _ := v.(map[string]any)
	price := types.Price{
		Mode:           types.PriceMode(asString(raw["mode"])),
		AmountTotal:    asAmount(raw["amount_total"]),
		AmountPerUnit:  asAmount(raw["amount_per_unit"]),
		AvailableSizes: asStrings(raw["available_sizes"]),
	}
	if !price.Mode.Valid() {
		if price.AmountTotal == nil && price.AmountPerUnit != nil {
			price.Mode = types.PerUnitArea
		} else {
			price.Mode = types.Total
		}
	}
	return price
}

// ParseBands converts rows to price bands ordered by sort order, then id.
func ParseBands(rows []Row) []types.Band {
	ret := make([]types.Band, 0, len(rows))
	for _, row := range rows {
		id := asId(row["id"])
		if id == "" {
			continue
		}
		sortOrder := 0
		if v := asAmount(row["sort_order"]); v != nil {
			sortOrder = int(*v)
		}
		ret = append(ret, types.Band{
			Id:        id,
			Name:      asString(row["name"]),
			MinAmount: asAmount(row["min_amount"]),
			MaxAmount: asAmount(row["max_amount"]),
			SortOrder: sortOrder,
		})
	}
	slices.SortStableFunc(ret, func(a, b types.Band) int {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder - b.SortOrder
		}
		return strings.Compare(string(a.Id), string(b.Id))
	})
	return ret
}

func ParseNames(rows []Row) []types.NameEntry {
	ret := make([]types.NameEntry, 0, len(rows))
	for _, row := range rows {
		id := asId(row["id"])
		if id == "" {
			continue
		}
		ret = append(ret, types.NameEntry{Id: id, Name: strings.TrimSpace(asString(row["name"]))})
	}
	return ret
}

// ItemRow is the inverse of ParseItem, used when writing to the backend.
func ItemRow(item types.CatalogItem) Row {
	attrs := make(map[string]any, len(attributeKeys))
	for dim, key := range attributeKeys {
		attrs[key] = idStrings(item.Attributes.Ids(dim))
	}
	price := map[string]any{
		"mode": string(item.Price.Mode),
	}
	if item.Price.AmountTotal != nil {
		price["amount_total"] = *item.Price.AmountTotal
	}
	if item.Price.AmountPerUnit != nil {
		price["amount_per_unit"] = *item.Price.AmountPerUnit
	}
	if len(item.Price.AvailableSizes) > 0 {
		price["available_sizes"] = item.Price.AvailableSizes
	}
	return Row{
		"id":         string(item.Id),
		"vendor_id":  string(item.VendorId),
		"title":      item.Title,
		"created_at": item.CreatedAt,
		"attributes": attrs,
		"price":      price,
	}
}

func idStrings(ids []types.ValueId) []string {
	ret := make([]string, len(ids))
	for i, id := range ids {
		ret[i] = string(id)
	}
	return ret
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	case json.Number:
		return s.String()
	}
	if f := asAmount(v); f != nil {
		return strconv.FormatFloat(*f, 'f', -1, 64)
	}
	return ""
}

func asId(v any) types.ValueId {
	return types.ValueId(strings.TrimSpace(asString(v)))
}

func asIds(v any) []types.ValueId {
	var ret []types.ValueId
	switch list := v.(type) {
	case []any:
		ret = make([]types.ValueId, 0, len(list))
		for _, e := range list {
			if id := asId(e); id != "" {
				ret = append(ret, id)
			}
		}
	case []string:
		ret = make([]types.ValueId, 0, len(list))
		for _, e := range list {
			if id := asId(e); id != "" {
				ret = append(ret, id)
			}
		}
	default:
		if id := asId(v); id != "" {
			return []types.ValueId{id}
		}
		return []types.ValueId{}
	}
	return ret
}

func asStrings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]string); ok {
			return typed
		}
		return nil
	}
	ret := make([]string, 0, len(list))
	for _, e := range list {
		if s := strings.TrimSpace(asString(e)); s != "" {
			ret = append(ret, s)
		}
	}
	return ret
}

func asAmount(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed.UTC()
		}
	default:
		if secs := asAmount(v); secs != nil {
			return time.Unix(int64(*secs), 0).UTC()
		}
	}
	return time.Time{}
}
