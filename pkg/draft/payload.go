package draft

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/matst80/slask-wardrobe/pkg/types"
)

var (
	ErrInvalidPriceMode = errors.New("invalid price mode")
	ErrMissingTitle     = errors.New("title is required")
	ErrMissingDressType = errors.New("dress type is required")
	ErrMissingPrice     = errors.New("price is required for the selected mode")
)

// Payload is the catalog item shape a draft is saved as.
type Payload struct {
	Id           types.ValueId        `json:"id"`
	VendorId     types.ValueId        `json:"vendorId"`
	Title        string               `json:"title"`
	InventoryQty int                  `json:"inventoryQty"`
	CreatedAt    time.Time            `json:"createdAt"`
	Attributes   types.ItemAttributes `json:"attributes"`
	Price        types.Price          `json:"price"`
}

// Validate checks what a save needs. Setters never validate.
func (d *Draft) Validate() error {
	var errs []error
	if d.title == "" {
		errs = append(errs, ErrMissingTitle)
	}
	if d.dressTypeId == "" {
		errs = append(errs, ErrMissingDressType)
	}
	var amount *float64
	if d.price.Mode == types.PerUnitArea {
		amount = d.price.AmountPerUnit
	} else {
		amount = d.price.AmountTotal
	}
	if amount == nil || *amount <= 0 {
		errs = append(errs, ErrMissingPrice)
	}
	return errors.Join(errs...)
}

// Payload serializes the draft into the attribute id arrays a catalog item carries.
func (d *Draft) Payload(id, vendorId types.ValueId, now time.Time) Payload {
	attrs := types.ItemAttributes{
		DressTypeIds: []types.ValueId{},
	}
	if d.dressTypeId != "" {
		attrs.DressTypeIds = []types.ValueId{d.dressTypeId}
	}
	for _, dim := range types.AttributeDimensions {
		attrs.SetIds(dim, d.sets[dim].Ids())
	}
	return Payload{
		Id:           id,
		VendorId:     vendorId,
		Title:        d.title,
		InventoryQty: d.inventoryQty,
		CreatedAt:    now.UTC(),
		Attributes:   attrs,
		Price:        d.Price(),
	}
}

// Item is the catalog view of a saved payload.
func (p Payload) Item() types.CatalogItem {
	return types.CatalogItem{
		Id:         p.Id,
		VendorId:   p.VendorId,
		Title:      p.Title,
		CreatedAt:  p.CreatedAt,
		Attributes: p.Attributes,
		Price:      p.Price,
	}
}

func (d *Draft) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"dressTypeId":  nil,
		"title":        d.title,
		"inventoryQty": d.inventoryQty,
		"price":        d.Price(),
	}
	if d.dressTypeId != "" {
		out["dressTypeId"] = d.dressTypeId
	}
	for _, dim := range types.AttributeDimensions {
		out[string(dim)] = d.sets[dim].Ids()
	}
	return json.Marshal(out)
}
