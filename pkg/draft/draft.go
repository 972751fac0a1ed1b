package draft

import (
	"fmt"
	"math"

	"github.com/matst80/slask-wardrobe/pkg/types"
)

const DefaultPriceMode = types.Total

// Draft is the attribute set of one product under construction. Fields are only changed
// through setters so that a price mode switch can drop values that belong to the other mode.
type Draft struct {
	dressTypeId  types.ValueId
	sets         map[types.Dimension]types.IdList
	title        string
	inventoryQty int
	price        types.Price
}

func New() *Draft {
	d := &Draft{}
	d.Reset()
	return d
}

// Reset restores the empty draft, used after a save or an explicit cancel.
func (d *Draft) Reset() {
	d.dressTypeId = ""
	d.sets = make(map[types.Dimension]types.IdList, len(types.AttributeDimensions))
	for _, dim := range types.AttributeDimensions {
		d.sets[dim] = types.IdList{}
	}
	d.title = ""
	d.inventoryQty = 0
	d.price = types.Price{Mode: DefaultPriceMode}
}

// SetDressType selects the product's dress type and clears every attribute that depends on it.
func (d *Draft) SetDressType(id types.ValueId) {
	d.dressTypeId = id
	for _, dim := range types.AttributeDimensions {
		d.sets[dim] = types.IdList{}
	}
}

func (d *Draft) DressType() (types.ValueId, bool) {
	return d.dressTypeId, d.dressTypeId != ""
}

func (d *Draft) set(dim types.Dimension) (types.IdList, error) {
	if !dim.IsAttribute() {
		if dim.IsKnown() {
			return nil, fmt.Errorf("%w: %s is not a product attribute", types.ErrNotMultiValued, dim)
		}
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownDimension, dim)
	}
	return d.sets[dim], nil
}

func (d *Draft) Toggle(dim types.Dimension, id types.ValueId) (bool, error) {
	set, err := d.set(dim)
	if err != nil {
		return false, err
	}
	return set.Toggle(id), nil
}

func (d *Draft) Clear(dim types.Dimension) error {
	if dim == types.DressType {
		d.SetDressType("")
		return nil
	}
	if _, err := d.set(dim); err != nil {
		return err
	}
	d.sets[dim] = types.IdList{}
	return nil
}

func (d *Draft) Selected(dim types.Dimension) types.IdList {
	if dim == types.DressType {
		if d.dressTypeId == "" {
			return types.IdList{}
		}
		return types.NewIdList(d.dressTypeId)
	}
	return d.sets[dim]
}

func (d *Draft) SetTitle(title string) {
	d.title = title
}

func (d *Draft) Title() string {
	return d.title
}

// wholeAmount clamps v to [0, MaxInt32] and drops the fraction.
func wholeAmount(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return math.Trunc(v)
}

func (d *Draft) SetInventoryQty(v float64) {
	d.inventoryQty = int(wholeAmount(v))
}

func (d *Draft) InventoryQty() int {
	return d.inventoryQty
}

// SetPriceMode switches mode and clears the fields of the mode left behind. Switching to
// per unit area clears the total amount and sizes, switching to total clears the unit amount.
func (d *Draft) SetPriceMode(mode types.PriceMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriceMode, mode)
	}
	d.price.Mode = mode
	switch mode {
	case types.PerUnitArea:
		d.price.AmountTotal = nil
		d.price.AvailableSizes = nil
	case types.Total:
		d.price.AmountPerUnit = nil
	}
	return nil
}

func (d *Draft) SetAmountTotal(v float64) {
	d.price.AmountTotal = types.Amount(wholeAmount(v))
}

func (d *Draft) SetAmountPerUnit(v float64) {
	d.price.AmountPerUnit = types.Amount(wholeAmount(v))
}

// SetAvailableSizes stores the sizes as given. They only mean something in total mode.
func (d *Draft) SetAvailableSizes(sizes []string) {
	d.price.AvailableSizes = append([]string(nil), sizes...)
}

// Price returns a copy of the draft price holding only the fields of the current mode.
// Values set for the other mode are left out.
func (d *Draft) Price() types.Price {
	p := types.Price{Mode: d.price.Mode}
	switch p.Mode {
	case types.PerUnitArea:
		if d.price.AmountPerUnit != nil {
			p.AmountPerUnit = types.Amount(*d.price.AmountPerUnit)
		}
	default:
		if d.price.AmountTotal != nil {
			p.AmountTotal = types.Amount(*d.price.AmountTotal)
		}
		p.AvailableSizes = append([]string(nil), d.price.AvailableSizes...)
	}
	return p
}

func (d *Draft) SelectedIds(dim types.Dimension) []types.ValueId {
	return d.Selected(dim).Ids()
}
