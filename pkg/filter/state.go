package filter

import (
	"encoding/json"
	"fmt"

	"github.com/matst80/slask-wardrobe/pkg/types"
)

// State holds a buyer's current selection per dimension.
//
// Dress type is single-valued; every other dimension is a set where an empty set means ANY.
// Changing the dress type clears every multi-valued dimension except vendor. State is not
// safe for concurrent use; callers serialize access (see session.Session).
type State struct {
	dressTypeId  types.ValueId
	dressTypeIds []types.ValueId
	sets         map[types.Dimension]types.IdList
}

func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset drops every selection, vendor included.
func (s *State) Reset() {
	s.dressTypeId = ""
	s.dressTypeIds = []types.ValueId{}
	s.sets = make(map[types.Dimension]types.IdList, len(types.MultiValuedDimensions))
	for _, dim := range types.MultiValuedDimensions {
		s.sets[dim] = types.IdList{}
	}
}

// SetDressType selects a dress type, an empty id unsets it. Every call clears the dependent
// dimensions, also when id equals the current dress type.
func (s *State) SetDressType(id types.ValueId) {
	s.dressTypeId = id
	if id == "" {
		s.dressTypeIds = []types.ValueId{}
	} else {
		s.dressTypeIds = []types.ValueId{id}
	}
	for _, dim := range types.MultiValuedDimensions {
		if dim == types.Vendor {
			continue
		}
		s.sets[dim] = types.IdList{}
	}
}

func (s *State) DressType() (types.ValueId, bool) {
	return s.dressTypeId, s.dressTypeId != ""
}

// DressTypeIds is the zero-or-one element projection of the dress type.
func (s *State) DressTypeIds() []types.ValueId {
	return append([]types.ValueId{}, s.dressTypeIds...)
}

// Toggle adds or removes id in a multi-valued dimension. Returns true if id is now selected.
func (s *State) Toggle(dim types.Dimension, id types.ValueId) (bool, error) {
	set, err := s.set(dim)
	if err != nil {
		return false, err
	}
	return set.Toggle(id), nil
}

func (s *State) add(dim types.Dimension, id types.ValueId) error {
	set, err := s.set(dim)
	if err != nil {
		return err
	}
	set.Add(id)
	return nil
}

// Clear empties a multi-valued dimension. Clearing the dress type unsets it, which cascades.
func (s *State) Clear(dim types.Dimension) error {
	if dim == types.DressType {
		s.SetDressType("")
		return nil
	}
	if _, err := s.set(dim); err != nil {
		return err
	}
	s.sets[dim] = types.IdList{}
	return nil
}

// SetVendorIds replaces the vendor selection.
func (s *State) SetVendorIds(ids []types.ValueId) {
	s.sets[types.Vendor] = types.NewIdList(ids...)
}

// Selected returns the live set for dim. The returned set must not be modified.
func (s *State) Selected(dim types.Dimension) types.IdList {
	if dim == types.DressType {
		return types.NewIdList(s.dressTypeIds...)
	}
	return s.sets[dim]
}

// SelectedIds returns the selection for dim in sorted order.
func (s *State) SelectedIds(dim types.Dimension) []types.ValueId {
	if dim == types.DressType {
		return s.DressTypeIds()
	}
	return s.sets[dim].Ids()
}

// IsEmpty reports whether no dimension is constrained.
func (s *State) IsEmpty() bool {
	if s.dressTypeId != "" {
		return false
	}
	for _, set := range s.sets {
		if !set.IsEmpty() {
			return false
		}
	}
	return true
}

func (s *State) set(dim types.Dimension) (types.IdList, error) {
	if !dim.IsMultiValued() {
		if dim.IsKnown() {
			return nil, fmt.Errorf("%w: %s", types.ErrNotMultiValued, dim)
		}
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownDimension, dim)
	}
	return s.sets[dim], nil
}

func (s *State) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(types.Dimensions)+1)
	if s.dressTypeId == "" {
		out["dressTypeId"] = nil
	} else {
		out["dressTypeId"] = s.dressTypeId
	}
	out["dressTypeIds"] = s.dressTypeIds
	for _, dim := range types.MultiValuedDimensions {
		out[string(dim)] = s.sets[dim].Ids()
	}
	return json.Marshal(out)
}
