package types

import (
	"encoding/json"
	"maps"
	"slices"
)

// IdList is a set of selected value ids. An empty list means "no constraint".
type IdList map[ValueId]struct{}

var empty = struct{}{}

func NewIdList(ids ...ValueId) IdList {
	ret := make(IdList, len(ids))
	for _, id := range ids {
		ret[id] = empty
	}
	return ret
}

func (r IdList) Add(id ValueId) {
	r[id] = empty
}

func (r IdList) Remove(id ValueId) {
	delete(r, id)
}

// Toggle adds id when absent and removes it when present. Returns true if id is now selected.
func (r IdList) Toggle(id ValueId) bool {
	if _, ok := r[id]; ok {
		delete(r, id)
		return false
	}
	r[id] = empty
	return true
}

func (r IdList) Contains(id ValueId) bool {
	_, ok := r[id]
	return ok
}

func (r IdList) Len() int {
	return len(r)
}

func (r IdList) IsEmpty() bool {
	return len(r) == 0
}

func (r IdList) Clone() IdList {
	if r == nil {
		return IdList{}
	}
	return maps.Clone(r)
}

// HasIntersection reports whether any of ids is in the set.
func (r IdList) HasIntersection(ids []ValueId) bool {
	for _, id := range ids {
		if _, ok := r[id]; ok {
			return true
		}
	}
	return false
}

// Ids returns the members in sorted order.
func (r IdList) Ids() []ValueId {
	ret := make([]ValueId, 0, len(r))
	for id := range r {
		ret = append(ret, id)
	}
	slices.Sort(ret)
	return ret
}

func (r IdList) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Ids())
}

func (r *IdList) UnmarshalJSON(b []byte) error {
	var ids []ValueId
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*r = NewIdList(ids...)
	return nil
}
