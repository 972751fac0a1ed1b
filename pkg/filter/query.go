package filter

import (
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/matst80/slask-wardrobe/pkg/types"
)

// Query is the query-string form of a filter state, used by stateless search requests.
// Multi-valued parameters may be repeated or comma separated.
type Query struct {
	DressType   string   `schema:"dressType"`
	Fabric      []string `schema:"fabric"`
	Color       []string `schema:"color"`
	Work        []string `schema:"work"`
	WorkDensity []string `schema:"workDensity"`
	OriginCity  []string `schema:"originCity"`
	WearState   []string `schema:"wearState"`
	PriceBand   []string `schema:"priceBand"`
	Vendor      []string `schema:"vendor"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func (q *Query) values(dim types.Dimension) []string {
	switch dim {
	case types.Fabric:
		return q.Fabric
	case types.Color:
		return q.Color
	case types.Work:
		return q.Work
	case types.WorkDensity:
		return q.WorkDensity
	case types.OriginCity:
		return q.OriginCity
	case types.WearState:
		return q.WearState
	case types.PriceBand:
		return q.PriceBand
	case types.Vendor:
		return q.Vendor
	}
	return nil
}

func splitIds(values []string) []types.ValueId {
	ret := make([]types.ValueId, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			ret = append(ret, types.ValueId(part))
		}
	}
	return ret
}

// State builds a fresh filter state from the query.
func (q *Query) State() *State {
	s := NewState()
	s.SetDressType(types.ValueId(strings.TrimSpace(q.DressType)))
	for _, dim := range types.MultiValuedDimensions {
		for _, id := range splitIds(q.values(dim)) {
			_ = s.add(dim, id)
		}
	}
	return s
}

func DecodeQuery(values url.Values) (*State, error) {
	q := &Query{}
	if err := decoder.Decode(q, values); err != nil {
		return nil, err
	}
	return q.State(), nil
}
