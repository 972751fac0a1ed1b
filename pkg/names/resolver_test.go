package names

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/matst80/slask-wardrobe/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestSummaryTriState(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, AnyLabel, r.Summary(types.Color, nil))

	r.Commit(types.Color, []types.NameEntry{})
	assert.Equal(t, LoadingLabel, r.Summary(types.Color, []types.ValueId{"x"}))

	r.Commit(types.Color, []types.NameEntry{{Id: "x", Name: "Red"}})
	assert.Equal(t, "Red", r.Summary(types.Color, []types.ValueId{"x"}))
}

func TestSummaryBeforeAnyLoad(t *testing.T) {
	r := NewResolver()
	res := r.Status(types.Fabric, []types.ValueId{"silk"})
	assert.Equal(t, Pending, res.State)
	assert.Empty(t, res.Names)
}

func TestUnresolvedIdsAreDropped(t *testing.T) {
	r := NewResolver()
	r.Commit(types.Fabric, []types.NameEntry{{Id: "silk", Name: "Silk"}, {Id: "lawn", Name: "Lawn"}})
	assert.Equal(t, "Lawn, Silk", r.Summary(types.Fabric, []types.ValueId{"lawn", "missing", "silk"}))
}

func TestLoadAfterCloseIsDiscarded(t *testing.T) {
	r := NewResolver()
	release := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- r.Load(context.Background(), types.Color, func(ctx context.Context, dim types.Dimension) ([]types.NameEntry, error) {
			<-release
			return []types.NameEntry{{Id: "x", Name: "Red"}}, nil
		})
	}()
	r.Close()
	close(release)
	err := <-done
	assert.ErrorIs(t, err, ErrClosed)
	_, ok := r.Name(types.Color, "x")
	assert.False(t, ok)
}

func TestFailedLoadKeepsPreviousTable(t *testing.T) {
	r := NewResolver()
	r.Commit(types.Work, []types.NameEntry{{Id: "zari", Name: "Zari"}})
	err := r.Load(context.Background(), types.Work, func(context.Context, types.Dimension) ([]types.NameEntry, error) {
		return nil, errors.New("offline")
	})
	assert.Error(t, err)
	name, ok := r.Name(types.Work, "zari")
	assert.True(t, ok)
	assert.Equal(t, "Zari", name)
}

func TestLoadAll(t *testing.T) {
	r := NewResolver()
	err := r.LoadAll(context.Background(), func(_ context.Context, dim types.Dimension) ([]types.NameEntry, error) {
		if dim == types.Vendor {
			return nil, errors.New("vendors unavailable")
		}
		return []types.NameEntry{{Id: "1", Name: string(dim)}}, nil
	})
	assert.Error(t, err)
	name, ok := r.Name(types.OriginCity, "1")
	assert.True(t, ok)
	assert.Equal(t, "originCity", name)
	_, ok = r.Entries(types.Vendor)
	assert.False(t, ok)
}

func TestEntriesSorted(t *testing.T) {
	r := NewResolver()
	r.Commit(types.Color, []types.NameEntry{{Id: "2", Name: "Red"}, {Id: "1", Name: "Blue"}, {Id: "3", Name: ""}})
	entries, ok := r.Entries(types.Color)
	assert.True(t, ok)
	assert.Equal(t, []types.NameEntry{{Id: "1", Name: "Blue"}, {Id: "2", Name: "Red"}}, entries)
}

type fakeSelection map[types.Dimension][]types.ValueId

func (f fakeSelection) SelectedIds(dim types.Dimension) []types.ValueId {
	return f[dim]
}

func TestSummariesJSON(t *testing.T) {
	r := NewResolver()
	r.Commit(types.Color, []types.NameEntry{{Id: "x", Name: "Red"}})
	sums := r.Summaries(fakeSelection{types.Color: {"x"}, types.Fabric: {"silk"}}, types.Color, types.Fabric, types.Work)

	b, err := json.Marshal(sums)
	assert.NoError(t, err)
	var out map[string]map[string]any
	assert.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "resolved", out["color"]["state"])
	assert.Equal(t, "Red", out["color"]["summary"])
	assert.Equal(t, "pending", out["fabric"]["state"])
	assert.Equal(t, LoadingLabel, out["fabric"]["summary"])
	assert.Equal(t, AnyLabel, out["work"]["summary"])
}
