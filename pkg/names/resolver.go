package names

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/matst80/slask-wardrobe/pkg/types"
)

const (
	AnyLabel     = "Any"
	LoadingLabel = "Loading…"
	separator    = ", "
)

var ErrClosed = errors.New("resolver is closed")

// State is the resolution status of a dimension's selection.
type State int

const (
	// Any means nothing is selected.
	Any State = iota
	// Pending means ids are selected but none of them has a name yet.
	Pending
	Resolved
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	}
	return "any"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Resolution struct {
	State State    `json:"state"`
	Names []string `json:"names,omitempty"`
}

// Summary is the display text: "Any", "Loading…" or the resolved names joined.
func (r Resolution) Summary() string {
	switch r.State {
	case Pending:
		return LoadingLabel
	case Resolved:
		return strings.Join(r.Names, separator)
	}
	return AnyLabel
}

func (r Resolution) MarshalJSON() ([]byte, error) {
	type resolution Resolution
	return json.Marshal(struct {
		resolution
		Summary string `json:"summary"`
	}{resolution(r), r.Summary()})
}

// Fetcher loads the whole name table of a dimension.
type Fetcher func(ctx context.Context, dim types.Dimension) ([]types.NameEntry, error)

// Resolver maps selected ids to display names per dimension. Tables are committed only while
// the resolver is open, late responses after Close are dropped.
type Resolver struct {
	mu     sync.RWMutex
	tables map[types.Dimension]map[types.ValueId]string
	closed atomic.Bool
}

func NewResolver() *Resolver {
	return &Resolver{
		tables: make(map[types.Dimension]map[types.ValueId]string),
	}
}

// Commit replaces the table of dim. Returns false when the resolver has been closed.
func (r *Resolver) Commit(dim types.Dimension, entries []types.NameEntry) bool {
	table := make(map[types.ValueId]string, len(entries))
	for _, e := range entries {
		if e.Id == "" || e.Name == "" {
			continue
		}
		table[e.Id] = e.Name
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed.Load() {
		return false
	}
	r.tables[dim] = table
	return true
}

// Load fetches and commits the table of dim. A failed fetch keeps the previous table.
func (r *Resolver) Load(ctx context.Context, dim types.Dimension, fetch Fetcher) error {
	if r.closed.Load() {
		return ErrClosed
	}
	entries, err := fetch(ctx, dim)
	if err != nil {
		return fmt.Errorf("load names for %s: %w", dim, err)
	}
	if !r.Commit(dim, entries) {
		return ErrClosed
	}
	return nil
}

// LoadAll loads every dimension concurrently. Failures are logged, the other dimensions
// are still committed.
func (r *Resolver) LoadAll(ctx context.Context, fetch Fetcher) error {
	wg := sync.WaitGroup{}
	errs := make([]error, len(types.Dimensions))
	for i, dim := range types.Dimensions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.Load(ctx, dim, fetch); err != nil {
				if !errors.Is(err, ErrClosed) {
					log.Printf("failed to load names: %v", err)
				}
				errs[i] = err
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Close marks the owner as gone. Tables committed after this are discarded.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed.Store(true)
}

func (r *Resolver) Name(dim types.Dimension, id types.ValueId) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.tables[dim][id]
	return name, ok
}

// Entries returns the table of dim, sorted by name.
func (r *Resolver) Entries(dim types.Dimension) ([]types.NameEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	table, ok := r.tables[dim]
	if !ok {
		return nil, false
	}
	ret := make([]types.NameEntry, 0, len(table))
	for id, name := range table {
		ret = append(ret, types.NameEntry{Id: id, Name: name})
	}
	sortEntries(ret)
	return ret, true
}

// Status resolves the selected ids, in the given order. Ids without a name are dropped.
func (r *Resolver) Status(dim types.Dimension, selected []types.ValueId) Resolution {
	if len(selected) == 0 {
		return Resolution{State: Any}
	}
	r.mu.RLock()
	table := r.tables[dim]
	names := make([]string, 0, len(selected))
	for _, id := range selected {
		if name, ok := table[id]; ok {
			names = append(names, name)
		}
	}
	r.mu.RUnlock()
	if len(names) == 0 {
		return Resolution{State: Pending}
	}
	return Resolution{State: Resolved, Names: names}
}

func (r *Resolver) Summary(dim types.Dimension, selected []types.ValueId) string {
	return r.Status(dim, selected).Summary()
}

// Selection is anything exposing selected ids per dimension.
type Selection interface {
	SelectedIds(dim types.Dimension) []types.ValueId
}

// Summaries resolves every dimension of a selection.
func (r *Resolver) Summaries(sel Selection, dims ...types.Dimension) map[types.Dimension]Resolution {
	if len(dims) == 0 {
		dims = types.Dimensions
	}
	ret := make(map[types.Dimension]Resolution, len(dims))
	for _, dim := range dims {
		ret[dim] = r.Status(dim, sel.SelectedIds(dim))
	}
	return ret
}
