package catalog

import (
	"context"
	"errors"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/matst80/slask-wardrobe/pkg/facet"
	"github.com/matst80/slask-wardrobe/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	totalItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wardrobe_catalog_items_total",
		Help: "The number of items in the current catalog snapshot",
	})
	refreshErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wardrobe_catalog_refresh_errors_total",
		Help: "The total number of failed catalog fetches",
	}, []string{"resource"})
)

// Snapshot is the last fetched catalog page and price band table. A failed fetch leaves an
// empty collection for that resource, so active constraints on it match nothing.
type Snapshot struct {
	mu      sync.RWMutex
	items   []types.CatalogItem
	bands   []types.Band
	byId    facet.Bands
	updated time.Time
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		items: []types.CatalogItem{},
		bands: []types.Band{},
		byId:  facet.Bands{},
	}
}

// Refresh fetches items and bands and swaps them in. Errors are returned joined after the
// snapshot has been updated.
func (s *Snapshot) Refresh(ctx context.Context, src Source, limit int) error {
	items, itemErr := src.FetchItems(ctx, ClampLimit(limit))
	if itemErr != nil {
		log.Printf("catalog: failed to fetch items: %v", itemErr)
		refreshErrors.WithLabelValues("items").Inc()
		items = nil
	}
	bands, bandErr := src.FetchPriceBands(ctx)
	if bandErr != nil {
		log.Printf("catalog: failed to fetch price bands: %v", bandErr)
		refreshErrors.WithLabelValues("bands").Inc()
		bands = nil
	}
	for _, b := range bands {
		if !b.Valid() {
			log.Printf("catalog: price band %s has min above max and will never match", b.Id)
		}
	}
	s.Replace(items, bands)
	return errors.Join(itemErr, bandErr)
}

func (s *Snapshot) Replace(items []types.CatalogItem, bands []types.Band) {
	if items == nil {
		items = []types.CatalogItem{}
	}
	if bands == nil {
		bands = []types.Band{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.bands = bands
	s.byId = facet.NewBands(bands)
	s.updated = time.Now()
	totalItems.Set(float64(len(items)))
}

// Upsert puts a single item first in the snapshot, replacing an item with the same id.
func (s *Snapshot) Upsert(item types.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]types.CatalogItem, 0, len(s.items)+1)
	items = append(items, item)
	for _, existing := range s.items {
		if existing.Id != item.Id {
			items = append(items, existing)
		}
	}
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	s.items = items
	totalItems.Set(float64(len(items)))
}

// Items returns the current items. The slice is replaced, never modified, on refresh and
// must be treated as read only.
func (s *Snapshot) Items() []types.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

func (s *Snapshot) Bands() facet.Bands {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byId
}

func (s *Snapshot) BandList() []types.Band {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bands)
}

func (s *Snapshot) Updated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}
