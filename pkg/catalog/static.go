package catalog

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-wardrobe/pkg/types"
)

type staticFile struct {
	Products   []Row            `json:"products"`
	PriceBands []Row            `json:"price_bands"`
	Names      map[string][]Row `json:"names"`
}

// StaticSource serves a fixed catalog, loaded from a JSON file or built in memory.
type StaticSource struct {
	Items []types.CatalogItem
	Bands []types.Band
	Names map[types.Dimension][]types.NameEntry
}

func NewStaticSource(items []types.CatalogItem, bands []types.Band, names map[types.Dimension][]types.NameEntry) *StaticSource {
	if names == nil {
		names = map[types.Dimension][]types.NameEntry{}
	}
	return &StaticSource{Items: items, Bands: bands, Names: names}
}

// ParseStatic reads the file layout {"products": [...], "price_bands": [...], "names": {"fabric": [...]}}.
func ParseStatic(data []byte) (*StaticSource, error) {
	var file staticFile
	if err := sonic.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode static catalog: %w", err)
	}
	names := make(map[types.Dimension][]types.NameEntry, len(file.Names))
	for key, rows := range file.Names {
		dim, err := types.ParseDimension(key)
		if err != nil {
			log.Printf("static catalog: skipping names for %q: %v", key, err)
			continue
		}
		names[dim] = ParseNames(rows)
	}
	return NewStaticSource(ParseItems(file.Products), ParseBands(file.PriceBands), names), nil
}

func LoadStaticFile(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseStatic(data)
}

func (s *StaticSource) FetchItems(_ context.Context, limit int) ([]types.CatalogItem, error) {
	limit = ClampLimit(limit)
	items := s.Items
	if len(items) > limit {
		items = items[:limit]
	}
	return append([]types.CatalogItem(nil), items...), nil
}

func (s *StaticSource) FetchNames(_ context.Context, dim types.Dimension) ([]types.NameEntry, error) {
	if dim == types.PriceBand {
		return BandNames(s.Bands), nil
	}
	if !dim.IsKnown() {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownDimension, dim)
	}
	return append([]types.NameEntry(nil), s.Names[dim]...), nil
}

func (s *StaticSource) FetchPriceBands(_ context.Context) ([]types.Band, error) {
	return append([]types.Band(nil), s.Bands...), nil
}
