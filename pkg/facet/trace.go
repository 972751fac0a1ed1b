package facet

import (
	"context"

	"github.com/matst80/slask-wardrobe/pkg/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var (
	name   = "slask-wardrobe-facets"
	tracer = otel.Tracer(name)
)

// SpannedFilter runs FilterCatalog inside a trace span.
func SpannedFilter(ctx context.Context, items []types.CatalogItem, sel Selection, bands Bands) []types.CatalogItem {
	_, span := tracer.Start(ctx, "FilterCatalog")
	defer span.End()
	ret := FilterCatalog(items, sel, bands)
	span.SetAttributes(
		attribute.Int("items", len(items)),
		attribute.Int("matches", len(ret)),
	)
	return ret
}
