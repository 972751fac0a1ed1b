package server

import (
	"context"
	"errors"
	"log"

	"github.com/matst80/slask-wardrobe/pkg/draft"
)

// ProductSink receives validated product payloads on save.
type ProductSink interface {
	SaveProduct(ctx context.Context, p draft.Payload) error
}

// LogSink only logs saved products, used when no backend is configured.
type LogSink struct{}

func (LogSink) SaveProduct(_ context.Context, p draft.Payload) error {
	log.Printf("Product %s saved without a backend (%q, vendor %s)", p.Id, p.Title, p.VendorId)
	return nil
}

// MultiSink hands the payload to every sink and joins the errors.
type MultiSink []ProductSink

func (m MultiSink) SaveProduct(ctx context.Context, p draft.Payload) error {
	var errs []error
	for _, sink := range m {
		if err := sink.SaveProduct(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
