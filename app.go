package main

import (
	"context"
	"errors"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/matst80/slask-wardrobe/pkg/catalog"
	"github.com/matst80/slask-wardrobe/pkg/draft"
	"github.com/matst80/slask-wardrobe/pkg/messaging"
	"github.com/matst80/slask-wardrobe/pkg/names"
	"github.com/matst80/slask-wardrobe/pkg/server"
	amqp "github.com/rabbitmq/amqp091-go"
)

type app struct {
	source    catalog.Source
	cache     *catalog.CachedSource
	redis     *catalog.RedisStore
	firestore *firestore.Client
	conn      *amqp.Connection
	publisher *messaging.Publisher
	snapshot  *catalog.Snapshot
	resolver  *names.Resolver
	limit     int
}

// connectCatalog picks Firestore, a static file or an empty catalog, optionally behind redis.
func (a *app) connectCatalog(ctx context.Context) {
	switch {
	case firebaseProject != "":
		client, err := catalog.NewFirestoreClient(ctx, firebaseProject)
		if err != nil {
			log.Fatalf("Failed to connect to firestore: %v", err)
		}
		a.firestore = client
		a.source = catalog.NewFirestoreSource(client)
		log.Printf("Using firestore catalog in project %s", firebaseProject)
	case catalogFile != "":
		src, err := catalog.LoadStaticFile(catalogFile)
		if err != nil {
			log.Fatalf("Failed to load catalog file %s: %v", catalogFile, err)
		}
		a.source = src
		log.Printf("Using static catalog from %s (%d items)", catalogFile, len(src.Items))
	default:
		log.Println("No catalog configured, starting with an empty catalog")
		a.source = catalog.NewStaticSource(nil, nil, nil)
	}

	if redisUrl != "" {
		a.redis = catalog.NewRedisStore(redisUrl, redisPassword, 0)
		a.cache = catalog.NewCachedSource(a.source, a.redis, cacheTTL, "wardrobe")
		a.source = a.cache
		log.Printf("Catalog cache enabled, url: %s", redisUrl)
	}
}

func (a *app) connectAmqp(url string) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	a.conn = conn
	a.publisher, err = messaging.NewPublisher(conn, rabbitPrefix)
	if err != nil {
		log.Fatalf("Failed to declare topics: %v", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open a channel: %v", err)
	}
	err = messaging.ListenToTopic(ch, rabbitPrefix, messaging.CatalogChanged, messaging.CatalogChangeHandler(func(change messaging.CatalogChange) {
		log.Printf("Got catalog change %+v", change)
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := a.reload(ctx); err != nil {
			log.Printf("Catalog reload incomplete: %v", err)
		}
	}))
	if err != nil {
		log.Fatalf("Failed to listen to %s: %v", messaging.CatalogChanged, err)
	}

	ch, err = conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open a channel: %v", err)
	}
	err = messaging.ListenToTopic(ch, rabbitPrefix, messaging.ProductSaved, messaging.ProductHandler(func(p draft.Payload) {
		log.Printf("Got saved product %s", p.Id)
		a.snapshot.Upsert(p.Item())
	}))
	if err != nil {
		log.Fatalf("Failed to listen to %s: %v", messaging.ProductSaved, err)
	}
	log.Printf("Listening for catalog changes on %s", rabbitUrl)
}

// sink is where saved drafts go: firestore when connected, and the broker when connected.
func (a *app) sink() server.ProductSink {
	sinks := server.MultiSink{}
	if a.firestore != nil {
		sinks = append(sinks, catalog.NewFirestoreWriter(a.firestore))
	}
	if a.publisher != nil {
		sinks = append(sinks, a.publisher)
	}
	switch len(sinks) {
	case 0:
		return server.LogSink{}
	case 1:
		return sinks[0]
	}
	return sinks
}

// reload drops cached catalog data and refreshes the snapshot and every name table.
func (a *app) reload(ctx context.Context) error {
	if a.cache != nil {
		if err := a.cache.Invalidate(ctx); err != nil {
			log.Printf("Failed to invalidate catalog cache: %v", err)
		}
	}
	return a.refresh(ctx)
}

func (a *app) refresh(ctx context.Context) error {
	snapErr := a.snapshot.Refresh(ctx, a.source, a.limit)
	namesErr := a.resolver.LoadAll(ctx, a.source.FetchNames)
	if errors.Is(namesErr, names.ErrClosed) {
		namesErr = nil
	}
	return errors.Join(snapErr, namesErr)
}

func (a *app) refreshEvery(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			if err := a.refresh(ctx); err != nil {
				log.Printf("Catalog refresh incomplete: %v", err)
			}
			cancel()
		}
	}
}

func (a *app) close() {
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			log.Printf("Failed to close amqp connection: %v", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("Failed to close redis: %v", err)
		}
	}
	if a.firestore != nil {
		if err := a.firestore.Close(); err != nil {
			log.Printf("Failed to close firestore: %v", err)
		}
	}
}
