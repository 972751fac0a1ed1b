package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/matst80/slask-wardrobe/pkg/catalog"
	"github.com/matst80/slask-wardrobe/pkg/draft"
	"github.com/matst80/slask-wardrobe/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

var catalogFile = flag.String("file", "data/catalog.json", "static catalog to import")
var dryRun = flag.Bool("dry-run", false, "parse and report without writing")

// seed imports a static catalog file into firestore and announces the change.
func main() {
	flag.Parse()
	_ = godotenv.Load()

	src, err := catalog.LoadStaticFile(*catalogFile)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *catalogFile, err)
	}
	log.Printf("Parsed %d products, %d price bands, %d name tables", len(src.Items), len(src.Bands), len(src.Names))
	if *dryRun {
		return
	}

	projectId, ok := os.LookupEnv("FIREBASE_PROJECT_ID")
	if !ok {
		log.Fatal("FIREBASE_PROJECT_ID environment variable is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := catalog.NewFirestoreClient(ctx, projectId)
	if err != nil {
		log.Fatalf("Failed to connect to firestore: %v", err)
	}
	defer client.Close()
	writer := catalog.NewFirestoreWriter(client)

	for _, item := range src.Items {
		p := draft.Payload{
			Id:         item.Id,
			VendorId:   item.VendorId,
			Title:      item.Title,
			CreatedAt:  item.CreatedAt,
			Attributes: item.Attributes,
			Price:      item.Price,
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
		if err := writer.SaveProduct(ctx, p); err != nil {
			log.Fatalf("Failed to import: %v", err)
		}
	}
	if err := writer.SaveBands(ctx, src.Bands); err != nil {
		log.Fatalf("Failed to import: %v", err)
	}
	for dim, entries := range src.Names {
		if err := writer.SaveNames(ctx, dim, entries); err != nil {
			log.Printf("Skipping names for %s: %v", dim, err)
		}
	}
	log.Println("Import done")

	rabbitUrl, ok := os.LookupEnv("RABBIT_URL")
	if !ok {
		return
	}
	prefix := os.Getenv("RABBIT_PREFIX")
	if prefix == "" {
		prefix = "wardrobe"
	}
	conn, err := amqp.DialConfig(rabbitUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()
	publisher, err := messaging.NewPublisher(conn, prefix)
	if err != nil {
		log.Fatalf("Failed to declare topics: %v", err)
	}
	if err := publisher.CatalogChanged(messaging.CatalogChange{Reason: "import", Resource: *catalogFile}); err != nil {
		log.Fatalf("Failed to announce catalog change: %v", err)
	}
	log.Println("Announced catalog change")
}
