package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/matst80/slask-wardrobe/pkg/catalog"
	"github.com/matst80/slask-wardrobe/pkg/common"
	"github.com/matst80/slask-wardrobe/pkg/names"
	"github.com/matst80/slask-wardrobe/pkg/server"
	"github.com/matst80/slask-wardrobe/pkg/session"
)

var refreshInterval = flag.Duration("refresh", 5*time.Minute, "catalog refresh interval, 0 disables")

var (
	listenAddress = ":8080"
	debugAddress  = ":8081"
	rabbitPrefix  = "wardrobe"
	cacheTTL      = 60 * time.Second
	catalogLimit  = catalog.MaxItems
)

var (
	firebaseProject string
	catalogFile     string
	redisUrl        string
	redisPassword   string
	rabbitUrl       string
)

func init() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}
	firebaseProject = os.Getenv("FIREBASE_PROJECT_ID")
	catalogFile = os.Getenv("CATALOG_FILE")
	redisUrl = os.Getenv("REDIS_URL")
	redisPassword = os.Getenv("REDIS_PASSWORD")
	rabbitUrl = os.Getenv("RABBIT_URL")
	if v, ok := os.LookupEnv("LISTEN_ADDRESS"); ok {
		listenAddress = v
	}
	if v, ok := os.LookupEnv("DEBUG_ADDRESS"); ok {
		debugAddress = v
	}
	if v, ok := os.LookupEnv("RABBIT_PREFIX"); ok && v != "" {
		rabbitPrefix = v
	}
	if v, err := strconv.Atoi(os.Getenv("CATALOG_CACHE_TTL")); err == nil && v > 0 {
		cacheTTL = time.Duration(v) * time.Second
	}
	if v, err := strconv.Atoi(os.Getenv("CATALOG_LIMIT")); err == nil {
		catalogLimit = catalog.ClampLimit(v)
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	a := &app{
		snapshot: catalog.NewSnapshot(),
		resolver: names.NewResolver(),
		limit:    catalogLimit,
	}
	defer a.close()

	a.connectCatalog(ctx)
	if rabbitUrl != "" {
		a.connectAmqp(rabbitUrl)
	}

	if err := a.reload(ctx); err != nil {
		log.Printf("initial catalog load incomplete: %v", err)
	}
	done := make(chan struct{})
	if *refreshInterval > 0 {
		go a.refreshEvery(*refreshInterval, done)
	}

	sessions := session.NewStore(session.DefaultTTL)
	go sessions.SweepEvery(time.Hour, done)

	srv := server.NewServer(sessions, a.snapshot, a.resolver, a.sink())

	timeouts := common.LoadTimeoutConfig(common.DefaultTimeouts)
	common.RunWithShutdown([]common.Listener{
		{Name: "wardrobe api", Server: common.NewServer(listenAddress, srv.Handle(), timeouts)},
		{Name: "debug", Server: common.NewServer(debugAddress, server.DebugMux(a.snapshot), timeouts)},
	}, timeouts,
		func(ctx context.Context) error {
			close(done)
			a.resolver.Close()
			return nil
		},
	)
}
