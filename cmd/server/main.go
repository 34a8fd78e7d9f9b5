package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"room-matching-service/internal/adapters/cache"
	"room-matching-service/internal/adapters/repositories"
	"room-matching-service/internal/api"
	"room-matching-service/internal/api/handlers"
	"room-matching-service/internal/config"
	"room-matching-service/internal/platform/db"
	"room-matching-service/internal/ports"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis) behind ports and starts the HTTP server.
// Both backends are optional: without DATABASE_URL the problem store is
// disabled, and without REDIS_ADDR results are cached in process memory.
func main() {
	if loaded, err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	} else if !loaded {
		log.Println("No .env file found (using environment variables)")
	}
	cfg := config.Load()

	var repo ports.ProblemRepository
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL, db.Options{MaxConns: cfg.DBMaxConns})
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := initSchema(conn); err != nil {
			log.Fatal(err)
		}
		repo = repositories.NewSQLProblemRepository(conn)
	} else {
		log.Println("DATABASE_URL not set; problem store disabled")
	}

	var resultCache ports.ResultCache
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		resultCache = cache.NewRedisResultCache(client, cfg.CacheTTL)
	} else {
		resultCache = cache.NewMemoryResultCache()
	}

	router := api.NewRouter(repo, resultCache, handlers.Defaults{
		Direction:        cfg.DefaultDirection,
		Strategy:         cfg.DefaultStrategy,
		BatchConcurrency: cfg.BatchConcurrency,
	})

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func initSchema(conn *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return repositories.InitSchema(ctx, conn)
}
