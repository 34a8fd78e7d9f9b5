package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"room-matching-service/internal/adapters/loader"
	"room-matching-service/internal/adapters/repositories"
	"room-matching-service/internal/config"
	"room-matching-service/internal/platform/db"
	"strings"
)

func main() {
	if loaded, err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	} else if !loaded {
		log.Println("No .env file found (using environment variables)")
	}
	cfg := config.Load()

	seedPath := flag.String("seed", cfg.SeedPath, "CSV rankings file to store (empty to skip seeding)")
	name := flag.String("name", "", "problem name (defaults to the seed file name)")
	flag.Parse()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DatabaseURL, db.Options{MaxConns: cfg.DBMaxConns})
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(context.Background(), conn, *seedPath, *name); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath, name string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	if seedPath == "" {
		return nil
	}

	if name == "" {
		name = strings.TrimSuffix(filepath.Base(seedPath), filepath.Ext(seedPath))
	}

	log.Printf("Seeding problem name=%s path=%s", name, seedPath)
	m, err := loader.NewCSVMatrixLoader().Load(ctx, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	id, err := repositories.NewSQLProblemRepository(conn).CreateProblem(ctx, name, m)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("Seeding complete. problem_id=%d people=%d", id, m.Size())

	return nil
}
