// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"stockyard/internal/core/id"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to database
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	// Seed admin user
	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	// Seed demo data if requested
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@stockyard.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (id, created_at, updated_at, name, email, password_hash, role, is_active)
		VALUES ($1, now(), now(), 'System Admin', $2, $3, 'admin', true)
	`, userID, adminEmail, string(passwordHash))
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created",
		"email", adminEmail,
		"user_id", userID,
	)

	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	// 1. Seed Categories
	categories := []string{"Office Supplies", "Electronics", "Packaging"}
	categoryIDs := make(map[string]id.ID)

	for _, name := range categories {
		catID := id.New()
		tag, err := pool.Pool.Exec(ctx, `
			INSERT INTO categories (id, created_at, updated_at, name)
			VALUES ($1, now(), now(), $2)
			ON CONFLICT (name) DO NOTHING
		`, catID, name)
		if err != nil {
			log.Warnw("failed to seed category", "name", name, "error", err)
			continue
		}

		// If conflict, fetch the existing ID
		if tag.RowsAffected() == 0 {
			if err := pool.Pool.QueryRow(ctx,
				`SELECT id FROM categories WHERE name = $1`, name,
			).Scan(&catID); err != nil {
				log.Warnw("failed to fetch existing category", "name", name, "error", err)
				continue
			}
		}

		categoryIDs[name] = catID
	}

	// 2. Seed Warehouses
	warehouses := []string{"Main Warehouse", "Retail Store", "Transit Hub"}
	for _, name := range warehouses {
		whID := id.New()
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO warehouses (id, created_at, updated_at, name)
			VALUES ($1, now(), now(), $2)
			ON CONFLICT (name) DO NOTHING
		`, whID, name)
		if err != nil {
			log.Warnw("failed to seed warehouse", "name", name, "error", err)
		}
	}

	// 3. Seed Products
	products := []struct {
		name     string
		category string
		unit     string
		minStock int64
	}{
		{"Copy Paper A4", "Office Supplies", "pack", 20},
		{"Ballpoint Pen Blue", "Office Supplies", "pcs", 100},
		{"Desktop Stapler", "Office Supplies", "pcs", 10},
		{"USB-C Cable 1m", "Electronics", "pcs", 50},
		{"Cardboard Box M", "Packaging", "pcs", 200},
		{"Stretch Film Roll", "Packaging", "roll", 0},
	}

	for _, p := range products {
		catID, ok := categoryIDs[p.category]
		if !ok {
			log.Warnw("category missing, skipping product", "product", p.name, "category", p.category)
			continue
		}

		prodID := id.New()
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO products (id, created_at, updated_at, name, category_id, unit, min_stock)
			VALUES ($1, now(), now(), $2, $3, $4, $5)
			ON CONFLICT (name) DO NOTHING
		`, prodID, p.name, catID, p.unit, p.minStock)
		if err != nil {
			log.Warnw("failed to seed product", "name", p.name, "error", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}
