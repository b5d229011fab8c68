// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"medtrack/internal/core/id"
	"medtrack/internal/domain/documents/purchase_order"
	"medtrack/internal/domain/documents/transaction"
	"medtrack/internal/domain/posting"
	"medtrack/internal/domain/stockledger"
	"medtrack/internal/infrastructure/storage/postgres"
	"medtrack/internal/infrastructure/storage/postgres/document_repo"
	"medtrack/internal/infrastructure/storage/postgres/ledger_repo"
	"medtrack/pkg/logger"
	"medtrack/pkg/numerator"
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

	catalogIDs, err := seedCatalogs(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed catalogs", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoDocuments(ctx, pool, log, catalogIDs); err != nil {
			log.Fatalw("failed to seed demo documents", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// catalogIDs collects the seeded catalog rows needed for demo documents.
type catalogIDs struct {
	productID  id.ID
	locationID id.ID
}

// seedCatalogs inserts the base catalog rows. Idempotent: existing
// references are left untouched.
func seedCatalogs(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (catalogIDs, error) {
	var ids catalogIDs

	products := []struct {
		reference, name, description string
	}{
		{"NAPPY-S", "Nappies size S", "Disposable, pack of 30"},
		{"NAPPY-M", "Nappies size M", "Disposable, pack of 30"},
		{"PAD-STD", "Incontinence pads", "Standard absorbency, pack of 20"},
	}
	for i, p := range products {
		pid, err := upsertCatalogRow(ctx, pool, `
			INSERT INTO products (id, reference, name, description, version, deletion_mark)
			VALUES ($1, $2, $3, $4, 1, false)
			ON CONFLICT (reference) WHERE NOT deletion_mark DO NOTHING
		`, `SELECT id FROM products WHERE reference = $1 AND NOT deletion_mark`,
			p.reference, p.name, p.description)
		if err != nil {
			return ids, fmt.Errorf("seed product %s: %w", p.reference, err)
		}
		if i == 0 {
			ids.productID = pid
		}
	}

	locations := []struct {
		reference, name string
	}{
		{"LOC-NORTH", "Northern distribution point"},
		{"LOC-SOUTH", "Southern distribution point"},
	}
	for i, l := range locations {
		lid, err := upsertCatalogRow(ctx, pool, `
			INSERT INTO locations (id, reference, name, version, deletion_mark)
			VALUES ($1, $2, $3, 1, false)
			ON CONFLICT (reference) WHERE NOT deletion_mark DO NOTHING
		`, `SELECT id FROM locations WHERE reference = $1 AND NOT deletion_mark`,
			l.reference, l.name)
		if err != nil {
			return ids, fmt.Errorf("seed location %s: %w", l.reference, err)
		}
		if i == 0 {
			ids.locationID = lid
		}
	}

	centres := []struct {
		reference, name string
	}{
		{"MC-CENTRAL", "Central medical centre"},
		{"MC-EAST", "Eastern medical centre"},
	}
	for _, m := range centres {
		if _, err := upsertCatalogRow(ctx, pool, `
			INSERT INTO medical_centres (id, reference, name, version, deletion_mark)
			VALUES ($1, $2, $3, 1, false)
			ON CONFLICT (reference) WHERE NOT deletion_mark DO NOTHING
		`, `SELECT id FROM medical_centres WHERE reference = $1 AND NOT deletion_mark`,
			m.reference, m.name); err != nil {
			return ids, fmt.Errorf("seed centre %s: %w", m.reference, err)
		}
	}

	suppliers := []struct {
		reference, name string
	}{
		{"SUP-MEDEX", "Medex Supplies Ltd"},
	}
	for _, s := range suppliers {
		if _, err := upsertCatalogRow(ctx, pool, `
			INSERT INTO suppliers (id, reference, name, version, deletion_mark)
			VALUES ($1, $2, $3, 1, false)
			ON CONFLICT (reference) WHERE NOT deletion_mark DO NOTHING
		`, `SELECT id FROM suppliers WHERE reference = $1 AND NOT deletion_mark`,
			s.reference, s.name); err != nil {
			return ids, fmt.Errorf("seed supplier %s: %w", s.reference, err)
		}
	}

	log.Info("catalogs seeded")
	return ids, nil
}

// upsertCatalogRow inserts a row and returns its ID, resolving the
// existing row when the reference is already taken.
func upsertCatalogRow(ctx context.Context, pool *postgres.Pool, insertSQL, selectSQL string, args ...any) (id.ID, error) {
	rowID := id.New()
	insertArgs := append([]any{rowID}, args...)

	tag, err := pool.Pool.Exec(ctx, insertSQL, insertArgs...)
	if err != nil {
		return id.Nil(), err
	}
	if tag.RowsAffected() > 0 {
		return rowID, nil
	}

	// Row already present; args[0] is the reference.
	var existingID id.ID
	if err := pool.Pool.QueryRow(ctx, selectSQL, args[0]).Scan(&existingID); err != nil {
		return id.Nil(), err
	}
	return existingID, nil
}

// seedDemoDocuments creates and posts a purchase order, then distributes
// part of it, exercising the full FIFO path.
func seedDemoDocuments(ctx context.Context, pool *postgres.Pool, log *logger.Logger, ids catalogIDs) error {
	log.Info("seeding demo documents...")

	txManager := postgres.NewTxManager(pool)
	numeratorService := numerator.New(pool)

	holderRepo := ledger_repo.NewStockHolderRepo(txManager)
	stockService := stockledger.NewService(holderRepo, txManager, nil)
	postingEngine := posting.NewEngine(stockService, txManager, nil)

	orderRepo := document_repo.NewPurchaseOrderRepo(txManager)
	orderService := purchase_order.NewService(orderRepo, postingEngine, numeratorService, txManager)

	trxRepo := document_repo.NewTransactionRepo(txManager)
	trxService := transaction.NewService(trxRepo, postingEngine, stockService, numeratorService, txManager)

	order := purchase_order.NewPurchaseOrder(ids.productID, 500)
	order.Comment = "Demo order"
	if err := orderService.Create(ctx, order); err != nil {
		return fmt.Errorf("create demo order: %w", err)
	}
	if err := orderService.Post(ctx, order.ID); err != nil {
		return fmt.Errorf("post demo order: %w", err)
	}
	log.Infow("demo purchase order posted", "number", order.Number, "quantity", order.Quantity)

	trx := transaction.NewTransaction(ids.productID, ids.locationID, 120)
	trx.Comment = "Demo distribution"
	if err := trxService.Create(ctx, trx); err != nil {
		return fmt.Errorf("create demo transaction: %w", err)
	}
	if err := trxService.Post(ctx, trx.ID); err != nil {
		return fmt.Errorf("post demo transaction: %w", err)
	}
	log.Infow("demo transaction posted", "number", trx.Number, "quantity", trx.Quantity)

	return nil
}
