package salestarget

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesdash/internal/domain/period"
	"salesdash/internal/platform/config"
	"salesdash/internal/platform/db"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if strings.TrimSpace(dbURL) == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, config.Config{DatabaseURL: dbURL})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool, "../../../migrations"); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return pool
}

func TestStoreLedgerRoundTrip(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	employeeID := uuid.NewString()
	productID := uuid.NewString()
	if _, err := pool.Exec(ctx, "INSERT INTO employees (id, name, title, department) VALUES ($1, 'Test Rep', 'Rep', 'Sales')", employeeID); err != nil {
		t.Fatalf("failed to insert employee: %v", err)
	}
	if _, err := pool.Exec(ctx, "INSERT INTO products (id, name, price) VALUES ($1, 'Test Product', 250)", productID); err != nil {
		t.Fatalf("failed to insert product: %v", err)
	}
	t.Cleanup(func() {
		pool.Exec(ctx, "DELETE FROM employees WHERE id = $1", employeeID)
		pool.Exec(ctx, "DELETE FROM products WHERE id = $1", productID)
	})

	store := NewStore(pool)
	far := period.New("Farvardin", 1403)
	ord := period.New("Ordibehesht", 1403)

	if err := store.UpsertTarget(ctx, employeeID, productID, far, 100); err != nil {
		t.Fatalf("failed to upsert target: %v", err)
	}
	if err := store.UpsertTarget(ctx, employeeID, productID, ord, 120); err != nil {
		t.Fatalf("failed to upsert target: %v", err)
	}

	actual := 80.0
	if err := store.RecordActual(ctx, employeeID, productID, far, &actual); err != nil {
		t.Fatalf("failed to record actual: %v", err)
	}
	if err := store.RecordActual(ctx, employeeID, productID, period.New("Mehr", 1403), &actual); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for month without target, got %v", err)
	}

	entries, err := store.YearEntries(ctx, employeeID, productID, 1403)
	if err != nil {
		t.Fatalf("failed to load entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Month != "Farvardin" || entries[1].Month != "Ordibehesht" {
		t.Fatalf("expected canonical month order, got %s then %s", entries[0].Month, entries[1].Month)
	}
	if entries[0].Actual == nil || *entries[0].Actual != 80 {
		t.Fatalf("expected recorded actual 80, got %v", entries[0].Actual)
	}
	if entries[1].Actual != nil {
		t.Fatalf("expected no actual for second month, got %v", *entries[1].Actual)
	}

	// carry-over observed through the live rows: 100 - 80 = 20 short.
	statuses := YearStatuses(entries, 1403)
	if statuses[1].CarryOver != 20 {
		t.Fatalf("expected carry-over 20 in second month, got %v", statuses[1].CarryOver)
	}

	if err := store.RecordActual(ctx, employeeID, productID, far, nil); err != nil {
		t.Fatalf("failed to clear actual: %v", err)
	}
	if err := store.DeleteEntry(ctx, employeeID, productID, far); err != nil {
		t.Fatalf("failed to delete entry: %v", err)
	}
	if err := store.DeleteEntry(ctx, employeeID, productID, far); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
