package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"picon/config"
	"picon/pkg/storage/postgres"
)

// testDSN returns the DSN of a scratch database or skips the test.
func testDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("PICON_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PICON_TEST_POSTGRES_DSN not set")
	}
	return dsn
}

// go test -v --run ^TestPostgresInvalidDSN$
func TestPostgresInvalidDSN(t *testing.T) {
	testDSN(t)
	invalidDSN := "host=invalid port=5432 user=fail password=fail dbname=fail sslmode=disable connect_timeout=2"

	_, err := postgres.NewClient(invalidDSN)
	if err == nil {
		t.Fatal("expected error for invalid DSN, got nil")
	}
}

// go test -v --run ^TestPostgresClientWithConfig$
func TestPostgresClientWithConfig(t *testing.T) {
	client, err := postgres.NewClient(testDSN(t))
	if err != nil {
		t.Fatalf("failed to create Postgres client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if !client.IsHealthy(ctx) {
		t.Fatal("expected healthy DB connection")
	}

	if err := client.AutoMigrateQuoteRecord(); err != nil {
		t.Fatalf("auto migration failed: %v", err)
	}
}

// go test -v --run ^TestPostgresDSNFromConfig$
func TestPostgresDSNFromConfig(t *testing.T) {
	cfg := config.PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "yourpw",
		DBName:   "picon",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 user=postgres password=yourpw dbname=picon sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
