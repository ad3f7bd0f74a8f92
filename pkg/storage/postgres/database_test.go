package postgres_test

import (
	"os"
	"testing"

	"picon/config"
	"picon/pkg/storage/postgres"
)

// go test -v --run TestCreateDatabase
// Needs PICON_TEST_POSTGRES_HOST and PICON_TEST_POSTGRES_PASSWORD for a superuser.
func TestCreateDatabase(t *testing.T) {
	host := os.Getenv("PICON_TEST_POSTGRES_HOST")
	if host == "" {
		t.Skip("PICON_TEST_POSTGRES_HOST not set")
	}

	cfg := config.PostgresConfig{
		Host:     host,
		Port:     5432,
		User:     "postgres",
		Password: os.Getenv("PICON_TEST_POSTGRES_PASSWORD"),
		DBName:   "test_picon_db",
		SSLMode:  "disable",
	}

	if err := postgres.CreateDatabase(cfg); err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	// second call finds the database and is a no-op
	if err := postgres.CreateDatabase(cfg); err != nil {
		t.Fatalf("repeat create failed: %v", err)
	}
}
