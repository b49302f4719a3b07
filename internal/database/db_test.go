package database

import (
	"testing"

	"github.com/farmsync/farmsync-api/internal/config"
)

func TestDSN(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		DBUser: "farmsync", DBPass: "s3cret",
		DBHost: "db.internal", DBPort: "3306", DBName: "farmsync",
	}
	got := dsn(cfg)
	want := "farmsync:s3cret@tcp(db.internal:3306)/farmsync?charset=utf8mb4&parseTime=true&loc=UTC"
	if got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}

func TestDSNEmptyPassword(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		DBUser: "root", DBHost: "127.0.0.1", DBPort: "3307", DBName: "farmsync_test",
	}
	got := dsn(cfg)
	want := "root@tcp(127.0.0.1:3307)/farmsync_test?charset=utf8mb4&parseTime=true&loc=UTC"
	if got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}
