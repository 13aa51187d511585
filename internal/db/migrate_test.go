package db

import (
	"strings"
	"testing"
)

func TestRunMigrationsRequiresDSN(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	err := RunMigrations()
	if err == nil || !strings.Contains(err.Error(), "DATABASE_DSN") {
		t.Fatalf("err = %v, want empty-DSN failure", err)
	}
}
