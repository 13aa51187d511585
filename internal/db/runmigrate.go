package db

import (
	"errors"
	"log"

	"alucam-admin/internal/config"
)

// RunMigrations applies the schema without starting the server. With
// MIGRATIONS enabled it drives the SQL migrations directly; otherwise it
// falls back to the AutoMigrate connect path, same as app startup.
func RunMigrations() error {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return errors.New("DATABASE_DSN is empty, check the environment configuration")
	}
	if config.ParseBool("MIGRATIONS", false) {
		log.Println("Running explicit SQL migrations...")
		return runSQLMigrations(dsn)
	}
	log.Println("MIGRATIONS not enabled; applying schema via AutoMigrate")
	_, err := ConnectAndMigrate()
	return err
}
