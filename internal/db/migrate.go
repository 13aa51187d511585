package db

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"alucam-admin/internal/config"
	"alucam-admin/internal/models"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	var db *gorm.DB
	var err error
	logLevel := logger.Silent
	if config.ParseBool("DB_DEBUG", false) {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	dialector := open(dsn)
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(dialector, cfg)
		if err == nil {
			break
		}
		fmt.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	// Print masked DSN once for diagnostics (before migrations for visibility)
	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	fmt.Println("[DB] Using DSN:", masked)

	// MIGRATIONS=1 runs sql migrations via golang-migrate; otherwise the
	// AutoMigrate fallback keeps dev setups simple.
	if config.ParseBool("MIGRATIONS", false) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range Models() {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"roles", "users", "branches", "customers", "orders"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	// Seeding only when explicitly requested (e.g. development) via DB_SEED=1|true
	if config.ParseBool("DB_SEED", false) {
		seed(db)
	}
	return db, nil
}

func open(dsn string) gorm.Dialector {
	if DriverFor(dsn) == DriverMySQL {
		return mysql.Open(MySQLDSN(dsn))
	}
	return postgres.Open(dsn)
}

// Models returns every persisted model in AutoMigrate order (parents first).
func Models() []interface{} {
	return []interface{}{
		&models.Role{}, &models.Branch{}, &models.User{}, &models.Customer{},
		&models.Order{}, &models.OrderProfile{}, &models.OrderGlass{}, &models.OrderPricing{},
		&models.GlassStock{}, &models.ProfileStock{}, &models.AccessoryStock{},
		&models.Setting{}, &models.ActivityLog{},
	}
}

func seed(db *gorm.DB) {
	for _, r := range []models.Role{
		{Name: models.RoleAdmin, Description: "Full access"},
		{Name: models.RoleManager, Description: "Branch management"},
		{Name: models.RoleSeller, Description: "Order entry and customer contact"},
	} {
		var existing models.Role
		if err := db.Where("name = ?", r.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&r)
		}
	}
	var branch models.Branch
	if err := db.First(&branch).Error; err == gorm.ErrRecordNotFound {
		db.Create(&models.Branch{Name: "Merkez", City: "Istanbul", Active: true})
	}
	for _, s := range []models.Setting{
		{Key: "company_name", Value: "Alucam"},
		{Key: "currency", Value: "TRY"},
	} {
		var existing models.Setting
		if err := db.Where("key = ?", s.Key).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&s)
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
