package postgres

import (
	"fmt"

	"dispatch/internal/adapters/out/postgres/dispatchrunrepo"

	// Registers the "postgres" database/sql driver used by the dialector.
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the connection settings of the dispatch database.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the settings as a key/value connection string.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode,
	)
}

// Open connects through lib/pq and migrates the schema.
func Open(cfg Config) (*gorm.DB, error) {
	dialector := gormpostgres.New(gormpostgres.Config{
		DriverName: "postgres",
		DSN:        cfg.DSN(),
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the tables of the dispatch service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&dispatchrunrepo.DispatchRunDTO{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
