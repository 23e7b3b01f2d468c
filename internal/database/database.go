package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the reservation database. A postgres:// or postgresql://
// DSN selects PostgreSQL; anything else is treated as a SQLite file path,
// which backs local development and the seed command.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Printf("level=info msg=connecting driver=postgres")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Printf("level=info msg=connecting driver=sqlite dsn=%s", dsn)
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite", // modernc build, no cgo
			DSN:        dsn,
		}),
		cfg,
	)
}
