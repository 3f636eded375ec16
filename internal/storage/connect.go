// Package storage is the relational sink: connection handling, the
// dialect-aware upsert statement, the animals table DDL, and transaction
// management over sqlx.
package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the sink and rejects drivers with no supported dialect
// up front, before any statement is built against the connection.
func Open(driver, dsn string) (*sqlx.DB, error) {
	if _, err := DialectFromDriver(driver); err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}
