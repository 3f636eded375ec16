package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"shelter_sync/internal/domain"
)

// AnimalStore writes animal rows through the dialect-appropriate upsert.
// The statement text is fixed at construction from the connection's driver.
type AnimalStore struct {
	db     *sqlx.DB
	ddl    string
	upsert string
}

func NewAnimalStore(db *sqlx.DB) (*AnimalStore, error) {
	dialect, err := DialectFromDriver(db.DriverName())
	if err != nil {
		return nil, err
	}
	return &AnimalStore{
		db:     db,
		ddl:    AnimalsDDL(dialect),
		upsert: AnimalUpsert(dialect),
	}, nil
}

// EnsureSchema creates the animals table if it does not exist yet.
func (s *AnimalStore) EnsureSchema(ctx context.Context) error {
	exec := GetExecutor(ctx, s.db)
	if _, err := exec.ExecContext(ctx, s.ddl); err != nil {
		return fmt.Errorf("ensure animals table: %w", err)
	}
	return nil
}

// UpsertBatch writes every row, inserting or overwriting by id. Runs inside
// the ambient transaction when one is carried by ctx.
func (s *AnimalStore) UpsertBatch(ctx context.Context, rows []domain.AnimalRow) error {
	exec := GetExecutor(ctx, s.db)
	for i := range rows {
		if _, err := sqlx.NamedExecContext(ctx, exec, s.upsert, rows[i]); err != nil {
			return fmt.Errorf("upsert animal %d: %w", rows[i].ID, err)
		}
	}
	return nil
}

// CountAnimals reports the number of stored rows.
func (s *AnimalStore) CountAnimals(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM animals")
	return count, err
}

// GetAnimal fetches one row by id.
func (s *AnimalStore) GetAnimal(ctx context.Context, id int64) (*domain.AnimalRow, error) {
	var row domain.AnimalRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind("SELECT * FROM animals WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return &row, nil
}
