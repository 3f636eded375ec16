package storage

import (
	"context"
	"time"

	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"shelter_sync/internal/domain"
)

// The store unit tests run against an in-memory sqlite sink; the postgres
// path is covered by the integration suite.
type AnimalStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	db    *sqlx.DB
	store *AnimalStore
}

func TestAnimalStoreTestSuite(t *testing.T) {
	suite.Run(t, new(AnimalStoreTestSuite))
}

func (s *AnimalStoreTestSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := Open("sqlite3", ":memory:")
	s.Require().NoError(err)
	db.SetMaxOpenConns(1) // keep the in-memory database on one connection
	s.db = db

	store, err := NewAnimalStore(db)
	s.Require().NoError(err)
	s.store = store

	s.Require().NoError(store.EnsureSchema(s.ctx))
}

func (s *AnimalStoreTestSuite) TearDownTest() {
	s.db.Close()
}

func ptr[T any](v T) *T { return &v }

func shelina() domain.AnimalRow {
	published := time.Date(2025, 8, 16, 12, 28, 2, 0, time.UTC)
	return domain.AnimalRow{
		ID:              77813886,
		Name:            ptr("Shelina"),
		Type:            ptr("Cat"),
		Age:             ptr("Senior"),
		Gender:          ptr("Female"),
		Status:          ptr("adoptable"),
		OrgID:           ptr("TX123"),
		City:            ptr("Austin"),
		State:           ptr("TX"),
		PublishedAt:     &published,
		StatusChangedAt: &published,
		FetchedAt:       time.Date(2025, 8, 16, 13, 0, 0, 0, time.UTC),
	}
}

func (s *AnimalStoreTestSuite) TestEnsureSchema_Idempotent() {
	s.NoError(s.store.EnsureSchema(s.ctx))
	s.NoError(s.store.EnsureSchema(s.ctx))
}

func (s *AnimalStoreTestSuite) TestUpsertBatch_Insert() {
	s.NoError(s.store.UpsertBatch(s.ctx, []domain.AnimalRow{shelina()}))

	count, err := s.store.CountAnimals(s.ctx)
	s.NoError(err)
	s.Equal(1, count)

	row, err := s.store.GetAnimal(s.ctx, 77813886)
	s.NoError(err)
	s.Equal("Shelina", *row.Name)
	s.Equal("adoptable", *row.Status)
	s.Require().NotNil(row.PublishedAt)
	s.True(row.PublishedAt.Equal(time.Date(2025, 8, 16, 12, 28, 2, 0, time.UTC)))
}

func (s *AnimalStoreTestSuite) TestUpsertBatch_SameIDOverwritesWithoutDuplicating() {
	first := shelina()
	s.NoError(s.store.UpsertBatch(s.ctx, []domain.AnimalRow{first}))

	before, err := s.store.CountAnimals(s.ctx)
	s.NoError(err)

	second := shelina()
	second.Name = ptr("Shelina (Updated)")
	second.Status = ptr("adopted")
	updated := time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC)
	second.PublishedAt = &updated
	s.NoError(s.store.UpsertBatch(s.ctx, []domain.AnimalRow{second}))

	after, err := s.store.CountAnimals(s.ctx)
	s.NoError(err)
	s.Equal(before, after)

	row, err := s.store.GetAnimal(s.ctx, 77813886)
	s.NoError(err)
	s.Equal("Shelina (Updated)", *row.Name)
	s.Equal("adopted", *row.Status)
	s.Require().NotNil(row.PublishedAt)
	s.True(row.PublishedAt.Equal(updated))
}

func (s *AnimalStoreTestSuite) TestUpsertBatch_NullFieldsRoundTrip() {
	row := domain.AnimalRow{ID: 5, FetchedAt: time.Now().UTC()}
	s.NoError(s.store.UpsertBatch(s.ctx, []domain.AnimalRow{row}))

	got, err := s.store.GetAnimal(s.ctx, 5)
	s.NoError(err)
	s.Nil(got.Name)
	s.Nil(got.City)
	s.Nil(got.PublishedAt)
	s.Nil(got.StatusChangedAt)
}

func (s *AnimalStoreTestSuite) TestTransaction_RollsBackOnError() {
	tm := NewTransactionManager(s.db)

	err := tm.WithTransaction(s.ctx, func(txCtx context.Context) error {
		if err := s.store.UpsertBatch(txCtx, []domain.AnimalRow{shelina()}); err != nil {
			return err
		}
		return context.Canceled
	})
	s.Error(err)

	count, err := s.store.CountAnimals(s.ctx)
	s.NoError(err)
	s.Equal(0, count)
}

func (s *AnimalStoreTestSuite) TestTransaction_CommitsOnSuccess() {
	tm := NewTransactionManager(s.db)

	err := tm.WithTransaction(s.ctx, func(txCtx context.Context) error {
		return s.store.UpsertBatch(txCtx, []domain.AnimalRow{shelina()})
	})
	s.NoError(err)

	count, err := s.store.CountAnimals(s.ctx)
	s.NoError(err)
	s.Equal(1, count)
}
