package petfinder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{
			name:  "offset without colon",
			input: "2025-08-16T12:28:02+0000",
			want:  time.Date(2025, 8, 16, 12, 28, 2, 0, time.UTC),
		},
		{
			name:  "offset with colon passes through",
			input: "2025-08-16T12:28:02+00:00",
			want:  time.Date(2025, 8, 16, 12, 28, 2, 0, time.UTC),
		},
		{
			name:  "non-utc offset converted to utc",
			input: "2025-08-16T07:28:02-0500",
			want:  time.Date(2025, 8, 16, 12, 28, 2, 0, time.UTC),
		},
		{
			name:  "zulu suffix",
			input: "2025-08-16T12:28:02Z",
			want:  time.Date(2025, 8, 16, 12, 28, 2, 0, time.UTC),
		},
		{
			name:    "empty is null",
			input:   "",
			wantNil: true,
		},
		{
			name:    "garbage fails",
			input:   "not-a-timestamp",
			wantErr: true,
		},
		{
			name:    "date only fails",
			input:   "2025-08-16",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestMapAnimal_FullRecord(t *testing.T) {
	raw := RawAnimal{
		"id":                float64(77813886),
		"name":              "Shelina",
		"type":              "Cat",
		"age":               "Senior",
		"gender":            "Female",
		"status":            "adoptable",
		"organization_id":   "TX123",
		"published_at":      "2025-08-16T12:28:02+0000",
		"status_changed_at": "2025-08-16T12:28:02+0000",
		"contact": map[string]any{
			"address": map[string]any{
				"city":  "Austin",
				"state": "TX",
			},
		},
	}

	before := time.Now().UTC()
	row, err := MapAnimal(raw)
	require.NoError(t, err)

	assert.Equal(t, int64(77813886), row.ID)
	assert.Equal(t, "Shelina", *row.Name)
	assert.Equal(t, "Cat", *row.Type)
	assert.Equal(t, "Senior", *row.Age)
	assert.Equal(t, "Female", *row.Gender)
	assert.Equal(t, "adoptable", *row.Status)
	assert.Equal(t, "TX123", *row.OrgID)
	assert.Equal(t, "Austin", *row.City)
	assert.Equal(t, "TX", *row.State)

	want := time.Date(2025, 8, 16, 12, 28, 2, 0, time.UTC)
	require.NotNil(t, row.PublishedAt)
	assert.True(t, row.PublishedAt.Equal(want))
	require.NotNil(t, row.StatusChangedAt)
	assert.True(t, row.StatusChangedAt.Equal(want))

	// fetched_at is ingestion wall-clock time, not a source value
	assert.False(t, row.FetchedAt.Before(before))
	assert.False(t, row.FetchedAt.After(time.Now().UTC()))
}

func TestMapAnimal_MissingNestingMeansNulls(t *testing.T) {
	row, err := MapAnimal(RawAnimal{"id": float64(1)})
	require.NoError(t, err)

	assert.Nil(t, row.Name)
	assert.Nil(t, row.City)
	assert.Nil(t, row.State)
	assert.Nil(t, row.PublishedAt)
	assert.Nil(t, row.StatusChangedAt)
}

func TestMapAnimal_ContactWithoutAddress(t *testing.T) {
	row, err := MapAnimal(RawAnimal{
		"id":      float64(2),
		"contact": map[string]any{"email": "shelter@example.com"},
	})
	require.NoError(t, err)
	assert.Nil(t, row.City)
	assert.Nil(t, row.State)
}

func TestMapAnimal_MissingIDFails(t *testing.T) {
	_, err := MapAnimal(RawAnimal{"name": "Stray"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestMapAnimal_MalformedTimestampPropagates(t *testing.T) {
	_, err := MapAnimal(RawAnimal{
		"id":           float64(3),
		"published_at": "yesterday-ish",
	})
	require.Error(t, err)
}

func TestMapAnimal_NonStringScalarStoredAsNull(t *testing.T) {
	row, err := MapAnimal(RawAnimal{
		"id":   float64(4),
		"name": float64(42),
	})
	require.NoError(t, err)
	assert.Nil(t, row.Name)
}
