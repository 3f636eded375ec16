package petfinder

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"shelter_sync/internal/domain"
)

// trailing ±HHMM offset without a colon, e.g. "+0000"
var offsetSuffix = regexp.MustCompile(`([+-]\d{2})(\d{2})$`)

// ParseTimestamp converts an API timestamp into a UTC instant. Offsets like
// "+0000" are rewritten to "+00:00" first; colon-separated input passes
// through untouched. Empty input yields (nil, nil). A string that still fails
// to parse is an error for the caller; record mapping does not recover it.
func ParseTimestamp(ts string) (*time.Time, error) {
	if ts == "" {
		return nil, nil
	}

	norm := offsetSuffix.ReplaceAllString(strings.TrimSpace(ts), "$1:$2")
	t, err := time.Parse(time.RFC3339, norm)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}

	u := t.UTC()
	return &u, nil
}

// MapAnimal projects a raw record onto the animals table row shape. Scalars
// come from the top level, city/state from the nested contact→address block
// (missing nesting means both null), and the two source timestamps go
// through ParseTimestamp. FetchedAt is the mapping wall-clock time, never a
// value from the source. Only the timestamps are validated; other fields are
// stored as sent, or as NULL when they are not strings.
func MapAnimal(a RawAnimal) (domain.AnimalRow, error) {
	id, ok := numberField(a, "id")
	if !ok {
		return domain.AnimalRow{}, fmt.Errorf("animal record missing id")
	}

	publishedAt, err := ParseTimestamp(stringValue(a, "published_at"))
	if err != nil {
		return domain.AnimalRow{}, err
	}
	statusChangedAt, err := ParseTimestamp(stringValue(a, "status_changed_at"))
	if err != nil {
		return domain.AnimalRow{}, err
	}

	var city, state *string
	if contact, ok := a["contact"].(map[string]any); ok {
		if address, ok := contact["address"].(map[string]any); ok {
			city = stringField(address, "city")
			state = stringField(address, "state")
		}
	}

	return domain.AnimalRow{
		ID:              id,
		Name:            stringField(a, "name"),
		Type:            stringField(a, "type"),
		Age:             stringField(a, "age"),
		Gender:          stringField(a, "gender"),
		Status:          stringField(a, "status"),
		OrgID:           stringField(a, "organization_id"),
		City:            city,
		State:           state,
		PublishedAt:     publishedAt,
		StatusChangedAt: statusChangedAt,
		FetchedAt:       time.Now().UTC(),
	}, nil
}

func numberField(m map[string]any, key string) (int64, bool) {
	switch v := m[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

func stringField(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

func stringValue(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
