package storage

import "fmt"

// Dialect selects the SQL syntax variant of the target engine.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DialectFromDriver maps a database/sql driver name to a Dialect. The sink's
// dialect is always derived from the live connection, never configured
// separately.
func DialectFromDriver(driverName string) (Dialect, error) {
	switch driverName {
	case "postgres":
		return DialectPostgres, nil
	case "sqlite3":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driverName)
	}
}

// AnimalsDDL returns the idempotent destination-table DDL. Postgres gets a
// true timestamptz; SQLite gets TIMESTAMP, which its driver round-trips to
// time.Time.
func AnimalsDDL(d Dialect) string {
	tsType := "TIMESTAMP"
	if d == DialectPostgres {
		tsType = "TIMESTAMPTZ"
	}
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS animals (
	id                INTEGER PRIMARY KEY,
	name              TEXT,
	type              TEXT,
	age               TEXT,
	gender            TEXT,
	status            TEXT,
	org_id            TEXT,
	city              TEXT,
	state             TEXT,
	published_at      %[1]s,
	status_changed_at %[1]s,
	fetched_at        %[1]s
)`, tsType)
}

// AnimalUpsert returns the named-binding insert-or-update statement for the
// given dialect: insert the full row, and on an id conflict overwrite every
// non-key column with the incoming value. Postgres needs bound timestamp
// parameters cast to TIMESTAMPTZ; SQLite round-trips ISO-8601 text as-is.
// Pure function of the dialect; performs no I/O.
func AnimalUpsert(d Dialect) string {
	if d == DialectPostgres {
		return `
		INSERT INTO animals (
			id, name, type, age, gender, status, org_id, city, state,
			published_at, status_changed_at, fetched_at
		) VALUES (
			:id, :name, :type, :age, :gender, :status, :org_id, :city, :state,
			CAST(:published_at AS TIMESTAMPTZ),
			CAST(:status_changed_at AS TIMESTAMPTZ),
			CAST(:fetched_at AS TIMESTAMPTZ)
		)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			status = EXCLUDED.status,
			org_id = EXCLUDED.org_id,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			published_at = EXCLUDED.published_at,
			status_changed_at = EXCLUDED.status_changed_at,
			fetched_at = EXCLUDED.fetched_at`
	}

	return `
	INSERT INTO animals (
		id, name, type, age, gender, status, org_id, city, state,
		published_at, status_changed_at, fetched_at
	) VALUES (
		:id, :name, :type, :age, :gender, :status, :org_id, :city, :state,
		:published_at, :status_changed_at, :fetched_at
	)
	ON CONFLICT (id) DO UPDATE SET
		name = excluded.name,
		type = excluded.type,
		age = excluded.age,
		gender = excluded.gender,
		status = excluded.status,
		org_id = excluded.org_id,
		city = excluded.city,
		state = excluded.state,
		published_at = excluded.published_at,
		status_changed_at = excluded.status_changed_at,
		fetched_at = excluded.fetched_at`
}
