package almanac

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS almanac (
	latitude         REAL    NOT NULL,
	longitude        REAL    NOT NULL,
	utc_offset       REAL    NOT NULL,
	day              TEXT    NOT NULL,
	date             TEXT    NOT NULL,
	sunrise          TEXT    NOT NULL,
	sunset           TEXT    NOT NULL,
	solar_noon       TEXT    NOT NULL,
	declination      REAL    NOT NULL,
	equation_of_time INTEGER NOT NULL,
	day_length       INTEGER NOT NULL,
	sunrise_searched INTEGER NOT NULL,
	sunset_searched  INTEGER NOT NULL,
	PRIMARY KEY (latitude, longitude, utc_offset, day)
)`

// Store keeps almanac rows in a SQLite database, keyed by location and
// calendar date.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the SQLite database at path.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create almanac table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts rows for loc in one transaction, replacing rows already
// stored for the same dates.
func (s *Store) Save(ctx context.Context, loc Location, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO almanac (
			latitude, longitude, utc_offset, day, date,
			sunrise, sunset, solar_noon,
			declination, equation_of_time, day_length,
			sunrise_searched, sunset_searched
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.ExecContext(ctx,
			loc.Latitude, loc.Longitude, loc.UTCOffset,
			r.Date.Format(time.DateOnly), r.Date.Format(time.RFC3339),
			formatTime(r.Sunrise), formatTime(r.Sunset), formatTime(r.SolarNoon),
			r.Declination, int64(r.EquationOfTime), int64(r.DayLength),
			r.SunriseSearched, r.SunsetSearched,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s: %w", r.Date.Format(time.DateOnly), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit almanac rows: %w", err)
	}
	return nil
}

// Range returns the stored rows for loc whose calendar dates fall between
// from and to, inclusive, in date order.
func (s *Store) Range(ctx context.Context, loc Location, from, to time.Time) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, sunrise, sunset, solar_noon,
		       declination, equation_of_time, day_length,
		       sunrise_searched, sunset_searched
		FROM almanac
		WHERE latitude = ? AND longitude = ? AND utc_offset = ?
		  AND day BETWEEN ? AND ?
		ORDER BY day`,
		loc.Latitude, loc.Longitude, loc.UTCOffset,
		civil(from).Format(time.DateOnly), civil(to).Format(time.DateOnly),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query almanac: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r                         Row
			date, rise, set, noon     string
			eot, length               int64
			riseSearched, setSearched bool
		)
		if err := rows.Scan(&date, &rise, &set, &noon, &r.Declination, &eot, &length, &riseSearched, &setSearched); err != nil {
			return nil, fmt.Errorf("failed to scan almanac row: %w", err)
		}

		for _, f := range []struct {
			dst *time.Time
			src string
		}{{&r.Date, date}, {&r.Sunrise, rise}, {&r.Sunset, set}, {&r.SolarNoon, noon}} {
			if f.src == "" {
				continue
			}
			if *f.dst, err = time.Parse(time.RFC3339, f.src); err != nil {
				return nil, fmt.Errorf("failed to parse stored time %q: %w", f.src, err)
			}
		}

		r.EquationOfTime = time.Duration(eot)
		r.DayLength = time.Duration(length)
		r.SunriseSearched = riseSearched
		r.SunsetSearched = setSearched
		out = append(out, r)
	}
	return out, rows.Err()
}
