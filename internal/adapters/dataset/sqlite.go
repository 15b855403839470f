package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	_ "modernc.org/sqlite" // sqlite driver
)

// games is the table the reference rows live in.
const sqliteTable = "games"

// LoadSQLite reads reference rows from a SQLite database file.
func LoadSQLite(ctx context.Context, path string) ([]Row, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenDataset, err)
	}
	defer func() { _ = db.Close() }()

	hasMetascore, err := tableHasColumn(ctx, db, sqliteTable, ColMetascore)
	if err != nil {
		return nil, err
	}

	cols := make([]string, 0, len(requiredColumns)+1)
	cols = append(cols, requiredColumns...)
	if hasMetascore {
		cols = append(cols, ColMetascore)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), sqliteTable) //nolint:gosec // column and table names are compile-time constants
	dbRows, err := db.QueryContext(ctx, query)
	if err != nil {
		// A missing column surfaces here as a query error; make it explicit.
		return nil, fmt.Errorf("%w: %w", ErrMissingColumn, err)
	}
	defer func() { _ = dbRows.Close() }()

	var rows []Row
	for dbRows.Next() {
		row := Row{Metascore: math.NaN()}
		dest := []interface{}{
			&row.Developer,
			&row.Platform,
			&row.Genre,
			&row.Manufacturer,
			&row.DeveloperAvgScore,
			&row.PlatformAge,
			&row.PlatformGenre,
			&row.PlatformGenreEncoded,
			&row.GenreEncoded,
			&row.PlatformEncoded,
			&row.ManufacturerEncoded,
		}
		if hasMetascore {
			dest = append(dest, &row.Metascore)
		}
		if err := dbRows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRecord, err)
		}
		rows = append(rows, row)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRecord, err)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	return rows, nil
}

// tableHasColumn checks table metadata for an optional column.
func tableHasColumn(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table)) //nolint:gosec // table name is a compile-time constant
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrOpenDataset, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, fmt.Errorf("%w: %w", ErrOpenDataset, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
