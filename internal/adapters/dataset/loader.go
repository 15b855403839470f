package dataset

import (
	"context"
	"fmt"
	"strings"
)

// Format selects a dataset loader.
type Format string

// Supported dataset formats.
const (
	FormatAuto   Format = "auto"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

// Load reads the reference rows from path. With FormatAuto the loader is
// picked from the file extension: .db/.sqlite/.sqlite3 use SQLite,
// everything else is treated as CSV (optionally zstd-compressed, .zst).
func Load(ctx context.Context, path string, format Format) ([]Row, error) {
	switch format {
	case FormatCSV:
		return LoadCSV(ctx, path)
	case FormatSQLite:
		return LoadSQLite(ctx, path)
	case FormatAuto, "":
		return Load(ctx, path, detectFormat(path))
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrOpenDataset, format)
	}
}

func detectFormat(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"),
		strings.HasSuffix(lower, ".sqlite3"):
		return FormatSQLite
	default:
		return FormatCSV
	}
}
