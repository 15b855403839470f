// Package dataset loads reference rows from CSV, zstd-compressed CSV and
// SQLite files, and watches the source file for changes.
package dataset

// Reference dataset column names.
const (
	ColDeveloper            = "developer"
	ColPlatform             = "platform"
	ColGenre                = "genre"
	ColManufacturer         = "manufacturer"
	ColDeveloperAvgScore    = "developer_avg_score"
	ColPlatformAge          = "platform_age"
	ColPlatformGenre        = "platform_genre"
	ColPlatformGenreEncoded = "platform_genre_encoded"
	ColGenreEncoded         = "genre_encoded"
	ColPlatformEncoded      = "platform_encoded"
	ColManufacturerEncoded  = "manufacturer_encoded"
	ColMetascore            = "metascore" // optional, used for insights only
)

// requiredColumns lists the columns every loader must find.
var requiredColumns = []string{ //nolint:gochecknoglobals // static schema description
	ColDeveloper,
	ColPlatform,
	ColGenre,
	ColManufacturer,
	ColDeveloperAvgScore,
	ColPlatformAge,
	ColPlatformGenre,
	ColPlatformGenreEncoded,
	ColGenreEncoded,
	ColPlatformEncoded,
	ColManufacturerEncoded,
}

// Row is one historical game with its precomputed aggregates. Rows are
// immutable once loaded; Metascore is NaN when the source lacks the column.
type Row struct {
	Developer    string
	Platform     string
	Genre        string
	Manufacturer string

	// PlatformGenre is the precomputed "{platform}_{genre}" composite key.
	PlatformGenre string

	DeveloperAvgScore    float64
	PlatformAge          float64
	PlatformGenreEncoded float64
	GenreEncoded         float64
	PlatformEncoded      float64
	ManufacturerEncoded  float64

	Metascore float64
}
