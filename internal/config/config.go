// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath points at the reference dataset. Supported formats:
	// CSV, zstd-compressed CSV (.csv.zst) and SQLite (.db/.sqlite).
	DatasetPath string `koanf:"dataset_path"`

	// DatasetFormat forces a loader: auto, csv or sqlite.
	DatasetFormat string `koanf:"dataset_format"`

	// ModelPath points at the serialized regression model artifact.
	ModelPath string `koanf:"model_path"`

	// WatchDataset reloads the reference table when the dataset file changes.
	WatchDataset bool `koanf:"watch_dataset"`

	// ManufacturerOverrides adds or replaces platform -> manufacturer
	// mappings on top of the built-in table.
	ManufacturerOverrides map[string]string `koanf:"manufacturer_overrides"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		DatasetPath:           "data/metacritic_features.csv",
		DatasetFormat:         "auto",
		ModelPath:             "data/model.json",
		WatchDataset:          false,
		ManufacturerOverrides: map[string]string{},
	}
}
