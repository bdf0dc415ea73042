package types

// ExtractionConfig holds settings for the extract stage.
type ExtractionConfig struct {
	// OutputDir is the directory that receives media files and content.txt.
	// In batch mode each document gets a subdirectory named after its stem.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// WriteManifest controls whether manifest.yaml is written next to content.txt.
	WriteManifest bool `json:"write_manifest" yaml:"write_manifest" mapstructure:"write_manifest"`

	// SkipUnchanged skips batch documents whose digest matches the last
	// catalog record and whose content.txt still exists. Requires the catalog.
	SkipUnchanged bool `json:"skip_unchanged" yaml:"skip_unchanged" mapstructure:"skip_unchanged"`
}

// CatalogConfig holds settings for the extraction catalog.
type CatalogConfig struct {
	// Enabled controls whether runs are recorded.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default ".docx-extract/catalog.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogFormat selects the log encoder.
type LogFormat string

const (
	LogConsole LogFormat = "console"
	LogJSON    LogFormat = "json"
)

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format selects console or json output.
	Format LogFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings loaded from docx-extract.yaml.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}
