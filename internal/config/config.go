// Package config loads csvedit settings from the environment. Every value
// has a default, so an empty environment is a valid configuration; Load
// validates the result so a bad setting fails before any file is touched.
// Command-line flags are applied on top by the cli package.
package config

// Config holds all csvedit configuration.
type Config struct {
	Table   TableConfig
	Display DisplayConfig
	Files   FilesConfig
	Logging LoggingConfig
}

// TableConfig controls how CSV text is read.
type TableConfig struct {
	// Delimiter is the field separator, a single character (default: ,)
	Delimiter string `env:"CSVEDIT_DELIMITER" default:","`

	// SanitizeUTF8 replaces invalid UTF-8 with U+FFFD instead of failing (default: false)
	SanitizeUTF8 bool `env:"CSVEDIT_SANITIZE_UTF8" default:"false"`

	// Header treats the first record as a header row (default: false)
	Header bool `env:"CSVEDIT_HEADER" default:"false"`
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	// PageSize is the number of rows per page (default: 10)
	PageSize int `env:"CSVEDIT_PAGE_SIZE" default:"10"`

	// MaxCellWidth truncates wider cells when rendering; 0 disables (default: 40)
	MaxCellWidth int `env:"CSVEDIT_MAX_CELL_WIDTH" default:"40"`

	// Color enables styled output on terminals (default: true)
	Color bool `env:"CSVEDIT_COLOR" default:"true"`
}

// FilesConfig controls reading and writing files.
type FilesConfig struct {
	// MaxFileSize is the largest file that will be loaded, in bytes (default: 100MB)
	MaxFileSize int64 `env:"CSVEDIT_MAX_FILE_SIZE" default:"104857600"`

	// Backup keeps FILE.bak when a save overwrites an existing file (default: false)
	Backup bool `env:"CSVEDIT_BACKUP" default:"false"`

	// SheetName is the worksheet name used by export (default: Sheet1)
	SheetName string `env:"CSVEDIT_SHEET_NAME" default:"Sheet1"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"CSVEDIT_LOG_LEVEL" envAlt:"LOG_LEVEL" default:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"CSVEDIT_LOG_FORMAT" envAlt:"LOG_FORMAT" default:"text"`
}
