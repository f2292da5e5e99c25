package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// LookupFunc returns the value of an environment variable and whether it is set.
type LookupFunc func(key string) (string, bool)

// Load reads configuration from the process environment.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads configuration through lookup instead of the process
// environment.
func LoadFrom(lookup LookupFunc) (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem(), lookup); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct populates tagged fields, recursing into nested structs.
func loadStruct(v reflect.Value, lookup LookupFunc) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal, lookup); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		name := envName
		value, ok := lookup(envName)
		if !ok || value == "" {
			if alt := field.Tag.Get("envAlt"); alt != "" {
				if v, ok := lookup(alt); ok && v != "" {
					name, value = alt, v
				}
			}
		}
		if value == "" {
			value = field.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", name, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its kind.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is usable.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if _, err := parseDelimiter(c.Table.Delimiter); err != nil {
		errs = append(errs, fmt.Sprintf("CSVEDIT_DELIMITER (%q) %v", c.Table.Delimiter, err))
	}

	if c.Display.PageSize <= 0 {
		errs = append(errs, "CSVEDIT_PAGE_SIZE must be positive")
	}
	if c.Display.MaxCellWidth < 0 {
		errs = append(errs, "CSVEDIT_MAX_CELL_WIDTH must be non-negative")
	}

	if c.Files.MaxFileSize <= 0 {
		errs = append(errs, "CSVEDIT_MAX_FILE_SIZE must be positive")
	}
	if n := utf8.RuneCountInString(c.Files.SheetName); n == 0 || n > 31 {
		errs = append(errs, fmt.Sprintf("CSVEDIT_SHEET_NAME (%q) must be 1-31 characters", c.Files.SheetName))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a one-line representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Table: {Delimiter: %q, SanitizeUTF8: %v, Header: %v}, ",
		c.Table.Delimiter, c.Table.SanitizeUTF8, c.Table.Header)
	fmt.Fprintf(&b, "Display: {PageSize: %d, MaxCellWidth: %d, Color: %v}, ",
		c.Display.PageSize, c.Display.MaxCellWidth, c.Display.Color)
	fmt.Fprintf(&b, "Files: {MaxFileSize: %d, Backup: %v, SheetName: %q}, ",
		c.Files.MaxFileSize, c.Files.Backup, c.Files.SheetName)
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format)
	b.WriteString("}")
	return b.String()
}

// ParseDelimiter validates a delimiter given as text, accepting the names
// "tab" and `\t` for a tab character.
func ParseDelimiter(s string) (rune, error) {
	return parseDelimiter(s)
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.New("must be a single character")
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || r == '\r' || r == '\n' || r == '"' {
		return 0, errors.New("must not be a quote, newline or invalid character")
	}
	return r, nil
}
