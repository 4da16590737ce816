// Package config handles the arx configuration document: where bookmarks are
// saved and how listings are displayed.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigArgs is returned when a config update changes nothing.
	ErrNoConfigArgs = errors.New("no config args provided")

	// ErrZeroPagination is returned for a page size of zero.
	ErrZeroPagination = errors.New("can't paginate by 0")

	// ErrNegativePagination is returned for a page size below zero.
	ErrNegativePagination = errors.New("page size must be positive")
)

// DataFileName is used when a save location names a directory.
const DataFileName = "bookmarks.json"

// Config is the persisted configuration document. Files ending in .toml are
// read and written as TOML, anything else as YAML.
type Config struct {
	SaveLocation string     `yaml:"save_location" toml:"save_location"`
	PageBy       int        `yaml:"page_by,omitempty" toml:"page_by,omitempty"`
	TableStyle   TableStyle `yaml:"table_style,omitempty" toml:"table_style,omitempty"`
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func decode(path string, data []byte, c *Config) error {
	if isTOML(path) {
		_, err := toml.Decode(string(data), c)
		return err
	}
	return yaml.Unmarshal(data, c)
}

func encode(path string, c *Config) ([]byte, error) {
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(c)
}

// Load reads the config at path. A missing file yields a config saving to defaultData.
func Load(path, defaultData string) (*Config, error) {
	c := &Config{SaveLocation: defaultData}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if len(data) == 0 {
		return c, nil
	}
	if err := decode(path, data, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if c.SaveLocation == "" {
		c.SaveLocation = defaultData
	}
	c.SaveLocation = ExpandTilde(c.SaveLocation)
	if c.PageBy < 0 {
		c.PageBy = 0
	}
	if c.TableStyle != "" {
		style, err := ParseTableStyle(string(c.TableStyle))
		if err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		c.TableStyle = style
	}
	return c, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := encode(path, c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// PageSize returns the configured page size, or 10.
func (c *Config) PageSize() int {
	if c.PageBy > 0 {
		return c.PageBy
	}
	return 10
}

// Update lists requested config changes. Zero values mean "unchanged",
// except PageBy which is a pointer so that 0 can be rejected.
type Update struct {
	SaveLocation string
	PageBy       *int
	TableStyle   string
}

// Apply validates u, moves the data file if the save location changes and
// updates c. Nothing is touched if validation fails. It returns the previous
// save location when the file was relocated.
func (c *Config) Apply(u Update) (string, error) {
	if u.SaveLocation == "" && u.PageBy == nil && u.TableStyle == "" {
		return "", ErrNoConfigArgs
	}
	if u.PageBy != nil {
		switch {
		case *u.PageBy == 0:
			return "", ErrZeroPagination
		case *u.PageBy < 0:
			return "", fmt.Errorf("%w: got %d", ErrNegativePagination, *u.PageBy)
		}
	}
	var style TableStyle
	if u.TableStyle != "" {
		s, err := ParseTableStyle(u.TableStyle)
		if err != nil {
			return "", err
		}
		style = s
	}

	var previous string
	if u.SaveLocation != "" {
		target, err := resolveSaveLocation(u.SaveLocation)
		if err != nil {
			return "", err
		}
		if target != c.SaveLocation {
			if err := moveFile(c.SaveLocation, target); err != nil {
				return "", err
			}
			previous = c.SaveLocation
			c.SaveLocation = target
		}
	}
	if u.PageBy != nil {
		c.PageBy = *u.PageBy
	}
	if style != "" {
		c.TableStyle = style
	}
	return previous, nil
}

// Rollback moves the data file back to previous, the location Apply returned,
// and restores it as the save location.
func (c *Config) Rollback(previous string) error {
	if previous == "" || previous == c.SaveLocation {
		return nil
	}
	if err := moveFile(c.SaveLocation, previous); err != nil {
		return err
	}
	c.SaveLocation = previous
	return nil
}

func resolveSaveLocation(path string) (string, error) {
	path = ExpandTilde(path)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DataFileName)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve save location: %w", err)
	}
	return abs, nil
}

// moveFile renames from to to, copying across devices when rename fails.
// A missing source is not an error: there is nothing to move yet.
func moveFile(from, to string) error {
	if _, err := os.Stat(from); errors.Is(err, os.ErrNotExist) {
		return os.MkdirAll(filepath.Dir(to), 0755)
	}
	if err := os.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.Rename(from, to); err == nil {
		return nil
	}

	src, err := os.Open(from)
	if err != nil {
		return fmt.Errorf("move data file: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("move data file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("move data file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("move data file: %w", err)
	}
	return os.Remove(from)
}

// ExpandTilde replaces a leading ~ with the user's home directory.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
