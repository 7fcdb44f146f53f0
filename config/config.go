// ABOUTME: Configuration management for playlist directories, tag model and generation groups
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"autoplaylist/tagname"
)

// EnvConfigPath names the environment variable that overrides the config location
const EnvConfigPath = "AUTOPLAYLIST_CONFIG"

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything a sync run needs
type Config struct {
	PlaylistsDir string `toml:"playlists_dir"`  // Tagging playlists, read only
	OutputDir    string `toml:"output_dir"`     // Generated playlists, replaced on every sync
	Extension    string `toml:"extension"`      // Extension for generated playlists
	Relative     bool   `toml:"relative_paths"` // Write track paths relative to output_dir
	ReadFileTags bool   `toml:"read_file_tags"` // Seed tags from embedded audio metadata
	Workers      int    `toml:"workers"`        // Metadata readers, 0 = one per CPU

	// TagModelFile, when set, replaces Tags with the model read from this file
	TagModelFile string `toml:"tag_model_file"`

	Generate [][]string    `toml:"generate"`
	Tags     tagname.Model `toml:"tags"`
}

// GetConfigPath returns the default config file path
// First tries $AUTOPLAYLIST_CONFIG, then the current directory,
// then falls back to ~/.config/autoplaylist/config.toml
func GetConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}

	if _, err := os.Stat("./autoplaylist.toml"); err == nil {
		return "./autoplaylist.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./autoplaylist.toml"
	}

	return filepath.Join(home, ".config", "autoplaylist", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist, returns default config
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Unset fields keep their defaults
	config := DefaultConfig()
	config.Tags = nil
	config.Generate = nil

	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	// Relative paths in a config file are relative to the file itself
	config.PlaylistsDir = resolveFrom(path, expandHome(config.PlaylistsDir))
	config.OutputDir = resolveFrom(path, expandHome(config.OutputDir))

	if config.TagModelFile != "" {
		config.TagModelFile = resolveFrom(path, expandHome(config.TagModelFile))

		model, err := LoadTagModel(config.TagModelFile)
		if err != nil {
			return config, err
		}

		config.Tags = model
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns a small genre/rating setup to start from
func DefaultConfig() Config {
	return Config{
		PlaylistsDir: "playlists",
		OutputDir:    "generated",
		Extension:    ".m3u8",
		Relative:     true,
		ReadFileTags: true,
		Generate:     [][]string{{"genre"}, {"rating", "genre"}},
		Tags: tagname.Model{
			"genre":  {"Acid", "Deep House", "Techno"},
			"rating": {"1", "2", "3", "4", "5"},
		},
	}
}

// Validate checks the directories and the tag model
func (c Config) Validate() error {
	if c.PlaylistsDir == "" || c.OutputDir == "" {
		return fmt.Errorf("%w: playlists_dir and output_dir are required", ErrInvalidConfig)
	}

	same, err := sameDir(c.PlaylistsDir, c.OutputDir)
	if err != nil {
		return err
	}

	if same {
		return fmt.Errorf("%w: output_dir must differ from playlists_dir", ErrInvalidConfig)
	}

	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("%w: extension %q must start with a dot", ErrInvalidConfig, c.Extension)
	}

	if len(c.Tags) == 0 {
		return fmt.Errorf("%w: no tags defined", ErrInvalidConfig)
	}

	if err := c.Tags.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// LoadTagModel reads a tag model from a TOML, YAML or JSON file, chosen by extension
func LoadTagModel(path string) (tagname.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tag model: %w", err)
	}

	var model tagname.Model

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &model)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &model)
	case ".json":
		err = json.Unmarshal(data, &model)
	default:
		return nil, fmt.Errorf("%w: unsupported tag model format %q", ErrInvalidConfig, ext)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse tag model: %w", err)
	}

	return model, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// resolveFrom makes target relative to the directory of the config file
func resolveFrom(configPath, target string) string {
	if target == "" || filepath.IsAbs(target) {
		return target
	}

	return filepath.Join(filepath.Dir(configPath), target)
}

func sameDir(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", a, err)
	}

	absB, err := filepath.Abs(b)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", b, err)
	}

	return absA == absB, nil
}
