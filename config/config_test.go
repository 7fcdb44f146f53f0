// ABOUTME: Tests for configuration load/save functionality
// ABOUTME: Validates TOML parsing, tag model files, default fallback and validation rules

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"autoplaylist/tagname"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Extension != ".m3u8" {
		t.Errorf("Expected extension .m3u8, got %q", cfg.Extension)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "autoplaylist.toml")

	cfg := DefaultConfig()
	cfg.Workers = 3
	cfg.Relative = false

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Workers != 3 || loaded.Relative {
		t.Errorf("Scalar mismatch: %+v", loaded)
	}

	if !reflect.DeepEqual(loaded.Tags, cfg.Tags) {
		t.Errorf("Tags mismatch: got %v, want %v", loaded.Tags, cfg.Tags)
	}

	if !reflect.DeepEqual(loaded.Generate, cfg.Generate) {
		t.Errorf("Generate mismatch: got %v, want %v", loaded.Generate, cfg.Generate)
	}

	// Relative directories resolve against the config file location
	if want := filepath.Join(filepath.Dir(path), "playlists"); loaded.PlaylistsDir != want {
		t.Errorf("PlaylistsDir = %q, want %q", loaded.PlaylistsDir, want)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	// Loading non-existent file should return defaults without error
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Errorf("Expected no error for non-existent file, got: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigReplacesDefaultTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoplaylist.toml")
	content := `playlists_dir = "/music/tags"
output_dir = "/music/generated"
generate = [["mood"]]

[tags]
mood = ["Dark", "Happy"]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if want := (tagname.Model{"mood": {"Dark", "Happy"}}); !reflect.DeepEqual(cfg.Tags, want) {
		t.Errorf("Tags = %v, want %v", cfg.Tags, want)
	}

	if cfg.PlaylistsDir != "/music/tags" || cfg.Extension != ".m3u8" || !cfg.ReadFileTags {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("generate = [[\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestLoadTagModel(t *testing.T) {
	want := tagname.Model{"genre": {"Acid", "Deep House"}, "rating": {"4", "5"}}

	tests := []struct {
		file    string
		content string
	}{
		{"tags.toml", "genre = [\"Acid\", \"Deep House\"]\nrating = [\"4\", \"5\"]\n"},
		{"tags.yaml", "genre:\n  - Acid\n  - Deep House\nrating: [\"4\", \"5\"]\n"},
		{"tags.json", `{"genre": ["Acid", "Deep House"], "rating": ["4", "5"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			got, err := LoadTagModel(path)
			if err != nil {
				t.Fatalf("LoadTagModel failed: %v", err)
			}

			if !reflect.DeepEqual(got, want) {
				t.Errorf("Got %v, want %v", got, want)
			}
		})
	}
}

func TestLoadTagModelUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.ini")
	if err := os.WriteFile(path, []byte("genre=Acid"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadTagModel(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadConfigWithTagModelFile(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "tags.yml"), []byte("mood: [Dark]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(dir, "autoplaylist.toml")
	if err := os.WriteFile(cfgPath, []byte("tag_model_file = \"tags.yml\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if want := (tagname.Model{"mood": {"Dark"}}); !reflect.DeepEqual(cfg.Tags, want) {
		t.Errorf("Tags = %v, want %v", cfg.Tags, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"missing output", func(c *Config) { c.OutputDir = "" }},
		{"same directories", func(c *Config) { c.OutputDir = c.PlaylistsDir + "/." }},
		{"bad extension", func(c *Config) { c.Extension = "m3u" }},
		{"no tags", func(c *Config) { c.Tags = nil }},
		{"short key", func(c *Config) { c.Tags = tagname.Model{"g": {"Acid"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestGetConfigPathFromEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.toml")

	if got := GetConfigPath(); got != "/tmp/custom.toml" {
		t.Errorf("GetConfigPath() = %q", got)
	}
}
