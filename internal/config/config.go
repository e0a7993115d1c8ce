package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// GenerationConfig holds settings for the text and speech generation service.
type GenerationConfig struct {
	BaseURL    string `toml:"base_url"`
	TextModel  string `toml:"text_model"`
	TTSModel   string `toml:"tts_model"`
	Voice      string `toml:"voice"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// AudioConfig holds the fixed playback format. The speech service returns
// 16-bit PCM at this rate and channel count.
type AudioConfig struct {
	SampleRate int `toml:"sample_rate"`
	Channels   int `toml:"channels"`
}

// StorageConfig holds filesystem locations.
type StorageConfig struct {
	DataDir   string `toml:"data_dir"`
	ExportDir string `toml:"export_dir"`
}

// ShareConfig holds sharing-related settings.
type ShareConfig struct {
	PixKey string `toml:"pix_key"`
}

// Config is the top-level configuration.
type Config struct {
	Theme      string           `toml:"theme"`
	Generation GenerationConfig `toml:"generation"`
	Audio      AudioConfig      `toml:"audio"`
	Storage    StorageConfig    `toml:"storage"`
	Share      ShareConfig      `toml:"share"`
}

// Default returns a Config populated with all default values.
func Default() *Config {
	return &Config{
		Theme: "celestial",
		Generation: GenerationConfig{
			BaseURL:    "https://generativelanguage.googleapis.com",
			TextModel:  "gemini-2.5-flash",
			TTSModel:   "gemini-2.5-flash-preview-tts",
			Voice:      "Zephyr",
			TimeoutSec: 60,
		},
		Audio: AudioConfig{
			SampleRate: 24000,
			Channels:   1,
		},
		Storage: StorageConfig{
			DataDir:   "",
			ExportDir: "",
		},
		Share: ShareConfig{
			PixKey: "",
		},
	}
}

// DefaultPath returns the default config file path
// (~/.config/revelacao/config.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "revelacao", "config.toml")
}

// DefaultDataDir returns the default data directory
// (~/.local/share/revelacao).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "revelacao")
}

// DataDir returns the configured data directory, or the default when unset.
func (c *Config) DataDir() string {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir
	}
	return DefaultDataDir()
}

// ExportDir returns the configured export directory, or the data directory
// when unset.
func (c *Config) ExportDir() string {
	if c.Storage.ExportDir != "" {
		return c.Storage.ExportDir
	}
	return c.DataDir()
}

// Save writes the config as TOML to the given path, creating parent
// directories if needed. The write is atomic: data is written to a
// temporary file and renamed into place so a crash mid-write cannot
// corrupt the existing config.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".revelacao-config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// Load reads the TOML config from path. If the file does not exist,
// it returns the default config without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	_, err = toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// APIKeyEnv is the environment variable holding the generation API key.
const APIKeyEnv = "GEMINI_API_KEY"

// LoadAPIKey returns the generation API key. A .env file in the working
// directory is loaded first, then the environment variable wins.
func LoadAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv(APIKeyEnv)
}
