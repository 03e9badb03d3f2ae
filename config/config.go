package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Storage    StorageConfig
	AssetCache AssetCacheConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type StorageConfig struct {
	DataDir      string
	DatabaseFile string
	SettingsFile string
}

// AssetCacheConfig drives the offline shell worker. An empty Origin
// disables shell serving entirely.
type AssetCacheConfig struct {
	Origin   string
	Version  string
	Dir      string
	Manifest []string
}

// DatabasePath is the SQLite file location inside the data directory.
func (c StorageConfig) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// SettingsPath is the key-based settings file location.
func (c StorageConfig) SettingsPath() string {
	return filepath.Join(c.DataDir, c.SettingsFile)
}

// defaultManifest mirrors the application shell: every path required
// for the UI to boot with no network at all.
var defaultManifest = []string{
	"/",
	"/index.html",
	"/styles.css",
	"/app.js",
	"/manifest.json",
	"/assets/profile.jpg",
	"/icons/icon-192.png",
	"/icons/icon-512.png",
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8422")
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("DB_FILE", "clinic.db")
	viper.SetDefault("SETTINGS_FILE", "settings.json")
	viper.SetDefault("ASSET_ORIGIN", "")
	viper.SetDefault("ASSET_CACHE_VERSION", "v1")
	viper.SetDefault("ASSET_CACHE_DIR", "cache")

	// A missing .env is fine for a packaged install; defaults cover it.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	manifest := defaultManifest
	if raw := viper.GetString("ASSET_MANIFEST"); raw != "" {
		manifest = nil
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				manifest = append(manifest, p)
			}
		}
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Storage: StorageConfig{
			DataDir:      viper.GetString("DATA_DIR"),
			DatabaseFile: viper.GetString("DB_FILE"),
			SettingsFile: viper.GetString("SETTINGS_FILE"),
		},
		AssetCache: AssetCacheConfig{
			Origin:   viper.GetString("ASSET_ORIGIN"),
			Version:  viper.GetString("ASSET_CACHE_VERSION"),
			Dir:      filepath.Join(viper.GetString("DATA_DIR"), viper.GetString("ASSET_CACHE_DIR")),
			Manifest: manifest,
		},
	}

	return config, nil
}
