package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts file checks and .env loading for tests.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// DefaultConfigFiles are searched in order when no config file is given.
var DefaultConfigFiles = []string{
	"./httpfacade.yml",
	"./httpfacade.yaml",
	"./config/httpfacade.yml",
	"./config.yml",
}

// DefaultEnvFiles are searched in order when no .env file is given.
var DefaultEnvFiles = []string{
	"./.env",
	"./config/.env",
}

// LoaderConfig holds dependencies and optional overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	EnvPrefix  string // Only variables with this prefix are bound
	Key        string // Sub-tree of the config file to unmarshal (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix binds only environment variables named PREFIX_*.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = strings.ToUpper(strings.TrimSuffix(prefix, "_")) }
}

// WithKey unmarshals the named sub-tree instead of the whole file.
func WithKey(key string) LoaderOption {
	return func(lc *LoaderConfig) { lc.Key = key }
}

// Load fills cfg from the resolved sources. A missing config or .env file
// is not an error; an unreadable one is.
func Load(cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: &RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	v := viper.New()

	if path := resolve(lc.FileSystem, lc.ConfigFile, DefaultConfigFiles); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if path := resolve(lc.FileSystem, lc.EnvFile, DefaultEnvFiles); path != "" {
		if err := lc.FileSystem.LoadEnv(path); err != nil {
			return fmt.Errorf("config: load env file %s: %w", path, err)
		}
	}

	bindEnvVars(v, lc.EnvPrefix, lc.Key)

	if lc.Key != "" {
		// UnmarshalKey would return only the overridden keys of the
		// sub-tree once an environment variable is set under it.
		sub := viper.New()
		if m, ok := v.AllSettings()[strings.ToLower(lc.Key)].(map[string]interface{}); ok {
			if err := sub.MergeConfigMap(m); err != nil {
				return fmt.Errorf("config: merge %s: %w", lc.Key, err)
			}
		}
		v = sub
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}
	return nil
}

// resolve returns explicit when it exists, otherwise the first existing
// candidate. An explicit path that does not exist resolves to "".
func resolve(fs FileSystem, explicit string, candidates []string) string {
	if explicit != "" {
		if fs.Exists(explicit) {
			return explicit
		}
		return ""
	}
	for _, path := range candidates {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// bindEnvVars sets every PREFIX_* variable under each nested key variant
// so that TLS_CA_FILE reaches tls.ca_file.
func bindEnvVars(v *viper.Viper, prefix, key string) {
	if prefix == "" {
		return
	}
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		rest, ok := strings.CutPrefix(name, prefix+"_")
		if !ok || rest == "" {
			continue
		}
		for _, variant := range generateEnvKeyVariants(rest) {
			if key != "" {
				variant = key + "." + variant
			}
			v.Set(variant, value)
		}
	}
}

// generateEnvKeyVariants creates the possible nested keys for an
// environment variable name.
//
//	TLS_CA_FILE -> [tls_ca_file, tls.ca.file, tls.ca_file]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return removeDuplicates(variants)
}

func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
