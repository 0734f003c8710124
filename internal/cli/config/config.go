package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// RenameScope is where a workspace-wide rename is allowed to touch.
type RenameScope string

const (
	RenameScopeOpen      RenameScope = "open"
	RenameScopeWorkspace RenameScope = "workspace"
)

// FormatMode controls how the source formatter treats untouched text.
type FormatMode string

const (
	FormatModeLossless  FormatMode = "lossless"
	FormatModeNormalize FormatMode = "normalize"
)

// WatcherMode selects native fsnotify watching or mtime polling. Auto is
// accepted; the watch command treats it the same as native.
type WatcherMode string

const (
	WatcherModeAuto    WatcherMode = "auto"
	WatcherModeNative  WatcherMode = "native"
	WatcherModePolling WatcherMode = "polling"
)

// Config is the recognized environment configuration: every field here
// has a documented default and may also be set via an upper-cased,
// underscore-separated environment variable (e.g. CNL_LOCALE).
type Config struct {
	EnforcePiiChecks            bool        `mapstructure:"enforce_pii_checks"`
	DiagnosticsWorkspaceEnabled bool        `mapstructure:"diagnostics_workspace_enabled"`
	ReferencesChunk             int         `mapstructure:"references_chunk"`
	RenameChunk                 int         `mapstructure:"rename_chunk"`
	RenameScope                 RenameScope `mapstructure:"rename_scope"`
	FormatMode                  FormatMode  `mapstructure:"format_mode"`
	FormatReflow                bool        `mapstructure:"format_reflow"`
	Locale                      string      `mapstructure:"locale"`
	IndexPersist                bool        `mapstructure:"index_persist"`
	IndexPath                   string      `mapstructure:"index_path"`
	ModuleSearchRoots           []string    `mapstructure:"module_search_roots"`
	CapabilityManifestPath      string      `mapstructure:"capability_manifest_path"`
	WatcherMode                 WatcherMode `mapstructure:"watcher_mode"`
	HealthPort                  int         `mapstructure:"health_port"`
}

// configFileName is the workspace configuration file this command line
// reads and `init` writes.
const configFileName = "cnl"

// Load reads cnl.yml (or cnl.yaml) from the current directory, falling
// back to defaults for anything unset, with CNL_-prefixed environment
// variables taking precedence over the file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("enforce_pii_checks", false)
	v.SetDefault("diagnostics_workspace_enabled", true)
	v.SetDefault("references_chunk", 200)
	v.SetDefault("rename_chunk", 200)
	v.SetDefault("rename_scope", string(RenameScopeWorkspace))
	v.SetDefault("format_mode", string(FormatModeLossless))
	v.SetDefault("format_reflow", true)
	v.SetDefault("locale", "en-US")
	v.SetDefault("index_persist", true)
	v.SetDefault("index_path", ".cache/index.json")
	v.SetDefault("module_search_roots", []string{"."})
	v.SetDefault("capability_manifest_path", "capabilities.json")
	v.SetDefault("watcher_mode", string(WatcherModeAuto))
	v.SetDefault("health_port", 7337)

	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("cnl")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.RenameScope {
	case RenameScopeOpen, RenameScopeWorkspace:
	default:
		return fmt.Errorf("rename_scope must be %q or %q, got %q", RenameScopeOpen, RenameScopeWorkspace, cfg.RenameScope)
	}
	switch cfg.FormatMode {
	case FormatModeLossless, FormatModeNormalize:
	default:
		return fmt.Errorf("format_mode must be %q or %q, got %q", FormatModeLossless, FormatModeNormalize, cfg.FormatMode)
	}
	switch cfg.WatcherMode {
	case WatcherModeAuto, WatcherModeNative, WatcherModePolling:
	default:
		return fmt.Errorf("watcher_mode must be %q, %q or %q, got %q", WatcherModeAuto, WatcherModeNative, WatcherModePolling, cfg.WatcherMode)
	}
	if cfg.ReferencesChunk <= 0 {
		return fmt.Errorf("references_chunk must be positive, got %d", cfg.ReferencesChunk)
	}
	if cfg.RenameChunk <= 0 {
		return fmt.Errorf("rename_chunk must be positive, got %d", cfg.RenameChunk)
	}
	return nil
}

// InProject reports whether the current directory looks like a cnl
// workspace: a cnl.yml/cnl.yaml file present.
func InProject() bool {
	if _, err := os.Stat("cnl.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("cnl.yaml"); err == nil {
		return true
	}
	return false
}

// GetProjectRoot walks up from the current directory looking for
// cnl.yml/cnl.yaml.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "cnl.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "cnl.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a cnl workspace (no cnl.yml found)")
		}
		dir = parent
	}
}
