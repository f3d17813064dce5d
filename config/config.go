// Package config loads ontovault configuration from TOML files and the
// environment using Viper.
package config

// Config is the root ontovault configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Composer ComposerConfig `mapstructure:"composer"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig describes the SQLite backend.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// StorageConfig holds version-store defaults.
type StorageConfig struct {
	// DefaultDomain is used when an ontology id has no "domain:" prefix.
	DefaultDomain string `mapstructure:"default_domain"`
	// DefaultNamespace is the URI template for auto-created domains;
	// %s is replaced with the domain name.
	DefaultNamespace string `mapstructure:"default_namespace"`
}

// ComposerConfig holds composition limits.
type ComposerConfig struct {
	// MaxHierarchyDepth bounds ancestor/descendant walks. A walk that
	// exceeds this depth is treated as a data-integrity error.
	MaxHierarchyDepth int `mapstructure:"max_hierarchy_depth"`
}

// LogConfig controls logger initialization.
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}
