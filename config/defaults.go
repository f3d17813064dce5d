package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "ontovault.db")

	// Version-store defaults
	v.SetDefault("storage.default_domain", "general")
	v.SetDefault("storage.default_namespace", "http://ontovault.org/ontology/%s#")

	// Composer defaults
	v.SetDefault("composer.max_hierarchy_depth", 64)

	// Logging defaults
	v.SetDefault("log.json", false)
}
