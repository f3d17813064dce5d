package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ontovault/ontovault/composer"
	"github.com/ontovault/ontovault/concepts"
	"github.com/ontovault/ontovault/config"
	"github.com/ontovault/ontovault/db"
	"github.com/ontovault/ontovault/errors"
	"github.com/ontovault/ontovault/logger"
	"github.com/ontovault/ontovault/ontology"
)

// ConfigFile is set by the root --config flag.
var ConfigFile string

// LoadConfig resolves configuration from --config or the search path.
func LoadConfig() (*config.Config, error) {
	if ConfigFile != "" {
		return config.LoadFromFile(ConfigFile)
	}
	return config.Load()
}

// openDatabase opens and migrates the configured database.
func openDatabase() (*sql.DB, *config.Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration")
	}

	database, err := db.Open(cfg.Database.Path, logger.Logger)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open database at %s", cfg.Database.Path)
	}
	if err := db.Migrate(database, logger.Logger); err != nil {
		database.Close()
		return nil, nil, errors.Wrapf(err, "failed to run migrations on %s", cfg.Database.Path)
	}
	return database, cfg, nil
}

func newStore(database *sql.DB, cfg *config.Config) *ontology.Store {
	return ontology.NewStore(database, logger.Logger, ontology.Options{
		DefaultDomain:     cfg.Storage.DefaultDomain,
		NamespaceTemplate: cfg.Storage.DefaultNamespace,
	})
}

func newComposer(store *ontology.Store, cfg *config.Config) *composer.Composer {
	return composer.New(store, logger.Logger, composer.Options{
		MaxHierarchyDepth: cfg.Composer.MaxHierarchyDepth,
	})
}

func newManager(database *sql.DB) *concepts.Manager {
	return concepts.NewManager(database, logger.Logger)
}

// printJSON renders command results for both humans and scripts.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode result")
	}
	fmt.Println(string(data))
	return nil
}
