package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/internal/iocache"
	"github.com/huangsam/repograde/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheConfig loads the backend settings shared by every cache subcommand.
func cacheConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	backend, connStr, err := cacheConfig()
	if err != nil {
		return err
	}

	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheMigrateSetup loads the backend without opening the store, so migrations
// can run on a fresh database.
func cacheMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := cacheConfig()
	if err != nil {
		return err
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization instead of the full
// sharedSetup used by analysis commands. No repository URL is needed.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the GitHub data cache (saves API quota)",
	Long: `Manage the cache of fetched GitHub repository data.

Repograde caches the raw facts it fetches (metadata, languages, commits, tree, README)
so repeated analyses do not hit the GitHub API. Scores are always recomputed.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Run database schema migrations

Examples:
  # Check cache status
  repograde cache status

  # Clear cache to force fresh fetches
  repograde cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached repository data",
	Long: `Delete all cached repository data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache and migration tables

Examples:
  # Clear SQLite cache (default)
  repograde cache clear

  # Clear MySQL cache (set connection string via env variable)
  REPOGRADE_CACHE_BACKEND=mysql REPOGRADE_CACHE_DB_CONNECT="..." repograde cache clear`,
	PreRunE: cacheMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := cfg.CacheDBConnect
		if dbFilePath == "" {
			dbFilePath = iocache.GetDBFilePath()
		}
		if err := iocache.ClearCache(cfg.CacheBackend, dbFilePath, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the repository data cache.

Displays:
- Backend type and connection status
- Total number of cached repositories
- Last and oldest cache entry timestamps
- Cache database size

Examples:
  # Check cache status
  repograde cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetRawStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", fmt.Errorf("no cache store configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}

// cacheMigrateCmd runs schema migrations for the cache.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations for the cache",
	Long: `Apply or roll back schema migrations for the repository data cache.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to the latest version
  repograde cache migrate

  # Roll back every migration
  repograde cache migrate --target-version 0`,
	PreRunE: cacheMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateCache(cfg.CacheBackend, cfg.CacheDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate cache", err)
		}
	},
}
