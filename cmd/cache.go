package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/paleoreel/internal/contract"
	"github.com/huangsam/paleoreel/internal/iocache"
	"github.com/huangsam/paleoreel/internal/outwriter"
	"github.com/huangsam/paleoreel/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := readConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ValidateCacheBackend(viper.GetString("cache-backend"), viper.GetString("cache-db-connect"))
	if err != nil {
		return err
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = viper.GetString("cache-db-connect")
	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Cache subcommands skip the full sharedSetup so they work without a data file.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the parsed table cache (improves performance)",
	Long: `Manage the cache of parsed time series tables.

Paleoreel caches parsed CSV tables keyed by file path, size and modification time
so repeated runs over the same data skip parsing. Entries older than a week or
written by another cache version are ignored.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Apply or roll back cache schema migrations

Examples:
  paleoreel cache status
  paleoreel cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached tables",
	Long: `Delete all cached tables from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  paleoreel cache clear

  # Clear MySQL cache (set connection string via env variable)
  PALEOREEL_CACHE_BACKEND=mysql PALEOREEL_CACHE_DB_CONNECT="..." paleoreel cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the backend, connection state, entry count, entry times and size
of the table cache. Use --output json for machine-readable status.

Examples:
  paleoreel cache status
  paleoreel cache status --output json`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to initialize cache", err)
		}
		store := cacheManager.GetTableStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", fmt.Errorf("no cache store configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		if err := outwriter.PrintCacheStatus(os.Stdout, status, cfg); err != nil {
			contract.LogFatal("Failed to print cache status", err)
		}
	},
}

// cacheMigrateCmd runs the embedded cache schema migrations.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the cache schema to a target version",
	Long: `Apply the embedded schema migrations of the table cache.

--target-version -1 migrates to the latest version, 0 rolls back every migration
and any other value migrates to that version.

Examples:
  paleoreel cache migrate
  paleoreel cache migrate --target-version 1
  PALEOREEL_CACHE_BACKEND=postgresql PALEOREEL_CACHE_DB_CONNECT="host=... dbname=..." paleoreel cache migrate`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigrateCache(os.Stdout, cfg.CacheBackend, cfg.CacheDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate cache", err)
		}
	},
}
