package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/internal/github"
	"github.com/huangsam/repograde/internal/iocache"
	"github.com/huangsam/repograde/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// cacheManager is the global cache manager instance.
var cacheManager contract.CacheManager

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "repograde",
	Short:              "Assess the quality of a GitHub repository.",
	Long:               `Repograde scores a GitHub repository on documentation, tests, activity and structure, then tells you what to fix first.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file, .env and ENV variables if set.
func initConfig() {
	// A missing .env is the common case
	_ = godotenv.Load()

	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".repograde") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("REPOGRADE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// The conventional GITHUB_TOKEN works too
	if err := viper.BindEnv("github-token", "REPOGRADE_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		contract.LogWarn("Cannot bind GitHub token variables", err)
	}

	// Set defaults in Viper
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("commit-limit", contract.DefaultCommitLimit)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("cache-ttl", "24h")
	viper.SetDefault("api-base-url", contract.DefaultAPIBaseURL)
	viper.SetDefault("addr", contract.DefaultAddr)
	viper.SetDefault("emoji", "yes")
	viper.SetDefault("color", "yes")
}

// loadAndValidate merges all config sources and validates them into cfg.
func loadAndValidate(args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.RepoURLStr = ""
	if len(args) == 1 {
		input.RepoURLStr = args[0]
	}

	// 4. Run all validation and complex parsing.
	return contract.ProcessAndValidate(cfg, input)
}

// sharedSetup unmarshals config, runs validation and opens the cache.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	if err := loadAndValidate(args); err != nil {
		return err
	}

	// Initialize the cache layer with validated config
	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	cacheManager = iocache.Manager

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// newFetcher builds the GitHub client from the validated config.
func newFetcher(logger *slog.Logger) contract.RepoFetcher {
	return github.NewClient(cfg.APIBaseURL, cfg.GitHubToken, github.WithLogger(logger))
}

// cliLogger only surfaces warnings so stdout stays reserved for reports.
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
