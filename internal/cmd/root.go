// Package cmd implements the boardlens CLI.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/boardlens/boardlens/internal/config"
	"github.com/boardlens/boardlens/internal/observability"
)

var (
	cfgFile string
	verbose bool

	// Version info set by the main package.
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by the main package to set version information.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "boardlens",
	Short: "Resolve Chinese board game names against the catalog",
	Long: `boardlens resolves a Chinese-language board game name to its catalog
record: English name, player counts, ratings, ranks and more.

Use the subcommands to perform specific operations.`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $XDG_CONFIG_HOME/boardlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output (sets log level to debug)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads the config file and environment variables.
func initConfig() {
	observability.InitCLILogger("boardlens", verbose)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.DefaultConfigDir())
		viper.AddConfigPath("./config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BOARDLENS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			observability.CLILogger.Debug("Using config file", zap.String("path", viper.ConfigFileUsed()))
		}
	} else if verbose {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			observability.CLILogger.Debug("No config file found, using defaults and environment variables")
		} else {
			observability.CLILogger.Warn("Error reading config file", zap.Error(err))
		}
	}

	setDefaults()
}

// setDefaults sets default configuration values.
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.shutdown_timeout", "10s")

	// Logging defaults
	viper.SetDefault("logging.level", "info")

	// Store defaults
	viper.SetDefault("store.driver", "libsql")
	viper.SetDefault("store.path", config.DefaultStorePath())
	viper.SetDefault("store.url", "")
	viper.SetDefault("store.auth_token", "")

	// Catalog defaults
	viper.SetDefault("catalog.api_token", "")
	viper.SetDefault("catalog.search_timeout", "15s")
	viper.SetDefault("catalog.detail_timeout", "20s")

	// Web search defaults
	viper.SetDefault("search.region", "zh-cn")
	viper.SetDefault("search.max_results", 20)

	// Dictionary defaults
	viper.SetDefault("alias.path", config.DefaultAliasPath())
	viper.SetDefault("terms.path", config.DefaultTermsPath())
	viper.SetDefault("prompts.path", "")

	// Model defaults
	viper.SetDefault("ailink.default_timeout", "60s")

	// Translation defaults
	viper.SetDefault("translate.enabled", false)
	viper.SetDefault("translate.model_key", "utils")
}

// loadConfig decodes the viper state into the typed config.
func loadConfig() (*config.Config, error) {
	return config.FromViper(viper.GetViper())
}
