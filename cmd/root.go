package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/fitplan/internal/config"
	"github.com/abhisek/fitplan/internal/logging"
	"github.com/abhisek/fitplan/internal/store"
)

// cfg is loaded once per invocation by the root command's pre-run hook.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "fitplan",
	Short: "Build a fitness profile and follow your workout plan",
	Long: "FitPlan is a terminal client for the FitPlan backend: pick your goals, " +
		"equipment, workout type and level, then browse the weekly plan generated for you.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a config file (default: ./fitplan.yaml or $XDG_CONFIG_HOME/fitplan/fitplan.yaml)")
	flags.String("db", "", "Path to SQLite database file (overrides FITPLAN_DB env var)")
	flags.String("api", "", "Backend base URL, e.g. http://localhost:5002/api")
	flags.Bool("log-stdout", false, "Also write logs to stdout")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(devserverCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, applies flag
// overrides and configures logging.
func loadConfig(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(file)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if v, _ := cmd.Flags().GetString("api"); v != "" {
		loaded.API.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		loaded.Store.Path = v
	}
	if v, _ := cmd.Flags().GetBool("log-stdout"); v {
		loaded.Log.Stdout = true
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		loaded.Log.Level = v
	}
	cfg = loaded

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = logging.DefaultLogPath()
	}
	return logging.Setup(logging.SetupParams{
		LogFileName:   logFile,
		LogToStdout:   cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
}

// resolveDBPath returns the database path using --db or store.path from the
// config, then FITPLAN_DB, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}
