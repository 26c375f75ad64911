package healthyplates

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/app"
	"github.com/rajeshkanna-s/healthyplates/internal/config"
)

var (
	dbPath     string
	configPath string
	dataDir    string
	verbose    bool

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "healthyplates",
	Short: "healthyplates plans groceries, meals and wellness habits from your terminal",
	Long: "healthyplates is a local-first wellness CLI: grocery lists for Indian home cooking, " +
		"calorie targets and meal plans, plus sleep, gratitude and mindfulness logs.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory with catalog YAML overrides")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

// loadRuntime resolves config and installs the process logger before any
// command runs.
func loadRuntime(cmd *cobra.Command, args []string) error {
	path, required := configPath, configPath != ""
	if !required {
		p, err := app.DefaultConfigPath()
		if err == nil {
			path = p
		}
	}
	loaded, err := config.Load(path, required)
	if err != nil {
		return err
	}
	cfg = loaded

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	logger, err := config.NewLogger(cmd.ErrOrStderr(), level, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	slog.Debug("config loaded", "path", path, "db_path", cfg.DBPath, "data_dir", cfg.DataDir)
	return nil
}
