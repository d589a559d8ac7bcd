package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammiz/internal/app"
	"github.com/abhisek/grammiz/internal/config"
	"github.com/abhisek/grammiz/internal/logger"
	"github.com/abhisek/grammiz/internal/store"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "grammiz",
	Short: "English grammar practice in the terminal",
	Long: "Grammiz drills English grammar with fill-in-the-blank exercises. It remembers\n" +
		"your mistakes and brings the words you got wrong back for review.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		if user, _ := cmd.Flags().GetString("user"); user != "" {
			c.UserID = user
		}
		l, err := logger.New(c.Log.Mode, c.Log.Level)
		if err != nil {
			return err
		}
		cfg, log = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd, "", 0)
	},
}

// Execute runs the root command. main exits non-zero on the returned error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database file or postgres:// URL (overrides GRAMMIZ_DB)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("user", "", "Learner ID (overrides GRAMMIZ_USER_ID)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the db config key, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.OpenContext(commandContext(cmd), dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func openApp(cmd *cobra.Command) (*app.App, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	return app.New(commandContext(cmd), cfg, app.Options{DBPath: dbPath}, log)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
