package cmd

import (
	"github.com/quizprog/quizprog/internal/content"
	"github.com/quizprog/quizprog/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizprog",
	Short: "Spaced-repetition quiz trainer for the terminal",
	Long:  "QuizProg loads multiple-choice question decks from JSON files and schedules reviews with spaced repetition.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZPROG_DB env var)")
	rootCmd.PersistentFlags().String("data", "", "Path to the quiz data directory (overrides QUIZPROG_DATA env var)")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZPROG_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveDataDir returns the quiz data directory using --data flag, then
// QUIZPROG_DATA env var, then ./quiz_data.
func resolveDataDir(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p
	}
	return content.DefaultDataDir()
}
