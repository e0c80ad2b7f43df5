package cmd

import (
	"fmt"

	"github.com/quizprog/quizprog/internal/app"
	"github.com/quizprog/quizprog/internal/content"
	"github.com/quizprog/quizprog/internal/session"
	"github.com/quizprog/quizprog/internal/store"
	"github.com/spf13/cobra"
)

// runApp loads the question decks, opens the store, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	idx, err := content.Load(resolveDataDir(cmd))
	if err != nil {
		return fmt.Errorf("load quiz data: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{
		Session: session.New(idx, st),
		Version: version,
	})
}

// openSession is the shared setup for non-TUI subcommands.
func openSession(cmd *cobra.Command) (*session.Session, func(), error) {
	idx, err := content.Load(resolveDataDir(cmd))
	if err != nil {
		return nil, nil, fmt.Errorf("load quiz data: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	return session.New(idx, st), func() { _ = st.Close() }, nil
}
