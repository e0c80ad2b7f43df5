package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/quizprog/quizprog/internal/quiz"
	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show how many questions are due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeStore, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		idx, ledger, today := sess.Index(), sess.Ledger(), sess.Today()

		total := 0
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "COURSE\tDUE\tTOTAL")
		for _, cs := range quiz.CourseSummaries(idx, ledger, today) {
			fmt.Fprintf(w, "%s\t%d\t%d\n", cs.CourseTitle, cs.Stats.Due, cs.Total)
			total += cs.Stats.Due
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%d question(s) due as of %s\n", total, today.Format("2006-01-02"))
		return nil
	},
}
