package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/quizprog/quizprog/internal/quiz"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-course and per-file answer statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeStore, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		idx, ledger, today := sess.Index(), sess.Ledger(), sess.Today()
		out := cmd.OutOrStdout()

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "COURSE\tTOTAL\tNEVER\tWRONG\tSKIPPED\tCORRECT\tDUE")
		for _, cs := range quiz.CourseSummaries(idx, ledger, today) {
			s := cs.Stats
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
				cs.CourseTitle, s.Total, s.Never, s.Wrong, s.Skipped, s.Correct, s.Due)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		showFiles, _ := cmd.Flags().GetBool("files")
		if !showFiles {
			return nil
		}

		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tSECTION\tTOTAL\tNEVER\tWRONG\tSKIPPED\tCORRECT\tDUE")
		for _, fs := range quiz.FileSummaries(idx, ledger, today) {
			s := fs.Stats
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
				fs.Info.FileName, fs.Info.SectionName, s.Total, s.Never, s.Wrong, s.Skipped, s.Correct, s.Due)
		}
		return w.Flush()
	},
}

func init() {
	statsCmd.Flags().Bool("files", false, "Also list per-file statistics")
}
