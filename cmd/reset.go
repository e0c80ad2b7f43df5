package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [course]",
	Short: "Clear the wrong-answer history for a course",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, closeStore, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		idx := sess.Index()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			fmt.Fprintln(out, "Available courses:")
			for _, c := range idx.Courses() {
				fmt.Fprintf(out, "  %s (%d wrong)\n", c.Key, len(sess.WrongQuestionIDs(c.ID)))
			}
			return nil
		}

		want := strings.ToLower(args[0])
		for _, c := range idx.Courses() {
			if strings.ToLower(c.Key) == want || strings.ToLower(c.Title) == want {
				sess.ResetWrongHistory(c.ID)
				fmt.Fprintf(out, "Cleared wrong-answer history for %s\n", c.Title)
				return nil
			}
		}
		return fmt.Errorf("unknown course %q", args[0])
	},
}
