package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jatin/qlock/internal/analytics"
	"github.com/jatin/qlock/internal/ui/layout"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		r := analytics.Calculate(e.list.All(), time.Now())
		if r.TotalAttempts == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		fmt.Printf("Sessions:   %d\n", r.TotalSessions)
		fmt.Printf("Attempts:   %d\n", r.TotalAttempts)
		fmt.Printf("Questions:  %d (%d correct, %d incorrect, %d skipped, %d timed out)\n",
			r.TotalQuestions, r.Correct, r.Incorrect, r.Skipped, r.Timeout)
		fmt.Printf("Accuracy:   %d%%  (last 7 days: %d%% over %d attempt(s))\n",
			r.Accuracy, r.RecentAccuracy, r.RecentAttempts)
		fmt.Printf("Time spent: %s  (avg %s per question)\n",
			layout.FormatClock(r.TotalTimeSpent), layout.FormatClock(r.AvgTime))
		fmt.Printf("Streak:     %d day(s), best %d\n", r.CurrentStreak, r.MaxStreak)

		if len(r.Topics) > 0 {
			fmt.Println("\nTopics:")
			for _, t := range r.Topics {
				marker := ""
				if t.Weak {
					marker = "  (needs work)"
				}
				trend := ""
				if t.Trend != 0 {
					trend = fmt.Sprintf("  %+dpp", t.Trend)
				}
				fmt.Printf("  %-24s %3d%%  %d question(s)%s%s\n",
					t.Topic, t.Accuracy, t.TotalQuestions, trend, marker)
				for _, s := range t.Subtopics {
					fmt.Printf("    %-22s %3d%%  %d question(s)\n",
						s.Subtopic, s.Accuracy, s.TotalQuestions)
				}
			}
		}

		if len(r.WeakTopics) > 0 {
			fmt.Printf("\nNeeds work: %s\n", strings.Join(r.WeakTopics, ", "))
		}
		return nil
	},
}
