package entry

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fluiddiary/internal/app/client"
	"fluiddiary/internal/domain/diary"
)

var listDay int

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List diary entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		var entries []diary.Entry
		var err error
		if listDay > 0 {
			days, err := app.Store().ListDays()
			if err != nil {
				return err
			}
			for _, d := range days {
				if d.DayNumber == listDay {
					entries, err = app.Store().ListDayEntries(d.ID)
					if err != nil {
						return err
					}
					break
				}
			}
		} else {
			entries, err = app.Store().ListEntries()
			if err != nil {
				return err
			}
		}

		if len(entries) == 0 {
			fmt.Println("No entries found")
			return nil
		}

		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Timestamp.Before(entries[j].Timestamp)
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Time\tType\tDetails\tNote\tID\t")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
				e.Timestamp.Format("15:04"), e.Type, details(e), e.Note, e.ID)
		}
		return w.Flush()
	},
}

func details(e diary.Entry) string {
	switch e.Type {
	case diary.EntryIntake:
		return fmt.Sprintf("%s %dml", e.BeverageType, e.IntakeMl)
	case diary.EntryVoid:
		s := fmt.Sprintf("%dml", e.VoidMl)
		if e.IsEstimated {
			s += " (est)"
		}
		if e.UrgencyScore > 0 {
			s += fmt.Sprintf(" urgency %d", e.UrgencyScore)
		}
		return s
	case diary.EntryIncontinence:
		if e.Activity != "" {
			return fmt.Sprintf("%s during %s", e.Severity, e.Activity)
		}
		return string(e.Severity)
	}
	return ""
}

func init() {
	ListCmd.Flags().IntVar(&listDay, "day", 0, "only entries of this day number")
}
