package day

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fluiddiary/internal/app/client"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List diary days",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		days, err := app.Store().ListDays()
		if err != nil {
			return err
		}
		if len(days) == 0 {
			fmt.Println("No days recorded yet. Add an entry with 'fluiddiary entry add'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Day\tDate\tTypical\tEntries\t")
		for _, d := range days {
			entries, err := app.Store().ListDayEntries(d.ID)
			if err != nil {
				return err
			}
			typical := "yes"
			if !d.IsTypicalDay {
				typical = "no"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t\n", d.DayNumber, d.Date, typical, len(entries))
		}
		return w.Flush()
	},
}
