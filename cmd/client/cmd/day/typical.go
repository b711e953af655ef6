package day

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fluiddiary/internal/app/client"
)

var notTypical bool

var TypicalCmd = &cobra.Command{
	Use:   "typical <day-number>",
	Short: "Mark a day as typical or unusual",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid day number %q", args[0])
		}

		days, err := app.Store().ListDays()
		if err != nil {
			return err
		}
		for _, d := range days {
			if d.DayNumber == number {
				if err := app.Store().SetDayTypical(d.ID, !notTypical); err != nil {
					return err
				}
				if notTypical {
					color.Green("Day %d marked as unusual", number)
				} else {
					color.Green("Day %d marked as typical", number)
				}
				return nil
			}
		}
		return fmt.Errorf("no day with number %d", number)
	},
}

func init() {
	TypicalCmd.Flags().BoolVar(&notTypical, "not", false, "mark the day as not typical")
}
