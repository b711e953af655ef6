package entry

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fluiddiary/internal/app/client"
	"fluiddiary/internal/domain/diary"
)

var (
	addDay      int
	addType     string
	addTime     string
	addBeverage string
	addAmount   int
	addEstimate bool
	addDuration int
	addUrgency  int
	addSeverity string
	addActivity string
	addNote     string
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a diary entry",
	Long: `Add an intake, void or incontinence entry to a diary day.

Examples:
  fluiddiary entry add --day 1 --type intake --beverage coffee --amount 200
  fluiddiary entry add --day 1 --type void --amount 350 --urgency 3
  fluiddiary entry add --day 2 --type incontinence --severity damp --activity "coughing"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		day, err := app.Store().EnsureDay(addDay)
		if err != nil {
			return err
		}

		e := diary.NewEntry(day.ID, diary.EntryType(addType))
		if addTime != "" {
			parsed, err := time.Parse("15:04", addTime)
			if err != nil {
				return fmt.Errorf("invalid --time %q, expected HH:MM", addTime)
			}
			now := time.Now()
			e.Timestamp = time.Date(now.Year(), now.Month(), now.Day(),
				parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
		}
		e.Note = addNote

		switch e.Type {
		case diary.EntryIntake:
			e.BeverageType = addBeverage
			e.IntakeMl = addAmount
		case diary.EntryVoid:
			e.VoidMl = addAmount
			e.IsEstimated = addEstimate
			e.DurationSeconds = addDuration
			e.UrgencyScore = addUrgency
		case diary.EntryIncontinence:
			e.Severity = diary.Severity(addSeverity)
			e.Activity = addActivity
		}

		if err := app.Store().AddEntry(e); err != nil {
			return err
		}

		color.Green("Entry added to day %d", day.DayNumber)
		fmt.Printf("ID: %s\n", e.ID)
		return nil
	},
}

func init() {
	AddCmd.Flags().IntVar(&addDay, "day", 1, "diary day number (1-3)")
	AddCmd.Flags().StringVar(&addType, "type", "", "entry type: intake, void or incontinence")
	AddCmd.Flags().StringVar(&addTime, "time", "", "time of day, e.g. 14:30 (default: now)")
	AddCmd.Flags().StringVar(&addBeverage, "beverage", "", "beverage type for intake entries")
	AddCmd.Flags().IntVar(&addAmount, "amount", 0, "volume in ml")
	AddCmd.Flags().BoolVar(&addEstimate, "estimated", false, "volume is an estimate")
	AddCmd.Flags().IntVar(&addDuration, "duration", 0, "void duration in seconds")
	AddCmd.Flags().IntVar(&addUrgency, "urgency", 0, "urgency score (1-5)")
	AddCmd.Flags().StringVar(&addSeverity, "severity", "", "leak severity: dry, damp, wet or soaked")
	AddCmd.Flags().StringVar(&addActivity, "activity", "", "activity during the leak")
	AddCmd.Flags().StringVar(&addNote, "note", "", "free-form note")
	AddCmd.MarkFlagRequired("type")
}
