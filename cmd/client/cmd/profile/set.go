package profile

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fluiddiary/internal/app/client"
	"fluiddiary/internal/domain/diary"
)

var (
	setSex       string
	setBirthYear int
	setSleep     string
	setWake      string
)

var SetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		// Start from the stored profile so one flag at a time works.
		current, err := app.Store().GetProfile()
		if err != nil && !errors.Is(err, client.ErrNotFound) {
			return err
		}
		p := diary.Profile{}
		if current != nil {
			p = *current
		}

		if setSex != "" {
			switch diary.Sex(setSex) {
			case diary.SexMale, diary.SexFemale:
				p.Sex = diary.Sex(setSex)
			default:
				return fmt.Errorf("unknown sex %q, expected male or female", setSex)
			}
		}
		if setBirthYear != 0 {
			p.BirthYear = setBirthYear
		}
		if setSleep != "" {
			p.SleepTime = setSleep
		}
		if setWake != "" {
			p.WakeTime = setWake
		}

		if err := app.Store().SetProfile(p); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}

		color.Green("Profile saved")
		return nil
	},
}

func init() {
	SetCmd.Flags().StringVar(&setSex, "sex", "", "male or female")
	SetCmd.Flags().IntVar(&setBirthYear, "birth-year", 0, "year of birth")
	SetCmd.Flags().StringVar(&setSleep, "sleep", "", "usual bedtime, e.g. 22:30")
	SetCmd.Flags().StringVar(&setWake, "wake", "", "usual wake time, e.g. 06:30")
}
