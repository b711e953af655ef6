package sync

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fluiddiary/internal/app/client"
)

var LeaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Leave the current sync room",
	Long: `Unbind this device from its room. The local diary is kept as-is; only
the room binding and sync activity stop. Other devices keep the data they
already received.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		if app.Controller().Status().Room == "" {
			color.Yellow("Not in a room")
			return nil
		}
		if err := app.Controller().Leave(); err != nil {
			return err
		}

		color.Green("Left room. The diary stays on this device.")
		return nil
	},
}
