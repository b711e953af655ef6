package sync

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fluiddiary/internal/app/client"
)

var runPoll time.Duration

var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Keep syncing until interrupted",
	Long: `Run a long-lived sync session: stay subscribed to the room and pick up
diary changes made by other fluiddiary invocations on this device.

Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		st := app.Controller().Status()
		if st.Room == "" {
			return fmt.Errorf("not in a room, create or join one first")
		}

		color.Green("Syncing room %s, press Ctrl-C to stop", st.Room)

		// Other processes write the database directly, so nothing calls the
		// change observer in this one. Poll instead; unchanged content is
		// fingerprinted away before any upload.
		ticker := time.NewTicker(runPoll)
		defer ticker.Stop()
		for {
			select {
			case <-cmd.Context().Done():
				fmt.Println("\nStopping")
				return nil
			case <-ticker.C:
				app.Controller().OnLocalChange()
			}
		}
	},
}

func init() {
	RunCmd.Flags().DurationVar(&runPoll, "poll", 5*time.Second, "how often to check for local diary changes")
}
