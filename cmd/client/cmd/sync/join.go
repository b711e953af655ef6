package sync

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fluiddiary/internal/app/client"
)

var joinWait time.Duration

var JoinCmd = &cobra.Command{
	Use:   "join <code-or-link>",
	Short: "Join an existing sync room",
	Long: `Join a room by its code or by the share link another device printed.

The current room document is downloaded and merged into the local diary
before the command returns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		code, err := app.Controller().JoinRoom(args[0])
		if err != nil {
			return err
		}

		color.Green("Joined room %s", code)

		// Wait for the initial download. An empty room delivers nothing, so
		// this is best effort with a deadline.
		deadline := time.Now().Add(joinWait)
		for time.Now().Before(deadline) {
			if !app.Controller().Status().LastSync.IsZero() {
				color.Green("Diary merged from room")
				return nil
			}
			time.Sleep(100 * time.Millisecond)
		}
		return nil
	},
}

func init() {
	JoinCmd.Flags().DurationVar(&joinWait, "wait", 5*time.Second, "how long to wait for the initial download")
}
