package sync

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fluiddiary/internal/app/client"
)

var createCode string

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a sync room and bind this device to it",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		code, err := app.Controller().CreateRoom(createCode)
		if err != nil {
			return err
		}

		// Push the current diary so the room exists server-side before the
		// user shares the code.
		app.Controller().OnLocalChange()
		app.Controller().FlushNow()

		color.Green("Room created: %s", code)
		fmt.Printf("Share link: %s\n", app.JoinLink(code))
		fmt.Println("On another device run: fluiddiary sync join", code)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVar(&createCode, "code", "", "use a custom room code instead of a generated one")
}
