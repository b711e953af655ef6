package sync

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fluiddiary/internal/app/client"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sync session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		st := app.Controller().Status()
		if st.Room == "" {
			fmt.Println("Not in a room. Create one with 'fluiddiary sync create'.")
			return nil
		}

		fmt.Printf("Room:      %s\n", st.Room)
		fmt.Printf("State:     %s\n", st.State)
		if st.Connected {
			color.Green("Connected: yes")
		} else {
			color.Yellow("Connected: no")
		}
		if st.LastSync.IsZero() {
			fmt.Println("Last sync: never")
		} else {
			fmt.Printf("Last sync: %s\n", st.LastSync.Format("2006-01-02 15:04:05"))
		}
		fmt.Printf("Link:      %s\n", app.JoinLink(st.Room))
		return nil
	},
}
