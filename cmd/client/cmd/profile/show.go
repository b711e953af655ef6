package profile

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fluiddiary/internal/app/client"
)

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		p, err := app.Store().GetProfile()
		if errors.Is(err, client.ErrNotFound) {
			fmt.Println("No profile stored yet. Use 'fluiddiary profile set'.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Sex:        %s\n", p.Sex)
		fmt.Printf("Birth year: %d\n", p.BirthYear)
		fmt.Printf("Sleep:      %s\n", p.SleepTime)
		fmt.Printf("Wake:       %s\n", p.WakeTime)
		return nil
	},
}
