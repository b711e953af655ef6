package entry

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fluiddiary/internal/app/client"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete a diary entry on this device",
	Long: `Delete an entry from the local diary.

Deletions stay local: if the entry was already synced, copies held by other
devices are not removed and will come back with the next merge.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cmd.Context().Value("app").(*client.App)

		if err := app.Store().DeleteEntry(args[0]); err != nil {
			if errors.Is(err, client.ErrNotFound) {
				return fmt.Errorf("no entry with id %s", args[0])
			}
			return err
		}

		color.Green("Entry deleted")
		return nil
	},
}
