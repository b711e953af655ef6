package entry

import "github.com/spf13/cobra"

var EntryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage diary entries",
}
