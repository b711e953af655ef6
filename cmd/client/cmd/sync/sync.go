package sync

import "github.com/spf13/cobra"

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the diary across devices",
	Long: `Sync commands bind this device to a shared room. All devices bound to
the same room converge on one merged diary.`,
}
