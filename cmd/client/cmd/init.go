// cmd/client/cmd/init.go
package cmd

import (
	"fluiddiary/cmd/client/cmd/day"
	"fluiddiary/cmd/client/cmd/entry"
	"fluiddiary/cmd/client/cmd/profile"
	syncCmd "fluiddiary/cmd/client/cmd/sync"
)

func init() {
	rootCmd.AddCommand(profile.ProfileCmd)
	profile.ProfileCmd.AddCommand(profile.SetCmd)
	profile.ProfileCmd.AddCommand(profile.ShowCmd)

	rootCmd.AddCommand(day.DayCmd)
	day.DayCmd.AddCommand(day.ListCmd)
	day.DayCmd.AddCommand(day.TypicalCmd)

	rootCmd.AddCommand(entry.EntryCmd)
	entry.EntryCmd.AddCommand(entry.AddCmd)
	entry.EntryCmd.AddCommand(entry.ListCmd)
	entry.EntryCmd.AddCommand(entry.DeleteCmd)

	rootCmd.AddCommand(syncCmd.SyncCmd)
	syncCmd.SyncCmd.AddCommand(syncCmd.CreateCmd)
	syncCmd.SyncCmd.AddCommand(syncCmd.JoinCmd)
	syncCmd.SyncCmd.AddCommand(syncCmd.LeaveCmd)
	syncCmd.SyncCmd.AddCommand(syncCmd.StatusCmd)
	syncCmd.SyncCmd.AddCommand(syncCmd.RunCmd)
}
