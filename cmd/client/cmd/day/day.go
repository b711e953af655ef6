package day

import "github.com/spf13/cobra"

var DayCmd = &cobra.Command{
	Use:   "day",
	Short: "Manage diary days",
}
