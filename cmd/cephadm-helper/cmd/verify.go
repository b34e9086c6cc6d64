package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shuchitajnn/cephci/pkg/state"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validation routines run against the live cluster",
}

var verifyLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Verify daemon log files exist after enabling file logging",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, admin, err := connectCluster(cmd.Context())
		if err != nil {
			return err
		}
		defer closeCluster(c)

		ok, err := state.VerifyLogFilesCreated(cmd.Context(), admin)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("log file verification failed")
		}
		color.Green("all expected daemon log files are present")
		return nil
	},
}

func init() {
	verifyCmd.AddCommand(verifyLogsCmd)
	rootCmd.AddCommand(verifyCmd)
}
