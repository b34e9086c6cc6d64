package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is stamped via -ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cephadm-helper version",
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewFigure("cephadm-helper", "", true).Print()
		fmt.Printf("version: %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
