package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bowlrms/desktop/pkg/version"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.AppName, version.Full())
	},
}
