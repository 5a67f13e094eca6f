package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the release version stamped into the binary.
const version = "0.2.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("taskdesk v" + version)
	},
}
