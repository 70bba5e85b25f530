package main

import (
	"fmt"
	"strings"

	"github.com/quarryworks/lode"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lode",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lode version %s\n", strings.TrimSpace(lode.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
