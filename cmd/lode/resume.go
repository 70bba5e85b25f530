package main

import (
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <session-id> <fixture.yaml>",
	Short: "Resume a persisted excavation",
	Long:  `Loads the session's snapshot from the configured state store and drives it to completion against the fixture world. Shorthand for 'lode run --session <id> --resume'.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")
		return executeRun(cmd, args[1], args[0], true, quiet)
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)

	resumeCmd.Flags().BoolP("quiet", "q", false, "Suppress banner and report")
}
