package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quarryworks/lode"
	"github.com/quarryworks/lode/internal/presentation/tui"
	"github.com/quarryworks/lode/pkg/adapters/memory"
)

var reportCmd = &cobra.Command{
	Use:   "report <session-id>",
	Short: "Render a report of a persisted session",
	Long:  `Loads the session's snapshot from the configured state store and renders its state as a markdown report.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]
		store := getStore(cmd)

		snap, err := store.Load(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("cannot load session '%s': %w", sessionID, err)
		}

		// A throwaway rig is enough to decode the snapshot; the report
		// never ticks the excavator.
		exc, err := lode.Restore(memory.NewSimRig(), snap)
		if err != nil {
			return fmt.Errorf("cannot decode session '%s': %w", sessionID, err)
		}

		status := "complete"
		if exc.Active() {
			status = fmt.Sprintf("in progress (%d pending frames)", exc.Depth())
		}

		var b strings.Builder
		fmt.Fprintf(&b, "# Excavation Session\n\n")
		fmt.Fprintf(&b, "| Field | Value |\n")
		fmt.Fprintf(&b, "|---|---|\n")
		fmt.Fprintf(&b, "| Session | %s |\n", sessionID)
		fmt.Fprintf(&b, "| Saved | %s |\n", snap.SavedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(&b, "| Direction | %s |\n", exc.Direction())
		fmt.Fprintf(&b, "| Status | %s |\n", status)
		fmt.Fprintf(&b, "| Denylist entries | %d |\n", exc.Denylist().Len())

		rendered, err := tui.RenderMarkdown(b.String())
		if err != nil {
			fmt.Println(b.String())
			return nil
		}
		fmt.Fprint(os.Stdout, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
