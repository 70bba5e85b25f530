package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quarryworks/lode"
	"github.com/quarryworks/lode/internal/cli"
	"github.com/quarryworks/lode/internal/presentation/tui"
)

var runCmd = &cobra.Command{
	Use:   "run <fixture.yaml>",
	Short: "Run an excavation against a simulated world",
	Long:  `Loads a YAML world fixture, excavates the vein it describes, and prints a report. Progress is persisted after every tick, so an interrupted run can be picked up again with 'lode resume'.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")
		resume, _ := cmd.Flags().GetBool("resume")
		sessionID, _ := cmd.Flags().GetString("session")

		if sessionID == "" {
			if resume {
				return errors.New("--resume requires --session")
			}
			sessionID = uuid.NewString()
		}
		return executeRun(cmd, args[0], sessionID, resume, quiet)
	},
}

// executeRun is the shared body of the run and resume commands.
func executeRun(cmd *cobra.Command, fixturePath, sessionID string, resume, quiet bool) error {
	debug, _ := cmd.Flags().GetBool("debug")
	logger := cli.CreateLogger(debug)

	fixture, err := cli.LoadFixture(fixturePath)
	if err != nil {
		return err
	}
	dir, err := fixture.ParsedDirection()
	if err != nil {
		return err
	}
	deny, err := fixture.BuildDenylist()
	if err != nil {
		return err
	}
	rig := fixture.BuildRig()

	store := getStore(cmd)

	stats := tui.NewRunStats()
	opts := []lode.Option{
		lode.WithLogger(logger),
		lode.WithHooks(stats.Hooks()),
		lode.WithStore(store, sessionID),
	}

	var exc *lode.Excavator
	if resume {
		// The denylist travels with the snapshot, so the fixture's list
		// only applies to fresh runs.
		snap, err := store.Load(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("cannot resume session '%s': %w", sessionID, err)
		}
		exc, err = lode.Restore(rig, snap, opts...)
		if err != nil {
			return err
		}
	} else {
		exc, err = lode.New(rig, dir, append(opts, lode.WithDenylist(deny))...)
		if err != nil {
			return err
		}
	}

	if !quiet {
		tui.PrintBanner()
		cli.PrintSystemMessage("Session '%s' excavating %s.", sessionID, dir)
	}

	sc := cli.NewSignalContext(cmd.Context())
	defer sc.Cancel()

	start := time.Now()
	runErr := exc.Run(sc)
	elapsed := time.Since(start)

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			if !quiet {
				cli.PrintSystemMessage("Interrupted. Resume with: lode resume %s %s", sessionID, fixturePath)
			}
			return nil
		}
		return runErr
	}

	if !quiet {
		report := stats.Markdown(sessionID, dir, elapsed)
		rendered, err := tui.RenderMarkdown(report)
		if err != nil {
			fmt.Println(report)
		} else {
			fmt.Print(rendered)
		}
	}

	logger.Info("excavation complete", "session_id", sessionID, "duration", elapsed)
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("session", "", "Session ID (generated when empty)")
	runCmd.Flags().Bool("resume", false, "Resume a persisted session instead of starting fresh")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress banner and report")
}
