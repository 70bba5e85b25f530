/*
Package lode drives an autonomous mining agent through the complete
excavation of a connected ore vein, using only local sensing and local
movement, while guaranteeing the agent returns to its exact starting
pose when finished.

The traversal is a depth-first flood fill over the 6-connected grid,
encoded as an explicit serializable work stack rather than call-stack
recursion. The engine advances one bounded step per Tick and reports a
tri-state result, so the host stays in control between every physical
operation and can persist, interrupt, and resume an excavation at any
point ("Durable Execution").

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/quarryworks/lode"
		"github.com/quarryworks/lode/pkg/adapters/memory"
		"github.com/quarryworks/lode/pkg/domain"
	)

	func main() {
		// A deterministic in-memory world; real hosts implement
		// ports.Rig against their own hardware.
		rig := memory.NewSimRig()
		rig.SetBlock(memory.Vec3{Z: -1}, "iron_ore")

		exc, err := lode.New(rig, domain.Forward)
		if err != nil {
			log.Fatal(err)
		}

		// Drive to terminal success, retrying transient failures
		// with the configured backoff policy.
		if err := exc.Run(context.Background()); err != nil {
			log.Fatal(err)
		}
	}

For tick-level control call Tick directly; every call performs at most
one physical operation and returns ResultRunning until the traversal
completes.
*/
package lode
