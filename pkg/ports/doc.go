/*
Package ports defines the driven ports (interfaces) for the lode engine.

These interfaces decouple the traversal core from external implementations,
allowing the engine to work with different agent hardware, storage backends,
and lock providers.

# Key Interfaces

  - Rig: the agent's sensing, movement, and digging primitives.
  - StateStore: persists excavation snapshots for stop-and-resume workflows.
  - DistributedLocker: coordinates session access across multiple hosts.
*/
package ports
