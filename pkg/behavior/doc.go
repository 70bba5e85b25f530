/*
Package behavior provides small, serializable action-tree building blocks
for agent programs: sequences, selectors, retry loops, and the primitive
rig operations as leaves.

Every action advances by at most one physical rig operation per Tick and
reports a tri-state result, so a host can interleave actions with other
work and persist them between ticks. Serialization is compositional: each
node encodes as a tagged JSON object, and a Registry maps type tags back
to decoders, so higher-level packages can register their own node types
and embed them anywhere in a persisted tree.
*/
package behavior
