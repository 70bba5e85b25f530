/*
Package dsl provides a fluent Go API for composing behavior trees
programmatically.

It lets callers assemble mining plans from typed constructors instead of
hand-writing the JSON node format. Construction errors (such as an invalid
direction) are carried through the tree and surfaced once by Build, so
plans read as a single expression.

Example usage:

	plan, err := dsl.Sequence(
		dsl.Excavate(domain.Forward, domain.DefaultDenylist()),
		dsl.Move(domain.Up),
		dsl.Excavate(domain.Forward, domain.DefaultDenylist()),
	).Build()
	if err != nil {
		// ...
	}

	// plan is a behavior.Action: tick it, or marshal it into a snapshot.
*/
package dsl
