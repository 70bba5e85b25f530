/*
Package vein implements the vein-traversal state machine: a depth-first,
6-connected flood fill over an implicit grid, encoded as an explicit
serializable stack of pending frames instead of call-stack recursion.

The driver executes one bounded step per Tick and always returns control
to the caller between physical operations, so a traversal can be
persisted, interrupted, and resumed at any frame boundary without
re-sensing or re-deciding anything.
*/
package vein
