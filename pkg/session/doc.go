/*
Package session orchestrates concurrent access to persisted excavation
snapshots.

It serializes operations per session with reference-counted local locks and
can additionally coordinate across replicas through an optional distributed
locker.
*/
package session
