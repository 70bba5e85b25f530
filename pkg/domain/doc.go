/*
Package domain contains the core types of the lode engine: directions,
tri-state results, the target denylist, persisted snapshots, and the
error taxonomy shared by rigs, stores, and the excavation driver.

It has no dependencies on other lode packages so that adapters and hosts
can exchange these types freely.
*/
package domain
