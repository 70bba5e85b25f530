/*
Package observability turns engine lifecycle hooks into Prometheus metrics
and structured logs.

Hooks from several sources can be merged, so metrics, logging and custom
callbacks all observe the same ticks.
*/
package observability
