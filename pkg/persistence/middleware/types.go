// Package middleware composes behavior onto state stores, such as
// encryption at rest.
package middleware

import "github.com/quarryworks/lode/pkg/ports"

// Middleware allows wrapping a StateStore to add behavior.
type Middleware func(ports.StateStore) ports.StateStore
