// Package corestack owns the registry of declared deck kinds. Declarations
// arrive from settings or from startup hooks through Register, live exactly
// once per key, and are torn down and reloaded as a unit on configuration
// change.
package corestack
