// Package stackconfig holds the per-deck configuration overlay on the action
// catalog: the sparse signature matrix with its permissive default, the two
// table-wide capability toggles, and the persisted collection shape with its
// rollback history.
package stackconfig
