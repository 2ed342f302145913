// Package stack defines the location model for card containers: the six
// target categories a card can occupy, container ownership and type, and the
// per-deck-kind card behavior extension point.
package stack
