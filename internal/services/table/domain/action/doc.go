// Package action holds the static catalog of card-movement actions: every
// semantic action group and, within each group, every legal (from, target)
// transition. The catalog is pure data with no failure modes; per-deck
// configuration decides which of its entries are actually offered.
package action
