// Package migration upgrades persisted deck configuration from the coarse
// per-flag format to the per-signature matrix, keeping a verbatim rollback
// snapshot of every source version so a downgrade never loses data.
package migration
