// Package storage defines the persistence ports of the table service and the
// record shapes they exchange. Backends live in subpackages.
package storage
