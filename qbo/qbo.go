// Package qbo ships the built-in entity catalog for the QuickBooks Online
// data service. Schemas covers the commonly queried entities with their
// documented wire names; applications that query entities beyond these can
// assemble their own Registry from the exported constructors plus their own
// definitions, or load one from a YAML catalog via schema.Load.
package qbo

import (
	"github.com/Exotik850/quick-oxibooks-sql/schema"
)

// Schemas returns a fresh catalog of the built-in entities. Each call builds
// a new Registry so callers can extend theirs without affecting others.
func Schemas() *schema.Registry {
	return schema.MustRegistry(
		Customer(),
		Invoice(),
		Vendor(),
		Item(),
		Payment(),
		Bill(),
		Account(),
		Estimate(),
	)
}
