package qbo

import (
	"github.com/Exotik850/quick-oxibooks-sql/schema"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// Vendor holds the catalog definition for the Vendor entity.
func Vendor() *schema.Entity {
	return schema.MustEntity("Vendor",
		field.Numeric("id"),
		field.String("display_name"),
		field.String("company_name"),
		field.String("given_name"),
		field.String("family_name"),
		field.Numeric("balance"),
		field.Bool("active"),
		field.Bool("vendor_1099").Wire("Vendor1099"),
		field.Date("created_at").Wire("MetaData.CreateTime"),
		field.Date("updated_at").Wire("MetaData.LastUpdatedTime"),
	)
}
