package qbo

import (
	"github.com/Exotik850/quick-oxibooks-sql/schema"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// Customer holds the catalog definition for the Customer entity. The job
// flag marks sub-customers; the service expects it unquoted.
func Customer() *schema.Entity {
	return schema.MustEntity("Customer",
		field.Numeric("id"),
		field.String("display_name"),
		field.String("company_name"),
		field.String("given_name"),
		field.String("family_name"),
		field.String("fully_qualified_name"),
		field.Numeric("balance"),
		field.Bool("active"),
		field.Bool("job").Bare(),
		field.Bool("taxable"),
		field.Date("created_at").Wire("MetaData.CreateTime"),
		field.Date("updated_at").Wire("MetaData.LastUpdatedTime"),
	)
}
