package qbo

import (
	"github.com/Exotik850/quick-oxibooks-sql/schema"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// Bill holds the catalog definition for the Bill entity.
func Bill() *schema.Entity {
	return schema.MustEntity("Bill",
		field.Numeric("id"),
		field.String("doc_number"),
		field.String("vendor_ref"),
		field.Date("txn_date"),
		field.Date("due_date"),
		field.Numeric("total").Wire("TotalAmt"),
		field.Numeric("balance"),
		field.Date("created_at").Wire("MetaData.CreateTime"),
		field.Date("updated_at").Wire("MetaData.LastUpdatedTime"),
	)
}
