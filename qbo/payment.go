package qbo

import (
	"github.com/Exotik850/quick-oxibooks-sql/schema"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// Payment holds the catalog definition for the Payment entity.
func Payment() *schema.Entity {
	return schema.MustEntity("Payment",
		field.Numeric("id"),
		field.String("customer_ref"),
		field.Date("txn_date"),
		field.Numeric("total").Wire("TotalAmt"),
		field.Numeric("unapplied_amt"),
		field.Date("created_at").Wire("MetaData.CreateTime"),
		field.Date("updated_at").Wire("MetaData.LastUpdatedTime"),
	)
}
