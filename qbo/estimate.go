package qbo

import (
	"github.com/Exotik850/quick-oxibooks-sql/schema"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// Estimate holds the catalog definition for the Estimate entity.
func Estimate() *schema.Entity {
	return schema.MustEntity("Estimate",
		field.Numeric("id"),
		field.String("doc_number"),
		field.String("customer_ref"),
		field.Date("txn_date"),
		field.Date("expiration_date"),
		field.Numeric("total").Wire("TotalAmt"),
		field.Enum("txn_status").Values("Pending", "Accepted", "Closed", "Rejected"),
		field.Enum("email_status").Values("NotSet", "NeedToSend", "EmailSent"),
		field.Date("created_at").Wire("MetaData.CreateTime"),
		field.Date("updated_at").Wire("MetaData.LastUpdatedTime"),
	)
}
