package qbo

import (
	"github.com/Exotik850/quick-oxibooks-sql/schema"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// Invoice holds the catalog definition for the Invoice entity.
func Invoice() *schema.Entity {
	return schema.MustEntity("Invoice",
		field.Numeric("id"),
		field.String("doc_number"),
		field.String("customer_ref"),
		field.Date("txn_date"),
		field.Date("due_date"),
		field.Numeric("total").Wire("TotalAmt"),
		field.Numeric("balance"),
		field.Enum("email_status").Values("NotSet", "NeedToSend", "EmailSent"),
		field.Enum("print_status").Values("NotSet", "NeedToPrint", "PrintComplete"),
		field.Date("created_at").Wire("MetaData.CreateTime"),
		field.Date("updated_at").Wire("MetaData.LastUpdatedTime"),
	)
}
