package qbo

import (
	"github.com/Exotik850/quick-oxibooks-sql/schema"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// Account holds the catalog definition for the Account entity. The
// account_type values are the service's documented spellings, spaces
// included.
func Account() *schema.Entity {
	return schema.MustEntity("Account",
		field.Numeric("id"),
		field.String("name"),
		field.String("fully_qualified_name"),
		field.Enum("account_type").Values(
			"Bank",
			"Accounts Receivable",
			"Other Current Asset",
			"Fixed Asset",
			"Other Asset",
			"Accounts Payable",
			"Credit Card",
			"Other Current Liability",
			"Long Term Liability",
			"Equity",
			"Income",
			"Cost of Goods Sold",
			"Expense",
			"Other Income",
			"Other Expense",
		),
		field.Enum("classification").Values("Asset", "Equity", "Expense", "Liability", "Revenue"),
		field.Numeric("current_balance"),
		field.Bool("active"),
		field.Date("created_at").Wire("MetaData.CreateTime"),
		field.Date("updated_at").Wire("MetaData.LastUpdatedTime"),
	)
}
