package qbo

import (
	"github.com/Exotik850/quick-oxibooks-sql/schema"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// Item holds the catalog definition for the Item entity.
func Item() *schema.Entity {
	return schema.MustEntity("Item",
		field.Numeric("id"),
		field.String("name"),
		field.String("sku"),
		field.Enum("type").Values("Inventory", "NonInventory", "Service"),
		field.Numeric("unit_price"),
		field.Numeric("purchase_cost"),
		field.Numeric("qty_on_hand"),
		field.Bool("active"),
		field.Date("created_at").Wire("MetaData.CreateTime"),
		field.Date("updated_at").Wire("MetaData.LastUpdatedTime"),
	)
}
