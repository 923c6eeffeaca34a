// Package schema holds the mapping between the caller's logical entity
// graph and the physical relational layout: graph-property remaps,
// per-table primary keys, join descriptors, and the driver flavor.
//
// A Schema is an immutable value. It is built once, either in code:
//
//	s, err := schema.New(schema.Config{
//	    Driver: dialect.Postgres,
//	    GraphToSQL: map[schema.Prop]schema.Prop{
//	        "person/name": "member/name",
//	    },
//	    PKs: map[string]string{"account": "id"},
//	    Joins: map[schema.Prop]schema.Join{
//	        "account/members":  {Path: []schema.Prop{"account/id", "member/account_id"}},
//	        "account/settings": {Path: []schema.Prop{"account/settings_id", "settings/id"}, Arity: schema.ToOne},
//	        "invoice/items": {Path: []schema.Prop{
//	            "invoice/id", "invoice_items/invoice_id",
//	            "invoice_items/item_id", "item/id",
//	        }},
//	    },
//	})
//
// or loaded from a YAML document via Parse/Load, and then shared
// read-only by every component of the engine.
package schema
