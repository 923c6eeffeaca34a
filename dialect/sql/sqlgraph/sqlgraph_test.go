package sqlgraph

import (
	"github.com/wilkerlucio/fulcro-sql/dialect"
	"github.com/wilkerlucio/fulcro-sql/schema"
)

// testSchema models a small accounting domain: accounts with members,
// settings, invoices (with items through a link table), a spousal
// self-reference, and todo lists with nested items.
var testSchema = schema.MustNew(schema.Config{
	Driver: dialect.Postgres,
	GraphToSQL: map[schema.Prop]schema.Prop{
		"person/name":       "member/name",
		"person/account-id": "member/account_id",
	},
	PKs: map[string]string{
		"account":        "id",
		"member":         "id",
		"invoice":        "id",
		"item":           "id",
		"settings":       "id",
		"todo_list":      "id",
		"todo_list_item": "id",
	},
	Joins: map[schema.Prop]schema.Join{
		"account/members": {
			Path: []schema.Prop{"account/id", "member/account_id"},
		},
		"account/invoices": {
			Path: []schema.Prop{"account/id", "invoice/account_id"},
		},
		"account/settings": {
			Path:  []schema.Prop{"account/settings_id", "settings/id"},
			Arity: schema.ToOne,
		},
		"account/spouse": {
			Path:  []schema.Prop{"account/spouse_id", "account/id"},
			Arity: schema.ToOne,
		},
		"invoice/items": {
			Path: []schema.Prop{
				"invoice/id", "invoice_items/invoice_id",
				"invoice_items/item_id", "item/id",
			},
		},
		"todo-list/items": {
			Path: []schema.Prop{"todo_list/id", "todo_list_item/todo_list_id"},
		},
		"todo-list-item/subitems": {
			Path: []schema.Prop{"todo_list_item/id", "todo_list_item/parent_item_id"},
		},
	},
})
