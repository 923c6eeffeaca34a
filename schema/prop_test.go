package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilkerlucio/fulcro-sql/dialect"
)

func TestPropParts(t *testing.T) {
	tests := []struct {
		prop  Prop
		space string
		leaf  string
		isID  bool
	}{
		{"account/name", "account", "name", false},
		{"todo-list/name", "todo-list", "name", false},
		{"db/id", "db", "id", true},
		{"id", "", "id", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.prop), func(t *testing.T) {
			assert.Equal(t, tt.space, tt.prop.Space())
			assert.Equal(t, tt.leaf, tt.prop.Leaf())
			assert.Equal(t, tt.isID, tt.prop.IsID())
		})
	}
}

func TestSqlize(t *testing.T) {
	s := MustNew(Config{
		Driver:     dialect.Postgres,
		GraphToSQL: map[Prop]Prop{},
		PKs:        map[string]string{},
		Joins:      map[Prop]Join{},
	})
	tests := []struct {
		in  Prop
		out Prop
	}{
		{"account/name", "account/name"},
		{"todo-list/name", "todo_list/name"},
		{"todo-list-item/parent-item-id", "todo_list_item/parent_item_id"},
		{"person/firstName", "person/first_name"},
		{"db/id", "db/id"},
		{"id", "id"},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.out, s.Sqlize(tt.in))
		})
	}
}

func TestMakeProp(t *testing.T) {
	p := MakeProp("account", "id")
	require.Equal(t, Prop("account/id"), p)
	assert.Equal(t, "account", p.Table())
	assert.Equal(t, "id", p.Column())
}
