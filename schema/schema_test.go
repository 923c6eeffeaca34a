package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilkerlucio/fulcro-sql/dialect"
)

func validConfig() Config {
	return Config{
		Driver: dialect.Postgres,
		GraphToSQL: map[Prop]Prop{
			"person/name": "member/name",
		},
		PKs: map[string]string{
			"account": "id",
			"member":  "id",
		},
		Joins: map[Prop]Join{
			"account/members": {Path: []Prop{"account/id", "member/account_id"}},
			"account/settings": {
				Path:  []Prop{"account/settings_id", "settings/id"},
				Arity: ToOne,
			},
			"invoice/items": {Path: []Prop{
				"invoice/id", "invoice_items/invoice_id",
				"invoice_items/item_id", "item/id",
			}},
		},
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		part   string
	}{
		{
			name:   "graph->sql must be declared",
			mutate: func(c *Config) { c.GraphToSQL = nil },
			part:   "graph->sql",
		},
		{
			name:   "pks must be declared",
			mutate: func(c *Config) { c.PKs = nil },
			part:   "pks",
		},
		{
			name:   "joins must be declared",
			mutate: func(c *Config) { c.Joins = nil },
			part:   "joins",
		},
		{
			name:   "unknown driver flavor",
			mutate: func(c *Config) { c.Driver = "oracle" },
			part:   "driver",
		},
		{
			name: "join path length",
			mutate: func(c *Config) {
				c.Joins["account/members"] = Join{Path: []Prop{"account/id", "x/y", "z/w"}}
			},
			part: "joins",
		},
		{
			name: "join path entries must be namespaced",
			mutate: func(c *Config) {
				c.Joins["account/members"] = Join{Path: []Prop{"account/id", "account_id"}}
			},
			part: "joins",
		},
		{
			name: "join property must be namespaced",
			mutate: func(c *Config) {
				c.Joins["members"] = Join{Path: []Prop{"account/id", "member/account_id"}}
			},
			part: "joins",
		},
		{
			name:   "pk must be a bare column",
			mutate: func(c *Config) { c.PKs["account"] = "account/id" },
			part:   "pks",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.part, verr.Part)
		})
	}
}

func TestNewDefaultsDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Driver = ""
	s, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, dialect.Default, s.Driver())
}

func TestGraphToSQL(t *testing.T) {
	s := MustNew(validConfig())
	assert.Equal(t, Prop("member/name"), s.GraphToSQL("person/name"), "remap applies first")
	assert.Equal(t, Prop("account/name"), s.GraphToSQL("account/name"), "identity without remap")
	assert.Equal(t, Prop("todo_list/name"), s.GraphToSQL("todo-list/name"), "normalization applies")
}

func TestSQLToGraphRoundTrip(t *testing.T) {
	s := MustNew(validConfig())
	// sql->graph inverts graph->sql on the remapped subset.
	assert.Equal(t, Prop("person/name"), s.SQLToGraph(s.GraphToSQL("person/name")))
	// Identity elsewhere.
	assert.Equal(t, Prop("account/name"), s.SQLToGraph("account/name"))
}

func TestPKDefaults(t *testing.T) {
	s := MustNew(validConfig())
	assert.Equal(t, "id", s.PK("account"))
	assert.Equal(t, "id", s.PK("unmapped_table"), "absent entries default to id")
	assert.Equal(t, Prop("account/id"), s.IDProp("account"))
}

func TestJoinLookup(t *testing.T) {
	s := MustNew(validConfig())

	j, ok := s.Join("account/members")
	require.True(t, ok)
	assert.Equal(t, []Prop{"account/id", "member/account_id"}, j.Path)
	assert.Equal(t, ToMany, j.Arity, "arity defaults to to-many")
	assert.False(t, j.ManyToMany())

	j, ok = s.Join("account/settings")
	require.True(t, ok)
	assert.Equal(t, ToOne, j.Arity)

	j, ok = s.Join("invoice/items")
	require.True(t, ok)
	assert.True(t, j.ManyToMany())

	_, ok = s.Join("account/unknown")
	assert.False(t, ok)
}

func TestIDColumns(t *testing.T) {
	s := MustNew(validConfig())
	assert.Equal(t, []Prop{"account/id", "member/id"}, s.IDColumns(), "one per pks table, sorted")
}

func TestArityString(t *testing.T) {
	assert.Equal(t, "to-many", ToMany.String())
	assert.Equal(t, "to-one", ToOne.String())
}
