package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlSchema = `
dataset:
  name: demo
  seed: 7
  mode: valid
  size: 5
  max_attempts: 3
tables:
  accounts:
    primary_key: id
    columns:
      id:
        type: uuid
      email:
        type: email
        unique: true
  orders:
    primary_key: id
    columns:
      id:
        type: uuid
      account_id:
        type: uuid
      total:
        type: decimal
        range: [0, 500]
    foreign_keys:
      - column: account_id
        ref_table: accounts
        ref_column: id
rules:
  - if: "orders.total > 1000.0"
    then:
      - "orders.status == 'REVIEW'"
`

const jsonSchema = `{
  "dataset": {"name": "demo", "seed": 7, "mode": "valid", "size": 5, "max_attempts": 3},
  "tables": {
    "accounts": {"primary_key": "id", "columns": {"id": {"type": "uuid"}, "email": {"type": "email", "unique": true}}},
    "orders": {"primary_key": "id", "columns": {"id": {"type": "uuid"}, "account_id": {"type": "uuid"}},
      "foreign_keys": [{"column": "account_id", "ref_table": "accounts", "ref_column": "id"}]}
  },
  "rules": []
}`

const tomlSchema = `
[dataset]
name = "demo"
seed = 7
mode = "valid"
max_attempts = 3

[dataset.size]
accounts = 5
orders = 5

[tables.accounts]
primary_key = "id"

[tables.accounts.columns.id]
type = "uuid"

[tables.accounts.columns.email]
type = "email"
unique = true

[tables.orders]
primary_key = "id"

[tables.orders.columns.id]
type = "uuid"

[tables.orders.columns.account_id]
type = "uuid"

[[tables.orders.foreign_keys]]
column = "account_id"
ref_table = "accounts"
ref_column = "id"
`

func TestLoadYAMLPreservesDeclarationOrder(t *testing.T) {
	loaded, err := Load([]byte(yamlSchema), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"accounts", "orders"}, loaded.Schema.TableOrder)
	assert.Equal(t, []string{"id", "email"}, loaded.Schema.Tables["accounts"].ColumnOrder)
	assert.Equal(t, 5, loaded.Schema.Dataset.Size["accounts"])
	assert.Equal(t, 5, loaded.Schema.Dataset.Size["orders"])
	assert.NoError(t, loaded.Schema.Validate())
	assert.NotEmpty(t, loaded.ConfigHash)
}

func TestLoadJSONPreservesDeclarationOrder(t *testing.T) {
	loaded, err := Load([]byte(jsonSchema), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []string{"accounts", "orders"}, loaded.Schema.TableOrder)
	fk, ok := loaded.Schema.Tables["orders"].ForeignKeyFor("account_id")
	require.True(t, ok)
	assert.Equal(t, "accounts", fk.RefTable)
}

func TestLoadTOMLPreservesDeclarationOrder(t *testing.T) {
	loaded, err := Load([]byte(tomlSchema), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, []string{"accounts", "orders"}, loaded.Schema.TableOrder)
	assert.Equal(t, []string{"id", "account_id"}, loaded.Schema.Tables["orders"].ColumnOrder)
}

func TestConfigHashStableAcrossKeyReordering(t *testing.T) {
	a := `{"dataset":{"name":"demo","seed":1,"mode":"valid","max_attempts":1,"size":1},"tables":{"t":{"primary_key":"id","columns":{"id":{"type":"uuid"}}}},"rules":[]}`
	b := `{"tables":{"t":{"columns":{"id":{"type":"uuid"}},"primary_key":"id"}},"dataset":{"mode":"valid","name":"demo","max_attempts":1,"seed":1,"size":1},"rules":[]}`
	ha, err := Load([]byte(a), FormatJSON)
	require.NoError(t, err)
	hb, err := Load([]byte(b), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, ha.ConfigHash, hb.ConfigHash)
}

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"schema.yaml": FormatYAML,
		"schema.yml":  FormatYAML,
		"schema.json": FormatJSON,
		"schema.toml": FormatTOML,
	}
	for path, want := range cases {
		got, err := DetectFormat(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := DetectFormat("schema.txt")
	assert.Error(t, err)
}
