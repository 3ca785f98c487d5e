package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhiks/vogon-go/dialect"
)

func TestTypeMap(t *testing.T) {
	assert.Equal(t, dialect.TypeString, dialect.TypeMap["varchar"])
	assert.Equal(t, dialect.TypeNumber, dialect.TypeMap["double"])
	assert.Equal(t, dialect.TypeNumber, dialect.TypeMap["bigint"])
	assert.Equal(t, dialect.TypeBoolean, dialect.TypeMap["boolean"])
	assert.Equal(t, dialect.TypeNumber, dialect.TypeMap["timestamp"])
}

func TestCompileTypeMap(t *testing.T) {
	assert.Equal(t, "DOUBLE", dialect.CompileTypeMap["REAL"])
	assert.Equal(t, "LONG", dialect.CompileTypeMap["INTEGER"])
	assert.Equal(t, "LONG", dialect.CompileTypeMap["DATE"])
	assert.Equal(t, "STRING", dialect.CompileTypeMap["TEXT"])
	assert.Equal(t, "COMPLEX", dialect.CompileTypeMap["BLOB"])
}

func TestIntrospection(t *testing.T) {
	assert.Equal(t, []string{"cm.rts_customer_stats", "cm.rts_portfolio_stats"}, dialect.TableNames())
	assert.Equal(t, dialect.TableNames(), dialect.SchemaNames())
	assert.Empty(t, dialect.ViewNames())

	columns := dialect.Columns("cm.rts_customer_stats")
	require.Len(t, columns, 2)
	assert.Equal(t, "customer_id", columns[0].Name)
	assert.Equal(t, "string", columns[0].Type)
	assert.True(t, columns[0].Nullable)
	assert.Equal(t, "double", columns[1].Type)

	assert.Nil(t, dialect.Columns("no.such_table"))
}

func TestIntrospectionCopiesAreIsolated(t *testing.T) {
	tables := dialect.TableNames()
	tables[0] = "mutated"
	assert.Equal(t, "cm.rts_customer_stats", dialect.TableNames()[0])

	columns := dialect.Columns("cm.rts_customer_stats")
	columns[0].Name = "mutated"
	assert.Equal(t, "customer_id", dialect.Columns("cm.rts_customer_stats")[0].Name)
}
