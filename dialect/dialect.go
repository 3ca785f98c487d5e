// Package dialect holds the static type-mapping tables and schema
// introspection data for the Vogon service. Everything here is constant
// lookup data consumed by the driver's cursor layer and the CLI; none of it
// participates in job execution.
package dialect

// Service type names grouped by the driver type they map to.
const (
	TypeString  = "STRING"
	TypeNumber  = "NUMBER"
	TypeBoolean = "BOOLEAN"
)

// TypeMap maps a Vogon column type name to the driver's inferred type
// family. "other" covers complex values the driver cannot decompose.
var TypeMap = map[string]string{
	"char":      TypeString,
	"varchar":   TypeString,
	"string":    TypeString,
	"float":     TypeNumber,
	"decimal":   TypeNumber,
	"real":      TypeNumber,
	"double":    TypeNumber,
	"boolean":   TypeBoolean,
	"tinyint":   TypeNumber,
	"smallint":  TypeNumber,
	"integer":   TypeNumber,
	"bigint":    TypeNumber,
	"timestamp": TypeNumber,
	"date":      TypeNumber,
	"other":     TypeString,
}

// CompileTypeMap maps generic SQL type names to the type names the service
// expects in DDL and casts. Temporal and numeric types collapse to LONG.
var CompileTypeMap = map[string]string{
	"REAL":      "DOUBLE",
	"NUMERIC":   "LONG",
	"DECIMAL":   "LONG",
	"INTEGER":   "LONG",
	"SMALLINT":  "LONG",
	"BIGINT":    "LONG",
	"BOOLEAN":   "LONG",
	"TIMESTAMP": "LONG",
	"DATE":      "LONG",
	"DATETIME":  "LONG",
	"TIME":      "LONG",
	"CHAR":      "STRING",
	"NCHAR":     "STRING",
	"VARCHAR":   "STRING",
	"NVARCHAR":  "STRING",
	"TEXT":      "STRING",
	"BLOB":      "COMPLEX",
	"CLOB":      "COMPLEX",
	"NCLOB":     "COMPLEX",
	"VARBINARY": "COMPLEX",
	"BINARY":    "COMPLEX",
}

// ColumnInfo describes one column of a known service table.
type ColumnInfo struct {
	Name     string
	Type     string
	Nullable bool
	Default  string
}

// The service exposes no catalog API; the reporting tables below are the
// fixed set the deployment serves.
var tables = []string{
	"cm.rts_customer_stats",
	"cm.rts_portfolio_stats",
}

var columns = map[string][]ColumnInfo{
	"cm.rts_customer_stats": {
		{Name: "customer_id", Type: "string", Nullable: true, Default: "-1"},
		{Name: "net_bid", Type: "double", Nullable: true, Default: "0"},
	},
	"cm.rts_portfolio_stats": {
		{Name: "customer_id", Type: "string", Nullable: true, Default: "-1"},
		{Name: "net_bid", Type: "double", Nullable: true, Default: "0"},
	},
}

// SchemaNames returns the known schema names.
func SchemaNames() []string {
	out := make([]string, len(tables))
	copy(out, tables)
	return out
}

// TableNames returns the known table names.
func TableNames() []string {
	out := make([]string, len(tables))
	copy(out, tables)
	return out
}

// ViewNames returns the known view names. The service has none.
func ViewNames() []string {
	return []string{}
}

// Columns returns the column metadata for a known table, or nil when the
// table is not part of the fixed catalog.
func Columns(table string) []ColumnInfo {
	cols, ok := columns[table]
	if !ok {
		return nil
	}
	out := make([]ColumnInfo, len(cols))
	copy(out, cols)
	return out
}
