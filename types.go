package vogon

import "encoding/json"

// TypeCode classifies a result column's inferred type.
type TypeCode int

// Result column type codes, inferred from row values.
const (
	TypeString TypeCode = iota + 1
	TypeNumber
	TypeBoolean
)

func (t TypeCode) String() string {
	switch t {
	case TypeString:
		return "STRING"
	case TypeNumber:
		return "NUMBER"
	case TypeBoolean:
		return "BOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// Column describes one result column: name, inferred type, and nullability.
// String columns are NULLable; numeric and boolean columns are NOT NULL.
// That rule mirrors the service's observed behaviour, not general SQL truth.
type Column struct {
	Name     string
	Type     TypeCode
	Nullable bool
}

// ResultSet is the materialized, bounded output of one successful job.
// Rows are ordered value sequences; Columns is the description derived from
// the first row. Immutable after retrieval.
type ResultSet struct {
	Columns []Column
	Rows    [][]interface{}
}

// RowCount returns the number of materialized rows.
func (rs *ResultSet) RowCount() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// inferType classifies a single result value. Null values are reported as
// strings, matching the service's convention for absent data.
func inferType(value interface{}) (TypeCode, error) {
	switch value.(type) {
	case nil, string:
		return TypeString, nil
	case bool:
		return TypeBoolean, nil
	case int, int32, int64, float32, float64, json.Number:
		return TypeNumber, nil
	default:
		return 0, ErrUnknownType("value of unknown type: %v", value)
	}
}

// descriptionFromRow derives the column description from a single row.
// names and row must have equal length; the service is trusted to return
// homogeneous rows, so only the first row is ever inspected.
func descriptionFromRow(names []string, row []interface{}) ([]Column, error) {
	desc := make([]Column, 0, len(row))
	for i, value := range row {
		code, err := inferType(value)
		if err != nil {
			return nil, err
		}
		desc = append(desc, Column{
			Name:     names[i],
			Type:     code,
			Nullable: code == TypeString,
		})
	}
	return desc, nil
}
