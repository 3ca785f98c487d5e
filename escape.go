package vogon

import (
	"strconv"
	"strings"
)

// Escape renders a parameter value as a SQL literal for the Vogon service.
//
// Strings are single-quoted with embedded single quotes doubled to backticks,
// booleans become unquoted TRUE/FALSE, numbers pass through unescaped, and
// slices are escaped element-wise and joined with ", ". The literal "*"
// passes through verbatim as a wildcard.
func Escape(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		if v == "*" {
			return v, nil
		}
		return "'" + strings.ReplaceAll(v, "'", "``") + "'", nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case []string:
		elements := make([]interface{}, len(v))
		for i, e := range v {
			elements[i] = e
		}
		return escapeSlice(elements)
	case []interface{}:
		return escapeSlice(v)
	default:
		return "", ErrUnknownType("cannot escape parameter of type %T", value)
	}
}

func escapeSlice(elements []interface{}) (string, error) {
	escaped := make([]string, 0, len(elements))
	for _, element := range elements {
		s, err := Escape(element)
		if err != nil {
			return "", err
		}
		escaped = append(escaped, s)
	}
	return strings.Join(escaped, ", "), nil
}

// ApplyParameters substitutes named %(key)s placeholders in the query text
// with escaped literal values. A nil or empty parameter map leaves the query
// unchanged.
func ApplyParameters(operation string, parameters map[string]interface{}) (string, error) {
	if len(parameters) == 0 {
		return operation, nil
	}
	query := operation
	for key, value := range parameters {
		escaped, err := Escape(value)
		if err != nil {
			return "", err
		}
		query = strings.ReplaceAll(query, "%("+key+")s", escaped)
	}
	return query, nil
}

// ReplaceQuotes rewrites double quotes to backticks, the service's
// identifier-quoting convention.
func ReplaceQuotes(query string) string {
	return strings.ReplaceAll(query, `"`, "`")
}
