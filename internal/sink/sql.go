package sink

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"apisport/internal/summoner/acquire"

	"github.com/lib/pq"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/valyala/fasttemplate"
)

const insertTemplate = "INSERT INTO {{table}} ({{columns}})\nVALUES\n{{rows}}{{conflict}};\n"

// Column maps one SQL column to a JSONPath into a record. An empty Path
// reads the top level member named like the column.
type Column struct {
	Name string `mapstructure:"name" json:"name"`
	Path string `mapstructure:"path" json:"path"`
}

var errNoColumns = errors.New("no columns configured for SQL output")

type compiledColumn struct {
	name string
	expr jp.Expr
}

// SQL renders the records as a single INSERT statement into table. When
// upsert names a column, rows that conflict on it update every other column.
// An empty record list renders nothing.
func SQL(table string, records []acquire.Record, columns []Column, upsert string) (string, error) {
	if len(columns) == 0 {
		return "", errNoColumns
	}
	compiled, err := compileColumns(columns)
	if err != nil {
		return "", err
	}
	if upsert != "" && !hasColumn(columns, upsert) {
		return "", fmt.Errorf("upsert key %q is not one of the configured columns", upsert)
	}
	if len(records) == 0 {
		return "", nil
	}

	rows := make([]string, 0, len(records))
	for i, r := range records {
		row, err := renderRow(r, compiled)
		if err != nil {
			return "", fmt.Errorf("record %d: %w", i, err)
		}
		rows = append(rows, row)
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = pq.QuoteIdentifier(c.Name)
	}

	return fasttemplate.ExecuteString(insertTemplate, "{{", "}}", map[string]interface{}{
		"table":    pq.QuoteIdentifier(table),
		"columns":  strings.Join(names, ", "),
		"rows":     strings.Join(rows, ",\n"),
		"conflict": conflictClause(columns, upsert),
	}), nil
}

func compileColumns(columns []Column) ([]compiledColumn, error) {
	out := make([]compiledColumn, 0, len(columns))
	for _, c := range columns {
		if c.Name == "" {
			return nil, errors.New("column without a name")
		}
		var expr jp.Expr
		if c.Path == "" {
			expr = jp.R().C(c.Name)
		} else {
			x, err := jp.ParseString(c.Path)
			if err != nil {
				return nil, fmt.Errorf("column %s: invalid path %q: %w", c.Name, c.Path, err)
			}
			expr = x
		}
		out = append(out, compiledColumn{name: c.Name, expr: expr})
	}
	return out, nil
}

func renderRow(r acquire.Record, columns []compiledColumn) (string, error) {
	obj, err := oj.Parse(r)
	if err != nil {
		return "", err
	}
	values := make([]string, len(columns))
	for i, c := range columns {
		var v interface{}
		if found := c.expr.Get(obj); len(found) > 0 {
			v = found[0]
		}
		values[i] = sqlValue(v)
	}
	return "  (" + strings.Join(values, ", ") + ")", nil
}

func sqlValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return pq.QuoteLiteral(val)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]interface{}, []interface{}:
		return pq.QuoteLiteral(oj.JSON(val, &oj.Options{Sort: true}))
	default:
		return pq.QuoteLiteral(fmt.Sprint(val))
	}
}

func conflictClause(columns []Column, upsert string) string {
	if upsert == "" {
		return ""
	}
	var sets []string
	for _, c := range columns {
		if c.Name == upsert {
			continue
		}
		id := pq.QuoteIdentifier(c.Name)
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", id, id))
	}
	clause := fmt.Sprintf("\nON CONFLICT (%s) DO ", pq.QuoteIdentifier(upsert))
	if len(sets) == 0 {
		return clause + "NOTHING"
	}
	return clause + "UPDATE SET " + strings.Join(sets, ", ")
}

func hasColumn(columns []Column, name string) bool {
	for _, c := range columns {
		if c.Name == name {
			return true
		}
	}
	return false
}
