package config

import (
	"math"

	"github.com/pingcap/errors"
	"github.com/yashagw/craneqe/internal/record"
)

// Table is a relation definition with its initial rows.
type Table struct {
	Name    string   `yaml:"name"`
	Columns []Column `yaml:"columns"`
	Rows    [][]any  `yaml:"rows"`
}

type Column struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	// Length bounds VarChar payloads; zero means unbounded.
	Length int `yaml:"length"`
}

// Schema builds the record schema of the table.
func (t *Table) Schema() (*record.Schema, error) {
	schema := record.NewSchema()
	for _, col := range t.Columns {
		typ, err := record.ParseFieldType(col.Type)
		if err != nil {
			return nil, errors.Annotatef(err, "table %q column %q", t.Name, col.Name)
		}
		switch typ {
		case record.Int:
			schema.AddIntField(col.Name)
		case record.Real:
			schema.AddRealField(col.Name)
		case record.VarChar:
			schema.AddStringField(col.Name, col.Length)
		}
	}
	if err := schema.Validate(); err != nil {
		return nil, errors.Annotatef(err, "table %q", t.Name)
	}
	return schema, nil
}

// Values converts every row to record values.
func (t *Table) Values() ([][]record.Value, error) {
	schema, err := t.Schema()
	if err != nil {
		return nil, err
	}
	rows := make([][]record.Value, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) != schema.Len() {
			return nil, errors.Errorf("table %q row %d has %d values, want %d", t.Name, i, len(row), schema.Len())
		}
		values := make([]record.Value, len(row))
		for j, v := range row {
			if values[j], err = ToValue(schema.Attribute(j), v); err != nil {
				return nil, errors.Annotatef(err, "table %q row %d", t.Name, i)
			}
		}
		rows[i] = values
	}
	return rows, nil
}

// Validate checks the columns and that every row fits the schema.
func (t *Table) Validate() error {
	if t.Name == "" {
		return errors.New("table has no name")
	}
	if len(t.Columns) == 0 {
		return errors.Errorf("table %q has no columns", t.Name)
	}
	_, err := t.Values()
	return err
}

// ToValue converts a decoded YAML scalar to a value of attr's type.
func ToValue(attr record.Attribute, v any) (record.Value, error) {
	switch attr.Type {
	case record.Int:
		n, ok := v.(int)
		if !ok {
			return record.Value{}, errors.Errorf("%s: want int, got %T", attr.Name, v)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return record.Value{}, errors.Errorf("%s: %d overflows int32", attr.Name, n)
		}
		return record.NewIntValue(int32(n)), nil
	case record.Real:
		switch f := v.(type) {
		case float64:
			return record.NewRealValue(float32(f)), nil
		case int:
			return record.NewRealValue(float32(f)), nil
		}
		return record.Value{}, errors.Errorf("%s: want real, got %T", attr.Name, v)
	case record.VarChar:
		s, ok := v.(string)
		if !ok {
			return record.Value{}, errors.Errorf("%s: want string, got %T", attr.Name, v)
		}
		if attr.Length > 0 && len(s) > attr.Length {
			return record.Value{}, errors.Errorf("%s: %q is longer than %d", attr.Name, s, attr.Length)
		}
		return record.NewStringValue(s), nil
	}
	return record.Value{}, errors.Errorf("%s: unknown type %s", attr.Name, attr.Type)
}
