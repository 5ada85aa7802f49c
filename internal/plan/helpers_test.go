package plan

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yashagw/craneqe/internal/record"
	"github.com/yashagw/craneqe/internal/scan"
	"github.com/yashagw/craneqe/internal/table"
)

// setupCatalog creates users(id, name) and orders(user_id, total).
func setupCatalog(t *testing.T) *table.Catalog {
	catalog := table.NewCatalog()

	users := record.NewSchema()
	users.AddIntField("id")
	users.AddStringField("name", 20)
	ut, err := catalog.CreateTable("users", users)
	require.NoError(t, err)
	require.NoError(t, ut.Insert(record.NewIntValue(1), record.NewStringValue("a")))
	require.NoError(t, ut.Insert(record.NewIntValue(2), record.NewStringValue("bb")))
	require.NoError(t, ut.Insert(record.NewIntValue(3), record.NewStringValue("a")))

	orders := record.NewSchema()
	orders.AddIntField("user_id")
	orders.AddRealField("total")
	ot, err := catalog.CreateTable("orders", orders)
	require.NoError(t, err)
	require.NoError(t, ot.Insert(record.NewIntValue(3), record.NewRealValue(9.5)))
	require.NoError(t, ot.Insert(record.NewIntValue(1), record.NewRealValue(20)))
	require.NoError(t, ot.Insert(record.NewIntValue(3), record.NewRealValue(1.25)))

	return catalog
}

func tablePlan(t *testing.T, catalog *table.Catalog, name string) *TablePlan {
	p, err := NewTablePlan(name, catalog)
	require.NoError(t, err)
	return p
}

// runPlan opens p, drains it and decodes every row.
func runPlan(t *testing.T, p Plan) [][]any {
	s, err := p.Open()
	require.NoError(t, err)
	defer s.Close()

	tuples, err := scan.Collect(s)
	require.NoError(t, err)

	rows := make([][]any, 0, len(tuples))
	for _, tuple := range tuples {
		values, err := record.Decode(p.Schema(), tuple)
		require.NoError(t, err)
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = v.Interface()
		}
		rows = append(rows, row)
	}
	return rows
}
