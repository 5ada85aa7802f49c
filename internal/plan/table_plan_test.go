package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablePlan(t *testing.T) {
	catalog := setupCatalog(t)
	p := tablePlan(t, catalog, "users")

	assert.Equal(t, "users", p.TableName())
	assert.Equal(t, []string{"id", "name"}, p.Schema().Fields())

	assert.Equal(t, 3, p.RecordsOutput())
	assert.Equal(t, 1, p.BlocksAccessed())
	n, err := p.DistinctValues("id")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = p.DistinctValues("name")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, [][]any{
		{int32(1), "a"},
		{int32(2), "bb"},
		{int32(3), "a"},
	}, runPlan(t, p))
}

func TestTablePlanNonExistentTable(t *testing.T) {
	_, err := NewTablePlan("nonexistent", setupCatalog(t))
	assert.Error(t, err)
}
