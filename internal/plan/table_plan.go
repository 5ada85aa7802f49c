package plan

import (
	"log/slog"

	"github.com/yashagw/craneqe/internal/record"
	"github.com/yashagw/craneqe/internal/scan"
	"github.com/yashagw/craneqe/internal/table"
)

var (
	_ Plan = (*TablePlan)(nil)
)

// TablePlan is the Plan for a base table.
type TablePlan struct {
	table    *table.Table
	statInfo *table.StatInfo
}

func NewTablePlan(tableName string, catalog *table.Catalog) (*TablePlan, error) {
	t, err := catalog.Table(tableName)
	if err != nil {
		return nil, err
	}
	statInfo, err := catalog.StatInfo(tableName)
	if err != nil {
		return nil, err
	}
	slog.Debug("[PLAN] table plan", "table", tableName, "records", statInfo.RecordsOutput(), "blocks", statInfo.BlocksAccessed())
	return &TablePlan{
		table:    t,
		statInfo: statInfo,
	}, nil
}

func (p *TablePlan) Open() (scan.Scan, error) {
	return p.table.Open(), nil
}

// TableName returns the name of the scanned table.
func (p *TablePlan) TableName() string {
	return p.table.Name()
}

// BlocksAccessed returns the number of pages the table occupies.
func (p *TablePlan) BlocksAccessed() int {
	return p.statInfo.BlocksAccessed()
}

// RecordsOutput returns the number of records in the table.
func (p *TablePlan) RecordsOutput() int {
	return p.statInfo.RecordsOutput()
}

// DistinctValues returns the number of distinct values for the field in the table.
func (p *TablePlan) DistinctValues(fldname string) (int, error) {
	return p.statInfo.DistinctValues(fldname)
}

func (p *TablePlan) Schema() *record.Schema {
	return p.table.Schema()
}
