package table

import (
	"sort"

	"github.com/pingcap/errors"
	"github.com/yashagw/craneqe/internal/record"
)

// Catalog maps relation names to tables.
type Catalog struct {
	tables map[string]*Table
	stats  map[string]*StatInfo
}

func NewCatalog() *Catalog {
	return &Catalog{
		tables: make(map[string]*Table),
		stats:  make(map[string]*StatInfo),
	}
}

// CreateTable registers a new empty table.
func (c *Catalog) CreateTable(name string, schema *record.Schema) (*Table, error) {
	if _, ok := c.tables[name]; ok {
		return nil, errors.Errorf("table %q already exists", name)
	}
	t, err := New(name, schema)
	if err != nil {
		return nil, err
	}
	c.tables[name] = t
	return t, nil
}

// Table returns the table called name.
func (c *Catalog) Table(name string) (*Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, errors.Errorf("table %q not found", name)
	}
	return t, nil
}

// StatInfo returns the statistics for the table called name. Statistics
// are recomputed when the table has grown since they were last taken.
func (c *Catalog) StatInfo(name string) (*StatInfo, error) {
	t, err := c.Table(name)
	if err != nil {
		return nil, err
	}
	si, ok := c.stats[name]
	if !ok || si.RecordsOutput() != t.Len() {
		si = NewStatInfo(t)
		c.stats[name] = si
	}
	return si, nil
}

// Names returns the registered table names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
