package plan

import (
	"log/slog"

	"github.com/pingcap/errors"
	"github.com/yashagw/craneqe/internal/config"
	"github.com/yashagw/craneqe/internal/query"
	"github.com/yashagw/craneqe/internal/record"
	"github.com/yashagw/craneqe/internal/table"
)

// LoadCatalog creates every table of cfg and inserts its rows.
func LoadCatalog(tables []config.Table) (*table.Catalog, error) {
	catalog := table.NewCatalog()
	for i := range tables {
		def := &tables[i]
		schema, err := def.Schema()
		if err != nil {
			return nil, err
		}
		rows, err := def.Values()
		if err != nil {
			return nil, err
		}
		t, err := catalog.CreateTable(def.Name, schema)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if err := t.Insert(row...); err != nil {
				return nil, err
			}
		}
	}
	return catalog, nil
}

// Builder turns a configured query tree into a Plan. Nodes map one to one
// onto plans; nothing is reordered.
type Builder struct {
	catalog   *table.Catalog
	joinPages int
}

func NewBuilder(catalog *table.Catalog, joinPages int) *Builder {
	return &Builder{
		catalog:   catalog,
		joinPages: joinPages,
	}
}

func (b *Builder) Build(node *config.Node) (Plan, error) {
	if node == nil {
		return nil, errors.New("empty query")
	}
	switch node.Op {
	case config.OpTable:
		return NewTablePlan(node.Table, b.catalog)

	case config.OpFilter:
		child, err := b.Build(node.Child)
		if err != nil {
			return nil, err
		}
		cond, err := buildCondition(node.Condition, child.Schema())
		if err != nil {
			return nil, err
		}
		if !cond.AppliesTo(child.Schema()) {
			slog.Debug("[PLAN] filter condition names fields missing from its input and matches nothing",
				"condition", cond.String(), "schema", child.Schema().String())
		}
		return NewFilterPlan(child, cond), nil

	case config.OpProject:
		child, err := b.Build(node.Child)
		if err != nil {
			return nil, err
		}
		return NewProjectPlan(child, node.Attrs), nil

	case config.OpJoin:
		outer, err := b.Build(node.Outer)
		if err != nil {
			return nil, err
		}
		inner, err := b.Build(node.Inner)
		if err != nil {
			return nil, err
		}
		cond, err := buildCondition(node.Condition, outer.Schema())
		if err != nil {
			return nil, err
		}
		return NewJoinPlan(outer, inner, cond, b.joinPages), nil
	}
	return nil, errors.Errorf("unknown op %q", node.Op)
}

// buildCondition converts a configured condition. A literal takes the type
// of the left-hand attribute in schema, or the type of the YAML scalar when
// the attribute is absent. Declared VarChar lengths do not bound literals.
func buildCondition(c *config.Condition, schema *record.Schema) (query.Condition, error) {
	if c == nil {
		return query.Condition{}, errors.New("missing condition")
	}
	op, err := c.CompOp()
	if err != nil {
		return query.Condition{}, err
	}
	if c.RhsAttr != "" {
		return query.NewAttrCondition(c.Lhs, op, c.RhsAttr), nil
	}

	attr, _, ok := schema.Find(c.Lhs)
	if !ok {
		attr = record.Attribute{Name: c.Lhs}
		switch c.Value.(type) {
		case int:
			attr.Type = record.Int
		case float64:
			attr.Type = record.Real
		case string:
			attr.Type = record.VarChar
		default:
			return query.Condition{}, errors.Errorf("condition on %q: unsupported literal %T", c.Lhs, c.Value)
		}
	}
	attr.Length = 0
	v, err := config.ToValue(attr, c.Value)
	if err != nil {
		return query.Condition{}, errors.Annotatef(err, "condition on %q", c.Lhs)
	}
	return query.NewValueCondition(c.Lhs, op, v), nil
}
