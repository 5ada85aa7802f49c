package config

import (
	"github.com/pingcap/errors"
	"github.com/yashagw/craneqe/internal/record"
)

// Operator names accepted in Node.Op.
const (
	OpTable   = "table"
	OpFilter  = "filter"
	OpProject = "project"
	OpJoin    = "join"
)

// Node is one operator of the query tree.
type Node struct {
	Op        string     `yaml:"op"`
	Table     string     `yaml:"table,omitempty"`
	Condition *Condition `yaml:"condition,omitempty"`
	Attrs     []string   `yaml:"attrs,omitempty"`
	Child     *Node      `yaml:"child,omitempty"`
	Outer     *Node      `yaml:"outer,omitempty"`
	Inner     *Node      `yaml:"inner,omitempty"`
}

// Condition compares Lhs with either a literal Value or the attribute
// RhsAttr.
type Condition struct {
	Lhs     string `yaml:"lhs"`
	Op      string `yaml:"op"`
	Value   any    `yaml:"value,omitempty"`
	RhsAttr string `yaml:"rhs_attr,omitempty"`
}

// CompOp parses Op.
func (c *Condition) CompOp() (record.CompOp, error) {
	return record.ParseCompOp(c.Op)
}

func (c *Condition) validate(path string) error {
	if c.Lhs == "" {
		return errors.Errorf("%s: condition has no lhs", path)
	}
	if _, err := c.CompOp(); err != nil {
		return errors.Annotatef(err, "%s", path)
	}
	if (c.Value == nil) == (c.RhsAttr == "") {
		return errors.Errorf("%s: condition needs exactly one of value and rhs_attr", path)
	}
	return nil
}

func (n *Node) validate(path string, tables map[string]bool) error {
	need := func(child *Node, name string) error {
		if child == nil {
			return errors.Errorf("%s: %s node needs %s", path, n.Op, name)
		}
		return child.validate(path+"."+name, tables)
	}

	switch n.Op {
	case OpTable:
		if !tables[n.Table] {
			return errors.Errorf("%s: unknown table %q", path, n.Table)
		}
		return nil
	case OpFilter:
		if n.Condition == nil {
			return errors.Errorf("%s: filter needs a condition", path)
		}
		if err := n.Condition.validate(path); err != nil {
			return err
		}
		return need(n.Child, "child")
	case OpProject:
		return need(n.Child, "child")
	case OpJoin:
		if n.Condition == nil {
			return errors.Errorf("%s: join needs a condition", path)
		}
		if err := n.Condition.validate(path); err != nil {
			return err
		}
		if err := need(n.Outer, "outer"); err != nil {
			return err
		}
		return need(n.Inner, "inner")
	}
	return errors.Errorf("%s: unknown op %q", path, n.Op)
}
