package plan

import (
	"fmt"
	"strings"

	stack "github.com/golang-collections/collections/stack"
	pair "github.com/notEpsilon/go-pair"
)

// Explain renders the plan tree one node per line, children indented under
// their parent and the outer side of a join before the inner side.
func Explain(root Plan) string {
	var sb strings.Builder

	// stack<pair<Plan, depth>>
	todo := stack.New()
	todo.Push(pair.Pair[Plan, int]{First: root, Second: 0})
	for todo.Len() > 0 {
		item := todo.Pop().(pair.Pair[Plan, int])
		p, depth := item.First, item.Second

		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(describe(p))
		sb.WriteString(fmt.Sprintf(" (rows=%d blocks=%d)\n", p.RecordsOutput(), p.BlocksAccessed()))

		children := childrenOf(p)
		for i := len(children) - 1; i >= 0; i-- {
			todo.Push(pair.Pair[Plan, int]{First: children[i], Second: depth + 1})
		}
	}
	return sb.String()
}

func describe(p Plan) string {
	switch n := p.(type) {
	case *TablePlan:
		return fmt.Sprintf("Table %s %s", n.TableName(), n.Schema())
	case *FilterPlan:
		return fmt.Sprintf("Filter %s", n.Condition())
	case *ProjectPlan:
		return fmt.Sprintf("Project %s", n.Schema())
	case *JoinPlan:
		return fmt.Sprintf("NestedLoopJoin %s pages=%d", n.Condition(), n.NumPages())
	}
	return fmt.Sprintf("%T", p)
}

func childrenOf(p Plan) []Plan {
	switch n := p.(type) {
	case *FilterPlan:
		return []Plan{n.p}
	case *ProjectPlan:
		return []Plan{n.p}
	case *JoinPlan:
		return []Plan{n.outer, n.inner}
	}
	return nil
}
