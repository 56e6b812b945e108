package engine

import (
	"testing"

	"github.com/omirandette/rule-engine/pkg/rule"
)

// rule2 and ruleDef are compact scenario-table builders used only by
// scenarios_test.go, to keep the table close to spec.md §8's literal shape.
type rule2 struct {
	part    string
	op      string
	value   string
	negated bool
}

type ruleDef struct {
	priority   int
	result     string
	conditions []rule2
}

func buildRules(t *testing.T, defs []ruleDef) []rule.Rule {
	t.Helper()
	rules := make([]rule.Rule, len(defs))
	for i, d := range defs {
		conditions := make([]rule.Condition, len(d.conditions))
		for j, c := range d.conditions {
			part, ok := rule.ParsePart(c.part)
			if !ok {
				t.Fatalf("unknown part %q", c.part)
			}
			op, ok := rule.ParseOperator(c.op)
			if !ok {
				t.Fatalf("unknown operator %q", c.op)
			}
			conditions[j] = rule.Condition{Part: part, Operator: op, Value: c.value, Negated: c.negated}
		}
		rules[i] = rule.Rule{
			Priority:        d.priority,
			Result:          d.result,
			Conditions:      conditions,
			DefinitionIndex: i,
		}
	}
	return rules
}
