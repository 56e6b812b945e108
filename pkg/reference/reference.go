// Package reference implements a deliberately naive, independent
// evaluator over the same rule model the indexed engine compiles — no
// automatons, no candidate counters, just a direct per-rule, per-condition
// scan. It shares no code with pkg/engine and exists solely so tests can
// cross-check the indexed engine's output against an implementation that
// cannot share a bug with it.
package reference

import (
	"sort"

	"github.com/omirandette/rule-engine/pkg/rule"
)

// Evaluate returns the result of the highest-priority rule (ties broken by
// definition order) whose conditions all hold against url, and true. If no
// rule matches it returns ("", false).
func Evaluate(rules []rule.Rule, url rule.ParsedURL) (string, bool) {
	ordered := make([]rule.Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	for _, r := range ordered {
		if matches(r, url) {
			return r.Result, true
		}
	}
	return "", false
}

func matches(r rule.Rule, url rule.ParsedURL) bool {
	for _, c := range r.Conditions {
		value := url.Part(c.Part)
		hit := c.Operator.Match(value, c.Value)
		if c.Negated {
			hit = !hit
		}
		if !hit {
			return false
		}
	}
	return true
}
