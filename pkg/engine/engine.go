// Package engine implements the rule engine: a compiled, priority-ordered
// view over a rule set that evaluates a parsed URL against every rule's
// conditions using the index package's candidate structures, returning the
// first (highest-priority, earliest-defined) rule's result.
package engine

import (
	"sort"

	"github.com/omirandette/rule-engine/pkg/index"
	"github.com/omirandette/rule-engine/pkg/rule"
)

// sortedEntry is one compiled rule: its dense index-package rule ID, its
// precomputed allNegated flag, and the rule itself.
type sortedEntry struct {
	rule       rule.Rule
	ruleID     int
	allNegated bool
}

// Engine evaluates parsed URLs against a compiled rule set, returning the
// result of the highest-priority matching rule (ties broken by definition
// order). Evaluate is safe for concurrent use across goroutines as long as
// each goroutine supplies its own *index.QueryContext — the engine itself
// holds no mutable per-query state.
type Engine struct {
	index   *index.RuleIndex
	entries []sortedEntry
}

// New compiles rules into an Engine. Rules are stable-sorted by priority
// descending; rules with equal priority keep their relative definition
// order, since sort.SliceStable preserves input order among equal keys and
// rule.Rule.DefinitionIndex was assigned by the loader in that same order.
func New(rules []rule.Rule) *Engine {
	idx := index.NewRuleIndex(rules)

	entries := make([]sortedEntry, len(rules))
	for i, r := range rules {
		entries[i] = sortedEntry{
			rule:       r,
			ruleID:     i,
			allNegated: idx.AllNegated(i),
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].rule.Priority > entries[j].rule.Priority
	})

	return &Engine{index: idx, entries: entries}
}

// NewQueryContext allocates a QueryContext sized for this engine's compiled
// rule set. Callers evaluating from multiple goroutines should allocate one
// per goroutine and reuse it across calls to Evaluate.
func (e *Engine) NewQueryContext() *index.QueryContext {
	return index.NewQueryContext(e.index.RuleCount())
}

// Evaluate returns the result of the highest-priority rule whose
// conditions all hold against url, and true. If no rule matches it returns
// ("", false). ctx is reset at the start of every call, so the same context
// can be reused across an unbounded sequence of calls without leaking
// state between them.
func (e *Engine) Evaluate(url rule.ParsedURL, ctx *index.QueryContext) (string, bool) {
	ctx.Reset()
	e.index.Query(url, ctx)

	for _, entry := range e.entries {
		if !entry.allNegated && !ctx.IsCandidate(entry.ruleID) {
			continue
		}
		if !ctx.AllSatisfied(entry.ruleID, e.index.NonNegatedCount(entry.ruleID)) {
			continue
		}
		if negatedConditionsHold(entry.rule, url) {
			return entry.rule.Result, true
		}
	}
	return "", false
}

// negatedConditionsHold verifies a rule's negated conditions directly
// against url — these never appear in any index, since a negated
// condition's absence, not its presence, is what the rule needs. This is a
// per-rule, per-candidate check, so it runs far less often than the
// indexed non-negated path and pays the cost of direct string comparison
// rather than another index structure.
func negatedConditionsHold(r rule.Rule, url rule.ParsedURL) bool {
	for _, c := range r.Conditions {
		if !c.Negated {
			continue
		}
		if c.Operator.Match(url.Part(c.Part), c.Value) {
			return false
		}
	}
	return true
}
