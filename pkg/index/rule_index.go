// Package index holds the three matching structures the rule engine
// compiles a rule set into — a prefix automaton, a substring (Aho–Corasick)
// automaton, and the rule index that fans a parsed URL's four parts out
// across per-part, per-operator instances of both — plus the per-query
// scratch state (QueryContext) those structures report candidates into.
package index

import "github.com/omirandette/rule-engine/pkg/rule"

// equalsKey identifies one (part, value) pair in the equals dispatch table.
type equalsKey struct {
	part  rule.Part
	value string
}

// RuleIndex is the compiled form of a rule set: every EQUALS condition
// becomes a hash map entry, every STARTS_WITH/ENDS_WITH condition becomes
// an insertion into a per-part PrefixAutomaton (ENDS_WITH inserts the
// reversed value), and every CONTAINS condition becomes an insertion into a
// per-part SubstringAutomaton. Querying a parsed URL fans its four parts
// out across all of these in O(total input length), incrementing the
// matching rules' counters in the caller-supplied QueryContext.
type RuleIndex struct {
	rules []rule.Rule

	equals map[equalsKey][]int32

	startsWith [rule.PartCount]*PrefixAutomaton
	endsWith   [rule.PartCount]*PrefixAutomaton
	contains   [rule.PartCount]*SubstringAutomaton

	nonNegatedCount []int32
	allNegated      []bool
}

// NewRuleIndex compiles rules into a RuleIndex. Rule IDs are dense and
// assigned by position in rules (rule i has ID i); callers that need to map
// a RuleIndex ID back to a rule.Rule should keep their own parallel slice.
func NewRuleIndex(rules []rule.Rule) *RuleIndex {
	idx := &RuleIndex{
		rules:           rules,
		equals:          make(map[equalsKey][]int32),
		nonNegatedCount: make([]int32, len(rules)),
		allNegated:      make([]bool, len(rules)),
	}

	for p := 0; p < rule.PartCount; p++ {
		idx.startsWith[p] = NewPrefixAutomaton()
		idx.endsWith[p] = NewPrefixAutomaton()
		idx.contains[p] = NewSubstringAutomaton()
	}

	for ruleID, r := range rules {
		idx.nonNegatedCount[ruleID] = int32(r.NonNegatedCount())
		idx.allNegated[ruleID] = r.AllNegated()

		for _, c := range r.Conditions {
			if c.Negated {
				continue
			}
			idx.insert(ruleID, c)
		}
	}

	for p := 0; p < rule.PartCount; p++ {
		idx.contains[p].Build()
	}

	return idx
}

func (idx *RuleIndex) insert(ruleID int, c rule.Condition) {
	switch c.Operator {
	case rule.Equals:
		key := equalsKey{part: c.Part, value: c.Value}
		idx.equals[key] = append(idx.equals[key], int32(ruleID))
	case rule.StartsWith:
		idx.startsWith[c.Part].Insert(c.Value, ruleID)
	case rule.EndsWith:
		idx.endsWith[c.Part].Insert(reverseString(c.Value), ruleID)
	case rule.Contains:
		idx.contains[c.Part].Insert(c.Value, ruleID)
	}
}

// RuleCount returns the number of rules this index was built from.
func (idx *RuleIndex) RuleCount() int {
	return len(idx.rules)
}

// NonNegatedCount returns ruleID's precomputed non-negated condition
// count — the value QueryContext.AllSatisfied compares its counter
// against.
func (idx *RuleIndex) NonNegatedCount(ruleID int) int {
	return int(idx.nonNegatedCount[ruleID])
}

// AllNegated reports whether ruleID has zero non-negated conditions. Such a
// rule never appears as a candidate in any query — the rule engine must
// consider it unconditionally.
func (idx *RuleIndex) AllNegated(ruleID int) bool {
	return idx.allNegated[ruleID]
}

// Query fans url's four parts out across the equals table and every
// per-part automaton, incrementing ctx's counter for every rule whose
// non-negated condition fires. ctx must have been allocated for this
// index's RuleCount (see NewQueryContext) and should have been Reset since
// its last use.
func (idx *RuleIndex) Query(url rule.ParsedURL, ctx *QueryContext) {
	for p := 0; p < rule.PartCount; p++ {
		part := rule.Part(p)
		value := url.Part(part)

		if ids, ok := idx.equals[equalsKey{part: part, value: value}]; ok {
			for _, id := range ids {
				ctx.Increment(int(id))
			}
		}

		if !idx.startsWith[p].IsEmpty() {
			idx.startsWith[p].FindPrefixesOf(value, func(ruleID int) {
				ctx.Increment(ruleID)
			})
		}

		if !idx.endsWith[p].IsEmpty() {
			reversed := ctx.reversed(value)
			idx.endsWith[p].FindPrefixesOfBytes(reversed, func(ruleID int) {
				ctx.Increment(ruleID)
			})
		}

		if !idx.contains[p].IsEmpty() {
			idx.contains[p].Search(value, func(ruleID int) {
				ctx.Increment(ruleID)
			})
		}
	}
}

func reverseString(s string) string {
	n := len(s)
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[i] = s[n-1-i]
	}
	return string(buf)
}
