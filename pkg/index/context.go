package index

// QueryContext is the per-goroutine scratch state a single Evaluate call
// needs: the candidate counters the automatons increment as they fire, and
// a reusable byte buffer for building reversed strings when probing the
// ends-with automatons. Go has no thread-local storage, so instead of a
// hidden per-thread pool (as in the original Java implementation) this
// context is passed explicitly — one per worker goroutine, allocated once
// and reused across every URL that goroutine evaluates.
type QueryContext struct {
	satisfied []int32
	dirty     []int32

	reverseBuf []byte
}

// NewQueryContext allocates a context sized for a rule index with ruleCount
// rules. The returned context is immediately usable and carries no
// allocations after the first few queries grow its scratch buffers to their
// working size.
func NewQueryContext(ruleCount int) *QueryContext {
	return &QueryContext{
		satisfied: make([]int32, ruleCount),
	}
}

// Reset clears every counter touched since the last Reset, in O(touched)
// rather than O(ruleCount) — it walks the dirty list recorded by Increment
// instead of zeroing the whole counter slice.
func (c *QueryContext) Reset() {
	for _, id := range c.dirty {
		c.satisfied[id] = 0
	}
	c.dirty = c.dirty[:0]
}

// Increment bumps the satisfied-condition counter for ruleID by one,
// recording ruleID as dirty the first time it is touched since the last
// Reset.
func (c *QueryContext) Increment(ruleID int) {
	if c.satisfied[ruleID] == 0 {
		c.dirty = append(c.dirty, int32(ruleID))
	}
	c.satisfied[ruleID]++
}

// Satisfied returns how many non-negated conditions of ruleID have matched
// since the last Reset.
func (c *QueryContext) Satisfied(ruleID int) int {
	return int(c.satisfied[ruleID])
}

// IsCandidate reports whether ruleID has matched at least one non-negated
// condition since the last Reset — the cheap pre-filter the rule engine
// uses before paying for AllSatisfied's full comparison.
func (c *QueryContext) IsCandidate(ruleID int) bool {
	return c.satisfied[ruleID] > 0
}

// AllSatisfied reports whether ruleID's non-negated condition counter has
// reached expected, the rule's total non-negated condition count. This is
// the counter-equality proof: a rule's non-negated conditions are all
// satisfied exactly when its counter equals that precomputed total.
func (c *QueryContext) AllSatisfied(ruleID, expected int) bool {
	return int(c.satisfied[ruleID]) == expected
}

// reversed returns reverse(s) using the context's scratch buffer, avoiding
// an allocation on every ends-with probe after the buffer has grown to its
// working size. The returned slice is only valid until the next call to
// reversed on this context.
func (c *QueryContext) reversed(s string) []byte {
	n := len(s)
	if cap(c.reverseBuf) < n {
		c.reverseBuf = make([]byte, n)
	}
	buf := c.reverseBuf[:n]
	for i := 0; i < n; i++ {
		buf[i] = s[n-1-i]
	}
	return buf
}
