package index

// noState marks a not-yet-assigned transition during the build phase.
const noState = -1

// SubstringAutomaton is an Aho–Corasick DFA answering "which inserted
// patterns occur anywhere in input X?" in O(len(X)).
//
// Build proceeds in four phases: insert patterns as a trie, initialize
// depth-one failure links, compute the rest by BFS while merging output
// lists along failure links, then complete the goto table so every state
// has an explicit transition for every byte. After Build, Search performs
// no failure-link chasing — one array lookup per input byte advances the
// DFA.
type SubstringAutomaton struct {
	// Build-phase state (nil'd out after Build).
	gotoRows    [][asciiSize]int32
	extended    []map[byte]int32
	buildOutput [][]int32

	// Search-phase state (populated by Build).
	goto_  [][asciiSize]int32
	ext    []map[byte]int32
	output [][]int32

	emptyTags []int32
	built     bool
	patterns  int
}

// NewSubstringAutomaton returns an empty automaton with the root state
// allocated, ready for Insert.
func NewSubstringAutomaton() *SubstringAutomaton {
	a := &SubstringAutomaton{}
	a.allocateState()
	return a
}

// IsEmpty reports whether no patterns have been inserted, before or after
// Build.
func (a *SubstringAutomaton) IsEmpty() bool {
	return a.patterns == 0
}

func (a *SubstringAutomaton) allocateState() int {
	id := len(a.gotoRows)
	var row [asciiSize]int32
	for i := range row {
		row[i] = noState
	}
	a.gotoRows = append(a.gotoRows, row)
	a.extended = append(a.extended, nil)
	a.buildOutput = append(a.buildOutput, nil)
	return id
}

// Insert adds pattern, tagged with tag, to the automaton. Must be called
// before Build; the empty pattern is recorded separately and replayed at
// the start of every Search call.
func (a *SubstringAutomaton) Insert(pattern string, tag int) {
	if a.built {
		panic("index: cannot Insert after Build")
	}
	a.patterns++
	if pattern == "" {
		a.emptyTags = append(a.emptyTags, int32(tag))
		return
	}
	state := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		next := a.getGoto(state, c)
		if next == noState {
			next = int32(a.allocateState())
			a.setGoto(state, c, next)
		}
		state = int(next)
	}
	a.buildOutput[state] = append(a.buildOutput[state], int32(tag))
}

func (a *SubstringAutomaton) getGoto(state int, c byte) int32 {
	if c < asciiSize {
		return a.gotoRows[state][c]
	}
	ext := a.extended[state]
	if ext == nil {
		return noState
	}
	if v, ok := ext[c]; ok {
		return v
	}
	return noState
}

func (a *SubstringAutomaton) setGoto(state int, c byte, target int32) {
	if c < asciiSize {
		a.gotoRows[state][c] = target
		return
	}
	if a.extended[state] == nil {
		a.extended[state] = make(map[byte]int32, 4)
	}
	a.extended[state][c] = target
}

// Build computes failure links and completes the DFA transition table, then
// flattens the build-phase slices into the search-phase layout. No further
// Insert calls are allowed afterward.
func (a *SubstringAutomaton) Build() {
	if a.built {
		panic("index: Build called more than once")
	}
	n := len(a.gotoRows)
	failure := make([]int32, n)
	queue := make([]int32, 0, n)

	a.initDepthOne(failure, &queue)
	a.computeFailureLinks(failure, &queue)
	a.completeDFA(failure)
	a.flatten()
}

func (a *SubstringAutomaton) initDepthOne(failure []int32, queue *[]int32) {
	rootRow := &a.gotoRows[0]
	for c := 0; c < asciiSize; c++ {
		child := rootRow[c]
		if child == noState {
			rootRow[c] = 0
		} else {
			failure[child] = 0
			*queue = append(*queue, child)
		}
	}
	for c, child := range a.extended[0] {
		_ = c
		failure[child] = 0
		*queue = append(*queue, child)
	}
}

func (a *SubstringAutomaton) computeFailureLinks(failure []int32, queue *[]int32) {
	for head := 0; head < len(*queue); head++ {
		current := (*queue)[head]
		row := a.gotoRows[current]
		for c := 0; c < asciiSize; c++ {
			child := row[c]
			if child == noState {
				continue
			}
			failure[child] = a.followFailure(failure, current, byte(c))
			a.mergeOutput(child, failure[child])
			*queue = append(*queue, child)
		}
		for c, child := range a.extended[current] {
			failure[child] = a.followFailure(failure, current, c)
			a.mergeOutput(child, failure[child])
			*queue = append(*queue, child)
		}
	}
}

// followFailure walks the failure chain from parent to find the deepest
// state that has a goto transition for c, returning that target (root if
// none exists).
func (a *SubstringAutomaton) followFailure(failure []int32, parent int32, c byte) int32 {
	state := failure[parent]
	for state != 0 && a.getGoto(int(state), c) == noState {
		state = failure[state]
	}
	target := a.getGoto(int(state), c)
	if target == noState {
		return 0
	}
	return target
}

func (a *SubstringAutomaton) mergeOutput(state, failState int32) {
	failOut := a.buildOutput[failState]
	if len(failOut) == 0 {
		return
	}
	a.buildOutput[state] = append(a.buildOutput[state], failOut...)
}

// completeDFA walks states in BFS order a second time, filling every
// missing transition from the (already-completed, by BFS ordering)
// failure state's row, so Search never needs to chase a failure link.
func (a *SubstringAutomaton) completeDFA(failure []int32) {
	queue := make([]int32, 0, len(a.gotoRows))
	rootRow := &a.gotoRows[0]
	for c := 0; c < asciiSize; c++ {
		if rootRow[c] != 0 {
			queue = append(queue, rootRow[c])
		}
	}
	for _, child := range a.extended[0] {
		if child != 0 {
			queue = append(queue, child)
		}
	}

	for head := 0; head < len(queue); head++ {
		current := queue[head]
		row := &a.gotoRows[current]
		failRow := &a.gotoRows[failure[current]]

		for c := 0; c < asciiSize; c++ {
			if row[c] == noState {
				row[c] = failRow[c]
			} else {
				queue = append(queue, row[c])
			}
		}

		// Enqueue original extended children before inheriting from the
		// failure state, so inherited transitions are not re-enqueued
		// (which would otherwise loop forever).
		for _, child := range a.extended[current] {
			if child != 0 {
				queue = append(queue, child)
			}
		}
		a.inheritExtended(current, failure[current])
	}
}

func (a *SubstringAutomaton) inheritExtended(state, failState int32) {
	failExt := a.extended[failState]
	if failExt == nil {
		return
	}
	ext := a.extended[state]
	if ext == nil {
		ext = make(map[byte]int32, 4)
		a.extended[state] = ext
	}
	for c, target := range failExt {
		if _, exists := ext[c]; !exists {
			ext[c] = target
		}
	}
}

func (a *SubstringAutomaton) flatten() {
	a.goto_ = a.gotoRows
	a.ext = a.extended
	a.output = a.buildOutput
	a.gotoRows = nil
	a.extended = nil
	a.buildOutput = nil
	a.built = true
}

// Search scans text and invokes sink once per (pattern, tag) occurrence —
// once for every inserted pattern that appears anywhere in text, including
// once per call for every empty-pattern insertion. Build must have been
// called first.
func (a *SubstringAutomaton) Search(text string, sink func(tag int)) {
	if !a.built {
		panic("index: Search called before Build")
	}
	for _, v := range a.emptyTags {
		sink(int(v))
	}
	state := int32(0)
	for i := 0; i < len(text); i++ {
		state = a.nextState(state, text[i])
		for _, tag := range a.output[state] {
			sink(int(tag))
		}
	}
}

func (a *SubstringAutomaton) nextState(state int32, c byte) int32 {
	if c < asciiSize {
		return a.goto_[state][c]
	}
	if ext := a.ext[state]; ext != nil {
		if next, ok := ext[c]; ok {
			return next
		}
	}
	return 0
}
