package rule

import "errors"

// ErrNoConditions is returned when a rule in the spec has zero conditions.
// spec.md §9 leaves this behavior as an open question; this implementation
// rejects such rules at load time rather than treating them as vacuously
// matching every URL (see DESIGN.md for the full rationale).
var ErrNoConditions = errors.New("rule: rule has no conditions")

// ErrUnknownPart is returned when a condition names a part outside
// host/path/file/query.
var ErrUnknownPart = errors.New("rule: unknown part")

// ErrUnknownOperator is returned when a condition names an operator
// outside equals/contains/starts_with/ends_with.
var ErrUnknownOperator = errors.New("rule: unknown operator")
