package rule

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the decoder used by LoadRules.
type Format int

const (
	// FormatAuto is decoded as JSON by LoadRules. Extension sniffing is done
	// by LoadRulesFile, which picks FormatJSON or FormatYAML itself.
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

// rawCondition mirrors the wire shape of a condition object (spec.md §6):
// part, operator, value, and an optional negated flag defaulting to false.
type rawCondition struct {
	Part     string `json:"part" yaml:"part"`
	Operator string `json:"operator" yaml:"operator"`
	Value    string `json:"value" yaml:"value"`
	Negated  bool   `json:"negated" yaml:"negated"`
}

// rawRule mirrors the wire shape of a rule object (spec.md §6).
type rawRule struct {
	Name       string         `json:"name" yaml:"name"`
	Priority   int            `json:"priority" yaml:"priority"`
	Conditions []rawCondition `json:"conditions" yaml:"conditions"`
	Result     string         `json:"result" yaml:"result"`
}

// LoadRules decodes a rule specification document — a bare array of rule
// objects — into []Rule, assigning each rule's DefinitionIndex as its
// position in the decoded array.
func LoadRules(data []byte, format Format) ([]Rule, error) {
	var raws []rawRule
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("rule: decode yaml: %w", err)
		}
	case FormatJSON, FormatAuto:
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("rule: decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("rule: unknown format %v", format)
	}

	rules := make([]Rule, 0, len(raws))
	for i, raw := range raws {
		r, err := translate(raw, i)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%q): %w", i, raw.Name, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func translate(raw rawRule, index int) (Rule, error) {
	if len(raw.Conditions) == 0 {
		return Rule{}, ErrNoConditions
	}
	conditions := make([]Condition, 0, len(raw.Conditions))
	for i, rc := range raw.Conditions {
		part, ok := ParsePart(rc.Part)
		if !ok {
			return Rule{}, fmt.Errorf("condition %d: %w: %q", i, ErrUnknownPart, rc.Part)
		}
		op, ok := ParseOperator(rc.Operator)
		if !ok {
			return Rule{}, fmt.Errorf("condition %d: %w: %q", i, ErrUnknownOperator, rc.Operator)
		}
		conditions = append(conditions, Condition{
			Part:     part,
			Operator: op,
			Value:    rc.Value,
			Negated:  rc.Negated,
		})
	}
	return Rule{
		Name:            raw.Name,
		Priority:        raw.Priority,
		Conditions:      conditions,
		Result:          raw.Result,
		DefinitionIndex: index,
	}, nil
}

// LoadRulesFile reads a rule specification from disk, sniffing the format
// from the file extension (.yml/.yaml → YAML, everything else → JSON) —
// the same extension-dispatch convention the teacher's directory loader
// uses to tell rule files apart from everything else on disk.
func LoadRulesFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rule: read %s: %w", path, err)
	}
	format := FormatJSON
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".yaml") {
		format = FormatYAML
	}
	rules, err := LoadRules(data, format)
	if err != nil {
		return nil, fmt.Errorf("rule: load %s: %w", path, err)
	}
	return rules, nil
}
