package rule

import (
	"errors"
	"os"
	"testing"
)

const validJSON = `[
	{
		"name": "block-evil",
		"priority": 10,
		"result": "BLOCK",
		"conditions": [
			{"part": "host", "operator": "equals", "value": "evil.com"}
		]
	},
	{
		"name": "allow-safe",
		"priority": 5,
		"result": "ALLOW",
		"conditions": [
			{"part": "path", "operator": "starts_with", "value": "/safe"},
			{"part": "query", "operator": "contains", "value": "token", "negated": true}
		]
	}
]`

func TestLoadRulesJSON(t *testing.T) {
	rules, err := LoadRules([]byte(validJSON), FormatJSON)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("len(rules) = %d, want 2", len(rules))
	}
	if rules[0].Name != "block-evil" || rules[0].DefinitionIndex != 0 {
		t.Errorf("rules[0] = %+v", rules[0])
	}
	if rules[1].DefinitionIndex != 1 {
		t.Errorf("rules[1].DefinitionIndex = %d, want 1", rules[1].DefinitionIndex)
	}
	if len(rules[1].Conditions) != 2 || !rules[1].Conditions[1].Negated {
		t.Errorf("rules[1].Conditions = %+v", rules[1].Conditions)
	}
}

const validYAML = `
- name: block-evil
  priority: 10
  result: BLOCK
  conditions:
    - part: host
      operator: equals
      value: evil.com
`

func TestLoadRulesYAML(t *testing.T) {
	rules, err := LoadRules([]byte(validYAML), FormatYAML)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 1 || rules[0].Name != "block-evil" {
		t.Fatalf("rules = %+v", rules)
	}
}

func TestLoadRulesRejectsNoConditions(t *testing.T) {
	data := `[{"name": "empty", "priority": 1, "result": "X", "conditions": []}]`
	_, err := LoadRules([]byte(data), FormatJSON)
	if !errors.Is(err, ErrNoConditions) {
		t.Fatalf("err = %v, want ErrNoConditions", err)
	}
}

func TestLoadRulesRejectsUnknownPart(t *testing.T) {
	data := `[{"name": "bad", "priority": 1, "result": "X", "conditions": [{"part": "fragment", "operator": "equals", "value": "x"}]}]`
	_, err := LoadRules([]byte(data), FormatJSON)
	if !errors.Is(err, ErrUnknownPart) {
		t.Fatalf("err = %v, want ErrUnknownPart", err)
	}
}

func TestLoadRulesRejectsUnknownOperator(t *testing.T) {
	data := `[{"name": "bad", "priority": 1, "result": "X", "conditions": [{"part": "host", "operator": "regex", "value": "x"}]}]`
	_, err := LoadRules([]byte(data), FormatJSON)
	if !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("err = %v, want ErrUnknownOperator", err)
	}
}

func TestLoadRulesFileSniffsExtension(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/rules.yaml"
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	rules, err := LoadRulesFile(path)
	if err != nil {
		t.Fatalf("LoadRulesFile: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("len(rules) = %d, want 1", len(rules))
	}
}
