package index

import (
	"reflect"
	"sort"
	"testing"
)

func searchCollect(a *SubstringAutomaton, text string) []int {
	var got []int
	a.Search(text, func(tag int) { got = append(got, tag) })
	sort.Ints(got)
	return got
}

func TestSubstringAutomatonBasic(t *testing.T) {
	a := NewSubstringAutomaton()
	a.Insert("he", 1)
	a.Insert("she", 2)
	a.Insert("his", 3)
	a.Insert("hers", 4)
	a.Build()

	got := searchCollect(a, "ushers")
	want := []int{1, 2, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search(ushers) = %v, want %v", got, want)
	}
}

func TestSubstringAutomatonOverlappingAndRepeatedOccurrences(t *testing.T) {
	a := NewSubstringAutomaton()
	a.Insert("aa", 1)
	a.Build()

	// "aaaa" contains "aa" three times as overlapping occurrences: positions
	// 0, 1, and 2.
	got := searchCollect(a, "aaaa")
	want := []int{1, 1, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search(aaaa) = %v, want %v", got, want)
	}
}

func TestSubstringAutomatonNoMatch(t *testing.T) {
	a := NewSubstringAutomaton()
	a.Insert("xyz", 1)
	a.Build()

	got := searchCollect(a, "abcdef")
	if len(got) != 0 {
		t.Errorf("Search(abcdef) = %v, want empty", got)
	}
}

func TestSubstringAutomatonEmptyPattern(t *testing.T) {
	a := NewSubstringAutomaton()
	a.Insert("", 1)
	a.Insert("x", 2)
	a.Build()

	got := searchCollect(a, "y")
	want := []int{1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search(y) = %v, want %v", got, want)
	}
}

func TestSubstringAutomatonNonASCII(t *testing.T) {
	a := NewSubstringAutomaton()
	a.Insert("café", 1)
	a.Build()

	got := searchCollect(a, "le café noir")
	want := []int{1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search = %v, want %v", got, want)
	}
}

func TestSubstringAutomatonInsertAfterBuildPanics(t *testing.T) {
	a := NewSubstringAutomaton()
	a.Build()
	defer func() {
		if recover() == nil {
			t.Error("expected panic inserting after Build")
		}
	}()
	a.Insert("x", 1)
}

func TestSubstringAutomatonSearchBeforeBuildPanics(t *testing.T) {
	a := NewSubstringAutomaton()
	a.Insert("x", 1)
	defer func() {
		if recover() == nil {
			t.Error("expected panic searching before Build")
		}
	}()
	a.Search("x", func(int) {})
}

func TestSubstringAutomatonIsEmpty(t *testing.T) {
	a := NewSubstringAutomaton()
	if !a.IsEmpty() {
		t.Error("new automaton should be empty")
	}
}

func TestSubstringAutomatonFreshBuildNoEmissions(t *testing.T) {
	a := NewSubstringAutomaton()
	a.Build()

	got := searchCollect(a, "anything at all, regardless of content")
	if len(got) != 0 {
		t.Errorf("Search on a pattern-free automaton = %v, want empty", got)
	}
}

func TestSubstringAutomatonOverlappingPatterns(t *testing.T) {
	a := NewSubstringAutomaton()
	a.Insert("a", 1)
	a.Insert("ab", 2)
	a.Insert("abc", 3)
	a.Insert("bc", 4)
	a.Insert("c", 5)
	a.Build()

	got := searchCollect(a, "abc")
	want := []int{1, 2, 3, 4, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search(abc) = %v, want %v", got, want)
	}
}
