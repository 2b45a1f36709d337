package personality

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// AnswerSet maps question ids to the chosen option. Partial sets are valid
// in-progress state; a complete set has one entry per question in the bank.
// It encodes to JSON as an object keyed by decimal id.
type AnswerSet map[int]Choice

// Complete reports whether every question in the bank has an answer and no
// answer refers to a question outside the bank.
func (a AnswerSet) Complete(bank *Bank) bool {
	return len(a.Missing(bank)) == 0 && len(a.Unknown(bank)) == 0
}

// Missing returns ids of bank questions without a valid answer, in bank order.
func (a AnswerSet) Missing(bank *Bank) []int {
	var missing []int
	for _, q := range bank.questions {
		if c, ok := a[q.ID]; !ok || !c.Valid() {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Unknown returns answered ids that the bank does not contain, ascending.
func (a AnswerSet) Unknown(bank *Bank) []int {
	var unknown []int
	for id := range a {
		if _, ok := bank.byID[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	slices.Sort(unknown)
	return unknown
}

// Clone returns an independent copy. A nil set clones to an empty set.
func (a AnswerSet) Clone() AnswerSet {
	if a == nil {
		return AnswerSet{}
	}
	return maps.Clone(a)
}

// String renders the set as "1=A,2=B,..." in ascending id order.
func (a AnswerSet) String() string {
	ids := slices.Sorted(maps.Keys(a))
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d=%s", id, a[id])
	}
	return strings.Join(parts, ",")
}

// ParseAnswers parses the "1=A,2=B" form produced by String. Whitespace
// around entries is ignored; a repeated id keeps the last value.
func ParseAnswers(s string) (AnswerSet, error) {
	out := AnswerSet{}
	s = strings.TrimSpace(s)
	if s == "" {
		return out, nil
	}
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		idStr, choiceStr, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q: expected id=choice", entry)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			return nil, fmt.Errorf("answer %q: invalid question id: %w", entry, err)
		}
		c, err := ParseChoice(choiceStr)
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", entry, err)
		}
		out[id] = c
	}
	return out, nil
}
