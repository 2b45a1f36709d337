package personality

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedBank wraps every construction failure of a Bank.
var ErrMalformedBank = errors.New("malformed question bank")

// Bank is an ordered, immutable set of questions. Order is used for
// presentation and for the fixed iteration order of scoring.
type Bank struct {
	questions []Question
	byID      map[int]int
	perPair   int
}

// NewBank validates the questions and builds a Bank. It rejects an empty
// bank, invalid questions, duplicate ids and an unequal number of questions
// across the four pairs.
func NewBank(questions ...Question) (*Bank, error) {
	if err := validateBank(questions); err != nil {
		return nil, err
	}

	b := &Bank{
		questions: make([]Question, len(questions)),
		byID:      make(map[int]int, len(questions)),
		perPair:   len(questions) / len(pairAxes),
	}
	copy(b.questions, questions)
	for i, q := range b.questions {
		b.byID[q.ID] = i
	}
	return b, nil
}

// MustBank is NewBank for static content; it panics on a malformed bank so
// the defect surfaces at startup instead of corrupting scores.
func MustBank(questions ...Question) *Bank {
	b, err := NewBank(questions...)
	if err != nil {
		panic(err)
	}
	return b
}

// validateBank performs all structural checks and reports every problem found.
func validateBank(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrMalformedBank)
	}

	var errs []string
	seen := make(map[int]bool, len(questions))
	counts := make(map[Pair]int, len(pairAxes))

	for _, q := range questions {
		if err := q.Validate(); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question id %d", q.ID))
		}
		seen[q.ID] = true
		counts[q.Pair()]++
	}

	if len(errs) == 0 {
		want := counts[PairEI]
		for _, p := range Pairs() {
			if counts[p] == 0 || counts[p] != want {
				errs = append(errs, fmt.Sprintf("unbalanced pairs: %s", formatPairCounts(counts)))
				break
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrMalformedBank, strings.Join(errs, "; "))
	}
	return nil
}

func formatPairCounts(counts map[Pair]int) string {
	parts := make([]string, 0, len(pairAxes))
	for _, p := range Pairs() {
		parts = append(parts, fmt.Sprintf("%s=%d", p, counts[p]))
	}
	return strings.Join(parts, " ")
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// At returns the question at presentation index i.
func (b *Bank) At(i int) Question {
	return b.questions[i]
}

// Questions returns a copy of the questions in presentation order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Lookup finds a question by id.
func (b *Bank) Lookup(id int) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// IndexOf returns the presentation index of the question with the given id.
func (b *Bank) IndexOf(id int) (int, bool) {
	i, ok := b.byID[id]
	return i, ok
}

// IDs returns the question ids in presentation order.
func (b *Bank) IDs() []int {
	ids := make([]int, len(b.questions))
	for i, q := range b.questions {
		ids[i] = q.ID
	}
	return ids
}

// PerPair returns how many questions measure each pair.
func (b *Bank) PerPair() int {
	return b.perPair
}

// ByPair returns the questions measuring p, in presentation order.
func (b *Bank) ByPair(p Pair) []Question {
	var out []Question
	for _, q := range b.questions {
		if q.Pair() == p {
			out = append(out, q)
		}
	}
	return out
}
