package personality

import (
	"errors"
	"testing"
)

func TestDefaultBank_Shape(t *testing.T) {
	b := DefaultBank()
	if b.Len() != 20 {
		t.Fatalf("got %d questions, want 20", b.Len())
	}
	if b.PerPair() != 5 {
		t.Errorf("got %d per pair, want 5", b.PerPair())
	}
	for i, id := range b.IDs() {
		if id != i+1 {
			t.Errorf("position %d has id %d, want %d", i, id, i+1)
		}
	}
	for _, p := range Pairs() {
		if n := len(b.ByPair(p)); n != 5 {
			t.Errorf("pair %s has %d questions, want 5", p, n)
		}
	}
}

func TestDefaultBank_OptionsAreOpposingPoles(t *testing.T) {
	for _, q := range DefaultBank().Questions() {
		if err := q.Validate(); err != nil {
			t.Errorf("question %d: %v", q.ID, err)
		}
		if q.A.Axis != q.Pair().First() {
			t.Errorf("question %d: option A is %q, want %q", q.ID, q.A.Axis, q.Pair().First())
		}
	}
}

func TestBank_Lookup(t *testing.T) {
	b := DefaultBank()
	q, ok := b.Lookup(11)
	if !ok {
		t.Fatal("question 11 not found")
	}
	if q.Pair() != PairTF {
		t.Errorf("question 11 pair = %s, want T/F", q.Pair())
	}
	if _, ok := b.Lookup(99); ok {
		t.Error("lookup of unknown id succeeded")
	}
}

func TestBank_QuestionsReturnsCopy(t *testing.T) {
	b := DefaultBank()
	qs := b.Questions()
	qs[0].Text = "mutated"
	if b.At(0).Text == "mutated" {
		t.Error("Questions() exposed internal storage")
	}
}

func TestNewBank_RejectsEmpty(t *testing.T) {
	_, err := NewBank()
	if !errors.Is(err, ErrMalformedBank) {
		t.Fatalf("got %v, want ErrMalformedBank", err)
	}
}

func TestNewBank_RejectsMismatchedOptions(t *testing.T) {
	cases := []struct {
		name string
		a, b Axis
	}{
		{"different pairs", Extraversion, Intuition},
		{"same symbol", Thinking, Thinking},
		{"unknown axis", Judging, Axis("X")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qs := tieBankQuestions(1)
			qs[0].A.Axis = tc.a
			qs[0].B.Axis = tc.b
			if _, err := NewBank(qs...); !errors.Is(err, ErrMalformedBank) {
				t.Errorf("got %v, want ErrMalformedBank", err)
			}
		})
	}
}

func TestNewBank_RejectsImbalance(t *testing.T) {
	qs := tieBankQuestions(2)
	qs = append(qs, Question{
		ID:   100,
		Text: "extra",
		A:    Option{Text: "a", Axis: Extraversion},
		B:    Option{Text: "b", Axis: Introversion},
	})
	if _, err := NewBank(qs...); !errors.Is(err, ErrMalformedBank) {
		t.Errorf("got %v, want ErrMalformedBank", err)
	}
}

func TestNewBank_RejectsMissingPair(t *testing.T) {
	var qs []Question
	for _, q := range tieBankQuestions(1) {
		if q.Pair() != PairJP {
			qs = append(qs, q)
		}
	}
	if _, err := NewBank(qs...); !errors.Is(err, ErrMalformedBank) {
		t.Errorf("got %v, want ErrMalformedBank", err)
	}
}

func TestNewBank_RejectsDuplicateIDs(t *testing.T) {
	qs := tieBankQuestions(1)
	qs[1].ID = qs[0].ID
	if _, err := NewBank(qs...); !errors.Is(err, ErrMalformedBank) {
		t.Errorf("got %v, want ErrMalformedBank", err)
	}
}

func TestNewBank_RejectsNonPositiveID(t *testing.T) {
	qs := tieBankQuestions(1)
	qs[2].ID = 0
	if _, err := NewBank(qs...); err == nil {
		t.Error("expected error for zero id")
	}
}

func TestMustBank_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBank did not panic on empty bank")
		}
	}()
	MustBank()
}

func TestParseChoice(t *testing.T) {
	for in, want := range map[string]Choice{"A": ChoiceA, "a": ChoiceA, " b ": ChoiceB, "B": ChoiceB} {
		got, err := ParseChoice(in)
		if err != nil || got != want {
			t.Errorf("ParseChoice(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, in := range []string{"", "C", "AB", "1"} {
		if _, err := ParseChoice(in); !errors.Is(err, ErrInvalidChoice) {
			t.Errorf("ParseChoice(%q) error = %v, want ErrInvalidChoice", in, err)
		}
	}
}

// tieBankQuestions builds a balanced bank with n questions per pair.
func tieBankQuestions(n int) []Question {
	var qs []Question
	id := 1
	for _, p := range Pairs() {
		for i := 0; i < n; i++ {
			qs = append(qs, Question{
				ID:   id,
				Text: "q",
				A:    Option{Text: "first", Axis: p.First()},
				B:    Option{Text: "second", Axis: p.Second()},
			})
			id++
		}
	}
	return qs
}
