package personality

import (
	"errors"
	"fmt"
	"strings"
)

// Choice is the option picked for a forced-choice question.
type Choice string

const (
	ChoiceA Choice = "A"
	ChoiceB Choice = "B"
)

// ErrInvalidChoice is returned when parsing anything other than A or B.
var ErrInvalidChoice = errors.New("choice must be A or B")

// ParseChoice parses "A" or "B" (case-insensitive, surrounding space ignored).
func ParseChoice(s string) (Choice, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return ChoiceA, nil
	case "B":
		return ChoiceB, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidChoice, s)
}

// Valid reports whether c is A or B.
func (c Choice) Valid() bool {
	return c == ChoiceA || c == ChoiceB
}

// UnmarshalText lets answer sets decode from JSON/YAML with validation.
func (c *Choice) UnmarshalText(text []byte) error {
	parsed, err := ParseChoice(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Option is one side of a forced-choice question.
type Option struct {
	Text string `json:"text" yaml:"text"`
	Axis Axis   `json:"axis" yaml:"axis"`
}

// Question is an immutable forced-choice item. A and B must carry the two
// different symbols of the same opposing pair.
type Question struct {
	ID   int    `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
	A    Option `json:"option_a" yaml:"option_a"`
	B    Option `json:"option_b" yaml:"option_b"`
}

// Validate checks the question's structural invariants.
func (q Question) Validate() error {
	if q.ID <= 0 {
		return fmt.Errorf("question id must be positive, got %d", q.ID)
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question %d: empty text", q.ID)
	}
	if !q.A.Axis.Valid() {
		return fmt.Errorf("question %d: option A has unknown axis %q", q.ID, q.A.Axis)
	}
	if !q.B.Axis.Valid() {
		return fmt.Errorf("question %d: option B has unknown axis %q", q.ID, q.B.Axis)
	}
	if q.A.Axis.Opposite() != q.B.Axis {
		return fmt.Errorf("question %d: options %q and %q are not opposing poles of one pair",
			q.ID, q.A.Axis, q.B.Axis)
	}
	return nil
}

// Pair returns the axis pair this question measures. Only meaningful on a
// validated question.
func (q Question) Pair() Pair {
	p, _ := q.A.Axis.Pair()
	return p
}

// AxisFor returns the axis the given choice contributes to.
func (q Question) AxisFor(c Choice) (Axis, bool) {
	switch c {
	case ChoiceA:
		return q.A.Axis, true
	case ChoiceB:
		return q.B.Axis, true
	}
	return "", false
}

// OptionFor returns the option for the given choice.
func (q Question) OptionFor(c Choice) (Option, bool) {
	switch c {
	case ChoiceA:
		return q.A, true
	case ChoiceB:
		return q.B, true
	}
	return Option{}, false
}
