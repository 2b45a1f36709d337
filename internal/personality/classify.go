package personality

// Tally holds one counter per axis symbol.
type Tally [8]int

// Count returns the counter for axis a (0 for an unknown axis).
func (t Tally) Count(a Axis) int {
	i := a.index()
	if i < 0 {
		return 0
	}
	return t[i]
}

// Dominant returns the pair's symbol with the higher count. Ties go to the
// pair's first symbol (E, S, T, J).
func (t Tally) Dominant(p Pair) Axis {
	if t.Count(p.First()) >= t.Count(p.Second()) {
		return p.First()
	}
	return p.Second()
}

// Answered returns the number of counted answers for pair p.
func (t Tally) Answered(p Pair) int {
	return t.Count(p.First()) + t.Count(p.Second())
}

// TypeCode concatenates the dominant symbols in canonical pair order.
func (t Tally) TypeCode() TypeCode {
	var code [4]byte
	for i, p := range Pairs() {
		code[i] = t.Dominant(p)[0]
	}
	return TypeCode(code[:])
}

// Score counts the chosen axis of every answered bank question, walking the
// bank in presentation order. Ids outside the bank and invalid choices are
// ignored.
func Score(answers AnswerSet, bank *Bank) Tally {
	var t Tally
	for _, q := range bank.questions {
		c, ok := answers[q.ID]
		if !ok {
			continue
		}
		axis, ok := q.AxisFor(c)
		if !ok {
			continue
		}
		t[axis.index()]++
	}
	return t
}

// Classify returns the type code for answers against bank. It is pure and
// accepts partial input; unanswered pairs resolve to their first symbol.
func Classify(answers AnswerSet, bank *Bank) TypeCode {
	return Score(answers, bank).TypeCode()
}
