package personality

import "fmt"

// Axis is one pole of a personality dimension.
type Axis string

const (
	Extraversion Axis = "E"
	Introversion Axis = "I"
	Sensing      Axis = "S"
	Intuition    Axis = "N"
	Thinking     Axis = "T"
	Feeling      Axis = "F"
	Judging      Axis = "J"
	Perceiving   Axis = "P"
)

// Pair is one of the four opposing axis pairs. The zero value is PairEI.
type Pair int

const (
	PairEI Pair = iota
	PairSN
	PairTF
	PairJP
)

// pairAxes lists each pair's symbols; index 0 is the tie-break winner.
var pairAxes = [...][2]Axis{
	PairEI: {Extraversion, Introversion},
	PairSN: {Sensing, Intuition},
	PairTF: {Thinking, Feeling},
	PairJP: {Judging, Perceiving},
}

// Pairs returns the four pairs in canonical code order (EI, SN, TF, JP).
func Pairs() []Pair {
	return []Pair{PairEI, PairSN, PairTF, PairJP}
}

// Valid reports whether p is one of the four known pairs.
func (p Pair) Valid() bool {
	return p >= PairEI && p <= PairJP
}

// First returns the pair's first symbol (E, S, T or J).
func (p Pair) First() Axis {
	return pairAxes[p][0]
}

// Second returns the pair's second symbol (I, N, F or P).
func (p Pair) Second() Axis {
	return pairAxes[p][1]
}

// Contains reports whether a is one of the pair's two symbols.
func (p Pair) Contains(a Axis) bool {
	return p.Valid() && (pairAxes[p][0] == a || pairAxes[p][1] == a)
}

func (p Pair) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Pair(%d)", int(p))
	}
	return string(p.First()) + "/" + string(p.Second())
}

// Pair returns the opposing pair the axis belongs to.
func (a Axis) Pair() (Pair, bool) {
	for _, p := range Pairs() {
		if p.Contains(a) {
			return p, true
		}
	}
	return 0, false
}

// Valid reports whether a is one of the eight axis symbols.
func (a Axis) Valid() bool {
	_, ok := a.Pair()
	return ok
}

// Opposite returns the other symbol of a's pair, or "" for an invalid axis.
func (a Axis) Opposite() Axis {
	p, ok := a.Pair()
	if !ok {
		return ""
	}
	if p.First() == a {
		return p.Second()
	}
	return p.First()
}

// Name returns the human-readable dimension name, e.g. "Extraversion".
func (a Axis) Name() string {
	switch a {
	case Extraversion:
		return "Extraversion"
	case Introversion:
		return "Introversion"
	case Sensing:
		return "Sensing"
	case Intuition:
		return "Intuition"
	case Thinking:
		return "Thinking"
	case Feeling:
		return "Feeling"
	case Judging:
		return "Judging"
	case Perceiving:
		return "Perceiving"
	default:
		return string(a)
	}
}

// index maps an axis to a dense counter slot: pair*2 + side.
func (a Axis) index() int {
	p, ok := a.Pair()
	if !ok {
		return -1
	}
	if p.First() == a {
		return int(p) * 2
	}
	return int(p)*2 + 1
}
