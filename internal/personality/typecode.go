package personality

import (
	"fmt"
	"strings"
)

// TypeCode is a four-letter classification, one symbol per pair in
// canonical order EI, SN, TF, JP.
type TypeCode string

// ParseTypeCode normalises s to upper case and checks that each position
// carries a symbol of the matching pair.
func ParseTypeCode(s string) (TypeCode, error) {
	code := TypeCode(strings.ToUpper(strings.TrimSpace(s)))
	if err := code.Validate(); err != nil {
		return "", err
	}
	return code, nil
}

// Validate reports whether the code is well formed.
func (c TypeCode) Validate() error {
	if len(c) != len(pairAxes) {
		return fmt.Errorf("type code %q: want %d letters", string(c), len(pairAxes))
	}
	for i, p := range Pairs() {
		if !p.Contains(Axis(c[i])) {
			return fmt.Errorf("type code %q: position %d must be %s", string(c), i+1, p)
		}
	}
	return nil
}

// Letter returns the symbol chosen for pair p.
func (c TypeCode) Letter(p Pair) Axis {
	if !p.Valid() || int(p) >= len(c) {
		return ""
	}
	return Axis(c[p])
}

func (c TypeCode) String() string {
	return string(c)
}

// AllTypeCodes returns the 16 codes. Ordering treats each pair's first
// symbol as 0, so ESTJ comes first and INFP last.
func AllTypeCodes() []TypeCode {
	pairs := Pairs()
	n := 1 << len(pairs)
	codes := make([]TypeCode, 0, n)
	for mask := 0; mask < n; mask++ {
		var b strings.Builder
		for i, p := range pairs {
			if mask&(1<<(len(pairs)-1-i)) != 0 {
				b.WriteString(string(p.Second()))
			} else {
				b.WriteString(string(p.First()))
			}
		}
		codes = append(codes, TypeCode(b.String()))
	}
	return codes
}
