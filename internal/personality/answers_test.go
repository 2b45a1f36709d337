package personality

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerSet_MissingAndUnknown(t *testing.T) {
	b := DefaultBank()
	answers := AnswerSet{1: ChoiceA, 3: ChoiceB, 42: ChoiceA, 7: Choice("")}

	missing := answers.Missing(b)
	assert.Len(t, missing, 18)
	assert.Equal(t, 2, missing[0])
	assert.Contains(t, missing, 7)
	assert.True(t, slices.IsSorted(missing))

	assert.Equal(t, []int{42}, answers.Unknown(b))
	assert.False(t, answers.Complete(b))
}

func TestAnswerSet_Complete(t *testing.T) {
	b := DefaultBank()
	answers := answersPerPair(b, 3)
	assert.True(t, answers.Complete(b))

	answers[21] = ChoiceA
	assert.False(t, answers.Complete(b), "unknown ids make a set incomplete")
}

func TestAnswerSet_CloneIsIndependent(t *testing.T) {
	a := AnswerSet{1: ChoiceA}
	c := a.Clone()
	c[1] = ChoiceB
	assert.Equal(t, ChoiceA, a[1])

	var nilSet AnswerSet
	assert.NotNil(t, nilSet.Clone())
}

func TestAnswerSet_JSON(t *testing.T) {
	var answers AnswerSet
	require.NoError(t, json.Unmarshal([]byte(`{"1":"A","2":"b"}`), &answers))
	assert.Equal(t, AnswerSet{1: ChoiceA, 2: ChoiceB}, answers)

	data, err := json.Marshal(answers)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":"A","2":"B"}`, string(data))

	err = json.Unmarshal([]byte(`{"1":"C"}`), &answers)
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestParseAnswers(t *testing.T) {
	got, err := ParseAnswers(" 1=A, 2=b ,3=B,")
	require.NoError(t, err)
	assert.Equal(t, AnswerSet{1: ChoiceA, 2: ChoiceB, 3: ChoiceB}, got)
	assert.Equal(t, "1=A,2=B,3=B", got.String())

	empty, err := ParseAnswers("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, bad := range []string{"1", "x=A", "1=C"} {
		_, err := ParseAnswers(bad)
		assert.Error(t, err, bad)
	}
}

func TestTypeCode(t *testing.T) {
	code, err := ParseTypeCode(" infp ")
	require.NoError(t, err)
	assert.Equal(t, TypeCode("INFP"), code)
	assert.Equal(t, Intuition, code.Letter(PairSN))

	for _, bad := range []string{"", "INF", "INFPX", "NIFP", "ESXJ"} {
		_, err := ParseTypeCode(bad)
		assert.Error(t, err, bad)
	}
}

func TestAllTypeCodes(t *testing.T) {
	codes := AllTypeCodes()
	require.Len(t, codes, 16)
	assert.Equal(t, TypeCode("ESTJ"), codes[0])
	assert.Equal(t, TypeCode("INFP"), codes[15])

	seen := map[TypeCode]bool{}
	for _, c := range codes {
		require.NoError(t, c.Validate())
		assert.False(t, seen[c], "duplicate %s", c)
		seen[c] = true
	}
}

func TestAxis(t *testing.T) {
	assert.Equal(t, Introversion, Extraversion.Opposite())
	assert.Equal(t, Judging, Perceiving.Opposite())
	assert.Equal(t, Axis(""), Axis("X").Opposite())
	assert.Equal(t, "Intuition", Intuition.Name())

	p, ok := Feeling.Pair()
	assert.True(t, ok)
	assert.Equal(t, PairTF, p)
	assert.Equal(t, "T/F", p.String())
}
