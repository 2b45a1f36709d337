// Package results assembles, persists and retrieves classification results.
package results

import (
	"time"

	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
)

// Record is an immutable, persisted classification result.
type Record struct {
	ID        string                `json:"id"`
	Owner     string                `json:"owner"`
	TypeCode  personality.TypeCode  `json:"type_code"`
	Profile   profiles.Profile      `json:"profile"`
	Answers   personality.AnswerSet `json:"answers"`
	CreatedAt time.Time             `json:"created_at"`
}

// Assemble merges a type code, its profile, the raw answers, the owner and a
// timestamp into a record. It performs no computation; the ID is left for
// the caller to assign.
func Assemble(code personality.TypeCode, profile profiles.Profile, answers personality.AnswerSet, owner string, now time.Time) *Record {
	return &Record{
		Owner:     owner,
		TypeCode:  code,
		Profile:   profile,
		Answers:   answers.Clone(),
		CreatedAt: now.UTC(),
	}
}
