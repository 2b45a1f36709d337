package results

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
)

// ProfileSource resolves a type code to its descriptive content.
type ProfileSource interface {
	Lookup(code personality.TypeCode) (profiles.Profile, error)
}

// Service validates submissions, classifies them, attaches the profile and
// hands the record to the repo.
type Service struct {
	repo    Repo
	bank    *personality.Bank
	catalog ProfileSource
	now     func() time.Time
	newID   func() string
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithBank overrides the question bank.
func WithBank(b *personality.Bank) Option {
	return func(s *Service) { s.bank = b }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service over repo and a profile source, using the default
// bank unless overridden.
func NewService(repo Repo, catalog ProfileSource, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		bank:    personality.DefaultBank(),
		catalog: catalog,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Bank returns the bank submissions are checked against.
func (s *Service) Bank() *personality.Bank {
	return s.bank
}

// Preview is the live partial classification shown while answering.
type Preview struct {
	TypeCode personality.TypeCode
	Tally    personality.Tally
	Answered int
	Complete bool
}

// Preview classifies a possibly partial answer set without persisting.
func (s *Service) Preview(answers personality.AnswerSet) Preview {
	tally := personality.Score(answers, s.bank)
	return Preview{
		TypeCode: tally.TypeCode(),
		Tally:    tally,
		Answered: s.bank.Len() - len(answers.Missing(s.bank)),
		Complete: answers.Complete(s.bank),
	}
}

// Submit validates and classifies answers, then persists the record.
//
// On a persistence failure the returned error is a *PersistError holding the
// computed record; pass it to Retry to write it again.
func (s *Service) Submit(ctx context.Context, owner string, answers personality.AnswerSet) (*Record, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, ErrOwnerRequired
	}

	missing, unknown := answers.Missing(s.bank), answers.Unknown(s.bank)
	if len(missing) > 0 || len(unknown) > 0 {
		return nil, &IncompleteError{Missing: missing, Unknown: unknown}
	}

	code := personality.Classify(answers, s.bank)

	profile, err := s.catalog.Lookup(code)
	if err != nil {
		s.logger.Error("profile lookup failed", "type_code", code, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrProfileNotFound, err)
	}

	rec := Assemble(code, profile, answers, owner, s.now())
	rec.ID = s.newID()

	if err := s.repo.Append(ctx, rec); err != nil {
		s.logger.Warn("result append failed", "id", rec.ID, "owner", owner, "error", err)
		return nil, &PersistError{Record: rec, Err: err}
	}

	s.logger.Info("result saved", "id", rec.ID, "owner", owner, "type_code", code)
	return rec, nil
}

// Retry re-appends a record from a failed Submit without recomputation.
func (s *Service) Retry(ctx context.Context, rec *Record) (*Record, error) {
	if rec == nil {
		return nil, errors.New("retry: nil record")
	}
	if err := s.repo.Append(ctx, rec); err != nil {
		return nil, &PersistError{Record: rec, Err: err}
	}
	s.logger.Info("result saved on retry", "id", rec.ID, "owner", rec.Owner)
	return rec, nil
}

// History returns the owner's records, newest first.
func (s *Service) History(ctx context.Context, owner string) ([]*Record, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrOwnerRequired
	}
	recs, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return recs, nil
}

// Get returns a single record.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
