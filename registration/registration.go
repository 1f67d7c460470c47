// Package registration registers an arrest and its charge against a transactional
// store. The referenced person, case and location are validated inside the
// transaction, the case status and the person's roles are updated, and every write
// commits together or not at all.
package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/police-records-api/models"
)

// Defaults used when the Registrar fields are left zero
const (
	DefaultTimeout     = 15 * time.Second
	DefaultMaxAttempts = 3
	indexTimeout       = 30 * time.Second
)

// Values written by the transaction
const (
	OpenStatus  = "open"
	SuspectRole = "suspect"
)

// Store is the transactional document store the registration runs against. Every
// method other than RunInTransaction and EnsureIndexes is called with the context
// handed to fn so reads observe the transaction's view. Lookups return nil, nil when
// no document matches.
type Store interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	FindPerson(ctx context.Context, personID string) (*models.Person, error)
	FindOpenCase(ctx context.Context, caseID string) (*models.Case, error)
	FindLocation(ctx context.Context, locationID string) (*models.Location, error)
	ArrestIDs(ctx context.Context) ([]string, error)
	ChargeIDs(ctx context.Context) ([]string, error)
	InsertArrest(ctx context.Context, arrest models.Arrest) error
	InsertCharge(ctx context.Context, charge models.Charge) error
	SetCaseStatus(ctx context.Context, caseID, status string) error
	SetPersonRoles(ctx context.Context, personID string, roles []string) error
	EnsureIndexes(ctx context.Context) error
}

// Result is the committed arrest and charge
type Result struct {
	Arrest models.Arrest `json:"arrest"`
	Charge models.Charge `json:"charge"`
}

// Registrar runs arrest registrations
type Registrar struct {
	Store       Store
	Timeout     time.Duration
	MaxAttempts int
	// AfterCommit hooks run in their own goroutine once a registration committed.
	AfterCommit []func(Result)
}

// NewRegistrar returns a Registrar with the default timeout and attempt budget
func NewRegistrar(store Store, hooks ...func(Result)) *Registrar {
	return &Registrar{
		Store:       store,
		Timeout:     DefaultTimeout,
		MaxAttempts: DefaultMaxAttempts,
		AfterCommit: hooks,
	}
}

// Register validates in, then atomically inserts the arrest and charge, rewrites the
// case status and adds the suspect role. The returned error is a *ValidationError,
// *NotFoundError or *TransactionError.
func (r *Registrar) Register(ctx context.Context, in Input) (*Result, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = DefaultMaxAttempts
	}

	var (
		res *Result
		err error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		res, err = r.attempt(ctx, in)
		if err == nil || !errors.Is(err, ErrIDConflict) {
			break
		}
		zap.S().Warnw("generated id collided with a concurrent registration",
			"attempt", attempt,
			"personID", in.PersonID,
			"caseID", in.CaseID,
			"error", err)
	}
	if err != nil {
		return nil, classify(err)
	}

	r.afterCommit(*res)
	return res, nil
}

func (r *Registrar) attempt(ctx context.Context, in Input) (*Result, error) {
	var st *txState
	err := r.Store.RunInTransaction(ctx, func(ctx context.Context) error {
		// the store may re-run fn on a transient conflict, so start clean each time
		st = &txState{in: in}
		for _, s := range pipeline {
			if err := s.run(ctx, r.Store, st); err != nil {
				return fmt.Errorf("%s: %w", s.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Arrest: st.arrest, Charge: st.charge}, nil
}

func (r *Registrar) afterCommit(res Result) {
	go r.ensureIndexes()
	for _, hook := range r.AfterCommit {
		go func(hook func(Result)) {
			defer func() {
				if rec := recover(); rec != nil {
					zap.S().Errorw("after commit hook panicked", "arrestID", res.Arrest.ArrestID, "panic", rec)
				}
			}()
			hook(res)
		}(hook)
	}
}

func (r *Registrar) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()
	if err := r.Store.EnsureIndexes(ctx); err != nil {
		zap.S().Warnw("failed to ensure arrest and charge indexes", "error", err)
	}
}
