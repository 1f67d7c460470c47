// Package registrationtest provides an in-memory registration.Store for tests.
package registrationtest

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/linesmerrill/police-records-api/models"
	"github.com/linesmerrill/police-records-api/registration"
)

// Store keeps documents in maps and restores the pre-transaction copy when the
// transaction function fails. Transactions are serialized.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	people    map[string]models.Person
	cases     map[string]models.Case
	locations map[string]models.Location
	arrests   []models.Arrest
	charges   []models.Charge

	// Fail makes the named operation return the error, e.g. "SetPersonRoles".
	Fail map[string]error
	// Conflicts is the number of InsertArrest calls that report an id conflict.
	Conflicts int

	calls      []string
	txCount    int32
	indexCalls int32
	indexErr   error
}

// NewStore returns an empty Store
func NewStore() *Store {
	return &Store{
		people:    map[string]models.Person{},
		cases:     map[string]models.Case{},
		locations: map[string]models.Location{},
		Fail:      map[string]error{},
	}
}

// AddPerson seeds a person
func (s *Store) AddPerson(p models.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people[p.PersonID] = p
}

// AddCase seeds a case
func (s *Store) AddCase(c models.Case) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases[c.CaseID] = c
}

// AddLocation seeds a location
func (s *Store) AddLocation(l models.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[l.LocationID] = l
}

// AddArrest seeds an arrest, e.g. to occupy an id
func (s *Store) AddArrest(a models.Arrest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arrests = append(s.arrests, a)
}

// AddCharge seeds a charge
func (s *Store) AddCharge(c models.Charge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charges = append(s.charges, c)
}

// SetIndexError makes EnsureIndexes fail with err
func (s *Store) SetIndexError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexErr = err
}

// Person returns the stored person
func (s *Store) Person(id string) (models.Person, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.people[id]
	return p, ok
}

// Case returns the stored case
func (s *Store) Case(id string) (models.Case, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[id]
	return c, ok
}

// Arrests returns a copy of the stored arrests
func (s *Store) Arrests() []models.Arrest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Arrest(nil), s.arrests...)
}

// Charges returns a copy of the stored charges
func (s *Store) Charges() []models.Charge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Charge(nil), s.charges...)
}

// Calls returns the operations invoked so far, in order
func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Transactions returns how many transactions were started
func (s *Store) Transactions() int {
	return int(atomic.LoadInt32(&s.txCount))
}

// IndexCalls returns how many times EnsureIndexes ran
func (s *Store) IndexCalls() int {
	return int(atomic.LoadInt32(&s.indexCalls))
}

type snapshot struct {
	people    map[string]models.Person
	cases     map[string]models.Case
	locations map[string]models.Location
	arrests   []models.Arrest
	charges   []models.Charge
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		people:    make(map[string]models.Person, len(s.people)),
		cases:     make(map[string]models.Case, len(s.cases)),
		locations: make(map[string]models.Location, len(s.locations)),
		arrests:   append([]models.Arrest(nil), s.arrests...),
		charges:   append([]models.Charge(nil), s.charges...),
	}
	for k, v := range s.people {
		v.Roles = append([]string(nil), v.Roles...)
		snap.people[k] = v
	}
	for k, v := range s.cases {
		snap.cases[k] = v
	}
	for k, v := range s.locations {
		snap.locations[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people = snap.people
	s.cases = snap.cases
	s.locations = snap.locations
	s.arrests = snap.arrests
	s.charges = snap.charges
}

// record notes the call and returns the injected failure, if any
func (s *Store) record(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, op)
	return s.Fail[op]
}

// RunInTransaction implements registration.Store
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := s.record("RunInTransaction"); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	atomic.AddInt32(&s.txCount, 1)

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	if err := ctx.Err(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// FindPerson implements registration.Store
func (s *Store) FindPerson(_ context.Context, personID string) (*models.Person, error) {
	if err := s.record("FindPerson"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.people[personID]
	if !ok {
		return nil, nil
	}
	p.Roles = append([]string(nil), p.Roles...)
	return &p, nil
}

// FindOpenCase implements registration.Store
func (s *Store) FindOpenCase(_ context.Context, caseID string) (*models.Case, error) {
	if err := s.record("FindOpenCase"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[caseID]
	if !ok || !strings.EqualFold(c.Status, registration.OpenStatus) {
		return nil, nil
	}
	return &c, nil
}

// FindLocation implements registration.Store
func (s *Store) FindLocation(_ context.Context, locationID string) (*models.Location, error) {
	if err := s.record("FindLocation"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locations[locationID]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// ArrestIDs implements registration.Store
func (s *Store) ArrestIDs(_ context.Context) ([]string, error) {
	if err := s.record("ArrestIDs"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.arrests))
	for _, a := range s.arrests {
		ids = append(ids, a.ArrestID)
	}
	return ids, nil
}

// ChargeIDs implements registration.Store
func (s *Store) ChargeIDs(_ context.Context) ([]string, error) {
	if err := s.record("ChargeIDs"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.charges))
	for _, c := range s.charges {
		ids = append(ids, c.ChargeID)
	}
	return ids, nil
}

// InsertArrest implements registration.Store
func (s *Store) InsertArrest(_ context.Context, arrest models.Arrest) error {
	if err := s.record("InsertArrest"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Conflicts > 0 {
		s.Conflicts--
		return registration.ErrIDConflict
	}
	for _, a := range s.arrests {
		if a.ArrestID == arrest.ArrestID {
			return registration.ErrIDConflict
		}
	}
	s.arrests = append(s.arrests, arrest)
	return nil
}

// InsertCharge implements registration.Store
func (s *Store) InsertCharge(_ context.Context, charge models.Charge) error {
	if err := s.record("InsertCharge"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.charges {
		if c.ChargeID == charge.ChargeID {
			return registration.ErrIDConflict
		}
	}
	s.charges = append(s.charges, charge)
	return nil
}

// SetCaseStatus implements registration.Store
func (s *Store) SetCaseStatus(_ context.Context, caseID, status string) error {
	if err := s.record("SetCaseStatus"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cases[caseID]
	c.Status = status
	s.cases[caseID] = c
	return nil
}

// SetPersonRoles implements registration.Store
func (s *Store) SetPersonRoles(_ context.Context, personID string, roles []string) error {
	if err := s.record("SetPersonRoles"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.people[personID]
	p.Roles = append([]string(nil), roles...)
	s.people[personID] = p
	return nil
}

// EnsureIndexes implements registration.Store
func (s *Store) EnsureIndexes(_ context.Context) error {
	atomic.AddInt32(&s.indexCalls, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexErr
}
