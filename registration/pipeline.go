package registration

import (
	"context"

	"github.com/linesmerrill/police-records-api/models"
)

// txState carries values between the steps of one transaction attempt
type txState struct {
	in       Input
	person   *models.Person
	arrestID string
	chargeID string
	date     string
	arrest   models.Arrest
	charge   models.Charge
}

type step struct {
	name string
	run  func(ctx context.Context, s Store, st *txState) error
}

// pipeline is executed in order inside the transaction; the first error aborts it
var pipeline = []step{
	{"find person", findPerson},
	{"find open case", findOpenCase},
	{"find location", findLocation},
	{"generate ids", generateIDs},
	{"normalize date", normalizeDate},
	{"insert arrest", insertArrest},
	{"insert charge", insertCharge},
	{"update case status", updateCaseStatus},
	{"add suspect role", addSuspectRole},
}

func findPerson(ctx context.Context, s Store, st *txState) error {
	p, err := s.FindPerson(ctx, st.in.PersonID)
	if err != nil {
		return err
	}
	if p == nil {
		return &NotFoundError{Entity: EntityPerson}
	}
	st.person = p
	return nil
}

func findOpenCase(ctx context.Context, s Store, st *txState) error {
	c, err := s.FindOpenCase(ctx, st.in.CaseID)
	if err != nil {
		return err
	}
	if c == nil {
		return &NotFoundError{Entity: EntityCaseNotOpen}
	}
	return nil
}

func findLocation(ctx context.Context, s Store, st *txState) error {
	l, err := s.FindLocation(ctx, st.in.LocationID)
	if err != nil {
		return err
	}
	if l == nil {
		return &NotFoundError{Entity: EntityLocation}
	}
	return nil
}

func generateIDs(ctx context.Context, s Store, st *txState) error {
	arrestIDs, err := s.ArrestIDs(ctx)
	if err != nil {
		return err
	}
	chargeIDs, err := s.ChargeIDs(ctx)
	if err != nil {
		return err
	}
	st.arrestID = GenerateID(ArrestPrefix, arrestIDs)
	st.chargeID = GenerateID(ChargePrefix, chargeIDs)
	return nil
}

func normalizeDate(_ context.Context, _ Store, st *txState) error {
	st.date = NormalizeDate(string(st.in.ArrestDate))
	return nil
}

func insertArrest(ctx context.Context, s Store, st *txState) error {
	st.arrest = models.Arrest{
		ArrestID:   st.arrestID,
		PersonID:   st.in.PersonID,
		CaseID:     st.in.CaseID,
		Date:       st.date,
		LocationID: st.in.LocationID,
		OfficerID:  officerOrNil(st.in.OfficerID),
	}
	return s.InsertArrest(ctx, st.arrest)
}

func insertCharge(ctx context.Context, s Store, st *txState) error {
	st.charge = models.Charge{
		ChargeID:    st.chargeID,
		ArrestID:    st.arrestID,
		Description: st.in.ChargeDescription,
		StatuteCode: st.in.StatuteCode,
		IsConvicted: bool(st.in.IsConvicted),
	}
	return s.InsertCharge(ctx, st.charge)
}

// updateCaseStatus always writes the lower-case literal, whatever casing matched
func updateCaseStatus(ctx context.Context, s Store, st *txState) error {
	return s.SetCaseStatus(ctx, st.in.CaseID, OpenStatus)
}

func addSuspectRole(ctx context.Context, s Store, st *txState) error {
	for _, role := range st.person.Roles {
		if role == SuspectRole {
			return nil
		}
	}
	roles := make([]string, 0, len(st.person.Roles)+1)
	roles = append(roles, st.person.Roles...)
	roles = append(roles, SuspectRole)
	return s.SetPersonRoles(ctx, st.in.PersonID, roles)
}
