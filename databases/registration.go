package databases

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/police-records-api/models"
	"github.com/linesmerrill/police-records-api/registration"
)

type registrationStore struct {
	client ClientHelper
	db     DatabaseHelper
}

// NewRegistrationStore returns the mongo backed store used for arrest registration.
// The session context handed to the transaction callback is used for every read and
// write so they take part in the transaction.
func NewRegistrationStore(client ClientHelper, db DatabaseHelper) registration.Store {
	return &registrationStore{
		client: client,
		db:     db,
	}
}

func (s *registrationStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(context.Background())

	return session.WithTransaction(ctx, fn)
}

func (s *registrationStore) FindPerson(ctx context.Context, personID string) (*models.Person, error) {
	person := &models.Person{}
	err := s.db.Collection(models.PeopleCollection).FindOne(ctx, bson.M{"personID": personID}).Decode(person)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return person, nil
}

// openStatusFilter matches "open" in any casing
var openStatusFilter = bson.M{"$regex": "^" + registration.OpenStatus + "$", "$options": "i"}

func (s *registrationStore) FindOpenCase(ctx context.Context, caseID string) (*models.Case, error) {
	c := &models.Case{}
	filter := bson.M{"caseID": caseID, "status": openStatusFilter}
	err := s.db.Collection(models.CasesCollection).FindOne(ctx, filter).Decode(c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *registrationStore) FindLocation(ctx context.Context, locationID string) (*models.Location, error) {
	location := &models.Location{}
	err := s.db.Collection(models.LocationsCollection).FindOne(ctx, bson.M{"locationID": locationID}).Decode(location)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return location, nil
}

func (s *registrationStore) ArrestIDs(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, s.db.Collection(models.ArrestsCollection), "arrestID")
}

func (s *registrationStore) ChargeIDs(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, s.db.Collection(models.ChargesCollection), "chargeID")
}

func (s *registrationStore) InsertArrest(ctx context.Context, arrest models.Arrest) error {
	_, err := s.db.Collection(models.ArrestsCollection).InsertOne(ctx, arrest)
	return insertError(err)
}

func (s *registrationStore) InsertCharge(ctx context.Context, charge models.Charge) error {
	_, err := s.db.Collection(models.ChargesCollection).InsertOne(ctx, charge)
	return insertError(err)
}

func (s *registrationStore) SetCaseStatus(ctx context.Context, caseID, status string) error {
	_, err := s.db.Collection(models.CasesCollection).UpdateOne(ctx,
		bson.M{"caseID": caseID},
		bson.M{"$set": bson.M{"status": status}})
	return err
}

func (s *registrationStore) SetPersonRoles(ctx context.Context, personID string, roles []string) error {
	_, err := s.db.Collection(models.PeopleCollection).UpdateOne(ctx,
		bson.M{"personID": personID},
		bson.M{"$set": bson.M{"roles": roles}})
	return err
}

func (s *registrationStore) EnsureIndexes(ctx context.Context) error {
	return EnsureRegistrationIndexes(ctx, s.db)
}

func insertError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", registration.ErrIDConflict, err)
	}
	return err
}

// distinctStrings returns the distinct string values of field, skipping documents
// where it is missing or not a string
func distinctStrings(ctx context.Context, coll CollectionHelper, field string) ([]string, error) {
	values, err := coll.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
