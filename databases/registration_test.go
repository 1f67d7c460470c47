package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/police-records-api/databases"
	"github.com/linesmerrill/police-records-api/databases/mocks"
	"github.com/linesmerrill/police-records-api/models"
	"github.com/linesmerrill/police-records-api/registration"
)

func TestRegistrationStore_RunInTransactionStartSessionError(t *testing.T) {
	client := &mocks.ClientHelper{}
	client.On("StartSession").Return(nil, errors.New("mocked-error"))

	store := databases.NewRegistrationStore(client, &mocks.DatabaseHelper{})
	called := false
	err := store.RunInTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.EqualError(t, err, "failed to start session: mocked-error")
	assert.False(t, called)
}

func TestRegistrationStore_RunInTransaction(t *testing.T) {
	client := &mocks.ClientHelper{}
	session := &mocks.SessionHelper{}

	client.On("StartSession").Return(session, nil)
	session.On("WithTransaction", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) })
	session.On("EndSession", mock.Anything).Return()

	store := databases.NewRegistrationStore(client, &mocks.DatabaseHelper{})

	err := store.RunInTransaction(context.Background(), func(ctx context.Context) error { return nil })
	assert.NoError(t, err)

	err = store.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return &registration.NotFoundError{Entity: registration.EntityPerson}
	})
	var nf *registration.NotFoundError
	assert.ErrorAs(t, err, &nf)

	session.AssertNumberOfCalls(t, "EndSession", 2)
}

func TestRegistrationStore_FindPerson(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	coll := &mocks.CollectionHelper{}
	missing := &mocks.SingleResultHelper{}
	found := &mocks.SingleResultHelper{}
	broken := &mocks.SingleResultHelper{}

	missing.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	broken.On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	found.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Person)
		arg.PersonID = "PER-001"
		arg.Roles = []string{"witness"}
	})

	coll.On("FindOne", mock.Anything, bson.M{"personID": "PER-404"}).Return(missing)
	coll.On("FindOne", mock.Anything, bson.M{"personID": "PER-500"}).Return(broken)
	coll.On("FindOne", mock.Anything, bson.M{"personID": "PER-001"}).Return(found)
	db.On("Collection", "people").Return(coll)

	store := databases.NewRegistrationStore(&mocks.ClientHelper{}, db)

	p, err := store.FindPerson(context.Background(), "PER-404")
	assert.NoError(t, err)
	assert.Nil(t, p)

	p, err = store.FindPerson(context.Background(), "PER-500")
	assert.EqualError(t, err, "mocked-error")
	assert.Nil(t, p)

	p, err = store.FindPerson(context.Background(), "PER-001")
	require.NoError(t, err)
	assert.Equal(t, &models.Person{PersonID: "PER-001", Roles: []string{"witness"}}, p)
}

func TestRegistrationStore_FindOpenCaseFiltersStatusCaseInsensitively(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	coll := &mocks.CollectionHelper{}
	sr := &mocks.SingleResultHelper{}

	sr.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	coll.On("FindOne", mock.Anything, bson.M{
		"caseID": "CASE-001",
		"status": bson.M{"$regex": "^open$", "$options": "i"},
	}).Return(sr)
	db.On("Collection", "cases").Return(coll)

	store := databases.NewRegistrationStore(&mocks.ClientHelper{}, db)
	c, err := store.FindOpenCase(context.Background(), "CASE-001")

	assert.NoError(t, err)
	assert.Nil(t, c)
	coll.AssertExpectations(t)
}

func TestRegistrationStore_ArrestIDs(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	coll := &mocks.CollectionHelper{}

	coll.On("Distinct", mock.Anything, "arrestID", bson.M{}).
		Return([]interface{}{"ARR-001", nil, int32(7), "ARR-002"}, nil)
	db.On("Collection", "arrests").Return(coll)

	store := databases.NewRegistrationStore(&mocks.ClientHelper{}, db)
	ids, err := store.ArrestIDs(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"ARR-001", "ARR-002"}, ids)
}

func TestRegistrationStore_InsertArrestDuplicateKey(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	coll := &mocks.CollectionHelper{}

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
	coll.On("InsertOne", mock.Anything, models.Arrest{ArrestID: "ARR-001"}).Return(nil, dup)
	coll.On("InsertOne", mock.Anything, models.Arrest{ArrestID: "ARR-002"}).Return(nil, errors.New("mocked-error"))
	db.On("Collection", "arrests").Return(coll)

	store := databases.NewRegistrationStore(&mocks.ClientHelper{}, db)

	err := store.InsertArrest(context.Background(), models.Arrest{ArrestID: "ARR-001"})
	assert.ErrorIs(t, err, registration.ErrIDConflict)

	err = store.InsertArrest(context.Background(), models.Arrest{ArrestID: "ARR-002"})
	assert.EqualError(t, err, "mocked-error")
	assert.NotErrorIs(t, err, registration.ErrIDConflict)
}

func TestRegistrationStore_Updates(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	cases := &mocks.CollectionHelper{}
	people := &mocks.CollectionHelper{}

	cases.On("UpdateOne", mock.Anything, bson.M{"caseID": "CASE-001"}, bson.M{"$set": bson.M{"status": "open"}}).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	people.On("UpdateOne", mock.Anything, bson.M{"personID": "PER-001"}, bson.M{"$set": bson.M{"roles": []string{"witness", "suspect"}}}).
		Return(nil, errors.New("mocked-error"))
	db.On("Collection", "cases").Return(cases)
	db.On("Collection", "people").Return(people)

	store := databases.NewRegistrationStore(&mocks.ClientHelper{}, db)

	assert.NoError(t, store.SetCaseStatus(context.Background(), "CASE-001", "open"))
	assert.EqualError(t, store.SetPersonRoles(context.Background(), "PER-001", []string{"witness", "suspect"}), "mocked-error")
}

func TestEnsureRegistrationIndexes(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	arrests := &mocks.CollectionHelper{}
	charges := &mocks.CollectionHelper{}

	arrests.On("CreateIndexes", mock.Anything, mock.MatchedBy(func(m []mongo.IndexModel) bool { return len(m) == 4 })).Return(nil)
	charges.On("CreateIndexes", mock.Anything, mock.MatchedBy(func(m []mongo.IndexModel) bool { return len(m) == 2 })).Return(errors.New("mocked-error"))
	db.On("Collection", "arrests").Return(arrests)
	db.On("Collection", "charges").Return(charges)

	err := databases.EnsureRegistrationIndexes(context.Background(), db)

	assert.EqualError(t, err, "charges: mocked-error")
	arrests.AssertExpectations(t)
}
