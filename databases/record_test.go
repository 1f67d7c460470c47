package databases_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/police-records-api/databases"
	"github.com/linesmerrill/police-records-api/databases/mocks"
)

func TestRecordDatabase_FindOne(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*bson.M)
		(*arg)["vehicleID"] = "VEH-001"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "vehicles").Return(collectionHelper)

	// Create new database with mocked Database interface
	recordDba := databases.NewRecordDatabase(dbHelper)

	// Call method with defined filter, that in our mocked function returns
	// mocked-error
	doc, err := recordDba.FindOne(context.Background(), "vehicles", bson.M{"error": true})

	assert.Empty(t, doc)
	assert.EqualError(t, err, "mocked-error")

	// Now call the same function with different filter for correct
	// result
	doc, err = recordDba.FindOne(context.Background(), "vehicles", bson.M{"error": false})

	assert.Equal(t, bson.M{"vehicleID": "VEH-001"}, doc)
	assert.NoError(t, err)
}

func TestRecordDatabase_FindPage(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]bson.M)
		*arg = []bson.M{{"weaponID": "WEA-011"}}
	})
	limit, skip := int64(10), int64(10)
	collectionHelper.On("Find", context.Background(), bson.M{}, &options.FindOptions{Limit: &limit, Skip: &skip}).
		Return(cursor, nil)
	dbHelper.On("Collection", "weapons").Return(collectionHelper)

	recordDba := databases.NewRecordDatabase(dbHelper)
	docs, err := recordDba.FindPage(context.Background(), "weapons", bson.M{}, 10, 2)

	assert.NoError(t, err)
	assert.Equal(t, []bson.M{{"weaponID": "WEA-011"}}, docs)
}

func TestRecordDatabase_FindPageClampsHugePage(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Return(nil)
	limit := int64(databases.MaxPageLimit)
	skip := int64(databases.MaxPage-1) * limit
	collectionHelper.On("Find", context.Background(), bson.M{}, &options.FindOptions{Limit: &limit, Skip: &skip}).
		Return(cursor, nil)
	dbHelper.On("Collection", "weapons").Return(collectionHelper)

	recordDba := databases.NewRecordDatabase(dbHelper)
	_, err := recordDba.FindPage(context.Background(), "weapons", bson.M{}, databases.MaxPageLimit, math.MaxInt)

	assert.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}

func TestRecordDatabase_FindError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("Find", context.Background(), bson.M{}).Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "people").Return(collectionHelper)

	recordDba := databases.NewRecordDatabase(dbHelper)
	docs, err := recordDba.Find(context.Background(), "people", bson.M{})

	assert.Nil(t, docs)
	assert.EqualError(t, err, "mocked-error")
}

func TestRecordDatabase_InsertUpdateDelete(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	insertResult.On("Decode").Return("inserted")
	collectionHelper.On("InsertOne", context.Background(), bson.M{"officerID": "OFF-001"}).Return(insertResult, nil)
	collectionHelper.On("UpdateOne", context.Background(), bson.M{"officerID": "OFF-001"}, bson.M{"$set": bson.M{"rank": "sergeant"}}).
		Return(nil, errors.New("mocked-error"))
	collectionHelper.On("DeleteOne", context.Background(), bson.M{"officerID": "OFF-001"}).Return(int64(1), nil)
	collectionHelper.On("CountDocuments", context.Background(), bson.M{}).Return(int64(3), nil)
	dbHelper.On("Collection", "officers").Return(collectionHelper)

	recordDba := databases.NewRecordDatabase(dbHelper)

	id, err := recordDba.InsertOne(context.Background(), "officers", bson.M{"officerID": "OFF-001"})
	assert.NoError(t, err)
	assert.Equal(t, "inserted", id)

	_, err = recordDba.UpdateOne(context.Background(), "officers", bson.M{"officerID": "OFF-001"}, bson.M{"$set": bson.M{"rank": "sergeant"}})
	assert.EqualError(t, err, "mocked-error")

	deleted, err := recordDba.DeleteOne(context.Background(), "officers", bson.M{"officerID": "OFF-001"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	count, err := recordDba.CountDocuments(context.Background(), "officers", bson.M{})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
