package databases

// go generate: mockery --name RecordDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecordDatabase contains the methods to use with any of the record collections.
// Documents are handled as bson.M so one implementation serves every collection.
type RecordDatabase interface {
	FindOne(ctx context.Context, collection string, filter interface{}) (bson.M, error)
	Find(ctx context.Context, collection string, filter interface{}, opts ...*options.FindOptions) ([]bson.M, error)
	FindPage(ctx context.Context, collection string, filter interface{}, limit, page int) ([]bson.M, error)
	InsertOne(ctx context.Context, collection string, document bson.M) (interface{}, error)
	UpdateOne(ctx context.Context, collection string, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, collection string, filter interface{}) (int64, error)
	Distinct(ctx context.Context, collection, field string, filter interface{}) ([]interface{}, error)
	Aggregate(ctx context.Context, collection string, pipeline interface{}) ([]bson.M, error)
}

type recordDatabase struct {
	db DatabaseHelper
}

// NewRecordDatabase initializes a new instance of record database with the provided db connection
func NewRecordDatabase(db DatabaseHelper) RecordDatabase {
	return &recordDatabase{
		db: db,
	}
}

// FindOne returns mongo.ErrNoDocuments when nothing matches
func (r *recordDatabase) FindOne(ctx context.Context, collection string, filter interface{}) (bson.M, error) {
	doc := bson.M{}
	err := r.db.Collection(collection).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *recordDatabase) Find(ctx context.Context, collection string, filter interface{}, opts ...*options.FindOptions) ([]bson.M, error) {
	var docs []bson.M
	cr, err := r.db.Collection(collection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cr.Decode(&docs)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *recordDatabase) FindPage(ctx context.Context, collection string, filter interface{}, limit, page int) ([]bson.M, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	return r.Find(ctx, collection, filter, opts)
}

func (r *recordDatabase) InsertOne(ctx context.Context, collection string, document bson.M) (interface{}, error) {
	res, err := r.db.Collection(collection).InsertOne(ctx, document)
	if err != nil {
		return nil, err
	}
	return res.Decode(), nil
}

func (r *recordDatabase) UpdateOne(ctx context.Context, collection string, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return r.db.Collection(collection).UpdateOne(ctx, filter, update)
}

func (r *recordDatabase) DeleteOne(ctx context.Context, collection string, filter interface{}) (int64, error) {
	return r.db.Collection(collection).DeleteOne(ctx, filter)
}

func (r *recordDatabase) CountDocuments(ctx context.Context, collection string, filter interface{}) (int64, error) {
	return r.db.Collection(collection).CountDocuments(ctx, filter)
}

func (r *recordDatabase) Distinct(ctx context.Context, collection, field string, filter interface{}) ([]interface{}, error) {
	return r.db.Collection(collection).Distinct(ctx, field, filter)
}

func (r *recordDatabase) Aggregate(ctx context.Context, collection string, pipeline interface{}) ([]bson.M, error) {
	var docs []bson.M
	cr, err := r.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	err = cr.Decode(&docs)
	if err != nil {
		return nil, err
	}
	return docs, nil
}
