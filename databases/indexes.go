package databases

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/police-records-api/models"
)

func ascending(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
}

func unique(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

// registrationIndexes are the lookup indexes on the collections written by an arrest
// registration. The unique ids back the generation-time collision probe.
var registrationIndexes = map[string][]mongo.IndexModel{
	models.ArrestsCollection: {
		ascending("personID"),
		ascending("caseID"),
		ascending("locationID"),
		unique("arrestID"),
	},
	models.ChargesCollection: {
		ascending("arrestID"),
		unique("chargeID"),
	},
}

// EnsureRegistrationIndexes creates the arrest and charge indexes. Existing indexes
// with the same keys are left untouched by the server.
func EnsureRegistrationIndexes(ctx context.Context, db DatabaseHelper) error {
	var errs []error
	for _, name := range []string{models.ArrestsCollection, models.ChargesCollection} {
		if err := db.Collection(name).CreateIndexes(ctx, registrationIndexes[name]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// EnsureRecordIndexes creates a unique index on the key field of every record
// collection and on the email of users
func EnsureRecordIndexes(ctx context.Context, db DatabaseHelper) error {
	var errs []error
	for _, c := range models.Collections() {
		if err := db.Collection(c.Name).CreateIndexes(ctx, []mongo.IndexModel{unique(c.KeyField)}); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
		}
	}
	if err := db.Collection(models.UsersCollection).CreateIndexes(ctx, []mongo.IndexModel{unique("email")}); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", models.UsersCollection, err))
	}
	if err := EnsureRegistrationIndexes(ctx, db); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
