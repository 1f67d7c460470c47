package handlers

import (
	"net/http"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/police-records-api/api"
	"github.com/linesmerrill/police-records-api/config"
	"github.com/linesmerrill/police-records-api/models"
)

// schemaSampleSize is how many documents the schema endpoint inspects
const schemaSampleSize = 50

// SchemaHandler infers field names and value types from a sample of the collection
func (rc Record) SchemaHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := collectionFromRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	docs, err := rc.DB.Find(ctx, c.Name, bson.M{}, options.Find().SetLimit(schemaSampleSize))
	if err != nil {
		config.ErrorStatus("failed to sample collection", http.StatusInternalServerError, w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    inferSchema(c, docs),
	})
}

func inferSchema(c models.Collection, docs []bson.M) models.CollectionSchema {
	types := map[string]map[string]struct{}{}
	for _, doc := range docs {
		for field, v := range doc {
			if types[field] == nil {
				types[field] = map[string]struct{}{}
			}
			types[field][bsonTypeName(v)] = struct{}{}
		}
	}
	if types[c.KeyField] == nil {
		types[c.KeyField] = map[string]struct{}{}
	}

	fields := make([]models.SchemaField, 0, len(types))
	for name, set := range types {
		f := models.SchemaField{Name: name, Types: make([]string, 0, len(set)), Key: name == c.KeyField}
		for t := range set {
			f.Types = append(f.Types, t)
		}
		sort.Strings(f.Types)
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	return models.CollectionSchema{
		Collection: c.Name,
		KeyField:   c.KeyField,
		Sampled:    len(docs),
		Fields:     fields,
	}
}

func bsonTypeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int32, int64, int:
		return "int"
	case float64:
		return "double"
	case primitive.ObjectID:
		return "objectId"
	case primitive.DateTime:
		return "date"
	case primitive.A, []interface{}:
		return "array"
	case bson.M, bson.D, map[string]interface{}:
		return "object"
	}
	return "unknown"
}
