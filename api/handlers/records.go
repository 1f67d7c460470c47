package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/linesmerrill/police-records-api/api"
	"github.com/linesmerrill/police-records-api/config"
	"github.com/linesmerrill/police-records-api/databases"
	"github.com/linesmerrill/police-records-api/models"
	"github.com/linesmerrill/police-records-api/registration"
)

// Record exported for testing purposes
type Record struct {
	DB databases.RecordDatabase
}

// CollectionsHandler lists every record collection with its key field and prefix
func (rc Record) CollectionsHandler(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    models.Collections(),
	})
}

// ListRecordsHandler returns one page of a collection plus its total size
func (rc Record) ListRecordsHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := collectionFromRequest(w, r)
	if !ok {
		return
	}
	limit := queryInt(r, "limit", databases.DefaultPageLimit)
	if limit <= 0 {
		limit = databases.DefaultPageLimit
	}
	if limit > databases.MaxPageLimit {
		limit = databases.MaxPageLimit
	}
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	if page > databases.MaxPage {
		page = databases.MaxPage
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	docs, err := rc.DB.FindPage(ctx, c.Name, bson.M{}, limit, page)
	if err != nil {
		config.ErrorStatus("failed to get records", http.StatusInternalServerError, w, err)
		return
	}
	total, err := rc.DB.CountDocuments(ctx, c.Name, bson.M{})
	if err != nil {
		config.ErrorStatus("failed to count records", http.StatusInternalServerError, w, err)
		return
	}
	if docs == nil {
		docs = []bson.M{}
	}

	api.WriteJSON(w, http.StatusOK, models.PageResponse{
		Success: true,
		Data:    docs,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}

// RecordByIDHandler returns a single record by its key field
func (rc Record) RecordByIDHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := collectionFromRequest(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	doc, err := rc.DB.FindOne(ctx, c.Name, bson.M{c.KeyField: id})
	if errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("Record not found", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get record", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Data: doc})
}

// CreateRecordHandler inserts a record, generating its key when the body has none
func (rc Record) CreateRecordHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := collectionFromRequest(w, r)
	if !ok {
		return
	}
	doc, ok := decodeDocument(w, r)
	if !ok {
		return
	}
	delete(doc, "_id")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	key, _ := doc[c.KeyField].(string)
	if key == "" {
		existing, err := rc.DB.Distinct(ctx, c.Name, c.KeyField, bson.M{})
		if err != nil {
			config.ErrorStatus("failed to generate record id", http.StatusInternalServerError, w, err)
			return
		}
		key = registration.GenerateID(c.Prefix, stringValues(existing))
		doc[c.KeyField] = key
	} else {
		_, err := rc.DB.FindOne(ctx, c.Name, bson.M{c.KeyField: key})
		if err == nil {
			config.ErrorStatus("Record already exists", http.StatusConflict, w, nil)
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("failed to check record id", http.StatusInternalServerError, w, err)
			return
		}
	}

	if _, err := rc.DB.InsertOne(ctx, c.Name, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			config.ErrorStatus("Record already exists", http.StatusConflict, w, err)
			return
		}
		config.ErrorStatus("failed to create record", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("record created", "collection", c.Name, c.KeyField, key)
	api.WriteJSON(w, http.StatusCreated, models.SuccessResponse{
		Success: true,
		Message: "Record created",
		Data:    doc,
	})
}

// UpdateRecordHandler sets the body's fields on the record; the key and _id cannot change
func (rc Record) UpdateRecordHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := collectionFromRequest(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	doc, ok := decodeDocument(w, r)
	if !ok {
		return
	}
	delete(doc, "_id")
	delete(doc, c.KeyField)
	if len(doc) == 0 {
		config.ErrorStatus("No fields to update", http.StatusBadRequest, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := rc.DB.UpdateOne(ctx, c.Name, bson.M{c.KeyField: id}, bson.M{"$set": doc})
	if err != nil {
		config.ErrorStatus("failed to update record", http.StatusInternalServerError, w, err)
		return
	}
	if res == nil || res.MatchedCount == 0 {
		config.ErrorStatus("Record not found", http.StatusNotFound, w, nil)
		return
	}
	api.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Record updated"})
}

// DeleteRecordHandler removes a record by its key field
func (rc Record) DeleteRecordHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := collectionFromRequest(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := rc.DB.DeleteOne(ctx, c.Name, bson.M{c.KeyField: id})
	if err != nil {
		config.ErrorStatus("failed to delete record", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("Record not found", http.StatusNotFound, w, nil)
		return
	}
	api.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Record deleted"})
}

func collectionFromRequest(w http.ResponseWriter, r *http.Request) (models.Collection, bool) {
	name := mux.Vars(r)["collection"]
	c, ok := models.LookupCollection(name)
	if !ok {
		config.ErrorStatus("Unknown collection", http.StatusNotFound, w, nil)
	}
	return c, ok
}

func decodeDocument(w http.ResponseWriter, r *http.Request) (bson.M, bool) {
	var doc map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		config.ErrorStatus("Invalid request body", http.StatusBadRequest, w, err)
		return nil, false
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return bson.M(doc), true
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		zap.S().Warnw("ignoring invalid query parameter", "key", key, "value", raw)
		return def
	}
	return n
}

func stringValues(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
