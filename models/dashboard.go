package models

import "time"

// DashboardStats aggregates record counts and arrest/charge breakdowns for the dashboard
type DashboardStats struct {
	Counts         map[string]int64 `json:"counts"`
	CasesByStatus  []BucketCount    `json:"casesByStatus"`
	ArrestsByMonth []BucketCount    `json:"arrestsByMonth"`
	TopStatutes    []BucketCount    `json:"topStatutes"`
	ConvictionRate float64          `json:"convictionRate"`
	GeneratedAt    time.Time        `json:"generatedAt"`
}

// BucketCount is one row of a $group aggregation
type BucketCount struct {
	Key   string `json:"key" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// SchemaField describes one field observed in a collection sample
type SchemaField struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
	Key   bool     `json:"key,omitempty"`
}

// CollectionSchema is the inferred shape of a collection
type CollectionSchema struct {
	Collection string        `json:"collection"`
	KeyField   string        `json:"keyField"`
	Sampled    int           `json:"sampled"`
	Fields     []SchemaField `json:"fields"`
}
