package databases

// go generate: mockery --name DashboardDatabase

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"github.com/linesmerrill/police-records-api/models"
)

// DashboardDatabase computes the aggregate statistics shown on the dashboard
type DashboardDatabase interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardDatabase struct {
	records RecordDatabase
}

// NewDashboardDatabase initializes a new dashboard database on top of the record database
func NewDashboardDatabase(records RecordDatabase) DashboardDatabase {
	return &dashboardDatabase{
		records: records,
	}
}

// topStatutesLimit is how many statute codes the dashboard ranks
const topStatutesLimit = 5

var (
	casesByStatusPipeline = bson.A{
		bson.M{"$group": bson.M{"_id": bson.M{"$toLower": "$status"}, "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
	}
	arrestsByMonthPipeline = bson.A{
		bson.M{"$match": bson.M{"date": bson.M{"$type": "string"}}},
		bson.M{"$group": bson.M{"_id": bson.M{"$substrBytes": bson.A{"$date", 0, 7}}, "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"_id": 1}},
	}
	topStatutesPipeline = bson.A{
		bson.M{"$group": bson.M{"_id": "$statuteCode", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
		bson.M{"$limit": topStatutesLimit},
	}
)

func (d *dashboardDatabase) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{Counts: map[string]int64{}}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, c := range models.Collections() {
		name := c.Name
		g.Go(func() error {
			n, err := d.records.CountDocuments(ctx, name, bson.M{})
			if err != nil {
				return err
			}
			mu.Lock()
			stats.Counts[name] = n
			mu.Unlock()
			return nil
		})
	}
	g.Go(func() error {
		buckets, err := d.buckets(ctx, models.CasesCollection, casesByStatusPipeline)
		stats.CasesByStatus = buckets
		return err
	})
	g.Go(func() error {
		buckets, err := d.buckets(ctx, models.ArrestsCollection, arrestsByMonthPipeline)
		stats.ArrestsByMonth = buckets
		return err
	})
	g.Go(func() error {
		buckets, err := d.buckets(ctx, models.ChargesCollection, topStatutesPipeline)
		stats.TopStatutes = buckets
		return err
	})
	var convicted int64
	g.Go(func() error {
		n, err := d.records.CountDocuments(ctx, models.ChargesCollection, bson.M{"isConvicted": true})
		convicted = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if total := stats.Counts[models.ChargesCollection]; total > 0 {
		stats.ConvictionRate = float64(convicted) / float64(total)
	}
	stats.GeneratedAt = time.Now().UTC()
	return stats, nil
}

func (d *dashboardDatabase) buckets(ctx context.Context, collection string, pipeline bson.A) ([]models.BucketCount, error) {
	docs, err := d.records.Aggregate(ctx, collection, pipeline)
	if err != nil {
		return nil, err
	}
	buckets := make([]models.BucketCount, 0, len(docs))
	for _, doc := range docs {
		buckets = append(buckets, models.BucketCount{
			Key:   bucketKey(doc["_id"]),
			Count: toInt64(doc["count"]),
		})
	}
	return buckets, nil
}

func bucketKey(v interface{}) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return "unknown"
	}
	return s
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
