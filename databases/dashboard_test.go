package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/police-records-api/databases"
	"github.com/linesmerrill/police-records-api/databases/mocks"
	"github.com/linesmerrill/police-records-api/models"
)

func TestDashboardDatabase_Stats(t *testing.T) {
	records := &mocks.RecordDatabase{}

	for _, c := range models.Collections() {
		n := int64(0)
		switch c.Name {
		case "charges":
			n = 4
		case "arrests":
			n = 3
		}
		records.On("CountDocuments", mock.Anything, c.Name, bson.M{}).Return(n, nil)
	}
	records.On("CountDocuments", mock.Anything, "charges", bson.M{"isConvicted": true}).Return(int64(1), nil)
	records.On("Aggregate", mock.Anything, "cases", mock.Anything).
		Return([]bson.M{{"_id": "open", "count": int32(2)}, {"_id": nil, "count": int32(1)}}, nil)
	records.On("Aggregate", mock.Anything, "arrests", mock.Anything).
		Return([]bson.M{{"_id": "2024-03", "count": int32(3)}}, nil)
	records.On("Aggregate", mock.Anything, "charges", mock.Anything).
		Return([]bson.M{{"_id": "PC-484", "count": int64(4)}}, nil)

	stats, err := databases.NewDashboardDatabase(records).Stats(context.Background())
	require.NoError(t, err)

	assert.Len(t, stats.Counts, len(models.Collections()))
	assert.Equal(t, int64(3), stats.Counts["arrests"])
	assert.Equal(t, []models.BucketCount{{Key: "open", Count: 2}, {Key: "unknown", Count: 1}}, stats.CasesByStatus)
	assert.Equal(t, []models.BucketCount{{Key: "2024-03", Count: 3}}, stats.ArrestsByMonth)
	assert.Equal(t, []models.BucketCount{{Key: "PC-484", Count: 4}}, stats.TopStatutes)
	assert.Equal(t, 0.25, stats.ConvictionRate)
	assert.False(t, stats.GeneratedAt.IsZero())
}

func TestDashboardDatabase_StatsError(t *testing.T) {
	records := &mocks.RecordDatabase{}
	records.On("CountDocuments", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)
	records.On("Aggregate", mock.Anything, "cases", mock.Anything).Return(nil, errors.New("mocked-error"))
	records.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).Return([]bson.M{}, nil)

	stats, err := databases.NewDashboardDatabase(records).Stats(context.Background())

	assert.Nil(t, stats)
	assert.EqualError(t, err, "mocked-error")
}
