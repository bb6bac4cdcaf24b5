package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ids-dashboard/models"
)

// ListLimit caps how many records the logs endpoint returns. The dashboard
// table shows a fixed window, there is no pagination.
const ListLimit = 100

// InsertLog appends one security event. The caller validates required
// fields; this stamps the server-side timestamp and applies defaults.
func InsertLog(ctx context.Context, entry *models.LogEntry) error {
	collection := database.Collection("logs")

	entry.ID = primitive.NewObjectID()
	entry.Timestamp = time.Now()
	if entry.ActionTaken == "" {
		entry.ActionTaken = models.DefaultAction
	}
	if entry.Details == nil {
		entry.Details = map[string]interface{}{}
	}

	if _, err := collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert log: %w", err)
	}

	return nil
}

// ListLogs returns the most recent records, newest first.
func ListLogs(ctx context.Context) ([]models.LogEntry, error) {
	collection := database.Collection("logs")

	findOptions := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(ListLimit)

	cursor, err := collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []models.LogEntry{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}

	return logs, nil
}

// GetLogStats computes the dashboard aggregates: total count, counts by
// type and by action, and hourly buckets over the last 24 hours.
func GetLogStats(ctx context.Context) (*models.LogStats, error) {
	collection := database.Collection("logs")

	totalLogs, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count logs: %w", err)
	}

	logsByType, err := groupByField(ctx, "$type")
	if err != nil {
		return nil, err
	}

	logsByAction, err := groupByField(ctx, "$action_taken")
	if err != nil {
		return nil, err
	}

	last24Hours := time.Now().Add(-24 * time.Hour)
	hourlyPipeline := []bson.M{
		{"$match": bson.M{"timestamp": bson.M{"$gte": last24Hours}}},
		{"$group": bson.M{
			"_id": bson.M{
				"hour": bson.M{"$hour": "$timestamp"},
				"day":  bson.M{"$dayOfMonth": "$timestamp"},
			},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.D{{Key: "_id.day", Value: 1}, {Key: "_id.hour", Value: 1}}},
	}

	cursor, err := collection.Aggregate(ctx, hourlyPipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate hourly logs: %w", err)
	}
	defer cursor.Close(ctx)

	logsByHour := []models.HourlyCount{}
	if err := cursor.All(ctx, &logsByHour); err != nil {
		return nil, err
	}

	return &models.LogStats{
		TotalLogs:    totalLogs,
		LogsByType:   logsByType,
		LogsByAction: logsByAction,
		LogsByHour:   logsByHour,
	}, nil
}

func groupByField(ctx context.Context, field string) ([]models.GroupCount, error) {
	collection := database.Collection("logs")

	pipeline := []bson.M{
		{"$group": bson.M{"_id": field, "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate logs by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	counts := []models.GroupCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}

	return counts, nil
}
