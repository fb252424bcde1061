package repository

import (
	"context"
	"regexp"
	"time"

	"incidenthub/internal/tracker/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) CreateAuditLog(ctx context.Context, entry *model.AuditLog) error {
	if entry.ID == "" {
		entry.ID = primitive.NewObjectID().Hex()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	_, err := r.AuditLogs.InsertOne(ctx, entry)
	return err
}

func (r *MongoRepository) FindAuditLogs(ctx context.Context, req model.ListAuditLogsReq) ([]*model.AuditLog, int64, error) {
	filter := bson.M{}
	if req.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(req.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"details": pattern},
			bson.M{"action": pattern},
		}
	}

	total, err := r.AuditLogs.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sortField := "timestamp"
	sortDir := -1
	if req.SortBy != "" {
		sortField = req.SortBy
		sortDir = 1
		if req.SortOrder == "desc" {
			sortDir = -1
		}
	}

	skip := int64((req.Page - 1) * req.Limit)
	findOptions := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(skip).
		SetLimit(int64(req.Limit))

	cursor, err := r.AuditLogs.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var results []*model.AuditLog
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *MongoRepository) FindAuditLogsByResource(ctx context.Context, resourceType, resourceID string) ([]*model.AuditLog, error) {
	filter := bson.M{"resource_type": resourceType, "resource_id": resourceID}
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.AuditLogs.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.AuditLog
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
