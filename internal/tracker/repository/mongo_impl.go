package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections groups the collection names the repository operates on.
type Collections struct {
	Incidents     string
	Comments      string
	Notifications string
	AuditLogs     string
	Users         string
}

type MongoRepository struct {
	Incidents     *mongo.Collection
	Comments      *mongo.Collection
	Notifications *mongo.Collection
	AuditLogs     *mongo.Collection
	Users         *mongo.Collection
	Client        *mongo.Client
}

func NewMongoRepository(db *mongo.Database, cols Collections) *MongoRepository {
	return &MongoRepository{
		Incidents:     db.Collection(cols.Incidents),
		Comments:      db.Collection(cols.Comments),
		Notifications: db.Collection(cols.Notifications),
		AuditLogs:     db.Collection(cols.AuditLogs),
		Users:         db.Collection(cols.Users),
		Client:        db.Client(),
	}
}

func (r *MongoRepository) EnsureIncidentIndexes(ctx context.Context) error {
	incidentIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_status_created"),
		},
		{
			Keys: bson.D{
				{Key: "reported_by", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_reporter_created"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}
	if _, err := r.Incidents.Indexes().CreateMany(ctx, incidentIndexes); err != nil {
		return err
	}

	commentIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "incident_id", Value: 1},
			{Key: "created_at", Value: 1},
		},
		Options: options.Index().SetName("idx_incident_created"),
	}
	if _, err := r.Comments.Indexes().CreateOne(ctx, commentIndex); err != nil {
		return err
	}

	notificationIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("idx_user_created"),
	}
	if _, err := r.Notifications.Indexes().CreateOne(ctx, notificationIndex); err != nil {
		return err
	}

	auditIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_timestamp"),
		},
		{
			Keys: bson.D{
				{Key: "resource_type", Value: 1},
				{Key: "resource_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_resource_query"),
		},
	}
	_, err := r.AuditLogs.Indexes().CreateMany(ctx, auditIndexes)
	return err
}
