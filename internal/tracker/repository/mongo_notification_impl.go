package repository

import (
	"context"
	"errors"

	"incidenthub/internal/tracker/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) CreateNotification(ctx context.Context, n *model.Notification) error {
	if n.ID == "" {
		n.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Notifications.InsertOne(ctx, n)
	return err
}

func (r *MongoRepository) FindNotificationByID(ctx context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	err := r.Notifications.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *MongoRepository) FindNotificationsByUser(ctx context.Context, userID string, limit int) ([]*model.Notification, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.Notifications.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.Notification
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoRepository) MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Notification
	err := r.Notifications.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

func (r *MongoRepository) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := r.Notifications.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	return err
}

func (r *MongoRepository) DeleteNotification(ctx context.Context, id string) error {
	_, err := r.Notifications.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoRepository) DeleteReadNotifications(ctx context.Context, userID string) error {
	_, err := r.Notifications.DeleteMany(ctx, bson.M{"user_id": userID, "read": true})
	return err
}
