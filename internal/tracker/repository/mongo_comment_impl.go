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

func (r *MongoRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	if comment.ID == "" {
		comment.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Comments.InsertOne(ctx, comment)
	return err
}

func (r *MongoRepository) FindCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.Comments.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// FindCommentsByIncident returns the thread in insertion order.
func (r *MongoRepository) FindCommentsByIncident(ctx context.Context, incidentID string) ([]*model.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.Comments.Find(ctx, bson.M{"incident_id": incidentID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.Comment
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoRepository) DeleteComment(ctx context.Context, id string) error {
	_, err := r.Comments.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoRepository) DeleteCommentsByIncidents(ctx context.Context, incidentIDs []string) error {
	_, err := r.Comments.DeleteMany(ctx, bson.M{"incident_id": bson.M{"$in": incidentIDs}})
	return err
}
