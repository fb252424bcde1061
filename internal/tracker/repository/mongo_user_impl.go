package repository

import (
	"context"
	"errors"

	"incidenthub/internal/tracker/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoRepository) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoRepository) FindUsersByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	cursor, err := r.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.User
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoRepository) FindUsersByRoles(ctx context.Context, roles []string) ([]*model.User, error) {
	cursor, err := r.Users.Find(ctx, bson.M{"role": bson.M{"$in": roles}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.User
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
