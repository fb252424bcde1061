package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"incidenthub/internal/tracker/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) CreateIncident(ctx context.Context, incident *model.Incident) error {
	if incident.ID == "" {
		incident.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Incidents.InsertOne(ctx, incident)
	return err
}

func (r *MongoRepository) FindIncidentByID(ctx context.Context, id string) (*model.Incident, error) {
	var incident model.Incident
	err := r.Incidents.FindOne(ctx, bson.M{"_id": id}).Decode(&incident)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &incident, nil
}

func (r *MongoRepository) FindIncidents(ctx context.Context, req model.ListIncidentsReq) ([]*model.Incident, int64, error) {
	filter := bson.M{}
	if req.Status != "" {
		filter["status"] = req.Status
	}
	if req.Category != "" {
		filter["category"] = req.Category
	}
	if req.Priority != "" {
		filter["priority"] = req.Priority
	}
	if req.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(req.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	total, err := r.Incidents.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sortField := "created_at"
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

	cursor, err := r.Incidents.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var results []*model.Incident
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *MongoRepository) FindIncidentsByReporter(ctx context.Context, userID string) ([]*model.Incident, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.Incidents.Find(ctx, bson.M{"reported_by": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.Incident
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoRepository) FindIncidentsByIDs(ctx context.Context, ids []string) ([]*model.Incident, error) {
	cursor, err := r.Incidents.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.Incident
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoRepository) UpdateIncidentFields(ctx context.Context, id string, req model.UpdateIncidentReq, now time.Time) (*model.Incident, error) {
	set := bson.M{"updated_at": now}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Priority != nil {
		set["priority"] = *req.Priority
	}
	if req.Evidence != nil {
		set["evidence"] = req.Evidence
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Incident
	err := r.Incidents.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// UpdateIncidentStatus sets the status and appends the ledger entry in a
// single write so the two can never diverge under concurrent mutations.
func (r *MongoRepository) UpdateIncidentStatus(ctx context.Context, id, status string, entry model.StatusEntry, now time.Time) (bool, error) {
	update := bson.M{
		"$set":  bson.M{"status": status, "updated_at": now},
		"$push": bson.M{"status_history": entry},
	}
	res, err := r.Incidents.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// AssignIncident first attempts the compound open -> in-progress transition
// with a conditional filter; when the incident is not open it falls back to a
// plain assignment write with no history entry.
func (r *MongoRepository) AssignIncident(ctx context.Context, id, assigneeID string, entry model.StatusEntry, now time.Time) (bool, bool, error) {
	compound := bson.M{
		"$set": bson.M{
			"assigned_to": assigneeID,
			"assigned_at": now,
			"status":      model.StatusInProgress,
			"updated_at":  now,
		},
		"$push": bson.M{"status_history": entry},
	}
	res, err := r.Incidents.UpdateOne(ctx, bson.M{"_id": id, "status": model.StatusOpen}, compound)
	if err != nil {
		return false, false, err
	}
	if res.MatchedCount > 0 {
		return true, true, nil
	}

	plain := bson.M{
		"$set": bson.M{
			"assigned_to": assigneeID,
			"assigned_at": now,
			"updated_at":  now,
		},
	}
	res, err = r.Incidents.UpdateOne(ctx, bson.M{"_id": id}, plain)
	if err != nil {
		return false, false, err
	}
	return res.MatchedCount > 0, false, nil
}

func (r *MongoRepository) BulkUpdateStatus(ctx context.Context, ids []string, status string, entry model.StatusEntry, now time.Time) (int64, error) {
	update := bson.M{
		"$set":  bson.M{"status": status, "updated_at": now},
		"$push": bson.M{"status_history": entry},
	}
	res, err := r.Incidents.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SetResolvedAt only touches incidents whose resolvedAt is still unset, so a
// resolution timestamp is written at most once per incident.
func (r *MongoRepository) SetResolvedAt(ctx context.Context, ids []string, now time.Time) error {
	filter := bson.M{
		"_id":         bson.M{"$in": ids},
		"resolved_at": bson.M{"$exists": false},
	}
	_, err := r.Incidents.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"resolved_at": now}})
	return err
}

func (r *MongoRepository) DeleteIncident(ctx context.Context, id string) error {
	_, err := r.Incidents.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoRepository) DeleteIncidents(ctx context.Context, ids []string) (int64, error) {
	res, err := r.Incidents.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoRepository) IncidentStats(ctx context.Context) (*model.DashboardStats, error) {
	total, err := r.Incidents.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{Total: total}

	stats.ByStatus, err = r.countByField(ctx, "$status")
	if err != nil {
		return nil, err
	}
	stats.ByCategory, err = r.countByField(ctx, "$category")
	if err != nil {
		return nil, err
	}
	stats.ByPriority, err = r.countByField(ctx, "$priority")
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(5)
	cursor, err := r.Incidents.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, &stats.Recent); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *MongoRepository) countByField(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.Incidents.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	return counts, cursor.Err()
}
