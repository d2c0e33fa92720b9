package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"main/config"
	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func GetActivityRepo(client *mongo.Client, cfg config.DatabaseConfig) *ActivityRepo {
	return &ActivityRepo{
		MongoCollection: client.Database(cfg.DatabaseName).Collection(cfg.ActivitiesCollection),
	}
}

type ActivityRepo struct {
	MongoCollection *mongo.Collection
}

// GetUserActivitiesInRange returns all activities logged by the given user
// with createdAt inside [start, end]. Both bounds are inclusive.
func (r *ActivityRepo) GetUserActivitiesInRange(ctx context.Context, email string, start, end time.Time) ([]model.Activity, error) {
	timer := utils.TrackDBOperation("find", "activities")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user": email,
		"createdAt": bson.M{
			"$gte": start,
			"$lte": end,
		},
	}

	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		utils.TrackError("database", "activities_fetch_failed")
		return nil, fmt.Errorf("failed to fetch activities for %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	var activities []model.Activity
	for cursor.Next(ctx) {
		var activity model.Activity
		if err := cursor.Decode(&activity); err != nil {
			utils.TrackError("database", "activity_decode_failed")
			log.Printf("Skipping malformed activity document for %s: %v", email, err)
			continue
		}
		activities = append(activities, activity)
	}
	if err := cursor.Err(); err != nil {
		utils.TrackError("database", "activities_cursor_error")
		return nil, fmt.Errorf("failed to iterate activities for %s: %w", email, err)
	}

	return activities, nil
}
