package repository

import (
	"context"
	"fmt"
	"log"

	"main/config"
	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func GetUserRepo(client *mongo.Client, cfg config.DatabaseConfig) *UserRepo {
	return &UserRepo{
		MongoCollection: client.Database(cfg.DatabaseName).Collection(cfg.UsersCollection),
	}
}

type UserRepo struct {
	MongoCollection *mongo.Collection
}

// GetAllUsers returns every user document. Documents that fail to decode are
// logged and skipped rather than failing the whole fetch.
func (r *UserRepo) GetAllUsers(ctx context.Context) ([]model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.D{})
	if err != nil {
		utils.TrackError("database", "users_fetch_failed")
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []model.User
	for cursor.Next(ctx) {
		var user model.User
		if err := cursor.Decode(&user); err != nil {
			utils.TrackError("database", "user_decode_failed")
			log.Printf("Skipping malformed user document: %v", err)
			continue
		}
		users = append(users, user)
	}
	if err := cursor.Err(); err != nil {
		utils.TrackError("database", "users_cursor_error")
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// FindUserByEmail returns nil, nil when no user matches.
func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	filter := bson.D{{Key: "email", Value: email}}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.TrackError("database", "user_not_found")
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		log.Println("Error finding user:", err)
		return nil, err
	}

	return &user, nil
}
