package config

import (
	"context"
	"fmt"
	"time"

	"main/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type DatabaseConfig struct {
	URI                  string
	MaxPoolSize          uint64
	MinPoolSize          uint64
	MaxConnIdleTime      time.Duration
	DatabaseName         string
	UsersCollection      string
	ActivitiesCollection string
	RetryWrites          bool
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:                  utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:          utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:          utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime:      utils.GetEnvAsDuration("MONGO_MAX_CONN_IDLE_TIME", 60*time.Second),
		DatabaseName:         utils.GetEnvAsString("MONGO_DB", "goaltracker"),
		UsersCollection:      utils.GetEnvAsString("USERS_COLLECTION", "users"),
		ActivitiesCollection: utils.GetEnvAsString("ACTIVITIES_COLLECTION", "activities"),
		RetryWrites:          utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

// ConnectMongo establishes and pings a MongoDB client from the given config.
// The caller owns the client lifecycle; nothing here is global.
func ConnectMongo(ctx context.Context, cfg DatabaseConfig) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetRetryWrites(cfg.RetryWrites)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}
