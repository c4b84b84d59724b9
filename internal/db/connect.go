package db

import (
	"context"
	"time"

	"taskboard/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens the Mongo client and pings the deployment.
func Connect(uri, database string) (*mongo.Client, *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Fatal("failed to create mongo client", "error", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal("failed to ping mongo", "error", err)
	}

	logger.Info("database connected", "db", database)
	return client, client.Database(database)
}

// EnsureIndexes creates the indexes the queries rely on. Index creation is
// idempotent; failures are logged and do not abort startup.
func EnsureIndexes(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	create := func(coll string, models []mongo.IndexModel) {
		_, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			logger.Warn("failed to create indexes", "collection", coll, "error", err)
		}
	}

	unique := options.Index().SetUnique(true)

	create("users", []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	})

	create("boards", []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "members", Value: 1}}},
	})

	create("lists", []mongo.IndexModel{
		{Keys: bson.D{{Key: "board", Value: 1}, {Key: "position", Value: 1}}},
	})

	create("tasks", []mongo.IndexModel{
		{Keys: bson.D{{Key: "list", Value: 1}, {Key: "position", Value: 1}}},
		{Keys: bson.D{{Key: "board", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "due_date", Value: 1}}},
		{Keys: bson.D{{Key: "priority", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
	})

	create("labels", []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}, {Key: "board", Value: 1}}, Options: unique},
	})
}
