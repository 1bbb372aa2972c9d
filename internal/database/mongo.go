package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mertdogan/estately/internal/config"
)

// Collection names.
const (
	UsersCollection    = "users"
	ListingsCollection = "listings"
)

// Connect establishes the MongoDB connection and ensures the unique indexes
// on users.username and users.email. Those indexes are the authoritative
// uniqueness guard; the friendlier pre-insert checks in the auth service are
// only an optimization.
func Connect(cfg *config.Config, logger *slog.Logger) (*mongo.Database, error) {
	logger.Info("🔌 [Database] Connecting to MongoDB...",
		"uri", cfg.MongoURI,
		"database", cfg.MongoDatabase,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)

	if err := ensureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Info("✅ [Database] MongoDB connection established")
	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	})
	if err != nil {
		return err
	}

	// Search sorts default to creation time.
	_, err = db.Collection(ListingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}

// Disconnect closes the underlying client connection.
func Disconnect(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.Client().Disconnect(ctx)
}
