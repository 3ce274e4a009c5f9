package clientRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vvladislovv/buitifal/database"
	"github.com/vvladislovv/buitifal/models"
)

// MongoClientRepo implements ClientRepository using MongoDB.
type MongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo creates a new ClientRepository backed by MongoDB.
func NewMongoClientRepo() ClientRepository {
	coll := database.MongoClient.Database("buitifal").Collection("clients")
	repo := &MongoClientRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create client indexes: %v\n", err)
	}
	return repo
}

func (r *MongoClientRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create client indexes: %w", err)
	}
	return nil
}

func (r *MongoClientRepo) GetByID(ctx context.Context, id string) (*models.ClientAccount, error) {
	var acc models.ClientAccount
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&acc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client account %s: %w", id, err)
	}
	return &acc, nil
}

func (r *MongoClientRepo) Upsert(ctx context.Context, acc *models.ClientAccount) error {
	now := time.Now()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = now
	}
	acc.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": acc.ID}, acc, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert client account %s: %w", acc.ID, err)
	}
	return nil
}
