package reservationRepo

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

// MongoReservationRepo implements ReservationRepository using MongoDB.
type MongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo creates a new ReservationRepository backed by MongoDB.
func NewMongoReservationRepo() ReservationRepository {
	coll := database.MongoClient.Database("buitifal").Collection("reservations")
	repo := &MongoReservationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create reservation indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates the indexes the repository relies on. The partial
// unique index over non-cancelled statuses is the authoritative guard against
// double booking: InsertIfFree is a plain insert and the index arbitrates
// concurrent commits for the same slot.
func (r *MongoReservationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("provider_date_start_active_unique").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{
						string(models.StatusConfirmed),
						string(models.StatusCompleted),
					}},
				}),
		},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("client_date_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}

func (r *MongoReservationRepo) FindByProviderDate(ctx context.Context, providerID, date string) ([]models.Reservation, error) {
	filter := bson.M{"providerId": providerID, "date": date}
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations for provider %s on %s: %w", providerID, date, err)
	}
	defer cur.Close(ctx)

	var out []models.Reservation
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return out, nil
}

func (r *MongoReservationRepo) InsertIfFree(ctx context.Context, res *models.Reservation) error {
	_, err := r.coll.InsertOne(ctx, res)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

func (r *MongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation %s: %w", id, err)
	}
	return &res, nil
}

func (r *MongoReservationRepo) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update reservation %s status: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoReservationRepo) MarkReminderSent(ctx context.Context, id string) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"reminderSent": true}})
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent for reservation %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoReservationRepo) ListByClient(ctx context.Context, clientID string) ([]models.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "start", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"clientId": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for client %s: %w", clientID, err)
	}
	defer cur.Close(ctx)

	var out []models.Reservation
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return out, nil
}
