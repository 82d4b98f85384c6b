package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"checkfree/database"
	"checkfree/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates the repository on the appointments collection.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{coll: database.DB().Collection("appointments")}

	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("failed to create appointment indexes", zap.Error(err))
	}
	return repo
}

// Create inserts a new appointment document.
func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = time.Now()
	}

	res, err := r.coll.InsertOne(ctx, appt)
	if err != nil {
		return fmt.Errorf("error creating appointment: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		appt.ID = id
	}
	return nil
}

// ListForUser returns the appointments of a buyer or seller, newest first.
func (r *MongoAppointmentRepo) ListForUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"buyerId": userID},
		{"sellerId": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments for %s: %w", userID.Hex(), err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// ensureIndexes creates the per-party indexes used by ListForUser.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sellerId", Value: 1}, {Key: "startTime", Value: -1}}},
		{Keys: bson.D{{Key: "buyerId", Value: 1}, {Key: "startTime", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
