package appointmentRepo

import (
	"context"

	"checkfree/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentRepository persists booked appointments.
type AppointmentRepository interface {
	// Create inserts a booked appointment and sets its ID.
	Create(ctx context.Context, appt *models.Appointment) error
	// ListForUser returns appointments where userID is buyer or seller, newest first.
	ListForUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Appointment, error)
}
