package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentMarker is written into every event description created by the
// service and used to recognise those events when listing a calendar.
const AppointmentMarker = "Scheduled via CheckFree"

// Appointment is a document of the appointments collection.
type Appointment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SellerID      primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	BuyerID       primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	Title         string             `bson:"title" json:"title"`
	StartTime     time.Time          `bson:"startTime" json:"startTime"`
	EndTime       time.Time          `bson:"endTime" json:"endTime"`
	GoogleEventID string             `bson:"googleEventId" json:"googleEventId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// AppointmentRequest is the payload of POST /api/appointments.
type AppointmentRequest struct {
	SellerID  string `json:"sellerId" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Title     string `json:"title" binding:"required"`
}
