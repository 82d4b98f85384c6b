package appointment

import (
	"context"
	"errors"
	"time"

	appointmentRepo "checkfree/database/repository/appointment"
	userRepo "checkfree/database/repository/user"
	"checkfree/models"
	"checkfree/services/calendar"
)

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrUserNotFound     = errors.New("user not found")
)

// AppointmentService books appointments into both participants' calendars.
type AppointmentService interface {
	// Book creates the event in the seller's and the buyer's calendars and
	// records the appointment. It returns the seller's event.
	Book(ctx context.Context, buyerEmail string, req models.AppointmentRequest) (*models.CalendarEvent, error)
	// Upcoming lists the user's CheckFree events within the lookahead.
	Upcoming(ctx context.Context, email string) ([]models.CalendarEvent, error)
	// History lists stored appointments where the user is buyer or seller.
	History(ctx context.Context, userID string) ([]models.Appointment, error)
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Users        userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository
	Calendar     calendar.Client
	Cipher       calendar.TokenDecrypter
	Lookahead    time.Duration
	HistoryLimit int64
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
