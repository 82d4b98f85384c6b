package appointment

import (
	"context"
	"fmt"
	"strings"

	"checkfree/models"
	"checkfree/services/calendar"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upcoming returns the CheckFree events in the user's primary calendar from
// now until now+Lookahead.
func (s *DefaultAppointmentService) Upcoming(ctx context.Context, email string) ([]models.CalendarEvent, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	token, err := calendar.UserToken(ctx, s.Calendar, s.Cipher, user.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", email, err)
	}

	now := s.now()
	events, err := s.Calendar.ListEvents(ctx, token, now, now.Add(s.Lookahead))
	if err != nil {
		return nil, err
	}

	out := make([]models.CalendarEvent, 0, len(events))
	for _, evt := range events {
		if strings.Contains(evt.Description, models.AppointmentMarker) {
			out = append(out, evt)
		}
	}
	return out, nil
}

// History returns the stored appointments of userID, newest first.
func (s *DefaultAppointmentService) History(ctx context.Context, userID string) ([]models.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}
	appts, err := s.Appointments.ListForUser(ctx, oid, s.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}
