package calendar

import (
	"context"
	"time"

	"checkfree/models"

	"golang.org/x/oauth2"
)

// EventInput describes an event to create in a primary calendar.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Attendees   []string
}

// Client is the subset of the calendar provider the service needs.
type Client interface {
	// RefreshAccessToken exchanges a refresh token for a fresh access token.
	RefreshAccessToken(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	// FreeBusy returns the busy intervals of the calendar identified by email.
	FreeBusy(ctx context.Context, token *oauth2.Token, email string, timeMin, timeMax time.Time) ([]models.BusyInterval, error)
	// CreateEvent inserts an event with a video conference into the primary calendar.
	CreateEvent(ctx context.Context, token *oauth2.Token, in EventInput) (*models.CalendarEvent, error)
	// ListEvents lists single events of the primary calendar ordered by start time.
	ListEvents(ctx context.Context, token *oauth2.Token, timeMin, timeMax time.Time) ([]models.CalendarEvent, error)
	// DeleteEvent removes an event from the primary calendar.
	DeleteEvent(ctx context.Context, token *oauth2.Token, eventID string) error
}
