package calendar

import (
	"context"
	"fmt"
	"time"

	"checkfree/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	primaryCalendar = "primary"
	defaultTimeout  = 15 * time.Second
)

var tracer = otel.Tracer("checkfree/services/calendar")

// GoogleClient talks to the Google Calendar v3 API on behalf of individual users.
type GoogleClient struct {
	OAuth *oauth2.Config
	// Options are added to every calendar service (e.g. a custom endpoint).
	Options []option.ClientOption
	// Timeout bounds every upstream call. Zero means 15s.
	Timeout time.Duration
}

// NewGoogleClient creates a client that refreshes tokens with oauthCfg.
func NewGoogleClient(oauthCfg *oauth2.Config, opts ...option.ClientOption) *GoogleClient {
	return &GoogleClient{OAuth: oauthCfg, Options: opts, Timeout: defaultTimeout}
}

func (g *GoogleClient) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, context.CancelFunc, trace.Span) {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, sp := tracer.Start(ctx, "google.calendar#"+name, trace.WithAttributes(attrs...))
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, cancel, sp
}

func fail(sp trace.Span, err error) error {
	sp.RecordError(err)
	sp.SetStatus(codes.Error, err.Error())
	return err
}

func (g *GoogleClient) service(ctx context.Context, token *oauth2.Token) (*gcal.Service, error) {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	opts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, g.Options...)
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}
	return svc, nil
}

// RefreshAccessToken performs a refresh-token grant.
func (g *GoogleClient) RefreshAccessToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	ctx, cancel, sp := g.start(ctx, "RefreshAccessToken")
	defer sp.End()
	defer cancel()

	token, err := g.OAuth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, fail(sp, fmt.Errorf("failed to refresh access token: %w", err))
	}
	return token, nil
}

// FreeBusy queries the busy intervals of the calendar email within [timeMin, timeMax).
func (g *GoogleClient) FreeBusy(ctx context.Context, token *oauth2.Token, email string, timeMin, timeMax time.Time) ([]models.BusyInterval, error) {
	ctx, cancel, sp := g.start(ctx, "FreeBusy",
		attribute.String("calendar.id", email),
		attribute.String("calendar.time_min", timeMin.UTC().Format(time.RFC3339)),
		attribute.String("calendar.time_max", timeMax.UTC().Format(time.RFC3339)),
	)
	defer sp.End()
	defer cancel()

	svc, err := g.service(ctx, token)
	if err != nil {
		return nil, fail(sp, err)
	}

	res, err := svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: timeMin.UTC().Format(time.RFC3339),
		TimeMax: timeMax.UTC().Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: email}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fail(sp, fmt.Errorf("free/busy query for %s failed: %w", email, err))
	}

	cal, ok := res.Calendars[email]
	if !ok {
		return []models.BusyInterval{}, nil
	}
	if len(cal.Errors) > 0 {
		return nil, fail(sp, fmt.Errorf("free/busy query for %s returned %s/%s", email, cal.Errors[0].Domain, cal.Errors[0].Reason))
	}

	busy := make([]models.BusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fail(sp, fmt.Errorf("invalid busy start %q: %w", period.Start, err))
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fail(sp, fmt.Errorf("invalid busy end %q: %w", period.End, err))
		}
		busy = append(busy, models.BusyInterval{Start: start, End: end})
	}
	sp.SetAttributes(attribute.Int("calendar.busy_count", len(busy)))
	return busy, nil
}

// CreateEvent inserts an event with a Google Meet conference into the primary calendar.
func (g *GoogleClient) CreateEvent(ctx context.Context, token *oauth2.Token, in EventInput) (*models.CalendarEvent, error) {
	ctx, cancel, sp := g.start(ctx, "CreateEvent",
		attribute.String("calendar.summary", in.Summary),
		attribute.String("calendar.start_time", in.Start.UTC().Format(time.RFC3339)),
		attribute.String("calendar.end_time", in.End.UTC().Format(time.RFC3339)),
	)
	defer sp.End()
	defer cancel()

	svc, err := g.service(ctx, token)
	if err != nil {
		return nil, fail(sp, err)
	}

	attendees := make([]*gcal.EventAttendee, 0, len(in.Attendees))
	for _, email := range in.Attendees {
		attendees = append(attendees, &gcal.EventAttendee{Email: email})
	}

	created, err := svc.Events.Insert(primaryCalendar, &gcal.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start: &gcal.EventDateTime{
			DateTime: in.Start.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: in.End.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Attendees: attendees,
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             "meet-" + uuid.NewString(),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}).ConferenceDataVersion(1).Context(ctx).Do()
	if err != nil {
		return nil, fail(sp, fmt.Errorf("failed to create event: %w", err))
	}

	evt := toModel(created)
	sp.SetAttributes(attribute.String("calendar.event_id", evt.ID))
	return &evt, nil
}

// ListEvents lists single events of the primary calendar within [timeMin, timeMax).
func (g *GoogleClient) ListEvents(ctx context.Context, token *oauth2.Token, timeMin, timeMax time.Time) ([]models.CalendarEvent, error) {
	ctx, cancel, sp := g.start(ctx, "ListEvents")
	defer sp.End()
	defer cancel()

	svc, err := g.service(ctx, token)
	if err != nil {
		return nil, fail(sp, err)
	}

	events := []models.CalendarEvent{}
	err = svc.Events.List(primaryCalendar).
		TimeMin(timeMin.UTC().Format(time.RFC3339)).
		TimeMax(timeMax.UTC().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Pages(ctx, func(page *gcal.Events) error {
			for _, item := range page.Items {
				events = append(events, toModel(item))
			}
			return nil
		})
	if err != nil {
		return nil, fail(sp, fmt.Errorf("failed to list events: %w", err))
	}
	return events, nil
}

// DeleteEvent removes eventID from the primary calendar.
func (g *GoogleClient) DeleteEvent(ctx context.Context, token *oauth2.Token, eventID string) error {
	ctx, cancel, sp := g.start(ctx, "DeleteEvent", attribute.String("calendar.event_id", eventID))
	defer sp.End()
	defer cancel()

	svc, err := g.service(ctx, token)
	if err != nil {
		return fail(sp, err)
	}
	if err := svc.Events.Delete(primaryCalendar, eventID).Context(ctx).Do(); err != nil {
		return fail(sp, fmt.Errorf("failed to delete event %s: %w", eventID, err))
	}
	return nil
}

func toModel(e *gcal.Event) models.CalendarEvent {
	evt := models.CalendarEvent{
		ID:          e.Id,
		Summary:     e.Summary,
		Description: e.Description,
		HangoutLink: e.HangoutLink,
		HTMLLink:    e.HtmlLink,
	}
	if e.Start != nil {
		evt.Start = models.EventTime{DateTime: e.Start.DateTime, Date: e.Start.Date, TimeZone: e.Start.TimeZone}
	}
	if e.End != nil {
		evt.End = models.EventTime{DateTime: e.End.DateTime, Date: e.End.Date, TimeZone: e.End.TimeZone}
	}
	for _, a := range e.Attendees {
		evt.Attendees = append(evt.Attendees, models.EventAttendee{Email: a.Email, ResponseStatus: a.ResponseStatus})
	}
	if e.ConferenceData != nil && len(e.ConferenceData.EntryPoints) > 0 {
		cd := &models.ConferenceData{}
		for _, ep := range e.ConferenceData.EntryPoints {
			cd.EntryPoints = append(cd.EntryPoints, models.EntryPoint{EntryPointType: ep.EntryPointType, URI: ep.Uri})
		}
		evt.ConferenceData = cd
	}
	return evt
}
