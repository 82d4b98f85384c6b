package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"checkfree/models"
	"checkfree/services/calendar"
	"checkfree/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

// rollbackTimeout bounds the best-effort delete of a half-booked seller event.
const rollbackTimeout = 10 * time.Second

// Book schedules req between the seller and the buyer identified by buyerEmail.
func (s *DefaultAppointmentService) Book(ctx context.Context, buyerEmail string, req models.AppointmentRequest) (*models.CalendarEvent, error) {
	logger := utils.GetLogger()

	if req.SellerID == "" || req.StartTime == "" || req.EndTime == "" || strings.TrimSpace(req.Title) == "" {
		return nil, ErrMissingFields
	}
	start, end, err := parseRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	sellerOID, err := primitive.ObjectIDFromHex(req.SellerID)
	if err != nil {
		return nil, fmt.Errorf("invalid seller id %q: %w", req.SellerID, err)
	}

	seller, err := s.Users.GetByID(ctx, sellerOID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seller: %w", err)
	}
	buyer, err := s.Users.GetByEmail(ctx, buyerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to load buyer: %w", err)
	}
	if seller == nil || buyer == nil || seller.Role != models.RoleSeller {
		return nil, ErrUserNotFound
	}

	var sellerToken, buyerToken *oauth2.Token
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tok, err := calendar.UserToken(gctx, s.Calendar, s.Cipher, seller.RefreshToken)
		if err != nil {
			return fmt.Errorf("seller %s: %w", seller.Email, err)
		}
		sellerToken = tok
		return nil
	})
	g.Go(func() error {
		tok, err := calendar.UserToken(gctx, s.Calendar, s.Cipher, buyer.RefreshToken)
		if err != nil {
			return fmt.Errorf("buyer %s: %w", buyer.Email, err)
		}
		buyerToken = tok
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	input := calendar.EventInput{
		Summary:     req.Title,
		Description: models.AppointmentMarker,
		Start:       start,
		End:         end,
		Attendees:   []string{seller.Email, buyer.Email},
	}

	sellerEvent, err := s.Calendar.CreateEvent(ctx, sellerToken, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create seller event: %w", err)
	}
	if _, err := s.Calendar.CreateEvent(ctx, buyerToken, input); err != nil {
		if delErr := s.rollbackEvent(ctx, sellerToken, sellerEvent.ID); delErr != nil {
			logger.Warn("Failed to roll back seller event",
				zap.String("eventId", sellerEvent.ID),
				zap.String("sellerEmail", seller.Email),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("failed to create buyer event: %w", err)
	}

	appt := &models.Appointment{
		SellerID:      seller.ID,
		BuyerID:       buyer.ID,
		Title:         req.Title,
		StartTime:     start.UTC(),
		EndTime:       end.UTC(),
		GoogleEventID: sellerEvent.ID,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.Appointments.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to save appointment: %w", err)
	}

	logger.Info("Appointment booked",
		zap.String("appointmentId", appt.ID.Hex()),
		zap.String("sellerEmail", seller.Email),
		zap.String("buyerEmail", buyer.Email),
		zap.Time("startTime", appt.StartTime),
	)
	return sellerEvent, nil
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	return start, end, nil
}

// rollbackEvent deletes eventID even when the request context is already done.
func (s *DefaultAppointmentService) rollbackEvent(ctx context.Context, token *oauth2.Token, eventID string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()
	return s.Calendar.DeleteEvent(ctx, token, eventID)
}
