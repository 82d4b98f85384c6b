package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	userRepo "checkfree/database/repository/user"
	"checkfree/models"
	"checkfree/services/calendar"
	"checkfree/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrMissingParams  = errors.New("missing sellerId or date")
	ErrSellerNotFound = errors.New("seller not found")
)

// AvailabilityService computes a seller's bookable slots for a day.
type AvailabilityService interface {
	GetSlots(ctx context.Context, sellerID, date string) ([]models.Slot, error)
}

// DefaultAvailabilityService reads busy time from the seller's Google calendar.
type DefaultAvailabilityService struct {
	Users      userRepo.UserRepository
	Calendar   calendar.Client
	Cipher     calendar.TokenDecrypter
	Location   *time.Location
	StartHour  int
	EndHour    int
	SlotLength time.Duration
}

// GetSlots returns the slots of the seller's working window on date, each
// flagged available unless it intersects a busy interval.
func (s *DefaultAvailabilityService) GetSlots(ctx context.Context, sellerID, date string) ([]models.Slot, error) {
	if sellerID == "" || date == "" {
		return nil, ErrMissingParams
	}

	oid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return nil, fmt.Errorf("invalid seller id %q: %w", sellerID, err)
	}
	start, end, err := WorkingWindow(date, s.location(), s.StartHour, s.EndHour)
	if err != nil {
		return nil, err
	}

	seller, err := s.Users.GetByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to load seller: %w", err)
	}
	if seller == nil || seller.Role != models.RoleSeller {
		return nil, ErrSellerNotFound
	}

	token, err := calendar.UserToken(ctx, s.Calendar, s.Cipher, seller.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("seller %s: %w", sellerID, err)
	}

	busy, err := s.Calendar.FreeBusy(ctx, token, seller.Email, start, end)
	if err != nil {
		return nil, err
	}

	slots := BuildSlots(start, end, s.SlotLength, busy)
	utils.GetLogger().Debug("Computed availability",
		zap.String("sellerId", sellerID),
		zap.String("date", date),
		zap.Int("busy", len(busy)),
		zap.Int("slots", len(slots)),
	)
	return slots, nil
}

func (s *DefaultAvailabilityService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
