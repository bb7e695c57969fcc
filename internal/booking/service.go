package booking

import (
	"context"
	"strings"
	"time"

	"github.com/vecindario/marketplace-api/internal/booking/entity"
	"github.com/vecindario/marketplace-api/pkg/utilities"
)

// Store is the persistence contract for bookings.
type Store interface {
	Create(ctx context.Context, b *entity.Booking) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Booking, error)
}

// ValidationError lists the missing or malformed booking fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, ", ")
}

// CreateInput is the reservation payload; userId comes from claims.
type CreateInput struct {
	ProviderID  string    `json:"providerId"`
	ServiceName string    `json:"serviceName"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Address     string    `json:"address"`
	Price       float64   `json:"price"`
}

func (in *CreateInput) validate() error {
	var fields []string
	if in.ProviderID == "" {
		fields = append(fields, "providerId")
	}
	if strings.TrimSpace(in.ServiceName) == "" {
		fields = append(fields, "serviceName")
	}
	if in.Date.IsZero() {
		fields = append(fields, "date")
	}
	if in.Time == "" {
		fields = append(fields, "time")
	}
	if strings.TrimSpace(in.Address) == "" {
		fields = append(fields, "address")
	}
	if in.Price <= 0 {
		fields = append(fields, "price")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Service handles booking creation and listing.
type Service struct {
	store Store
}

func NewService(s Store) *Service { return &Service{store: s} }

// Create validates the payload and persists a pending booking for userID.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*entity.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	b := &entity.Booking{
		ID:          utilities.NewSnowflakeID(),
		UserID:      userID,
		ProviderID:  in.ProviderID,
		ServiceName: strings.TrimSpace(in.ServiceName),
		Date:        in.Date,
		Time:        in.Time,
		Address:     strings.TrimSpace(in.Address),
		Price:       in.Price,
		Status:      entity.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListByUser returns the caller's bookings.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*entity.Booking, error) {
	return s.store.ListByUser(ctx, userID)
}
