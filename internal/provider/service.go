package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vecindario/marketplace-api/internal/provider/entity"
	"github.com/vecindario/marketplace-api/pkg/utilities"
)

// Store is the persistence contract for provider listings.
type Store interface {
	Create(ctx context.Context, p *entity.Provider) error
	List(ctx context.Context) ([]*entity.Provider, error)
}

// ErrInvalidListing means the listing payload misses required fields.
var ErrInvalidListing = errors.New("business name and description are required")

// CreateInput is the listing payload; owner comes from the verified
// token claims, never from the body.
type CreateInput struct {
	BusinessName         string               `json:"businessName"`
	Description          string               `json:"description"`
	Categories           []string             `json:"categories"`
	NeighborhoodsCovered []string             `json:"neighborhoodsCovered"`
	Services             []entity.ServiceItem `json:"services"`
	Contact              entity.Contact       `json:"contact"`
	Photos               []string             `json:"photos"`
}

// Service handles provider listing reads and creation.
type Service struct {
	store Store
}

func NewService(s Store) *Service { return &Service{store: s} }

// List returns all listings.
func (s *Service) List(ctx context.Context) ([]*entity.Provider, error) {
	return s.store.List(ctx)
}

// Create builds a fully-formed listing owned by userID and persists it.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*entity.Provider, error) {
	if strings.TrimSpace(in.BusinessName) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, ErrInvalidListing
	}
	p := &entity.Provider{
		ID:                   utilities.NewSnowflakeID(),
		UserID:               userID,
		BusinessName:         strings.TrimSpace(in.BusinessName),
		Description:          strings.TrimSpace(in.Description),
		Categories:           in.Categories,
		NeighborhoodsCovered: in.NeighborhoodsCovered,
		Services:             in.Services,
		Contact:              in.Contact,
		Photos:               in.Photos,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
