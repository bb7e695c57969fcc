package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vecindario/marketplace-api/internal/auth"
	"github.com/vecindario/marketplace-api/internal/store"
	"github.com/vecindario/marketplace-api/internal/user/entity"
	"github.com/vecindario/marketplace-api/pkg/utilities"
)

// Store is the persistence contract the service depends on. Both the
// SQL repository and the in-memory fallback satisfy it.
type Store interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

var (
	// ErrBadCredentials is deliberately the same for unknown email and
	// wrong password so responses never reveal which one was off.
	ErrBadCredentials = errors.New("invalid credentials")
	ErrUserNotFound   = errors.New("user not found")
)

// ValidationError carries per-field validation failures.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, ", ")
}

// RegisterInput is the raw registration payload before normalization.
type RegisterInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	Neighborhood string `json:"neighborhood"`
	Address      string `json:"address"`
	UnitNumber   string `json:"unitNumber"`
}

// applyDefaults fills the optional residency fields the way the
// original intake did, so older clients that omit them keep working.
func (in *RegisterInput) applyDefaults() {
	if in.Phone == "" {
		in.Phone = "099123456"
	}
	if in.Neighborhood == "" {
		in.Neighborhood = "La Taona"
	}
	if in.Address == "" {
		in.Address = "Dirección no especificada"
	}
	if in.UnitNumber == "" {
		in.UnitNumber = "N/A"
	}
}

// Validate checks the payload after defaults and returns the list of
// offending fields, decoupled from persistence.
func (in *RegisterInput) Validate() error {
	var fields []string
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, "name")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields = append(fields, "email")
	}
	if len(in.Password) < 6 {
		fields = append(fields, "password")
	}
	if !entity.ValidNeighborhood(in.Neighborhood) {
		fields = append(fields, "neighborhood")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Service orchestrates registration, login and profile lookups.
type Service struct {
	store  Store
	hasher auth.PasswordHasher
	tokens *auth.TokenManager
}

func NewService(s Store, hasher auth.PasswordHasher, tokens *auth.TokenManager) *Service {
	return &Service{store: s, hasher: hasher, tokens: tokens}
}

// Register validates the input, builds a fully-formed user (hash,
// id, timestamps computed up front, not by the store) and persists it.
// Returns the created user and a session token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	in.applyDefaults()
	if err := in.Validate(); err != nil {
		return nil, "", err
	}
	u := &entity.User{
		ID:           utilities.NewKSUID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        in.Phone,
		Neighborhood: in.Neighborhood,
		Address:      in.Address,
		UnitNumber:   in.UnitNumber,
		IsVerified:   true,
		Role:         entity.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash

	if err := s.store.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID, u.Role, u.Neighborhood)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// Login authenticates by email and password. Lookup and verification
// failures collapse into ErrBadCredentials to avoid user enumeration.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", &ValidationError{Fields: []string{"email", "password"}}
	}
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrBadCredentials
		}
		return nil, "", err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, "", ErrBadCredentials
	}
	token, err := s.tokens.Issue(u.ID, u.Role, u.Neighborhood)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// Profile loads the account behind a verified identity.
func (s *Service) Profile(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
