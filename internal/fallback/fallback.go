// Package fallback serves a fixed in-memory dataset when the database
// is unreachable at startup. Reads answer from the dataset so local
// development and demos keep working; writes fail explicitly with
// store.ErrUnavailable so nothing pretends to persist.
package fallback

import (
	"context"
	"strings"

	"github.com/vecindario/marketplace-api/internal/auth"
	bookingentity "github.com/vecindario/marketplace-api/internal/booking/entity"
	providerentity "github.com/vecindario/marketplace-api/internal/provider/entity"
	"github.com/vecindario/marketplace-api/internal/store"
	userentity "github.com/vecindario/marketplace-api/internal/user/entity"
)

// Dataset is the read-only data served while disconnected.
type Dataset struct {
	users     []*userentity.User
	providers []*providerentity.Provider
}

// demoPassword is the credential of the demo account. Its hash is
// computed at dataset construction with the same hasher the login path
// uses, so the demo login always verifies.
const demoPassword = "demo123"

func mustHash(plaintext string) string {
	h, err := auth.NewBcryptHasher().Hash(plaintext)
	if err != nil {
		panic(err)
	}
	return h
}

// NewDataset builds the static demo catalog.
func NewDataset() *Dataset {
	return &Dataset{
		users: []*userentity.User{
			{
				ID:           "demo-user-1",
				Name:         "Usuario Demo",
				Email:        "demo@lataona.com",
				PasswordHash: mustHash(demoPassword),
				Phone:        "099123456",
				Neighborhood: "La Taona",
				Address:      "Calle Principal 123",
				UnitNumber:   "Casa 8",
				IsVerified:   true,
				Role:         userentity.RoleUser,
			},
		},
		providers: []*providerentity.Provider{
			{
				ID:                   "mock-provider-1",
				BusinessName:         "Jardinería Elegante",
				Description:          "Servicio premium de jardinería para barrios privados",
				Rating:               4.8,
				Categories:           []string{"Jardinería"},
				NeighborhoodsCovered: []string{"La Taona", "Pocitos"},
				Services: []providerentity.ServiceItem{
					{Name: "Mantenimiento mensual", Price: 3500, Duration: "4 horas"},
				},
			},
			{
				ID:                   "mock-provider-2",
				BusinessName:         "Chef a Domicilio",
				Description:          "Cenas gourmet en tu hogar",
				Rating:               4.9,
				Categories:           []string{"Chef a domicilio"},
				NeighborhoodsCovered: []string{"La Taona"},
				Services: []providerentity.ServiceItem{
					{Name: "Cena para 4 personas", Price: 4500, Duration: "3 horas"},
				},
			},
		},
	}
}

// Users implements the user store contract over the dataset.
type Users struct{ ds *Dataset }

func NewUsers(ds *Dataset) *Users { return &Users{ds: ds} }

func (s *Users) Create(ctx context.Context, u *userentity.User) error {
	return store.ErrUnavailable
}

func (s *Users) GetByEmail(ctx context.Context, email string) (*userentity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.ds.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Users) GetByID(ctx context.Context, id string) (*userentity.User, error) {
	for _, u := range s.ds.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

// Providers implements the provider store contract over the dataset.
type Providers struct{ ds *Dataset }

func NewProviders(ds *Dataset) *Providers { return &Providers{ds: ds} }

func (s *Providers) Create(ctx context.Context, p *providerentity.Provider) error {
	return store.ErrUnavailable
}

func (s *Providers) List(ctx context.Context) ([]*providerentity.Provider, error) {
	out := make([]*providerentity.Provider, len(s.ds.providers))
	copy(out, s.ds.providers)
	return out, nil
}

// Bookings implements the booking store contract. The dataset ships no
// bookings, so listings are empty and creation is unavailable.
type Bookings struct{}

func NewBookings() *Bookings { return &Bookings{} }

func (s *Bookings) Create(ctx context.Context, b *bookingentity.Booking) error {
	return store.ErrUnavailable
}

func (s *Bookings) ListByUser(ctx context.Context, userID string) ([]*bookingentity.Booking, error) {
	return []*bookingentity.Booking{}, nil
}
