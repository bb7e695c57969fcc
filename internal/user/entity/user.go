package entity

import "time"

// Roles a registered account can hold.
const (
	RoleUser     = "user"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// Neighborhoods the marketplace serves.
var Neighborhoods = []string{"La Taona", "Pocitos", "Malvín", "Otro"}

// ValidNeighborhood reports whether n is a serviced neighborhood.
func ValidNeighborhood(n string) bool {
	for _, v := range Neighborhoods {
		if v == n {
			return true
		}
	}
	return false
}

// User represents a registered account. PasswordHash never marshals;
// the plaintext password never reaches this struct.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Phone        string    `db:"phone" json:"phone"`
	Neighborhood string    `db:"neighborhood" json:"neighborhood"`
	Address      string    `db:"address" json:"address"`
	UnitNumber   string    `db:"unit_number" json:"unitNumber"`
	IsVerified   bool      `db:"is_verified" json:"isVerified"`
	Role         string    `db:"role" json:"role"`
	ProfileImage string    `db:"profile_image" json:"profileImage,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// PublicUser is the projection returned alongside tokens.
type PublicUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Neighborhood string `json:"neighborhood"`
	Role         string `json:"role"`
	Phone        string `json:"phone"`
}

// Public returns the token-response projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Neighborhood: u.Neighborhood,
		Role:         u.Role,
		Phone:        u.Phone,
	}
}
