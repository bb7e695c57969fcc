package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecindario/marketplace-api/internal/store"
	"github.com/vecindario/marketplace-api/internal/user/entity"
)

func newMockRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewUserRepo(sqlx.NewDb(mockDB, "postgres")), mock
}

func testUser() *entity.User {
	return &entity.User{
		ID:           "ksuid-1",
		Name:         "Ana",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		Phone:        "099123456",
		Neighborhood: "La Taona",
		Address:      "Calle Principal 123",
		UnitNumber:   "Casa 8",
		IsVerified:   true,
		Role:         entity.RoleUser,
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func userColumns() []string {
	return []string{"id", "name", "email", "password_hash", "phone", "neighborhood",
		"address", "unit_number", "is_verified", "role", "profile_image", "created_at"}
}

func userRow(u *entity.User) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns()).AddRow(
		u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, u.Neighborhood,
		u.Address, u.UnitNumber, u.IsVerified, u.Role, u.ProfileImage, u.CreatedAt)
}

func TestUserRepo_Create(t *testing.T) {
	r, mock := newMockRepo(t)
	u := testUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, u.Neighborhood,
			u.Address, u.UnitNumber, u.IsVerified, u.Role, u.ProfileImage, u.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Create(context.Background(), u))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	r, mock := newMockRepo(t)
	u := testUser()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := r.Create(context.Background(), u)
	require.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	r, mock := newMockRepo(t)
	u := testUser()

	// input is normalized before hitting the database
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WithArgs("a@x.com").
		WillReturnRows(userRow(u))

	got, err := r.GetByEmail(context.Background(), "  A@X.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Email, got.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WithArgs("nobody@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := r.GetByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserRepo_GetByID(t *testing.T) {
	r, mock := newMockRepo(t)
	u := testUser()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WithArgs(u.ID).
		WillReturnRows(userRow(u))

	got, err := r.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := r.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}
