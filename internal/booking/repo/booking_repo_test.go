package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecindario/marketplace-api/internal/booking/entity"
)

func newMockRepo(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewBookingRepo(sqlx.NewDb(mockDB, "postgres")), mock
}

func testBooking() *entity.Booking {
	return &entity.Booking{
		ID:          "booking-1",
		UserID:      "user-1",
		ProviderID:  "prov-1",
		ServiceName: "Mantenimiento mensual",
		Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Time:        "10:00",
		Address:     "Calle Principal 123",
		Price:       3500,
		Status:      entity.StatusPending,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func bookingColumns() []string {
	return []string{"id", "user_id", "provider_id", "service_name", "date", "time",
		"address", "price", "status", "created_at"}
}

func TestBookingRepo_Create(t *testing.T) {
	r, mock := newMockRepo(t)
	b := testBooking()

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(b.ID, b.UserID, b.ProviderID, b.ServiceName, b.Date, b.Time,
			b.Address, b.Price, b.Status, b.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Create(context.Background(), b))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_ListByUser(t *testing.T) {
	r, mock := newMockRepo(t)
	b := testBooking()

	rows := sqlmock.NewRows(bookingColumns()).AddRow(
		b.ID, b.UserID, b.ProviderID, b.ServiceName, b.Date, b.Time,
		b.Address, b.Price, b.Status, b.CreatedAt)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE user_id=").
		WithArgs("user-1").
		WillReturnRows(rows)

	list, err := r.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, entity.StatusPending, list[0].Status)
	assert.InDelta(t, 3500, list[0].Price, 0.01)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_ListByUser_Empty(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE user_id=").
		WithArgs("user-2").
		WillReturnRows(sqlmock.NewRows(bookingColumns()))

	list, err := r.ListByUser(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, list)
}
