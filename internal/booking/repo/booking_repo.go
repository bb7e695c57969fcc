package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vecindario/marketplace-api/internal/booking/entity"
)

// BookingRepo persists service reservations.
type BookingRepo struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepo { return &BookingRepo{db: db} }

// EnsureTable creates the bookings table if not exists (idempotent).
func (r *BookingRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS bookings (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  provider_id TEXT NOT NULL,
  service_name TEXT NOT NULL,
  date TIMESTAMPTZ NOT NULL,
  time TEXT NOT NULL,
  address TEXT NOT NULL,
  price NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pendiente',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new booking row.
func (r *BookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	const q = `INSERT INTO bookings (id,user_id,provider_id,service_name,date,time,address,price,status,created_at)
	  VALUES (:id,:user_id,:provider_id,:service_name,:date,:time,:address,:price,:status,:created_at)`
	_, err := r.db.NamedExecContext(ctx, q, b)
	return err
}

// ListByUser returns the caller's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Booking, error) {
	const q = `SELECT id, user_id, provider_id, service_name, date, time, address, price, status, created_at
	  FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`
	var rows []*entity.Booking
	if err := r.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, err
	}
	return rows, nil
}
