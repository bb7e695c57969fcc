package entity

import "time"

// Booking lifecycle states.
const (
	StatusPending   = "pendiente"
	StatusConfirmed = "confirmado"
	StatusCancelled = "cancelado"
	StatusCompleted = "completado"
)

// Booking is a service reservation placed by a user with a provider.
type Booking struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	ProviderID  string    `db:"provider_id" json:"providerId"`
	ServiceName string    `db:"service_name" json:"serviceName"`
	Date        time.Time `db:"date" json:"date"`
	Time        string    `db:"time" json:"time"`
	Address     string    `db:"address" json:"address"`
	Price       float64   `db:"price" json:"price"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
