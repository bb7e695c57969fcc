package entity

import "time"

// Categories a provider can offer services under.
var Categories = []string{
	"Jardinería",
	"Limpieza del hogar",
	"Lavado de autos",
	"Chef a domicilio",
	"Carpintería",
	"Plomería",
	"Electricidad",
	"Niñera",
}

// ServiceItem is a single offering in a provider's catalog.
type ServiceItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// Contact holds a provider's published contact details.
type Contact struct {
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	ResponseTime string `json:"responseTime,omitempty"`
}

// Provider is a business listing owned by a registered account. The
// nested collections persist as JSONB documents.
type Provider struct {
	ID                   string        `json:"id"`
	UserID               string        `json:"userId"`
	BusinessName         string        `json:"businessName"`
	Description          string        `json:"description"`
	Categories           []string      `json:"categories"`
	NeighborhoodsCovered []string      `json:"neighborhoodsCovered"`
	Services             []ServiceItem `json:"services"`
	Rating               float64       `json:"rating"`
	TotalReviews         int           `json:"totalReviews"`
	IsVerified           bool          `json:"isVerified"`
	IsPremium            bool          `json:"isPremium"`
	Contact              Contact       `json:"contact"`
	Photos               []string      `json:"photos,omitempty"`
	CreatedAt            time.Time     `json:"createdAt"`
}
