package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vecindario/marketplace-api/internal/provider/entity"
)

// ProviderRepo persists provider listings. Nested catalog data lives in
// JSONB columns so the schema stays stable as offerings evolve.
type ProviderRepo struct {
	db *sqlx.DB
}

func NewProviderRepo(db *sqlx.DB) *ProviderRepo { return &ProviderRepo{db: db} }

// EnsureTable creates the providers table if not exists (idempotent).
func (r *ProviderRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS providers (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  business_name TEXT NOT NULL,
  description TEXT NOT NULL,
  categories JSONB NOT NULL DEFAULT '[]'::jsonb,
  neighborhoods_covered JSONB NOT NULL DEFAULT '[]'::jsonb,
  services JSONB NOT NULL DEFAULT '[]'::jsonb,
  rating NUMERIC NOT NULL DEFAULT 0,
  total_reviews INT NOT NULL DEFAULT 0,
  is_verified BOOLEAN NOT NULL DEFAULT false,
  is_premium BOOLEAN NOT NULL DEFAULT false,
  contact JSONB NOT NULL DEFAULT '{}'::jsonb,
  photos JSONB NOT NULL DEFAULT '[]'::jsonb,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_providers_user_id ON providers(user_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// row is the flat scan target; JSONB columns come back as raw bytes.
type row struct {
	ID                   string    `db:"id"`
	UserID               string    `db:"user_id"`
	BusinessName         string    `db:"business_name"`
	Description          string    `db:"description"`
	Categories           []byte    `db:"categories"`
	NeighborhoodsCovered []byte    `db:"neighborhoods_covered"`
	Services             []byte    `db:"services"`
	Rating               float64   `db:"rating"`
	TotalReviews         int       `db:"total_reviews"`
	IsVerified           bool      `db:"is_verified"`
	IsPremium            bool      `db:"is_premium"`
	Contact              []byte    `db:"contact"`
	Photos               []byte    `db:"photos"`
	CreatedAt            time.Time `db:"created_at"`
}

func (rw *row) toEntity() (*entity.Provider, error) {
	p := &entity.Provider{
		ID:           rw.ID,
		UserID:       rw.UserID,
		BusinessName: rw.BusinessName,
		Description:  rw.Description,
		Rating:       rw.Rating,
		TotalReviews: rw.TotalReviews,
		IsVerified:   rw.IsVerified,
		IsPremium:    rw.IsPremium,
		CreatedAt:    rw.CreatedAt,
	}
	for _, f := range []struct {
		raw []byte
		dst any
	}{
		{rw.Categories, &p.Categories},
		{rw.NeighborhoodsCovered, &p.NeighborhoodsCovered},
		{rw.Services, &p.Services},
		{rw.Contact, &p.Contact},
		{rw.Photos, &p.Photos},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode provider %s: %w", rw.ID, err)
		}
	}
	return p, nil
}

// mustJSON marshals v, normalizing nil slices to empty JSON arrays so
// the JSONB columns never hold a JSON null.
func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return json.RawMessage("[]")
	}
	return b
}

// Create inserts a new provider listing.
func (r *ProviderRepo) Create(ctx context.Context, p *entity.Provider) error {
	const q = `INSERT INTO providers (id,user_id,business_name,description,categories,neighborhoods_covered,services,rating,total_reviews,is_verified,is_premium,contact,photos,created_at)
	  VALUES (:id,:user_id,:business_name,:description,COALESCE(:categories,'[]'::jsonb),COALESCE(:neighborhoods_covered,'[]'::jsonb),COALESCE(:services,'[]'::jsonb),:rating,:total_reviews,:is_verified,:is_premium,COALESCE(:contact,'{}'::jsonb),COALESCE(:photos,'[]'::jsonb),:created_at)`
	params := map[string]any{
		"id":                    p.ID,
		"user_id":               p.UserID,
		"business_name":         p.BusinessName,
		"description":           p.Description,
		"categories":            mustJSON(p.Categories),
		"neighborhoods_covered": mustJSON(p.NeighborhoodsCovered),
		"services":              mustJSON(p.Services),
		"rating":                p.Rating,
		"total_reviews":         p.TotalReviews,
		"is_verified":           p.IsVerified,
		"is_premium":            p.IsPremium,
		"contact":               mustJSON(p.Contact),
		"photos":                mustJSON(p.Photos),
		"created_at":            p.CreatedAt,
	}
	_, err := r.db.NamedExecContext(ctx, q, params)
	return err
}

// List returns all provider listings, newest first.
func (r *ProviderRepo) List(ctx context.Context) ([]*entity.Provider, error) {
	const q = `SELECT id, user_id, business_name, description, categories, neighborhoods_covered,
		services, rating, total_reviews, is_verified, is_premium, contact, photos, created_at
	  FROM providers ORDER BY created_at DESC`
	var rows []row
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	out := make([]*entity.Provider, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
