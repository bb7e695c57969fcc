package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecindario/marketplace-api/internal/provider/entity"
)

func newMockRepo(t *testing.T) (*ProviderRepo, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewProviderRepo(sqlx.NewDb(mockDB, "postgres")), mock
}

func TestProviderRepo_List_DecodesJSONB(t *testing.T) {
	r, mock := newMockRepo(t)

	columns := []string{"id", "user_id", "business_name", "description", "categories",
		"neighborhoods_covered", "services", "rating", "total_reviews", "is_verified",
		"is_premium", "contact", "photos", "created_at"}
	rows := sqlmock.NewRows(columns).AddRow(
		"prov-1", "user-1", "Jardinería Elegante", "Servicio premium",
		[]byte(`["Jardinería"]`),
		[]byte(`["La Taona","Pocitos"]`),
		[]byte(`[{"name":"Mantenimiento mensual","price":3500,"duration":"4 horas"}]`),
		4.8, 12, true, false,
		[]byte(`{"phone":"099123456"}`),
		[]byte(`[]`),
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	)
	mock.ExpectQuery("SELECT (.+) FROM providers").WillReturnRows(rows)

	list, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	p := list[0]
	assert.Equal(t, "Jardinería Elegante", p.BusinessName)
	assert.Equal(t, []string{"Jardinería"}, p.Categories)
	assert.Equal(t, []string{"La Taona", "Pocitos"}, p.NeighborhoodsCovered)
	require.Len(t, p.Services, 1)
	assert.Equal(t, "Mantenimiento mensual", p.Services[0].Name)
	assert.InDelta(t, 3500, p.Services[0].Price, 0.01)
	assert.Equal(t, "099123456", p.Contact.Phone)
}

func TestProviderRepo_Create(t *testing.T) {
	r, mock := newMockRepo(t)

	p := &entity.Provider{
		ID:           "prov-1",
		UserID:       "user-1",
		BusinessName: "Jardinería Elegante",
		Description:  "Servicio premium",
		Categories:   []string{"Jardinería"},
		CreatedAt:    time.Now().UTC(),
	}
	mock.ExpectExec("INSERT INTO providers").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Create(context.Background(), p))
	require.NoError(t, mock.ExpectationsWereMet())
}
