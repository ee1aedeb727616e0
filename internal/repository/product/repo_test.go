package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/shopdex/internal/domain"
)

func TestSearchByName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := New(mock)

	id := uuid.New()
	rows := pgxmock.NewRows([]string{
		"id", "name", "description", "price", "category", "created_at",
	}).AddRow(
		id, "Wireless Charging Pad", "Fast Qi charger", 29.99, "electronics", time.Now(),
	)

	mock.ExpectQuery("SELECT").
		WithArgs("wireless", 4).
		WillReturnRows(rows)

	results, err := repo.SearchByName(context.Background(), "wireless", 4)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, id, results[0].ID)
	assert.Equal(t, domain.KindProduct, results[0].Kind)
	assert.Equal(t, "Wireless Charging Pad", results[0].Title)
	assert.Equal(t, "Fast Qi charger", results[0].Content)
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, 29.99, results[0].Price)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchByName_NoMatches(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := New(mock)

	mock.ExpectQuery("SELECT").
		WithArgs("gramophone", 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "description", "price", "category", "created_at",
		}))

	results, err := repo.SearchByName(context.Background(), "gramophone", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchByName_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := New(mock)

	mock.ExpectQuery("SELECT").
		WithArgs("wireless", 10).
		WillReturnError(errors.New("connection refused"))

	_, err = repo.SearchByName(context.Background(), "wireless", 10)
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
