package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"catalog-api/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestCategoryRepository_List_OrderedByName(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(listCategoriesQuery)).
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("caps").AddRow("hats"))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []*domain.Category{{Name: "caps"}, {Name: "hats"}}, categories)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_List_EmptyIsNotNil(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(listCategoriesQuery)).
		WillReturnRows(pgxmock.NewRows([]string{"name"}))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, categories)
	require.Empty(t, categories)
}

func TestCategoryRepository_Create_OK(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(createCategoryQuery)).
		WithArgs("hats").
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("hats"))

	category, err := repo.Create(context.Background(), "hats")
	require.NoError(t, err)
	require.Equal(t, "hats", category.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Create_Duplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(createCategoryQuery)).
		WithArgs("hats").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), "hats")
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCategoryRepository_Rename_ReportsRowsAffected(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(renameCategoryQuery)).
		WithArgs("hats", "caps").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	n, err := repo.Rename(context.Background(), "hats", "caps")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Delete_WrapsStoreError(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	boom := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta(deleteCategoryQuery)).
		WithArgs("hats").
		WillReturnError(boom)

	_, err := repo.Delete(context.Background(), "hats")
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "failed to delete category")
}
