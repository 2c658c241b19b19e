package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintain/internal/maintain/models"
	"maintain/pkg/platform/sentinel"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgres(db), mock
}

var categoryRowColumns = []string{"id", "name", "display_name", "parent_id", "display_order", "permission"}

func TestFindTopLevelCategory(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE parent_id IS NULL AND lower(name) = lower($1)")).
		WithArgs("planning").
		WillReturnRows(sqlmock.NewRows(categoryRowColumns).AddRow(int64(4), "Planning", "Planning", nil, int64(2), "Add LON"))

	c, err := st.FindCategory(context.Background(), nil, "planning")
	require.NoError(t, err)
	assert.Equal(t, int64(4), c.ID)
	assert.Nil(t, c.ParentID)
	require.NotNil(t, c.Permission)
	assert.Equal(t, "Add LON", *c.Permission)
	assert.Equal(t, 2, c.DisplayOrder)
}

func TestFindSubCategoryNotFound(t *testing.T) {
	st, mock := newMockStore(t)
	parentID := int64(4)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE parent_id = $1 AND lower(name) = lower($2)")).
		WithArgs(parentID, "conditions").
		WillReturnError(sql.ErrNoRows)

	_, err := st.FindCategory(context.Background(), &parentID, "conditions")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestCreateCategoryReturnsID(t *testing.T) {
	st, mock := newMockStore(t)
	parentID := int64(1)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO charge_categories")).
		WithArgs("Conditions", "Conditions", sqlmock.AnyArg(), int64(3), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	c := &models.Category{Name: "Conditions", DisplayName: "Conditions", ParentID: &parentID, DisplayOrder: 3}
	require.NoError(t, st.CreateCategory(context.Background(), c))
	assert.Equal(t, int64(9), c.ID)
}

func TestCreateCategoryUniqueViolationIsConflict(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO charge_categories")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "charge_categories_sibling_name_uq"})

	err := st.CreateCategory(context.Background(), &models.Category{Name: "Planning", DisplayName: "Planning"})
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}

func TestDeleteCategoriesForeignKeyIsInvalidState(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM charge_categories WHERE id = ANY($1::bigint[])")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := st.DeleteCategories(context.Background(), []int64{2, 3})
	assert.ErrorIs(t, err, sentinel.ErrInvalidState)
}

func TestDeleteCategoriesEmptyIsNoop(t *testing.T) {
	st, _ := newMockStore(t)
	require.NoError(t, st.DeleteCategories(context.Background(), nil))
}

func TestUpdateCategoryMissingRow(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE charge_categories")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := st.UpdateCategory(context.Background(), &models.Category{ID: 12, Name: "x"})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestDeleteMappingsClearsBothKinds(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM charge_categories_instruments")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM charge_categories_stat_provisions")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, st.DeleteMappings(context.Background(), []int64{7}))
}

func TestAddProvisionMappingsUsesOrdinality(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("WITH ORDINALITY")).
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, st.AddProvisionMappings(context.Background(), 7, []int64{3, 1}))
	require.NoError(t, st.AddProvisionMappings(context.Background(), 7, nil))
}

func TestProvisionTitlesOrderedByPosition(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY m.position")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"title"}).AddRow("B Act").AddRow("A Act"))

	titles, err := st.ProvisionTitles(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"B Act", "A Act"}, titles)
}

func TestListProvisionsSelectableFilter(t *testing.T) {
	st, mock := newMockStore(t)
	selectable := false

	mock.ExpectQuery(regexp.QuoteMeta("WHERE selectable = $1 ORDER BY title")).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "selectable"}).AddRow(int64(1), "A Act", false))

	provisions, err := st.ListProvisions(context.Background(), &selectable)
	require.NoError(t, err)
	require.Len(t, provisions, 1)
	assert.False(t, provisions[0].Selectable)
}

func TestListInstrumentsQueryError(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM instruments ORDER BY name")).
		WillReturnError(errors.New("connection reset"))

	_, err := st.ListInstruments(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list instruments")
}

func TestDeleteInstrumentMissingRow(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM instruments WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, st.DeleteInstrument(context.Background(), 5), sentinel.ErrNotFound)
}

func TestApplySchemaRunsEachStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range strings.Count(schemaSQL, "CREATE ") {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, ApplySchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
