package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"maintain/internal/maintain/models"
	"maintain/pkg/platform/sentinel"
	"maintain/pkg/platform/tx"
)

// PostgresStore persists categories, reference lists and mappings in Postgres.
// All name comparisons are case-insensitive via lower().
type PostgresStore struct {
	db tx.DBTX
}

// NewPostgres constructs a store that runs each statement on its own.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresTx constructs a store bound to an open transaction.
func NewPostgresTx(t *sql.Tx) *PostgresStore {
	return &PostgresStore{db: t}
}

const categoryColumns = `id, name, display_name, parent_id, display_order, permission`

func scanCategory(row interface{ Scan(...any) error }) (*models.Category, error) {
	var (
		c          models.Category
		parentID   sql.NullInt64
		permission sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &c.DisplayName, &parentID, &c.DisplayOrder, &permission); err != nil {
		return nil, err
	}
	if parentID.Valid {
		id := parentID.Int64
		c.ParentID = &id
	}
	if permission.Valid {
		p := permission.String
		c.Permission = &p
	}
	return &c, nil
}

func (s *PostgresStore) queryCategories(ctx context.Context, op, query string, args ...any) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (s *PostgresStore) ListTopLevel(ctx context.Context) ([]*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM charge_categories
		WHERE parent_id IS NULL
		ORDER BY display_order, id`
	return s.queryCategories(ctx, "list top-level categories", query)
}

func (s *PostgresStore) ListChildren(ctx context.Context, parentID int64) ([]*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM charge_categories
		WHERE parent_id = $1
		ORDER BY display_order, id`
	return s.queryCategories(ctx, "list child categories", query, parentID)
}

func (s *PostgresStore) FindCategory(ctx context.Context, parentID *int64, name string) (*models.Category, error) {
	var row *sql.Row
	if parentID == nil {
		row = s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM charge_categories
			WHERE parent_id IS NULL AND lower(name) = lower($1)`, name)
	} else {
		row = s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM charge_categories
			WHERE parent_id = $1 AND lower(name) = lower($2)`, *parentID, name)
	}
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) CreateCategory(ctx context.Context, c *models.Category) error {
	query := `
		INSERT INTO charge_categories (name, display_name, parent_id, display_order, permission)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		c.Name, c.DisplayName, nullableInt64(c.ParentID), c.DisplayOrder, nullableString(c.Permission),
	).Scan(&c.ID)
	return translate("create category", err)
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, c *models.Category) error {
	query := `
		UPDATE charge_categories
		SET name = $2, display_name = $3, display_order = $4, permission = $5
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, c.ID, c.Name, c.DisplayName, c.DisplayOrder, nullableString(c.Permission))
	if err != nil {
		return translate("update category", err)
	}
	return expectRows(res, "update category")
}

func (s *PostgresStore) DeleteCategories(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM charge_categories WHERE id = ANY($1::bigint[])`, pq.Array(ids))
	return translate("delete categories", err)
}

func (s *PostgresStore) ProvisionTitles(ctx context.Context, categoryID int64) ([]string, error) {
	query := `
		SELECT p.title
		FROM charge_categories_stat_provisions m
		JOIN statutory_provision p ON p.id = m.statutory_provision_id
		WHERE m.category_id = $1
		ORDER BY m.position
	`
	return s.queryStrings(ctx, "list category provisions", query, categoryID)
}

func (s *PostgresStore) InstrumentNames(ctx context.Context, categoryID int64) ([]string, error) {
	query := `
		SELECT i.name
		FROM charge_categories_instruments m
		JOIN instruments i ON i.id = m.instruments_id
		WHERE m.category_id = $1
		ORDER BY m.position
	`
	return s.queryStrings(ctx, "list category instruments", query, categoryID)
}

func (s *PostgresStore) DeleteMappings(ctx context.Context, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	ids := pq.Array(categoryIDs)
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM charge_categories_instruments WHERE category_id = ANY($1::bigint[])`, ids); err != nil {
		return translate("delete instrument mappings", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM charge_categories_stat_provisions WHERE category_id = ANY($1::bigint[])`, ids); err != nil {
		return translate("delete provision mappings", err)
	}
	return nil
}

// AddProvisionMappings links provisions to a category, storing each id's
// index as its position.
func (s *PostgresStore) AddProvisionMappings(ctx context.Context, categoryID int64, provisionIDs []int64) error {
	if len(provisionIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO charge_categories_stat_provisions (category_id, statutory_provision_id, position)
		SELECT $1, m.id, m.ord - 1
		FROM unnest($2::bigint[]) WITH ORDINALITY AS m(id, ord)
	`
	_, err := s.db.ExecContext(ctx, query, categoryID, pq.Array(provisionIDs))
	return translate("add provision mappings", err)
}

// AddInstrumentMappings links instruments to a category, storing each id's
// index as its position.
func (s *PostgresStore) AddInstrumentMappings(ctx context.Context, categoryID int64, instrumentIDs []int64) error {
	if len(instrumentIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO charge_categories_instruments (category_id, instruments_id, position)
		SELECT $1, m.id, m.ord - 1
		FROM unnest($2::bigint[]) WITH ORDINALITY AS m(id, ord)
	`
	_, err := s.db.ExecContext(ctx, query, categoryID, pq.Array(instrumentIDs))
	return translate("add instrument mappings", err)
}

func (s *PostgresStore) ListInstruments(ctx context.Context) ([]*models.Instrument, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM instruments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list instruments: %w", err)
	}
	defer rows.Close()

	var out []*models.Instrument
	for rows.Next() {
		var i models.Instrument
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, fmt.Errorf("list instruments: scan: %w", err)
		}
		out = append(out, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list instruments: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindInstrument(ctx context.Context, name string) (*models.Instrument, error) {
	var i models.Instrument
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM instruments WHERE lower(name) = lower($1)`, name,
	).Scan(&i.ID, &i.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find instrument: %w", err)
	}
	return &i, nil
}

func (s *PostgresStore) CreateInstrument(ctx context.Context, i *models.Instrument) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO instruments (name) VALUES ($1) RETURNING id`, i.Name,
	).Scan(&i.ID)
	return translate("create instrument", err)
}

func (s *PostgresStore) UpdateInstrument(ctx context.Context, i *models.Instrument) error {
	res, err := s.db.ExecContext(ctx, `UPDATE instruments SET name = $2 WHERE id = $1`, i.ID, i.Name)
	if err != nil {
		return translate("update instrument", err)
	}
	return expectRows(res, "update instrument")
}

func (s *PostgresStore) DeleteInstrument(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM instruments WHERE id = $1`, id)
	if err != nil {
		return translate("delete instrument", err)
	}
	return expectRows(res, "delete instrument")
}

func (s *PostgresStore) ListProvisions(ctx context.Context, selectable *bool) ([]*models.StatutoryProvision, error) {
	query := `SELECT id, title, selectable FROM statutory_provision ORDER BY title`
	args := []any{}
	if selectable != nil {
		query = `SELECT id, title, selectable FROM statutory_provision WHERE selectable = $1 ORDER BY title`
		args = append(args, *selectable)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list provisions: %w", err)
	}
	defer rows.Close()

	var out []*models.StatutoryProvision
	for rows.Next() {
		var p models.StatutoryProvision
		if err := rows.Scan(&p.ID, &p.Title, &p.Selectable); err != nil {
			return nil, fmt.Errorf("list provisions: scan: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list provisions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindProvision(ctx context.Context, title string) (*models.StatutoryProvision, error) {
	var p models.StatutoryProvision
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, selectable FROM statutory_provision WHERE lower(title) = lower($1)`, title,
	).Scan(&p.ID, &p.Title, &p.Selectable)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find provision: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) CreateProvision(ctx context.Context, p *models.StatutoryProvision) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO statutory_provision (title, selectable) VALUES ($1, $2) RETURNING id`, p.Title, p.Selectable,
	).Scan(&p.ID)
	return translate("create provision", err)
}

func (s *PostgresStore) UpdateProvision(ctx context.Context, p *models.StatutoryProvision) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE statutory_provision SET title = $2, selectable = $3 WHERE id = $1`, p.ID, p.Title, p.Selectable)
	if err != nil {
		return translate("update provision", err)
	}
	return expectRows(res, "update provision")
}

func (s *PostgresStore) DeleteProvision(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM statutory_provision WHERE id = $1`, id)
	if err != nil {
		return translate("delete provision", err)
	}
	return expectRows(res, "delete provision")
}

func (s *PostgresStore) queryStrings(ctx context.Context, op, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func expectRows(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullableInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullableString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
