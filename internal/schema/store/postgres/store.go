package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"customercore/internal/platform/postgres"
	"customercore/internal/schema/models"
	"customercore/pkg/platform/sentinel"
	txcontext "customercore/pkg/platform/tx"
)

// PostgresCatalogStore persists catalogs across catalogs, catalog_fields and
// field_options. Reads inside a transaction take row locks: FOR SHARE on the
// fields during value validation, FOR UPDATE during schema mutation, so the
// two serialize.
type PostgresCatalogStore struct {
	db *sql.DB
}

func New(db *sql.DB) *PostgresCatalogStore {
	return &PostgresCatalogStore{db: db}
}

func (s *PostgresCatalogStore) Create(ctx context.Context, catalog *models.Catalog) error {
	exec := txcontext.ExecutorFrom(ctx, s.db)
	_, err := exec.ExecContext(ctx, `
		INSERT INTO catalogs (identifier, name, description, created_by, created_at, modified_by, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, catalog.Identifier, catalog.Name, catalog.Description,
		catalog.CreatedBy, catalog.CreatedAt, catalog.ModifiedBy, catalog.ModifiedAt)
	if err != nil {
		if postgres.IsViolation(err, postgres.UniqueViolation) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert catalog: %w", err)
	}
	for i, field := range catalog.Fields {
		if err := insertField(ctx, exec, catalog.Identifier, i, field); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresCatalogStore) FindByID(ctx context.Context, identifier string) (*models.Catalog, error) {
	lock := ""
	if _, inTx := txcontext.From(ctx); inTx {
		lock = "FOR SHARE"
	}
	return s.find(ctx, identifier, lock)
}

func (s *PostgresCatalogStore) FindByIDForUpdate(ctx context.Context, identifier string) (*models.Catalog, error) {
	return s.find(ctx, identifier, "FOR UPDATE")
}

func (s *PostgresCatalogStore) find(ctx context.Context, identifier, lock string) (*models.Catalog, error) {
	exec := txcontext.ExecutorFrom(ctx, s.db)
	catalog := &models.Catalog{}
	err := exec.QueryRowContext(ctx, `
		SELECT identifier, name, description, created_by, created_at, modified_by, modified_at
		FROM catalogs WHERE identifier = $1 `+lock,
		identifier,
	).Scan(&catalog.Identifier, &catalog.Name, &catalog.Description,
		&catalog.CreatedBy, &catalog.CreatedAt, &catalog.ModifiedBy, &catalog.ModifiedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find catalog: %w", err)
	}

	fields, err := loadFields(ctx, exec, `WHERE catalog_id = $1 ORDER BY position `+lock, identifier)
	if err != nil {
		return nil, err
	}
	catalog.Fields = fields[identifier]
	return catalog, nil
}

func (s *PostgresCatalogStore) List(ctx context.Context) ([]*models.Catalog, error) {
	exec := txcontext.ExecutorFrom(ctx, s.db)
	rows, err := exec.QueryContext(ctx, `
		SELECT identifier, name, description, created_by, created_at, modified_by, modified_at
		FROM catalogs ORDER BY identifier
	`)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	defer rows.Close()

	var catalogs []*models.Catalog
	for rows.Next() {
		c := &models.Catalog{}
		if err := rows.Scan(&c.Identifier, &c.Name, &c.Description,
			&c.CreatedBy, &c.CreatedAt, &c.ModifiedBy, &c.ModifiedAt); err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		catalogs = append(catalogs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalogs: %w", err)
	}

	fields, err := loadFields(ctx, exec, `ORDER BY catalog_id, position`)
	if err != nil {
		return nil, err
	}
	for _, c := range catalogs {
		c.Fields = fields[c.Identifier]
	}
	return catalogs, nil
}

func (s *PostgresCatalogStore) Delete(ctx context.Context, identifier string) error {
	res, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx,
		`DELETE FROM catalogs WHERE identifier = $1`, identifier)
	if err != nil {
		if postgres.IsViolation(err, postgres.ForeignKeyViolation) {
			return sentinel.ErrInUse
		}
		return fmt.Errorf("delete catalog: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresCatalogStore) InsertField(ctx context.Context, catalog *models.Catalog, field models.Field) error {
	exec := txcontext.ExecutorFrom(ctx, s.db)
	var next int
	if err := exec.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM catalog_fields WHERE catalog_id = $1`,
		catalog.Identifier,
	).Scan(&next); err != nil {
		return fmt.Errorf("next field position: %w", err)
	}
	if err := insertField(ctx, exec, catalog.Identifier, next, field); err != nil {
		return err
	}
	return touch(ctx, exec, catalog)
}

func (s *PostgresCatalogStore) UpdateField(ctx context.Context, catalog *models.Catalog, field models.Field) error {
	exec := txcontext.ExecutorFrom(ctx, s.db)
	res, err := exec.ExecContext(ctx, `
		UPDATE catalog_fields
		SET data_type = $3, label = $4, hint = $5, description = $6, mandatory = $7,
		    length = $8, precision = $9, min_value = $10, max_value = $11
		WHERE catalog_id = $1 AND identifier = $2
	`, catalog.Identifier, field.Identifier, string(field.DataType), field.Label, field.Hint,
		field.Description, field.Mandatory, nullInt(field.Length), nullInt(field.Precision),
		nullDecimal(field.MinValue), nullDecimal(field.MaxValue))
	if err != nil {
		return fmt.Errorf("update field: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	if _, err := exec.ExecContext(ctx,
		`DELETE FROM field_options WHERE catalog_id = $1 AND field_id = $2`,
		catalog.Identifier, field.Identifier); err != nil {
		return fmt.Errorf("clear field options: %w", err)
	}
	if err := insertOptions(ctx, exec, catalog.Identifier, field); err != nil {
		return err
	}
	return touch(ctx, exec, catalog)
}

func (s *PostgresCatalogStore) DeleteField(ctx context.Context, catalog *models.Catalog, fieldID string) error {
	exec := txcontext.ExecutorFrom(ctx, s.db)
	res, err := exec.ExecContext(ctx,
		`DELETE FROM catalog_fields WHERE catalog_id = $1 AND identifier = $2`,
		catalog.Identifier, fieldID)
	if err != nil {
		if postgres.IsViolation(err, postgres.ForeignKeyViolation) {
			return sentinel.ErrInUse
		}
		return fmt.Errorf("delete field: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return touch(ctx, exec, catalog)
}

func insertField(ctx context.Context, exec txcontext.Executor, catalogID string, position int, field models.Field) error {
	_, err := exec.ExecContext(ctx, `
		INSERT INTO catalog_fields (catalog_id, identifier, position, data_type, label, hint, description,
		                            mandatory, length, precision, min_value, max_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, catalogID, field.Identifier, position, string(field.DataType), field.Label, field.Hint,
		field.Description, field.Mandatory, nullInt(field.Length), nullInt(field.Precision),
		nullDecimal(field.MinValue), nullDecimal(field.MaxValue))
	if err != nil {
		if postgres.IsViolation(err, postgres.UniqueViolation) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert field: %w", err)
	}
	return insertOptions(ctx, exec, catalogID, field)
}

func insertOptions(ctx context.Context, exec txcontext.Executor, catalogID string, field models.Field) error {
	for i, opt := range field.Options {
		if _, err := exec.ExecContext(ctx, `
			INSERT INTO field_options (catalog_id, field_id, position, label, value)
			VALUES ($1, $2, $3, $4, $5)
		`, catalogID, field.Identifier, i, opt.Label, opt.Value); err != nil {
			return fmt.Errorf("insert field option: %w", err)
		}
	}
	return nil
}

// loadFields reads fields and their options, grouped by catalog. The where
// clause applies to catalog_fields.
func loadFields(ctx context.Context, exec txcontext.Executor, where string, args ...any) (map[string][]models.Field, error) {
	rows, err := exec.QueryContext(ctx, `
		SELECT catalog_id, identifier, data_type, label, hint, description, mandatory,
		       length, precision, min_value, max_value
		FROM catalog_fields `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query fields: %w", err)
	}
	defer rows.Close()

	type key struct{ catalog, field string }
	out := make(map[string][]models.Field)
	index := make(map[key]int)
	for rows.Next() {
		var (
			catalogID          string
			f                  models.Field
			dataType           string
			length, precision  sql.NullInt32
			minValue, maxValue decimal.NullDecimal
		)
		if err := rows.Scan(&catalogID, &f.Identifier, &dataType, &f.Label, &f.Hint, &f.Description,
			&f.Mandatory, &length, &precision, &minValue, &maxValue); err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		f.DataType = models.DataType(dataType)
		f.Length = intFromNull(length)
		f.Precision = intFromNull(precision)
		f.MinValue = decimalFromNull(minValue)
		f.MaxValue = decimalFromNull(maxValue)
		index[key{catalogID, f.Identifier}] = len(out[catalogID])
		out[catalogID] = append(out[catalogID], f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fields: %w", err)
	}
	rows.Close()

	if len(index) == 0 {
		return out, nil
	}
	optQuery := `SELECT catalog_id, field_id, label, value FROM field_options ORDER BY catalog_id, field_id, position`
	var optArgs []any
	if len(args) > 0 {
		optQuery = `SELECT catalog_id, field_id, label, value FROM field_options WHERE catalog_id = $1 ORDER BY field_id, position`
		optArgs = args[:1]
	}
	optRows, err := exec.QueryContext(ctx, optQuery, optArgs...)
	if err != nil {
		return nil, fmt.Errorf("query field options: %w", err)
	}
	defer optRows.Close()
	for optRows.Next() {
		var catalogID, fieldID string
		var opt models.Option
		if err := optRows.Scan(&catalogID, &fieldID, &opt.Label, &opt.Value); err != nil {
			return nil, fmt.Errorf("scan field option: %w", err)
		}
		i, ok := index[key{catalogID, fieldID}]
		if !ok {
			continue
		}
		out[catalogID][i].Options = append(out[catalogID][i].Options, opt)
	}
	if err := optRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate field options: %w", err)
	}
	return out, nil
}

func touch(ctx context.Context, exec txcontext.Executor, catalog *models.Catalog) error {
	if _, err := exec.ExecContext(ctx,
		`UPDATE catalogs SET modified_by = $2, modified_at = $3 WHERE identifier = $1`,
		catalog.Identifier, catalog.ModifiedBy, catalog.ModifiedAt); err != nil {
		return fmt.Errorf("touch catalog: %w", err)
	}
	return nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullInt(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func intFromNull(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalFromNull(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Decimal
	return &d
}
