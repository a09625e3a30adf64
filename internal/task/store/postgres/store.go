// Package postgres holds the PostgreSQL task definition and instance stores.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"customercore/internal/lifecycle"
	"customercore/internal/platform/postgres"
	"customercore/internal/task/models"
	"customercore/pkg/platform/sentinel"
	txcontext "customercore/pkg/platform/tx"
)

type PostgresDefinitionStore struct {
	db *sql.DB
}

func NewDefinitionStore(db *sql.DB) *PostgresDefinitionStore {
	return &PostgresDefinitionStore{db: db}
}

const definitionColumns = `identifier, task_type, name, description, mandatory, predefined, commands,
	created_by, created_at, modified_by, modified_at`

func (s *PostgresDefinitionStore) Create(ctx context.Context, def *models.Definition) error {
	_, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO task_definitions (`+definitionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, def.Identifier, string(def.Type), def.Name, def.Description, def.Mandatory, def.Predefined,
		pq.Array(commandStrings(def.Commands)), def.CreatedBy, def.CreatedAt, def.ModifiedBy, def.ModifiedAt)
	if err != nil {
		if postgres.IsViolation(err, postgres.UniqueViolation) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert task definition: %w", err)
	}
	return nil
}

func (s *PostgresDefinitionStore) FindByID(ctx context.Context, identifier string) (*models.Definition, error) {
	row := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+definitionColumns+` FROM task_definitions WHERE identifier = $1`, identifier)
	def, err := scanDefinition(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find task definition: %w", err)
	}
	return def, nil
}

func (s *PostgresDefinitionStore) List(ctx context.Context) ([]*models.Definition, error) {
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx,
		`SELECT `+definitionColumns+` FROM task_definitions ORDER BY identifier`)
	if err != nil {
		return nil, fmt.Errorf("list task definitions: %w", err)
	}
	defer rows.Close()

	var out []*models.Definition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task definition: %w", err)
		}
		out = append(out, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task definitions: %w", err)
	}
	return out, nil
}

func (s *PostgresDefinitionStore) Update(ctx context.Context, def *models.Definition) error {
	res, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE task_definitions
		SET name = $2, description = $3, mandatory = $4, predefined = $5, commands = $6,
		    modified_by = $7, modified_at = $8
		WHERE identifier = $1
	`, def.Identifier, def.Name, def.Description, def.Mandatory, def.Predefined,
		pq.Array(commandStrings(def.Commands)), def.ModifiedBy, def.ModifiedAt)
	if err != nil {
		return fmt.Errorf("update task definition: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresDefinitionStore) Delete(ctx context.Context, identifier string) error {
	res, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx,
		`DELETE FROM task_definitions WHERE identifier = $1`, identifier)
	if err != nil {
		if postgres.IsViolation(err, postgres.ForeignKeyViolation) {
			return sentinel.ErrInUse
		}
		return fmt.Errorf("delete task definition: %w", err)
	}
	return requireAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDefinition(row scanner) (*models.Definition, error) {
	var (
		def      models.Definition
		taskType string
		commands []string
	)
	if err := row.Scan(&def.Identifier, &taskType, &def.Name, &def.Description, &def.Mandatory,
		&def.Predefined, pq.Array(&commands), &def.CreatedBy, &def.CreatedAt, &def.ModifiedBy, &def.ModifiedAt); err != nil {
		return nil, err
	}
	def.Type = models.TaskType(taskType)
	def.Commands = make([]lifecycle.Command, len(commands))
	for i, c := range commands {
		def.Commands[i] = lifecycle.Command(c)
	}
	return &def, nil
}

func commandStrings(commands []lifecycle.Command) []string {
	out := make([]string, len(commands))
	for i, c := range commands {
		out[i] = string(c)
	}
	return out
}

type PostgresInstanceStore struct {
	db *sql.DB
}

func NewInstanceStore(db *sql.DB) *PostgresInstanceStore {
	return &PostgresInstanceStore{db: db}
}

const instanceColumns = `id, customer_id, definition_id, comment, executed_on, executed_by, created_at`

func (s *PostgresInstanceStore) ListByCustomer(ctx context.Context, customerID string) ([]*models.Instance, error) {
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx,
		`SELECT `+instanceColumns+` FROM task_instances WHERE customer_id = $1 ORDER BY definition_id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list task instances: %w", err)
	}
	defer rows.Close()

	var out []*models.Instance
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task instance: %w", err)
		}
		out = append(out, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task instances: %w", err)
	}
	return out, nil
}

// GetOrCreate relies on the (customer_id, definition_id) unique constraint.
// The no-op update on conflict makes RETURNING yield the existing row. A
// missing definition inserts nothing and yields sentinel.ErrNotFound without
// aborting the surrounding transaction.
func (s *PostgresInstanceStore) GetOrCreate(ctx context.Context, candidate *models.Instance) (*models.Instance, error) {
	row := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO task_instances (id, customer_id, definition_id, comment, created_at)
		SELECT $1::uuid, $2::text, $3::text, $4::text, $5::timestamptz
		WHERE EXISTS (SELECT 1 FROM task_definitions WHERE identifier = $3::text)
		ON CONFLICT (customer_id, definition_id)
		DO UPDATE SET customer_id = EXCLUDED.customer_id
		RETURNING `+instanceColumns,
		candidate.ID, candidate.CustomerID, candidate.DefinitionID, candidate.Comment, candidate.CreatedAt)
	inst, err := scanInstance(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || postgres.IsViolation(err, postgres.ForeignKeyViolation) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get or create task instance: %w", err)
	}
	return inst, nil
}

func (s *PostgresInstanceStore) Save(ctx context.Context, inst *models.Instance) error {
	res, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE task_instances SET comment = $2, executed_on = $3, executed_by = $4
		WHERE id = $1
	`, inst.ID, inst.Comment, inst.ExecutedOn, nullString(inst.ExecutedBy))
	if err != nil {
		return fmt.Errorf("save task instance: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresInstanceStore) CountByDefinition(ctx context.Context, definitionID string) (int, error) {
	var n int
	if err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM task_instances WHERE definition_id = $1`, definitionID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count task instances: %w", err)
	}
	return n, nil
}

func scanInstance(row scanner) (*models.Instance, error) {
	var (
		inst       models.Instance
		executedOn sql.NullTime
		executedBy sql.NullString
	)
	if err := row.Scan(&inst.ID, &inst.CustomerID, &inst.DefinitionID, &inst.Comment,
		&executedOn, &executedBy, &inst.CreatedAt); err != nil {
		return nil, err
	}
	if executedOn.Valid {
		on := executedOn.Time
		inst.ExecutedOn = &on
	}
	inst.ExecutedBy = executedBy.String
	return &inst, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
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

