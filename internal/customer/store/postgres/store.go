// Package postgres holds the PostgreSQL customer, command and identification
// stores. Address and contacts are kept as JSONB on the customer row; custom
// values live in customer_values with a foreign key onto catalog_fields.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"customercore/internal/customer/models"
	"customercore/internal/lifecycle"
	"customercore/internal/platform/postgres"
	"customercore/pkg/platform/sentinel"
	txcontext "customercore/pkg/platform/tx"
)

type PostgresCustomerStore struct {
	db *sql.DB
}

func NewCustomerStore(db *sql.DB) *PostgresCustomerStore {
	return &PostgresCustomerStore{db: db}
}

const customerColumns = `identifier, customer_type, first_name, middle_name, last_name, business_name,
	date_of_birth, address, contacts, state, created_by, created_at, modified_by, modified_at`

func (s *PostgresCustomerStore) Create(ctx context.Context, customer *models.Customer) error {
	address, contacts, err := encodeProfile(customer.Profile)
	if err != nil {
		return err
	}
	exec := txcontext.ExecutorFrom(ctx, s.db)
	_, err = exec.ExecContext(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, customer.Identifier, string(customer.Type), customer.FirstName, customer.MiddleName, customer.LastName,
		customer.BusinessName, nullTime(customer.DateOfBirth), address, contacts, string(customer.State),
		customer.CreatedBy, customer.CreatedAt, customer.ModifiedBy, customer.ModifiedAt)
	if err != nil {
		if postgres.IsViolation(err, postgres.UniqueViolation) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return insertValues(ctx, exec, customer)
}

func (s *PostgresCustomerStore) FindByID(ctx context.Context, identifier string) (*models.Customer, error) {
	return s.find(ctx, identifier, "")
}

// FindByIDForUpdate locks the customer row for the rest of the transaction.
func (s *PostgresCustomerStore) FindByIDForUpdate(ctx context.Context, identifier string) (*models.Customer, error) {
	lock := ""
	if _, ok := txcontext.From(ctx); ok {
		lock = "FOR UPDATE"
	}
	return s.find(ctx, identifier, lock)
}

func (s *PostgresCustomerStore) find(ctx context.Context, identifier, lock string) (*models.Customer, error) {
	exec := txcontext.ExecutorFrom(ctx, s.db)
	row := exec.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE identifier = $1 `+lock, identifier)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	values, err := loadValues(ctx, exec, []string{identifier})
	if err != nil {
		return nil, err
	}
	customer.Values = values[identifier]
	return customer, nil
}

func (s *PostgresCustomerStore) List(ctx context.Context, state lifecycle.State) ([]*models.Customer, error) {
	exec := txcontext.ExecutorFrom(ctx, s.db)
	query := `SELECT ` + customerColumns + ` FROM customers`
	var args []any
	if state != "" {
		query += ` WHERE state = $1`
		args = append(args, string(state))
	}
	rows, err := exec.QueryContext(ctx, query+` ORDER BY identifier`, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var (
		out []*models.Customer
		ids []string
	)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, customer)
		ids = append(ids, customer.Identifier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	if len(ids) == 0 {
		return out, nil
	}
	values, err := loadValues(ctx, exec, ids)
	if err != nil {
		return nil, err
	}
	for _, customer := range out {
		customer.Values = values[customer.Identifier]
	}
	return out, nil
}

// Update writes profile, state and modification stamps. Values are untouched.
func (s *PostgresCustomerStore) Update(ctx context.Context, customer *models.Customer) error {
	address, contacts, err := encodeProfile(customer.Profile)
	if err != nil {
		return err
	}
	res, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE customers
		SET first_name = $2, middle_name = $3, last_name = $4, business_name = $5, date_of_birth = $6,
		    address = $7, contacts = $8, state = $9, modified_by = $10, modified_at = $11
		WHERE identifier = $1
	`, customer.Identifier, customer.FirstName, customer.MiddleName, customer.LastName, customer.BusinessName,
		nullTime(customer.DateOfBirth), address, contacts, string(customer.State), customer.ModifiedBy, customer.ModifiedAt)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresCustomerStore) ReplaceValues(ctx context.Context, customer *models.Customer) error {
	exec := txcontext.ExecutorFrom(ctx, s.db)
	res, err := exec.ExecContext(ctx,
		`UPDATE customers SET modified_by = $2, modified_at = $3 WHERE identifier = $1`,
		customer.Identifier, customer.ModifiedBy, customer.ModifiedAt)
	if err != nil {
		return fmt.Errorf("touch customer: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM customer_values WHERE customer_id = $1`, customer.Identifier); err != nil {
		return fmt.Errorf("clear customer values: %w", err)
	}
	return insertValues(ctx, exec, customer)
}

func (s *PostgresCustomerStore) FieldInUse(ctx context.Context, catalogID, fieldID string) (bool, error) {
	var inUse bool
	err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM customer_values WHERE catalog_id = $1 AND field_id = $2)`,
		catalogID, fieldID).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("check field usage: %w", err)
	}
	return inUse, nil
}

func (s *PostgresCustomerStore) CatalogInUse(ctx context.Context, catalogID string) (bool, error) {
	var inUse bool
	err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM customer_values WHERE catalog_id = $1)`, catalogID).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("check catalog usage: %w", err)
	}
	return inUse, nil
}

func insertValues(ctx context.Context, exec txcontext.Executor, customer *models.Customer) error {
	for i, v := range customer.Values {
		_, err := exec.ExecContext(ctx, `
			INSERT INTO customer_values (customer_id, catalog_id, field_id, position, value)
			VALUES ($1, $2, $3, $4, $5)
		`, customer.Identifier, v.Catalog, v.Field, i, v.Value)
		if err != nil {
			if postgres.IsViolation(err, postgres.ForeignKeyViolation) {
				return fmt.Errorf("value for unknown field %s/%s: %w", v.Catalog, v.Field, sentinel.ErrNotFound)
			}
			if postgres.IsViolation(err, postgres.UniqueViolation) {
				return fmt.Errorf("duplicate value for %s/%s: %w", v.Catalog, v.Field, sentinel.ErrAlreadyUsed)
			}
			return fmt.Errorf("insert customer value: %w", err)
		}
	}
	return nil
}

func loadValues(ctx context.Context, exec txcontext.Executor, customerIDs []string) (map[string][]models.Value, error) {
	rows, err := exec.QueryContext(ctx, `
		SELECT customer_id, catalog_id, field_id, value
		FROM customer_values
		WHERE customer_id = ANY($1)
		ORDER BY customer_id, position
	`, pq.Array(customerIDs))
	if err != nil {
		return nil, fmt.Errorf("load customer values: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Value, len(customerIDs))
	for rows.Next() {
		var (
			customerID string
			v          models.Value
		)
		if err := rows.Scan(&customerID, &v.Catalog, &v.Field, &v.Value); err != nil {
			return nil, fmt.Errorf("scan customer value: %w", err)
		}
		out[customerID] = append(out[customerID], v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer values: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row scanner) (*models.Customer, error) {
	var (
		c            models.Customer
		customerType string
		state        string
		dob          sql.NullTime
		address      []byte
		contacts     []byte
	)
	if err := row.Scan(&c.Identifier, &customerType, &c.FirstName, &c.MiddleName, &c.LastName, &c.BusinessName,
		&dob, &address, &contacts, &state, &c.CreatedBy, &c.CreatedAt, &c.ModifiedBy, &c.ModifiedAt); err != nil {
		return nil, err
	}
	c.Type = models.Type(customerType)
	c.State = lifecycle.State(state)
	c.DateOfBirth = timeFromNull(dob)
	if len(address) > 0 {
		if err := json.Unmarshal(address, &c.Address); err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
	}
	if len(contacts) > 0 {
		if err := json.Unmarshal(contacts, &c.Contacts); err != nil {
			return nil, fmt.Errorf("decode contacts: %w", err)
		}
	}
	return &c, nil
}

func encodeProfile(p models.Profile) (address, contacts []byte, err error) {
	if p.Address != nil {
		if address, err = json.Marshal(p.Address); err != nil {
			return nil, nil, fmt.Errorf("encode address: %w", err)
		}
	}
	list := p.Contacts
	if list == nil {
		list = []models.ContactDetail{}
	}
	if contacts, err = json.Marshal(list); err != nil {
		return nil, nil, fmt.Errorf("encode contacts: %w", err)
	}
	return address, contacts, nil
}

type PostgresCommandStore struct {
	db *sql.DB
}

func NewCommandStore(db *sql.DB) *PostgresCommandStore {
	return &PostgresCommandStore{db: db}
}

func (s *PostgresCommandStore) Append(ctx context.Context, record *models.CommandRecord) error {
	_, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO customer_commands (id, customer_id, action, from_state, to_state, comment, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, record.ID, record.CustomerID, string(record.Action), string(record.From), string(record.To),
		record.Comment, record.Actor, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert customer command: %w", err)
	}
	return nil
}

func (s *PostgresCommandStore) ListByCustomer(ctx context.Context, customerID string) ([]*models.CommandRecord, error) {
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx, `
		SELECT id, customer_id, action, from_state, to_state, comment, actor, created_at
		FROM customer_commands
		WHERE customer_id = $1
		ORDER BY created_at, id
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer commands: %w", err)
	}
	defer rows.Close()

	var out []*models.CommandRecord
	for rows.Next() {
		var (
			r                models.CommandRecord
			action, from, to string
		)
		if err := rows.Scan(&r.ID, &r.CustomerID, &action, &from, &to, &r.Comment, &r.Actor, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer command: %w", err)
		}
		r.Action = lifecycle.Command(action)
		r.From = lifecycle.State(from)
		r.To = lifecycle.State(to)
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer commands: %w", err)
	}
	return out, nil
}

type PostgresIdentificationStore struct {
	db *sql.DB
}

func NewIdentificationStore(db *sql.DB) *PostgresIdentificationStore {
	return &PostgresIdentificationStore{db: db}
}

func (s *PostgresIdentificationStore) Add(ctx context.Context, card *models.IdentificationCard) error {
	_, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO identification_cards (id, customer_id, kind, number, issued_by, expires_on, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, card.ID, card.CustomerID, card.Kind, card.Number, card.IssuedBy, nullTime(card.ExpiresOn),
		card.CreatedBy, card.CreatedAt)
	if err != nil {
		if postgres.IsViolation(err, postgres.UniqueViolation) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert identification card: %w", err)
	}
	return nil
}

func (s *PostgresIdentificationStore) ListByCustomer(ctx context.Context, customerID string) ([]*models.IdentificationCard, error) {
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx, `
		SELECT id, customer_id, kind, number, issued_by, expires_on, created_by, created_at
		FROM identification_cards
		WHERE customer_id = $1
		ORDER BY created_at, id
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list identification cards: %w", err)
	}
	defer rows.Close()

	var out []*models.IdentificationCard
	for rows.Next() {
		var (
			card    models.IdentificationCard
			expires sql.NullTime
		)
		if err := rows.Scan(&card.ID, &card.CustomerID, &card.Kind, &card.Number, &card.IssuedBy, &expires,
			&card.CreatedBy, &card.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan identification card: %w", err)
		}
		card.ExpiresOn = timeFromNull(expires)
		out = append(out, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate identification cards: %w", err)
	}
	return out, nil
}

func (s *PostgresIdentificationStore) Delete(ctx context.Context, customerID string, id uuid.UUID) error {
	res, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx,
		`DELETE FROM identification_cards WHERE customer_id = $1 AND id = $2`, customerID, id)
	if err != nil {
		return fmt.Errorf("delete identification card: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresIdentificationStore) HasAny(ctx context.Context, customerID string) (bool, error) {
	var has bool
	err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM identification_cards WHERE customer_id = $1)`, customerID).Scan(&has)
	if err != nil {
		return false, fmt.Errorf("check identification cards: %w", err)
	}
	return has, nil
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

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timeFromNull(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
