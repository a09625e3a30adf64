// Package service is the schema registry: it owns catalogs and their custom
// field definitions and guards field and catalog edits against in-use values.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"customercore/internal/schema/models"
	dErrors "customercore/pkg/domain-errors"
	"customercore/pkg/platform/audit"
	"customercore/pkg/platform/sentinel"
	txcontext "customercore/pkg/platform/tx"
	"customercore/pkg/requestcontext"
)

// Store persists catalogs. Field-level methods exist so that untouched fields
// are never rewritten, which keeps referencing values intact.
type Store interface {
	Create(ctx context.Context, catalog *models.Catalog) error
	FindByID(ctx context.Context, identifier string) (*models.Catalog, error)
	// FindByIDForUpdate loads the catalog and locks it until the surrounding
	// transaction ends.
	FindByIDForUpdate(ctx context.Context, identifier string) (*models.Catalog, error)
	List(ctx context.Context) ([]*models.Catalog, error)
	Delete(ctx context.Context, identifier string) error
	InsertField(ctx context.Context, catalog *models.Catalog, field models.Field) error
	UpdateField(ctx context.Context, catalog *models.Catalog, field models.Field) error
	DeleteField(ctx context.Context, catalog *models.Catalog, fieldID string) error
}

// ValueUsage answers whether customer values reference schema elements.
type ValueUsage interface {
	FieldInUse(ctx context.Context, catalogID, fieldID string) (bool, error)
	CatalogInUse(ctx context.Context, catalogID string) (bool, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	store          Store
	usage          ValueUsage
	tx             txcontext.Runner
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func New(store Store, usage ValueUsage, tx txcontext.Runner, opts ...Option) *Service {
	s := &Service{store: store, usage: usage, tx: tx}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LockKey is the in-memory lock key shared by schema mutations and value
// submissions against the same catalog.
func LockKey(catalogID string) string {
	return "schema:" + catalogID
}

type CreateCatalogCommand struct {
	Identifier  string
	Name        string
	Description string
	Fields      []models.Field
}

// CreateCatalog creates a catalog with all of its fields as one unit.
func (s *Service) CreateCatalog(ctx context.Context, cmd CreateCatalogCommand) (*models.Catalog, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := models.NewCatalog(strings.TrimSpace(cmd.Identifier), strings.TrimSpace(cmd.Name),
		cmd.Description, cmd.Fields, actor, requestcontext.Now(ctx))
	if err != nil {
		return nil, asValidation(err)
	}

	ctx = txcontext.WithLockKeys(ctx, LockKey(catalog.Identifier))
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Create(ctx, catalog); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "catalog identifier already exists").
					WithDetail("catalog", catalog.Identifier)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create catalog")
		}
		return s.emit(ctx, audit.EventCatalogCreated, catalog.Identifier, "",
			"field_count", len(catalog.Fields))
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *Service) ListCatalogs(ctx context.Context) ([]*models.Catalog, error) {
	catalogs, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list catalogs")
	}
	return catalogs, nil
}

func (s *Service) GetCatalog(ctx context.Context, identifier string) (*models.Catalog, error) {
	catalog, err := s.store.FindByID(ctx, identifier)
	if err != nil {
		return nil, translateFind(err, identifier)
	}
	return catalog, nil
}

// DeleteCatalog removes a catalog that no customer value references.
func (s *Service) DeleteCatalog(ctx context.Context, identifier string) error {
	if _, err := requireActor(ctx); err != nil {
		return err
	}
	ctx = txcontext.WithLockKeys(ctx, LockKey(identifier))
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.store.FindByIDForUpdate(ctx, identifier); err != nil {
			return translateFind(err, identifier)
		}
		inUse, err := s.usage.CatalogInUse(ctx, identifier)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check catalog usage")
		}
		if inUse {
			return catalogInUse(identifier)
		}
		if err := s.store.Delete(ctx, identifier); err != nil {
			if errors.Is(err, sentinel.ErrInUse) {
				return catalogInUse(identifier)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete catalog")
		}
		return s.emit(ctx, audit.EventCatalogDeleted, identifier, "")
	})
}

// AddField appends a new field to an existing catalog.
func (s *Service) AddField(ctx context.Context, catalogID string, field models.Field) (*models.Catalog, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	var result *models.Catalog
	ctx = txcontext.WithLockKeys(ctx, LockKey(catalogID))
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		catalog, err := s.store.FindByIDForUpdate(ctx, catalogID)
		if err != nil {
			return translateFind(err, catalogID)
		}
		if err := catalog.AddField(field, actor, requestcontext.Now(ctx)); err != nil {
			return asValidation(err)
		}
		if err := s.store.InsertField(ctx, catalog, field); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "field identifier already exists").
					WithDetail("catalog", catalogID).
					WithDetail("field", field.Identifier)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to add field")
		}
		result = catalog
		return s.emit(ctx, audit.EventFieldAdded, catalogID, field.Identifier)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateField replaces a field definition. Refused while any value references it.
func (s *Service) UpdateField(ctx context.Context, catalogID string, field models.Field) (*models.Catalog, error) {
	return s.editField(ctx, catalogID, field.Identifier, func(models.Field) models.Field {
		return field
	})
}

// ReplaceOptions swaps the complete option set of a selection field.
func (s *Service) ReplaceOptions(ctx context.Context, catalogID, fieldID string, options []models.Option) (*models.Catalog, error) {
	return s.editField(ctx, catalogID, fieldID, func(existing models.Field) models.Field {
		return existing.WithOptions(options)
	})
}

func (s *Service) editField(ctx context.Context, catalogID, fieldID string, edit func(models.Field) models.Field) (*models.Catalog, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	var result *models.Catalog
	ctx = txcontext.WithLockKeys(ctx, LockKey(catalogID))
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		catalog, existing, err := s.loadField(ctx, catalogID, fieldID)
		if err != nil {
			return err
		}
		if err := s.ensureFieldUnused(ctx, catalogID, fieldID); err != nil {
			return err
		}
		updated := edit(existing)
		updated.Identifier = fieldID
		if err := catalog.ReplaceField(updated, actor, requestcontext.Now(ctx)); err != nil {
			return asValidation(err)
		}
		if err := s.store.UpdateField(ctx, catalog, updated); err != nil {
			if errors.Is(err, sentinel.ErrInUse) {
				return fieldInUse(catalogID, fieldID)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update field")
		}
		result = catalog
		return s.emit(ctx, audit.EventFieldUpdated, catalogID, fieldID)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteField removes a field no value references.
func (s *Service) DeleteField(ctx context.Context, catalogID, fieldID string) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	ctx = txcontext.WithLockKeys(ctx, LockKey(catalogID))
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		catalog, _, err := s.loadField(ctx, catalogID, fieldID)
		if err != nil {
			return err
		}
		if err := s.ensureFieldUnused(ctx, catalogID, fieldID); err != nil {
			return err
		}
		if err := catalog.RemoveField(fieldID, actor, requestcontext.Now(ctx)); err != nil {
			return err
		}
		if err := s.store.DeleteField(ctx, catalog, fieldID); err != nil {
			if errors.Is(err, sentinel.ErrInUse) {
				return fieldInUse(catalogID, fieldID)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete field")
		}
		return s.emit(ctx, audit.EventFieldDeleted, catalogID, fieldID)
	})
}

func (s *Service) loadField(ctx context.Context, catalogID, fieldID string) (*models.Catalog, models.Field, error) {
	catalog, err := s.store.FindByIDForUpdate(ctx, catalogID)
	if err != nil {
		return nil, models.Field{}, translateFind(err, catalogID)
	}
	field, ok := catalog.Field(fieldID)
	if !ok {
		return nil, models.Field{}, dErrors.New(dErrors.CodeNotFound, "field not found").
			WithDetail("catalog", catalogID).
			WithDetail("field", fieldID)
	}
	return catalog, field, nil
}

func (s *Service) ensureFieldUnused(ctx context.Context, catalogID, fieldID string) error {
	inUse, err := s.usage.FieldInUse(ctx, catalogID, fieldID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check field usage")
	}
	if inUse {
		return fieldInUse(catalogID, fieldID)
	}
	return nil
}

func requireActor(ctx context.Context) (string, error) {
	actor := requestcontext.Actor(ctx)
	if actor == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "actor required")
	}
	return actor, nil
}

func translateFind(err error, catalogID string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "catalog not found").WithDetail("catalog", catalogID)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load catalog")
}

// asValidation converts model invariant violations to validation errors for
// the API response.
func asValidation(err error) error {
	if de, ok := dErrors.As(err); ok && de.Code == dErrors.CodeInvariantViolation {
		cp := *de
		cp.Code = dErrors.CodeValidation
		return &cp
	}
	return err
}

func catalogInUse(catalogID string) error {
	return dErrors.New(dErrors.CodeConflict, "catalog is referenced by customer values").
		WithDetail("catalog", catalogID)
}

func fieldInUse(catalogID, fieldID string) error {
	return dErrors.New(dErrors.CodeConflict, "field is referenced by customer values").
		WithDetail("catalog", catalogID).
		WithDetail("field", fieldID)
}

func (s *Service) emit(ctx context.Context, event audit.AuditEvent, catalogID, fieldID string, attributes ...any) error {
	actor := requestcontext.Actor(ctx)
	requestID := requestcontext.RequestID(ctx)
	if s.logger != nil {
		args := append(attributes,
			"catalog", catalogID,
			"actor", actor,
			"event", string(event),
			"log_type", "audit",
		)
		if fieldID != "" {
			args = append(args, "field", fieldID)
		}
		if requestID != "" {
			args = append(args, "request_id", requestID)
		}
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return nil
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Category:  event.Category(),
		Timestamp: requestcontext.Now(ctx),
		ActorID:   actor,
		Subject:   catalogID,
		Action:    string(event),
		Resource:  fieldID,
		RequestID: requestID,
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}
