// Package service implements the task catalog (definition CRUD) and the task
// ledger (per-customer instances and the gating checks run against them).
package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"customercore/internal/lifecycle"
	"customercore/internal/task/models"
	dErrors "customercore/pkg/domain-errors"
	"customercore/pkg/platform/audit"
	"customercore/pkg/platform/sentinel"
	txcontext "customercore/pkg/platform/tx"
	"customercore/pkg/requestcontext"
)

type DefinitionStore interface {
	Create(ctx context.Context, def *models.Definition) error
	FindByID(ctx context.Context, identifier string) (*models.Definition, error)
	List(ctx context.Context) ([]*models.Definition, error)
	Update(ctx context.Context, def *models.Definition) error
	Delete(ctx context.Context, identifier string) error
}

type InstanceStore interface {
	ListByCustomer(ctx context.Context, customerID string) ([]*models.Instance, error)
	// GetOrCreate returns the instance for the pair, inserting candidate when
	// there is none. Concurrent callers observe the same instance.
	GetOrCreate(ctx context.Context, candidate *models.Instance) (*models.Instance, error)
	Save(ctx context.Context, inst *models.Instance) error
	CountByDefinition(ctx context.Context, definitionID string) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	definitions    DefinitionStore
	instances      InstanceStore
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

func New(definitions DefinitionStore, instances InstanceStore, tx txcontext.Runner, opts ...Option) *Service {
	s := &Service{definitions: definitions, instances: instances, tx: tx}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefinitionLockKey serializes edits of one definition in memory.
func DefinitionLockKey(identifier string) string {
	return "task:" + identifier
}

type CreateDefinitionCommand struct {
	Identifier string
	Type       models.TaskType
	models.DefinitionSpec
}

func (s *Service) CreateDefinition(ctx context.Context, cmd CreateDefinitionCommand) (*models.Definition, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	def, err := models.NewDefinition(strings.TrimSpace(cmd.Identifier), cmd.Type, cmd.DefinitionSpec, actor, requestcontext.Now(ctx))
	if err != nil {
		return nil, asValidation(err)
	}
	ctx = txcontext.WithLockKeys(ctx, DefinitionLockKey(def.Identifier))
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.definitions.Create(ctx, def); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "task identifier already exists").
					WithDetail("task", def.Identifier)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create task definition")
		}
		return s.emit(ctx, audit.EventTaskDefinitionCreated, def.Identifier, "")
	})
	if err != nil {
		return nil, err
	}
	return def, nil
}

func (s *Service) GetDefinition(ctx context.Context, identifier string) (*models.Definition, error) {
	def, err := s.definitions.FindByID(ctx, identifier)
	if err != nil {
		return nil, translateFind(err, identifier)
	}
	return def, nil
}

func (s *Service) ListDefinitions(ctx context.Context) ([]*models.Definition, error) {
	defs, err := s.definitions.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list task definitions")
	}
	return defs, nil
}

// UpdateDefinition replaces the editable attributes. Toggling mandatory or
// predefined retires or introduces a rule while keeping recorded instances.
func (s *Service) UpdateDefinition(ctx context.Context, identifier string, spec models.DefinitionSpec) (*models.Definition, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	var result *models.Definition
	ctx = txcontext.WithLockKeys(ctx, DefinitionLockKey(identifier))
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		def, err := s.definitions.FindByID(ctx, identifier)
		if err != nil {
			return translateFind(err, identifier)
		}
		if err := def.Apply(spec, actor, requestcontext.Now(ctx)); err != nil {
			return asValidation(err)
		}
		if err := s.definitions.Update(ctx, def); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return translateFind(err, identifier)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update task definition")
		}
		result = def
		return s.emit(ctx, audit.EventTaskDefinitionUpdated, identifier, "")
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteDefinition removes a definition no customer has an instance of.
func (s *Service) DeleteDefinition(ctx context.Context, identifier string) error {
	if _, err := requireActor(ctx); err != nil {
		return err
	}
	ctx = txcontext.WithLockKeys(ctx, DefinitionLockKey(identifier))
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.definitions.FindByID(ctx, identifier); err != nil {
			return translateFind(err, identifier)
		}
		n, err := s.instances.CountByDefinition(ctx, identifier)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count task instances")
		}
		if n > 0 {
			return definitionInUse(identifier)
		}
		if err := s.definitions.Delete(ctx, identifier); err != nil {
			if errors.Is(err, sentinel.ErrInUse) {
				return definitionInUse(identifier)
			}
			return translateFind(err, identifier)
		}
		return s.emit(ctx, audit.EventTaskDefinitionDeleted, identifier, "")
	})
}

// Entry pairs a definition with the customer's instance of it. Instance is
// nil when none has been provisioned.
type Entry struct {
	Definition *models.Definition
	Instance   *models.Instance
}

// FindForCustomer returns the customer's recorded instances with their
// definitions, without provisioning anything.
func (s *Service) FindForCustomer(ctx context.Context, customerID string) ([]Entry, error) {
	defs, err := s.definitionIndex(ctx)
	if err != nil {
		return nil, err
	}
	instances, err := s.instances.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list task instances")
	}
	entries := make([]Entry, 0, len(instances))
	for _, inst := range instances {
		def, ok := defs[inst.DefinitionID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{Definition: def, Instance: inst})
	}
	return entries, nil
}

// ProvisionMandatory creates the missing instances of every enforced
// definition for the customer and returns all of the customer's entries.
// Callers hold the customer's transaction.
func (s *Service) ProvisionMandatory(ctx context.Context, customerID string) ([]Entry, error) {
	var entries []Entry
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		defs, err := s.ListDefinitions(ctx)
		if err != nil {
			return err
		}
		for _, def := range defs {
			if !def.Enforced() {
				continue
			}
			if _, err := s.getOrCreate(ctx, customerID, def.Identifier); err != nil {
				if dErrors.HasCode(err, dErrors.CodeNotFound) {
					continue
				}
				return err
			}
		}
		entries, err = s.FindForCustomer(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetOrCreate returns the customer's instance of a definition, provisioning
// it on first use.
func (s *Service) GetOrCreate(ctx context.Context, customerID, definitionID string) (*models.Instance, error) {
	if _, err := s.GetDefinition(ctx, definitionID); err != nil {
		return nil, err
	}
	var inst *models.Instance
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		inst, err = s.getOrCreate(ctx, customerID, definitionID)
		return err
	})
	return inst, err
}

// getOrCreate yields not_found when the definition was deleted after the
// caller read it.
func (s *Service) getOrCreate(ctx context.Context, customerID, definitionID string) (*models.Instance, error) {
	inst, err := s.instances.GetOrCreate(ctx, models.NewInstance(customerID, definitionID, requestcontext.Now(ctx)))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, translateFind(err, definitionID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to provision task instance")
	}
	return inst, nil
}

// FindUnsatisfied runs the gating check for cmd: every enforced definition
// gating cmd gets an instance, and the identifiers of those the evidence does
// not satisfy are returned in identifier order. Must run inside the
// transaction that applies the transition.
func (s *Service) FindUnsatisfied(ctx context.Context, customerID string, cmd lifecycle.Command, ev models.Evidence) ([]string, error) {
	ctx, span := otel.Tracer("customercore/task").Start(ctx, "task.FindUnsatisfied")
	defer span.End()
	span.SetAttributes(attribute.String("command", string(cmd)))

	if !cmd.Gateable() {
		return nil, nil
	}
	defs, err := s.ListDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	var unsatisfied []string
	for _, def := range defs {
		if !def.Enforced() || !def.Gates(cmd) {
			continue
		}
		inst, err := s.getOrCreate(ctx, customerID, def.Identifier)
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !models.Satisfied(def, inst, ev) {
			unsatisfied = append(unsatisfied, def.Identifier)
		}
	}
	slices.Sort(unsatisfied)
	span.SetAttributes(attribute.Int("unsatisfied", len(unsatisfied)))
	return unsatisfied, nil
}

// Outstanding lists, per command, the definitions gating it whose instance
// (existing or not yet provisioned) is unsatisfied. Nothing is provisioned.
// Commands with nothing outstanding are omitted.
func (s *Service) Outstanding(ctx context.Context, customerID string, commands []lifecycle.Command, ev models.Evidence) (map[lifecycle.Command][]Entry, error) {
	defs, err := s.ListDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	instances, err := s.instances.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list task instances")
	}
	byDefinition := make(map[string]*models.Instance, len(instances))
	for _, inst := range instances {
		byDefinition[inst.DefinitionID] = inst
	}

	out := make(map[lifecycle.Command][]Entry)
	for _, cmd := range commands {
		for _, def := range defs {
			if !def.Gates(cmd) {
				continue
			}
			inst := byDefinition[def.Identifier]
			if models.Satisfied(def, inst, ev) {
				continue
			}
			out[cmd] = append(out[cmd], Entry{Definition: def, Instance: inst})
		}
	}
	return out, nil
}

// Execute marks the customer's instance of a definition executed by the
// actor in ctx. It never changes customer state.
func (s *Service) Execute(ctx context.Context, customerID, definitionID, comment string, ex models.Execution) (*models.Instance, error) {
	ctx, span := otel.Tracer("customercore/task").Start(ctx, "task.Execute")
	defer span.End()

	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	ex.Actor = actor
	var result *models.Instance
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		def, err := s.GetDefinition(ctx, definitionID)
		if err != nil {
			return err
		}
		if err := models.CheckExecution(def, ex); err != nil {
			return err
		}
		inst, err := s.getOrCreate(ctx, customerID, definitionID)
		if err != nil {
			return err
		}
		inst.MarkExecuted(actor, comment, requestcontext.Now(ctx))
		if err := s.instances.Save(ctx, inst); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record task execution")
		}
		result = inst
		return s.emit(ctx, audit.EventTaskExecuted, customerID, definitionID)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) definitionIndex(ctx context.Context) (map[string]*models.Definition, error) {
	defs, err := s.ListDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*models.Definition, len(defs))
	for _, d := range defs {
		index[d.Identifier] = d
	}
	return index, nil
}

func requireActor(ctx context.Context) (string, error) {
	actor := requestcontext.Actor(ctx)
	if actor == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "actor required")
	}
	return actor, nil
}

func translateFind(err error, identifier string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "task definition not found").WithDetail("task", identifier)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load task definition")
}

func definitionInUse(identifier string) error {
	return dErrors.New(dErrors.CodeConflict, "task definition has recorded instances").
		WithDetail("task", identifier)
}

func asValidation(err error) error {
	if de, ok := dErrors.As(err); ok && de.Code == dErrors.CodeInvariantViolation {
		cp := *de
		cp.Code = dErrors.CodeValidation
		return &cp
	}
	return err
}

// emit logs and publishes an audit event. subject is the customer for
// executions and the definition otherwise; resource narrows it.
func (s *Service) emit(ctx context.Context, event audit.AuditEvent, subject, resource string) error {
	actor := requestcontext.Actor(ctx)
	requestID := requestcontext.RequestID(ctx)
	if s.logger != nil {
		args := []any{
			"subject", subject,
			"actor", actor,
			"event", string(event),
			"log_type", "audit",
		}
		if resource != "" {
			args = append(args, "task", resource)
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
		Subject:   subject,
		Action:    string(event),
		Resource:  resource,
		RequestID: requestID,
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}
