// Package service owns customer records and runs the lifecycle engine:
// commands are checked against the transition table, then against the
// mandatory tasks gating them, and applied atomically with their audit row.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"customercore/internal/customer/metrics"
	"customercore/internal/customer/models"
	"customercore/internal/lifecycle"
	schemaservice "customercore/internal/schema/service"
	"customercore/internal/schema/validator"
	taskmodels "customercore/internal/task/models"
	taskservice "customercore/internal/task/service"
	dErrors "customercore/pkg/domain-errors"
	"customercore/pkg/platform/audit"
	"customercore/pkg/platform/sentinel"
	txcontext "customercore/pkg/platform/tx"
	"customercore/pkg/requestcontext"
)

// Store persists customers together with their custom values.
type Store interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, identifier string) (*models.Customer, error)
	// FindByIDForUpdate locks the customer until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, identifier string) (*models.Customer, error)
	// List returns customers in the given state, or all when state is empty.
	List(ctx context.Context, state lifecycle.State) ([]*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	ReplaceValues(ctx context.Context, customer *models.Customer) error
}

type CommandStore interface {
	Append(ctx context.Context, record *models.CommandRecord) error
	ListByCustomer(ctx context.Context, customerID string) ([]*models.CommandRecord, error)
}

type IdentificationStore interface {
	Add(ctx context.Context, card *models.IdentificationCard) error
	ListByCustomer(ctx context.Context, customerID string) ([]*models.IdentificationCard, error)
	Delete(ctx context.Context, customerID string, id uuid.UUID) error
	HasAny(ctx context.Context, customerID string) (bool, error)
}

type ValueValidator interface {
	Validate(ctx context.Context, subs []validator.Submission) ([]validator.Typed, error)
}

// TaskLedger is the slice of the task service the lifecycle engine drives.
type TaskLedger interface {
	FindUnsatisfied(ctx context.Context, customerID string, cmd lifecycle.Command, ev taskmodels.Evidence) ([]string, error)
	ProvisionMandatory(ctx context.Context, customerID string) ([]taskservice.Entry, error)
	Outstanding(ctx context.Context, customerID string, commands []lifecycle.Command, ev taskmodels.Evidence) (map[lifecycle.Command][]taskservice.Entry, error)
	Execute(ctx context.Context, customerID, definitionID, comment string, ex taskmodels.Execution) (*taskmodels.Instance, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	store          Store
	commands       CommandStore
	cards          IdentificationStore
	values         ValueValidator
	tasks          TaskLedger
	tx             txcontext.Runner
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
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

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, commands CommandStore, cards IdentificationStore, values ValueValidator,
	tasks TaskLedger, tx txcontext.Runner, opts ...Option) *Service {
	s := &Service{
		store:    store,
		commands: commands,
		cards:    cards,
		values:   values,
		tasks:    tasks,
		tx:       tx,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LockKey is the in-memory lock key serializing work on one customer.
func LockKey(customerID string) string {
	return "customer:" + customerID
}

type CreateCommand struct {
	Identifier string
	Type       models.Type
	Profile    models.Profile
	Values     []models.Value
}

// Create validates the custom values against the schema and persists the
// customer in PENDING. Any invalid value rejects the whole creation.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*models.Customer, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	customer, err := models.NewCustomer(strings.TrimSpace(cmd.Identifier), cmd.Type, cmd.Profile, actor, now)
	if err != nil {
		return nil, asValidation(err)
	}
	customer.ReplaceValues(cmd.Values, actor, now)

	ctx = txcontext.WithLockKeys(ctx, lockKeys(customer.Identifier, cmd.Values)...)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.validateValues(ctx, cmd.Values); err != nil {
			return err
		}
		if err := s.store.Create(ctx, customer); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "customer identifier already exists").
					WithDetail("customer", customer.Identifier)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create customer")
		}
		if err := s.emit(ctx, audit.EventCustomerCreated, customer.Identifier, string(customer.Type), ""); err != nil {
			return err
		}
		if len(cmd.Values) == 0 {
			return nil
		}
		return s.emit(ctx, audit.EventCustomValuesSubmitted, customer.Identifier, "", "")
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) Get(ctx context.Context, identifier string) (*models.Customer, error) {
	customer, err := s.store.FindByID(ctx, identifier)
	if err != nil {
		return nil, translateFind(err, identifier)
	}
	return customer, nil
}

// List returns customers, optionally restricted to one state.
func (s *Service) List(ctx context.Context, state lifecycle.State) ([]*models.Customer, error) {
	if state != "" && !state.IsValid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown state").WithDetail("state", string(state))
	}
	customers, err := s.store.List(ctx, state)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list customers")
	}
	return customers, nil
}

// UpdateProfile replaces names, birth date, address and contact details.
func (s *Service) UpdateProfile(ctx context.Context, identifier string, profile models.Profile) (*models.Customer, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, identifier, nil, func(ctx context.Context, customer *models.Customer) error {
		if err := customer.UpdateProfile(profile, actor, requestcontext.Now(ctx)); err != nil {
			return asValidation(err)
		}
		if err := s.store.Update(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update customer")
		}
		return s.emit(ctx, audit.EventCustomerUpdated, identifier, "", "")
	})
}

// ReplaceValues swaps the customer's full custom value set, all or nothing.
func (s *Service) ReplaceValues(ctx context.Context, identifier string, values []models.Value) (*models.Customer, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, identifier, values, func(ctx context.Context, customer *models.Customer) error {
		if err := s.validateValues(ctx, values); err != nil {
			return err
		}
		customer.ReplaceValues(values, actor, requestcontext.Now(ctx))
		if err := s.store.ReplaceValues(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store custom values")
		}
		return s.emit(ctx, audit.EventCustomValuesSubmitted, identifier, "", "")
	})
}

// mutate runs fn against the locked customer inside one transaction.
func (s *Service) mutate(ctx context.Context, identifier string, values []models.Value,
	fn func(ctx context.Context, customer *models.Customer) error) (*models.Customer, error) {
	var result *models.Customer
	ctx = txcontext.WithLockKeys(ctx, lockKeys(identifier, values)...)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		customer, err := s.store.FindByIDForUpdate(ctx, identifier)
		if err != nil {
			return translateFind(err, identifier)
		}
		if err := fn(ctx, customer); err != nil {
			return err
		}
		result = customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) validateValues(ctx context.Context, values []models.Value) error {
	if len(values) == 0 {
		return nil
	}
	subs := make([]validator.Submission, len(values))
	for i, v := range values {
		subs[i] = validator.Submission{Catalog: v.Catalog, Field: v.Field, Value: v.Value}
	}
	if _, err := s.values.Validate(ctx, subs); err != nil {
		if s.metrics != nil && dErrors.HasCode(err, dErrors.CodeValidation) {
			reason, _ := dErrors.DetailOf(err, "reason")
			s.metrics.IncrementValueRejected(fmt.Sprint(reason))
		}
		return err
	}
	return nil
}

// ApplyCommand runs a lifecycle command. The command must be legal from the
// current state, and for gateable commands every enforced task gating it must
// be satisfied. A blocked command changes no state and appends no command
// record; the task instances provisioned by the check are kept.
func (s *Service) ApplyCommand(ctx context.Context, identifier string, cmd lifecycle.Command, comment string) (*models.Customer, error) {
	start := time.Now()
	ctx, span := otel.Tracer("customercore/customer").Start(ctx, "customer.ApplyCommand")
	defer span.End()
	span.SetAttributes(attribute.String("customer", identifier), attribute.String("command", string(cmd)))

	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	var (
		result  *models.Customer
		blocked []string
	)
	ctx = txcontext.WithLockKeys(ctx, LockKey(identifier))
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		customer, err := s.store.FindByIDForUpdate(ctx, identifier)
		if err != nil {
			return translateFind(err, identifier)
		}
		if _, err := lifecycle.Next(customer.State, cmd); err != nil {
			if s.metrics != nil {
				s.metrics.IncrementInvalid(string(cmd), string(customer.State))
			}
			return err
		}

		if cmd.Gateable() {
			hasCard, err := s.cards.HasAny(ctx, identifier)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check identification cards")
			}
			missing, err := s.tasks.FindUnsatisfied(ctx, identifier, cmd, taskmodels.Evidence{
				CommandActor:          actor,
				HasIdentificationCard: hasCard,
			})
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				blocked = missing
				// Commit the provisioned instances and the blocked event only.
				return s.emit(ctx, audit.EventCustomerTransitionBlocked, identifier, string(cmd),
					strings.Join(missing, ","))
			}
		}

		now := requestcontext.Now(ctx)
		from, err := customer.Apply(cmd, actor, now)
		if err != nil {
			return err
		}
		if err := s.store.Update(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update customer state")
		}
		if err := s.commands.Append(ctx, &models.CommandRecord{
			ID:         uuid.New(),
			CustomerID: identifier,
			Action:     cmd,
			From:       from,
			To:         customer.State,
			Comment:    comment,
			Actor:      actor,
			CreatedAt:  now,
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record command")
		}
		result = customer
		return s.emit(ctx, audit.EventCustomerTransitioned, identifier, string(cmd), comment)
	})
	if s.metrics != nil {
		s.metrics.ObserveTransition(start)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "command failed")
		return nil, err
	}
	if blocked != nil {
		if s.metrics != nil {
			s.metrics.IncrementBlocked(string(cmd))
		}
		span.SetStatus(codes.Error, "transition blocked")
		return nil, dErrors.New(dErrors.CodeTransitionBlocked, "mandatory tasks are not satisfied").
			WithDetail("customer", identifier).
			WithDetail("command", string(cmd)).
			WithDetail("tasks", blocked)
	}
	if s.metrics != nil {
		s.metrics.IncrementTransition(string(cmd), string(result.State))
	}
	return result, nil
}

func (s *Service) ListCommands(ctx context.Context, identifier string) ([]*models.CommandRecord, error) {
	if _, err := s.Get(ctx, identifier); err != nil {
		return nil, err
	}
	records, err := s.commands.ListByCustomer(ctx, identifier)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list commands")
	}
	return records, nil
}

type IdentificationInput struct {
	Kind      string
	Number    string
	IssuedBy  string
	ExpiresOn *time.Time
}

func (s *Service) AddIdentification(ctx context.Context, identifier string, in IdentificationInput) (*models.IdentificationCard, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	card, err := models.NewIdentificationCard(identifier, in.Kind, in.Number, in.IssuedBy, in.ExpiresOn, actor, requestcontext.Now(ctx))
	if err != nil {
		return nil, asValidation(err)
	}
	_, err = s.mutate(ctx, identifier, nil, func(ctx context.Context, _ *models.Customer) error {
		if err := s.cards.Add(ctx, card); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "identification card already on file").
					WithDetail("customer", identifier).
					WithDetail("kind", card.Kind)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to add identification card")
		}
		return s.emit(ctx, audit.EventIdentificationAdded, identifier, card.Kind, "")
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *Service) ListIdentifications(ctx context.Context, identifier string) ([]*models.IdentificationCard, error) {
	if _, err := s.Get(ctx, identifier); err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByCustomer(ctx, identifier)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list identification cards")
	}
	return cards, nil
}

func (s *Service) RemoveIdentification(ctx context.Context, identifier string, cardID uuid.UUID) error {
	if _, err := requireActor(ctx); err != nil {
		return err
	}
	_, err := s.mutate(ctx, identifier, nil, func(ctx context.Context, _ *models.Customer) error {
		if err := s.cards.Delete(ctx, identifier, cardID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "identification card not found").
					WithDetail("customer", identifier).
					WithDetail("card", cardID.String())
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove identification card")
		}
		return s.emit(ctx, audit.EventIdentificationRemoved, identifier, cardID.String(), "")
	})
	return err
}

// ListTasks provisions the customer's mandatory task instances and returns
// every recorded instance.
func (s *Service) ListTasks(ctx context.Context, identifier string) ([]taskservice.Entry, error) {
	var entries []taskservice.Entry
	_, err := s.mutate(ctx, identifier, nil, func(ctx context.Context, _ *models.Customer) error {
		var err error
		entries, err = s.tasks.ProvisionMandatory(ctx, identifier)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ExecuteTask marks a task executed for the customer. It never transitions
// the customer.
func (s *Service) ExecuteTask(ctx context.Context, identifier, taskID, comment string) (*taskmodels.Instance, error) {
	var inst *taskmodels.Instance
	_, err := s.mutate(ctx, identifier, nil, func(ctx context.Context, customer *models.Customer) error {
		hasCard, err := s.cards.HasAny(ctx, identifier)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check identification cards")
		}
		inst, err = s.tasks.Execute(ctx, identifier, taskID, comment, taskmodels.Execution{
			Requester:             customer.CreatedBy,
			HasIdentificationCard: hasCard,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// ProcessSteps lists, for each command reachable from the current state, the
// tasks still outstanding for it as seen by the actor in ctx. Nothing is
// provisioned.
func (s *Service) ProcessSteps(ctx context.Context, identifier string) ([]models.ProcessStep, error) {
	customer, err := s.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	hasCard, err := s.cards.HasAny(ctx, identifier)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check identification cards")
	}
	commands := lifecycle.Commands(customer.State)
	outstanding, err := s.tasks.Outstanding(ctx, identifier, commands, taskmodels.Evidence{
		CommandActor:          requestcontext.Actor(ctx),
		HasIdentificationCard: hasCard,
	})
	if err != nil {
		return nil, err
	}

	steps := make([]models.ProcessStep, 0, len(outstanding))
	for _, cmd := range commands {
		entries, ok := outstanding[cmd]
		if !ok {
			continue
		}
		step := models.ProcessStep{Command: cmd}
		for _, e := range entries {
			task := models.StepTask{
				Definition: e.Definition.Identifier,
				Name:       e.Definition.Name,
				Type:       string(e.Definition.Type),
				Blocking:   e.Definition.Enforced(),
			}
			if e.Instance != nil {
				id := e.Instance.ID
				task.InstanceID = &id
			}
			step.Tasks = append(step.Tasks, task)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// lockKeys covers the customer and every catalog its values reference, so
// value submission serializes with schema edits of those catalogs.
func lockKeys(customerID string, values []models.Value) []string {
	keys := []string{LockKey(customerID)}
	for _, v := range values {
		key := schemaservice.LockKey(v.Catalog)
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	return keys
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
		return dErrors.New(dErrors.CodeNotFound, "customer not found").WithDetail("customer", identifier)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load customer")
}

func asValidation(err error) error {
	if de, ok := dErrors.As(err); ok && de.Code == dErrors.CodeInvariantViolation {
		cp := *de
		cp.Code = dErrors.CodeValidation
		return &cp
	}
	return err
}

func (s *Service) emit(ctx context.Context, event audit.AuditEvent, customerID, resource, reason string) error {
	actor := requestcontext.Actor(ctx)
	requestID := requestcontext.RequestID(ctx)
	args := []any{
		"customer", customerID,
		"actor", actor,
		"event", string(event),
		"log_type", "audit",
	}
	if resource != "" {
		args = append(args, "resource", resource)
	}
	if reason != "" {
		args = append(args, "reason", reason)
	}
	if requestID != "" {
		args = append(args, "request_id", requestID)
	}
	s.logger.InfoContext(ctx, string(event), args...)

	if s.auditPublisher == nil {
		return nil
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Category:  event.Category(),
		Timestamp: requestcontext.Now(ctx),
		ActorID:   actor,
		Subject:   customerID,
		Action:    string(event),
		Resource:  resource,
		Reason:    reason,
		RequestID: requestID,
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}
