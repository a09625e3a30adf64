package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// route and retain them differently.
type EventCategory string

const (
	// CategoryLifecycle covers customer state changes and the gating around them.
	CategoryLifecycle EventCategory = "lifecycle"

	// CategorySchema covers catalog and field mutations.
	CategorySchema EventCategory = "schema"

	// CategoryOperations covers routine record changes.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// ActorID is the principal that performed the action.
	ActorID string
	// Subject is the primary entity, e.g. a customer identifier or catalog identifier.
	Subject string
	Action  string
	// Resource narrows the subject, e.g. a field or task identifier.
	Resource  string
	Reason    string
	RequestID string
}

type AuditEvent string

const (
	// Customer events
	EventCustomerCreated           AuditEvent = "customer_created"
	EventCustomerUpdated           AuditEvent = "customer_updated"
	EventCustomValuesSubmitted     AuditEvent = "custom_values_submitted"
	EventCustomerTransitioned      AuditEvent = "customer_transitioned"
	EventCustomerTransitionBlocked AuditEvent = "customer_transition_blocked"
	EventIdentificationAdded       AuditEvent = "identification_added"
	EventIdentificationRemoved     AuditEvent = "identification_removed"

	// Task events
	EventTaskExecuted          AuditEvent = "task_executed"
	EventTaskDefinitionCreated AuditEvent = "task_definition_created"
	EventTaskDefinitionUpdated AuditEvent = "task_definition_updated"
	EventTaskDefinitionDeleted AuditEvent = "task_definition_deleted"

	// Schema events
	EventCatalogCreated AuditEvent = "catalog_created"
	EventCatalogDeleted AuditEvent = "catalog_deleted"
	EventFieldAdded     AuditEvent = "field_added"
	EventFieldUpdated   AuditEvent = "field_updated"
	EventFieldDeleted   AuditEvent = "field_deleted"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventCustomerTransitioned:      CategoryLifecycle,
	EventCustomerTransitionBlocked: CategoryLifecycle,
	EventTaskExecuted:              CategoryLifecycle,
	EventTaskDefinitionCreated:     CategoryLifecycle,
	EventTaskDefinitionUpdated:     CategoryLifecycle,
	EventTaskDefinitionDeleted:     CategoryLifecycle,

	EventCatalogCreated: CategorySchema,
	EventCatalogDeleted: CategorySchema,
	EventFieldAdded:     CategorySchema,
	EventFieldUpdated:   CategorySchema,
	EventFieldDeleted:   CategorySchema,

	EventCustomerCreated:       CategoryOperations,
	EventCustomerUpdated:       CategoryOperations,
	EventCustomValuesSubmitted: CategoryOperations,
	EventIdentificationAdded:   CategoryOperations,
	EventIdentificationRemoved: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}
