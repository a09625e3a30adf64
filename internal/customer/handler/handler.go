// Package handler exposes customers, their lifecycle commands, identification
// cards and task ledger over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"customercore/internal/customer/models"
	"customercore/internal/customer/service"
	"customercore/internal/lifecycle"
	taskmodels "customercore/internal/task/models"
	taskservice "customercore/internal/task/service"
	dErrors "customercore/pkg/domain-errors"
	"customercore/pkg/platform/httputil"
	"customercore/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, cmd service.CreateCommand) (*models.Customer, error)
	Get(ctx context.Context, identifier string) (*models.Customer, error)
	List(ctx context.Context, state lifecycle.State) ([]*models.Customer, error)
	UpdateProfile(ctx context.Context, identifier string, profile models.Profile) (*models.Customer, error)
	ReplaceValues(ctx context.Context, identifier string, values []models.Value) (*models.Customer, error)
	ApplyCommand(ctx context.Context, identifier string, cmd lifecycle.Command, comment string) (*models.Customer, error)
	ListCommands(ctx context.Context, identifier string) ([]*models.CommandRecord, error)
	AddIdentification(ctx context.Context, identifier string, in service.IdentificationInput) (*models.IdentificationCard, error)
	ListIdentifications(ctx context.Context, identifier string) ([]*models.IdentificationCard, error)
	RemoveIdentification(ctx context.Context, identifier string, cardID uuid.UUID) error
	ListTasks(ctx context.Context, identifier string) ([]taskservice.Entry, error)
	ExecuteTask(ctx context.Context, identifier, taskID, comment string) (*taskmodels.Instance, error)
	ProcessSteps(ctx context.Context, identifier string) ([]models.ProcessStep, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Put("/", h.HandleUpdateProfile)
			r.Put("/values", h.HandleReplaceValues)
			r.Post("/commands", h.HandleCommand)
			r.Get("/commands", h.HandleListCommands)
			r.Post("/identifications", h.HandleAddIdentification)
			r.Get("/identifications", h.HandleListIdentifications)
			r.Delete("/identifications/{cardID}", h.HandleRemoveIdentification)
			r.Get("/tasks", h.HandleListTasks)
			r.Post("/tasks/{taskID}/execute", h.HandleExecuteTask)
			r.Get("/process-steps", h.HandleProcessSteps)
		})
	})
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateCustomerRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	customer, err := h.service.Create(ctx, service.CreateCommand{
		Identifier: req.Identifier,
		Type:       models.Type(req.CustomerType),
		Profile:    req.profile(),
		Values:     toValues(req.Values),
	})
	if err != nil {
		h.fail(ctx, w, "failed to create customer", err, req.Identifier)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromCustomer(customer))
}

// HandleList accepts an optional ?state= filter.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var state lifecycle.State
	if raw := r.URL.Query().Get("state"); raw != "" {
		parsed, err := lifecycle.ParseState(raw)
		if err != nil {
			h.fail(ctx, w, "invalid state filter", err, "")
			return
		}
		state = parsed
	}
	customers, err := h.service.List(ctx, state)
	if err != nil {
		h.fail(ctx, w, "failed to list customers", err, "")
		return
	}
	resp := CustomerListResponse{Customers: make([]CustomerResponse, len(customers))}
	for i, c := range customers {
		resp.Customers[i] = FromCustomer(c)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")
	customer, err := h.service.Get(ctx, customerID)
	if err != nil {
		h.fail(ctx, w, "failed to get customer", err, customerID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCustomer(customer))
}

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")
	req, ok := httputil.DecodeAndPrepare[ProfileRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	customer, err := h.service.UpdateProfile(ctx, customerID, req.profile())
	if err != nil {
		h.fail(ctx, w, "failed to update customer", err, customerID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCustomer(customer))
}

func (h *Handler) HandleReplaceValues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")
	req, ok := httputil.DecodeAndPrepare[ValuesRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	customer, err := h.service.ReplaceValues(ctx, customerID, toValues(req.Values))
	if err != nil {
		h.fail(ctx, w, "failed to replace custom values", err, customerID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCustomer(customer))
}

func (h *Handler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")
	req, ok := httputil.DecodeAndPrepare[CommandRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	customer, err := h.service.ApplyCommand(ctx, customerID, req.command, req.Comment)
	if err != nil {
		h.fail(ctx, w, "lifecycle command rejected", err, customerID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCustomer(customer))
}

func (h *Handler) HandleListCommands(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")
	records, err := h.service.ListCommands(ctx, customerID)
	if err != nil {
		h.fail(ctx, w, "failed to list commands", err, customerID)
		return
	}
	resp := CommandListResponse{Commands: make([]CommandResponse, len(records))}
	for i, rec := range records {
		resp.Commands[i] = FromCommand(rec)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleAddIdentification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")
	req, ok := httputil.DecodeAndPrepare[IdentificationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	card, err := h.service.AddIdentification(ctx, customerID, service.IdentificationInput{
		Kind:      req.Kind,
		Number:    req.Number,
		IssuedBy:  req.IssuedBy,
		ExpiresOn: req.expiresOn,
	})
	if err != nil {
		h.fail(ctx, w, "failed to add identification card", err, customerID)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromIdentification(card))
}

func (h *Handler) HandleListIdentifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")
	cards, err := h.service.ListIdentifications(ctx, customerID)
	if err != nil {
		h.fail(ctx, w, "failed to list identification cards", err, customerID)
		return
	}
	resp := IdentificationListResponse{Identifications: make([]IdentificationResponse, len(cards))}
	for i, c := range cards {
		resp.Identifications[i] = FromIdentification(c)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleRemoveIdentification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")
	cardID, err := uuid.Parse(chi.URLParam(r, "cardID"))
	if err != nil {
		h.fail(ctx, w, "invalid identification card id",
			dErrors.New(dErrors.CodeBadRequest, "invalid identification card id"), customerID)
		return
	}
	if err := h.service.RemoveIdentification(ctx, customerID, cardID); err != nil {
		h.fail(ctx, w, "failed to remove identification card", err, customerID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")
	entries, err := h.service.ListTasks(ctx, customerID)
	if err != nil {
		h.fail(ctx, w, "failed to list tasks", err, customerID)
		return
	}
	resp := TaskListResponse{Tasks: make([]TaskResponse, len(entries))}
	for i, e := range entries {
		resp.Tasks[i] = FromEntry(e)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleExecuteTask accepts an empty body as "no comment".
func (h *Handler) HandleExecuteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")
	taskID := chi.URLParam(r, "taskID")
	var comment string
	if r.ContentLength != 0 {
		req, ok := httputil.DecodeAndPrepare[ExecuteTaskRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
		if !ok {
			return
		}
		comment = req.Comment
	}
	inst, err := h.service.ExecuteTask(ctx, customerID, taskID, comment)
	if err != nil {
		h.fail(ctx, w, "failed to execute task", err, customerID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TaskResponse{
		ID:         inst.ID.String(),
		Definition: inst.DefinitionID,
		Executed:   inst.Executed(),
		Comment:    inst.Comment,
		ExecutedBy: inst.ExecutedBy,
		ExecutedOn: inst.ExecutedOn,
	})
}

func (h *Handler) HandleProcessSteps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")
	steps, err := h.service.ProcessSteps(ctx, customerID)
	if err != nil {
		h.fail(ctx, w, "failed to compute process steps", err, customerID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProcessSteps(steps))
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, customerID string) {
	h.logger.WarnContext(ctx, msg,
		"error", err,
		"customer", customerID,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
