// Package handler exposes the task catalog over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"customercore/internal/lifecycle"
	"customercore/internal/task/models"
	"customercore/internal/task/service"
	dErrors "customercore/pkg/domain-errors"
	"customercore/pkg/platform/httputil"
	"customercore/pkg/requestcontext"
)

type Service interface {
	CreateDefinition(ctx context.Context, cmd service.CreateDefinitionCommand) (*models.Definition, error)
	GetDefinition(ctx context.Context, identifier string) (*models.Definition, error)
	ListDefinitions(ctx context.Context) ([]*models.Definition, error)
	UpdateDefinition(ctx context.Context, identifier string, spec models.DefinitionSpec) (*models.Definition, error)
	DeleteDefinition(ctx context.Context, identifier string) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{taskID}", h.HandleGet)
		r.Put("/{taskID}", h.HandleUpdate)
		r.Delete("/{taskID}", h.HandleDelete)
	})
}

// DefinitionRequest is the body for creating or updating a task definition.
// Identifier and type are ignored on update.
type DefinitionRequest struct {
	Identifier  string   `json:"identifier"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Mandatory   bool     `json:"mandatory"`
	Predefined  bool     `json:"predefined"`
	Commands    []string `json:"commands"`

	commands []lifecycle.Command
}

func (r *DefinitionRequest) Normalize() {
	r.Identifier = strings.TrimSpace(r.Identifier)
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *DefinitionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Commands) > len(lifecycle.GateableCommands()) {
		return dErrors.New(dErrors.CodeValidation, "too many commands")
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	r.commands = make([]lifecycle.Command, 0, len(r.Commands))
	for _, raw := range r.Commands {
		cmd, err := lifecycle.ParseCommand(raw)
		if err != nil {
			return err
		}
		r.commands = append(r.commands, cmd)
	}
	return nil
}

func (r *DefinitionRequest) spec() models.DefinitionSpec {
	return models.DefinitionSpec{
		Name:        r.Name,
		Description: r.Description,
		Mandatory:   r.Mandatory,
		Predefined:  r.Predefined,
		Commands:    r.commands,
	}
}

type DefinitionResponse struct {
	Identifier  string    `json:"identifier"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Mandatory   bool      `json:"mandatory"`
	Predefined  bool      `json:"predefined"`
	Commands    []string  `json:"commands"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedBy  string    `json:"modified_by"`
	ModifiedAt  time.Time `json:"modified_at"`
}

type DefinitionListResponse struct {
	Tasks []DefinitionResponse `json:"tasks"`
}

func FromDefinition(d *models.Definition) DefinitionResponse {
	commands := make([]string, len(d.Commands))
	for i, c := range d.Commands {
		commands[i] = string(c)
	}
	return DefinitionResponse{
		Identifier:  d.Identifier,
		Type:        string(d.Type),
		Name:        d.Name,
		Description: d.Description,
		Mandatory:   d.Mandatory,
		Predefined:  d.Predefined,
		Commands:    commands,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		ModifiedBy:  d.ModifiedBy,
		ModifiedAt:  d.ModifiedAt,
	}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[DefinitionRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	def, err := h.service.CreateDefinition(ctx, service.CreateDefinitionCommand{
		Identifier:     req.Identifier,
		Type:           models.TaskType(req.Type),
		DefinitionSpec: req.spec(),
	})
	if err != nil {
		h.fail(ctx, w, "failed to create task definition", err, req.Identifier)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromDefinition(def))
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defs, err := h.service.ListDefinitions(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list task definitions", err, "")
		return
	}
	resp := DefinitionListResponse{Tasks: make([]DefinitionResponse, len(defs))}
	for i, d := range defs {
		resp.Tasks[i] = FromDefinition(d)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID := chi.URLParam(r, "taskID")
	def, err := h.service.GetDefinition(ctx, taskID)
	if err != nil {
		h.fail(ctx, w, "failed to get task definition", err, taskID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDefinition(def))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID := chi.URLParam(r, "taskID")
	req, ok := httputil.DecodeAndPrepare[DefinitionRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	def, err := h.service.UpdateDefinition(ctx, taskID, req.spec())
	if err != nil {
		h.fail(ctx, w, "failed to update task definition", err, taskID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDefinition(def))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID := chi.URLParam(r, "taskID")
	if err := h.service.DeleteDefinition(ctx, taskID); err != nil {
		h.fail(ctx, w, "failed to delete task definition", err, taskID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, taskID string) {
	h.logger.WarnContext(ctx, msg,
		"error", err,
		"task", taskID,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
