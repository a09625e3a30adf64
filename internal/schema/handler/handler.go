// Package handler exposes the schema registry over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"customercore/internal/schema/models"
	"customercore/internal/schema/service"
	"customercore/pkg/platform/httputil"
	"customercore/pkg/requestcontext"
)

// Service defines the schema registry operations the handler needs.
type Service interface {
	CreateCatalog(ctx context.Context, cmd service.CreateCatalogCommand) (*models.Catalog, error)
	ListCatalogs(ctx context.Context) ([]*models.Catalog, error)
	GetCatalog(ctx context.Context, identifier string) (*models.Catalog, error)
	DeleteCatalog(ctx context.Context, identifier string) error
	AddField(ctx context.Context, catalogID string, field models.Field) (*models.Catalog, error)
	UpdateField(ctx context.Context, catalogID string, field models.Field) (*models.Catalog, error)
	ReplaceOptions(ctx context.Context, catalogID, fieldID string, options []models.Option) (*models.Catalog, error)
	DeleteField(ctx context.Context, catalogID, fieldID string) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the catalog routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/catalogs", func(r chi.Router) {
		r.Post("/", h.HandleCreateCatalog)
		r.Get("/", h.HandleListCatalogs)
		r.Route("/{catalogID}", func(r chi.Router) {
			r.Get("/", h.HandleGetCatalog)
			r.Delete("/", h.HandleDeleteCatalog)
			r.Post("/fields", h.HandleAddField)
			r.Put("/fields/{fieldID}", h.HandleUpdateField)
			r.Put("/fields/{fieldID}/options", h.HandleReplaceOptions)
			r.Delete("/fields/{fieldID}", h.HandleDeleteField)
		})
	})
}

func (h *Handler) HandleCreateCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateCatalogRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	catalog, err := h.service.CreateCatalog(ctx, service.CreateCatalogCommand{
		Identifier:  req.Identifier,
		Name:        req.Name,
		Description: req.Description,
		Fields:      req.FieldModels(),
	})
	if err != nil {
		h.fail(ctx, w, "failed to create catalog", err, "catalog", req.Identifier)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromCatalog(catalog))
}

func (h *Handler) HandleListCatalogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catalogs, err := h.service.ListCatalogs(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list catalogs", err)
		return
	}
	resp := CatalogListResponse{Catalogs: make([]CatalogResponse, len(catalogs))}
	for i, c := range catalogs {
		resp.Catalogs[i] = FromCatalog(c)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catalogID := chi.URLParam(r, "catalogID")
	catalog, err := h.service.GetCatalog(ctx, catalogID)
	if err != nil {
		h.fail(ctx, w, "failed to get catalog", err, "catalog", catalogID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCatalog(catalog))
}

func (h *Handler) HandleDeleteCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catalogID := chi.URLParam(r, "catalogID")
	if err := h.service.DeleteCatalog(ctx, catalogID); err != nil {
		h.fail(ctx, w, "failed to delete catalog", err, "catalog", catalogID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleAddField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catalogID := chi.URLParam(r, "catalogID")
	req, ok := httputil.DecodeAndPrepare[FieldRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	catalog, err := h.service.AddField(ctx, catalogID, req.ToModel())
	if err != nil {
		h.fail(ctx, w, "failed to add field", err, "catalog", catalogID, "field", req.Identifier)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromCatalog(catalog))
}

// HandleUpdateField replaces a field definition. The path identifier wins
// over the body.
func (h *Handler) HandleUpdateField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catalogID := chi.URLParam(r, "catalogID")
	fieldID := chi.URLParam(r, "fieldID")
	req, ok := httputil.DecodeAndPrepare[FieldRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	field := req.ToModel()
	field.Identifier = fieldID
	catalog, err := h.service.UpdateField(ctx, catalogID, field)
	if err != nil {
		h.fail(ctx, w, "failed to update field", err, "catalog", catalogID, "field", fieldID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCatalog(catalog))
}

func (h *Handler) HandleReplaceOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catalogID := chi.URLParam(r, "catalogID")
	fieldID := chi.URLParam(r, "fieldID")
	req, ok := httputil.DecodeAndPrepare[ReplaceOptionsRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	catalog, err := h.service.ReplaceOptions(ctx, catalogID, fieldID, toOptions(req.Options))
	if err != nil {
		h.fail(ctx, w, "failed to replace options", err, "catalog", catalogID, "field", fieldID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCatalog(catalog))
}

func (h *Handler) HandleDeleteField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catalogID := chi.URLParam(r, "catalogID")
	fieldID := chi.URLParam(r, "fieldID")
	if err := h.service.DeleteField(ctx, catalogID, fieldID); err != nil {
		h.fail(ctx, w, "failed to delete field", err, "catalog", catalogID, "field", fieldID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, attrs ...any) {
	args := append([]any{"error", err, "request_id", requestcontext.RequestID(ctx)}, attrs...)
	h.logger.WarnContext(ctx, msg, args...)
	httputil.WriteError(w, err)
}
