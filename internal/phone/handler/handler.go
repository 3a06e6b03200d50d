// Package handler wires the phone inventory HTTP surface. Handlers are thin:
// they decode requests, delegate to the service, and translate coded domain
// errors into JSON responses.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"phoneinventory/internal/phone/models"
	"phoneinventory/internal/phone/service"
	"phoneinventory/internal/platform/middleware"
	dErrors "phoneinventory/pkg/domain-errors"
)

// Service defines the record operations the handler needs.
type Service interface {
	Create(ctx context.Context, in service.CreateInput) (*models.Phone, error)
	List(ctx context.Context) ([]*models.Phone, error)
	Get(ctx context.Context, serialNumber string) (*models.Phone, error)
	Update(ctx context.Context, serialNumber string, changes []service.FieldChange) (*models.Phone, error)
	Delete(ctx context.Context, serialNumber string) error
	FilterByField(ctx context.Context, fieldName, rawValue string) ([]*models.Phone, error)
}

// Handler handles the phone record endpoints.
type Handler struct {
	logger *slog.Logger
	phones Service
}

// New creates a phone Handler.
func New(phones Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, phones: phones}
}

// Register mounts the phone routes and their middleware on the router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))

	router.Get("/", h.handleIndex)
	router.Post("/add_phone", h.handleCreate)
	router.Get("/phones", h.handleList)
	router.Get("/phone/", h.handleList)
	router.Get("/phone/{serialNumber}", h.handleGet)
	router.Put("/update_phone/{serialNumber}", h.handleUpdate)
	router.Delete("/delete_phone/{serialNumber}", h.handleDelete)
	router.Get("/phones/{field}/{value}", h.handleFilter)

	r.Mount("/", router)
}

func (h *Handler) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Welcome to the Phone API!"))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := decodeCreateRequest(r)
	if err != nil {
		h.warn(ctx, "invalid create phone request", err)
		writeError(w, err)
		return
	}

	phone, err := h.phones.Create(ctx, in)
	if err != nil {
		h.replyError(ctx, w, "failed to create phone", err)
		return
	}

	writeJSON(w, http.StatusCreated, phone)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	phones, err := h.phones.List(ctx)
	if err != nil {
		h.replyError(ctx, w, "failed to list phones", err)
		return
	}
	writeJSON(w, http.StatusOK, phoneList(phones))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	phone, err := h.phones.Get(ctx, chi.URLParam(r, "serialNumber"))
	if err != nil {
		h.replyError(ctx, w, "failed to fetch phone", err)
		return
	}
	writeJSON(w, http.StatusOK, phone)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	changes, err := decodeUpdateRequest(r)
	if err != nil {
		h.warn(ctx, "invalid update phone request", err)
		writeError(w, err)
		return
	}

	phone, err := h.phones.Update(ctx, chi.URLParam(r, "serialNumber"), changes)
	if err != nil {
		h.replyError(ctx, w, "failed to update phone", err)
		return
	}

	writeJSON(w, http.StatusOK, phone)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.phones.Delete(ctx, chi.URLParam(r, "serialNumber")); err != nil {
		h.replyError(ctx, w, "failed to delete phone", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "phone deleted successfully"})
}

func (h *Handler) handleFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	phones, err := h.phones.FilterByField(ctx, chi.URLParam(r, "field"), chi.URLParam(r, "value"))
	if err != nil {
		h.replyError(ctx, w, "failed to filter phones", err)
		return
	}
	writeJSON(w, http.StatusOK, phoneList(phones))
}

// replyError logs the failure at the right level and writes the translated
// response. Client faults are Warn, unexpected failures Error.
func (h *Handler) replyError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) || !isDomainError(err) {
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	} else {
		h.warn(ctx, msg, err)
	}
	writeError(w, err)
}

func (h *Handler) warn(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
}

// phoneList never serializes as null; an empty inventory is an empty array.
func phoneList(phones []*models.Phone) []*models.Phone {
	if phones == nil {
		return []*models.Phone{}
	}
	return phones
}
