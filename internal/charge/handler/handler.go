package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"maintain/internal/charge/service"
	dErrors "maintain/pkg/domain-errors"
	"maintain/pkg/platform/httputil"
	"maintain/pkg/requestcontext"
)

const maxBodyBytes = 1 << 20

// Service defines the charge relay operations.
type Service interface {
	Submit(ctx context.Context, charge service.Charge) (*service.Result, error)
	Update(ctx context.Context, id string, charge service.Charge) (*service.Result, error)
}

// Handler serves the land charge relay endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new charge Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register registers the charge routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1.0/maintain/local-land-charge", h.handleSubmit)
	r.Put("/v1.0/maintain/local-land-charge/{id}", h.handleUpdate)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	charge, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, "add charge - invalid body", err)
		return
	}
	res, err := h.service.Submit(ctx, charge)
	if err != nil {
		h.fail(w, r, "failed to add charge", err)
		return
	}
	httputil.WriteRaw(w, res.Status, res.Body)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	charge, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, "update charge - invalid body", err)
		return
	}
	res, err := h.service.Update(ctx, id, charge)
	if err != nil {
		h.fail(w, r, "failed to update charge", err)
		return
	}
	h.logger.InfoContext(ctx, "returning update response for charge",
		"request_id", requestcontext.RequestID(ctx),
		"charge", id,
		"status", res.Status,
	)
	httputil.WriteRaw(w, res.Status, res.Body)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (service.Charge, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "Request body could not be read")
	}
	return service.DecodeCharge(body)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	if dErrors.HasCode(err, dErrors.CodeBadRequest) {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	} else {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
