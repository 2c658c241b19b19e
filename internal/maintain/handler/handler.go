package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"maintain/internal/maintain/models"
	"maintain/internal/maintain/schema"
	dErrors "maintain/pkg/domain-errors"
	"maintain/pkg/platform/httputil"
	"maintain/pkg/requestcontext"
)

const maxBodyBytes = 1 << 20

//go:generate mockgen -source=handler.go -destination=mocks/maintain-mocks.go -package=mocks

// CategoryService defines the category tree operations.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]models.CategorySummary, error)
	GetCategory(ctx context.Context, name string) (*models.CategoryDetail, error)
	GetSubCategory(ctx context.Context, parentName, name string) (*models.CategoryDetail, error)
	CreateCategory(ctx context.Context, in models.CategoryInput) error
	CreateSubCategory(ctx context.Context, parentName string, in models.CategoryInput) error
	UpdateCategory(ctx context.Context, name string, in models.CategoryInput) error
	UpdateSubCategory(ctx context.Context, parentName, name string, in models.CategoryInput) error
	DeleteCategory(ctx context.Context, name string) error
	DeleteSubCategory(ctx context.Context, parentName, name string) error
}

// ReferenceService defines the instrument and statutory provision operations.
type ReferenceService interface {
	ListInstruments(ctx context.Context) ([]string, error)
	CreateInstrument(ctx context.Context, in models.InstrumentInput) error
	UpdateInstrument(ctx context.Context, name string, in models.InstrumentInput) error
	DeleteInstrument(ctx context.Context, name string) error
	ListProvisions(ctx context.Context, selectable *bool) ([]string, error)
	CreateProvision(ctx context.Context, in models.ProvisionInput) error
	UpdateProvision(ctx context.Context, title string, in models.ProvisionInput) error
	DeleteProvision(ctx context.Context, title string) error
}

// Handler serves the category, instrument and statutory provision endpoints.
type Handler struct {
	categories CategoryService
	references ReferenceService
	validator  *schema.Validator
	logger     *slog.Logger
}

// New creates a new maintain Handler.
func New(categories CategoryService, references ReferenceService, validator *schema.Validator, logger *slog.Logger) *Handler {
	return &Handler{
		categories: categories,
		references: references,
		validator:  validator,
		logger:     logger,
	}
}

// Register registers the maintain routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1.0/maintain", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.handleListCategories)
			r.Post("/", h.handleCreateCategory)
			r.Get("/{category}", h.handleGetCategory)
			r.Put("/{category}", h.handleUpdateCategory)
			r.Delete("/{category}", h.handleDeleteCategory)
			r.Post("/{category}/sub-categories", h.handleCreateSubCategory)
			// Sub-category names may contain '/'.
			r.Get("/{category}/sub-categories/*", h.handleGetSubCategory)
			r.Put("/{category}/sub-categories/*", h.handleUpdateSubCategory)
			r.Delete("/{category}/sub-categories/*", h.handleDeleteSubCategory)
		})
		r.Route("/instruments", func(r chi.Router) {
			r.Get("/", h.handleListInstruments)
			r.Post("/", h.handleCreateInstrument)
			r.Put("/{name}", h.handleUpdateInstrument)
			r.Delete("/{name}", h.handleDeleteInstrument)
		})
		r.Route("/statutory-provisions", func(r chi.Router) {
			r.Get("/", h.handleListProvisions)
			r.Post("/", h.handleCreateProvision)
			r.Put("/{title}", h.handleUpdateProvision)
			r.Delete("/{title}", h.handleDeleteProvision)
		})
	})
}

// pathParam returns the decoded URL parameter. chi matches on the raw path
// when the request carries escaped slashes, so those values need unescaping.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, kind schema.Kind, out any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Request body could not be read")
	}
	return h.validator.Decode(kind, body, out)
}

// fail logs err at a level matching its kind and writes the error envelope.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	if dErrors.HasCode(err, dErrors.CodeInternal) || !isDomainError(err) {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestID,
			"error", err,
		)
	} else {
		h.logger.InfoContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}

func isDomainError(err error) bool {
	_, ok := dErrors.As(err)
	return ok
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, "failed to list categories", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	detail, err := h.categories.GetCategory(r.Context(), pathParam(r, "category"))
	if err != nil {
		h.fail(w, r, "failed to get category", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if err := h.decode(w, r, schema.Category, &in); err != nil {
		h.fail(w, r, "create category - payload failed validation", err)
		return
	}
	if err := h.categories.CreateCategory(r.Context(), in); err != nil {
		h.fail(w, r, "failed to create category", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if err := h.decode(w, r, schema.Category, &in); err != nil {
		h.fail(w, r, "update category - payload failed validation", err)
		return
	}
	if err := h.categories.UpdateCategory(r.Context(), pathParam(r, "category"), in); err != nil {
		h.fail(w, r, "failed to update category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.DeleteCategory(r.Context(), pathParam(r, "category")); err != nil {
		h.fail(w, r, "failed to delete category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateSubCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if err := h.decode(w, r, schema.Category, &in); err != nil {
		h.fail(w, r, "create sub-category - payload failed validation", err)
		return
	}
	if err := h.categories.CreateSubCategory(r.Context(), pathParam(r, "category"), in); err != nil {
		h.fail(w, r, "failed to create sub-category", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleGetSubCategory(w http.ResponseWriter, r *http.Request) {
	detail, err := h.categories.GetSubCategory(r.Context(), pathParam(r, "category"), pathParam(r, "*"))
	if err != nil {
		h.fail(w, r, "failed to get sub-category", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) handleUpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if err := h.decode(w, r, schema.Category, &in); err != nil {
		h.fail(w, r, "update sub-category - payload failed validation", err)
		return
	}
	err := h.categories.UpdateSubCategory(r.Context(), pathParam(r, "category"), pathParam(r, "*"), in)
	if err != nil {
		h.fail(w, r, "failed to update sub-category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.DeleteSubCategory(r.Context(), pathParam(r, "category"), pathParam(r, "*")); err != nil {
		h.fail(w, r, "failed to delete sub-category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListInstruments(w http.ResponseWriter, r *http.Request) {
	names, err := h.references.ListInstruments(r.Context())
	if err != nil {
		h.fail(w, r, "failed to list instruments", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, names)
}

func (h *Handler) handleCreateInstrument(w http.ResponseWriter, r *http.Request) {
	var in models.InstrumentInput
	if err := h.decode(w, r, schema.Instrument, &in); err != nil {
		h.fail(w, r, "add instrument - payload failed validation", err)
		return
	}
	if err := h.references.CreateInstrument(r.Context(), in); err != nil {
		h.fail(w, r, "failed to add instrument", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleUpdateInstrument(w http.ResponseWriter, r *http.Request) {
	var in models.InstrumentInput
	if err := h.decode(w, r, schema.Instrument, &in); err != nil {
		h.fail(w, r, "update instrument - payload failed validation", err)
		return
	}
	if err := h.references.UpdateInstrument(r.Context(), pathParam(r, "name"), in); err != nil {
		h.fail(w, r, "failed to update instrument", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteInstrument(w http.ResponseWriter, r *http.Request) {
	if err := h.references.DeleteInstrument(r.Context(), pathParam(r, "name")); err != nil {
		h.fail(w, r, "failed to delete instrument", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListProvisions(w http.ResponseWriter, r *http.Request) {
	var selectable *bool
	if raw, ok := r.URL.Query()["selectable"]; ok && len(raw) > 0 {
		v, err := strconv.ParseBool(raw[0])
		if err != nil {
			h.fail(w, r, "invalid selectable filter",
				dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("Invalid value for selectable: '%s'", raw[0])))
			return
		}
		selectable = &v
	}
	titles, err := h.references.ListProvisions(r.Context(), selectable)
	if err != nil {
		h.fail(w, r, "failed to list statutory provisions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, titles)
}

func (h *Handler) handleCreateProvision(w http.ResponseWriter, r *http.Request) {
	var in models.ProvisionInput
	if err := h.decode(w, r, schema.StatutoryProvision, &in); err != nil {
		h.fail(w, r, "add statutory provision - payload failed validation", err)
		return
	}
	if err := h.references.CreateProvision(r.Context(), in); err != nil {
		h.fail(w, r, "failed to add statutory provision", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleUpdateProvision(w http.ResponseWriter, r *http.Request) {
	var in models.ProvisionInput
	if err := h.decode(w, r, schema.StatutoryProvision, &in); err != nil {
		h.fail(w, r, "update statutory provision - payload failed validation", err)
		return
	}
	if err := h.references.UpdateProvision(r.Context(), pathParam(r, "title"), in); err != nil {
		h.fail(w, r, "failed to update statutory provision", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteProvision(w http.ResponseWriter, r *http.Request) {
	if err := h.references.DeleteProvision(r.Context(), pathParam(r, "title")); err != nil {
		h.fail(w, r, "failed to delete statutory provision", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
