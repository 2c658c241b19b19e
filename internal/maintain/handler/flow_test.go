package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"maintain/internal/maintain/handler"
	"maintain/internal/maintain/models"
	"maintain/internal/maintain/schema"
	"maintain/internal/maintain/service"
	"maintain/internal/maintain/store"
	"maintain/pkg/testutil"
)

const base = "/v1.0/maintain"

func newStack(t *testing.T) http.Handler {
	t.Helper()
	st := store.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.New(
		service.NewCategoryService(st, service.WithLogger(logger)),
		service.NewReferenceService(st, service.WithLogger(logger)),
		schema.MustNew(),
		logger,
	)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func category(name string, provisions, instruments []string) models.CategoryInput {
	if provisions == nil {
		provisions = []string{}
	}
	if instruments == nil {
		instruments = []string{}
	}
	return models.CategoryInput{
		Name:         name,
		DisplayName:  name + " display",
		DisplayOrder: 1,
		Provisions:   provisions,
		Instruments:  instruments,
	}
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, method, path, body)
	req = testutil.WithSubject(req, "caseworker")
	return testutil.DoRequest(h, req)
}

func seedReferences(t *testing.T, h http.Handler) {
	t.Helper()
	for _, title := range []string{"Town Act", "Highways Act"} {
		rr := do(t, h, http.MethodPost, base+"/statutory-provisions", models.ProvisionInput{Title: title, Selectable: true})
		testutil.AssertStatus(t, rr, http.StatusCreated)
	}
	rr := do(t, h, http.MethodPost, base+"/instruments", models.InstrumentInput{Name: "Deed"})
	testutil.AssertStatus(t, rr, http.StatusCreated)
}

func TestCategoryLifecycleOverHTTP(t *testing.T) {
	testutil.Given(t, "seeded provisions and instruments", func(t *testing.T) {
		h := newStack(t)
		seedReferences(t, h)

		testutil.When(t, "a category is created", func(t *testing.T) {
			rr := do(t, h, http.MethodPost, base+"/categories", category("Planning", []string{"town act"}, []string{"Deed"}))
			testutil.AssertStatus(t, rr, http.StatusCreated)
			assert.Empty(t, rr.Body.String())

			testutil.Then(t, "it reads back with stored names", func(t *testing.T) {
				rr := do(t, h, http.MethodGet, base+"/categories/planning", nil)
				testutil.AssertStatus(t, rr, http.StatusOK)
				detail := testutil.UnmarshalResponse[models.CategoryDetail](t, rr)
				assert.Equal(t, "Planning", detail.Name)
				assert.Equal(t, "Planning display", detail.DisplayName)
				assert.Equal(t, []string{"Town Act"}, detail.StatutoryProvisions)
				assert.Equal(t, []string{"Deed"}, detail.Instruments)
				assert.Empty(t, detail.SubCategories)
			})

			testutil.And(t, "a case variant of the name conflicts", func(t *testing.T) {
				rr := do(t, h, http.MethodPost, base+"/categories", category("PLANNING", nil, nil))
				testutil.AssertStatus(t, rr, http.StatusConflict)
			})
		})

		testutil.When(t, "a sub-category names a missing parent", func(t *testing.T) {
			rr := do(t, h, http.MethodPost, base+"/categories/Nowhere/sub-categories", category("Orphan", nil, nil))

			testutil.Then(t, "it is not found and nothing persists", func(t *testing.T) {
				testutil.AssertErrorMessage(t, rr, http.StatusNotFound, "Parent 'Nowhere' does not exist.")
				rr = do(t, h, http.MethodGet, base+"/categories/Orphan", nil)
				testutil.AssertStatus(t, rr, http.StatusNotFound)
			})
		})

		testutil.When(t, "an update replaces the mappings", func(t *testing.T) {
			rr := do(t, h, http.MethodPut, base+"/categories/Planning", category("Planning", []string{"Highways Act"}, nil))
			testutil.AssertStatus(t, rr, http.StatusNoContent)

			testutil.Then(t, "only the new mappings remain", func(t *testing.T) {
				detail := testutil.UnmarshalResponse[models.CategoryDetail](t, do(t, h, http.MethodGet, base+"/categories/Planning", nil))
				assert.Equal(t, []string{"Highways Act"}, detail.StatutoryProvisions)
				assert.Empty(t, detail.Instruments)
			})
		})

		testutil.When(t, "an update names an unknown instrument", func(t *testing.T) {
			rr := do(t, h, http.MethodPut, base+"/categories/Planning", category("Renamed", []string{"Town Act"}, []string{"Missing"}))

			testutil.Then(t, "nothing changes", func(t *testing.T) {
				testutil.AssertErrorMessage(t, rr, http.StatusNotFound, "Instrument 'Missing' does not exist.")
				detail := testutil.UnmarshalResponse[models.CategoryDetail](t, do(t, h, http.MethodGet, base+"/categories/Planning", nil))
				assert.Equal(t, []string{"Highways Act"}, detail.StatutoryProvisions)
			})
		})
	})
}

func TestDeleteCascadesOneLevelOverHTTP(t *testing.T) {
	h := newStack(t)
	seedReferences(t, h)

	testutil.AssertStatus(t, do(t, h, http.MethodPost, base+"/categories", category("Planning", []string{"Town Act"}, nil)), http.StatusCreated)
	testutil.AssertStatus(t, do(t, h, http.MethodPost, base+"/categories/Planning/sub-categories", category("Conditions", nil, []string{"Deed"})), http.StatusCreated)

	sub := testutil.UnmarshalResponse[models.CategoryDetail](t, do(t, h, http.MethodGet, base+"/categories/Planning/sub-categories/conditions", nil))
	assert.Equal(t, "Planning", sub.Parent)

	testutil.AssertStatus(t, do(t, h, http.MethodDelete, base+"/categories/Planning", nil), http.StatusNoContent)

	testutil.AssertStatus(t, do(t, h, http.MethodGet, base+"/categories/Planning", nil), http.StatusNotFound)
	testutil.AssertStatus(t, do(t, h, http.MethodGet, base+"/categories/Planning/sub-categories/Conditions", nil), http.StatusNotFound)

	// The references themselves survive.
	testutil.AssertStatus(t, do(t, h, http.MethodDelete, base+"/instruments/Deed", nil), http.StatusNoContent)
}

func TestReferenceListsOverHTTP(t *testing.T) {
	h := newStack(t)

	testutil.AssertErrorMessage(t, do(t, h, http.MethodGet, base+"/instruments", nil), http.StatusNotFound, "No instruments found.")

	seedReferences(t, h)
	testutil.AssertStatus(t, do(t, h, http.MethodPost, base+"/statutory-provisions",
		models.ProvisionInput{Title: "Repealed Act", Selectable: false}), http.StatusCreated)

	all := testutil.UnmarshalResponse[[]string](t, do(t, h, http.MethodGet, base+"/statutory-provisions", nil))
	assert.Equal(t, []string{"Highways Act", "Repealed Act", "Town Act"}, all)

	unselectable := testutil.UnmarshalResponse[[]string](t, do(t, h, http.MethodGet, base+"/statutory-provisions?selectable=false", nil))
	assert.Equal(t, []string{"Repealed Act"}, unselectable)

	testutil.AssertStatus(t, do(t, h, http.MethodPost, base+"/instruments", models.InstrumentInput{Name: "deed"}), http.StatusConflict)
}
