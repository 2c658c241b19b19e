package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintClientAddToRegister(t *testing.T) {
	var gotBody, gotContentType, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"entry_number":1,"local-land-charge":2}`))
	}))
	defer srv.Close()

	c := NewMintClient(srv.URL+"/v1.0/records", srv.Client())
	resp, err := c.AddToRegister(context.Background(), []byte(`{"a":1}`))

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, `{"a":1}`, gotBody)
	assert.Equal(t, http.StatusAccepted, resp.Status)
	assert.JSONEq(t, `{"entry_number":1,"local-land-charge":2}`, string(resp.Body))
}

func TestMintClientReturnsErrorStatusesAsResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	resp, err := NewMintClient(srv.URL, srv.Client()).AddToRegister(context.Background(), []byte(`{}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Contains(t, string(resp.Body), "boom")
}

func TestMintClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewMintClient(url, nil).AddToRegister(context.Background(), []byte(`{}`))

	assert.Error(t, err)
}

func TestMintClientHonoursTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	httpClient := &http.Client{Timeout: 50 * time.Millisecond}
	_, err := NewMintClient(srv.URL, httpClient).AddToRegister(context.Background(), []byte(`{}`))

	assert.Error(t, err)
}

func TestSearchClientGetCharge(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Path == "/search/local_land_charges/LLC-2" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`[{"display_id":"LLC-2"}]`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewSearchClient(srv.URL+"/", srv.Client())

	resp, err := c.GetCharge(context.Background(), "LLC-2")
	require.NoError(t, err)
	assert.Equal(t, "/search/local_land_charges/LLC-2", gotPath)
	assert.Equal(t, http.StatusOK, resp.Status)

	resp, err = c.GetCharge(context.Background(), "LLC-3")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}
