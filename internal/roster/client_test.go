package roster

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "rcsc-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminClient_FetchAll(t *testing.T) {
	rows := []Registration{sampleRow(2, "karim"), sampleRow(1, "rahim")}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/admin/registrations", r.URL.Path)
		assert.Equal(t, "rcsc_session=token-1", r.Header.Get("Cookie"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":       "success",
			"registrations": rows,
		})
	}))
	defer server.Close()

	client := NewAdminClient(server.URL, "rcsc_session=token-1")

	fetched, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, fetched)
}

func TestAdminClient_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/admin/registrations/7", r.URL.Path)

		var update RegistrationUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		require.NotNil(t, update.IsValidated)
		assert.True(t, *update.IsValidated)

		saved := sampleRow(7, "rahim")
		saved.IsValidated = true
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":      "success",
			"registration": saved,
		})
	}))
	defer server.Close()

	client := NewAdminClient(server.URL, "")

	validated := true
	saved, err := client.Update(context.Background(), 7, RegistrationUpdate{IsValidated: &validated})
	require.NoError(t, err)
	assert.True(t, saved.IsValidated)
}

func TestAdminClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/admin/registrations/7", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "success"})
	}))
	defer server.Close()

	assert.NoError(t, NewAdminClient(server.URL, "").Delete(context.Background(), 7))
}

func TestAdminClient_SurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "This Transaction ID has already been used.",
		})
	}))
	defer server.Close()

	client := NewAdminClient(server.URL, "")

	trx := "AAAAA111"
	_, err := client.Update(context.Background(), 7, RegistrationUpdate{TransactionID: &trx})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "This Transaction ID has already been used.")
}
