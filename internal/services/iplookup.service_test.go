package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rcsc-server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupServer(t *testing.T, handler http.HandlerFunc) *IPLookupService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewIPLookupService(config.Config{IPLookupURL: server.URL})
}

func TestLookupBatch_DeduplicatesAndSkipsSentinels(t *testing.T) {
	var received []map[string]string

	service := lookupServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		var results []map[string]string
		for _, entry := range received {
			results = append(results, map[string]string{
				"status":      "success",
				"country":     "Bangladesh",
				"countryCode": "BD",
				"regionName":  "Dhaka Division",
				"city":        "Dhaka",
				"query":       entry["query"],
			})
		}
		_ = json.NewEncoder(w).Encode(results)
	})

	locations, err := service.LookupBatch(context.Background(),
		[]string{"103.120.1.9", "Unknown", "", "103.120.1.9", "45.67.89.10"})

	require.NoError(t, err)
	require.Len(t, received, 2, "sentinels and duplicates never reach the provider")
	require.Len(t, locations, 2)
	assert.Equal(t, "103.120.1.9", locations[0].IP)
	assert.Equal(t, "Bangladesh", locations[0].Country)
	assert.Equal(t, "Dhaka Division", locations[0].Region)
}

func TestLookupBatch_EmptyInputSkipsRequest(t *testing.T) {
	called := false
	service := lookupServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	locations, err := service.LookupBatch(context.Background(), []string{"", "Unknown"})

	require.NoError(t, err)
	assert.Nil(t, locations)
	assert.False(t, called)
}

func TestLookupBatch_FiltersFailedResolutions(t *testing.T) {
	service := lookupServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"status": "success", "country": "Bangladesh", "query": "103.120.1.9"},
			{"status": "fail", "message": "private range", "query": "192.168.0.1"},
		})
	})

	locations, err := service.LookupBatch(context.Background(),
		[]string{"103.120.1.9", "192.168.0.1"})

	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "103.120.1.9", locations[0].IP)
}

func TestLookupBatch_ProviderError(t *testing.T) {
	service := lookupServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := service.LookupBatch(context.Background(), []string{"103.120.1.9"})

	assert.Error(t, err)
}
