package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Recommend(t *testing.T) {
	t.Run("successful recommendation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/recommendations", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []any{"김치", "두부"}, req["ingredient_list"])
			assert.Equal(t, 20.0, req["cook_time_limit"])

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"request_id": "abc",
				"recommendations": []map[string]any{{
					"rank":                1,
					"name":                "김치찌개",
					"cook_time_minutes":   20,
					"match_percent":       75,
					"matched_ingredients": []string{"김치", "두부"},
					"missing_ingredients": []string{"돼지고기"},
					"near_expiry_count":   1,
				}},
				"no_results": false,
			})
		}))
		defer server.Close()

		c := NewClient(server.URL, 5*time.Second)
		result, err := c.Recommend(context.Background(), []string{"김치", "두부"}, 20)

		require.NoError(t, err)
		require.Len(t, result.Recommendations, 1)
		rec := result.Recommendations[0]
		assert.Equal(t, 1, rec.Rank)
		assert.Equal(t, "김치찌개", rec.Name)
		assert.Equal(t, 75, rec.MatchPercent)
		assert.Equal(t, []string{"돼지고기"}, rec.Missing)
		assert.False(t, result.NoResults)
	})

	t.Run("error response is decoded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":"INVALID_REQUEST","error":"無效的請求"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, 5*time.Second)
		_, err := c.Recommend(context.Background(), nil, -1)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "INVALID_REQUEST", apiErr.Code)
	})

	t.Run("non JSON error keeps body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream down"))
		}))
		defer server.Close()

		c := NewClient(server.URL, 5*time.Second)
		_, err := c.Recommend(context.Background(), []string{"김치"}, 10)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "upstream down", apiErr.Message)
	})

	t.Run("unreachable server", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", time.Second)
		_, err := c.Recommend(context.Background(), []string{"김치"}, 10)
		assert.Error(t, err)
	})
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0","catalog":{"recipes":12,"shelf_life_entries":30}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	status, err := c.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, 12, status.Catalog.Recipes)
	assert.Equal(t, 30, status.Catalog.ShelfLifeEntries)
}
