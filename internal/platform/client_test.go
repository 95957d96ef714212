package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, APIKey: "test-key"}, zap.NewNop())
}

func TestFetchRecords(t *testing.T) {
	t.Run("success returns data and sends field list", func(t *testing.T) {
		var gotFields []string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/records/threat/fetch", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req struct {
				Fields []string `json:"fields"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			gotFields = req.Fields

			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": []map[string]any{
					{"Id": 1, "status": "active"},
					{"Id": 2, "status": "resolved"},
				},
			})
		}))

		records, err := client.FetchRecords(context.Background(), "threat", []string{"Id", "status"})
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, []string{"Id", "status"}, gotFields)
	})

	t.Run("server error surfaces message", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "table offline"})
		}))

		_, err := client.FetchRecords(context.Background(), "threat", []string{"Id"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "table offline")
	})
}

func TestFetchRecordByID(t *testing.T) {
	t.Run("missing record maps to ErrRecordNotFound", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := client.FetchRecordByID(context.Background(), "threat", 99, []string{"Id"})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("success decodes single record", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/records/keyword/4/fetch", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"Id": 4, "term": "official backup account"},
			})
		}))

		rec, err := client.FetchRecordByID(context.Background(), "keyword", 4, []string{"Id", "term"})
		require.NoError(t, err)
		assert.Equal(t, "official backup account", rec["term"])
	})
}

func TestCreateRecords(t *testing.T) {
	t.Run("returns per record results including failures", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/records/keyword/create", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"results": []map[string]any{
					{
						"success": false,
						"message": "validation failed",
						"errors": []map[string]any{
							{"fieldLabel": "term", "message": "must not be empty"},
						},
					},
				},
			})
		}))

		results, err := client.CreateRecords(context.Background(), "keyword", []map[string]any{{"term": ""}})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, results[0].Success)
		require.Len(t, results[0].Errors, 1)
		assert.Equal(t, "term", results[0].Errors[0].FieldLabel)
	})
}

func TestDeleteRecords(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/records/alert/delete", r.URL.Path)

		var req struct {
			RecordIDs []int `json:"recordIds"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []int{5}, req.RecordIDs)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"results": []map[string]any{{"success": true}},
		})
	}))

	results, err := client.DeleteRecords(context.Background(), "alert", []int{5})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
}

func TestResultError(t *testing.T) {
	err := ResultError(RecordResult{
		Message: "validation failed",
		Errors: []FieldError{
			{FieldLabel: "term", Message: "must not be empty"},
			{FieldLabel: "severity", Message: "unknown value"},
		},
	})
	assert.Equal(t, "validation failed; term: must not be empty; severity: unknown value", err.Error())

	err = ResultError(RecordResult{})
	assert.Equal(t, "record rejected", err.Error())
}
