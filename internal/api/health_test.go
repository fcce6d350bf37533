// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critique/internal/api"
)

func healthy(context.Context) error { return nil }

func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		checks []api.Check
		status int
		want   string
	}{
		{"no_checks", nil, http.StatusOK, "ready"},
		{"all_ok", []api.Check{{Name: "postgres", Probe: healthy}, {Name: "redis", Probe: healthy}}, http.StatusOK, "ready"},
		{"redis_down", []api.Check{
			{Name: "postgres", Probe: healthy},
			{Name: "redis", Probe: func(context.Context) error { return errors.New("connection refused") }},
		}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tt.checks...)
			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.status, recorder.Code)

			var body struct {
				Data struct {
					Status string `json:"status"`
					Checks []struct {
						Name  string `json:"name"`
						OK    bool   `json:"ok"`
						Error string `json:"error"`
					} `json:"checks"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
			assert.Equal(t, tt.want, body.Data.Status)
			assert.Len(t, body.Data.Checks, len(tt.checks))
		})
	}
}

func TestLiveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.Check{Name: "broken", Probe: func(context.Context) error {
		return errors.New("down")
	}})
	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
}
