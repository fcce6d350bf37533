// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/critique/internal/platform/constants"
	"github.com/taibuivan/critique/internal/platform/ctxutil"
	"github.com/taibuivan/critique/internal/platform/respond"
)

const readinessTimeout = 3 * time.Second

// Check probes one backing service.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(checks ...Check) (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
		defer cancel()

		logger := ctxutil.GetLogger(ctx)
		results := make([]checkResult, 0, len(checks))
		ready := true

		for _, check := range checks {
			result := checkResult{Name: check.Name, IsOK: true}
			if err := check.Probe(ctx); err != nil {
				result.IsOK = false
				result.Error = err.Error()
				ready = false
				logger.ErrorContext(ctx, "readiness_check_failed",
					slog.String("dependency", check.Name),
					slog.Any("error", err),
				)
			}
			results = append(results, result)
		}

		status, httpStatus := "ready", http.StatusOK
		if !ready {
			status, httpStatus = "degraded", http.StatusServiceUnavailable
		}

		respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
			constants.FieldStatus: status,
			constants.FieldChecks: results,
		}})
	}

	return liveness, readiness
}
