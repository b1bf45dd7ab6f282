// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/platewise/internal/ports/inbound"
	"github.com/platewise/platewise/pkg/errors"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	trackingService inbound.TrackingService
	logger          *zap.Logger
	version         string
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	trackingService inbound.TrackingService,
	logger *zap.Logger,
	version string,
) *APIHandlers {
	return &APIHandlers{
		trackingService: trackingService,
		logger:          logger,
		version:         version,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// FlattenRecipe handles GET /api/v1/recipes/{id}/flatten
func (h *APIHandlers) FlattenRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID := chi.URLParam(r, "id")

	userID, ok := h.userIDQuery(w, r)
	if !ok {
		return
	}

	scaleFactor := 1.0
	if raw := r.URL.Query().Get("scale"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			h.writeError(w, r, errors.NewBadRequestError("scale must be a positive number"))
			return
		}
		scaleFactor = parsed
	}

	result, err := h.trackingService.Flatten(r.Context(), recipeID, userID, scaleFactor)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

// GetDailyStats handles GET /api/v1/users/{id}/nutrition/daily/{date}
func (h *APIHandlers) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}
	date := chi.URLParam(r, "date")

	includeSupplements := r.URL.Query().Get("supplements") != "false"
	includePlanned := r.URL.Query().Get("planned") == "true"

	stats, err := h.trackingService.GetDailyStats(r.Context(), userID, date, includeSupplements, includePlanned)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: stats})
}

// GetAnalytics handles GET /api/v1/users/{id}/nutrition/analytics
func (h *APIHandlers) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	startDate := r.URL.Query().Get("start")
	endDate := r.URL.Query().Get("end")
	if startDate == "" || endDate == "" {
		h.writeError(w, r, errors.NewInvalidDateRangeError("start and end query parameters are required"))
		return
	}

	analytics, err := h.trackingService.GetAnalytics(r.Context(), userID, startDate, endDate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: analytics})
}

// batchPrepRequest is the POST body for batch prep computation
type batchPrepRequest struct {
	EntryIDs []uuid.UUID `json:"entry_ids"`
}

// ComputeBatchPrep handles POST /api/v1/users/{id}/batch-prep
func (h *APIHandlers) ComputeBatchPrep(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var req batchPrepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.trackingService.ComputeBatchPrep(r.Context(), userID, req.EntryIDs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

// ClearCaches handles POST /api/v1/caches/clear
func (h *APIHandlers) ClearCaches(w http.ResponseWriter, r *http.Request) {
	var userID *uuid.UUID
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.writeError(w, r, errors.NewBadRequestError("invalid user_id"))
			return
		}
		userID = &parsed
	}

	if err := h.trackingService.ClearCaches(r.Context(), userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Caches cleared"})
}

// CacheStats handles GET /api/v1/caches/stats
func (h *APIHandlers) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.trackingService.CacheStats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: stats})
}

// HealthCheck handles GET /health
func (h *APIHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   h.version,
		},
	})
}

func (h *APIHandlers) userIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, errors.NewBadRequestError("invalid user id"))
		return uuid.Nil, false
	}
	return userID, true
}

func (h *APIHandlers) userIDQuery(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		h.writeError(w, r, errors.NewBadRequestError("user_id query parameter is required"))
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		h.writeError(w, r, errors.NewBadRequestError("invalid user_id"))
		return uuid.Nil, false
	}
	return userID, true
}

// writeJSON writes a JSON response
func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps an error to its HTTP status and error body
func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := errors.Wrap(err, "request failed")

	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	requestID := middleware.GetReqID(r.Context())
	h.writeJSON(w, appErr.StatusCode(), errors.ToErrorResponse(appErr, requestID))
}
