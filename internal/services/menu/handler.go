package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/models"
	"restaurant-orders/internal/storage"
	"restaurant-orders/internal/validation"
)

// Handler handles HTTP requests for the menu service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new menu handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the menu routes on the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /menu", h.withLogging(h.ListItems))
	mux.HandleFunc("POST /menu", h.withLogging(h.CreateItem))
	mux.HandleFunc("GET /menu/{id}", h.withLogging(h.GetItem))
	mux.HandleFunc("PUT /menu/{id}", h.withLogging(h.UpdateItem))
	mux.HandleFunc("DELETE /menu/{id}", h.withLogging(h.DeleteItem))
	mux.HandleFunc("GET /menu/category/{category}", h.withLogging(h.ListByCategory))
}

// ListItems handles GET /menu requests
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	items, err := h.service.ListItems(r.Context())
	if err != nil {
		h.writeDomainError(w, err, requestID)
		return
	}

	responses := make([]models.FoodItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, models.NewFoodItemResponse(item))
	}
	h.writeJSON(w, http.StatusOK, responses)
}

// GetItem handles GET /menu/{id} requests
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid menu item id", requestID)
		return
	}

	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, models.NewFoodItemResponse(*item))
}

// CreateItem handles POST /menu requests
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	req, ok := h.decodeItemRequest(w, r, requestID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	item, err := h.service.CreateItem(ctx, req.FoodItem(), requestID)
	if err != nil {
		h.writeDomainError(w, err, requestID)
		return
	}
	h.writeJSON(w, http.StatusCreated, models.NewFoodItemResponse(*item))
}

// UpdateItem handles PUT /menu/{id} requests
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid menu item id", requestID)
		return
	}

	req, ok := h.decodeItemRequest(w, r, requestID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	item, err := h.service.UpdateItem(ctx, id, req.FoodItem(), requestID)
	if err != nil {
		h.writeDomainError(w, err, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, models.NewFoodItemResponse(*item))
}

// DeleteItem handles DELETE /menu/{id} requests
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid menu item id", requestID)
		return
	}

	if err := h.service.DeleteItem(r.Context(), id, requestID); err != nil {
		h.writeDomainError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":         "Menu item deleted successfully",
		"deleted_item_id": id,
	})
}

// ListByCategory handles GET /menu/category/{category} requests
func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	category := models.FoodCategory(r.PathValue("category"))
	items, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		h.writeDomainError(w, err, requestID)
		return
	}

	responses := make([]models.FoodItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, models.NewFoodItemResponse(item))
	}
	h.writeJSON(w, http.StatusOK, responses)
}

// decodeItemRequest parses and rejects malformed item request bodies.
func (h *Handler) decodeItemRequest(w http.ResponseWriter, r *http.Request, requestID string) (*models.CreateFoodItemRequest, bool) {
	if r.Header.Get("Content-Type") != "application/json" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return nil, false
	}

	var req models.CreateFoodItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return nil, false
	}
	return &req, true
}

// writeDomainError maps domain errors to HTTP responses. Validation
// failures are client input errors; missing entities are not found.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error, requestID string) {
	var verrs validation.Errors
	var notFound *storage.NotFoundError

	switch {
	case errors.As(err, &verrs):
		h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":      "Validation failed",
			"details":    verrs,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"request_id": requestID,
		})
	case errors.As(err, &notFound):
		h.writeErrorResponse(w, http.StatusNotFound, notFound.Error(), requestID)
	default:
		h.logger.Error("request_failed", "Unexpected error", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	h.writeJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
