/*
handlers.go - HTTP API handlers for the BS interest calculator

PURPOSE:
  Exposes the interest engine and the saved-calculations repository via a
  REST API. Handles HTTP request/response, JSON serialization, and
  delegates to domain logic.

ENDPOINTS:
  Calculation:
    POST   /api/calculate                     Run a calculation (nothing saved)

  Saved calculations:
    GET    /api/calculations                  List, newest first
    POST   /api/calculations                  Calculate and save under a name
    GET    /api/calculations/{id}             Get one
    DELETE /api/calculations/{id}             Delete one
    GET    /api/calculations/{id}/export.csv  Breakdown as CSV

  Presets:
    GET    /api/presets                       Sample inputs

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (interest.Calculate validates eagerly)
  3. Call domain logic
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid body or invalid input (code names the error kind)
  - 413: Body larger than maxBodyBytes
  - 404: Saved calculation not found
  - 500: Storage failures
  A failed calculation never touches the saved collection.

SEE ALSO:
  - dto.go: Request/response data structures
  - presets.go: Sample inputs
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/warp/sambat-interest/interest"
	"github.com/warp/sambat-interest/report"
	"github.com/warp/sambat-interest/saved"
	"go.uber.org/zap"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Repo   *saved.Repository
	Logger *zap.Logger
}

// NewHandler creates a new handler. repo must already be loaded.
func NewHandler(repo *saved.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Repo: repo, Logger: logger}
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// Calculate runs a calculation without saving it.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := interest.Calculate(req.Input())
	if err != nil {
		h.writeCalculationError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCalculationDTO(result))
}

// =============================================================================
// SAVED CALCULATION HANDLERS
// =============================================================================

// ListCalculations returns all saved calculations, newest first.
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	list := h.Repo.List()

	dtos := make([]SavedCalculationDTO, len(list))
	for i, s := range list {
		dtos[i] = toSavedDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveCalculation recomputes the result from the inputs and saves it.
func (h *Handler) SaveCalculation(w http.ResponseWriter, r *http.Request) {
	var req SaveCalculationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	in := req.Input()
	result, err := interest.Calculate(in)
	if err != nil {
		h.writeCalculationError(w, r, err)
		return
	}

	calc, err := h.Repo.Add(r.Context(), req.Name, in, result)
	if err != nil {
		h.Logger.Error("failed to save calculation",
			zap.String("op", "api.SaveCalculation"),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "Failed to save calculation", err)
		return
	}

	writeJSON(w, http.StatusCreated, toSavedDTO(calc))
}

// GetCalculation returns a single saved calculation.
func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	calc, err := h.Repo.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Saved calculation not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toSavedDTO(calc))
}

// DeleteCalculation removes a saved calculation.
func (h *Handler) DeleteCalculation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Repo.Delete(r.Context(), id)
	switch {
	case saved.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Saved calculation not found", nil)
		return
	case err != nil:
		h.Logger.Error("failed to delete calculation",
			zap.String("op", "api.DeleteCalculation"),
			zap.String("id", id),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "Failed to delete calculation", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportCalculation writes a saved calculation's breakdown as CSV.
func (h *Handler) ExportCalculation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	calc, err := h.Repo.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Saved calculation not found", nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="calculation-%s.csv"`, calc.ID))
	if err := report.CSV(w, calc.Result); err != nil {
		h.Logger.Warn("failed to write csv export",
			zap.String("op", "api.ExportCalculation"),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}

// =============================================================================
// PRESET HANDLERS
// =============================================================================

// ListPresets returns sample inputs.
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presets)
}

// =============================================================================
// HELPERS
// =============================================================================

// writeCalculationError maps validation failures to 400 with the error kind.
func (h *Handler) writeCalculationError(w http.ResponseWriter, r *http.Request, err error) {
	if interest.IsClientError(err) {
		h.Logger.Debug("rejected calculation input",
			zap.String("op", "api.calculate"),
			zap.String("kind", interest.Kind(err)),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  interest.Kind(err),
		})
		return
	}
	h.Logger.Error("calculation failed",
		zap.String("op", "api.calculate"),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "Calculation failed", err)
}

// maxBodyBytes caps request bodies; calculation inputs are a few short strings.
const maxBodyBytes = 64 << 10

// decodeBody reads a JSON body into v, writing 400 or 413 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large", err)
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
