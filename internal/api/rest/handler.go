package rest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"harpy-detect/internal/domain/entity"
)

// ServiceName название сервиса в ответе /health.
const ServiceName = "harpy-detect"

// Detector обрабатывает запрос на фильтрацию.
type Detector interface {
	Detect(ctx context.Context, req entity.DetectRequest) (*entity.DetectResult, error)
}

// Handler HTTP-обработчики сервиса
type Handler struct {
	detector Detector
	validate *validator.Validate
}

// NewHandler создаёт обработчики
func NewHandler(detector Detector) *Handler {
	return &Handler{
		detector: detector,
		validate: newValidator(),
	}
}

// Health обрабатывает GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: ServiceName})
}

// Detect обрабатывает POST /detect
func (h *Handler) Detect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeDecodeError(w, err)
		return
	}

	var body detectRequest
	if err := json.Unmarshal(raw, &body); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	if errs := nullFieldErrors(raw); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Detail: "request validation failed",
			Errors: errs,
		})
		return
	}

	if err := h.validate.Struct(body); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Detail: "request validation failed",
				Errors: fieldErrors(verrs),
			})
			return
		}
		writeError(w, fmt.Sprintf("request validation failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	result, err := h.detector.Detect(ctx, body.toEntity())
	if err != nil {
		if errors.Is(err, entity.ErrInvalidImagePayload) {
			logger.Debug().Err(err).Msg("Rejected image payload")
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Msg("Detect request failed")
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := detectResponse{
		TsMs:           result.TsMs,
		DetectionCount: result.DetectionCount,
		Detections:     result.Detections,
	}
	if resp.Detections == nil {
		resp.Detections = []entity.Detection{}
	}
	if result.FilteredImage != nil {
		encoded := base64.StdEncoding.EncodeToString(result.FilteredImage)
		resp.FilteredImageB64 = &encoded
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeDecodeError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		writeError(w, fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), http.StatusRequestEntityTooLarge)
	case errors.Is(err, entity.ErrUnknownFilterMode):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Detail: "request validation failed",
			Errors: []fieldError{{
				Field:   "privacy_mode",
				Tag:     "oneof",
				Message: fmt.Sprintf("must be one of %q, %q", entity.FilterBlur, entity.FilterRedact),
			}},
		})
	default:
		writeError(w, fmt.Sprintf("invalid request body: %v", err), http.StatusUnprocessableEntity)
	}
}

// NotFound отвечает JSON-ошибкой на неизвестный путь
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, "Not Found", http.StatusNotFound)
}

// MethodNotAllowed отвечает JSON-ошибкой на неверный метод
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}
