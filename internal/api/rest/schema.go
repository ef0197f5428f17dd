package rest

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"harpy-detect/internal/domain/entity"
)

// detectRequest тело POST /detect.
// Указатели различают отсутствующее поле и нулевое значение.
type detectRequest struct {
	ImageB64            *string            `json:"image_b64" validate:"required"`
	Detections          []detectionPayload `json:"detections" validate:"dive"`
	ApplyPrivacyFilters *bool              `json:"apply_privacy_filters"`
	PrivacyMode         *entity.FilterMode `json:"privacy_mode"`
}

// detectionPayload детекция в запросе: все поля обязательны.
type detectionPayload struct {
	Label      *string      `json:"label" validate:"required"`
	Confidence *float64     `json:"confidence" validate:"required,gte=0,lte=1"`
	BBox       *bboxPayload `json:"bbox" validate:"required"`
}

type bboxPayload struct {
	X      *int `json:"x" validate:"required,min=0"`
	Y      *int `json:"y" validate:"required,min=0"`
	Width  *int `json:"width" validate:"required,gt=0"`
	Height *int `json:"height" validate:"required,gt=0"`
}

// defaultedFields поля со значением по умолчанию: их можно опустить,
// но нельзя передать null.
var defaultedFields = []string{"detections", "apply_privacy_filters", "privacy_mode"}

// nullFieldErrors находит явные null в полях со значением по умолчанию.
func nullFieldErrors(raw []byte) []fieldError {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	var errs []fieldError
	for _, name := range defaultedFields {
		if value, ok := fields[name]; ok && bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			errs = append(errs, fieldError{Field: name, Tag: "required", Message: "must not be null"})
		}
	}
	return errs
}

// toEntity подставляет значения по умолчанию. Вызывается только после
// успешной валидации, поэтому обязательные указатели не nil.
func (r detectRequest) toEntity() entity.DetectRequest {
	req := entity.DetectRequest{
		Detections:          make([]entity.Detection, 0, len(r.Detections)),
		ApplyPrivacyFilters: true,
		PrivacyMode:         entity.DefaultFilterMode,
	}
	if r.ImageB64 != nil {
		req.ImageB64 = *r.ImageB64
	}
	for _, d := range r.Detections {
		req.Detections = append(req.Detections, d.toEntity())
	}
	if r.ApplyPrivacyFilters != nil {
		req.ApplyPrivacyFilters = *r.ApplyPrivacyFilters
	}
	if r.PrivacyMode != nil {
		req.PrivacyMode = *r.PrivacyMode
	}
	return req
}

func (d detectionPayload) toEntity() entity.Detection {
	return entity.Detection{
		Label:      *d.Label,
		Confidence: *d.Confidence,
		BBox: entity.BoundingBox{
			X:      *d.BBox.X,
			Y:      *d.BBox.Y,
			Width:  *d.BBox.Width,
			Height: *d.BBox.Height,
		},
	}
}

type detectResponse struct {
	TsMs             int64              `json:"ts_ms"`
	DetectionCount   int                `json:"detection_count"`
	Detections       []entity.Detection `json:"detections"`
	FilteredImageB64 *string            `json:"filtered_image_b64"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type errorResponse struct {
	Detail string       `json:"detail"`
	Errors []fieldError `json:"errors,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// newValidator возвращает валидатор, который называет поля по json-тегам.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors переводит ошибки валидатора в ответ API.
func fieldErrors(errs validator.ValidationErrors) []fieldError {
	out := make([]fieldError, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out = append(out, fieldError{
			Field:   field,
			Tag:     fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min", "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
