package utils

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"freiplatz/internal/logging"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

var withStack atomic.Bool

// SetErrorStacks toggles stack traces on logged service errors (off in production).
func SetErrorStacks(enabled bool) {
	withStack.Store(enabled)
}

func respond(c *gin.Context, code int, body APIResponse) {
	body.Code = code
	body.TraceID = c.GetString("trace_id")
	c.JSON(code, body)
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, APIResponse{Status: "success", Message: message, Data: data})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, APIResponse{Status: "success", Message: message, Data: data})
}

func RespondCreatedCount(c *gin.Context, data interface{}, count int, message string) {
	respond(c, http.StatusCreated, APIResponse{Status: "success", Message: message, Count: &count, Data: data})
}

func RespondPage(c *gin.Context, data interface{}, meta interface{}, message string) {
	respond(c, http.StatusOK, APIResponse{Status: "success", Message: message, Data: data, Meta: meta})
}

func RespondError(c *gin.Context, code int, message string) {
	respond(c, code, APIResponse{Status: "error", Message: message})
}

func RespondErrorDetails(c *gin.Context, code int, message string, details interface{}) {
	respond(c, code, APIResponse{Status: "error", Message: message, Details: details})
}

// RespondBindingError renders request decoding and validator failures as 400.
func RespondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[lowerFirst(fe.Field())] = describeFieldError(fe)
		}
		RespondErrorDetails(c, http.StatusBadRequest, "Invalid request", fields)
		return
	}
	RespondErrorDetails(c, http.StatusBadRequest, "Invalid request format", err.Error())
}

// HandleServiceError maps service sentinels to HTTP answers. Client errors
// are logged at debug level, everything else at error level.
func HandleServiceError(c *gin.Context, err error) {
	code, message, details := classifyServiceError(err)
	logServiceError(c, err, code)
	if details != nil {
		RespondErrorDetails(c, code, message, details)
		return
	}
	RespondError(c, code, message)
}

func classifyServiceError(err error) (int, string, interface{}) {
	var verr *ValidationError

	switch {
	case errors.As(err, &verr):
		if len(verr.Fields) > 0 {
			return http.StatusBadRequest, verr.Message, verr.Fields
		}
		return http.StatusBadRequest, verr.Message, nil
	case errors.Is(err, ErrFacilityNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrPlaceNotFound),
		errors.Is(err, ErrHourNotFound),
		errors.Is(err, ErrAvailabilityNotFound),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrCarrierNotFound):
		return http.StatusNotFound, capitalize(err.Error()), nil
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "Forbidden: no access to this resource", nil
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, capitalize(err.Error()), nil
	case errors.Is(err, ErrCapacityExceeded):
		return http.StatusBadRequest, "Facility has reached its maximum capacity", nil
	case errors.Is(err, ErrAvailabilityExists), errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrConflict):
		return http.StatusConflict, capitalize(err.Error()), nil
	case errors.Is(err, ErrInvalidPage):
		return http.StatusBadRequest, "Page must be greater than 0", nil
	case errors.Is(err, ErrInvalidPageSize):
		return http.StatusBadRequest, "Page size must be between 1 and 100", nil
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, capitalize(err.Error()), nil
	default:
		return http.StatusInternalServerError, "Internal server error", nil
	}
}

func logServiceError(c *gin.Context, err error, code int) {
	logger := logging.Ctx(c.Request.Context())
	ev := logger.Debug()
	if code >= http.StatusInternalServerError {
		ev = logger.Error()
	}
	if !ev.Enabled() {
		return
	}
	ev = ev.Err(err).
		Int("status", code).
		Str("method", c.Request.Method).
		Str("path", c.FullPath())
	if withStack.Load() {
		ev = ev.Str("stack", string(debug.Stack()))
	}
	ev.Msg("request failed")
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "email":
		return "must be a valid email"
	default:
		return "failed on " + fe.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
