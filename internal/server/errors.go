package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/movelar/proforma/internal/catalog/domain"
	clientdomain "github.com/movelar/proforma/internal/client/domain"
	fxquotedomain "github.com/movelar/proforma/internal/fxquote/domain"
	"github.com/movelar/proforma/internal/pricing"
	pricingconfigdomain "github.com/movelar/proforma/internal/pricingconfig/domain"
	proformadomain "github.com/movelar/proforma/internal/proforma/domain"
	supplierdomain "github.com/movelar/proforma/internal/supplier/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	// Pricing failures are well-formed requests the engine cannot evaluate.
	// They get 422 with an actionable message instead of a bare 500.
	if message, ok := pricingErrorMessage(err); ok {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "pricing_error",
			Message: message,
		}
	}

	switch {
	case errors.Is(err, proformadomain.ErrNotDraft):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "proforma is not in draft status",
		}
	case errors.Is(err, supplierdomain.ErrDuplicateCode),
		errors.Is(err, catalogdomain.ErrDuplicateCode):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case errors.Is(err, supplierdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidValue),
		errors.Is(err, catalogdomain.ErrInvalidDimensions),
		errors.Is(err, clientdomain.ErrInvalidName),
		errors.Is(err, clientdomain.ErrInvalidEmail),
		errors.Is(err, pricingconfigdomain.ErrInvalidRateValue),
		errors.Is(err, pricingconfigdomain.ErrInvalidPercent),
		errors.Is(err, pricingconfigdomain.ErrInvalidMarginBasis),
		errors.Is(err, pricingconfigdomain.ErrInvalidIncoterm),
		errors.Is(err, pricingconfigdomain.ErrInvalidItemName),
		errors.Is(err, fxquotedomain.ErrInvalidRate),
		errors.Is(err, proformadomain.ErrInvalidCurrencyMode),
		errors.Is(err, proformadomain.ErrInvalidIncoterm),
		errors.Is(err, proformadomain.ErrInvalidClient),
		errors.Is(err, proformadomain.ErrInvalidSpotRate),
		errors.Is(err, proformadomain.ErrEmptyLines):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, supplierdomain.ErrSupplierNotFound),
		errors.Is(err, catalogdomain.ErrFabricNotFound),
		errors.Is(err, catalogdomain.ErrModuleNotFound),
		errors.Is(err, clientdomain.ErrClientNotFound),
		errors.Is(err, pricingconfigdomain.ErrItemNotFound),
		errors.Is(err, proformadomain.ErrProformaNotFound),
		errors.Is(err, proformadomain.ErrItemNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// pricingErrorMessage maps engine and quote failures to messages that tell
// the operator what to fix.
func pricingErrorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, pricing.ErrNoConfiguration):
		return "no pricing configuration is registered; create one before computing", true
	case errors.Is(err, pricing.ErrInvalidRiskRate):
		return "the configured rate produces a non-positive risk rate; check the rate value against the current spot quote", true
	case errors.Is(err, pricing.ErrMalformedInput):
		return "line inputs are malformed; quantities must be positive and values finite", true
	case errors.Is(err, fxquotedomain.ErrNoQuote):
		return "no spot quote has been submitted; submit a USD/BRL quote first", true
	default:
		return "", false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

func classifyErrorForLog(err error) string {
	status, payload := mapError(err)
	if status >= 500 {
		return "internal"
	}
	return payload.Type
}
