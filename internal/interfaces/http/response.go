package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// apiResponse is the envelope every handler in this package replies with,
// matching the teacher's success/error envelope shape (internal/shared/utils.APIResponse).
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type errorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, apiResponse{Success: true, Data: data, Message: message})
}

// errorResponse classifies err the same way the teacher's
// ErrorResponseWithError does: a wrapped *errors.AppError carries its own
// status/type, a validator.ValidationErrors becomes a 400, anything else is
// an opaque 500 so internal detail never leaks to a client.
func errorResponse(c *gin.Context, err error) {
	var statusCode int
	var info errorInfo

	if appErr := apperrors.GetAppError(err); appErr != nil {
		statusCode = appErr.Code
		info = errorInfo{Type: string(appErr.Type), Message: appErr.Message, Details: appErr.Details}
	} else if validationErrs, ok := err.(validator.ValidationErrors); ok {
		statusCode = http.StatusBadRequest
		info = errorInfo{
			Type:    string(apperrors.ErrorTypeValidation),
			Message: "request validation failed",
			Details: formatValidationErrors(validationErrs),
		}
	} else {
		statusCode = http.StatusInternalServerError
		info = errorInfo{Type: string(apperrors.ErrorTypeInternal), Message: "internal server error"}
	}

	c.JSON(statusCode, apiResponse{Success: false, Error: &info})
}

func formatValidationErrors(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, fe.Field()+" failed on the '"+fe.Tag()+"' rule")
	}
	return strings.Join(messages, "; ")
}
