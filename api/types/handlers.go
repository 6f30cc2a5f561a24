package types

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/killallgit/waveform-comments/pkg/errors"
)

// Handler utility functions to reduce duplication across handlers

// ParseUintParam extracts and parses a URL parameter as uint
// Returns the parsed value and sends error response if parsing fails
func ParseUintParam(c *gin.Context, paramName string) (uint, bool) {
	paramStr := c.Param(paramName)
	value, err := strconv.ParseUint(paramStr, 10, 32)
	if err != nil || value == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Message: "Invalid " + paramName,
			Error:   string(apperrors.ErrCodeValidation),
		})
		return 0, false
	}
	return uint(value), true
}

// QueryInt reads an integer query parameter, falling back to def
func QueryInt(c *gin.Context, name string, def int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return value
}

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Message: "Invalid request body",
			Error:   string(apperrors.ErrCodeValidation),
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendError maps a service error to its status code and error body
func SendError(c *gin.Context, err error) {
	code := apperrors.GetHTTPCode(err)
	resp := ErrorResponse{
		Status: StatusError,
		Error:  string(apperrors.GetCode(err)),
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && code < http.StatusInternalServerError {
		resp.Message = appErr.Message
		if len(appErr.Details) > 0 {
			resp.Details = appErr.Details
		}
	} else {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		resp.Message = "Internal server error"
	}
	c.JSON(code, resp)
}

// SendUnauthorized sends a standardized unauthorized response
func SendUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Status:  StatusError,
		Message: message,
		Error:   string(apperrors.ErrCodeUnauthorized),
	})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreated sends a standardized created response with data
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
