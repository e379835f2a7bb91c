package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/ebookshelf/internal/library"
	"github.com/mrlokans/ebookshelf/internal/logger"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists every rejected input field.
type ValidationErrorResponse struct {
	Errors []library.FieldError `json:"errors"`
}

// SuccessResponse is a standard success response with a message.
type SuccessResponse struct {
	Message string `json:"message"`
}

// internalErrorMessage is the only detail clients get about server faults.
const internalErrorMessage = "internal server error"

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondValidationError sends a 400 response listing field errors.
func respondValidationError(c *gin.Context, verr *library.ValidationError) {
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: verr.Errors})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	logger.Get().Error().
		Err(err).
		Str("operation", context).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
}

// respondServiceError maps a library error onto its HTTP status and body.
func respondServiceError(c *gin.Context, err error, context string) {
	var verr *library.ValidationError
	switch {
	case errors.As(err, &verr):
		respondValidationError(c, verr)
	case errors.Is(err, library.ErrDuplicateISBN):
		respondBadRequest(c, "ISBN already exists")
	case errors.Is(err, library.ErrFileNotFound):
		respondNotFound(c, "Book or file not found")
	case errors.Is(err, library.ErrBookNotFound):
		respondNotFound(c, "Book not found")
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
