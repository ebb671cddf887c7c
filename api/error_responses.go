package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/promptclass/core"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeInvalidJSON        ErrorCode = "INVALID_JSON"
	ErrorCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidPrompt      ErrorCode = "INVALID_PROMPT"
	ErrorCodeNoRelevantKeywords ErrorCode = "NO_RELEVANT_KEYWORDS"

	// Server Error Codes (5xx)
	ErrorCodeEmbeddingFailed ErrorCode = "EMBEDDING_FAILED"
)

// APIError represents a standardized API error response
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string) {
	errorResponse := &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
	if id := c.GetString(requestIDKey); id != "" {
		errorResponse.RequestID = id
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendClassificationError maps a classification outcome to a response.
// Branches on the outcome status, never on the error text.
func SendClassificationError(c *gin.Context, err error) {
	switch core.StatusOf(err) {
	case core.StatusInvalidPrompt:
		SendError(c, http.StatusUnprocessableEntity, ErrorCodeInvalidPrompt, core.ErrInvalidPrompt.Error())
	case core.StatusNoRelevantKeywords:
		SendError(c, http.StatusUnprocessableEntity, ErrorCodeNoRelevantKeywords, core.ErrNoRelevantKeywords.Error())
	default:
		SendError(c, http.StatusBadGateway, ErrorCodeEmbeddingFailed,
			"Embedding provider failed: "+err.Error())
	}
}
