package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// OK is the body of operations that return no record.
type OK struct {
	OK bool `json:"ok"`
}

// Created is the body of 201 responses.
type Created struct {
	ID string `json:"id"`
}

// List wraps collections.
type List[T any] struct {
	Items []T `json:"items"`
}

// Success sends body as-is.
func Success(c *gin.Context, code int, body interface{}) {
	c.JSON(code, body)
}

// Error sends an error response tagged with the request id.
func Error(c *gin.Context, code int, message string, details interface{}) {
	c.JSON(code, ErrorBody{
		Error:     message,
		Details:   details,
		RequestID: RequestID(c),
	})
}

// RequestID returns the id assigned by the RequestID middleware, if any.
func RequestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)
	return idStr
}
