package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MethodNotAllowedMessage is the error text for unsupported HTTP methods.
const MethodNotAllowedMessage = "Method not allowed"

// AbortWithMethodNotAllowed sends a 405 Method Not Allowed response and aborts the request.
func AbortWithMethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, NewAPIError(MethodNotAllowedMessage))
}
