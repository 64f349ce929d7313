package errors

import (
	"fmt"
	"log/slog"

	"github.com/eternisai/listing-optimizer/internal/logger"
	"github.com/gin-gonic/gin"
)

// Recovery converts a panic in a later handler into a 500 response whose error
// field is the recovered value.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		message := fmt.Sprint(recovered)
		log.WithContext(c.Request.Context()).Error("panic recovered",
			slog.String("panic", message),
			slog.String("path", c.Request.URL.Path))
		AbortWithInternal(c, message)
	})
}
