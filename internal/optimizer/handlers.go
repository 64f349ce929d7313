package optimizer

import (
	apierrors "github.com/eternisai/listing-optimizer/internal/errors"
	"github.com/gin-gonic/gin"
)

// ServeGin handles any method on the optimizer route.
func (h *Handler) ServeGin(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger.WithContext(c.Request.Context()).Error("failed to read request body", "error", err)
		apierrors.AbortWithInternal(c, err.Error())
		return
	}

	resp := h.Handle(c.Request.Context(), Request{
		Method: c.Request.Method,
		Body:   body,
	})

	c.JSON(resp.StatusCode, resp.Body)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	resp := healthResponse()
	c.JSON(resp.StatusCode, resp.Body)
}
