package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getDashboard returns a fresh aggregate snapshot; nothing is cached
// between calls.
func (g *Gateway) getDashboard(c *gin.Context) {
	stats, err := g.dashboard.Stats(c.Request.Context())
	if err != nil {
		g.fail(c, err)
		return
	}
	respond(c, http.StatusOK, stats, "")
}
