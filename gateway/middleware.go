package gateway

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/mealshop/pkg/models"
)

const ctxUserKey = "currentUser"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		rid, _ := c.Get("rid")
		logger.Info("HTTP request",
			zap.Any("rid", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// authRequired resolves the bearer token into the requesting user and
// attaches it to the request context. Missing token is 401; a token that
// does not verify, or whose user is gone, ends the request here.
func (g *Gateway) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			respond(c, http.StatusUnauthorized, nil, "Access denied. No token provided.")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := g.tokens.Parse(token)
		if err != nil {
			respond(c, http.StatusBadRequest, nil, "Invalid token.")
			c.Abort()
			return
		}

		oid, err := parseID(claims.UserID)
		if err != nil {
			respond(c, http.StatusBadRequest, nil, "Invalid token.")
			c.Abort()
			return
		}

		user, err := g.users.FindByID(c.Request.Context(), oid)
		if err != nil {
			g.fail(c, err)
			c.Abort()
			return
		}
		if user == nil {
			respond(c, http.StatusNotFound, nil, "User not found.")
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// requireRole gates a route on an exact role match.
func (g *Gateway) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || user.Role != role {
			respond(c, http.StatusForbidden, nil, "Access denied. Insufficient permissions.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
