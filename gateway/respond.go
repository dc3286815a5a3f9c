package gateway

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/mealshop/pkg/apperr"
)

// respond writes the `{data?, message?}` envelope every endpoint shares.
func respond(c *gin.Context, status int, data any, message string) {
	body := gin.H{}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// fail maps a domain error onto the envelope. Anything that is not a
// domain error is logged and reported as a bare internal failure.
func (g *Gateway) fail(c *gin.Context, err error) {
	e := apperr.From(err)
	if e.Kind == apperr.KindInternal {
		g.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	respond(c, e.Kind.Status(), nil, e.Message)
}

// parseID validates the hex shape of a path-supplied id.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.MalformedID(id)
	}
	return oid, nil
}

// pageParams reads page/limit query values, falling back to page 1 and
// the per-entity default limit.
func pageParams(c *gin.Context, defaultLimit int) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
