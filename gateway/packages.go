package gateway

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/mealshop/pkg/apperr"
	"github.com/example/mealshop/pkg/models"
)

const packagePageLimit = 20

type packageRequest struct {
	Name    string   `json:"name" form:"name"`
	Price   float64  `json:"price" form:"price"`
	Include []string `json:"include" form:"include"`
}

// resolveInclude parses, dedupes and verifies a product reference list.
// Any reference that does not land on an existing product rejects the
// whole write.
func (g *Gateway) resolveInclude(ctx context.Context, include []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(include))
	for _, raw := range include {
		id, err := parseID(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	ids = models.DedupeIDs(ids)

	products, err := g.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, apperr.InvalidReference("some product IDs are invalid or do not exist")
	}
	return ids, nil
}

func (g *Gateway) createPackage(c *gin.Context) {
	var req packageRequest
	if err := c.ShouldBind(&req); err != nil {
		g.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if req.Name == "" {
		g.fail(c, apperr.Validation("package name is required"))
		return
	}

	ctx := c.Request.Context()

	existing, err := g.packages.FindByName(ctx, req.Name)
	if err != nil {
		g.fail(c, err)
		return
	}
	if existing != nil {
		g.fail(c, apperr.Conflict("package with name %q already exists", req.Name))
		return
	}

	include, err := g.resolveInclude(ctx, req.Include)
	if err != nil {
		g.fail(c, err)
		return
	}

	image, err := g.saveImage(c, "image")
	if err != nil {
		g.fail(c, err)
		return
	}

	pkg := &models.Package{
		Name:    req.Name,
		Price:   req.Price,
		Include: include,
		Image:   image,
	}
	if err := g.packages.Insert(ctx, pkg); err != nil {
		g.fail(c, err)
		return
	}

	// Denormalized response only; the stored document keeps bare ids.
	products, err := g.products.FindByIDs(ctx, include)
	if err != nil {
		g.fail(c, err)
		return
	}
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}

	respond(c, http.StatusCreated, gin.H{
		"name":    pkg.Name,
		"price":   pkg.Price,
		"include": names,
	}, "")
}

func (g *Gateway) listPackages(c *gin.Context) {
	page, limit := pageParams(c, packagePageLimit)
	ctx := c.Request.Context()

	packages, total, err := g.packages.List(ctx, page, limit)
	if err != nil {
		g.fail(c, err)
		return
	}

	views, err := g.buildPackageViews(ctx, packages)
	if err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"items": views,
		"table": models.NewTable(page, limit, total),
	}, "")
}

func (g *Gateway) getPackage(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}
	ctx := c.Request.Context()

	pkg, err := g.packages.FindByID(ctx, id)
	if err != nil {
		g.fail(c, err)
		return
	}
	if pkg == nil {
		g.fail(c, apperr.NotFound("package not found for ID: %s", c.Param("id")))
		return
	}

	views, err := g.buildPackageViews(ctx, []models.Package{*pkg})
	if err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusOK, views[0], "")
}

func (g *Gateway) updatePackage(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}

	var req packageRequest
	if err := c.ShouldBind(&req); err != nil {
		g.fail(c, apperr.Validation("invalid request body"))
		return
	}

	ctx := c.Request.Context()

	// An absent or empty include keeps the stored list; a supplied one is
	// validated wholesale before anything is written.
	var include []primitive.ObjectID
	if len(req.Include) > 0 {
		include, err = g.resolveInclude(ctx, req.Include)
		if err != nil {
			g.fail(c, err)
			return
		}
	}

	image, err := g.saveImage(c, "image")
	if err != nil {
		g.fail(c, err)
		return
	}

	pkg, err := g.packages.Update(ctx, id, &models.Package{
		Name:  req.Name,
		Price: req.Price,
		Image: image,
	}, include)
	if err != nil {
		g.fail(c, err)
		return
	}
	if pkg == nil {
		g.fail(c, apperr.NotFound("package not found for ID: %s", c.Param("id")))
		return
	}

	views, err := g.buildPackageViews(ctx, []models.Package{*pkg})
	if err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusOK, views[0], "")
}

func (g *Gateway) deletePackage(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}

	deleted, err := g.packages.Delete(c.Request.Context(), id)
	if err != nil {
		g.fail(c, err)
		return
	}
	if !deleted {
		g.fail(c, apperr.NotFound("package not found for ID: %s", c.Param("id")))
		return
	}

	respond(c, http.StatusOK, nil, "Package deleted successfully!")
}
