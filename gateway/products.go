package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/mealshop/pkg/apperr"
	"github.com/example/mealshop/pkg/models"
)

const productPageLimit = 20

type productRequest struct {
	Name        string  `json:"name" form:"name"`
	Price       float64 `json:"price" form:"price"`
	Description string  `json:"description" form:"description"`
}

func (g *Gateway) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBind(&req); err != nil {
		g.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if req.Name == "" {
		g.fail(c, apperr.Validation("product name is required"))
		return
	}

	ctx := c.Request.Context()

	existing, err := g.products.FindByName(ctx, req.Name)
	if err != nil {
		g.fail(c, err)
		return
	}
	if existing != nil {
		g.fail(c, apperr.Conflict("product with name %q already exists", req.Name))
		return
	}

	image, err := g.saveImage(c, "image")
	if err != nil {
		g.fail(c, err)
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       image,
	}
	if err := g.products.Insert(ctx, product); err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusCreated, product, "")
}

func (g *Gateway) listProducts(c *gin.Context) {
	page, limit := pageParams(c, productPageLimit)

	products, total, err := g.products.List(c.Request.Context(), page, limit)
	if err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"items": products,
		"table": models.NewTable(page, limit, total),
	}, "")
}

func (g *Gateway) getProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}

	product, err := g.products.FindByID(c.Request.Context(), id)
	if err != nil {
		g.fail(c, err)
		return
	}
	if product == nil {
		g.fail(c, apperr.NotFound("product not found for ID: %s", c.Param("id")))
		return
	}

	respond(c, http.StatusOK, product, "")
}

func (g *Gateway) updateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}

	var req productRequest
	if err := c.ShouldBind(&req); err != nil {
		g.fail(c, apperr.Validation("invalid request body"))
		return
	}

	image, err := g.saveImage(c, "image")
	if err != nil {
		g.fail(c, err)
		return
	}

	product, err := g.products.Update(c.Request.Context(), id, &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       image,
	})
	if err != nil {
		g.fail(c, err)
		return
	}
	if product == nil {
		g.fail(c, apperr.NotFound("product not found for ID: %s", c.Param("id")))
		return
	}

	respond(c, http.StatusOK, product, "")
}

// deleteProduct removes the product and then pulls its id out of every
// package include list. The two writes are sequential, not transactional;
// a failure in between leaves a dangling reference until the next pull.
func (g *Gateway) deleteProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}

	ctx := c.Request.Context()

	deleted, err := g.products.Delete(ctx, id)
	if err != nil {
		g.fail(c, err)
		return
	}
	if !deleted {
		g.fail(c, apperr.NotFound("product not found for ID: %s", c.Param("id")))
		return
	}

	pulled, err := g.packages.PullProduct(ctx, id)
	if err != nil {
		g.fail(c, apperr.Internal("product deleted but package cascade failed", err))
		return
	}
	if pulled > 0 {
		g.logger.Info("removed deleted product from packages",
			zap.String("product", id.Hex()),
			zap.Int64("packages", pulled),
		)
	}

	respond(c, http.StatusOK, nil, "Product deleted successfully!")
}
