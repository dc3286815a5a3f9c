package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/mealshop/pkg/apperr"
	"github.com/example/mealshop/pkg/models"
)

const orderPageLimit = 10

type orderItemRequest struct {
	Product  string `json:"product"`
	Package  string `json:"package"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	Items       []orderItemRequest `json:"items"`
	PhoneNumber string             `json:"phoneNumber"`
	WhereToSend string             `json:"whereToSend"`
}

// createOrder prices the order from the catalog at request time. A
// client-supplied total has nowhere to go: the request shape carries none.
func (g *Gateway) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		g.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if req.PhoneNumber == "" || req.WhereToSend == "" {
		g.fail(c, apperr.Validation("phone number and delivery address are required"))
		return
	}
	if len(req.Items) == 0 {
		g.fail(c, apperr.Validation("order must contain at least one item"))
		return
	}

	ctx := c.Request.Context()
	user := currentUser(c)

	// Check-then-act: a concurrent creation from the same user can slip
	// past this probe. Accepted weak consistency.
	outstanding, err := g.orders.FindOutstanding(ctx, user.ID)
	if err != nil {
		g.fail(c, err)
		return
	}
	if outstanding != nil {
		g.fail(c, apperr.Conflict("you already have an order that is pending or accepted"))
		return
	}

	var totalAmount float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			g.fail(c, apperr.Validation("item quantity must be positive"))
			return
		}

		switch {
		case item.Product != "" && item.Package != "":
			g.fail(c, apperr.Validation("each item must reference either a product or a package, not both"))
			return

		case item.Product != "":
			id, err := parseID(item.Product)
			if err != nil {
				g.fail(c, err)
				return
			}
			product, err := g.products.FindByID(ctx, id)
			if err != nil {
				g.fail(c, err)
				return
			}
			if product == nil {
				g.fail(c, apperr.InvalidReference("product not found: %s", item.Product))
				return
			}
			totalAmount += product.Price * float64(item.Quantity)
			items = append(items, models.OrderItem{Product: &id, Quantity: item.Quantity})

		case item.Package != "":
			id, err := parseID(item.Package)
			if err != nil {
				g.fail(c, err)
				return
			}
			pkg, err := g.packages.FindByID(ctx, id)
			if err != nil {
				g.fail(c, err)
				return
			}
			if pkg == nil {
				g.fail(c, apperr.InvalidReference("package not found: %s", item.Package))
				return
			}
			totalAmount += pkg.Price * float64(item.Quantity)
			items = append(items, models.OrderItem{Package: &id, Quantity: item.Quantity})

		default:
			g.fail(c, apperr.Validation("each item must include either a valid product or package ID"))
			return
		}
	}

	order := &models.Order{
		User:        user.ID,
		Items:       items,
		TotalAmount: totalAmount,
		Progress:    models.ProgressPending,
		PhoneNumber: req.PhoneNumber,
		WhereToSend: req.WhereToSend,
	}
	if err := g.orders.Insert(ctx, order); err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusCreated, order, "")
}

func (g *Gateway) listOrders(c *gin.Context) {
	page, limit := pageParams(c, orderPageLimit)
	ctx := c.Request.Context()

	orders, total, err := g.orders.List(ctx, page, limit)
	if err != nil {
		g.fail(c, err)
		return
	}

	views, err := g.buildOrderViews(ctx, orders, true)
	if err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"items": views,
		"table": models.NewTable(page, limit, total),
	}, "")
}

// getOrdersByUser fetches every order a given user has placed; the path id
// names the user, not an order.
func (g *Gateway) getOrdersByUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}
	ctx := c.Request.Context()

	user, err := g.users.FindByID(ctx, id)
	if err != nil {
		g.fail(c, err)
		return
	}
	if user == nil {
		g.fail(c, apperr.NotFound("user not found for ID: %s", c.Param("id")))
		return
	}

	orders, err := g.orders.ListByUser(ctx, id)
	if err != nil {
		g.fail(c, err)
		return
	}
	if len(orders) == 0 {
		g.fail(c, apperr.NotFound("no orders found for user ID: %s", c.Param("id")))
		return
	}

	views, err := g.buildOrderViews(ctx, orders, true)
	if err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusOK, views, "")
}

// orderHistory returns the requesting user's own orders, newest first.
// An empty history is a valid, empty response.
func (g *Gateway) orderHistory(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	orders, err := g.orders.ListByUser(ctx, user.ID)
	if err != nil {
		g.fail(c, err)
		return
	}

	views, err := g.buildOrderViews(ctx, orders, false)
	if err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusOK, views, "")
}

type updateOrderRequest struct {
	Progress string `json:"progress"`
}

// updateOrder overwrites progress only. Any value in the enumerated set is
// accepted regardless of the current state.
func (g *Gateway) updateOrder(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		g.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if !models.ValidProgress(req.Progress) {
		g.fail(c, apperr.Validation("progress does not match!"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}

	order, err := g.orders.UpdateProgress(c.Request.Context(), id, req.Progress)
	if err != nil {
		g.fail(c, err)
		return
	}
	if order == nil {
		g.fail(c, apperr.NotFound("order not found for ID: %s", c.Param("id")))
		return
	}

	respond(c, http.StatusOK, order, "")
}

func (g *Gateway) deleteOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}

	deleted, err := g.orders.Delete(c.Request.Context(), id)
	if err != nil {
		g.fail(c, err)
		return
	}
	if !deleted {
		g.fail(c, apperr.NotFound("order not found for ID: %s", c.Param("id")))
		return
	}

	respond(c, http.StatusOK, nil, "Order deleted successfully.")
}
