package gateway

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/mealshop/pkg/apperr"
	"github.com/example/mealshop/pkg/auth"
	"github.com/example/mealshop/pkg/models"
)

const userPageLimit = 20

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
	Role     string             `json:"role"`
}

func (g *Gateway) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		g.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		g.fail(c, apperr.Validation("all fields are required"))
		return
	}

	ctx := c.Request.Context()

	existing, err := g.users.FindByEmail(ctx, req.Email)
	if err != nil {
		g.fail(c, err)
		return
	}
	if existing != nil {
		g.fail(c, apperr.Conflict("email %q is already in use", req.Email))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		g.fail(c, err)
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
	}
	if err := g.users.Insert(ctx, user); err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusCreated, userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, "User created successfully!")
}

// userOrders is the order subset embedded into the admin user listing.
type userOrders struct {
	Items       []models.OrderItem `json:"items"`
	TotalAmount float64            `json:"totalAmount"`
	Progress    string             `json:"progress"`
	OrderDate   time.Time          `json:"orderDate"`
}

type userWithOrders struct {
	models.User
	Orders []userOrders `json:"orders"`
}

// listUsers pages over every user except the requesting admin and embeds
// each user's order history, newest first.
func (g *Gateway) listUsers(c *gin.Context) {
	page, limit := pageParams(c, userPageLimit)
	ctx := c.Request.Context()
	requester := currentUser(c)

	users, total, err := g.users.List(ctx, requester.ID, page, limit)
	if err != nil {
		g.fail(c, err)
		return
	}

	items := make([]userWithOrders, 0, len(users))
	for _, u := range users {
		orders, err := g.orders.ListByUser(ctx, u.ID)
		if err != nil {
			g.fail(c, err)
			return
		}
		embedded := make([]userOrders, 0, len(orders))
		for _, o := range orders {
			embedded = append(embedded, userOrders{
				Items:       o.Items,
				TotalAmount: o.TotalAmount,
				Progress:    o.Progress,
				OrderDate:   o.OrderDate,
			})
		}
		items = append(items, userWithOrders{User: u, Orders: embedded})
	}

	respond(c, http.StatusOK, gin.H{
		"items": items,
		"table": models.NewTable(page, limit, total),
	}, "")
}

func (g *Gateway) getUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}

	user, err := g.users.FindByID(c.Request.Context(), id)
	if err != nil {
		g.fail(c, err)
		return
	}
	if user == nil {
		g.fail(c, apperr.NotFound("user not found"))
		return
	}

	respond(c, http.StatusOK, user, "")
}

type updateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (g *Gateway) updateUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		g.fail(c, apperr.Validation("invalid request body"))
		return
	}

	user, err := g.users.Update(c.Request.Context(), id, req.Username, req.Email, req.Role)
	if err != nil {
		g.fail(c, err)
		return
	}
	if user == nil {
		g.fail(c, apperr.NotFound("user not found"))
		return
	}

	respond(c, http.StatusOK, userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, "User updated successfully!")
}

func (g *Gateway) deleteUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}

	deleted, err := g.users.Delete(c.Request.Context(), id)
	if err != nil {
		g.fail(c, err)
		return
	}
	if !deleted {
		g.fail(c, apperr.NotFound("user not found"))
		return
	}

	respond(c, http.StatusOK, nil, "User deleted successfully!")
}
