package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/mealshop/pkg/apperr"
	"github.com/example/mealshop/pkg/auth"
	"github.com/example/mealshop/pkg/models"
)

type signupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

func (g *Gateway) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		g.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		g.fail(c, apperr.Validation("all fields are required"))
		return
	}
	if req.Password != req.ConfirmPassword {
		g.fail(c, apperr.Validation("passwords do not match"))
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

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Role:     role,
	}
	if err := g.users.Insert(ctx, user); err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	}, "User created successfully!")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (g *Gateway) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		g.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		g.fail(c, apperr.Validation("email and password are required"))
		return
	}

	user, err := g.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		g.fail(c, err)
		return
	}
	// A missing user and a wrong password fail identically on purpose.
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		g.fail(c, apperr.Validation("invalid email or password"))
		return
	}

	token, err := g.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"token":    token,
	}, "Login successful!")
}

type otpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// generateOTP issues a 6-digit code for email verification. Only the
// bcrypt hash reaches Redis; the TTL bounds its life. Delivery is not
// wired, so the plaintext code rides back in the response.
func (g *Gateway) generateOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		g.fail(c, apperr.Validation("email is required"))
		return
	}

	ctx := c.Request.Context()

	user, err := g.users.FindByEmail(ctx, req.Email)
	if err != nil {
		g.fail(c, err)
		return
	}
	if user == nil {
		g.fail(c, apperr.NotFound("no user found for email %q", req.Email))
		return
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		g.fail(c, err)
		return
	}
	hash, err := auth.HashPassword(code)
	if err != nil {
		g.fail(c, err)
		return
	}
	if err := g.otp.SaveOTP(ctx, req.Email, hash, g.config.Auth.OTPTTL); err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"code": code}, "Verification code issued.")
}

func (g *Gateway) verifyOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Code == "" {
		g.fail(c, apperr.Validation("email and code are required"))
		return
	}

	ctx := c.Request.Context()

	hash, err := g.otp.OTPHash(ctx, req.Email)
	if err != nil {
		g.fail(c, err)
		return
	}
	if hash == "" || !auth.CheckPassword(hash, req.Code) {
		g.fail(c, apperr.Validation("invalid or expired verification code"))
		return
	}

	verified, err := g.users.MarkVerified(ctx, req.Email)
	if err != nil {
		g.fail(c, err)
		return
	}
	if !verified {
		g.fail(c, apperr.NotFound("no user found for email %q", req.Email))
		return
	}

	if err := g.otp.DropOTP(ctx, req.Email); err != nil {
		g.fail(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Email verified.")
}
