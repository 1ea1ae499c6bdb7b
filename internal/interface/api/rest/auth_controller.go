package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contacts-api/internal/application/ports"
	"contacts-api/internal/interface/api/rest/dto/auth"
	"contacts-api/internal/interface/api/rest/dto/user"
	"contacts-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.AuthService
}

// NewAuthController registers the auth routes. limit may be nil.
func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.AuthService,
	limit gin.HandlerFunc,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	var handlers []gin.HandlerFunc
	if limit != nil {
		handlers = append(handlers, limit)
	}
	r.POST(RouteRegister, append(handlers, ac.RegisterHandler)...)
	r.POST(RouteLogin, append(handlers, ac.LoginHandler)...)

	return ac
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateRegister(req); errs != nil {
		badRequest(c, errs)
		return
	}

	u, err := ac.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, ac.logger, "Register()", err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

// LoginHandler takes JSON or an urlencoded form with username and password.
func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid request body"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		badRequest(c, errs)
		return
	}

	token, err := ac.authService.Login(c.Request.Context(), req.Login(), req.Password)
	if err != nil {
		writeError(c, ac.logger, "Login()", err)
		return
	}

	c.JSON(http.StatusOK, auth.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
