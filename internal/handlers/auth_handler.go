package handlers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/storyweave/backend/internal/middleware"
	"github.com/storyweave/backend/internal/models"
	"github.com/storyweave/backend/internal/social"
	"github.com/storyweave/backend/internal/store"
)

// AuthHandler handles registration, login and the current-user lookup.
type AuthHandler struct {
	store     store.Store
	service   *social.Service
	jwtSecret string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(st store.Store, service *social.Service, jwtSecret string) *AuthHandler {
	return &AuthHandler{store: st, service: service, jwtSecret: jwtSecret}
}

// RegisterAuthRoutes registers the public auth routes.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// RegisterUserRoutes registers routes that need an authenticated caller.
func (h *AuthHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/auth/user", h.CurrentUser)
}

// Register creates an account and returns the user plus a signed token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return httpError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Avatar:      req.Avatar,
	}
	if err := h.service.RegisterUser(c.Request().Context(), user); err != nil {
		return httpError(err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": user, "token": token})
}

// Login checks credentials and returns the user plus a signed token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return httpError(err)
	}

	user, err := h.store.UserByUsername(c.Request().Context(), req.Username)
	if err != nil {
		return httpError(err)
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user, "token": token})
}

// CurrentUser returns the authenticated account.
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	user, err := h.store.UserByID(c.Request().Context(), middleware.ViewerID(c))
	if err != nil {
		return httpError(err)
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
