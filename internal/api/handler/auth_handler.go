package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/registration-system/internal/core/domain"
	"github.com/memberhub/registration-system/internal/core/ports"
)

// AuthHandler exposes sign-in for already registered accounts.
type AuthHandler struct {
	service ports.RegistrationService
}

func NewAuthHandler(service ports.RegistrationService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login authenticates a member and issues a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Do not distinguish unknown accounts from bad passwords here.
		if err == domain.ErrUserNotFound {
			err = domain.ErrInvalidCredentials
		}
		return err
	}

	setSessionCookie(c, token)
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}
