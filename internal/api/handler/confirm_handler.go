package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/registration-system/internal/api/metrics"
	"github.com/memberhub/registration-system/internal/core/ports"
)

// ConfirmHandler redeems email-confirmation links.
type ConfirmHandler struct {
	service ports.RegistrationService
}

func NewConfirmHandler(service ports.RegistrationService) *ConfirmHandler {
	return &ConfirmHandler{service: service}
}

type confirmResponse struct {
	Status string `json:"status"`
	Email  string `json:"email,omitempty"`
}

// Confirm handles the callback link from the confirmation email.
//
// @Summary      Confirm an email address
// @Tags         account
// @Produce      json
// @Param        userId     query  string  true   "User identifier"
// @Param        code       query  string  true   "URL-safe confirmation code"
// @Param        returnUrl  query  string  false  "Destination after confirmation"
// @Success      200  {object}  confirmResponse
// @Success      303
// @Failure      422  {object}  map[string]string
// @Router       /account/confirm-email [get]
func (h *ConfirmHandler) Confirm(c echo.Context) error {
	userID := c.QueryParam("userId")
	code := c.QueryParam("code")
	if userID == "" || code == "" {
		metrics.EmailConfirmationsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "userId and code are required")
	}

	if err := h.service.ConfirmEmail(c.Request().Context(), userID, code); err != nil {
		metrics.EmailConfirmationsTotal.WithLabelValues("rejected").Inc()
		return err
	}
	metrics.EmailConfirmationsTotal.WithLabelValues("confirmed").Inc()

	if ru := c.QueryParam("returnUrl"); ru != "" {
		return c.Redirect(http.StatusSeeOther, ru)
	}
	return c.JSON(http.StatusOK, confirmResponse{Status: "email confirmed"})
}
