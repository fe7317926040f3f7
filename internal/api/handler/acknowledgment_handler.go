package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AcknowledgmentHandler renders the post-registration acknowledgment page.
// It is a pure pass-through of the submitted identity fields: no validation,
// no persistence, no side effects. Secrets are never echoed.
type AcknowledgmentHandler struct{}

func NewAcknowledgmentHandler() *AcknowledgmentHandler {
	return &AcknowledgmentHandler{}
}

type acknowledgmentResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Get echoes the registration result fields from the query string.
//
// @Summary      Acknowledgment page
// @Tags         account
// @Produce      json
// @Param        firstName  query     string  false  "First name"
// @Param        lastName   query     string  false  "Last name"
// @Param        email      query     string  false  "Email"
// @Success      200        {object}  acknowledgmentResponse
// @Router       /acknowledgment [get]
func (h *AcknowledgmentHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, acknowledgmentResponse{
		FirstName: c.QueryParam("firstName"),
		LastName:  c.QueryParam("lastName"),
		Email:     c.QueryParam("email"),
	})
}

// Post is the form-submission variant of the same page. It echoes the same
// three fields; the source system also accepted and displayed a password
// parameter here, which is deliberately not carried over.
//
// @Summary      Acknowledgment page (form variant)
// @Tags         account
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Success      200  {object}  acknowledgmentResponse
// @Router       /acknowledgment [post]
func (h *AcknowledgmentHandler) Post(c echo.Context) error {
	return c.JSON(http.StatusOK, acknowledgmentResponse{
		FirstName: c.FormValue("firstName"),
		LastName:  c.FormValue("lastName"),
		Email:     c.FormValue("email"),
	})
}
