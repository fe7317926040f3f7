package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/registration-system/internal/api/metrics"
	"github.com/memberhub/registration-system/internal/api/middleware"
	"github.com/memberhub/registration-system/internal/core/domain"
	"github.com/memberhub/registration-system/internal/core/ports"
)

// RegisterHandler exposes the registration pages: the form descriptor, the
// multipart submission endpoint, and the pending-confirmation page.
type RegisterHandler struct {
	service        ports.RegistrationService
	jwtSecret      string
	minimumAge     int
	externalLogins []string
}

func NewRegisterHandler(service ports.RegistrationService, jwtSecret string, minimumAge int, externalLogins []string) *RegisterHandler {
	return &RegisterHandler{
		service:        service,
		jwtSecret:      jwtSecret,
		minimumAge:     minimumAge,
		externalLogins: externalLogins,
	}
}

type registerFormResponse struct {
	ReturnURL      string   `json:"return_url"`
	MinimumAge     int      `json:"minimum_age"`
	RequiredFields []string `json:"required_fields"`
	ExternalLogins []string `json:"external_logins"`
}

type registerPendingResponse struct {
	Email     string `json:"email"`
	ReturnURL string `json:"return_url"`
}

// Form describes the registration form and the configured external login
// schemes. Signed-in users are sent back to the home page.
//
// @Summary      Describe the registration form
// @Tags         account
// @Produce      json
// @Param        returnUrl  query     string  false  "Post-registration destination"
// @Success      200        {object}  registerFormResponse
// @Router       /account/register [get]
func (h *RegisterHandler) Form(c echo.Context) error {
	if middleware.HasSession(c, h.jwtSecret) {
		return c.Redirect(http.StatusFound, "/")
	}

	return c.JSON(http.StatusOK, registerFormResponse{
		ReturnURL:  c.QueryParam("returnUrl"),
		MinimumAge: h.minimumAge,
		RequiredFields: []string{
			"firstName", "lastName", "fatherFirstName", "fatherLastName",
			"email", "password", "confirmPassword", "dateOfBirth",
			"mobileNumber", "profilePicture",
		},
		ExternalLogins: h.externalLogins,
	})
}

// Submit accepts the multipart registration submission.
//
// @Summary      Register a new member account
// @Tags         account
// @Accept       multipart/form-data
// @Param        firstName        formData  string  true   "First name"
// @Param        lastName         formData  string  true   "Last name"
// @Param        fatherFirstName  formData  string  true   "Father's first name"
// @Param        fatherLastName   formData  string  true   "Father's last name"
// @Param        email            formData  string  true   "Email address"
// @Param        password         formData  string  true   "Password (6-100 chars)"
// @Param        confirmPassword  formData  string  true   "Password confirmation"
// @Param        dateOfBirth      formData  string  true   "Date of birth (YYYY-MM-DD)"
// @Param        mobileNumber     formData  string  true   "Mobile number (10 digits)"
// @Param        profilePicture   formData  file    true   "Profile picture"
// @Param        returnUrl        query     string  false  "Post-registration destination"
// @Success      303
// @Failure      422  {object}  map[string]string
// @Router       /account/register [post]
func (h *RegisterHandler) Submit(c echo.Context) error {
	start := time.Now()

	input := ports.RegisterInput{
		FirstName:       c.FormValue("firstName"),
		LastName:        c.FormValue("lastName"),
		FatherFirstName: c.FormValue("fatherFirstName"),
		FatherLastName:  c.FormValue("fatherLastName"),
		Email:           c.FormValue("email"),
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirmPassword"),
		DateOfBirth:     c.FormValue("dateOfBirth"),
		MobileNumber:    c.FormValue("mobileNumber"),
		ReturnURL:       returnURL(c),
	}

	picture, contentType, err := readProfilePicture(c)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("validation_failed").Inc()
		return domain.ValidationErrors{{Field: "profilePicture", Message: "could not read uploaded file"}}
	}
	input.ProfilePicture = picture
	input.ProfilePictureType = contentType

	result, err := h.service.Register(c.Request().Context(), input)
	metrics.RegistrationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		var ve domain.ValidationErrors
		if errors.As(err, &ve) {
			metrics.RegistrationsTotal.WithLabelValues("validation_failed").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	if result.PendingConfirmation {
		metrics.RegistrationsTotal.WithLabelValues("pending_confirmation").Inc()
		q := url.Values{}
		q.Set("email", result.User.Email)
		q.Set("returnUrl", result.ReturnURL)
		return c.Redirect(http.StatusSeeOther, "/account/register-confirmation?"+q.Encode())
	}

	metrics.RegistrationsTotal.WithLabelValues("signed_in").Inc()
	setSessionCookie(c, result.SessionToken)

	q := url.Values{}
	q.Set("firstName", result.User.FirstName)
	q.Set("lastName", result.User.LastName)
	q.Set("email", result.User.Email)
	return c.Redirect(http.StatusSeeOther, "/acknowledgment?"+q.Encode())
}

// Pending renders the "registration pending confirmation" page payload.
//
// @Summary      Registration pending email confirmation
// @Tags         account
// @Produce      json
// @Param        email      query     string  true   "Registered email"
// @Param        returnUrl  query     string  false  "Post-confirmation destination"
// @Success      200        {object}  registerPendingResponse
// @Router       /account/register-confirmation [get]
func (h *RegisterHandler) Pending(c echo.Context) error {
	return c.JSON(http.StatusOK, registerPendingResponse{
		Email:     c.QueryParam("email"),
		ReturnURL: c.QueryParam("returnUrl"),
	})
}

// readProfilePicture buffers the uploaded file into memory. A missing file is
// not an error here; the validation rules report it as a required field. The
// buffer lives only for the duration of the submission.
func readProfilePicture(c echo.Context) ([]byte, string, error) {
	fh, err := c.FormFile("profilePicture")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		return nil, "", err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Header.Get("Content-Type"), nil
}

// returnURL resolves the caller-supplied destination, defaulting to the home page.
func returnURL(c echo.Context) string {
	if ru := c.QueryParam("returnUrl"); ru != "" {
		return ru
	}
	if ru := c.FormValue("returnUrl"); ru != "" {
		return ru
	}
	return "/"
}

// setSessionCookie attaches the session JWT as a cookie with no Max-Age, so
// the session is non-persistent and ends with the browser.
func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
