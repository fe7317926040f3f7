package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/memberhub/registration-system/internal/api/middleware"
	"github.com/memberhub/registration-system/internal/core/domain"
	"github.com/memberhub/registration-system/internal/core/ports"
)

type stubRegistrationService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error)
	confirmFn  func(ctx context.Context, userID, code string) error
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubRegistrationService) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubRegistrationService) ConfirmEmail(ctx context.Context, userID, code string) error {
	return s.confirmFn(ctx, userID, code)
}

func (s *stubRegistrationService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

// multipartSubmission builds a registration form body with all fields present.
func multipartSubmission(t *testing.T, overrides map[string]string, withPicture bool) (*bytes.Buffer, string) {
	t.Helper()

	fields := map[string]string{
		"firstName":       "Alice",
		"lastName":        "Papadopoulos",
		"fatherFirstName": "George",
		"fatherLastName":  "Papadopoulos",
		"email":           "alice@example.com",
		"password":        "s3cret!",
		"confirmPassword": "s3cret!",
		"dateOfBirth":     "1990-03-20",
		"mobileNumber":    "0412345678",
	}
	for k, v := range overrides {
		fields[k] = v
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if withPicture {
		fw, err := w.CreateFormFile("profilePicture", "me.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0}); err != nil {
			t.Fatalf("write picture: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func TestRegisterHandler_Submit_SignedIn(t *testing.T) {
	e := echo.New()
	stub := &stubRegistrationService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
			if input.Email != "alice@example.com" || input.MobileNumber != "0412345678" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if len(input.ProfilePicture) != 4 {
				t.Fatalf("profile picture not read into memory")
			}
			if input.ReturnURL != "/welcome" {
				t.Fatalf("returnUrl not propagated: %q", input.ReturnURL)
			}
			return &ports.RegisterResult{
				User: &domain.User{
					ID:        "user_1",
					Email:     input.Email,
					FirstName: input.FirstName,
					LastName:  input.LastName,
				},
				SessionToken: "session-token",
				ReturnURL:    input.ReturnURL,
			}, nil
		},
	}
	handler := NewRegisterHandler(stub, "secret", 27, nil)

	body, contentType := multipartSubmission(t, nil, true)
	req := httptest.NewRequest(http.MethodPost, "/account/register?returnUrl=%2Fwelcome", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad redirect location: %v", err)
	}
	if loc.Path != "/acknowledgment" {
		t.Fatalf("expected redirect to /acknowledgment, got %s", loc.Path)
	}
	q := loc.Query()
	if q.Get("firstName") != "Alice" || q.Get("lastName") != "Papadopoulos" || q.Get("email") != "alice@example.com" {
		t.Fatalf("submitted fields not echoed in redirect: %v", q)
	}

	cookies := rec.Result().Cookies()
	var session *http.Cookie
	for _, ck := range cookies {
		if ck.Name == middleware.SessionCookie {
			session = ck
		}
	}
	if session == nil || session.Value != "session-token" {
		t.Fatalf("session cookie not set: %v", cookies)
	}
	if session.MaxAge != 0 {
		t.Fatalf("session cookie must be non-persistent, got MaxAge=%d", session.MaxAge)
	}
}

func TestRegisterHandler_Submit_PendingConfirmation(t *testing.T) {
	e := echo.New()
	stub := &stubRegistrationService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
			return &ports.RegisterResult{
				User:                &domain.User{ID: "user_1", Email: input.Email},
				PendingConfirmation: true,
				ReturnURL:           input.ReturnURL,
			}, nil
		},
	}
	handler := NewRegisterHandler(stub, "secret", 27, nil)

	body, contentType := multipartSubmission(t, nil, true)
	req := httptest.NewRequest(http.MethodPost, "/account/register?returnUrl=%2Fwelcome", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	loc, _ := url.Parse(rec.Header().Get("Location"))
	if loc.Path != "/account/register-confirmation" {
		t.Fatalf("expected redirect to pending page, got %s", loc.Path)
	}
	if loc.Query().Get("email") != "alice@example.com" || loc.Query().Get("returnUrl") != "/welcome" {
		t.Fatalf("pending redirect missing params: %v", loc.Query())
	}

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			t.Fatalf("no session may be established before confirmation")
		}
	}
}

func TestRegisterHandler_Submit_ValidationErrorsPropagated(t *testing.T) {
	e := echo.New()
	stub := &stubRegistrationService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*ports.RegisterResult, error) {
			return nil, domain.ValidationErrors{{Field: "mobileNumber", Message: "mobile number must be 10 digits"}}
		},
	}
	handler := NewRegisterHandler(stub, "secret", 27, nil)

	body, contentType := multipartSubmission(t, map[string]string{"mobileNumber": "123"}, true)
	req := httptest.NewRequest(http.MethodPost, "/account/register", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Submit(c)
	var ve domain.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if ve[0].Field != "mobileNumber" {
		t.Fatalf("unexpected field errors: %+v", ve)
	}
}

func TestRegisterHandler_Form(t *testing.T) {
	e := echo.New()
	handler := NewRegisterHandler(&stubRegistrationService{}, "secret", 27, []string{"Google"})

	req := httptest.NewRequest(http.MethodGet, "/account/register?returnUrl=%2Fwelcome", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Form(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp registerFormResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ReturnURL != "/welcome" || resp.MinimumAge != 27 {
		t.Fatalf("unexpected form payload: %+v", resp)
	}
	if len(resp.ExternalLogins) != 1 || resp.ExternalLogins[0] != "Google" {
		t.Fatalf("external logins not listed: %+v", resp.ExternalLogins)
	}
}

func TestRegisterHandler_Form_RedirectsSignedInUser(t *testing.T) {
	e := echo.New()
	handler := NewRegisterHandler(&stubRegistrationService{}, "secret", 27, nil)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user_1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/account/register", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: signed})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Form(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected 302 to /, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRegisterHandler_Pending(t *testing.T) {
	e := echo.New()
	handler := NewRegisterHandler(&stubRegistrationService{}, "secret", 27, nil)

	req := httptest.NewRequest(http.MethodGet, "/account/register-confirmation?email=a%40example.com&returnUrl=%2Fwelcome", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Pending(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp registerPendingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Email != "a@example.com" || resp.ReturnURL != "/welcome" {
		t.Fatalf("pending params not preserved: %+v", resp)
	}
}
