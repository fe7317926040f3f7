package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/registration-system/internal/core/domain"
)

func TestConfirmHandler_RedirectsToReturnURL(t *testing.T) {
	e := echo.New()
	stub := &stubRegistrationService{
		confirmFn: func(_ context.Context, userID, code string) error {
			if userID != "user_1" || code != "abc" {
				t.Fatalf("unexpected args: %s %s", userID, code)
			}
			return nil
		},
	}
	handler := NewConfirmHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/account/confirm-email?userId=user_1&code=abc&returnUrl=%2Fwelcome", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Confirm(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/welcome" {
		t.Fatalf("expected 303 to /welcome, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestConfirmHandler_InvalidCodePropagated(t *testing.T) {
	e := echo.New()
	stub := &stubRegistrationService{
		confirmFn: func(_ context.Context, _, _ string) error {
			return domain.ErrInvalidConfirmation
		},
	}
	handler := NewConfirmHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/account/confirm-email?userId=user_1&code=bad", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Confirm(c); !errors.Is(err, domain.ErrInvalidConfirmation) {
		t.Fatalf("expected ErrInvalidConfirmation, got %v", err)
	}
}

func TestConfirmHandler_MissingParams(t *testing.T) {
	e := echo.New()
	handler := NewConfirmHandler(&stubRegistrationService{})

	req := httptest.NewRequest(http.MethodGet, "/account/confirm-email?userId=user_1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Confirm(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
