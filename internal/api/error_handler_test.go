package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/memberhub/registration-system/internal/core/domain"
)

func invoke(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/account/register", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, resp
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	rec, resp := invoke(t, domain.ValidationErrors{
		{Field: "mobileNumber", Message: "mobile number must be 10 digits"},
		{Message: "email already registered"},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if len(resp.Fields) != 2 {
		t.Fatalf("expected field errors preserved, got %+v", resp)
	}
	if resp.Fields[0].Field != "mobileNumber" || resp.Fields[1].Field != "" {
		t.Fatalf("unexpected fields: %+v", resp.Fields)
	}
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrInvalidConfirmation, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec, _ := invoke(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestErrorHandler_GenericErrorHidesDetails(t *testing.T) {
	_, resp := invoke(t, errors.New("pq: connection refused"))
	if resp.Error != "internal server error" {
		t.Fatalf("internal details leaked: %q", resp.Error)
	}
}
