package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAcknowledgment_Get_EchoesFieldsVerbatim(t *testing.T) {
	e := echo.New()
	handler := NewAcknowledgmentHandler()

	target := "/acknowledgment?firstName=Alice&lastName=Papadopoulos&email=alice%40example.com"

	render := func() (int, string) {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler.Get(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec.Code, rec.Body.String()
	}

	code, body := render()
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	for _, want := range []string{`"first_name":"Alice"`, `"last_name":"Papadopoulos"`, `"email":"alice@example.com"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %s in %s", want, body)
		}
	}

	// Pure function of its input: rendering twice is identical.
	_, again := render()
	if body != again {
		t.Fatalf("rendering is not idempotent:\n%s\n%s", body, again)
	}
}

func TestAcknowledgment_Post_NeverEchoesPassword(t *testing.T) {
	e := echo.New()
	handler := NewAcknowledgmentHandler()

	form := "firstName=Alice&lastName=Papadopoulos&email=alice%40example.com&password=hunter2"
	req := httptest.NewRequest(http.MethodPost, "/acknowledgment", strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Post(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "hunter2") {
		t.Fatalf("password leaked into acknowledgment response: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"first_name":"Alice"`) {
		t.Fatalf("expected fields echoed: %s", rec.Body.String())
	}
}
