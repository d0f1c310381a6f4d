package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhive/todo-system/internal/core/domain"
)

func TestResolveError_DomainMapping(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	log := zerolog.Nop()

	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrMissingFields, http.StatusBadRequest},
		{domain.ErrTitleRequired, http.StatusBadRequest},
		{domain.ErrInvalidPriority, http.StatusBadRequest},
		{domain.ErrInvalidDueDate, http.StatusBadRequest},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrTodoNotFound, http.StatusNotFound},
		{echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token"), http.StatusUnauthorized},
		{errors.New("mongo exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		code, _ := resolveError(tc.err, log, c)
		if code != tc.code {
			t.Fatalf("error %v: expected %d, got %d", tc.err, tc.code, code)
		}
	}
}

func TestResolveError_WrappedErrorsStillMatch(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	wrapped := errors.Join(errors.New("find todo"), domain.ErrTodoNotFound)
	code, _ := resolveError(wrapped, zerolog.Nop(), c)
	if code != http.StatusNotFound {
		t.Fatalf("wrapped domain error not resolved: got %d", code)
	}
}

func TestResolveError_InternalDetailNotLeaked(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, msg := resolveError(errors.New("dial tcp 10.0.0.5:27017: connection refused"), zerolog.Nop(), c)
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked to the client: %q", msg)
	}
	if strings.Contains(msg, "27017") {
		t.Fatalf("connection detail leaked: %q", msg)
	}
}

func TestHTTPErrorHandler_RendersEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHTTPErrorHandler(zerolog.Nop())
	h(domain.ErrTodoNotFound, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("missing error envelope: %s", rec.Body.String())
	}
}
